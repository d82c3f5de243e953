package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

// readState unmarshals the snapshot stored at key into dst. A missing key or
// corrupt blob leaves dst untouched and returns false, so the caller's
// default structure stands in; storage failures are never surfaced to the
// user.
func readState(ctx context.Context, kv port.KeyValueStore, key string, dst interface{}) bool {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			log.Printf("persist: read %s failed, using defaults: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("persist: corrupt snapshot at %s, using defaults: %v", key, err)
		return false
	}
	return true
}

// writeState overwrites the snapshot at key with the JSON form of v. Failures
// are logged as warnings and swallowed: the in-memory state stays
// authoritative for the session and the failed write is terminal for that
// single operation only (no retry).
func writeState(ctx context.Context, kv port.KeyValueStore, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("persist: encoding snapshot for %s failed: %v", key, err)
		return
	}
	if err := kv.Set(ctx, key, data); err != nil {
		log.Printf("persist: write %s failed: %v", key, err)
	}
}
