package port

import "context"

// KeyValueStore abstracts the snapshot persistence backend. Each value is the
// JSON-serialized full state of one store, overwritten wholesale on every
// mutation; no transaction spans multiple keys.
//
// Get returns domain.ErrKeyNotFound when the key has never been written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
