package memory

import (
	"context"

	"github.com/patrickmn/go-cache"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

type memoryStore struct {
	cache *cache.Cache
}

// NewStore creates an in-memory KeyValueStore. Entries never expire; this
// backend serves tests and sessions where durable storage is unavailable.
func NewStore() port.KeyValueStore {
	return &memoryStore{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, found := s.cache.Get(key)
	if !found {
		return nil, domain.ErrKeyNotFound
	}
	return v.([]byte), nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	s.cache.Set(key, buf, cache.NoExpiration)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
