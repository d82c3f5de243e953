package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

type fileStore struct {
	dir string
}

// NewStore creates a file-backed KeyValueStore holding one JSON file per key
// under dir.
func NewStore(dir string) (port.KeyValueStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("fileStore: creating dir: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("fileStore.Get: %w", err)
	}
	return data, nil
}

func (s *fileStore) Set(_ context.Context, key string, value []byte) error {
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("fileStore.Set: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("fileStore.Set: %w", err)
	}
	return nil
}

func (s *fileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("fileStore.Delete: %w", err)
	}
	return nil
}

// path maps a key to a filename, replacing separators that would escape the
// data dir.
func (s *fileStore) path(key string) string {
	safe := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}
