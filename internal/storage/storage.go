package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store provides a file-backed key/value store for the dashboard's
// persisted state. One key maps to one file under the base directory.
//
// A nil *Store is valid and turns every operation into a no-op, mirroring
// the behavior of the dashboard when durable storage is unavailable.
type Store struct {
	basePath string
}

// NewStore creates a new Store and ensures the base directory exists.
func NewStore(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &Store{basePath: basePath}, nil
}

func (s *Store) keyPath(key string) string {
	return filepath.Join(s.basePath, key)
}

// Read returns the stored value for key. The second return value reports
// whether the key was present.
func (s *Store) Read(key string) ([]byte, bool) {
	if s == nil {
		return nil, false
	}
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Write stores the value under key, replacing any previous value.
func (s *Store) Write(key string, data []byte) error {
	if s == nil {
		return nil
	}
	if err := os.WriteFile(s.keyPath(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if s == nil {
		return nil
	}
	if err := os.Remove(s.keyPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
