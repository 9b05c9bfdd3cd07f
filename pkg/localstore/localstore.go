package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a small key/value store backed by one file per key. It plays the
// role browser local storage plays for the web client: synchronous string
// storage that survives restarts.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	// Keys are fixed, well-known names ("user"); reject anything that
	// would escape the storage directory.
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, key+".json")
}

// GetItem returns the stored value for key. The second return value is
// false when no value is stored.
func (s *Store) GetItem(key string) (string, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// SetItem stores value under key, replacing any previous value.
func (s *Store) SetItem(key, value string) error {
	if err := os.WriteFile(s.path(key), []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// RemoveItem deletes the value stored under key. Removing a missing key is
// not an error.
func (s *Store) RemoveItem(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
