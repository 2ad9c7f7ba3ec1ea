package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is a KV backed by one file per key under a directory.
type File struct {
	dir string
}

// NewFile creates the backing directory if needed and returns the store.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// Get returns the stored bytes and whether the key exists
func (f *File) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.keyPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes value under key. The write goes to a temp file first and is
// renamed into place so a crash mid-write never leaves a torn value.
func (f *File) Set(key string, value []byte) error {
	path := f.keyPath(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to commit key %s: %w", key, err)
	}
	return nil
}

// Remove deletes key; removing an absent key is a no-op
func (f *File) Remove(key string) error {
	err := os.Remove(f.keyPath(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}

// keyPath maps a key to a filename, escaping path separators
func (f *File) keyPath(key string) string {
	safe := strings.NewReplacer("/", "_", string(os.PathSeparator), "_").Replace(key)
	return filepath.Join(f.dir, safe+".json")
}
