package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store persisted as a single JSON object on disk, giving CLI
// sessions the same survive-reload behaviour browser local storage provides.
// Every Set rewrites the whole file; the record set is expected to stay tiny
// (a terms flag and one draft snapshot).
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a Store backed by the JSON file at path. The file and its
// parent directory are created on first write.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("kvstore: file path is required")
	}
	return &File{path: filepath.Clean(path)}, nil
}

// Get reads the current record set and returns the value for key.
func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set rewrites the record set with value stored under key.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("kvstore: create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("kvstore: encode records: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("kvstore: write %s: %w", f.path, err)
	}
	return nil
}

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: read %s: %w", f.path, err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("kvstore: decode %s: %w", f.path, err)
	}
	return values, nil
}
