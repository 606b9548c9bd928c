package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONFile persists a single JSON document on disk. Writes go through
// a temp file plus rename so a crash mid-write never truncates the
// store. All operations serialize on an internal mutex.
type JSONFile struct {
	path string
	mu   sync.Mutex
}

// NewJSONFile ensures the parent directory exists and returns a handle.
func NewJSONFile(path string) (*JSONFile, error) {
	if path == "" {
		path = "./data/app-data.json"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &JSONFile{path: path}, nil
}

// Load reads the document into dest. A missing file leaves dest
// untouched and returns os.ErrNotExist.
func (f *JSONFile) Load(dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.ErrNotExist
		}
		return fmt.Errorf("read storage file: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode storage file: %w", err)
	}
	return nil
}

// Save writes the document atomically.
func (f *JSONFile) Save(src interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	payload, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".app-data-*.json")
	if err != nil {
		return fmt.Errorf("create temp storage file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp storage file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}

// Path exposes the underlying location (useful for debugging).
func (f *JSONFile) Path() string {
	return f.path
}
