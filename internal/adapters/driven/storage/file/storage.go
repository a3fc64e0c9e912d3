package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
)

// Ensure Storage implements the interfaces.
var (
	_ driven.LocalStorage     = (*Storage)(nil)
	_ driven.WatchableStorage = (*Storage)(nil)
)

// FileName is the name of the storage document inside the data directory.
const FileName = "storage.json"

// Storage is a JSON document of string values keyed by name.
type Storage struct {
	mu   sync.Mutex
	path string
	lock *fileLock
}

// NewStorage creates a storage whose document lives in dir.
// The document is created lazily on first write.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	return &Storage{
		path: path,
		lock: newFileLock(path),
	}, nil
}

// Path returns the document path.
func (s *Storage) Path() string {
	return s.path
}

// GetItem returns the value stored under key.
func (s *Storage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.rlock(); err != nil {
		return "", false, err
	}
	defer func() { _ = s.lock.unlock() }()

	items, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

// SetItem stores value under key.
func (s *Storage) SetItem(key, value string) error {
	return s.update(func(items map[string]string) {
		items[key] = value
	})
}

// RemoveItem deletes key. Missing keys are ignored.
func (s *Storage) RemoveItem(key string) error {
	return s.update(func(items map[string]string) {
		delete(items, key)
	})
}

// update performs a locked read-modify-write of the document.
func (s *Storage) update(mutate func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.lock.lock(); err != nil {
		return err
	}
	defer func() { _ = s.lock.unlock() }()

	items, err := s.read()
	if err != nil {
		return err
	}
	mutate(items)
	return s.write(items)
}

// read loads the document. Caller holds the file lock.
func (s *Storage) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	items := make(map[string]string)
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return items, nil
}

// write replaces the document atomically. Caller holds the file lock.
func (s *Storage) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storage-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
