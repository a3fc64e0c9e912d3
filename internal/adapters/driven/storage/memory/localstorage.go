package memory

import (
	"sync"

	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
)

// Ensure LocalStorage implements the interface.
var _ driven.LocalStorage = (*LocalStorage)(nil)

// LocalStorage is an in-memory key/value store. Values live for the
// lifetime of the process.
type LocalStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewLocalStorage creates an empty in-memory local storage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{items: make(map[string]string)}
}

// GetItem returns the value stored under key.
func (s *LocalStorage) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem stores value under key.
func (s *LocalStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// RemoveItem deletes key. Missing keys are ignored.
func (s *LocalStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
