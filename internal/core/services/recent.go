package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/chainsearch/internal/core/codec"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driving"
	"github.com/custodia-labs/chainsearch/internal/logger"
)

// Ensure RecentSearchService implements the interface.
var _ driving.RecentSearchService = (*RecentSearchService)(nil)

// RecentSearchService keeps a bounded most-recent-first list of past
// queries and writes it through to local storage on every change.
//
// When storage fails the service keeps working from memory for the rest
// of the session.
type RecentSearchService struct {
	mu         sync.Mutex
	storage    driven.LocalStorage
	persistent bool
	max        int
	entries    []domain.RecentSearchEntry
	now        func() time.Time
}

// NewRecentSearchService creates the service and loads any stored list.
// A nil storage keeps the list in memory only.
func NewRecentSearchService(storage driven.LocalStorage, maxEntries int) *RecentSearchService {
	if maxEntries <= 0 {
		maxEntries = domain.DefaultRecentMax
	}
	s := &RecentSearchService{
		storage:    storage,
		persistent: storage != nil,
		max:        maxEntries,
		entries:    []domain.RecentSearchEntry{},
		now:        time.Now,
	}
	if s.persistent {
		if err := s.load(); err != nil {
			s.degrade(err)
		}
	}
	return s
}

// Record adds an entry at the head of the list.
// An existing entry with the same query is replaced. The timestamp
// defaults to now.
func (s *RecentSearchService) Record(entry domain.RecentSearchEntry) error {
	entry.Query = strings.TrimSpace(entry.Query)
	if entry.Query == "" {
		return fmt.Errorf("recent search without query: %w", domain.ErrInvalidInput)
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = s.now().UnixMilli()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.RecentSearchEntry, 0, s.max)
	next = append(next, entry)
	for _, e := range s.entries {
		if len(next) == s.max {
			break
		}
		if e.Query != entry.Query {
			next = append(next, e)
		}
	}
	s.entries = next

	logger.Debug("recent: recorded %q (%d entries)", entry.Query, len(s.entries))
	s.flush()
	return nil
}

// List returns a copy of the entries, most recent first.
func (s *RecentSearchService) List() []domain.RecentSearchEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.RecentSearchEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear removes every entry.
func (s *RecentSearchService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []domain.RecentSearchEntry{}
	if !s.persistent {
		return nil
	}
	if err := s.storage.RemoveItem(domain.RecentSearchKey); err != nil {
		s.degrade(err)
	}
	return nil
}

// Reload replaces the in-memory list with the stored one.
func (s *RecentSearchService) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.persistent {
		return nil
	}
	if err := s.load(); err != nil {
		s.degrade(err)
	}
	return nil
}

// Changes returns a channel signalled when the stored list changes
// outside this service. It returns nil if the storage cannot be watched.
func (s *RecentSearchService) Changes(ctx context.Context) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.persistent {
		return nil
	}
	watchable, ok := s.storage.(driven.WatchableStorage)
	if !ok {
		return nil
	}
	ch, err := watchable.Watch(ctx)
	if err != nil {
		logger.Warn("recent: cannot watch storage: %v", err)
		return nil
	}
	return ch
}

// Persistent returns false once the service has fallen back to memory.
func (s *RecentSearchService) Persistent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistent
}

// load reads the stored list. Caller holds mu or owns s exclusively.
// Undecodable data is discarded; only storage errors are returned.
func (s *RecentSearchService) load() error {
	raw, ok, err := s.storage.GetItem(domain.RecentSearchKey)
	if err != nil {
		return err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		s.entries = []domain.RecentSearchEntry{}
		return nil
	}

	entries, err := codec.UnmarshalRecent([]byte(raw))
	if err != nil {
		logger.Warn("recent: ignoring unreadable stored list: %v", err)
		s.entries = []domain.RecentSearchEntry{}
		return nil
	}
	if len(entries) > s.max {
		entries = entries[:s.max]
	}
	s.entries = entries
	return nil
}

// flush writes the list to storage. Caller holds mu.
func (s *RecentSearchService) flush() {
	if !s.persistent {
		return
	}
	data, err := codec.MarshalRecent(s.entries)
	if err != nil {
		s.degrade(err)
		return
	}
	if err := s.storage.SetItem(domain.RecentSearchKey, string(data)); err != nil {
		s.degrade(err)
	}
}

func (s *RecentSearchService) degrade(err error) {
	logger.Warn("recent: %v; keeping recent searches in memory",
		fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err))
	s.persistent = false
}
