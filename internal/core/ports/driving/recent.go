package driving

import (
	"context"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

// RecentSearchService manages the recent-search list.
// All operations are synchronous; mutations are flushed before returning.
type RecentSearchService interface {
	// Record adds entry at the head, replacing any entry with the same query.
	Record(entry domain.RecentSearchEntry) error

	// List returns entries most recent first.
	List() []domain.RecentSearchEntry

	// Clear removes every entry.
	Clear() error

	// Reload re-reads the list from storage.
	Reload() error

	// Changes reports storage changes made outside this process.
	// Returns nil if the storage backend cannot be watched.
	Changes(ctx context.Context) <-chan struct{}

	// Persistent returns false once the store has fallen back to memory.
	Persistent() bool
}
