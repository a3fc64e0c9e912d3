// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/services"
)

// QuerySettled is sent when the debounce timer for a query fires.
// Seq is compared against the debouncer's current sequence; older
// ticks are ignored.
type QuerySettled struct {
	Seq   uint64
	Query string
}

// FetchCompleted carries the outcome of one backend request.
type FetchCompleted struct {
	Ticket   services.Ticket
	Response *domain.SearchResponse
	Err      error
}

// RecentChanged is sent when recent-search storage changed outside this process.
type RecentChanged struct{}

// RecentWatchClosed is sent when the storage watch channel closes.
type RecentWatchClosed struct{}

// NavigateCompleted is sent after the navigator handled a selection.
type NavigateCompleted struct {
	URL string
	Err error
}
