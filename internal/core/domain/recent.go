package domain

import "time"

// RecentSearchKey is the local storage key holding the recent-search list.
const RecentSearchKey = "recentSearches"

// DefaultRecentMax is the default capacity of the recent-search list.
const DefaultRecentMax = 10

// RecentSearchEntry is a past query, optionally with the item that was selected.
type RecentSearchEntry struct {
	// Query is the raw input at the time of recording.
	Query string

	// SelectedItem is set when the entry was recorded by selecting a result.
	SelectedItem *SearchResultItem

	// Timestamp is milliseconds since the Unix epoch.
	Timestamp int64
}

// Time returns the timestamp as a time.Time.
func (e RecentSearchEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
