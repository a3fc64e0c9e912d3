package domain

import "time"

const unknownDescription = "Unknown"

// StorageBackend selects where recent searches are persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageFile keeps a JSON document in the config directory.
	StorageFile StorageBackend = "file"

	// StorageSQLite keeps a key/value table in a SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps nothing across sessions.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageFile, StorageSQLite, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageFile:
		return "File (JSON, shared across processes)"
	case StorageSQLite:
		return "SQLite (key/value table)"
	case StorageMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// APISettings configures the remote search backend.
type APISettings struct {
	// BaseURL is the search API root, e.g. http://localhost:3000/api.
	BaseURL string

	// Timeout bounds a single request.
	Timeout time.Duration

	// RateLimit caps requests per second sent to the backend.
	RateLimit float64
}

// ExplorerSettings configures navigation targets.
type ExplorerSettings struct {
	// BaseURL resolves relative result URLs.
	BaseURL string
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Locale is passed through to the backend.
	Locale string

	// Debounce is the quiet period before a query is sent.
	Debounce time.Duration

	// StaleAfter is how long a cached response is served without refetching.
	StaleAfter time.Duration

	// CacheSize is the number of responses kept in the LRU cache.
	CacheSize int
}

// RecentSettings holds recent-search configuration.
type RecentSettings struct {
	// MaxEntries caps the recent-search list.
	MaxEntries int

	// Backend selects the persistence backend.
	Backend StorageBackend
}

// AppSettings holds all application settings.
type AppSettings struct {
	API      APISettings
	Explorer ExplorerSettings
	Search   SearchSettings
	Recent   RecentSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:   "http://localhost:3000/api",
			Timeout:   10 * time.Second,
			RateLimit: 5,
		},
		Explorer: ExplorerSettings{
			BaseURL: "http://localhost:3000",
		},
		Search: SearchSettings{
			Locale:     "en",
			Debounce:   300 * time.Millisecond,
			StaleAfter: 30 * time.Second,
			CacheSize:  128,
		},
		Recent: RecentSettings{
			MaxEntries: DefaultRecentMax,
			Backend:    StorageFile,
		},
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{
		StorageFile,
		StorageSQLite,
		StorageMemory,
	}
}
