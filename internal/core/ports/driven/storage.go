package driven

import "context"

// LocalStorage is client-local key/value storage, durable across sessions.
// Every mutating call is flushed before it returns.
type LocalStorage interface {
	// GetItem returns the value stored under key and whether it exists.
	GetItem(key string) (string, bool, error)

	// SetItem stores value under key.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error
}

// WatchableStorage is implemented by LocalStorage backends that can
// report changes made by other processes.
type WatchableStorage interface {
	LocalStorage

	// Watch sends on the returned channel whenever the underlying storage
	// changes. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
