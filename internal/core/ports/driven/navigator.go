package driven

import "context"

// Navigator performs navigation to a result URL.
// The core never builds URLs; it passes SearchResultItem.URL through.
type Navigator interface {
	// Navigate opens url.
	Navigate(ctx context.Context, url string) error
}
