package driving

import (
	"context"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
// It is the single source of truth for network state: callers never
// talk to the backend directly.
type SearchService interface {
	// Search issues a request to the backend and caches a successful response.
	// Malformed responses are reported as empty results, not errors.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)

	// Cached returns the last response stored for req, if any.
	Cached(req domain.SearchRequest) (domain.CachedResponse, bool)
}
