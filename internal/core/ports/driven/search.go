package driven

import (
	"context"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

// SearchBackend resolves a query into entity records.
// It owns the transport; callers never build requests themselves.
type SearchBackend interface {
	// Search sends a single request. Transport failures wrap
	// domain.ErrTransport and unexpected bodies wrap domain.ErrMalformedResponse.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}

// QueryClassifier guesses which category a raw query refers to
// from its shape alone, without asking the backend.
type QueryClassifier interface {
	// Classify returns the likely category and true, or false if the
	// query has no recognisable shape.
	Classify(query string) (domain.Category, bool)
}
