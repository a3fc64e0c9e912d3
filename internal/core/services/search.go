package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driving"
	"github.com/custodia-labs/chainsearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService queries the search backend and remembers recent responses.
// Responses are cached per normalised request so that reopening a query
// can show data immediately while a revalidation runs.
type SearchService struct {
	backend driven.SearchBackend
	cache   *lru.Cache[string, domain.CachedResponse]
	now     func() time.Time
}

// NewSearchService creates a new search service.
// A cacheSize of zero or less uses the default size.
func NewSearchService(backend driven.SearchBackend, cacheSize int) *SearchService {
	if cacheSize <= 0 {
		cacheSize = domain.DefaultAppSettings().Search.CacheSize
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, domain.CachedResponse](cacheSize)
	return &SearchService{
		backend: backend,
		cache:   cache,
		now:     time.Now,
	}
}

// Search sends the request to the backend.
// An empty query returns an empty response without contacting the backend.
// A malformed backend payload is logged and treated as an empty result set.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	req = req.Normalized()
	logger.Debug("search: query=%q locale=%q category=%q", req.Query, req.Locale, req.Category)

	if req.Query == "" {
		return emptyResponse(), nil
	}
	if s.backend == nil {
		return nil, domain.ErrSearchUnavailable
	}

	start := s.now()
	resp, err := s.backend.Search(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedResponse) {
			logger.Warn("search: discarding malformed response for %q: %v", req.Query, err)
			return emptyResponse(), nil
		}
		return nil, fmt.Errorf("search %q: %w", req.Query, err)
	}
	if resp == nil {
		logger.Warn("search: backend returned no response for %q", req.Query)
		return emptyResponse(), nil
	}
	if resp.Data == nil {
		resp.Data = []domain.SearchResultItem{}
	}

	logger.Debug("search: %d items for %q in %s", len(resp.Data), req.Query, s.now().Sub(start))
	s.cache.Add(req.CacheKey(), domain.CachedResponse{Response: resp, FetchedAt: s.now()})
	return resp, nil
}

// Cached returns the last successful response for the request, if any.
func (s *SearchService) Cached(req domain.SearchRequest) (domain.CachedResponse, bool) {
	return s.cache.Get(req.CacheKey())
}

func emptyResponse() *domain.SearchResponse {
	return &domain.SearchResponse{Data: []domain.SearchResultItem{}}
}
