package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driving"
	"github.com/custodia-labs/chainsearch/internal/logger"
)

// Ticket identifies one issued fetch. Results are only applied while the
// ticket's generation is still current.
type Ticket struct {
	Gen     uint64
	Request domain.SearchRequest
}

// FetchState is a snapshot of the coordinator for rendering.
type FetchState struct {
	// Query is the current stabilised query.
	Query string

	// Data is the response being shown, possibly for an older query.
	Data *domain.SearchResponse

	// DataQuery is the query Data was fetched for.
	DataQuery string

	// IsLoading is true while fetching with nothing to show.
	IsLoading bool

	// IsFetching is true while a request is outstanding.
	IsFetching bool

	// Err is the error of the last completed request for Query.
	Err error
}

// Refreshing returns true when shown data is being revalidated.
func (s FetchState) Refreshing() bool {
	return s.IsFetching && s.Data != nil
}

// CoordinatorOptions configures a FetchCoordinator.
type CoordinatorOptions struct {
	// Locale is sent with every request.
	Locale string

	// Scope restricts requests to one category. Empty or "all" is unscoped.
	Scope domain.Category

	// StaleAfter is how long a cached response suppresses a refetch.
	StaleAfter time.Duration
}

// FetchCoordinator turns stabilised queries into backend requests and
// keeps a stale-while-revalidate view of their results.
//
// Every Submit, Refetch, Cancel and Reset bumps a generation counter.
// A completed request is applied only if it carries the current
// generation, so results land in issue order regardless of arrival order.
type FetchCoordinator struct {
	search driving.SearchService
	opts   CoordinatorOptions
	now    func() time.Time

	mu        sync.Mutex
	gen       uint64
	query     string
	data      *domain.SearchResponse
	dataQuery string
	fetching  bool
	err       error
}

// NewFetchCoordinator creates a coordinator over the search service.
func NewFetchCoordinator(search driving.SearchService, opts CoordinatorOptions) *FetchCoordinator {
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = domain.DefaultAppSettings().Search.StaleAfter
	}
	return &FetchCoordinator{
		search: search,
		opts:   opts,
		now:    time.Now,
	}
}

// Submit records a new stabilised query.
// Cached data for the query is shown immediately. The returned ticket must
// be run when ok is true; that happens when nothing is cached or the
// cached response is stale. An empty query clears data and issues nothing.
func (c *FetchCoordinator) Submit(query string) (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	query = strings.TrimSpace(query)
	c.gen++
	c.query = query
	c.err = nil

	if query == "" {
		c.data = nil
		c.dataQuery = ""
		c.fetching = false
		return Ticket{}, false
	}

	req := c.request(query)
	if c.search != nil {
		if cached, ok := c.search.Cached(req); ok && cached.Response != nil {
			c.data = cached.Response
			c.dataQuery = query
			if cached.Fresh(c.now(), c.opts.StaleAfter) {
				logger.Debug("coordinator: fresh cache hit for %q", query)
				c.fetching = false
				return Ticket{}, false
			}
			logger.Debug("coordinator: stale cache hit for %q, revalidating", query)
		}
	}

	c.fetching = true
	return Ticket{Gen: c.gen, Request: req}, true
}

// Refetch re-issues the current query regardless of cache freshness.
func (c *FetchCoordinator) Refetch() (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.query == "" {
		return Ticket{}, false
	}
	c.gen++
	c.fetching = true
	return Ticket{Gen: c.gen, Request: c.request(c.query)}, true
}

// Run executes the ticket's request. It does not touch coordinator state;
// pass the outcome to Apply.
func (c *FetchCoordinator) Run(ctx context.Context, t Ticket) (*domain.SearchResponse, error) {
	if c.search == nil {
		return nil, domain.ErrSearchUnavailable
	}
	return c.search.Search(ctx, t.Request)
}

// Apply records the outcome of a ticket.
// It returns false and changes nothing when the ticket is stale.
func (c *FetchCoordinator) Apply(t Ticket, resp *domain.SearchResponse, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.Gen == 0 || t.Gen != c.gen {
		logger.Debug("coordinator: dropping stale result gen=%d current=%d", t.Gen, c.gen)
		return false
	}

	c.fetching = false
	if err != nil {
		c.err = err
		if c.dataQuery != t.Request.Query {
			c.data = nil
			c.dataQuery = ""
		}
		return true
	}

	if resp == nil {
		resp = emptyResponse()
	}
	c.data = resp
	c.dataQuery = t.Request.Query
	c.err = nil
	return true
}

// Cancel invalidates every outstanding ticket.
func (c *FetchCoordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.fetching = false
}

// Reset cancels outstanding tickets and returns to the initial state.
func (c *FetchCoordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.query = ""
	c.data = nil
	c.dataQuery = ""
	c.fetching = false
	c.err = nil
}

// State returns a snapshot of the coordinator.
func (c *FetchCoordinator) State() FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FetchState{
		Query:      c.query,
		Data:       c.data,
		DataQuery:  c.dataQuery,
		IsLoading:  c.fetching && c.data == nil,
		IsFetching: c.fetching,
		Err:        c.err,
	}
}

func (c *FetchCoordinator) request(query string) domain.SearchRequest {
	return domain.SearchRequest{
		Query:    query,
		Locale:   c.opts.Locale,
		Category: c.opts.Scope,
	}.Normalized()
}
