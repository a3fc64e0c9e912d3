package explorerapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chainsearch/internal/core/codec"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
	"github.com/custodia-labs/chainsearch/internal/logger"
)

// Ensure Backend implements the interface.
var _ driven.SearchBackend = (*Backend)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:3000/api"
	DefaultTimeout = 10 * time.Second

	// HeaderRequestID correlates a request with server logs.
	HeaderRequestID = "X-Request-Id"

	searchPath   = "/misc/search"
	maxBodyBytes = 4 << 20
	maxErrorBody = 512
)

// Config holds configuration for the explorer API backend.
type Config struct {
	// BaseURL is the API root (default: http://localhost:3000/api).
	BaseURL string

	// Timeout bounds a single request (default: 10s).
	Timeout time.Duration

	// RateLimit caps requests per second (default: 5).
	RateLimit float64

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Backend queries the explorer search endpoint.
type Backend struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// New creates a new explorer API backend.
func New(cfg Config) *Backend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Backend{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RateLimit),
	}
}

// Search sends one search request.
// Network failures, throttling and non-200 statuses wrap
// domain.ErrTransport; an unusable body wraps domain.ErrMalformedResponse.
func (b *Backend) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	params := url.Values{}
	params.Set("query", req.Query)
	if req.Locale != "" {
		params.Set("locale", req.Locale)
	}
	if req.Category != "" && req.Category != domain.CategoryAll {
		params.Set("category", req.Category.String())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderRequestID, requestID)

	logger.Debug("explorerapi: GET %s (request %s)", httpReq.URL.Redacted(), requestID)

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := b.limiter.CheckResponse(resp); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrTransport, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrTransport, err)
	}

	result, dropped, err := codec.DecodeResponse(body)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		logger.Warn("explorerapi: dropped %d undecodable items (request %s)", dropped, requestID)
	}
	return result, nil
}
