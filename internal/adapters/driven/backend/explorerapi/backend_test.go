package explorerapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *Backend {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL + "/api/", RateLimit: 100})
}

func TestBackend_Search_SendsQuery(t *testing.T) {
	var gotPath, gotQuery, gotLocale, gotCategory, gotRequestID string
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotLocale = r.URL.Query().Get("locale")
		gotCategory = r.URL.Query().Get("category")
		gotRequestID = r.Header.Get(HeaderRequestID)
		_, _ = w.Write([]byte(`{"data":[{"title":"WAVE Pool","ident":"pool1wave","category":"pool","url":"/pool/pool1wave"}]}`))
	})

	resp, err := backend.Search(context.Background(), domain.SearchRequest{
		Query: "wave pool", Locale: "en", Category: domain.CategoryPool,
	})

	require.NoError(t, err)
	assert.Equal(t, "/api/misc/search", gotPath)
	assert.Equal(t, "wave pool", gotQuery)
	assert.Equal(t, "en", gotLocale)
	assert.Equal(t, "pool", gotCategory)
	assert.Len(t, gotRequestID, 36)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "WAVE Pool", resp.Data[0].Title)
}

func TestBackend_Search_OmitsEmptyCategory(t *testing.T) {
	hasCategory := true
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		hasCategory = r.URL.Query().Has("category")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	resp, err := backend.Search(context.Background(), domain.SearchRequest{Query: "1"})

	require.NoError(t, err)
	assert.False(t, hasCategory)
	assert.Empty(t, resp.Data)
}

func TestBackend_Search_ServerError(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := backend.Search(context.Background(), domain.SearchRequest{Query: "1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "500")
}

func TestBackend_Search_MalformedBody(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	_, err := backend.Search(context.Background(), domain.SearchRequest{Query: "1"})

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.NotErrorIs(t, err, domain.ErrTransport)
}

func TestBackend_Search_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	backend := New(Config{BaseURL: url, Timeout: time.Second})

	_, err := backend.Search(context.Background(), domain.SearchRequest{Query: "1"})

	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestBackend_Search_CancelledContext(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := backend.Search(ctx, domain.SearchRequest{Query: "1"})

	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackend_Search_HonoursRetryAfter(t *testing.T) {
	var hits atomic.Int32
	backend := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set(HeaderRetryAfter, "60")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := backend.Search(context.Background(), domain.SearchRequest{Query: "1"})
	require.Error(t, err)
	var rl *RateLimitError
	assert.ErrorAs(t, err, &rl)

	_, err = backend.Search(context.Background(), domain.SearchRequest{Query: "2"})
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, int32(1), hits.Load())
}
