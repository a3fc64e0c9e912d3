package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

func TestExtractQuery(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"plain", "chainsearch://search/wave", "wave"},
		{"escaped", "chainsearch://search/wave%20pool", "wave pool"},
		{"invalid prefix", "file://search/wave", ""},
		{"bad escape", "chainsearch://search/%zz", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractQuery(tt.uri))
		})
	}
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleRecentResource(t *testing.T) {
	recent := &mockRecentService{}
	require.NoError(t, recent.Record(domain.RecentSearchEntry{Query: "wave", Timestamp: 42}))
	server, err := NewServer(&Ports{Search: &mockSearchService{}, Recent: recent}, Options{})
	require.NoError(t, err)

	result, err := server.handleRecentResource(context.Background(), readRequest("chainsearch://recent"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.JSONEq(t, `[{"query":"wave","timestamp":42}]`, result.Contents[0].Text)
}

func TestServer_handleRecentResource_NoService(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}}, Options{})
	require.NoError(t, err)

	result, err := server.handleRecentResource(context.Background(), readRequest("chainsearch://recent"))

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, result.Contents[0].Text)
}

func TestServer_handleSearchResource(t *testing.T) {
	mock := &mockSearchService{resp: sampleResponse()}
	server, err := NewServer(&Ports{Search: mock}, Options{Locale: "de"})
	require.NoError(t, err)

	result, err := server.handleSearchResource(context.Background(), readRequest("chainsearch://search/wave"))

	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, `"data"`)
	assert.Contains(t, result.Contents[0].Text, `"pool1wave"`)
	assert.Equal(t, "de", mock.requests[0].Locale)
}

func TestServer_handleSearchResource_Errors(t *testing.T) {
	t.Run("missing query", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, Options{})
		require.NoError(t, err)

		_, err = server.handleSearchResource(context.Background(), readRequest("chainsearch://search/"))
		assert.Error(t, err)
	})

	t.Run("search failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: errors.New("down")}}, Options{})
		require.NoError(t, err)

		_, err = server.handleSearchResource(context.Background(), readRequest("chainsearch://search/x"))
		assert.ErrorContains(t, err, "down")
	})
}
