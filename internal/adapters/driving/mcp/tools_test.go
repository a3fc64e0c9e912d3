package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns grouped results", func(t *testing.T) {
		mock := &mockSearchService{resp: sampleResponse()}
		server, err := NewServer(&Ports{Search: mock}, Options{Locale: "en"})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "wave"})

		require.NoError(t, err)
		assert.Equal(t, 3, output.Count)
		assert.Equal(t, 3, output.Total)
		assert.Equal(t, []string{"pool", "block"}, output.Categories)
		assert.Equal(t, "pool1wave", output.Results[0].Ident)
		assert.Equal(t, "pool1other", output.Results[1].Ident)
		assert.Equal(t, "10", output.Results[2].Ident)
		require.NotNil(t, output.Results[0].Extra)
		assert.Equal(t, "stake", output.Results[0].Extra.Type)

		require.Len(t, mock.requests, 1)
		assert.Equal(t, "en", mock.requests[0].Locale)
	})

	t.Run("category narrows and limit caps", func(t *testing.T) {
		mock := &mockSearchService{resp: sampleResponse()}
		server, err := NewServer(&Ports{Search: mock}, Options{})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "wave", Category: "pool", Limit: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, 2, output.Total)
		assert.Equal(t, domain.CategoryPool, mock.requests[0].Category)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, Options{})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "x", Category: "nft"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("rejects empty query", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, Options{})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "  "})

		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mock := &mockSearchService{err: errors.New("backend down")}
		server, err := NewServer(&Ports{Search: mock}, Options{})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "wave"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "backend down")
	})
}

func TestServer_handleRecent(t *testing.T) {
	ctx := context.Background()
	item := sampleResponse().Data[0]

	t.Run("lists entries newest first", func(t *testing.T) {
		recent := &mockRecentService{}
		require.NoError(t, recent.Record(domain.RecentSearchEntry{Query: "old", Timestamp: 1}))
		require.NoError(t, recent.Record(domain.RecentSearchEntry{Query: "wave", SelectedItem: &item, Timestamp: 2}))
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Recent: recent}, Options{})
		require.NoError(t, err)

		_, output, err := server.handleRecent(ctx, nil, RecentInput{})

		require.NoError(t, err)
		require.Equal(t, 2, output.Count)
		assert.Equal(t, "wave", output.Entries[0].Query)
		require.NotNil(t, output.Entries[0].SelectedItem)
		assert.Equal(t, "WAVE Pool", output.Entries[0].SelectedItem.Title)
		assert.Nil(t, output.Entries[1].SelectedItem)
	})

	t.Run("limit", func(t *testing.T) {
		recent := &mockRecentService{}
		for _, q := range []string{"a", "b", "c"} {
			require.NoError(t, recent.Record(domain.RecentSearchEntry{Query: q}))
		}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Recent: recent}, Options{})
		require.NoError(t, err)

		_, output, err := server.handleRecent(ctx, nil, RecentInput{Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
	})

	t.Run("no recent service", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, Options{})
		require.NoError(t, err)

		_, output, err := server.handleRecent(ctx, nil, RecentInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Entries)
	})
}
