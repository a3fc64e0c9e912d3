package mcp

import (
	"context"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	resp     *domain.SearchResponse
	err      error
	requests []domain.SearchRequest
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.resp == nil {
		return &domain.SearchResponse{Data: []domain.SearchResultItem{}}, nil
	}
	return m.resp, nil
}

func (m *mockSearchService) Cached(domain.SearchRequest) (domain.CachedResponse, bool) {
	return domain.CachedResponse{}, false
}

// mockRecentService is a mock implementation of driving.RecentSearchService.
type mockRecentService struct {
	entries []domain.RecentSearchEntry
}

func (m *mockRecentService) Record(e domain.RecentSearchEntry) error {
	m.entries = append([]domain.RecentSearchEntry{e}, m.entries...)
	return nil
}

func (m *mockRecentService) List() []domain.RecentSearchEntry {
	return m.entries
}

func (m *mockRecentService) Clear() error {
	m.entries = nil
	return nil
}

func (m *mockRecentService) Reload() error { return nil }

func (m *mockRecentService) Changes(context.Context) <-chan struct{} { return nil }

func (m *mockRecentService) Persistent() bool { return true }

func sampleResponse() *domain.SearchResponse {
	return &domain.SearchResponse{Data: []domain.SearchResultItem{
		{Title: "WAVE Pool", Ident: "pool1wave", Category: domain.CategoryPool, URL: "/pool/pool1wave",
			Extra: &domain.Extra{Type: domain.ExtraStake, Amount: 1_000_000}},
		{Title: "Block 10", Ident: "10", Category: domain.CategoryBlock, URL: "/block/10"},
		{Title: "Other Pool", Ident: "pool1other", Category: domain.CategoryPool, URL: "/pool/pool1other"},
	}}
}
