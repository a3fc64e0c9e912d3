package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

// mockBackend implements driven.SearchBackend for testing.
type mockBackend struct {
	resp     *domain.SearchResponse
	err      error
	calls    int
	requests []domain.SearchRequest
}

func (m *mockBackend) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.calls++
	m.requests = append(m.requests, req)
	return m.resp, m.err
}

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	SearchFunc func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
	CachedFunc func(req domain.SearchRequest) (domain.CachedResponse, bool)
}

func (m *mockSearchService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, req)
	}
	return &domain.SearchResponse{Data: []domain.SearchResultItem{}}, nil
}

func (m *mockSearchService) Cached(req domain.SearchRequest) (domain.CachedResponse, bool) {
	if m.CachedFunc != nil {
		return m.CachedFunc(req)
	}
	return domain.CachedResponse{}, false
}

var errStorage = errors.New("disk full")

// failingStorage implements driven.LocalStorage with injectable errors.
type failingStorage struct {
	getErr    error
	setErr    error
	removeErr error
	value     string
	present   bool
}

func (f *failingStorage) GetItem(string) (string, bool, error) {
	return f.value, f.present, f.getErr
}

func (f *failingStorage) SetItem(_, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.value, f.present = value, true
	return nil
}

func (f *failingStorage) RemoveItem(string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.value, f.present = "", false
	return nil
}

// watchableStorage adds a fixed change channel to failingStorage.
type watchableStorage struct {
	failingStorage
	ch chan struct{}
}

func (w *watchableStorage) Watch(context.Context) (<-chan struct{}, error) {
	return w.ch, nil
}

func item(category domain.Category, ident string) domain.SearchResultItem {
	return domain.SearchResultItem{
		Title:    ident,
		Ident:    ident,
		Category: category,
		URL:      "/" + string(category) + "/" + ident,
	}
}
