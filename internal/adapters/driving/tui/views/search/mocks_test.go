package search

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chainsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/services"
)

const txHash = "6f3c1a9e8b7d5f4e3c2b1a0f9e8d7c6b5a4f3e2d1c0b9a8f7e6d5c4b3a2f1e0d"

// MockBackend implements driven.SearchBackend, answering per query.
type MockBackend struct {
	mu        sync.Mutex
	Responses map[string]*domain.SearchResponse
	Err       error
	Calls     []string
}

func (m *MockBackend) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req.Query)
	if m.Err != nil {
		return nil, m.Err
	}
	if resp, ok := m.Responses[req.Query]; ok {
		return resp, nil
	}
	return &domain.SearchResponse{Data: []domain.SearchResultItem{}}, nil
}

// MockNavigator implements driven.Navigator.
type MockNavigator struct {
	URLs []string
	Err  error
}

func (m *MockNavigator) Navigate(_ context.Context, url string) error {
	m.URLs = append(m.URLs, url)
	return m.Err
}

// MockClassifier implements driven.QueryClassifier and Hinter.
type MockClassifier struct{}

func (MockClassifier) Classify(query string) (domain.Category, bool) {
	if len(query) == 64 {
		return domain.CategoryTransaction, true
	}
	return "", false
}

func (MockClassifier) Hint(query string) string {
	if len(query) == 64 {
		return "transaction or block hash"
	}
	return ""
}

func poolItems() []domain.SearchResultItem {
	return []domain.SearchResultItem{
		{Title: "WAVE Pool", Ident: "pool1wave", Category: domain.CategoryPool, URL: "/pool/pool1wave",
			Extra: &domain.Extra{Type: domain.ExtraStake, Amount: 12_000_000_000}},
		{Title: "Block 7", Ident: "7", Category: domain.CategoryBlock, URL: "/block/7"},
		{Title: "WAVE2 Pool", Ident: "pool1wave2", Category: domain.CategoryPool, URL: "/pool/pool1wave2"},
	}
}

func testBackend() *MockBackend {
	return &MockBackend{Responses: map[string]*domain.SearchResponse{
		"wave": {Data: poolItems()},
		txHash: {Data: []domain.SearchResultItem{
			{Title: txHash, Ident: txHash, Category: domain.CategoryTransaction, URL: "/tx/" + txHash},
		}},
	}}
}

type fixture struct {
	view    *View
	backend *MockBackend
	recent  *services.RecentSearchService
	nav     *MockNavigator
}

func newFixture() *fixture {
	backend := testBackend()
	recent := services.NewRecentSearchService(memory.NewLocalStorage(), 10)
	nav := &MockNavigator{}
	v := NewView(nil, nil, Deps{
		Search:     services.NewSearchService(backend, 16),
		Recent:     recent,
		Navigator:  nav,
		Classifier: MockClassifier{},
	}, Options{Debounce: time.Millisecond, StaleAfter: time.Minute})
	v.SetDimensions(100, 30)
	return &fixture{view: v, backend: backend, recent: recent, nav: nav}
}

// step runs cmd and feeds its message back into the view.
func (f *fixture) step(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	_, next := f.view.Update(cmd())
	return next
}

// search types query into the open view and runs the debounce and fetch.
func (f *fixture) search(query string) {
	f.view.input.SetValue(query)
	cmd := f.view.inputChanged(query)
	fetch := f.step(cmd)
	f.step(fetch)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
