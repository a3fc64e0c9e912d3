package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/services"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct{}

func (MockSearchService) Search(context.Context, domain.SearchRequest) (*domain.SearchResponse, error) {
	return &domain.SearchResponse{Data: []domain.SearchResultItem{}}, nil
}

func (MockSearchService) Cached(domain.SearchRequest) (domain.CachedResponse, bool) {
	return domain.CachedResponse{}, false
}

func newTestPorts() *Ports {
	return &Ports{
		Search: MockSearchService{},
		Recent: services.NewRecentSearchService(nil, 10),
	}
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil", nil, ErrInvalidPorts},
		{"no search", &Ports{Recent: services.NewRecentSearchService(nil, 1)}, ErrMissingSearchService},
		{"no recent", &Ports{Search: MockSearchService{}}, ErrMissingRecentSearches},
		{"complete", newTestPorts(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(newTestPorts(), Options{Locale: "en"})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.False(t, app.Ready())
	assert.False(t, app.SearchView().IsOpen())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{}, Options{})

	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(newTestPorts(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.True(t, app.Ready())
	assert.Equal(t, 100, app.SearchView().Width())
	assert.Contains(t, app.View(), "chainsearch")
}

func TestApp_Quit(t *testing.T) {
	app, err := NewApp(newTestPorts(), Options{})
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_HelpToggleOnlyWhileClosed(t *testing.T) {
	app, err := NewApp(newTestPorts(), Options{})
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	question := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}

	app.Update(question)
	assert.True(t, app.ShowingHelp())
	assert.Contains(t, app.View(), "Keys")

	app.Update(question)
	assert.False(t, app.ShowingHelp())

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, app.SearchView().IsOpen())
	app.Update(question)
	assert.False(t, app.ShowingHelp())
	assert.Equal(t, "?", app.SearchView().Input())
}

func TestApp_WithContext(t *testing.T) {
	app, err := NewApp(newTestPorts(), Options{})
	require.NoError(t, err)

	assert.Same(t, app, app.WithContext(context.Background()))
}
