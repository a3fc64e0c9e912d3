package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/views/search"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// searchView is the search provider.
	searchView *search.View

	// help renders keybinding help.
	help help.Model

	// showHelp toggles the full help panel.
	showHelp bool

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	h := help.New()
	h.Styles.ShortKey = s.Help
	h.Styles.ShortDesc = s.Muted
	h.Styles.FullKey = s.Help
	h.Styles.FullDesc = s.Muted

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		searchView: search.NewView(s, km, ports.deps(), opts.view()),
		help:       h,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("chainsearch"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if keymap.Matches(key, a.keymap.Quit) {
			a.searchView.Shutdown()
			return a, tea.Quit
		}
		// "?" is an ordinary character while typing a query
		if !a.searchView.IsOpen() && keymap.Matches(key, a.keymap.Help) {
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		}
	}

	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.showHelp {
		panel := a.styles.Border.Padding(1, 2).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				a.styles.Title.Render("Keys"),
				"",
				a.help.View(a.keymap),
			),
		)
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, panel)
	}
	return a.searchView.View()
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.searchView.SetDimensions(width, height)
}

// SearchView returns the search provider view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// ShowingHelp returns whether the help panel is shown.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Ready returns whether the app has received dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// Run starts the Bubbletea program and blocks until it exits.
func (a *App) Run(opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(a.ctx),
	}, opts...)

	p := tea.NewProgram(a, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
