// Package search provides the global search dropdown for the TUI.
//
// The view is a small state machine: Closed, then Open showing either the
// recent-search list, a loading line, grouped results or an error.
// Keystrokes feed a debouncer; stabilised queries go through a
// FetchCoordinator so responses are applied in the order they were issued.
package search

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/components/debounce"
	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driving"
	"github.com/custodia-labs/chainsearch/internal/core/services"
	"github.com/custodia-labs/chainsearch/internal/logger"
)

// Hinter describes what a raw query looks like. Classifiers may implement it.
type Hinter interface {
	Hint(query string) string
}

// Deps are the collaborators of the view. Search is required; the rest
// may be nil and the matching feature is disabled.
type Deps struct {
	Search     driving.SearchService
	Recent     driving.RecentSearchService
	Navigator  driven.Navigator
	Classifier driven.QueryClassifier
}

// Options configure the view.
type Options struct {
	// Locale is sent with every request.
	Locale string

	// Scope restricts requests to one category.
	Scope domain.Category

	// Debounce is the quiet period before a query is sent.
	Debounce time.Duration

	// StaleAfter is how long a cached response suppresses a refetch.
	StaleAfter time.Duration

	// Homepage switches the header to the large variant.
	Homepage bool
}

// View is the search dropdown with input, tabs, results and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	deps      Deps
	opts      Options
	debouncer *debounce.Debouncer
	fetcher   *services.FetchCoordinator
	ctx       context.Context
	cancel    context.CancelFunc
	changes   <-chan struct{}

	open   bool
	active domain.Category
	tabs   []domain.Category
	notice error
	width  int
	height int
	ready  bool
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, deps Deps, opts Options) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewSearchInput(s),
		list:      list.NewResultList(s),
		statusbar: status.NewBar(s, km),
		deps:      deps,
		opts:      opts,
		debouncer: debounce.New(opts.Debounce),
		fetcher: services.NewFetchCoordinator(deps.Search, services.CoordinatorOptions{
			Locale:     opts.Locale,
			Scope:      opts.Scope,
			StaleAfter: opts.StaleAfter,
		}),
		ctx:    context.Background(),
		active: domain.CategoryAll,
		width:  80,
		height: 24,
	}
	v.statusbar.SetEphemeral(deps.Recent != nil && !deps.Recent.Persistent())
	return v
}

// WithContext sets the context used for requests and storage watches.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init subscribes to recent-search changes made by other processes.
func (v *View) Init() tea.Cmd {
	if v.deps.Recent == nil {
		return nil
	}
	v.changes = v.deps.Recent.Changes(v.ctx)
	return v.waitForChange()
}

// Update handles messages for the search view.
//
//nolint:gocyclo // central message handler
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.FocusMsg:
		return v, v.Open()

	case tea.BlurMsg:
		v.Close()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		return v.handleMouseMsg(msg)

	case messages.QuerySettled:
		if q, ok := v.debouncer.Settle(msg); ok {
			return v, v.submit(q)
		}
		return v, nil

	case messages.FetchCompleted:
		if msg.Err != nil {
			logger.Debug("search: request %q failed: %v", msg.Ticket.Request.Query, msg.Err)
		}
		if v.fetcher.Apply(msg.Ticket, msg.Response, msg.Err) {
			v.refresh()
		}
		return v, nil

	case messages.RecentChanged:
		if err := v.deps.Recent.Reload(); err != nil {
			logger.Warn("search: reloading recent searches: %v", err)
		}
		v.refresh()
		return v, v.waitForChange()

	case messages.RecentWatchClosed:
		v.changes = nil
		return v, nil

	case messages.NavigateCompleted:
		v.notice = msg.Err
		if msg.Err != nil {
			logger.Warn("search: opening %s: %v", msg.URL, msg.Err)
		}
		return v, nil
	}

	// cursor blink and other textinput internals
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if !v.open {
		if keymap.Matches(msg.String(), v.keymap.Open) {
			return v, v.Open()
		}
		return v, nil
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Close):
		v.Close()
		return v, nil
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
		return v, nil
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
		return v, nil
	case keymap.Matches(key, v.keymap.NextTab):
		v.cycleTab(services.NextCategory)
		return v, nil
	case keymap.Matches(key, v.keymap.PrevTab):
		v.cycleTab(services.PrevCategory)
		return v, nil
	case keymap.Matches(key, v.keymap.Refetch):
		return v, v.refetch()
	case keymap.Matches(key, v.keymap.ClearHistory):
		v.clearHistory()
		return v, nil
	case keymap.Matches(key, v.keymap.Select):
		return v, v.selectHighlighted()
	}

	before := v.input.Value()
	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	after := v.input.Value()
	if after == before {
		return v, inputCmd
	}
	return v, tea.Batch(inputCmd, v.inputChanged(after))
}

func (v *View) handleMouseMsg(msg tea.MouseMsg) (*View, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return v, nil
	}

	top := v.listTop()
	inputTop := lipgloss.Height(v.renderHeader())
	onInput := msg.Y >= inputTop && msg.Y < inputTop+lipgloss.Height(v.renderInput())

	if !v.open {
		if onInput {
			return v, v.Open()
		}
		return v, nil
	}

	if row := v.list.RowAt(msg.Y - top); row != list.NoCursor {
		v.list.SetCursor(row)
		return v, v.selectHighlighted()
	}
	if msg.Y < inputTop {
		v.Close()
	}
	return v, nil
}

// Open moves the view to the open state. With no prior input the recent
// searches are the initial results.
func (v *View) Open() tea.Cmd {
	if v.open {
		return nil
	}
	v.open = true
	v.notice = nil
	if v.opts.Scope != "" {
		v.active = v.opts.Scope
	}
	cmd := v.input.Focus()
	v.refresh()
	return cmd
}

// Close discards session state: input, pending query, fetched data and
// the active tab. Recent searches are kept.
func (v *View) Close() {
	if !v.open {
		return
	}
	v.open = false
	v.input.Reset()
	v.input.Blur()
	v.debouncer.Reset()
	v.fetcher.Reset()
	v.cancelFetch()
	v.active = domain.CategoryAll
	v.tabs = nil
	v.list.SetRecent(nil)
	v.refresh()
}

func (v *View) inputChanged(value string) tea.Cmd {
	q, now, cmd := v.debouncer.Change(value)
	if now {
		return v.submit(q)
	}
	return cmd
}

// submit hands a stabilised query to the coordinator and runs the
// request it asks for.
func (v *View) submit(query string) tea.Cmd {
	ticket, ok := v.fetcher.Submit(query)
	if !ok {
		v.cancelFetch()
	}
	v.refresh()
	if !ok {
		return nil
	}
	return v.fetch(ticket)
}

func (v *View) refetch() tea.Cmd {
	ticket, ok := v.fetcher.Refetch()
	if !ok {
		return nil
	}
	v.refresh()
	return v.fetch(ticket)
}

func (v *View) fetch(t services.Ticket) tea.Cmd {
	v.cancelFetch()
	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	fetcher := v.fetcher
	return func() tea.Msg {
		defer cancel()
		resp, err := fetcher.Run(ctx, t)
		return messages.FetchCompleted{Ticket: t, Response: resp, Err: err}
	}
}

func (v *View) cancelFetch() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// selectHighlighted activates the highlighted row, or submits the raw
// input when nothing is highlighted.
func (v *View) selectHighlighted() tea.Cmd {
	row := v.list.Highlighted()
	switch {
	case row == nil:
		return v.submitInput()
	case row.Item != nil:
		item := *row.Item
		v.record(domain.RecentSearchEntry{Query: v.input.Value(), SelectedItem: &item})
		v.Close()
		return v.navigate(item.URL)
	case row.Recent != nil && row.Recent.SelectedItem != nil:
		entry := *row.Recent
		v.record(domain.RecentSearchEntry{Query: entry.Query, SelectedItem: entry.SelectedItem})
		v.Close()
		return v.navigate(entry.SelectedItem.URL)
	case row.Recent != nil:
		query := row.Recent.Query
		v.input.SetValue(query)
		v.input.CursorEnd()
		v.debouncer.Change(query)
		return v.submitInput()
	}
	return nil
}

func (v *View) submitInput() tea.Cmd {
	raw := v.input.Value()
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	v.record(domain.RecentSearchEntry{Query: raw})

	q, ok := v.debouncer.Flush()
	if !ok {
		v.refresh()
		return nil
	}
	return v.submit(q)
}

func (v *View) record(entry domain.RecentSearchEntry) {
	if v.deps.Recent == nil {
		return
	}
	if err := v.deps.Recent.Record(entry); err != nil {
		logger.Debug("search: not recording %q: %v", entry.Query, err)
	}
	v.statusbar.SetEphemeral(!v.deps.Recent.Persistent())
}

func (v *View) clearHistory() {
	if v.deps.Recent == nil || !v.list.ShowingRecent() {
		return
	}
	if err := v.deps.Recent.Clear(); err != nil {
		logger.Warn("search: clearing recent searches: %v", err)
	}
	v.statusbar.SetEphemeral(!v.deps.Recent.Persistent())
	v.refresh()
}

func (v *View) navigate(url string) tea.Cmd {
	nav := v.deps.Navigator
	ctx := v.ctx
	return func() tea.Msg {
		if nav == nil {
			return messages.NavigateCompleted{URL: url, Err: ErrNoNavigator}
		}
		return messages.NavigateCompleted{URL: url, Err: nav.Navigate(ctx, url)}
	}
}

func (v *View) waitForChange() tea.Cmd {
	ch := v.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return messages.RecentWatchClosed{}
		}
		return messages.RecentChanged{}
	}
}

func (v *View) cycleTab(step func([]domain.Category, domain.Category) domain.Category) {
	if v.list.ShowingRecent() || len(v.tabs) == 0 {
		return
	}
	v.active = step(v.tabs, v.active)
	v.list.ClearCursor()
	v.refresh()
}

// refresh derives the list and status bar from the coordinator state.
func (v *View) refresh() {
	defer v.layoutList()

	if !v.open {
		v.statusbar.SetState(status.StateClosed)
		return
	}

	st := v.fetcher.State()
	if st.Query == "" {
		v.tabs = nil
		var entries []domain.RecentSearchEntry
		if v.deps.Recent != nil {
			entries = v.deps.Recent.List()
		}
		if entries == nil {
			entries = []domain.RecentSearchEntry{}
		}
		v.list.SetRecent(entries)
		v.statusbar.SetState(status.StateRecent)
		return
	}

	// An active tab missing from the response stays selected and shows
	// the empty state.
	v.tabs = services.Tabs(st.Data)
	if !containsCategory(v.tabs, v.active) {
		v.tabs = append(v.tabs, v.active)
	}
	items := services.FilterItems(st.Data, v.active)
	v.list.SetGroups(services.GroupItems(items))
	v.statusbar.SetResultCount(len(items))

	switch {
	case st.Err != nil:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(st.Err.Error())
	case st.IsLoading:
		v.statusbar.SetState(status.StateLoading)
	case st.Refreshing():
		v.statusbar.SetState(status.StateRefreshing)
	case len(items) == 0:
		v.statusbar.SetState(status.StateEmpty)
	default:
		v.statusbar.SetState(status.StateResults)
	}
}

func emptyMessage(active domain.Category) string {
	if active == domain.CategoryAll {
		return "No results"
	}
	return "No " + strings.ToLower(active.Label()) + " match this query"
}

func containsCategory(tabs []domain.Category, c domain.Category) bool {
	for _, t := range tabs {
		if t == c {
			return true
		}
	}
	return false
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.renderTop()}
	switch {
	case v.open && v.State() == status.StateEmpty:
		sections = append(sections, v.styles.Muted.Render(emptyMessage(v.active)))
	case v.open:
		sections = append(sections, v.list.View())
	case v.notice != nil:
		sections = append(sections, v.styles.Error.Render("Could not open result: "+v.notice.Error()))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	gap := v.height - lipgloss.Height(body) - 1
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + v.statusbar.View()
}

// renderTop renders everything above the dropdown list.
func (v *View) renderTop() string {
	parts := []string{v.renderHeader(), v.renderInput()}
	if v.open {
		if hint := v.renderHint(); hint != "" {
			parts = append(parts, hint)
		}
		if tabs := v.renderTabs(); tabs != "" {
			parts = append(parts, tabs)
		}
		if err := v.fetcher.State().Err; err != nil {
			parts = append(parts, v.styles.Error.Render("Search failed: "+err.Error()))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *View) renderHeader() string {
	if v.opts.Homepage {
		title := v.styles.Title.Render("Cardano Explorer")
		sub := v.styles.Muted.Render("Search the chain by transaction, block, address, pool, asset or epoch")
		return lipgloss.JoinVertical(lipgloss.Left, title, sub, "")
	}
	return v.styles.Title.Render("chainsearch")
}

func (v *View) renderInput() string {
	return v.input.View()
}

func (v *View) renderHint() string {
	raw := strings.TrimSpace(v.input.Value())
	if raw == "" || v.deps.Classifier == nil {
		return ""
	}
	if h, ok := v.deps.Classifier.(Hinter); ok {
		if hint := h.Hint(raw); hint != "" {
			return v.styles.Muted.Render("Looks like a " + hint)
		}
		return ""
	}
	if c, ok := v.deps.Classifier.Classify(raw); ok {
		return v.styles.Muted.Render("Looks like " + c.Label())
	}
	return ""
}

func (v *View) renderTabs() string {
	if len(v.tabs) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(v.tabs))
	for _, c := range v.tabs {
		if c == v.active {
			rendered = append(rendered, v.styles.ActiveTab.Render(c.Label()))
		} else {
			rendered = append(rendered, v.styles.Tab.Render(c.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// listTop returns the screen row where the dropdown list starts.
func (v *View) listTop() int {
	return lipgloss.Height(v.renderTop())
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.layoutList()
}

// layoutList gives the list whatever height the top section and the
// status bar leave free.
func (v *View) layoutList() {
	listHeight := v.height - lipgloss.Height(v.renderTop()) - 2
	if listHeight < 3 {
		listHeight = 3
	}
	v.list.SetDimensions(v.width, listHeight)
}

// IsOpen returns whether the dropdown is open.
func (v *View) IsOpen() bool {
	return v.open
}

// Input returns the raw input value.
func (v *View) Input() string {
	return v.input.Value()
}

// Query returns the stabilised query.
func (v *View) Query() string {
	return v.fetcher.State().Query
}

// ActiveCategory returns the active tab.
func (v *View) ActiveCategory() domain.Category {
	return v.active
}

// Tabs returns the category tabs of the current response.
func (v *View) Tabs() []domain.Category {
	return v.tabs
}

// Rows returns the dropdown rows in display order.
func (v *View) Rows() []list.Row {
	return v.list.Rows()
}

// Cursor returns the highlighted row index, or list.NoCursor.
func (v *View) Cursor() int {
	return v.list.Cursor()
}

// State returns the presenter state shown in the status bar.
func (v *View) State() status.State {
	return v.statusbar.State()
}

// FetchState returns the coordinator snapshot.
func (v *View) FetchState() services.FetchState {
	return v.fetcher.State()
}

// Err returns the last navigation error, if any.
func (v *View) Err() error {
	return v.notice
}

// Ready returns whether the view has received dimensions.
func (v *View) Ready() bool {
	return v.ready
}

// Width returns the view width.
func (v *View) Width() int {
	return v.width
}

// Height returns the view height.
func (v *View) Height() int {
	return v.height
}

// Shutdown invalidates in-flight work. Used when the program exits.
func (v *View) Shutdown() {
	v.fetcher.Cancel()
	v.cancelFetch()
}
