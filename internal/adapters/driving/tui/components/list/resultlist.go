// Package list provides the dropdown list component for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/services"
)

// NoCursor means no row is highlighted.
const NoCursor = -1

const lovelacePerAda = 1_000_000

// Row is one selectable line of the dropdown. Exactly one field is set.
type Row struct {
	Item   *domain.SearchResultItem
	Recent *domain.RecentSearchEntry
}

// ResultList renders either grouped search results or the recent-search
// list and tracks a clamped highlight cursor over their rows.
type ResultList struct {
	groups []services.Group
	recent []domain.RecentSearchEntry
	rows   []Row
	cursor int
	styles *styles.Styles
	width  int
	height int

	// lineRows maps each rendered line to a row index, or NoCursor.
	lineRows []int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{
		cursor: NoCursor,
		styles: s,
		width:  80,
		height: 12,
	}
}

// SetGroups shows grouped results. The cursor is kept on the same item
// when it is still present, otherwise cleared.
func (r *ResultList) SetGroups(groups []services.Group) {
	prevKey := ""
	if h := r.Highlighted(); h != nil && h.Item != nil {
		prevKey = h.Item.Key()
	}
	r.groups = groups
	r.recent = nil
	r.rows = nil
	for gi := range groups {
		for ii := range groups[gi].Items {
			r.rows = append(r.rows, Row{Item: &groups[gi].Items[ii]})
		}
	}
	r.cursor = NoCursor
	if prevKey != "" {
		for i, row := range r.rows {
			if row.Item.Key() == prevKey {
				r.cursor = i
				break
			}
		}
	}
}

// SetRecent shows the recent-search list.
func (r *ResultList) SetRecent(entries []domain.RecentSearchEntry) {
	r.groups = nil
	r.recent = entries
	r.rows = nil
	for i := range entries {
		r.rows = append(r.rows, Row{Recent: &entries[i]})
	}
	r.cursor = NoCursor
}

// ShowingRecent returns true when the recent-search list is displayed.
func (r *ResultList) ShowingRecent() bool {
	return r.groups == nil && r.recent != nil
}

// Rows returns the selectable rows in display order.
func (r *ResultList) Rows() []Row {
	return r.rows
}

// Count returns the number of rows.
func (r *ResultList) Count() int {
	return len(r.rows)
}

// Cursor returns the highlighted row index, or NoCursor.
func (r *ResultList) Cursor() int {
	return r.cursor
}

// SetCursor highlights the row at index. Out of range values are ignored.
func (r *ResultList) SetCursor(index int) {
	if index >= 0 && index < len(r.rows) {
		r.cursor = index
	}
}

// ClearCursor removes the highlight.
func (r *ResultList) ClearCursor() {
	r.cursor = NoCursor
}

// Highlighted returns the highlighted row, or nil.
func (r *ResultList) Highlighted() *Row {
	if r.cursor < 0 || r.cursor >= len(r.rows) {
		return nil
	}
	return &r.rows[r.cursor]
}

// MoveUp moves the highlight up, stopping at the first row.
func (r *ResultList) MoveUp() {
	if len(r.rows) == 0 {
		return
	}
	if r.cursor > 0 {
		r.cursor--
	} else {
		r.cursor = 0
	}
}

// MoveDown moves the highlight down, stopping at the last row.
func (r *ResultList) MoveDown() {
	if r.cursor < len(r.rows)-1 {
		r.cursor++
	}
}

// RowAt returns the row index rendered at line y of the last View, or NoCursor.
func (r *ResultList) RowAt(y int) int {
	if y < 0 || y >= len(r.lineRows) {
		return NoCursor
	}
	return r.lineRows[y]
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// View renders the list.
func (r *ResultList) View() string {
	var lines []string
	var rowOf []int

	if r.ShowingRecent() {
		lines, rowOf = r.recentLines()
	} else {
		lines, rowOf = r.groupLines()
	}

	lines, r.lineRows = r.window(lines, rowOf)
	return strings.Join(lines, "\n")
}

func (r *ResultList) groupLines() ([]string, []int) {
	var lines []string
	var rowOf []int
	row := 0
	for _, g := range r.groups {
		header := fmt.Sprintf("%s (%d)", g.Category.Label(), len(g.Items))
		lines = append(lines, r.styles.Section.Render(header))
		rowOf = append(rowOf, NoCursor)
		for i := range g.Items {
			lines = append(lines, r.renderItem(row, &g.Items[i]))
			rowOf = append(rowOf, row)
			row++
		}
	}
	return lines, rowOf
}

func (r *ResultList) recentLines() ([]string, []int) {
	if len(r.recent) == 0 {
		return []string{r.styles.Muted.Render("No recent searches")}, []int{NoCursor}
	}
	lines := []string{r.styles.Section.Render("Recent searches")}
	rowOf := []int{NoCursor}
	for i := range r.recent {
		lines = append(lines, r.renderRecent(i, &r.recent[i]))
		rowOf = append(rowOf, i)
	}
	return lines, rowOf
}

// window keeps the highlighted line visible within the height.
func (r *ResultList) window(lines []string, rowOf []int) ([]string, []int) {
	if r.height <= 0 || len(lines) <= r.height {
		return lines, rowOf
	}
	target := 0
	for i, row := range rowOf {
		if row == r.cursor && row != NoCursor {
			target = i
			break
		}
	}
	start := 0
	if target >= r.height {
		start = target - r.height + 1
	}
	end := start + r.height
	return lines[start:end], rowOf[start:end]
}

func (r *ResultList) renderItem(row int, item *domain.SearchResultItem) string {
	title := item.Title
	if title == "" {
		title = item.Ident
	}
	extra := FormatExtra(item.Extra)

	avail := r.width - lipgloss.Width(extra) - 6
	title = truncate(title, avail)

	if row == r.cursor {
		line := fmt.Sprintf("> %-*s %s", avail, title, extra)
		return r.styles.Selected.Render(line)
	}
	return "  " + r.styles.Normal.Render(fmt.Sprintf("%-*s", avail, title)) + " " + r.styles.Muted.Render(extra)
}

func (r *ResultList) renderRecent(row int, e *domain.RecentSearchEntry) string {
	label := e.Query
	badge := ""
	if e.SelectedItem != nil {
		label = e.SelectedItem.Title
		if label == "" {
			label = e.SelectedItem.Ident
		}
		badge = r.styles.Badge(e.SelectedItem.Category) + " "
	}
	when := humanize.Time(e.Time())
	avail := r.width - lipgloss.Width(badge) - len(when) - 6
	label = truncate(label, avail)

	if row == r.cursor {
		return r.styles.Selected.Render(fmt.Sprintf("> %-*s %s", avail, label, when))
	}
	return "  " + badge + r.styles.Normal.Render(fmt.Sprintf("%-*s", avail, label)) + " " + r.styles.Muted.Render(when)
}

// FormatExtra renders the auxiliary payload of an item for display.
func FormatExtra(extra *domain.Extra) string {
	if extra == nil {
		return ""
	}
	//nolint:exhaustive // unknown tags fall through to default
	switch extra.Type {
	case domain.ExtraTime:
		return humanize.Time(extra.Time)
	case domain.ExtraStake:
		return "stake " + formatAda(extra.Amount)
	case domain.ExtraBalance:
		return formatAda(extra.Amount)
	default:
		return extra.Tag
	}
}

func formatAda(lovelace int64) string {
	return humanize.CommafWithDigits(float64(lovelace)/lovelacePerAda, 2) + " ₳"
}

func truncate(s string, limit int) string {
	if limit < 4 {
		limit = 4
	}
	if len([]rune(s)) <= limit {
		return s
	}
	// keep both ends: idents are recognised by prefix and suffix
	runes := []rune(s)
	head := (limit - 1) / 2
	tail := limit - 1 - head
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}
