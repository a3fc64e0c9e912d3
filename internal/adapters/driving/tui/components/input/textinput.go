// Package input provides the search box component for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/styles"
)

// Placeholder is shown while the box is empty.
const Placeholder = "Search transactions, blocks, addresses, pools, assets..."

// SearchInput wraps a bubbles textinput. It starts blurred; the search
// view focuses it when the dropdown opens.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "⌕ "
	ti.CharLimit = 256
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search box, highlighted while focused.
func (s *SearchInput) View() string {
	if s.textinput.Focused() {
		return s.styles.InputField.Width(s.width).Render(s.textinput.View())
	}
	return s.styles.ClosedField.Width(s.width).Render(s.textinput.View())
}

// Value returns the raw input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// CursorEnd moves the cursor to the end of the value.
func (s *SearchInput) CursorEnd() {
	s.textinput.CursorEnd()
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the outer width of the box.
func (s *SearchInput) SetWidth(width int) {
	if width < 24 {
		width = 24
	}
	s.width = width
	// border, padding and prompt
	s.textinput.Width = width - 8
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
