// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/chainsearch/internal/adapters/driving/tui/styles"
)

// State is the dropdown state shown on the left of the bar.
type State string

// Presenter states.
const (
	StateClosed     State = "closed"
	StateRecent     State = "recent"
	StateLoading    State = "loading"
	StateRefreshing State = "refreshing"
	StateResults    State = "results"
	StateEmpty      State = "empty"
	StateError      State = "error"
)

// Bar displays presenter status and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	resultCount int
	ephemeral   bool
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		state:  StateClosed,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (s *Bar) renderLeft() string {
	var left string
	switch s.state {
	case StateLoading:
		left = s.styles.Muted.Render("Searching...")
	case StateRefreshing:
		left = s.styles.Warning.Render(fmt.Sprintf("%s (refreshing)", plural(s.resultCount)))
	case StateResults:
		left = s.styles.Normal.Render(plural(s.resultCount))
	case StateEmpty:
		left = s.styles.Muted.Render("No results")
	case StateError:
		if s.message != "" {
			left = s.styles.Error.Render("Error: " + s.message)
		} else {
			left = s.styles.Error.Render("Error")
		}
	case StateRecent:
		left = s.styles.Muted.Render("Recent searches")
	case StateClosed:
		left = s.styles.Muted.Render("Ready")
	}
	if s.ephemeral {
		left += s.styles.Muted.Render(" · history not saved")
	}
	return left
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateClosed {
		bindings = s.keymap.ShortHelp()
	} else {
		bindings = s.keymap.DropdownHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

func plural(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetEphemeral marks recent searches as not persisted.
func (s *Bar) SetEphemeral(ephemeral bool) {
	s.ephemeral = ephemeral
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
