package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchInput_StartsBlurred(t *testing.T) {
	in := NewSearchInput(nil)

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
	assert.Equal(t, "", in.Value())
	assert.False(t, in.Focused())
}

func TestSearchInput_TypingWhenFocused(t *testing.T) {
	in := NewSearchInput(nil)
	in.Focus()

	in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pool")})

	assert.Equal(t, "pool", in.Value())
}

func TestSearchInput_IgnoresKeysWhenBlurred(t *testing.T) {
	in := NewSearchInput(nil)

	in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.Equal(t, "", in.Value())
}

func TestSearchInput_View(t *testing.T) {
	in := NewSearchInput(nil)

	assert.Contains(t, in.View(), "Search")

	in.Focus()
	in.SetValue("addr1")
	assert.Contains(t, in.View(), "addr1")
}

func TestSearchInput_SetWidth(t *testing.T) {
	in := NewSearchInput(nil)

	in.SetWidth(80)
	assert.Equal(t, 80, in.Width())

	in.SetWidth(5)
	assert.Equal(t, 24, in.Width())
}

func TestSearchInput_Reset(t *testing.T) {
	in := NewSearchInput(nil)
	in.SetValue("abc")

	in.Reset()

	assert.Equal(t, "", in.Value())
}
