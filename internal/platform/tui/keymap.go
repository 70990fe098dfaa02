package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/breakout/internal/core"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right}, {k.Quit}}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "move right"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc/q", "quit"),
		),
	}
}

// MapKey translates a key message to a game key.
// Returns false for keys the game does not use.
func (k KeyMap) MapKey(msg tea.KeyMsg) (core.Key, bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.KeyEscape, true
	case key.Matches(msg, k.Left):
		return core.KeyLeft, true
	case key.Matches(msg, k.Right):
		return core.KeyRight, true
	}
	return 0, false
}
