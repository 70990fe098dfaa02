package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/games/breakout"
)

// MenuKeyMap defines the bindings of the layout picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns the default picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc/q", "quit"),
		),
	}
}

// LayoutMenuModel lets users choose the brick layout before a game.
type LayoutMenuModel struct {
	layouts  []*breakout.Layout
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	help     help.Model
	chosen   bool
	quitting bool
}

// NewLayoutMenuModel creates a picker over layouts. The cursor starts on
// the layout named current, if present.
func NewLayoutMenuModel(layouts []*breakout.Layout, current string, width, height int) LayoutMenuModel {
	m := LayoutMenuModel{
		layouts: layouts,
		width:   width,
		height:  height,
		keys:    DefaultMenuKeyMap(),
		help:    help.New(),
	}
	for i, l := range layouts {
		if l.ID == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m LayoutMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LayoutMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m LayoutMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.layouts)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if len(m.layouts) > 0 {
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the layout list and a preview of the highlighted layout.
func (m LayoutMenuModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("B R E A K O U T", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select brick layout:", m.width))
	b.WriteString("\n\n")

	for i, l := range m.layouts {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-14s %3d bricks", cursor, l.Name, l.Count())
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.layouts) > 0 {
		b.WriteString("\n")
		b.WriteString(layoutPreview(m.layouts[m.cursor], m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))

	return b.String()
}

// layoutPreview draws each brick as two colored cells.
func layoutPreview(l *breakout.Layout, width int) string {
	s := core.NewScreen(l.Width*2, l.Height)
	for row := range l.Height {
		for col := range l.Width {
			if l.Has(row, col) {
				s.DrawRect(core.NewRect(col*2, row, 2, 1), BlockChar, l.Cells[row][col])
			}
		}
	}

	pad := strings.Repeat(" ", max((width-s.Width())/2, 0))
	return pad + strings.ReplaceAll(RenderScreen(s), "\n", "\n"+pad)
}

// Selected returns the chosen layout, or nil if the user quit.
func (m LayoutMenuModel) Selected() *breakout.Layout {
	if !m.chosen {
		return nil
	}
	return m.layouts[m.cursor]
}

// centerText pads text so it is centered in width columns.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunLayoutPicker shows the layout picker and returns the chosen layout.
// It returns nil when the user quits without choosing.
func RunLayoutPicker(current string, cfg core.RuntimeConfig) (*breakout.Layout, error) {
	model := NewLayoutMenuModel(breakout.BuiltinLayouts(), current, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LayoutMenuModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
