package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/games/breakout"
)

// helpLines is the number of rows reserved below the playfield.
const helpLines = 1

// Model is the Bubble Tea model for running breakout in a terminal.
type Model struct {
	game     *breakout.Game
	renderer *ScreenRenderer
	hold     *keyHold
	keys     KeyMap
	help     help.Model
	config   core.RuntimeConfig
	err      error
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *breakout.Game, cfg core.RuntimeConfig) Model {
	field := game.Config().Playfield
	screen := core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpLines, 1))

	h := help.New()
	h.ShowAll = false

	return Model{
		game:     game,
		renderer: NewScreenRenderer(screen, field.Width, field.Height),
		hold:     newKeyHold(game.Config().Input.KeyHoldTicks),
		keys:     DefaultKeyMap(),
		help:     h,
		config:   cfg,
	}
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error { return m.err }

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if k, ok := m.keys.MapKey(msg); ok {
			m.hold.Press(k)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.renderer.Screen().Resize(msg.Width, max(msg.Height-helpLines, 1))
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleTick runs one game frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if err := m.game.Frame(m.hold, m.renderer); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.hold.Tick()

	if m.game.State() == breakout.StateStopped {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.renderer.Screen()) + "\n" + m.help.View(m.keys)
}
