package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/games/breakout"
	"github.com/vovakirdan/breakout/internal/registry"
)

func init() {
	registry.Register("terminal", func() registry.Backend { return Backend{} })
}

// Backend plays breakout on the alternate screen of the current terminal.
type Backend struct{}

// ID implements registry.Backend.
func (Backend) ID() string { return "terminal" }

// Title implements registry.Backend.
func (Backend) Title() string { return "Terminal (Bubble Tea)" }

// Run starts the Bubble Tea program and blocks until the game stops.
func (Backend) Run(ctx context.Context, g *breakout.Game, cfg core.RuntimeConfig) error {
	logger := g.Logger()
	logger.Info("starting terminal backend", "width", cfg.ScreenW, "height", cfg.ScreenH, "fps", cfg.TickRate)

	p := tea.NewProgram(
		NewModel(g, cfg),
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
