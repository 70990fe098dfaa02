// Package window runs breakout in a native window with Ebitengine.
package window

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/games/breakout"
	"github.com/vovakirdan/breakout/internal/registry"
)

var errNoFrame = errors.New("window: draw outside of a frame")

func init() {
	registry.Register("window", func() registry.Backend { return Backend{} })
}

// keyBindings maps physical keys to game keys.
var keyBindings = []struct {
	phys ebiten.Key
	key  core.Key
}{
	{ebiten.KeyEscape, core.KeyEscape},
	{ebiten.KeyQ, core.KeyEscape},
	{ebiten.KeyArrowLeft, core.KeyLeft},
	{ebiten.KeyA, core.KeyLeft},
	{ebiten.KeyArrowRight, core.KeyRight},
	{ebiten.KeyD, core.KeyRight},
}

// keyTracker counts the physical keys held down for each game key, so a
// game key is released only when its last bound key goes up.
type keyTracker struct {
	down map[core.Key]int
}

func newKeyTracker() *keyTracker {
	return &keyTracker{down: make(map[core.Key]int)}
}

// collectKeys queues a KeyEvent for every game key that became held or
// released since the previous tick.
func (kt *keyTracker) collectKeys(pressed, released func(ebiten.Key) bool, q *core.EventQueue) {
	for _, b := range keyBindings {
		if pressed(b.phys) {
			kt.down[b.key]++
			if kt.down[b.key] == 1 {
				q.Push(core.KeyEvent{State: core.KeyDown, Key: b.key})
			}
		}
		if released(b.phys) && kt.down[b.key] > 0 {
			kt.down[b.key]--
			if kt.down[b.key] == 0 {
				q.Push(core.KeyEvent{State: core.KeyUp, Key: b.key})
			}
		}
	}
}

// shell adapts a breakout.Game to ebiten.Game.
type shell struct {
	ctx    context.Context
	game   *breakout.Game
	queue  core.EventQueue
	keys   *keyTracker
	draw   DrawList
	fieldW int
	fieldH int
}

func newShell(ctx context.Context, g *breakout.Game) *shell {
	field := g.Config().Playfield
	return &shell{
		ctx:    ctx,
		game:   g,
		keys:   newKeyTracker(),
		fieldW: int(field.Width),  //#nosec G115
		fieldH: int(field.Height), //#nosec G115
	}
}

// Update runs one game frame.
func (s *shell) Update() error {
	if s.ctx.Err() != nil {
		return ebiten.Termination
	}

	s.keys.collectKeys(inpututil.IsKeyJustPressed, inpututil.IsKeyJustReleased, &s.queue)
	if err := s.game.Frame(&s.queue, &s.draw); err != nil {
		return err
	}
	if s.game.State() == breakout.StateStopped {
		return ebiten.Termination
	}
	return nil
}

// Draw replays the last frame the game rendered.
func (s *shell) Draw(screen *ebiten.Image) {
	screen.Fill(toColor(core.ColorBlack))
	s.draw.Replay(screen)
}

// Layout keeps the logical screen at playfield size; ebiten scales it to
// the window.
func (s *shell) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.fieldW, s.fieldH
}

// Backend plays breakout in a native window.
type Backend struct{}

// ID implements registry.Backend.
func (Backend) ID() string { return "window" }

// Title implements registry.Backend.
func (Backend) Title() string { return "Window (Ebitengine)" }

// Run opens the window and blocks until the game stops or the window closes.
func (Backend) Run(ctx context.Context, g *breakout.Game, cfg core.RuntimeConfig) error {
	wcfg := g.Config().Window
	s := newShell(ctx, g)

	g.Logger().Info("starting window backend", "width", s.fieldW, "height", s.fieldH, "scale", wcfg.Scale, "fps", cfg.TickRate)

	ebiten.SetWindowSize(int(float64(s.fieldW)*wcfg.Scale), int(float64(s.fieldH)*wcfg.Scale))
	ebiten.SetWindowTitle(wcfg.Title)
	if cfg.TickRate > 0 {
		ebiten.SetTPS(cfg.TickRate)
	}

	err := ebiten.RunGame(s)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
