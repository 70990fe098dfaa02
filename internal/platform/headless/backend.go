// Package headless runs breakout without a display, driven by a scripted
// input source. It backs the simulate command and end-to-end tests.
package headless

import (
	"context"

	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/games/breakout"
	"github.com/vovakirdan/breakout/internal/registry"
)

// DefaultMaxFrames bounds a headless run started from the registry.
const DefaultMaxFrames = 3600

func init() {
	registry.Register("headless", func() registry.Backend { return New() })
}

// Backend plays breakout with scripted input and a recording renderer.
type Backend struct {
	script    *Script
	maxFrames uint64
	recorder  *Recorder
}

// Option configures a Backend.
type Option func(*Backend)

// WithScript sets the input script.
func WithScript(s *Script) Option {
	return func(b *Backend) { b.script = s }
}

// WithMaxFrames stops the game after n frames. 0 disables the limit.
func WithMaxFrames(n uint64) Option {
	return func(b *Backend) { b.maxFrames = n }
}

// New creates a headless backend.
func New(opts ...Option) *Backend {
	b := &Backend{maxFrames: DefaultMaxFrames}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ID implements registry.Backend.
func (*Backend) ID() string { return "headless" }

// Title implements registry.Backend.
func (*Backend) Title() string { return "Headless (scripted)" }

// Recorder returns the renderer of the last run, or nil before Run.
func (b *Backend) Recorder() *Recorder { return b.recorder }

// Run plays g until the script stops it, the frame limit is reached or ctx
// is done.
func (b *Backend) Run(ctx context.Context, g *breakout.Game, cfg core.RuntimeConfig) error {
	g.Logger().Info("starting headless backend", "events", b.script.Len(), "max_frames", b.maxFrames)

	in := NewScriptedInput(b.script, b.maxFrames)
	b.recorder = &Recorder{}

	if err := g.Run(ctx, in, b.recorder); err != nil {
		return err
	}
	g.Logger().Info("headless run finished", "frames", b.recorder.Frames(), "pending_events", in.Pending())
	return nil
}
