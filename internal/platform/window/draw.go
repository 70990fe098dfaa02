package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/breakout/internal/core"
)

// drawCmd is one filled rectangle of a recorded frame.
type drawCmd struct {
	Box   core.Box
	Color core.RGB
}

// DrawList is a core.Renderer that records frames for replay in Draw.
// Ebiten updates and draws on separate callbacks, so the game renders
// into the list during Update and the window replays the last complete
// frame.
type DrawList struct {
	pending []drawCmd
	last    []drawCmd
	frames  int
	inFrame bool
}

// BeginFrame starts recording a new frame.
func (d *DrawList) BeginFrame() error {
	d.pending = d.pending[:0]
	d.inFrame = true
	return nil
}

// DrawBox records a filled box.
func (d *DrawList) DrawBox(b core.Box, c core.RGB) error {
	if !d.inFrame {
		return errNoFrame
	}
	d.pending = append(d.pending, drawCmd{Box: b, Color: c})
	return nil
}

// EndFrame publishes the recorded frame.
func (d *DrawList) EndFrame() error {
	if !d.inFrame {
		return errNoFrame
	}
	d.pending, d.last = d.last, d.pending
	d.inFrame = false
	d.frames++
	return nil
}

// Close implements core.Renderer.
func (d *DrawList) Close() error { return nil }

// Frames returns the number of completed frames.
func (d *DrawList) Frames() int { return d.frames }

// Last returns the commands of the last completed frame.
func (d *DrawList) Last() []drawCmd { return d.last }

// Replay draws the last completed frame onto screen.
func (d *DrawList) Replay(screen *ebiten.Image) {
	for _, cmd := range d.last {
		b := cmd.Box
		vector.DrawFilledRect(screen, b.Left(), b.Top(), b.W, b.H, toColor(cmd.Color), false)
	}
}

func toColor(c core.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
