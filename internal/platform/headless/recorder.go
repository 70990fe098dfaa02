package headless

import (
	"errors"

	"github.com/vovakirdan/breakout/internal/core"
)

var errNoFrame = errors.New("headless: draw outside of a frame")

// DrawnBox is a box drawn during a frame.
type DrawnBox struct {
	Box   core.Box
	Color core.RGB
}

// Recorder is a core.Renderer that counts frames and keeps the boxes of the
// last completed one.
type Recorder struct {
	frames  int
	boxes   int
	current []DrawnBox
	last    []DrawnBox
	inFrame bool
}

func (r *Recorder) BeginFrame() error {
	r.current = r.current[:0]
	r.inFrame = true
	return nil
}

func (r *Recorder) DrawBox(b core.Box, c core.RGB) error {
	if !r.inFrame {
		return errNoFrame
	}
	r.current = append(r.current, DrawnBox{Box: b, Color: c})
	r.boxes++
	return nil
}

func (r *Recorder) EndFrame() error {
	if !r.inFrame {
		return errNoFrame
	}
	r.last = append(r.last[:0], r.current...)
	r.inFrame = false
	r.frames++
	return nil
}

func (r *Recorder) Close() error { return nil }

// Frames returns the number of completed frames.
func (r *Recorder) Frames() int { return r.frames }

// Boxes returns the total number of boxes drawn.
func (r *Recorder) Boxes() int { return r.boxes }

// Last returns the boxes of the last completed frame.
func (r *Recorder) Last() []DrawnBox { return r.last }
