package tui

import "github.com/vovakirdan/breakout/internal/core"

// keyHold turns terminal key presses into down/up events.
//
// Terminals only report presses (repeated while a key is held), never
// releases. A press starts or extends a hold; a key is released once it
// has gone holdTicks ticks without a press. Pressing one direction
// releases the other at once.
type keyHold struct {
	holdTicks int
	remaining [3]int // indexed by core.Key
	queue     core.EventQueue
}

func newKeyHold(holdTicks int) *keyHold {
	return &keyHold{holdTicks: max(holdTicks, 1)}
}

// Press records a key press.
func (h *keyHold) Press(k core.Key) {
	if k == core.KeyEscape {
		h.queue.Push(core.KeyEvent{State: core.KeyDown, Key: k})
		return
	}

	other := core.KeyLeft
	if k == core.KeyLeft {
		other = core.KeyRight
	}
	if h.remaining[other] > 0 {
		h.remaining[other] = 0
		h.queue.Push(core.KeyEvent{State: core.KeyUp, Key: other})
	}

	if h.remaining[k] == 0 {
		h.queue.Push(core.KeyEvent{State: core.KeyDown, Key: k})
	}
	h.remaining[k] = h.holdTicks
}

// Tick counts down held keys and releases the expired ones.
func (h *keyHold) Tick() {
	for _, k := range []core.Key{core.KeyLeft, core.KeyRight} {
		if h.remaining[k] == 0 {
			continue
		}
		h.remaining[k]--
		if h.remaining[k] == 0 {
			h.queue.Push(core.KeyEvent{State: core.KeyUp, Key: k})
		}
	}
}

// Held reports whether k is currently held.
func (h *keyHold) Held(k core.Key) bool {
	return h.remaining[k] > 0
}

// PollEvent implements core.InputSource.
func (h *keyHold) PollEvent() (core.KeyEvent, bool, error) {
	return h.queue.PollEvent()
}
