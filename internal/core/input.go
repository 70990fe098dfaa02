package core

// KeyState is the transition reported by a key event.
type KeyState int

const (
	KeyUp KeyState = iota
	KeyDown
)

// String returns a human-readable name for the state.
func (s KeyState) String() string {
	switch s {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	default:
		return "unknown"
	}
}

// Key identifies one of the keys the game reacts to.
type Key int

const (
	KeyEscape Key = iota
	KeyLeft
	KeyRight
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseKey is the inverse of Key.String.
func ParseKey(s string) (Key, bool) {
	switch s {
	case "escape", "esc":
		return KeyEscape, true
	case "left":
		return KeyLeft, true
	case "right":
		return KeyRight, true
	}
	return 0, false
}

// ParseKeyState is the inverse of KeyState.String.
func ParseKeyState(s string) (KeyState, bool) {
	switch s {
	case "up":
		return KeyUp, true
	case "down":
		return KeyDown, true
	}
	return 0, false
}

// KeyEvent is a single key press or release.
type KeyEvent struct {
	State KeyState
	Key   Key
}

// InputSource delivers queued key events without blocking.
//
// PollEvent returns (event, true, nil) when an event was available,
// (_, false, nil) when the queue is empty and a non-nil error when the
// device failed.
type InputSource interface {
	PollEvent() (KeyEvent, bool, error)
}

// EventQueue is a FIFO InputSource backed by a slice.
// Backends push events as they arrive and the game drains them each frame.
type EventQueue struct {
	events []KeyEvent
}

// Push appends an event to the queue.
func (q *EventQueue) Push(ev KeyEvent) {
	q.events = append(q.events, ev)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// PollEvent implements InputSource.
func (q *EventQueue) PollEvent() (KeyEvent, bool, error) {
	if len(q.events) == 0 {
		return KeyEvent{}, false, nil
	}
	ev := q.events[0]
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = q.events[:0:0]
	}
	return ev, true, nil
}
