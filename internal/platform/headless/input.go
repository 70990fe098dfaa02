package headless

import "github.com/vovakirdan/breakout/internal/core"

// ScriptedInput replays a Script as a core.InputSource.
//
// The game drains its input once per frame, so every empty poll ends a
// frame. Events scheduled for frame n are delivered during the n-th drain,
// counting from zero. With a frame limit, an escape press is delivered once
// the limit is reached so the game stops on its own.
type ScriptedInput struct {
	events    []scriptEvent
	next      int
	frame     uint64
	maxFrames uint64
	stopSent  bool
}

// NewScriptedInput creates an input source for script. A nil script
// delivers no events. maxFrames 0 means no limit.
func NewScriptedInput(script *Script, maxFrames uint64) *ScriptedInput {
	in := &ScriptedInput{maxFrames: maxFrames}
	if script != nil {
		in.events = script.events
	}
	return in
}

// Frame returns the number of completed drains.
func (in *ScriptedInput) Frame() uint64 { return in.frame }

// Pending returns the number of scripted events not yet delivered.
func (in *ScriptedInput) Pending() int { return len(in.events) - in.next }

// PollEvent implements core.InputSource.
func (in *ScriptedInput) PollEvent() (core.KeyEvent, bool, error) {
	if in.next < len(in.events) && in.events[in.next].frame <= in.frame {
		ev := in.events[in.next].ev
		in.next++
		return ev, true, nil
	}
	if in.maxFrames > 0 && in.frame >= in.maxFrames && !in.stopSent {
		in.stopSent = true
		return core.KeyEvent{State: core.KeyDown, Key: core.KeyEscape}, true, nil
	}
	in.frame++
	return core.KeyEvent{}, false, nil
}
