package headless

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/breakout/internal/core"
)

// ScriptStep is one line of an input script: a key transition delivered
// before the physics of the given frame.
type ScriptStep struct {
	Frame uint64 `yaml:"frame"`
	Key   string `yaml:"key"`
	State string `yaml:"state"`
}

// Script is a parsed input script ordered by frame.
type Script struct {
	events []scriptEvent
}

type scriptEvent struct {
	frame uint64
	ev    core.KeyEvent
}

// Len returns the number of scripted events.
func (s *Script) Len() int {
	if s == nil {
		return 0
	}
	return len(s.events)
}

// NewScript builds a script from steps. Steps on the same frame keep their
// order.
func NewScript(steps []ScriptStep) (*Script, error) {
	s := &Script{events: make([]scriptEvent, 0, len(steps))}
	var errs []error
	for i, st := range steps {
		key, ok := core.ParseKey(st.Key)
		if !ok {
			errs = append(errs, fmt.Errorf("step %d: unknown key %q", i, st.Key))
		}
		state, ok := core.ParseKeyState(st.State)
		if !ok {
			errs = append(errs, fmt.Errorf("step %d: unknown state %q", i, st.State))
		}
		s.events = append(s.events, scriptEvent{frame: st.Frame, ev: core.KeyEvent{State: state, Key: key}})
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("headless: invalid script: %w", err)
	}

	slices.SortStableFunc(s.events, func(a, b scriptEvent) int {
		switch {
		case a.frame < b.frame:
			return -1
		case a.frame > b.frame:
			return 1
		}
		return 0
	})
	return s, nil
}

// ParseScript parses a YAML list of steps.
func ParseScript(data []byte) (*Script, error) {
	var steps []ScriptStep
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("headless: cannot parse script: %w", err)
	}
	return NewScript(steps)
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("headless: cannot read script: %w", err)
	}
	return ParseScript(data)
}
