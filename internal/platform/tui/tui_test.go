package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/games/breakout"
)

func drain(t *testing.T, h *keyHold) []core.KeyEvent {
	t.Helper()
	var out []core.KeyEvent
	for {
		ev, ok, err := h.PollEvent()
		if err != nil {
			t.Fatalf("PollEvent() error: %v", err)
		}
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func down(k core.Key) core.KeyEvent { return core.KeyEvent{State: core.KeyDown, Key: k} }
func up(k core.Key) core.KeyEvent   { return core.KeyEvent{State: core.KeyUp, Key: k} }

func TestKeyHoldReleasesAfterTimeout(t *testing.T) {
	h := newKeyHold(3)

	h.Press(core.KeyLeft)
	if got := drain(t, h); len(got) != 1 || got[0] != down(core.KeyLeft) {
		t.Fatalf("events after press = %v, expected left down", got)
	}

	h.Tick()
	h.Tick()
	if got := drain(t, h); len(got) != 0 {
		t.Errorf("events while held = %v, expected none", got)
	}

	// A repeated press extends the hold without a second down event.
	h.Press(core.KeyLeft)
	h.Tick()
	h.Tick()
	if got := drain(t, h); len(got) != 0 {
		t.Errorf("events after repeat = %v, expected none", got)
	}
	if !h.Held(core.KeyLeft) {
		t.Error("left should still be held")
	}

	h.Tick()
	if got := drain(t, h); len(got) != 1 || got[0] != up(core.KeyLeft) {
		t.Errorf("events after timeout = %v, expected left up", got)
	}
	if h.Held(core.KeyLeft) {
		t.Error("left should be released")
	}
}

func TestKeyHoldOppositeDirection(t *testing.T) {
	h := newKeyHold(10)

	h.Press(core.KeyRight)
	h.Press(core.KeyLeft)

	got := drain(t, h)
	expected := []core.KeyEvent{down(core.KeyRight), up(core.KeyRight), down(core.KeyLeft)}
	if len(got) != len(expected) {
		t.Fatalf("events = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("event %d = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestKeyHoldEscape(t *testing.T) {
	h := newKeyHold(0)
	h.Press(core.KeyEscape)
	if got := drain(t, h); len(got) != 1 || got[0] != down(core.KeyEscape) {
		t.Errorf("events = %v, expected escape down", got)
	}
	if h.holdTicks != 1 {
		t.Errorf("holdTicks = %d, expected it raised to 1", h.holdTicks)
	}
}

func TestMapKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		key  core.Key
		ok   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.KeyLeft, true},
		{"a", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, core.KeyLeft, true},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.KeyRight, true},
		{"d", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, core.KeyRight, true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.KeyEscape, true},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.KeyEscape, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.KeyEscape, true},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, ok := km.MapKey(tc.msg)
			if ok != tc.ok || (ok && k != tc.key) {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), k, ok, tc.key, tc.ok)
			}
		})
	}
}

func TestProject(t *testing.T) {
	r := NewScreenRenderer(core.NewScreen(80, 40), 800, 800)

	tests := []struct {
		name     string
		box      core.Box
		expected core.Rect
	}{
		{"brick", core.NewBox(20, 50, 58, 20), core.NewRect(2, 2, 6, 2)},
		{"ball", core.NewBox(420, 400, 10, 10), core.NewRect(42, 20, 1, 1)},
		{"tiny box", core.NewBox(401, 401, 0.1, 0.1), core.NewRect(40, 20, 1, 1)},
		{"paddle", core.NewBox(300, 780, 300, 20), core.NewRect(30, 39, 30, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Project(tc.box); got != tc.expected {
				t.Errorf("Project(%v) = %+v, expected %+v", tc.box, got, tc.expected)
			}
		})
	}
}

func TestScreenRendererDraws(t *testing.T) {
	screen := core.NewScreen(80, 40)
	r := NewScreenRenderer(screen, 800, 800)

	if err := r.BeginFrame(); err != nil {
		t.Fatal(err)
	}
	if err := r.DrawBox(core.NewBox(0, 0, 20, 20), core.ColorRed); err != nil {
		t.Fatal(err)
	}
	if err := r.EndFrame(); err != nil {
		t.Fatal(err)
	}

	if c := screen.GetCell(1, 0); c.Rune != BlockChar || c.Color != core.ColorRed {
		t.Errorf("cell (1, 0) = %+v, expected a red block", c)
	}
	if screen.Get(2, 0) != ' ' {
		t.Error("cell (2, 0) should be empty")
	}
	if r.Frames() != 1 {
		t.Errorf("Frames() = %d, expected 1", r.Frames())
	}

	// The next frame starts from a clear screen.
	if err := r.BeginFrame(); err != nil {
		t.Fatal(err)
	}
	if screen.Get(1, 0) != ' ' {
		t.Error("BeginFrame() should clear the screen")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab", core.ColorGreen)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") {
		t.Errorf("line 0 = %q, expected it to contain \"ab\"", lines[0])
	}
	if lines[1] != "    " {
		t.Errorf("blank line = %q, expected plain spaces", lines[1])
	}
}

func newModel(t *testing.T) Model {
	t.Helper()
	g, err := breakout.New(config.DefaultBreakoutConfig())
	if err != nil {
		t.Fatalf("breakout.New() error: %v", err)
	}
	t.Cleanup(g.Close)
	return NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 41, TickRate: 60})
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm, cmd
}

func TestModelTickRunsFrame(t *testing.T) {
	m := newModel(t)
	startX := m.game.Paddle().Box.Pos.X

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, cmd := step(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	if got := m.game.Paddle().Box.Pos.X; got >= startX {
		t.Errorf("paddle x = %v, expected it to move left of %v", got, startX)
	}
	if m.game.FrameCount() != 1 {
		t.Errorf("FrameCount() = %d, expected 1", m.game.FrameCount())
	}
	if view := m.View(); !strings.Contains(view, string(BlockChar)) {
		t.Error("View() should contain drawn blocks")
	}
}

func TestModelQuit(t *testing.T) {
	m := newModel(t)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m, cmd := step(t, m, TickMsg{})

	if m.game.State() != breakout.StateStopped {
		t.Errorf("State() = %v, expected stopped", m.game.State())
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit after the game stopped")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelResize(t *testing.T) {
	m := newModel(t)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	s := m.renderer.Screen()
	if s.Width() != 100 || s.Height() != 30-helpLines {
		t.Errorf("screen = %dx%d, expected 100x%d", s.Width(), s.Height(), 30-helpLines)
	}
}

func TestLayoutMenu(t *testing.T) {
	layouts := breakout.BuiltinLayouts()
	m := NewLayoutMenuModel(layouts, "pyramid", 80, 24)
	if got := layouts[m.cursor].ID; got != "pyramid" {
		t.Fatalf("initial cursor on %q, expected pyramid", got)
	}

	view := m.View()
	for _, l := range layouts {
		if !strings.Contains(view, l.Name) {
			t.Errorf("View() is missing layout %q", l.Name)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(LayoutMenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(LayoutMenuModel)

	if cmd == nil {
		t.Fatal("expected a quit command after selecting")
	}
	// Layouts are sorted by ID: checker, classic, pyramid, striped.
	if sel := m.Selected(); sel == nil || sel.ID != "classic" {
		t.Errorf("Selected() = %v, expected classic", sel)
	}
}

func TestLayoutMenuQuit(t *testing.T) {
	m := NewLayoutMenuModel(breakout.BuiltinLayouts(), "", 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(LayoutMenuModel)

	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if m.Selected() != nil {
		t.Error("Selected() should be nil after quitting")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}
