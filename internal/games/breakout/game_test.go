package breakout

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/entity"
)

type drawCall struct {
	box   core.Box
	color core.RGB
}

// recorder is a core.Renderer that keeps the boxes of the last frame.
type recorder struct {
	frames  int
	current []drawCall
	last    []drawCall
	failOn  int // fail the n-th DrawBox of a frame, 0 = never
}

func (r *recorder) BeginFrame() error {
	r.current = r.current[:0]
	return nil
}

func (r *recorder) DrawBox(b core.Box, c core.RGB) error {
	r.current = append(r.current, drawCall{b, c})
	if r.failOn > 0 && len(r.current) == r.failOn {
		return errors.New("surface lost")
	}
	return nil
}

func (r *recorder) EndFrame() error {
	r.last = append(r.last[:0], r.current...)
	r.frames++
	return nil
}

func (r *recorder) Close() error { return nil }

type failingInput struct{ err error }

func (f failingInput) PollEvent() (core.KeyEvent, bool, error) {
	return core.KeyEvent{}, false, f.err
}

func emptyLayout() *Layout {
	return mustParseLayout("empty", "Empty", nil)
}

func newGame(t *testing.T, cfg config.BreakoutConfig, opts ...Option) *Game {
	t.Helper()
	g, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func press(q *core.EventQueue, k core.Key) {
	q.Push(core.KeyEvent{State: core.KeyDown, Key: k})
}

func release(q *core.EventQueue, k core.Key) {
	q.Push(core.KeyEvent{State: core.KeyUp, Key: k})
}

func TestNewGame(t *testing.T) {
	g := newGame(t, config.DefaultBreakoutConfig())

	if g.State() != StateRunning {
		t.Errorf("State() = %v, expected running", g.State())
	}
	if g.BricksRemaining() != 60 {
		t.Errorf("BricksRemaining() = %d, expected 60", g.BricksRemaining())
	}
	if g.Paddle().Box != core.NewBox(300, 780, 300, 20) {
		t.Errorf("Paddle() = %v", g.Paddle().Box)
	}
	if g.Ball().Box != core.NewBox(420, 400, 10, 10) {
		t.Errorf("Ball() = %v", g.Ball().Box)
	}
	if g.BallVelocity() != core.NewVec(0, 0.1) {
		t.Errorf("BallVelocity() = %v", g.BallVelocity())
	}
}

func TestNewGameErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.BreakoutConfig)
		target error
	}{
		{"unknown layout", func(c *config.BreakoutConfig) { c.Bricks.Layout = "spiral" }, nil},
		{"invalid config", func(c *config.BreakoutConfig) { c.Ball.Size = 0 }, nil},
		{"capacity too small", func(c *config.BreakoutConfig) { c.Bricks.Capacity = 10 }, entity.ErrAllocation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultBreakoutConfig()
			tc.mutate(&cfg)
			g, err := New(cfg)
			if err == nil {
				g.Close()
				t.Fatal("New() expected error")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Errorf("New() = %v, expected %v", err, tc.target)
			}
		})
	}
}

func TestEndToEndPaddleRebound(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Paddle.X, cfg.Paddle.Width = 100, 100
	cfg.Ball.X, cfg.Ball.Y = 130, 771
	cfg.Ball.VelocityX, cfg.Ball.VelocityY = 0, 0.1

	g := newGame(t, cfg, WithLayout(emptyLayout()))
	var q core.EventQueue
	var r recorder

	if err := g.Frame(&q, &r); err != nil {
		t.Fatalf("Frame() error: %v", err)
	}

	v := g.BallVelocity()
	if v.Y >= 0 {
		t.Errorf("ball vy = %v, expected it to flip upward", v.Y)
	}
	if v.Y != -0.1 || v.X != 0 {
		t.Errorf("ball velocity = %v, expected {0 -0.1}", v)
	}
	ball := g.Ball().Box
	if ball.Pos.X != 130 {
		t.Errorf("ball x = %v, expected 130", ball.Pos.X)
	}
	if ball.Bottom() > 780.001 {
		t.Errorf("ball bottom = %v, expected it pushed above the paddle", ball.Bottom())
	}
}

func TestWallBounce(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float32
		vx, vy float32
		wantVX float32
		wantVY float32
	}{
		{"top", 50, 0.05, 0, -0.1, 0, 0.1},
		{"bottom", 50, 799.95, 0, 0.1, 0, -0.1},
		{"left", 0.05, 400, -0.1, 0, 0.1, 0},
		{"right", 799.95, 400, 0.1, 0, -0.1, 0},
		{"inside", 400, 400, 0.1, 0.1, 0.1, 0.1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultBreakoutConfig()
			cfg.Ball.X, cfg.Ball.Y = tc.x, tc.y
			cfg.Ball.VelocityX, cfg.Ball.VelocityY = tc.vx, tc.vy
			cfg.Paddle.X = 700
			cfg.Paddle.Width = 20

			g := newGame(t, cfg, WithLayout(emptyLayout()))
			if err := g.Frame(&core.EventQueue{}, &recorder{}); err != nil {
				t.Fatalf("Frame() error: %v", err)
			}

			if got := g.BallVelocity(); got.X != tc.wantVX || got.Y != tc.wantVY {
				t.Errorf("velocity = %v, expected {%v %v}", got, tc.wantVX, tc.wantVY)
			}
		})
	}
}

func TestEscapeStops(t *testing.T) {
	g := newGame(t, config.DefaultBreakoutConfig())
	var q core.EventQueue
	var r recorder

	release(&q, core.KeyEscape)
	if err := g.Frame(&q, &r); err != nil {
		t.Fatalf("Frame() error: %v", err)
	}
	if g.State() != StateRunning {
		t.Fatal("escape release should not stop the game")
	}

	press(&q, core.KeyEscape)
	if err := g.Frame(&q, &r); err != nil {
		t.Fatalf("Frame() error: %v", err)
	}
	if g.State() != StateStopped {
		t.Errorf("State() = %v, expected stopped", g.State())
	}
	if r.frames != 1 {
		t.Errorf("rendered %d frames, expected the stopping frame to skip drawing", r.frames)
	}

	frame := g.FrameCount()
	ball := g.Ball()
	if err := g.Frame(&q, &r); err != nil {
		t.Fatalf("Frame() after stop error: %v", err)
	}
	if g.FrameCount() != frame || g.Ball() != ball {
		t.Error("Frame() after stop should not simulate")
	}
}

func TestPaddleMovement(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Paddle.Speed = 5
	g := newGame(t, cfg, WithLayout(emptyLayout()))
	var q core.EventQueue
	var r recorder

	steps := []struct {
		name   string
		events func()
		wantX  float32
	}{
		{"left held", func() { press(&q, core.KeyLeft) }, 295},
		{"still left", func() {}, 290},
		{"both held", func() { press(&q, core.KeyRight) }, 290},
		{"left released", func() { release(&q, core.KeyLeft) }, 295},
		{"none held", func() { release(&q, core.KeyRight) }, 295},
	}

	for _, step := range steps {
		step.events()
		if err := g.Frame(&q, &r); err != nil {
			t.Fatalf("%s: Frame() error: %v", step.name, err)
		}
		if got := g.Paddle().Box.Pos.X; got != step.wantX {
			t.Errorf("%s: paddle x = %v, expected %v", step.name, got, step.wantX)
		}
	}
}

func TestPaddleStaysInPlayfield(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Paddle.X = 2
	cfg.Paddle.Speed = 5
	g := newGame(t, cfg, WithLayout(emptyLayout()))
	var q core.EventQueue

	press(&q, core.KeyLeft)
	if err := g.Frame(&q, &recorder{}); err != nil {
		t.Fatal(err)
	}
	if x := g.Paddle().Box.Pos.X; x != 0 {
		t.Errorf("paddle x = %v, expected 0", x)
	}

	release(&q, core.KeyLeft)
	press(&q, core.KeyRight)
	for range 200 {
		if err := g.Frame(&q, &recorder{}); err != nil {
			t.Fatal(err)
		}
	}
	if right := g.Paddle().Box.Right(); right != cfg.Playfield.Width {
		t.Errorf("paddle right edge = %v, expected %v", right, cfg.Playfield.Width)
	}
}

func TestBrickHit(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	// Just below the first brick of the bottom row, moving up.
	cfg.Ball.X, cfg.Ball.Y = 40, 221
	cfg.Ball.VelocityX, cfg.Ball.VelocityY = 0, -2

	g := newGame(t, cfg)
	var r recorder
	if err := g.Frame(&core.EventQueue{}, &r); err != nil {
		t.Fatalf("Frame() error: %v", err)
	}

	if g.BricksRemaining() != 59 {
		t.Errorf("BricksRemaining() = %d, expected 59", g.BricksRemaining())
	}
	if v := g.BallVelocity(); v.Y != 2 || v.X != 0 {
		t.Errorf("velocity = %v, expected {0 2}", v)
	}
	if y := g.Ball().Box.Pos.Y; y != 220 {
		t.Errorf("ball y = %v, expected 220", y)
	}

	if len(r.last) != 2+59 {
		t.Fatalf("drew %d boxes, expected %d", len(r.last), 2+59)
	}
	seen := map[core.Vec]int{}
	for _, call := range r.last[2:] {
		seen[call.box.Pos]++
	}
	if seen[core.NewVec(20, 200)] != 0 {
		t.Error("destroyed brick was drawn")
	}
	for pos, n := range seen {
		if n != 1 {
			t.Errorf("brick at %v drawn %d times", pos, n)
		}
	}
}

func TestBrickEdgeTouchDestroysWithoutBounce(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	// Ends the move with its top edge on the bottom edge of brick (20, 200).
	cfg.Ball.X, cfg.Ball.Y = 40, 221
	cfg.Ball.VelocityX, cfg.Ball.VelocityY = 0, -1

	g := newGame(t, cfg)
	if err := g.Frame(&core.EventQueue{}, &recorder{}); err != nil {
		t.Fatalf("Frame() error: %v", err)
	}

	if g.BricksRemaining() != 59 {
		t.Errorf("BricksRemaining() = %d, expected 59", g.BricksRemaining())
	}
	if v := g.BallVelocity(); v.Y != -1 {
		t.Errorf("velocity = %v, expected vy to stay -1", v)
	}
	if y := g.Ball().Box.Pos.Y; y != 220 {
		t.Errorf("ball y = %v, expected 220", y)
	}
}

func TestNewGameRejectsNegativeSpeedMultiplier(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Progression.Type = "time"
	cfg.Difficulty.Progression.MaxAt = 10
	cfg.Difficulty.Scaling.SpeedMultiplier = -1

	if _, err := New(cfg); err == nil {
		t.Error("New() should reject a negative speed multiplier")
	}
}

func TestOneBrickPerFrame(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Bricks.OriginX, cfg.Bricks.OriginY = 100, 100
	cfg.Bricks.StrideX = 20
	cfg.Ball.X, cfg.Ball.Y = 125, 105
	cfg.Ball.VelocityX, cfg.Ball.VelocityY = 0, 0

	layout := mustParseLayout("pair", "Pair", []string{"RG"})
	g := newGame(t, cfg, WithLayout(layout))

	if err := g.Frame(&core.EventQueue{}, &recorder{}); err != nil {
		t.Fatalf("Frame() error: %v", err)
	}

	snap := g.Snapshot()
	if snap.BricksRemaining != 1 {
		t.Fatalf("BricksRemaining = %d, expected 1", snap.BricksRemaining)
	}
	if snap.Bricks[0].X != 120 || snap.Bricks[0].Color != core.ColorGreen {
		t.Errorf("remaining brick = %+v, expected the second one", snap.Bricks[0])
	}
}

func TestRenderOrder(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	g := newGame(t, cfg)
	var r recorder

	if err := g.Frame(&core.EventQueue{}, &r); err != nil {
		t.Fatalf("Frame() error: %v", err)
	}

	if len(r.last) != 62 {
		t.Fatalf("drew %d boxes, expected 62", len(r.last))
	}
	if r.last[0].box != g.Paddle().Box || r.last[0].color != core.ColorWhite {
		t.Errorf("first draw = %+v, expected the paddle", r.last[0])
	}
	if r.last[1].box != g.Ball().Box {
		t.Errorf("second draw = %+v, expected the ball", r.last[1])
	}

	first, last := r.last[2], r.last[61]
	if first.box != core.NewBox(20, 50, 58, 20) || first.color != core.ColorRed {
		t.Errorf("first brick = %+v", first)
	}
	if last.box != core.NewBox(20+9*78, 50+5*30, 58, 20) || last.color != core.ColorGreen {
		t.Errorf("last brick = %+v", last)
	}
}

func TestDeviceErrors(t *testing.T) {
	cause := errors.New("keyboard unplugged")

	g := newGame(t, config.DefaultBreakoutConfig())
	err := g.Frame(failingInput{cause}, &recorder{})
	if !errors.Is(err, ErrDevice) || !errors.Is(err, cause) {
		t.Errorf("input failure = %v, expected ErrDevice wrapping the cause", err)
	}

	g = newGame(t, config.DefaultBreakoutConfig())
	err = g.Frame(&core.EventQueue{}, &recorder{failOn: 3})
	if !errors.Is(err, ErrDevice) {
		t.Errorf("renderer failure = %v, expected ErrDevice", err)
	}
}

// escapeAfter is an input source that presses escape once the renderer
// has completed n frames.
type escapeAfter struct {
	r    *recorder
	n    int
	sent bool
}

func (e *escapeAfter) PollEvent() (core.KeyEvent, bool, error) {
	if e.sent || e.r.frames < e.n {
		return core.KeyEvent{}, false, nil
	}
	e.sent = true
	return core.KeyEvent{State: core.KeyDown, Key: core.KeyEscape}, true, nil
}

func TestRun(t *testing.T) {
	g := newGame(t, config.DefaultBreakoutConfig())
	r := &recorder{}

	if err := g.Run(context.Background(), &escapeAfter{r: r, n: 3}, r); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if g.State() != StateStopped {
		t.Errorf("State() = %v, expected stopped", g.State())
	}
	if g.FrameCount() != 3 || r.frames != 3 {
		t.Errorf("ran %d frames (%d rendered), expected 3", g.FrameCount(), r.frames)
	}
}

func TestRunCancelled(t *testing.T) {
	g := newGame(t, config.DefaultBreakoutConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.Run(ctx, &core.EventQueue{}, &recorder{}); err != nil {
		t.Errorf("Run() error: %v", err)
	}
	if g.FrameCount() != 0 {
		t.Errorf("FrameCount() = %d, expected 0", g.FrameCount())
	}
}

func TestRunPropagatesDeviceError(t *testing.T) {
	g := newGame(t, config.DefaultBreakoutConfig())
	err := g.Run(context.Background(), failingInput{errors.New("gone")}, &recorder{})
	if !errors.Is(err, ErrDevice) {
		t.Errorf("Run() = %v, expected ErrDevice", err)
	}
}

func TestDifficultySpeedsUpBall(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Ball.X, cfg.Ball.Y = 40, 221
	cfg.Ball.VelocityX, cfg.Ball.VelocityY = 0, -2
	cfg.Difficulty = config.DifficultyConfig{
		Enabled:     true,
		Progression: config.ProgressionConfig{Type: "bricks", MaxAt: 1},
		Scaling:     config.ScalingConfig{SpeedMultiplier: 1},
	}

	g := newGame(t, cfg)
	if v := g.BallVelocity(); v.Y != -2 {
		t.Fatalf("initial vy = %v, expected -2", v.Y)
	}

	if err := g.Frame(&core.EventQueue{}, &recorder{}); err != nil {
		t.Fatal(err)
	}
	if v := g.BallVelocity(); v.Y != 4 {
		t.Errorf("vy after first brick = %v, expected 4", v.Y)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		cfg := config.DefaultBreakoutConfig()
		cfg.Ball.VelocityX, cfg.Ball.VelocityY = 1.5, -3
		g := newGame(t, cfg)
		var q core.EventQueue
		r := &recorder{}
		for i := range 600 {
			switch i % 40 {
			case 0:
				press(&q, core.KeyLeft)
			case 15:
				release(&q, core.KeyLeft)
				press(&q, core.KeyRight)
			case 35:
				release(&q, core.KeyRight)
			}
			if err := g.Frame(&q, r); err != nil {
				t.Fatalf("Frame() error: %v", err)
			}
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", a.Hash(), b.Hash())
	}
	if a.Frame != 600 {
		t.Errorf("Frame = %d, expected 600", a.Frame)
	}
}

func TestSnapshot(t *testing.T) {
	g := newGame(t, config.DefaultBreakoutConfig())
	snap := g.Snapshot()

	if snap.State != "running" || snap.Frame != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.BricksRemaining != 60 || len(snap.Bricks) != 60 {
		t.Errorf("bricks = %d/%d, expected 60", snap.BricksRemaining, len(snap.Bricks))
	}
	if snap.PaddleX != 300 || snap.BallY != 400 || snap.BallVY != 0.1 {
		t.Errorf("snapshot = %+v", snap)
	}

	other := snap
	other.BallX++
	if other.Hash() == snap.Hash() {
		t.Error("Hash() should change with the ball position")
	}
}
