// Package breakout implements the breakout game loop: a keyboard-driven
// paddle deflects a ball that destroys a grid of bricks.
package breakout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakout/internal/collision"
	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/entity"
)

// ErrDevice reports a failure of the renderer or the input source.
var ErrDevice = errors.New("breakout: device failure")

// State is the game's run state.
type State int

const (
	StateRunning State = iota
	StateStopped
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Entity is a colored box: the paddle, the ball or one brick.
type Entity struct {
	Box   core.Box
	Color core.RGB
}

// Game owns the paddle, the ball and the brick store.
// It is driven one frame at a time by Frame, or continuously by Run.
// A Game is not safe for concurrent use.
type Game struct {
	cfg    config.BreakoutConfig
	layout *Layout
	logger *log.Logger

	paddle    Entity
	paddleVel core.Vec
	ball      Entity
	ballVel   core.Vec
	bricks    *entity.Store[Entity]

	state     State
	frame     uint64
	leftHeld  bool
	rightHeld bool
	destroyed int

	difficulty  *config.DifficultyManager
	speedFactor float64

	frameInterval time.Duration
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// WithLayout places bricks from l instead of the layout named in the config.
func WithLayout(l *Layout) Option {
	return func(g *Game) {
		g.layout = l
	}
}

// WithFrameInterval paces Run to one frame per d. Zero runs frames
// back to back.
func WithFrameInterval(d time.Duration) Option {
	return func(g *Game) {
		g.frameInterval = d
	}
}

// New creates a game from cfg with the paddle, ball and bricks in their
// starting positions.
func New(cfg config.BreakoutConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: %w", err)
	}

	g := &Game{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.layout == nil {
		l, ok := LayoutByID(cfg.Bricks.Layout)
		if !ok {
			return nil, fmt.Errorf("breakout: unknown layout %q", cfg.Bricks.Layout)
		}
		g.layout = l
	}

	g.paddle = Entity{
		Box:   core.NewBox(cfg.Paddle.X, cfg.Paddle.Y, cfg.Paddle.Width, cfg.Paddle.Height),
		Color: cfg.Paddle.Color,
	}
	g.ball = Entity{
		Box:   core.NewBox(cfg.Ball.X, cfg.Ball.Y, cfg.Ball.Size, cfg.Ball.Size),
		Color: cfg.Ball.Color,
	}

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.speedFactor = g.difficulty.SpeedFactor(0, 0)
	g.ballVel = core.NewVec(
		cfg.Ball.VelocityX*float32(g.speedFactor),
		cfg.Ball.VelocityY*float32(g.speedFactor),
	)

	var storeOpts []entity.Option
	if cfg.Bricks.Capacity > 0 {
		storeOpts = append(storeOpts, entity.WithCapacity(cfg.Bricks.Capacity))
	}
	g.bricks = entity.New[Entity](storeOpts...)
	for i, b := range g.layout.Bricks(cfg.Bricks) {
		if err := g.bricks.Append(b); err != nil {
			g.bricks.Close()
			return nil, fmt.Errorf("breakout: cannot place brick %d of layout %s: %w", i, g.layout.ID, err)
		}
	}

	return g, nil
}

// Close releases the brick store.
func (g *Game) Close() {
	g.bricks.Close()
}

// State returns the current run state.
func (g *Game) State() State { return g.state }

// FrameCount returns the number of frames simulated so far.
func (g *Game) FrameCount() uint64 { return g.frame }

// Paddle returns the paddle entity.
func (g *Game) Paddle() Entity { return g.paddle }

// Ball returns the ball entity.
func (g *Game) Ball() Entity { return g.ball }

// BallVelocity returns the ball's velocity in units per frame.
func (g *Game) BallVelocity() core.Vec { return g.ballVel }

// BricksRemaining returns the number of bricks still in play.
func (g *Game) BricksRemaining() int { return g.bricks.Len() }

// Config returns the configuration the game was created with.
func (g *Game) Config() config.BreakoutConfig { return g.cfg }

// Logger returns the game's logger, for backends that log alongside it.
func (g *Game) Logger() *log.Logger { return g.logger }

// Layout returns the brick layout the game started with.
func (g *Game) Layout() *Layout { return g.layout }

// Frame advances the game by one frame: it drains pending input, moves the
// paddle and the ball, resolves collisions and draws the scene on r.
//
// Once an escape key press stops the game, Frame returns immediately
// without drawing. Input and renderer failures are reported as ErrDevice.
func (g *Game) Frame(in core.InputSource, r core.Renderer) error {
	if g.state == StateStopped {
		return nil
	}

	if err := g.pollInput(in); err != nil {
		return err
	}
	if g.state == StateStopped {
		g.logger.Info("game stopped", "frame", g.frame, "bricks", g.bricks.Len())
		return nil
	}

	g.movePaddle()
	g.moveBall()
	if err := g.collideBricks(); err != nil {
		return err
	}
	g.collidePaddle()
	g.adjustSpeed()
	g.frame++

	return g.render(r)
}

// Run plays frames until the game stops, ctx is done or a frame fails.
// A cancelled context is not an error.
func (g *Game) Run(ctx context.Context, in core.InputSource, r core.Renderer) error {
	g.logger.Info("game started", "layout", g.layout.ID, "bricks", g.bricks.Len())

	var tick <-chan time.Time
	if g.frameInterval > 0 {
		ticker := time.NewTicker(g.frameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for g.state == StateRunning {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		if err := g.Frame(in, r); err != nil {
			g.logger.Error("frame failed", "frame", g.frame, "error", err)
			return err
		}
	}
	return nil
}

// pollInput drains in and updates the held keys.
func (g *Game) pollInput(in core.InputSource) error {
	for {
		ev, ok, err := in.PollEvent()
		if err != nil {
			return fmt.Errorf("%w: poll input: %w", ErrDevice, err)
		}
		if !ok {
			return nil
		}

		down := ev.State == core.KeyDown
		switch ev.Key {
		case core.KeyEscape:
			if down {
				g.state = StateStopped
			}
		case core.KeyLeft:
			g.leftHeld = down
		case core.KeyRight:
			g.rightHeld = down
		}
	}
}

// movePaddle applies the held keys to the paddle and keeps it inside the
// playfield.
func (g *Game) movePaddle() {
	switch {
	case g.leftHeld == g.rightHeld:
		g.paddleVel.X = 0
	case g.leftHeld:
		g.paddleVel.X = -g.cfg.Paddle.Speed
	default:
		g.paddleVel.X = g.cfg.Paddle.Speed
	}
	g.paddle.Box.Move(g.paddleVel)

	maxX := g.cfg.Playfield.Width - g.paddle.Box.W
	if g.paddle.Box.Pos.X > maxX {
		g.paddle.Box.Pos.X = maxX
	}
	if g.paddle.Box.Pos.X < 0 {
		g.paddle.Box.Pos.X = 0
	}
}

// moveBall integrates the ball and reflects it off the playfield bounds.
func (g *Game) moveBall() {
	g.ball.Box.Move(g.ballVel)

	pos := g.ball.Box.Pos
	if pos.Y < 0 || pos.Y > g.cfg.Playfield.Height {
		g.ballVel.Y = -g.ballVel.Y
	}
	if pos.X < 0 || pos.X > g.cfg.Playfield.Width {
		g.ballVel.X = -g.ballVel.X
	}
}

// collideBricks destroys the first brick the ball overlaps, if any, and
// bounces the ball off it. At most one brick is destroyed per frame.
func (g *Game) collideBricks() error {
	for c := g.bricks.Cursor(); !c.AtEnd(); c.Advance() {
		brick := *c.Value()
		if !collision.Test(brick.Box, g.ball.Box).Hit {
			continue
		}

		if err := g.bricks.RemoveAt(c); err != nil {
			return fmt.Errorf("breakout: cannot remove brick: %w", err)
		}
		collision.Rebound(brick.Box, &g.ball.Box, &g.ballVel)
		g.destroyed++

		g.logger.Debug("brick hit",
			"frame", g.frame,
			"ball", g.ball.Box.Pos,
			"brick", brick.Box.Pos,
			"remaining", g.bricks.Len())
		return nil
	}
	return nil
}

// collidePaddle bounces the ball off the paddle.
func (g *Game) collidePaddle() {
	if o := collision.Rebound(g.paddle.Box, &g.ball.Box, &g.ballVel); o.Hit {
		g.logger.Debug("paddle hit",
			"frame", g.frame,
			"ball", g.ball.Box.Pos,
			"paddle", g.paddle.Box.Pos)
	}
}

// adjustSpeed rescales the ball's velocity when the difficulty level moved.
func (g *Game) adjustSpeed() {
	factor := g.difficulty.SpeedFactor(g.destroyed, int(g.frame)) //#nosec G115 -- frame count fits in int
	if factor == g.speedFactor || factor <= 0 || g.speedFactor <= 0 {
		return
	}
	scale := float32(factor / g.speedFactor)
	g.ballVel.X *= scale
	g.ballVel.Y *= scale
	g.speedFactor = factor
}

// render draws the paddle, the ball and every brick, in that order.
func (g *Game) render(r core.Renderer) error {
	if err := r.BeginFrame(); err != nil {
		return fmt.Errorf("%w: begin frame: %w", ErrDevice, err)
	}
	if err := r.DrawBox(g.paddle.Box, g.paddle.Color); err != nil {
		return fmt.Errorf("%w: draw paddle: %w", ErrDevice, err)
	}
	if err := r.DrawBox(g.ball.Box, g.ball.Color); err != nil {
		return fmt.Errorf("%w: draw ball: %w", ErrDevice, err)
	}
	for c := g.bricks.Cursor(); !c.AtEnd(); c.Advance() {
		b := c.Value()
		if err := r.DrawBox(b.Box, b.Color); err != nil {
			return fmt.Errorf("%w: draw brick: %w", ErrDevice, err)
		}
	}
	if err := r.EndFrame(); err != nil {
		return fmt.Errorf("%w: end frame: %w", ErrDevice, err)
	}
	return nil
}
