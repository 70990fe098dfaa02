package breakout

import (
	"math"

	"github.com/vovakirdan/breakout/internal/core"
)

// BrickState is the position and color of one remaining brick.
type BrickState struct {
	X     float32  `yaml:"x"`
	Y     float32  `yaml:"y"`
	Color core.RGB `yaml:"color"`
}

// Snapshot contains the observable game state for replays and tests.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Frame           uint64       `yaml:"frame"`
	State           string       `yaml:"state"`
	PaddleX         float32      `yaml:"paddle_x"`
	PaddleY         float32      `yaml:"paddle_y"`
	BallX           float32      `yaml:"ball_x"`
	BallY           float32      `yaml:"ball_y"`
	BallVX          float32      `yaml:"ball_vx"`
	BallVY          float32      `yaml:"ball_vy"`
	BricksRemaining int          `yaml:"bricks_remaining"`
	BricksDestroyed int          `yaml:"bricks_destroyed"`
	Bricks          []BrickState `yaml:"bricks,omitempty"`
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	bricks := make([]BrickState, 0, g.bricks.Len())
	for b := range g.bricks.All() {
		bricks = append(bricks, BrickState{X: b.Box.Pos.X, Y: b.Box.Pos.Y, Color: b.Color})
	}

	return Snapshot{
		Frame:           g.frame,
		State:           g.state.String(),
		PaddleX:         g.paddle.Box.Pos.X,
		PaddleY:         g.paddle.Box.Pos.Y,
		BallX:           g.ball.Box.Pos.X,
		BallY:           g.ball.Box.Pos.Y,
		BallVX:          g.ballVel.X,
		BallVY:          g.ballVel.Y,
		BricksRemaining: g.bricks.Len(),
		BricksDestroyed: g.destroyed,
		Bricks:          bricks,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	for _, c := range snap.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	for _, f := range []float32{snap.PaddleX, snap.PaddleY, snap.BallX, snap.BallY, snap.BallVX, snap.BallVY} {
		h = h*31 + uint64(math.Float32bits(f))
	}
	h = h*31 + uint64(snap.BricksRemaining) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksDestroyed) //#nosec G115 -- hash computation

	for _, b := range snap.Bricks {
		h = h*31 + uint64(math.Float32bits(b.X))
		h = h*31 + uint64(math.Float32bits(b.Y))
		h = h*31 + (uint64(b.Color.R)<<16 | uint64(b.Color.G)<<8 | uint64(b.Color.B))
	}
	return h
}
