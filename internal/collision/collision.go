// Package collision implements axis-aligned overlap tests and the
// minimum-translation rebound used to bounce the ball off obstacles.
package collision

import "github.com/vovakirdan/breakout/internal/core"

// Overlap is the result of testing two boxes.
// PushX and PushY are the signed offsets that move the second box out of
// the first along each axis. Both are zero when Hit is false.
type Overlap struct {
	Hit          bool
	PushX, PushY float32
}

// Test reports whether a and b overlap and, if so, how far b must move on
// each axis to leave a. Boxes that only touch along an edge overlap.
//
// On the X axis b is pushed right when a's center lies left of b's center,
// and left otherwise. The Y axis works the same way with up and down.
func Test(a, b core.Box) Overlap {
	if a.Right() < b.Left() || b.Right() < a.Left() ||
		a.Bottom() < b.Top() || b.Bottom() < a.Top() {
		return Overlap{}
	}

	ac, bc := a.Center(), b.Center()
	o := Overlap{Hit: true}
	if ac.X < bc.X {
		o.PushX = a.Right() - b.Left()
	} else {
		o.PushX = a.Left() - b.Right()
	}
	if ac.Y < bc.Y {
		o.PushY = a.Bottom() - b.Top()
	} else {
		o.PushY = a.Top() - b.Bottom()
	}
	return o
}

// MinAxis keeps the push along the shallower axis and zeroes the other.
// Equal magnitudes resolve vertically.
func (o Overlap) MinAxis() Overlap {
	if !o.Hit {
		return o
	}
	if abs(o.PushX) < abs(o.PushY) {
		o.PushY = 0
	} else {
		o.PushX = 0
	}
	return o
}

// Rebound tests ball against obstacle and on a hit moves the ball out along
// the shallower axis, reflecting the velocity component of that axis.
// The applied push is returned. Nothing changes when there is no hit.
func Rebound(obstacle core.Box, ball *core.Box, vel *core.Vec) Overlap {
	o := Test(obstacle, *ball).MinAxis()
	if !o.Hit {
		return o
	}
	ball.MoveXY(o.PushX, o.PushY)
	if o.PushX != 0 {
		vel.X = -vel.X
	}
	if o.PushY != 0 {
		vel.Y = -vel.Y
	}
	return o
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
