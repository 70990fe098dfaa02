// Package core provides fundamental types and utilities for the game.
// It contains no external dependencies (especially no Bubble Tea or Ebiten)
// to keep game logic pure and testable.
package core

import "fmt"

// Vec is a 2D vector used for positions and velocities.
// It is a value type and is copied freely.
type Vec struct {
	X, Y float32
}

// NewVec creates a vector with the given components.
func NewVec(x, y float32) Vec {
	return Vec{X: x, Y: y}
}

// Add adds d to v in place.
func (v *Vec) Add(d Vec) {
	v.X += d.X
	v.Y += d.Y
}

// AddXY adds the given offsets to v in place.
func (v *Vec) AddXY(x, y float32) {
	v.X += x
	v.Y += y
}

// String formats the vector as "{ x: .., y: .. }".
func (v Vec) String() string {
	return fmt.Sprintf("{ x: %f, y: %f }", v.X, v.Y)
}

// Box is an axis-aligned box in playfield coordinates.
// Pos is the upper-left corner; Y grows downward.
type Box struct {
	Pos  Vec
	W, H float32
}

// NewBox creates a box at (x, y) with the given size.
func NewBox(x, y, w, h float32) Box {
	return Box{Pos: Vec{X: x, Y: y}, W: w, H: h}
}

// NewBoxAt creates a box at pos with the given size.
func NewBoxAt(pos Vec, w, h float32) Box {
	return NewBox(pos.X, pos.Y, w, h)
}

// Move translates the box by d.
func (b *Box) Move(d Vec) {
	b.Pos.Add(d)
}

// MoveXY translates the box by (x, y).
func (b *Box) MoveXY(x, y float32) {
	b.Pos.AddXY(x, y)
}

// SetPos moves the box's upper-left corner to pos.
func (b *Box) SetPos(pos Vec) {
	b.Pos = pos
}

// SetPosXY moves the box's upper-left corner to (x, y).
func (b *Box) SetPosXY(x, y float32) {
	b.Pos.X = x
	b.Pos.Y = y
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float32 { return b.Pos.X }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float32 { return b.Pos.X + b.W }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float32 { return b.Pos.Y }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float32 { return b.Pos.Y + b.H }

// Center returns the center point of the box.
func (b Box) Center() Vec {
	return Vec{X: b.Pos.X + b.W/2, Y: b.Pos.Y + b.H/2}
}

// String formats the box as "{ x: .., y: .., w: .., h: .. }".
func (b Box) String() string {
	return fmt.Sprintf("{ x: %f, y: %f, w: %f, h: %f }", b.Pos.X, b.Pos.Y, b.W, b.H)
}

// Rect is an integer rectangle on the terminal cell grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Clip returns the part of r that lies inside bounds.
// The result has zero width or height when they do not intersect.
func (r Rect) Clip(bounds Rect) Rect {
	x0 := Max(r.X, bounds.X)
	y0 := Max(r.Y, bounds.Y)
	x1 := Min(r.Right(), bounds.Right())
	y1 := Min(r.Bottom(), bounds.Bottom())
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
