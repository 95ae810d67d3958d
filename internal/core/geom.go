// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an integer cell rectangle used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// RectF is a floating-point axis-aligned box in simulation units.
// Falling objects and the basket live in this space; the renderer maps it to cells.
type RectF struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Overlaps reports whether r overlaps other.
// Horizontal edges are exclusive; the vertical test treats r's bottom edge
// touching other's top edge as contact, so a fruit resting on the basket rim
// counts as caught.
func (r RectF) Overlaps(other RectF) bool {
	return r.Right() > other.X &&
		r.X < other.Right() &&
		r.Bottom() >= other.Y &&
		r.Y < other.Bottom()
}

// Cells converts the box to a drawing rectangle, truncating toward zero.
func (r RectF) Cells() Rect {
	w, h := int(r.W), int(r.H)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return NewRect(int(r.X), int(r.Y), w, h)
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
