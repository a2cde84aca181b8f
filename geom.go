package scrollview

import (
	"image"
	"math"
)

// Vec2 is a 2D vector used for positions, offsets, sizes, and scroll deltas
// throughout the API. The coordinate system has its origin at the top-left,
// with Y increasing downward.
//
// Vec2 is a plain value: copy it by assignment and compare it with ==
// (comparison is exact, no epsilon). All operations return new values
// except [Vec2.Scale], which mutates in place.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale multiplies both components by f in place and returns v for chaining.
func (v *Vec2) Scale(f float64) *Vec2 {
	v.X *= f
	v.Y *= f
	return v
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Round returns v with each component rounded to the nearest integer,
// halves away from zero. Pixel-snapped positions are derived this way.
func (v Vec2) Round() image.Point {
	return image.Point{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

// Trunc returns v with each component truncated toward zero.
func (v Vec2) Trunc() image.Point {
	return image.Point{X: int(v.X), Y: int(v.Y)}
}

// clampPos moves a sub-pixel position the minimum distance needed so that
// a rectangle of the given size placed at it lies inside bounds. An axis
// that needs no move keeps its fractional part; an axis that is moved
// lands on the integer bound. On an axis where size exceeds bounds the
// position is centered.
func clampPos(pos Vec2, size image.Point, bounds image.Rectangle) Vec2 {
	switch {
	case size.X > bounds.Dx():
		pos.X = float64(bounds.Min.X + (bounds.Dx()-size.X)/2)
	case pos.X < float64(bounds.Min.X):
		pos.X = float64(bounds.Min.X)
	case pos.X+float64(size.X) > float64(bounds.Max.X):
		pos.X = float64(bounds.Max.X - size.X)
	}
	switch {
	case size.Y > bounds.Dy():
		pos.Y = float64(bounds.Min.Y + (bounds.Dy()-size.Y)/2)
	case pos.Y < float64(bounds.Min.Y):
		pos.Y = float64(bounds.Min.Y)
	case pos.Y+float64(size.Y) > float64(bounds.Max.Y):
		pos.Y = float64(bounds.Max.Y - size.Y)
	}
	return pos
}

// floorDiv divides a by b rounding toward negative infinity.
// b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod returns a modulo b with the sign of b, so the result is always
// in [0, b) for positive b. Used for wrap-around tile indexing, where Go's
// truncated % would go negative left of the origin.
func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
