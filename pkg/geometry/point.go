package geometry

import "math"

// Point represents a 2D screen coordinate in pixels
type Point struct {
	X, Y float64
}

// NewPoint creates a new point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the difference between two points
func (p Point) Sub(other Point) Point {
	return Point{
		X: p.X - other.X,
		Y: p.Y - other.Y,
	}
}

// Round returns the point snapped to whole pixels
func (p Point) Round() Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// Midpoint returns the point halfway between p and other
func (p Point) Midpoint(other Point) Point {
	return Point{
		X: (p.X + other.X) / 2,
		Y: (p.Y + other.Y) / 2,
	}
}

// Distance returns the Euclidean distance from a to b together with the
// signed deltas b-a along each axis.
func Distance(a, b Point) (dist, dx, dy float64) {
	d := b.Sub(a)
	return math.Hypot(d.X, d.Y), d.X, d.Y
}

// Axis identifies the direction a locked line is constrained to
type Axis int

const (
	AxisNone Axis = iota
	AxisHorizontal
	AxisVertical
)

// LockAxis decides which axis a line from start to raw snaps to.
// The dominant delta wins; equal deltas lock vertically.
func LockAxis(start, raw Point) Axis {
	_, dx, dy := Distance(start, raw)
	if math.Abs(dx) > math.Abs(dy) {
		return AxisHorizontal
	}
	return AxisVertical
}

// ResolveEndpoint returns the endpoint of a line from start towards raw.
// Without lock the raw point is returned unchanged.
func ResolveEndpoint(start, raw Point, lock bool) Point {
	if !lock {
		return raw
	}

	switch LockAxis(start, raw) {
	case AxisHorizontal:
		return Point{X: raw.X, Y: start.Y}
	default:
		return Point{X: start.X, Y: raw.Y}
	}
}
