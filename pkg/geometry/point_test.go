package geometry

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	dist, dx, dy := Distance(NewPoint(0, 0), NewPoint(3, 4))

	if math.Abs(dist-5.0) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", dist)
	}
	if dx != 3 || dy != 4 {
		t.Errorf("Distance deltas failed: expected (3, 4), got (%v, %v)", dx, dy)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	points := []Point{
		NewPoint(0, 0),
		NewPoint(10, -3),
		NewPoint(-7.5, 2.25),
		NewPoint(120, 480),
	}

	for _, a := range points {
		for _, b := range points {
			d1, dx1, dy1 := Distance(a, b)
			d2, dx2, dy2 := Distance(b, a)

			if math.Abs(d1-d2) > 1e-10 {
				t.Errorf("Distance not symmetric for %v, %v: %v vs %v", a, b, d1, d2)
			}
			if dx1 != -dx2 || dy1 != -dy2 {
				t.Errorf("Deltas do not negate for %v, %v: (%v, %v) vs (%v, %v)", a, b, dx1, dy1, dx2, dy2)
			}
		}
	}
}

func TestMidpoint(t *testing.T) {
	mid := NewPoint(0, 0).Midpoint(NewPoint(10, 5))

	expected := NewPoint(5, 2.5)
	if mid != expected {
		t.Errorf("Midpoint failed: expected %v, got %v", expected, mid)
	}
}

func TestResolveEndpointUnlocked(t *testing.T) {
	start := NewPoint(4, 4)
	for _, raw := range []Point{NewPoint(0, 0), NewPoint(17, 3), NewPoint(4, 4), NewPoint(-2, 9)} {
		if got := ResolveEndpoint(start, raw, false); got != raw {
			t.Errorf("ResolveEndpoint without lock changed %v to %v", raw, got)
		}
	}
}

func TestResolveEndpointHorizontal(t *testing.T) {
	start := NewPoint(10, 10)
	got := ResolveEndpoint(start, NewPoint(30, 15), true)

	expected := NewPoint(30, 10)
	if got != expected {
		t.Errorf("Horizontal lock failed: expected %v, got %v", expected, got)
	}
}

func TestResolveEndpointVertical(t *testing.T) {
	start := NewPoint(10, 10)
	got := ResolveEndpoint(start, NewPoint(12, -40), true)

	expected := NewPoint(10, -40)
	if got != expected {
		t.Errorf("Vertical lock failed: expected %v, got %v", expected, got)
	}
}

func TestResolveEndpointTieLocksVertical(t *testing.T) {
	start := NewPoint(0, 0)
	for _, raw := range []Point{NewPoint(5, 5), NewPoint(-5, 5), NewPoint(5, -5), NewPoint(0, 0)} {
		got := ResolveEndpoint(start, raw, true)
		if got.X != start.X || got.Y != raw.Y {
			t.Errorf("Tie for %v should lock vertically, got %v", raw, got)
		}
	}
}

func TestResolveEndpointLocksExactlyOneAxis(t *testing.T) {
	start := NewPoint(3, 7)
	for _, raw := range []Point{NewPoint(9, 8), NewPoint(2, 30), NewPoint(-11, 6), NewPoint(4, -1)} {
		got := ResolveEndpoint(start, raw, true)
		sameX := got.X == start.X
		sameY := got.Y == start.Y
		if sameX == sameY {
			t.Errorf("Lock for %v should keep exactly one start coordinate, got %v", raw, got)
		}
	}
}
