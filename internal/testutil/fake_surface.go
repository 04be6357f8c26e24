package testutil

import (
	"sort"

	"github.com/philipparndt/goruler/internal/measurement"
	"github.com/philipparndt/goruler/pkg/geometry"
)

// Primitive is a line or text drawn on a FakeSurface.
type Primitive struct {
	Handle measurement.Handle
	Kind   string // "line" or "text"
	P1     geometry.Point
	P2     geometry.Point
	Text   string
}

// FakeSurface implements measurement.Surface in memory and records calls.
type FakeSurface struct {
	next   measurement.Handle
	live   map[measurement.Handle]Primitive
	Calls  []string
	Erased []measurement.Handle
}

// Ensure FakeSurface implements the interface.
var _ measurement.Surface = (*FakeSurface)(nil)

// NewFakeSurface returns an empty surface.
func NewFakeSurface() *FakeSurface {
	return &FakeSurface{live: make(map[measurement.Handle]Primitive)}
}

// DrawLine records a line.
func (f *FakeSurface) DrawLine(p1, p2 geometry.Point) measurement.Handle {
	f.next++
	f.live[f.next] = Primitive{Handle: f.next, Kind: "line", P1: p1, P2: p2}
	f.Calls = append(f.Calls, "DrawLine")
	return f.next
}

// DrawText records a text label.
func (f *FakeSurface) DrawText(at geometry.Point, text string) measurement.Handle {
	f.next++
	f.live[f.next] = Primitive{Handle: f.next, Kind: "text", P1: at, Text: text}
	f.Calls = append(f.Calls, "DrawText")
	return f.next
}

// Erase removes a primitive.
func (f *FakeSurface) Erase(h measurement.Handle) {
	delete(f.live, h)
	f.Erased = append(f.Erased, h)
	f.Calls = append(f.Calls, "Erase")
}

// ClearAll removes every primitive.
func (f *FakeSurface) ClearAll() {
	f.live = make(map[measurement.Handle]Primitive)
	f.Calls = append(f.Calls, "ClearAll")
}

// Live returns the primitives currently on the surface in drawing order.
func (f *FakeSurface) Live() []Primitive {
	out := make([]Primitive, 0, len(f.live))
	for _, p := range f.live {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Lines returns the live lines.
func (f *FakeSurface) Lines() []Primitive {
	return f.filter("line")
}

// Texts returns the live text labels.
func (f *FakeSurface) Texts() []Primitive {
	return f.filter("text")
}

func (f *FakeSurface) filter(kind string) []Primitive {
	var out []Primitive
	for _, p := range f.Live() {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}
