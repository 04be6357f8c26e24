// Package scene keeps the primitives drawn by a measurement session so that a
// GUI loop running on another goroutine can render them every frame.
package scene

import (
	"sort"
	"sync"

	"github.com/philipparndt/goruler/internal/measurement"
	"github.com/philipparndt/goruler/pkg/geometry"
)

// Kind tells how an Item is drawn
type Kind int

const (
	KindLine Kind = iota
	KindText
)

// Item is one drawn primitive. Text items only use P1.
type Item struct {
	Handle measurement.Handle
	Kind   Kind
	P1     geometry.Point
	P2     geometry.Point
	Text   string
}

// Scene is a mutex guarded display list implementing measurement.Surface
type Scene struct {
	mu      sync.RWMutex
	next    measurement.Handle
	items   map[measurement.Handle]Item
	version uint64
}

var _ measurement.Surface = (*Scene)(nil)

// New creates an empty scene
func New() *Scene {
	return &Scene{items: make(map[measurement.Handle]Item)}
}

// DrawLine adds a line from p1 to p2
func (s *Scene) DrawLine(p1, p2 geometry.Point) measurement.Handle {
	return s.add(Item{Kind: KindLine, P1: p1, P2: p2})
}

// DrawText adds a text label centred at the given point
func (s *Scene) DrawText(at geometry.Point, text string) measurement.Handle {
	return s.add(Item{Kind: KindText, P1: at, Text: text})
}

func (s *Scene) add(item Item) measurement.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	item.Handle = s.next
	s.items[item.Handle] = item
	s.version++
	return item.Handle
}

// Erase removes a primitive. Unknown handles are ignored.
func (s *Scene) Erase(h measurement.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[h]; ok {
		delete(s.items, h)
		s.version++
	}
}

// ClearAll removes every primitive
func (s *Scene) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[measurement.Handle]Item)
	s.version++
}

// Snapshot returns the current items in drawing order together with the
// scene version. The version changes whenever the scene does.
func (s *Scene) Snapshot() ([]Item, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Handle < items[j].Handle })
	return items, s.version
}

// Version returns a counter that changes on every mutation
func (s *Scene) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Len returns the number of live primitives
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
