// Package input turns toolkit input into session calls. Frontends post
// Events; a Dispatcher routes them one at a time through a Router.
package input

import (
	"fmt"
	"strings"

	"github.com/philipparndt/goruler/pkg/geometry"
)

// Kind is the type of an input event
type Kind int

const (
	Press Kind = iota
	Drag
	Release
	KeyPress
)

func (k Kind) String() string {
	switch k {
	case Press:
		return "press"
	case Drag:
		return "drag"
	case Release:
		return "release"
	case KeyPress:
		return "key"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mods is a set of held modifier keys
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModCtrl
	ModAlt

	ModNone Mods = 0
)

// Has reports whether all of m are held
func (m Mods) Has(other Mods) bool {
	return m&other == other
}

// Key identifies a keyboard key
type Key string

const (
	KeyF1     Key = "F1"
	KeyF5     Key = "F5"
	KeyF8     Key = "F8"
	KeyF11    Key = "F11"
	KeyF12    Key = "F12"
	KeyL      Key = "L"
	KeyZ      Key = "Z"
	KeyEscape Key = "Escape"
)

// NormalizeKey maps toolkit key names to Key values. Letters are
// upper-cased so that "l" and "L" bind the same action.
func NormalizeKey(name string) Key {
	if len(name) == 1 {
		return Key(strings.ToUpper(name))
	}
	if strings.EqualFold(name, "esc") || strings.EqualFold(name, "escape") {
		return KeyEscape
	}
	return Key(name)
}

// Event is a single input event in surface coordinates
type Event struct {
	Kind  Kind
	Point geometry.Point
	Key   Key
	Mods  Mods
}

// PointerEvent builds a press, drag or release event
func PointerEvent(kind Kind, p geometry.Point, mods Mods) Event {
	return Event{Kind: kind, Point: p, Mods: mods}
}

// KeyEvent builds a key press event
func KeyEvent(key Key, mods Mods) Event {
	return Event{Kind: KeyPress, Key: key, Mods: mods}
}
