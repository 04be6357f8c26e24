package overlay

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goruler/internal/input"
	"github.com/philipparndt/goruler/pkg/geometry"
)

// keyMap lists the raylib keys the ruler reacts to
var keyMap = map[int32]input.Key{
	rl.KeyF1:     input.KeyF1,
	rl.KeyF5:     input.KeyF5,
	rl.KeyF8:     input.KeyF8,
	rl.KeyF11:    input.KeyF11,
	rl.KeyF12:    input.KeyF12,
	rl.KeyL:      input.KeyL,
	rl.KeyZ:      input.KeyZ,
	rl.KeyEscape: input.KeyEscape,
}

// mouseState tracks the left button gesture between frames
type mouseState struct {
	down     bool
	last     geometry.Point
	lastMods input.Mods
}

func currentMods() input.Mods {
	mods := input.ModNone
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		mods |= input.ModShift
	}
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		mods |= input.ModCtrl
	}
	if rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt) {
		mods |= input.ModAlt
	}
	return mods
}

// pollInput turns this frame's raylib input into dispatcher events
func (o *Overlay) pollInput() {
	mods := currentMods()
	pos := toPoint(rl.GetMousePosition())

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		o.mouse = mouseState{down: true, last: pos, lastMods: mods}
		o.dispatcher.Post(input.PointerEvent(input.Press, pos, mods))

	case o.mouse.down && rl.IsMouseButtonReleased(rl.MouseLeftButton):
		o.mouse.down = false
		o.dispatcher.Post(input.PointerEvent(input.Release, pos, mods))

	case o.mouse.down && rl.IsMouseButtonDown(rl.MouseLeftButton):
		// Shift changes redraw the line even without motion
		if pos != o.mouse.last || mods != o.mouse.lastMods {
			o.mouse.last = pos
			o.mouse.lastMods = mods
			o.dispatcher.Post(input.PointerEvent(input.Drag, pos, mods))
		}
	}

	for rlKey, key := range keyMap {
		if rl.IsKeyPressed(rlKey) {
			o.dispatcher.Post(input.KeyEvent(key, mods))
		}
	}
}
