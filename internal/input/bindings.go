package input

import (
	"context"

	"github.com/philipparndt/goruler/internal/measurement"
)

// HelpText describes the default bindings
const HelpText = `Usage:
   goruler

   Measures the distance between the press and release of a mouse drag in
   pixels and reports it.

   Additional functions:

   - Hold Shift while dragging to lock one dimension, for exactly horizontal
     or vertical lines.

   - Press F5 to draw a line as a reference scale. Afterwards enter the
     distance it stands for (e.g. "50 mm"). All following lines are converted
     into this scale as well. To reset the scale press F5 again and just click
     on the window.

   - Press L to toggle displaying distances on the canvas.

   - Press Ctrl+Z to remove the last drawn line.

   - Press Escape to delete all lines on the canvas.

   - Press F8 to save a screenshot of the window region.

   - Press F11 / F12 to hide / show the title bar.

   - Press F1 to show this help.
`

// Actions are the window level features reachable from key bindings.
// Nil actions are not bound.
type Actions struct {
	Report     func(measurement.Report)
	Help       func()
	Screenshot func(ctx context.Context) error
	HideChrome func()
	ShowChrome func()
}

// Bind registers the ruler bindings for s on r
func Bind(r *Router, s *measurement.Session, a Actions) {
	r.Handle(Press, ModNone, pressHandler(s))

	r.Handle(Drag, ModNone, dragHandler(s, false))
	r.Handle(Drag, ModShift, dragHandler(s, true))

	r.Handle(Release, ModNone, releaseHandler(s, false, a.Report))
	r.Handle(Release, ModShift, releaseHandler(s, true, a.Report))

	r.HandleKey(KeyF5, ModNone, action(s.ArmCalibration))
	r.HandleKey(KeyL, ModNone, action(func() { s.ToggleLabels() }))
	r.HandleKey(KeyZ, ModCtrl, action(func() { s.Undo() }))
	r.HandleKey(KeyEscape, ModNone, action(s.Clear))

	if a.Help != nil {
		r.HandleKey(KeyF1, ModNone, action(a.Help))
	}
	if a.Screenshot != nil {
		r.HandleKey(KeyF8, ModNone, func(ctx context.Context, _ Event) error {
			return a.Screenshot(ctx)
		})
	}
	if a.HideChrome != nil {
		r.HandleKey(KeyF11, ModNone, action(a.HideChrome))
	}
	if a.ShowChrome != nil {
		r.HandleKey(KeyF12, ModNone, action(a.ShowChrome))
	}
}

func pressHandler(s *measurement.Session) Handler {
	return func(_ context.Context, ev Event) error {
		s.OnPress(ev.Point)
		return nil
	}
}

func dragHandler(s *measurement.Session, lock bool) Handler {
	return func(_ context.Context, ev Event) error {
		return s.OnDrag(ev.Point, lock)
	}
}

func releaseHandler(s *measurement.Session, lock bool, report func(measurement.Report)) Handler {
	return func(ctx context.Context, ev Event) error {
		r, err := s.OnRelease(ctx, ev.Point, lock)
		if err != nil {
			return err
		}
		if report != nil {
			report(r)
		}
		return nil
	}
}

func action(fn func()) Handler {
	return func(context.Context, Event) error {
		fn()
		return nil
	}
}
