// Package measurement implements the line drawing and measuring state of a
// ruler window: gestures, axis lock, undo and scale calibration.
package measurement

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/philipparndt/goruler/pkg/geometry"
)

// Options configures a Session
type Options struct {
	ShowLabels  bool
	DefaultUnit string       // unit label used when calibration input has none
	Out         io.Writer    // user facing notices, io.Discard when nil
	Logger      *slog.Logger // slog.Default() when nil
}

// Session holds all drawing and measurement state of one ruler window.
// It is not safe for concurrent use; callers serialise events.
type Session struct {
	surface Surface
	prompt  Prompt
	out     io.Writer
	log     *slog.Logger

	start *geometry.Point
	end   *geometry.Point

	active    Handle
	lastLine  Handle
	lastLabel Handle

	showLabels    bool
	awaitingScale bool
	scale         *Scale
	defaultUnit   string
}

// NewSession creates a session drawing on surface. prompt may be nil, in
// which case calibration requests are aborted.
func NewSession(surface Surface, prompt Prompt, opts Options) *Session {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	unit := opts.DefaultUnit
	if unit == "" {
		unit = DefaultUnit
	}

	return &Session{
		surface:     surface,
		prompt:      prompt,
		out:         out,
		log:         logger,
		showLabels:  opts.ShowLabels,
		defaultUnit: unit,
	}
}

// OnPress starts a new gesture at p
func (s *Session) OnPress(p geometry.Point) {
	s.start = &p
	s.end = nil
}

// OnDrag replaces the in-progress line with one ending at p
func (s *Session) OnDrag(p geometry.Point, lock bool) error {
	if s.start == nil {
		return fmt.Errorf("failed to drag to %v: %w", p, ErrPrecondition)
	}

	end := geometry.ResolveEndpoint(*s.start, p, lock)

	s.eraseActive()
	s.active = s.surface.DrawLine(*s.start, end)
	return nil
}

// OnRelease finishes the gesture at p, draws the final line and reports its
// length. An armed calibration consumes this gesture's distance first.
func (s *Session) OnRelease(ctx context.Context, p geometry.Point, lock bool) (Report, error) {
	if s.start == nil {
		return Report{}, fmt.Errorf("failed to release at %v: %w", p, ErrPrecondition)
	}

	s.eraseActive()

	end := geometry.ResolveEndpoint(*s.start, p, lock)
	s.lastLine = s.surface.DrawLine(*s.start, end)
	s.lastLabel = 0
	s.end = &end

	dist, _, _ := geometry.Distance(*s.start, end)

	var calibration *CalibrationResult
	if s.awaitingScale {
		s.awaitingScale = false
		result := s.Calibrate(ctx, dist)
		calibration = &result
	}

	report := newReport(*s.start, end, s.scale)
	report.Calibration = calibration

	if s.showLabels {
		report.Label = FormatLabel(dist, s.scale)
		s.lastLabel = s.surface.DrawText(s.start.Midpoint(end), report.Label)
	}

	s.log.Debug("measured line", "start", *s.start, "end", end, "distance", dist)
	return report, nil
}

func (s *Session) eraseActive() {
	if s.active != 0 {
		s.surface.Erase(s.active)
		s.active = 0
	}
}

// Undo removes the last finished line and its label.
// It reports whether anything was removed.
func (s *Session) Undo() bool {
	if s.lastLine == 0 {
		return false
	}

	if s.lastLabel != 0 {
		s.surface.Erase(s.lastLabel)
	}
	s.surface.Erase(s.lastLine)
	fmt.Fprintln(s.out, "removed last line from canvas...")

	s.lastLine = 0
	s.lastLabel = 0
	return true
}

// Clear removes everything from the surface
func (s *Session) Clear() {
	fmt.Fprintln(s.out, "Clearing all lines...")
	s.surface.ClearAll()
	s.active = 0
	s.lastLine = 0
	s.lastLabel = 0
}

// ToggleLabels flips whether finished lines get a distance label and
// returns the new mode.
func (s *Session) ToggleLabels() bool {
	s.showLabels = !s.showLabels

	mode := "Do not display"
	if s.showLabels {
		mode = "Display"
	}
	fmt.Fprintf(s.out, "Switched mode: %s distances for lines on canvas.\n", mode)
	return s.showLabels
}

// SetShowLabels sets the label mode without a notice
func (s *Session) SetShowLabels(show bool) {
	s.showLabels = show
}

// ShowLabels reports whether finished lines get a distance label
func (s *Session) ShowLabels() bool {
	return s.showLabels
}

// ArmCalibration makes the next finished gesture the calibration reference
func (s *Session) ArmCalibration() {
	s.awaitingScale = true
	fmt.Fprintln(s.out, "Draw the line for a distance which should be used as a known reference. "+
		"To reset the scale reference just click once to generate a line with zero distance...")
}

// AwaitingCalibration reports whether the next gesture calibrates the scale
func (s *Session) AwaitingCalibration() bool {
	return s.awaitingScale
}

// Scale returns the active scale, if any
func (s *Session) Scale() (Scale, bool) {
	if s.scale == nil {
		return Scale{}, false
	}
	return *s.scale, true
}

// Convert converts a pixel distance with the active scale.
// Without a scale the distance is returned unchanged.
func (s *Session) Convert(px float64) float64 {
	if s.scale == nil {
		return px
	}
	return s.scale.Apply(px)
}

// Start returns the anchor of the current gesture
func (s *Session) Start() (geometry.Point, bool) {
	if s.start == nil {
		return geometry.Point{}, false
	}
	return *s.start, true
}

// End returns the endpoint of the last finished gesture
func (s *Session) End() (geometry.Point, bool) {
	if s.end == nil {
		return geometry.Point{}, false
	}
	return *s.end, true
}
