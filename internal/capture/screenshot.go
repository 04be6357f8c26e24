package capture

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
)

// Chrome controls the ruler window decoration and opacity
type Chrome interface {
	SetOpacity(opacity float32)
	SetDecorated(decorated bool)
	Bounds() image.Rectangle
}

// Screenshotter saves the screen region under the ruler window. The window is
// undecorated and faded while the capture runs.
type Screenshotter struct {
	Chrome   Chrome
	Capturer Capturer // nil when no capture tool is available
	Dir      string
	Opacity  float32
	Faint    float32
	Out      io.Writer
	Log      *slog.Logger
}

// Take captures one screenshot and returns its path. Without a capturer it
// returns ErrUnavailable and leaves the window untouched.
func (s *Screenshotter) Take(ctx context.Context) (string, error) {
	if s.Capturer == nil {
		return "", ErrUnavailable
	}

	path, err := NextPath(s.Dir)
	if err != nil {
		return "", err
	}

	s.Chrome.SetDecorated(false)
	s.Chrome.SetOpacity(s.Faint)
	defer func() {
		s.Chrome.SetDecorated(true)
		s.Chrome.SetOpacity(s.Opacity)
	}()

	region := s.Chrome.Bounds()
	if err := s.Capturer.Capture(ctx, region, path); err != nil {
		return "", err
	}
	return path, nil
}

// Action adapts Take to a key binding. A missing capture tool is reported and
// skipped rather than treated as a failure.
func (s *Screenshotter) Action(ctx context.Context) error {
	path, err := s.Take(ctx)
	if err == ErrUnavailable {
		s.logger().Warn("screenshot skipped", "reason", err)
		if s.Out != nil {
			fmt.Fprintln(s.Out, "To capture screenshots install a screenshot tool (screencapture, grim, scrot or ImageMagick import).")
		}
		return nil
	}
	if err != nil {
		return err
	}

	s.logger().Info("screenshot saved", "path", path)
	if s.Out != nil {
		fmt.Fprintf(s.Out, "Saved screenshot to %s\n", path)
	}
	return nil
}

func (s *Screenshotter) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}
