// Package capture saves screenshots of the ruler window region using the
// platform's screenshot tool.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrUnavailable is returned when no screenshot tool could be found
var ErrUnavailable = errors.New("screenshot capture unavailable")

const filePattern = "screenshot_pixelruler_%04d.png"

// Capturer grabs a screen region into a PNG file
type Capturer interface {
	Capture(ctx context.Context, region image.Rectangle, path string) error
	Name() string
}

type tool struct {
	name string
	args func(r image.Rectangle, path string) []string
}

var tools = map[string][]tool{
	"darwin": {
		{name: "screencapture", args: func(r image.Rectangle, path string) []string {
			return []string{"-x", "-R", fmt.Sprintf("%d,%d,%d,%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy()), path}
		}},
	},
	"linux": {
		{name: "grim", args: func(r image.Rectangle, path string) []string {
			return []string{"-g", fmt.Sprintf("%d,%d %dx%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy()), path}
		}},
		{name: "scrot", args: func(r image.Rectangle, path string) []string {
			return []string{"-o", "-a", fmt.Sprintf("%d,%d,%d,%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy()), path}
		}},
		{name: "import", args: func(r image.Rectangle, path string) []string {
			return []string{"-window", "root", "-crop", fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y), path}
		}},
	},
}

// Detect returns a capturer for the first screenshot tool found on PATH, or
// nil when the platform has none.
func Detect() Capturer {
	return detect(runtime.GOOS, exec.LookPath)
}

func detect(goos string, lookPath func(string) (string, error)) Capturer {
	for _, t := range tools[goos] {
		if path, err := lookPath(t.name); err == nil {
			return &execCapturer{tool: t, path: path}
		}
	}
	return nil
}

// execCapturer runs an external screenshot command
type execCapturer struct {
	tool tool
	path string
}

func (c *execCapturer) Name() string {
	return c.tool.name
}

func (c *execCapturer) Capture(ctx context.Context, region image.Rectangle, path string) error {
	if region.Empty() {
		return fmt.Errorf("failed to capture: empty region %v", region)
	}

	cmd := exec.CommandContext(ctx, c.path, c.tool.args(region, path)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to capture with %s: %w (stderr: %s)", c.tool.name, err, stderr.String())
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%s did not write %s: %w", c.tool.name, path, err)
	}
	return nil
}

// NextPath returns the first unused screenshot file name in dir
func NextPath(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory %s: %w", dir, err)
	}

	for n := 0; ; n++ {
		path := filepath.Join(dir, fmt.Sprintf(filePattern, n))
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", path, err)
		}
	}
}
