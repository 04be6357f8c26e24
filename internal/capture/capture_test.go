package capture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNextPath(t *testing.T) {
	dir := t.TempDir()

	first, err := NextPath(dir)
	if err != nil {
		t.Fatalf("NextPath failed: %v", err)
	}
	if filepath.Base(first) != "screenshot_pixelruler_0000.png" {
		t.Errorf("unexpected first name %q", first)
	}

	for _, n := range []string{"0000", "0001", "0003"} {
		if err := os.WriteFile(filepath.Join(dir, "screenshot_pixelruler_"+n+".png"), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	next, err := NextPath(dir)
	if err != nil {
		t.Fatalf("NextPath failed: %v", err)
	}
	if filepath.Base(next) != "screenshot_pixelruler_0002.png" {
		t.Errorf("expected the first gap, got %q", next)
	}
}

func TestDetect(t *testing.T) {
	only := func(name string) func(string) (string, error) {
		return func(n string) (string, error) {
			if n == name {
				return "/usr/bin/" + n, nil
			}
			return "", errors.New("not found")
		}
	}

	if c := detect("linux", only("scrot")); c == nil || c.Name() != "scrot" {
		t.Errorf("expected scrot capturer, got %v", c)
	}
	if c := detect("darwin", only("screencapture")); c == nil || c.Name() != "screencapture" {
		t.Errorf("expected screencapture capturer, got %v", c)
	}
	if c := detect("windows", only("scrot")); c != nil {
		t.Errorf("expected no capturer on windows, got %v", c.Name())
	}
	if c := detect("linux", only("none")); c != nil {
		t.Errorf("expected no capturer, got %v", c.Name())
	}
}

func TestToolArgs(t *testing.T) {
	r := image.Rect(10, 20, 110, 70)
	for goos, list := range tools {
		for _, tl := range list {
			args := strings.Join(tl.args(r, "/tmp/x.png"), " ")
			if !strings.Contains(args, "/tmp/x.png") {
				t.Errorf("%s/%s args miss output path: %s", goos, tl.name, args)
			}
			if !strings.Contains(args, "100") || !strings.Contains(args, "50") {
				t.Errorf("%s/%s args miss region size: %s", goos, tl.name, args)
			}
		}
	}
}

type fakeChrome struct {
	calls []string
}

func (f *fakeChrome) SetOpacity(o float32) {
	if o < 0.2 {
		f.calls = append(f.calls, "faint")
	} else {
		f.calls = append(f.calls, "opaque")
	}
}

func (f *fakeChrome) SetDecorated(d bool) {
	if d {
		f.calls = append(f.calls, "decorated")
	} else {
		f.calls = append(f.calls, "undecorated")
	}
}

func (f *fakeChrome) Bounds() image.Rectangle {
	f.calls = append(f.calls, "bounds")
	return image.Rect(0, 0, 200, 200)
}

type fakeCapturer struct {
	err    error
	region image.Rectangle
}

func (f *fakeCapturer) Name() string { return "fake" }

func (f *fakeCapturer) Capture(_ context.Context, region image.Rectangle, path string) error {
	f.region = region
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(path, []byte("png"), 0o644)
}

func TestScreenshotterTake(t *testing.T) {
	chrome := &fakeChrome{}
	capturer := &fakeCapturer{}
	s := &Screenshotter{Chrome: chrome, Capturer: capturer, Dir: t.TempDir(), Opacity: 0.3, Faint: 0.1}

	path, err := s.Take(context.Background())
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
	if capturer.region != image.Rect(0, 0, 200, 200) {
		t.Errorf("captured region %v", capturer.region)
	}

	want := "undecorated faint bounds decorated opaque"
	if got := strings.Join(chrome.calls, " "); got != want {
		t.Errorf("chrome calls = %q, want %q", got, want)
	}
}

func TestScreenshotterRestoresOnFailure(t *testing.T) {
	chrome := &fakeChrome{}
	boom := errors.New("boom")
	s := &Screenshotter{Chrome: chrome, Capturer: &fakeCapturer{err: boom}, Dir: t.TempDir(), Opacity: 0.3, Faint: 0.1}

	if err := s.Action(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if n := len(chrome.calls); n < 2 || chrome.calls[n-2] != "decorated" || chrome.calls[n-1] != "opaque" {
		t.Errorf("window not restored: %v", chrome.calls)
	}
}

func TestScreenshotterWithoutCapturer(t *testing.T) {
	chrome := &fakeChrome{}
	out := &bytes.Buffer{}
	s := &Screenshotter{Chrome: chrome, Dir: t.TempDir(), Out: out}

	if _, err := s.Take(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if err := s.Action(context.Background()); err != nil {
		t.Errorf("Action should skip gracefully, got %v", err)
	}
	if len(chrome.calls) != 0 {
		t.Errorf("window touched without capturer: %v", chrome.calls)
	}
	if !strings.Contains(out.String(), "install a screenshot tool") {
		t.Errorf("missing hint, got %q", out.String())
	}
}
