package viewer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goruler/internal/config"
	"github.com/philipparndt/goruler/internal/input"
	"github.com/philipparndt/goruler/internal/measurement"
	"github.com/philipparndt/goruler/internal/raster"
	"github.com/philipparndt/goruler/internal/testutil"
	"github.com/philipparndt/goruler/pkg/geometry"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.ScreenshotDir = t.TempDir()
	out := &bytes.Buffer{}
	return New(test.NewTempApp(t), cfg, Options{Out: out}), out
}

func TestOpenImage(t *testing.T) {
	v, _ := newTestApp(t)

	path := filepath.Join(t.TempDir(), "blank.png")
	require.NoError(t, raster.WritePNG(path, raster.Render(nil, 40, 30, raster.DefaultStyle())))

	require.NoError(t, v.Open(path))
	require.NotNil(t, v.Canvas().Image())
	assert.Equal(t, image.Rect(0, 0, 40, 30), v.Canvas().Image().Bounds())
}

func TestOpenRejectsGarbage(t *testing.T) {
	v, _ := newTestApp(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	assert.Error(t, v.Open(path))
	assert.Error(t, v.Open(filepath.Join(t.TempDir(), "missing.png")))
	assert.Nil(t, v.Canvas().Image())
}

func TestScreenshotComposite(t *testing.T) {
	v, out := newTestApp(t)

	path := filepath.Join(t.TempDir(), "blank.png")
	require.NoError(t, raster.WritePNG(path, raster.Render(nil, 40, 30, raster.DefaultStyle())))
	require.NoError(t, v.Open(path))

	v.scene.DrawLine(geometry.NewPoint(0, 10), geometry.NewPoint(39, 10))

	img := v.composite()
	assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())
	r, g, b, _ := img.At(20, 10).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})
	assert.Equal(t, color.RGBAModel.Convert(color.White), color.RGBAModel.Convert(img.At(20, 20)))

	require.NoError(t, v.screenshot(context.Background()))
	assert.FileExists(t, filepath.Join(v.cfg.ScreenshotDir, "screenshot_pixelruler_0000.png"))
	assert.Contains(t, out.String(), "Saved screenshot to")
}

func TestScaleText(t *testing.T) {
	s := measurement.NewSession(testutil.NewFakeSurface(), &testutil.FakePrompt{Answers: []string{"50 mm"}}, measurement.Options{})
	assert.Equal(t, "Scale: pixels", scaleText(s))

	res := s.Calibrate(context.Background(), 100)
	require.Equal(t, measurement.CalibrationSet, res.Outcome)
	assert.Equal(t, "Scale: 0.5000 mm/pixel", scaleText(s))
}

func TestSyncViewAfterEvents(t *testing.T) {
	v, _ := newTestApp(t)
	v.scaleLabel.SetText("stale")

	// AfterEach runs on the dispatcher goroutine; call it the same way
	v.scene.DrawLine(geometry.NewPoint(0, 0), geometry.NewPoint(5, 5))
	v.Dispatcher().AfterEach(input.KeyEvent(input.KeyL, input.ModNone), nil)

	assert.Equal(t, "Scale: pixels", v.scaleLabel.Text)
}
