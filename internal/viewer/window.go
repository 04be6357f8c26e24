// Package viewer measures distances on image files in a fyne window.
package viewer

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/philipparndt/goruler/internal/capture"
	"github.com/philipparndt/goruler/internal/config"
	"github.com/philipparndt/goruler/internal/input"
	"github.com/philipparndt/goruler/internal/measurement"
	"github.com/philipparndt/goruler/internal/raster"
	"github.com/philipparndt/goruler/internal/scene"
)

const windowTitle = "goruler - image ruler"

// Options are the process level collaborators of the viewer
type Options struct {
	Out    io.Writer
	Logger *slog.Logger
}

// App is the image measuring window
type App struct {
	window     fyne.Window
	cfg        config.Config
	scene      *scene.Scene
	session    *measurement.Session
	dispatcher *input.Dispatcher
	canvas     *Canvas

	reportLabel *widget.Label
	scaleLabel  *widget.Label

	out io.Writer
	log *slog.Logger
}

// New creates the window on a and wires a session to it
func New(a fyne.App, cfg config.Config, opts Options) *App {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	v := &App{
		window:      a.NewWindow(windowTitle),
		cfg:         cfg,
		scene:       scene.New(),
		reportLabel: widget.NewLabel("Drag on the image to measure"),
		scaleLabel:  widget.NewLabel("Scale: pixels"),
		out:         out,
		log:         logger,
	}
	v.reportLabel.TextStyle = fyne.TextStyle{Monospace: true}

	prompt := &dialogPrompt{window: v.window, before: v.syncView}
	v.session = measurement.NewSession(v.scene, prompt, measurement.Options{
		ShowLabels:  cfg.ShowLabels,
		DefaultUnit: cfg.DefaultUnit,
		Out:         out,
		Logger:      logger,
	})

	router := input.NewRouter(logger)
	input.Bind(router, v.session, input.Actions{
		Report:     v.showReport,
		Help:       v.showHelp,
		Screenshot: v.screenshot,
		HideChrome: func() { fyne.Do(func() { v.window.SetFullScreen(true) }) },
		ShowChrome: func() { fyne.Do(func() { v.window.SetFullScreen(false) }) },
	})
	v.dispatcher = input.NewDispatcher(router, logger)

	var version uint64
	v.dispatcher.AfterEach = func(input.Event, error) {
		if now := v.scene.Version(); now != version {
			version = now
			v.syncView()
		}
	}

	v.canvas = NewCanvas(v.scene, func(ev input.Event) { v.dispatcher.Post(ev) })
	v.bindKeys()
	v.showWelcomeScreen()
	v.window.Resize(fyne.NewSize(float32(cfg.Width)*4, float32(cfg.Height)*3))
	return v
}

// Window returns the fyne window
func (v *App) Window() fyne.Window {
	return v.window
}

// Canvas returns the measuring canvas
func (v *App) Canvas() *Canvas {
	return v.canvas
}

// Dispatcher returns the event dispatcher feeding the session
func (v *App) Dispatcher() *input.Dispatcher {
	return v.dispatcher
}

// Run starts event dispatching and shows the window until it is closed
func (v *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := v.dispatcher.Run(ctx); err != nil && err != context.Canceled {
			v.log.Error("dispatcher stopped", "error", err)
		}
	}()
	v.window.ShowAndRun()
	return nil
}

// syncView pushes session state to the widgets. It must run on the
// dispatcher goroutine, the UI thread only receives the formatted text.
func (v *App) syncView() {
	text := scaleText(v.session)
	fyne.Do(func() {
		v.canvas.Refresh()
		v.scaleLabel.SetText(text)
	})
}

func scaleText(s *measurement.Session) string {
	sc, ok := s.Scale()
	if !ok {
		return "Scale: pixels"
	}
	return fmt.Sprintf("Scale: %.4f %s/pixel", sc.Factor, sc.Unit)
}

func (v *App) bindKeys() {
	c := v.window.Canvas()
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		v.dispatcher.Post(input.KeyEvent(input.NormalizeKey(string(ev.Name)), input.ModNone))
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		v.dispatcher.Post(input.KeyEvent(input.KeyZ, input.ModCtrl))
	})

	if dc, ok := c.(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if isShift(ev.Name) {
				v.canvas.SetShift(true)
			}
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if isShift(ev.Name) {
				v.canvas.SetShift(false)
			}
		})
	}
}

func isShift(name fyne.KeyName) bool {
	return name == desktop.KeyShiftLeft || name == desktop.KeyShiftRight
}

func (v *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to goruler")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open Image' to measure on a picture")

	openButton := widget.NewButton("Open Image", v.showFileDialog)

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)
	v.window.SetContent(content)
}

func (v *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		if err := v.loadFrom(reader); err != nil {
			dialog.ShowError(err, v.window)
		}
	}, v.window)
}

// Open loads the image at path and shows the measuring view
func (v *App) Open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return v.loadFrom(f)
}

func (v *App) loadFrom(r io.Reader) error {
	img, format, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	v.log.Info("image loaded", "format", format, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	v.canvas.SetImage(img)
	v.dispatcher.Invoke(v.session.Clear)
	v.setupMainUI()
	return nil
}

func (v *App) setupMainUI() {
	openButton := widget.NewButton("Open Image", v.showFileDialog)
	helpButton := widget.NewButton("Keys", func() { v.dispatcher.Post(input.KeyEvent(input.KeyF1, input.ModNone)) })
	labelsCheck := widget.NewCheck("Show distances", func(checked bool) {
		v.dispatcher.Invoke(func() { v.session.SetShowLabels(checked) })
	})
	labelsCheck.SetChecked(v.cfg.ShowLabels)

	status := container.NewHBox(
		openButton,
		helpButton,
		labelsCheck,
		widget.NewSeparator(),
		v.scaleLabel,
		layout.NewSpacer(),
		v.reportLabel,
	)

	content := container.NewBorder(
		nil,    // top
		status, // bottom
		nil,    // left
		nil,    // right
		container.NewScroll(v.canvas),
	)
	v.window.SetContent(content)
}

func (v *App) showReport(r measurement.Report) {
	fmt.Fprintln(v.out, r.String())
	text := r.String()
	fyne.Do(func() { v.reportLabel.SetText(text) })
}

func (v *App) showHelp() {
	fmt.Fprint(v.out, input.HelpText)
	fyne.Do(func() { dialog.ShowInformation("Keys", input.HelpText, v.window) })
}

// screenshot writes the image with the current lines to the screenshot dir
func (v *App) screenshot(context.Context) error {
	path, err := capture.NextPath(v.cfg.ScreenshotDir)
	if err != nil {
		return err
	}
	if err := raster.WritePNG(path, v.composite()); err != nil {
		return err
	}
	fmt.Fprintf(v.out, "Saved screenshot to %s\n", path)
	return nil
}

func (v *App) composite() image.Image {
	items, _ := v.scene.Snapshot()
	base := v.canvas.Image()
	if base == nil {
		return raster.Render(items, minCanvasSize, minCanvasSize, raster.DefaultStyle())
	}
	b := base.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), base, b.Min, draw.Src)
	raster.RenderOnto(img, items, raster.DefaultStyle())
	return img
}
