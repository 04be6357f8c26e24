// Package overlay runs the translucent ruler window with raylib.
package overlay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goruler/internal/capture"
	"github.com/philipparndt/goruler/internal/config"
	"github.com/philipparndt/goruler/internal/input"
	"github.com/philipparndt/goruler/internal/measurement"
	"github.com/philipparndt/goruler/internal/prompt"
	"github.com/philipparndt/goruler/internal/scene"
	"github.com/philipparndt/goruler/pkg/geometry"
)

const windowTitle = "Resize window to relevant region. Toggle title bar: F11 / F12"

// Options are the process level collaborators of the overlay
type Options struct {
	In     io.Reader // calibration answers
	Out    io.Writer // reports and notices
	Logger *slog.Logger
}

// Overlay is the ruler window. All raylib calls happen on the goroutine that
// called Run; session calls happen on the dispatcher goroutine.
type Overlay struct {
	cfg        config.Config // startup settings, read by Run only
	scene      *scene.Scene
	session    *measurement.Session
	dispatcher *input.Dispatcher
	chrome     *windowChrome
	shots      *capture.Screenshotter
	out        io.Writer
	log        *slog.Logger

	// owned by the dispatcher goroutine
	opacity float32
	faint   float32

	mouse mouseState
}

// New wires a session, its input routing and the window collaborators
func New(cfg config.Config, opts Options) *Overlay {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	o := &Overlay{
		cfg:     cfg,
		scene:   scene.New(),
		chrome:  newWindowChrome(),
		out:     out,
		log:     logger,
		opacity: cfg.WindowOpacity(),
		faint:   float32(cfg.FaintOpacity),
	}

	o.session = measurement.NewSession(o.scene, prompt.NewTerminal(in, out), measurement.Options{
		ShowLabels:  cfg.ShowLabels,
		DefaultUnit: cfg.DefaultUnit,
		Out:         out,
		Logger:      logger,
	})

	capturer := capture.Detect()
	if capturer == nil {
		logger.Info("no screenshot tool found, F8 is disabled")
	} else {
		logger.Debug("screenshot tool found", "tool", capturer.Name())
	}
	o.shots = &capture.Screenshotter{
		Chrome:   o.chrome,
		Capturer: capturer,
		Dir:      cfg.ScreenshotDir,
		Opacity:  o.opacity,
		Faint:    o.faint,
		Out:      out,
		Log:      logger,
	}

	router := input.NewRouter(logger)
	input.Bind(router, o.session, input.Actions{
		Report:     func(r measurement.Report) { fmt.Fprintln(out, r.String()) },
		Help:       func() { fmt.Fprint(out, input.HelpText) },
		Screenshot: o.shots.Action,
		HideChrome: func() {
			o.chrome.SetDecorated(false)
			o.chrome.SetOpacity(o.faint)
		},
		ShowChrome: func() {
			o.chrome.SetDecorated(true)
			o.chrome.SetOpacity(o.opacity)
		},
	})
	o.dispatcher = input.NewDispatcher(router, logger)
	return o
}

// ApplyConfig takes over settings changed while the window is open. Only
// opacity and label mode are applied live.
func (o *Overlay) ApplyConfig(cfg config.Config) {
	o.dispatcher.Invoke(func() {
		o.opacity = cfg.WindowOpacity()
		o.faint = float32(cfg.FaintOpacity)
		o.shots.Opacity = o.opacity
		o.shots.Faint = o.faint
		o.session.SetShowLabels(cfg.ShowLabels)
		o.chrome.SetOpacity(o.opacity)
	})
}

// Run opens the window and blocks until it is closed or ctx is done
func (o *Overlay) Run(ctx context.Context) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowTransparent | rl.FlagWindowTopmost)
	rl.InitWindow(int32(o.cfg.Width), int32(o.cfg.Height), windowTitle)
	defer rl.CloseWindow()

	// Escape clears the canvas instead of closing the window
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)
	rl.SetWindowOpacity(o.cfg.WindowOpacity())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	o.chrome.attach(ctx)
	defer o.chrome.detach()

	errc := make(chan error, 1)
	go func() { errc <- o.dispatcher.Run(ctx) }()

	o.log.Info("ruler window open", "width", o.cfg.Width, "height", o.cfg.Height)

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		o.chrome.runPending()
		o.pollInput()

		rl.BeginDrawing()
		rl.ClearBackground(backgroundColor)
		items, _ := o.scene.Snapshot()
		drawItems(items)
		rl.EndDrawing()
	}

	cancel()
	if err := <-errc; err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func toPoint(v rl.Vector2) geometry.Point {
	return geometry.NewPoint(float64(v.X), float64(v.Y)).Round()
}
