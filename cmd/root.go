package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/goruler/internal/config"
	"github.com/philipparndt/goruler/internal/overlay"
	"github.com/philipparndt/goruler/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	debugMode  bool
	showLabels bool
	unitLabel  string
	shotDir    string
	winWidth   int
	winHeight  int
	winOpacity float64
)

var rootCmd = &cobra.Command{
	Use:   "goruler",
	Short: "On-screen pixel ruler",
	Long: `goruler opens a translucent window that lies on top of other windows.
Drag inside it to measure distances in pixels, or in any unit after
calibrating a scale with F5. Press F1 inside the window for all keys.`,
	Version:      version.GetFullVersion(),
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runOverlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultPath(), "config file (YAML)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&debugMode, "debug", false, "keep the window opaque")
	flags.BoolVar(&showLabels, "labels", false, "display distances on the canvas")
	flags.StringVar(&unitLabel, "unit", "", "unit label used when calibration input has no unit")
	flags.StringVar(&shotDir, "screenshot-dir", "", "directory for F8 screenshots")

	rootCmd.Flags().IntVar(&winWidth, "width", 0, "initial window width")
	rootCmd.Flags().IntVar(&winHeight, "height", 0, "initial window height")
	rootCmd.Flags().Float64Var(&winOpacity, "opacity", 0, "window opacity in (0, 1]")
}

// loadConfig layers flags over the config file and environment
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if changed("debug") {
		cfg.Debug = debugMode
	}
	if changed("labels") {
		cfg.ShowLabels = showLabels
	}
	if changed("unit") {
		cfg.DefaultUnit = unitLabel
	}
	if changed("screenshot-dir") {
		cfg.ScreenshotDir = shotDir
	}
	if changed("width") {
		cfg.Width = winWidth
	}
	if changed("height") {
		cfg.Height = winHeight
	}
	if changed("opacity") {
		cfg.Opacity = winOpacity
	}
}

// setupLogging installs a text logger on stderr as the default logger
func setupLogging(cfg config.Config) *slog.Logger {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runOverlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogging(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	ov := overlay.New(cfg, overlay.Options{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Logger: logger,
	})

	if cfg.Path != "" {
		stop, err := config.Watch(cfg.Path, func(c config.Config) {
			applyFlags(cmd, &c)
			ov.ApplyConfig(c)
		})
		if err != nil {
			logger.Warn("config hot reload disabled", "path", cfg.Path, "error", err)
		} else {
			defer stop()
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), "Press F1 inside the window for help.\n")
	return ov.Run(ctx)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
