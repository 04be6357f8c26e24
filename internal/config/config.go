// Package config loads goruler settings from defaults, an optional YAML file
// and GORULER_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultWidth        = 200
	defaultHeight       = 200
	defaultOpacity      = 0.3
	defaultFaintOpacity = 0.1
	defaultUnit         = "user_defined_unit"
	defaultLogLevel     = "info"

	envPrefix = "GORULER_"
)

// Config holds runtime configuration values
type Config struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Opacity      float64 `yaml:"opacity"`
	FaintOpacity float64 `yaml:"faint_opacity"`
	Debug        bool    `yaml:"debug"`

	ShowLabels    bool   `yaml:"show_labels"`
	DefaultUnit   string `yaml:"default_unit"`
	ScreenshotDir string `yaml:"screenshot_dir"`
	LogLevel      string `yaml:"log_level"`

	// Path is the file the config was read from, empty when none
	Path string `yaml:"-"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Width:         defaultWidth,
		Height:        defaultHeight,
		Opacity:       defaultOpacity,
		FaintOpacity:  defaultFaintOpacity,
		DefaultUnit:   defaultUnit,
		ScreenshotDir: defaultScreenshotDir(),
		LogLevel:      defaultLogLevel,
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "goruler", "config.yaml")
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	desktop := filepath.Join(home, "Desktop")
	if info, err := os.Stat(desktop); err == nil && info.IsDir() {
		return desktop
	}
	return home
}

// Load reads path on top of the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	c.Path = path
	return nil
}

func (c *Config) applyEnv() error {
	var err error

	if c.Width, err = envInt("WIDTH", c.Width); err != nil {
		return err
	}
	if c.Height, err = envInt("HEIGHT", c.Height); err != nil {
		return err
	}
	if c.Opacity, err = envFloat("OPACITY", c.Opacity); err != nil {
		return err
	}
	if c.FaintOpacity, err = envFloat("FAINT_OPACITY", c.FaintOpacity); err != nil {
		return err
	}
	c.Debug = envBool("DEBUG", c.Debug)
	c.ShowLabels = envBool("SHOW_LABELS", c.ShowLabels)
	c.DefaultUnit = envString("DEFAULT_UNIT", c.DefaultUnit)
	c.ScreenshotDir = envString("SCREENSHOT_DIR", c.ScreenshotDir)
	c.LogLevel = envString("LOG_LEVEL", c.LogLevel)
	return nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Opacity <= 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity must be in (0, 1], got %v", c.Opacity)
	}
	if c.FaintOpacity <= 0 || c.FaintOpacity > 1 {
		return fmt.Errorf("faint_opacity must be in (0, 1], got %v", c.FaintOpacity)
	}
	if strings.TrimSpace(c.DefaultUnit) == "" {
		return errors.New("default_unit must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// WindowOpacity is the opacity the overlay uses in normal mode.
// Debug mode keeps the window opaque.
func (c Config) WindowOpacity() float32 {
	if c.Debug {
		return 1
	}
	return float32(c.Opacity)
}

// ParseLevel maps a log level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Save writes the configuration as YAML, creating parent directories
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(envPrefix + key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s%s must be an integer: %w", envPrefix, key, err)
	}
	return value, nil
}

// envFloat returns a float env override when present, otherwise a default.
func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(envPrefix + key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s%s must be a number: %w", envPrefix, key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(envPrefix + key))
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
