package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WIDTH", "HEIGHT", "OPACITY", "FAINT_OPACITY", "DEBUG",
		"SHOW_LABELS", "DEFAULT_UNIT", "SCREENSHOT_DIR", "LOG_LEVEL",
	} {
		t.Setenv(envPrefix+key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Width != 200 || cfg.Height != 200 {
		t.Errorf("size = %dx%d, want 200x200", cfg.Width, cfg.Height)
	}
	if cfg.Opacity != 0.3 {
		t.Errorf("Opacity = %v, want 0.3", cfg.Opacity)
	}
	if cfg.FaintOpacity != 0.1 {
		t.Errorf("FaintOpacity = %v, want 0.1", cfg.FaintOpacity)
	}
	if cfg.ShowLabels {
		t.Error("ShowLabels should default to false")
	}
	if cfg.DefaultUnit != "user_defined_unit" {
		t.Errorf("DefaultUnit = %q", cfg.DefaultUnit)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty for missing file", cfg.Path)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "width: 640\nheight: 480\nopacity: 0.5\nshow_labels: true\ndefault_unit: px\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", cfg.Width, cfg.Height)
	}
	if cfg.Opacity != 0.5 || !cfg.ShowLabels || cfg.DefaultUnit != "px" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.FaintOpacity != 0.1 {
		t.Errorf("unset keys must keep defaults, FaintOpacity = %v", cfg.FaintOpacity)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("width: 640\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GORULER_WIDTH", "800")
	t.Setenv("GORULER_DEBUG", "yes")
	t.Setenv("GORULER_OPACITY", "0.75")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Width != 800 {
		t.Errorf("Width = %d, want 800", cfg.Width)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if cfg.WindowOpacity() != 1 {
		t.Errorf("debug window opacity = %v, want 1", cfg.WindowOpacity())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"GORULER_WIDTH":     "abc",
		"GORULER_OPACITY":   "1.5",
		"GORULER_HEIGHT":    "0",
		"GORULER_LOG_LEVEL": "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(""); err == nil {
				t.Errorf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := Default()
	in.Width = 321
	in.ShowLabels = true

	if err := Save(path, in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.Width != 321 || !out.ShowLabels {
		t.Errorf("round trip lost values: %+v", out)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel("DEBUG"); err != nil || lvl != slog.LevelDebug {
		t.Errorf("ParseLevel(DEBUG) = %v, %v", lvl, err)
	}
	if lvl, err := ParseLevel(""); err != nil || lvl != slog.LevelInfo {
		t.Errorf("ParseLevel(\"\") = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}
