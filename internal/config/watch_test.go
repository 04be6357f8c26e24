package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloads(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("opacity: 0.3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan Config, 4)
	stop, err := Watch(path, func(c Config) { got <- c })
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("opacity: 0.6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-got:
		if cfg.Opacity != 0.6 {
			t.Errorf("Opacity = %v, want 0.6", cfg.Opacity)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("config was not reloaded")
	}
}
