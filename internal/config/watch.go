package config

import (
	"log/slog"
	"time"

	"github.com/philipparndt/goruler/pkg/watcher"
)

const reloadDebounce = 200 * time.Millisecond

// Watch reloads the config at path whenever it changes and passes every valid
// result to apply. Invalid files are logged and skipped. The returned stop
// function ends watching.
func Watch(path string, apply func(Config)) (stop func() error, err error) {
	fw, err := watcher.NewFileWatcher(reloadDebounce)
	if err != nil {
		return nil, err
	}

	err = fw.Watch(path, func(string) {
		cfg, err := Load(path)
		if err != nil {
			slog.Warn("ignoring invalid config change", "path", path, "error", err)
			return
		}
		slog.Info("config reloaded", "path", path)
		apply(cfg)
	})
	if err != nil {
		fw.Close()
		return nil, err
	}

	fw.Start()
	return fw.Close, nil
}
