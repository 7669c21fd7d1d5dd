package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/robustcoffee/mondrian/internal/logger"
)

// reloadDelay debounces bursts of events from a single save.
const reloadDelay = 100 * time.Millisecond

// Watch calls onChange with every valid new version of the file at path
// until ctx is done. Versions that fail to parse are logged and skipped.
// onChange is never called concurrently.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	logger.Info("watching config", "path", target)

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || filepath.Clean(event.Name) != target {
				continue
			}
			reload = time.After(reloadDelay)
		case <-reload:
			reload = nil
			cfg, err := reloadFile(target)
			if err != nil {
				logger.Warn("config reload failed", "path", target, "error", err)
				continue
			}
			logger.Info("config reloaded", "path", target, "dialects", len(cfg.Dialects))
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

func reloadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
