package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must stay quiet before it is reloaded.
const DefaultDebounce = 250 * time.Millisecond

// Watch reloads path whenever it changes and hands the result to fn. Editors
// that save through a rename are handled by watching the parent directory.
// Watch returns once the watcher is registered; the returned channel is
// closed when ctx is cancelled and the watcher has shut down.
func Watch(ctx context.Context, path string, fn func(*Config, error)) (<-chan struct{}, error) {
	return watch(ctx, path, DefaultDebounce, fn)
}

func watch(ctx context.Context, path string, debounce time.Duration, fn func(*Config, error)) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer watcher.Close()

		ticker := time.NewTicker(debounce / 4)
		defer ticker.Stop()

		var pending time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				pending = time.Now()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fn(nil, fmt.Errorf("config watcher: %w", err))

			case now := <-ticker.C:
				if pending.IsZero() || now.Sub(pending) < debounce {
					continue
				}
				pending = time.Time{}
				cfg, err := Load(abs)
				if err == nil {
					err = cfg.Validate()
				}
				if err != nil {
					fn(nil, err)
					continue
				}
				fn(cfg, nil)
			}
		}
	}()
	return done, nil
}
