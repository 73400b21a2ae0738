package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long the file must stay quiet before it is reloaded.
// Saving usually produces a truncate and one or more writes in quick succession.
const reloadDebounce = 100 * time.Millisecond

// Watch reloads the runner config at path every time the file is written or
// created (including being renamed into place), and passes the result to
// onChange. Parse and validation failures go to onError and the previous
// config stays in effect.
//
// The parent directory is watched rather than the file so editors that save
// by rename keep triggering reloads. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(RunnerConfig), onError func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: cannot create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: cannot watch %s: %w", filepath.Dir(abs), err)
	}

	reportErr := func(err error) {
		if onError != nil {
			onError(err)
		}
	}

	debounce := time.NewTimer(reloadDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				debounce.Reset(reloadDebounce)
			}

		case <-debounce.C:
			cfg, err := LoadRunner(abs)
			if err != nil {
				reportErr(err)
				continue
			}
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			reportErr(fmt.Errorf("config: watcher: %w", err))
		}
	}
}
