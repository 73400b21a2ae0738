package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("score:\n  label: A\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan RunnerConfig, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg RunnerConfig) { changes <- cfg }, nil)
	}()

	// The watcher registers asynchronously, so keep rewriting until it reports.
	// Writes are spaced wider than the debounce, otherwise it never fires.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(3 * reloadDebounce)
	defer ticker.Stop()

	for {
		select {
		case cfg := <-changes:
			if cfg.Score.Label != "B" {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() returned %v", err)
			}
			return
		case <-ticker.C:
			if err := os.WriteFile(path, []byte("score:\n  label: B\n"), 0o600); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatchReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("score:\n  interval_ms: 1000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 16)
	changes := make(chan RunnerConfig, 16)
	go Watch(ctx, path, func(cfg RunnerConfig) { changes <- cfg }, func(err error) { errs <- err })

	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(3 * reloadDebounce)
	defer ticker.Stop()

	for {
		select {
		case <-errs:
			return
		case cfg := <-changes:
			if cfg.Score.IntervalMS == 0 {
				t.Fatal("invalid config must not be delivered")
			}
		case <-ticker.C:
			if err := os.WriteFile(path, []byte("score:\n  interval_ms: 0\n"), 0o600); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no error observed")
		}
	}
}
