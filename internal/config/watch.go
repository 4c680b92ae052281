package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultReloadDebounce coalesces the burst of events editors produce on save.
const DefaultReloadDebounce = 150 * time.Millisecond

// WatchOptions tunes Watch.
type WatchOptions struct {
	Debounce time.Duration
	Logger   *zap.Logger
}

// Watch calls fn with a freshly loaded and validated config whenever the
// file at path is written, created or renamed into place. It watches the
// parent directory so that atomic-rename saves are seen. Watch blocks until
// ctx is cancelled and returns nil in that case.
func Watch(ctx context.Context, path string, fn func(*Config, error), opts WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultReloadDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info("watching config", zap.String("path", abs))

	debounce := NewDebouncer(opts.Debounce)
	defer debounce.Cancel()
	pending := make(chan struct{}, 1)
	signal := func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("config event", zap.String("op", event.Op.String()))
			debounce.Debounce(signal)

		case <-pending:
			cfg, err := Load(abs)
			if err == nil {
				err = cfg.Validate()
			}
			if err != nil {
				logger.Warn("config reload failed", zap.Error(err))
				fn(nil, err)
				continue
			}
			logger.Info("config reloaded")
			fn(cfg, nil)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", zap.Error(err))
		}
	}
}
