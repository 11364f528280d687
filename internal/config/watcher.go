package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher hot reloads configuration when the overlay file changes. It only
// runs in development; production deployments restart to pick up changes.
type Watcher struct {
	config    *Config
	callbacks []func(*Config)
	mu        sync.RWMutex
	logger    *zap.Logger
	watcher   *fsnotify.Watcher
	stopCh    chan struct{}
}

// NewWatcher creates a watcher over the given initial configuration.
func NewWatcher(initial *Config, logger *zap.Logger) (*Watcher, error) {
	w := &Watcher{
		config: initial,
		logger: logger,
		stopCh: make(chan struct{}),
	}

	path := os.Getenv("CONFIG_FILE")
	if initial.Environment != Development || path == "" {
		logger.Info("configuration hot reloading disabled",
			zap.String("environment", string(initial.Environment)),
		)
		return w, nil
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	w.watcher = fsWatcher

	// Watch the containing directory so editor save-via-rename still fires.
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch config file: %w", err)
	}

	go w.watchLoop(path)

	logger.Info("configuration hot reloading enabled", zap.String("file", path))
	return w, nil
}

func (w *Watcher) watchLoop(path string) {
	defer w.watcher.Close()

	var debounceTimer *time.Timer
	const debounceDelay = 500 * time.Millisecond

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", zap.Error(err))

		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	newConfig, err := Load()
	if err != nil {
		w.logger.Error("invalid configuration after reload, keeping previous", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.config = newConfig
	callbacks := make([]func(*Config), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	w.logger.Info("configuration reloaded", zap.Int("callbacks", len(callbacks)))

	for _, cb := range callbacks {
		go func(cb func(*Config)) {
			defer func() {
				if r := recover(); r != nil {
					w.logger.Error("config change callback panicked", zap.Any("panic", r))
				}
			}()
			cb(newConfig)
		}(cb)
	}
}

// OnChange registers a callback invoked after each successful reload.
func (w *Watcher) OnChange(callback func(*Config)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, callback)
	w.mu.Unlock()
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	if w.watcher != nil {
		close(w.stopCh)
		w.watcher.Close()
	}
}
