// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// DefaultDebounce is how long the file must be quiet before it is reloaded.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a config file when it changes on disk. Editors often save
// with several writes or a rename, so events are debounced and reloads are
// rate limited.
type Watcher struct {
	path     string
	onReload func(*Config)
	onError  func(error)

	watcher  *fsnotify.Watcher
	limiter  *rate.Limiter
	debounce time.Duration

	mu         sync.Mutex
	pending    bool
	lastChange time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewWatcher creates a watcher for path. onReload receives each config that
// loads and validates; onError (optional) receives the ones that do not.
func NewWatcher(path string, debounce time.Duration, onReload func(*Config), onError func(error)) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("config path cannot be empty")
	}
	if onReload == nil {
		return nil, errors.New("reload callback cannot be nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		path:     abs,
		onReload: onReload,
		onError:  onError,
		watcher:  fw,
		// At most two reloads per second, no bursts.
		limiter:  rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Watch starts watching. The parent directory is watched so that files
// replaced by rename are still seen.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.started = true
	go w.run()
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	if w.started {
		<-w.done
	}
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.mu.Lock()
				w.pending = true
				w.lastChange = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("CONFIG_WATCH_ERROR | path=%s error=%v", w.path, err)

		case <-ticker.C:
			if w.due() {
				w.reload()
			}
		}
	}
}

// due reports whether a pending change has settled and the limiter allows
// a reload now.
func (w *Watcher) due() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.pending || time.Since(w.lastChange) < w.debounce {
		return false
	}
	if !w.limiter.Allow() {
		return false
	}
	w.pending = false
	return true
}

func (w *Watcher) reload() {
	cfg, err := LoadFromPath(w.path)
	if err != nil {
		log.Printf("CONFIG_RELOAD_FAILED | path=%s error=%v", w.path, err)
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	log.Printf("CONFIG_RELOAD | path=%s theme=%s", w.path, cfg.UI.Theme)
	w.onReload(cfg)
}
