// Package watcher monitors the scenes directory and reports changed
// collection files after a debounce quiet period.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// Watcher reports batches of changed scene-collection files.
type Watcher interface {
	// Start begins watching and invokes callback with the batch of
	// changed files after each debounce quiet period. It returns
	// immediately; watching continues until Stop or context
	// cancellation.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the watcher. Idempotent.
	Stop() error
}

// sceneWatcher implements Watcher over a single flat directory.
type sceneWatcher struct {
	watcher      *fsnotify.Watcher
	dir          string
	include      []glob.Glob
	debounceTime time.Duration

	callback func(files []string)
	ctx      context.Context
	cancel   context.CancelFunc

	accumulated   map[string]bool
	accumulatedMu sync.Mutex

	debounceTimer *time.Timer
	timerMu       sync.Mutex

	stopOnce sync.Once
	doneCh   chan struct{}
}

// New creates a watcher for the given directory. include patterns are
// matched against event file base names.
func New(dir string, include []string, debounce time.Duration) (Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	sw := &sceneWatcher{
		watcher:      fsWatcher,
		dir:          dir,
		debounceTime: debounce,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	for _, pattern := range include {
		g, err := glob.Compile(pattern)
		if err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		sw.include = append(sw.include, g)
	}

	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return sw, nil
}

func (sw *sceneWatcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}

	sw.callback = callback
	sw.ctx, sw.cancel = context.WithCancel(ctx)

	go sw.watch()
	return nil
}

func (sw *sceneWatcher) Stop() error {
	var err error
	sw.stopOnce.Do(func() {
		if sw.cancel != nil {
			sw.cancel()
			<-sw.doneCh
		} else {
			// Never started, close doneCh manually
			close(sw.doneCh)
		}
		err = sw.watcher.Close()
	})
	return err
}

// watch is the main event loop.
func (sw *sceneWatcher) watch() {
	defer close(sw.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-sw.ctx.Done():
			sw.stopDebounceTimer()
			return

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}

			if !sw.shouldProcessEvent(event) {
				continue
			}

			sw.accumulatedMu.Lock()
			sw.accumulated[event.Name] = true
			sw.accumulatedMu.Unlock()

			sw.resetDebounceTimer(fireCh)

		case <-fireCh:
			sw.fire()

		case _, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// shouldProcessEvent filters events down to writes and creations of
// files whose names match an include pattern. OBS rewrites collections
// with write+rename, so Rename events count too.
func (sw *sceneWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	for _, g := range sw.include {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// fire invokes the callback with the accumulated batch.
func (sw *sceneWatcher) fire() {
	sw.accumulatedMu.Lock()
	if len(sw.accumulated) == 0 {
		sw.accumulatedMu.Unlock()
		return
	}
	files := make([]string, 0, len(sw.accumulated))
	for file := range sw.accumulated {
		files = append(files, file)
	}
	sw.accumulated = make(map[string]bool)
	sw.accumulatedMu.Unlock()

	sw.callback(files)
}

// resetDebounceTimer restarts the quiet-period timer.
func (sw *sceneWatcher) resetDebounceTimer(fireCh chan struct{}) {
	sw.timerMu.Lock()
	defer sw.timerMu.Unlock()

	if sw.debounceTimer != nil {
		sw.debounceTimer.Stop()
	}

	sw.debounceTimer = time.AfterFunc(sw.debounceTime, func() {
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

func (sw *sceneWatcher) stopDebounceTimer() {
	sw.timerMu.Lock()
	defer sw.timerMu.Unlock()

	if sw.debounceTimer != nil {
		sw.debounceTimer.Stop()
		sw.debounceTimer = nil
	}
}
