// Package backend watches the displayed directory and asks the UI to re-list
// it when its contents change.
package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andornaut/filectrl/internal/command"
	"github.com/andornaut/filectrl/internal/logging/events"
)

const relevantOps = fsnotify.Create | fsnotify.Remove | fsnotify.Rename | fsnotify.Write

// Watcher turns filesystem notifications for one directory into RefreshDir
// commands, at most one per interval.
type Watcher struct {
	sender   command.Sender
	interval time.Duration
	fs       *fsnotify.Watcher

	mu      sync.Mutex
	current string
}

// NewWatcher creates a watcher that is not yet watching anything.
func NewWatcher(sender command.Sender, interval time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{sender: sender, interval: interval, fs: fw}, nil
}

// Watch retargets the watcher to dir. It is safe to call from any goroutine.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if dir == w.current {
		return nil
	}
	if w.current != "" {
		// The old directory may already be gone.
		_ = w.fs.Remove(w.current)
		w.current = ""
	}
	if err := w.fs.Add(dir); err != nil {
		events.FS.WatchError(err)
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.current = dir
	events.FS.Watch(dir)
	return nil
}

// Current returns the watched directory, or "" when none.
func (w *Watcher) Current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Run forwards changes until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	throttle := newThrottle(w.interval)
	ticker := time.NewTicker(throttle.period())
	defer ticker.Stop()

	dirty := false
	flush := func() bool {
		if !dirty || !throttle.ready(time.Now()) {
			return true
		}
		dirty = false
		select {
		case w.sender <- command.RefreshDir{}:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if evt.Op&relevantOps == 0 {
				continue
			}
			dirty = true
			if !flush() {
				return nil
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			events.FS.WatchError(err)
		case <-ticker.C:
			if !flush() {
				return nil
			}
		}
	}
}
