// Package watcher refreshes the active folder playlist when media files are
// added to, removed from or renamed in the folder.
package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"folder-playlist/internal/logging"
	"folder-playlist/internal/mediatypes"
	"folder-playlist/internal/metrics"
)

// DefaultDebounce is how long the watcher waits after the last relevant
// event before refreshing.
const DefaultDebounce = 500 * time.Millisecond

// RefreshFunc rebuilds the playlist of the watched folder.
type RefreshFunc func(ctx context.Context) error

// Watcher follows a single folder. Bursts of events are collapsed into one
// refresh once the folder has been quiet for the debounce interval.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	refresh  RefreshFunc

	mu     sync.Mutex
	folder string
}

// New creates a watcher that is not yet following any folder.
func New(debounce time.Duration, refresh RefreshFunc) (*Watcher, error) {
	if refresh == nil {
		return nil, errors.New("watcher: nil refresh function")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		metrics.WatcherErrors.Inc()
		return nil, err
	}
	return &Watcher{fs: fw, debounce: debounce, refresh: refresh}, nil
}

// SetFolder switches the watch to folder. An empty folder stops watching.
// Its signature matches host.Options.OnFolderChange.
func (w *Watcher) SetFolder(folder string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if folder == w.folder {
		return
	}
	if w.folder != "" {
		if err := w.fs.Remove(w.folder); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
			logging.Warn("failed to stop watching %s: %v", w.folder, err)
			metrics.WatcherErrors.Inc()
		}
		w.folder = ""
		metrics.WatchedDirectories.Set(0)
	}
	if folder == "" {
		return
	}
	if err := w.fs.Add(folder); err != nil {
		logging.Warn("failed to watch %s: %v", folder, err)
		metrics.WatcherErrors.Inc()
		return
	}
	w.folder = folder
	metrics.WatchedDirectories.Set(1)
	logging.Debug("Watching %s", folder)
}

// Folder returns the folder being watched, or "".
func (w *Watcher) Folder() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.folder
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			metrics.WatcherEventsTotal.WithLabelValues(eventType(event.Op)).Inc()
			if !relevant(event) {
				continue
			}
			logging.Debug("Folder change: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Error("Watcher error: %v", err)
			metrics.WatcherErrors.Inc()

		case <-fire:
			fire = nil
			if err := w.refresh(ctx); err != nil {
				logging.Warn("Refresh after folder change failed: %v", err)
			}
		}
	}
}

// Close stops the underlying fsnotify watcher, which ends Run.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.folder = ""
	w.mu.Unlock()
	metrics.WatchedDirectories.Set(0)
	return w.fs.Close()
}

// relevant reports whether event can change the folder's media listing.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return mediatypes.IsMedia(name)
}

func eventType(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return "create"
	case op&fsnotify.Write != 0:
		return "write"
	case op&fsnotify.Remove != 0:
		return "remove"
	case op&fsnotify.Rename != 0:
		return "rename"
	case op&fsnotify.Chmod != 0:
		return "chmod"
	default:
		return "unknown"
	}
}
