// Package watcher reports changes to a single file.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the file must stay quiet before a change is
// reported
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a file for changes
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
	changes  chan string
}

// New creates a new file watcher
func New(path string, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		logger:   logger,
		changes:  make(chan string, 1),
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Changes delivers the watched path after each debounced change. Changes
// that arrive while one is still pending are merged.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Watch starts watching the file for changes.
// It blocks until the context is cancelled or an error occurs.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	// Watch the directory so replaced files (editor save) are still seen
	dir := filepath.Dir(w.path)
	filename := filepath.Base(w.path)

	if err := fw.Add(dir); err != nil {
		return err
	}

	w.logger.Info("watching file", zap.String("path", w.path))

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.emit)
			mu.Unlock()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-ctx.Done():
			stop()
			return ctx.Err()
		}
	}
}

func (w *Watcher) emit() {
	w.logger.Info("file changed", zap.String("path", w.path))
	select {
	case w.changes <- w.path:
	default:
		// a change is already pending
	}
}
