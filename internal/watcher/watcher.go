// Package watcher reports edits that other programs make to the workspace
// file while the editor has it open.
package watcher

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/log"
)

// DefaultDebounce is how long the file must stay quiet before a change is
// reported.
const DefaultDebounce = 300 * time.Millisecond

// Change is reported once a burst of activity on the file settles with
// content that differs from what was last seen.
type Change struct {
	Path    string
	Removed bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// snapshot identifies the file content at one point in time.
type snapshot struct {
	sum    [sha256.Size]byte
	exists bool
}

func take(path string) snapshot {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the workspace file
	if err != nil {
		return snapshot{}
	}
	return snapshot{sum: sha256.Sum256(data), exists: true}
}

// Watcher follows one file. It watches the parent directory so atomic
// replacement, deletion and re-creation are all seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	changes  chan Change
	done     chan struct{}
	once     sync.Once

	mu   sync.Mutex
	seen snapshot
}

// Watch starts following path. The current content counts as seen.
func Watch(path string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		changes:  make(chan Change, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	w.seen = take(w.path)
	log.Debug(log.CatWatcher, "watching workspace file", "path", w.path, "debounce", w.debounce)

	go w.run()
	return w, nil
}

// Changes delivers settled changes. Only the latest unread change is kept.
// The channel is closed when the watcher stops.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Sync marks the current file content as seen, so a write the editor just
// made is not reported back to it.
func (w *Watcher) Sync() {
	now := take(w.path)
	w.mu.Lock()
	w.seen = now
	w.mu.Unlock()
}

// Close stops the watcher. Calling it again is a no-op.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.changes)

	var timer *time.Timer
	var settled <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			settled = timer.C

		case <-settled:
			settled = nil
			w.report()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.path)

		case <-w.done:
			return
		}
	}
}

// report compares the file with the last seen content and publishes a
// Change when they differ. Only run calls it, so the send never blocks.
func (w *Watcher) report() {
	now := take(w.path)

	w.mu.Lock()
	same := now == w.seen
	w.seen = now
	w.mu.Unlock()

	if same {
		log.Debug(log.CatWatcher, "workspace file touched without changes", "path", w.path)
		return
	}

	select {
	case <-w.changes:
	default:
	}
	w.changes <- Change{Path: w.path, Removed: !now.exists}
	log.Debug(log.CatWatcher, "workspace file changed", "path", w.path, "removed", !now.exists)
}
