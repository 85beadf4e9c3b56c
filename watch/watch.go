// Package watch notifies about new or rewritten JSON docs in a directory.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/revelaction/svo/logger"
)

const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is called with the path of a changed doc file.
type ChangeFunc func(path string)

// DocWatcher watches a doc directory. Editors and parsers write a file in
// several steps, so events are debounced per file.
type DocWatcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	onChange ChangeFunc

	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewDocWatcher(dir string, onChange ChangeFunc) (*DocWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch doc directory %s", dir)
	}

	return &DocWatcher{
		dir:      dir,
		watcher:  watcher,
		onChange: onChange,
		debounce: DefaultDebounce,
		timers:   map[string]*time.Timer{},
	}, nil
}

// SetDebounce changes the quiet period before a file is reported.
func (w *DocWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is done or the watcher is closed.
func (w *DocWatcher) Run(ctx context.Context) error {
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return w.watcher.Close()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if !isDocFile(event.Name) {
				continue
			}

			logger.Logger.Debugw("doc watcher detected change", "path", event.Name, "op", event.Op.String())
			w.schedule(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Logger.Warnw("doc watcher error", "error", err)
		}
	}
}

func (w *DocWatcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}

	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		w.onChange(path)
	})
}

func (w *DocWatcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

// isDocFile skips hidden and temporary files.
func isDocFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return filepath.Ext(base) == ".json"
}
