// Package watch re-runs a callback when a file changes.
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a temp file and renaming it over the original are
// seen as a change. Bursts of events are coalesced: the callback runs once
// the file has been quiet for the debounce period.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	gerrors "github.com/matzehuels/csrgraph/pkg/errors"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches a single file.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
}

// New starts watching path. Events are delivered by [Watcher.Run].
func New(path string, debounce time.Duration) (*Watcher, error) {
	if err := gerrors.ValidateFilePath(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeInvalidPath, err, "resolve %s", path)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeIO, err, "failed to create fsnotify watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, gerrors.Wrap(gerrors.ErrCodeIO, err, "watch %s", filepath.Dir(abs))
	}
	return &Watcher{watcher: w, path: abs, debounce: debounce}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run calls fn after every settled change until ctx is done. fn runs on the
// calling goroutine, so changes during fn are coalesced into the next call.
// Run closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context)) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			fn(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return gerrors.Wrap(gerrors.ErrCodeIO, err, "watch %s", w.path)
		}
	}
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Watch runs fn whenever path changes and settles, until ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, fn func(context.Context)) error {
	w, err := New(path, debounce)
	if err != nil {
		return err
	}
	return w.Run(ctx, fn)
}
