// Package watch hot-reloads the prelude file during a REPL session: when
// predefineds.mini changes on disk, the REPL's prelude scope is rebuilt
// from the new contents without restarting the process.
package watch

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a single file (the prelude) and calls its reload callback whenever it
// changes on disk, debounced so a burst of writes triggers one reload.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	reload    func(path string) error
	out       io.Writer

	mu         sync.Mutex
	lastChange time.Time
}

// New builds a Watcher for path. reload is called (not concurrently) each
// time path's contents change.
func New(path string, reload func(path string) error, out io.Writer) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fsWatcher: fsWatcher, path: path, reload: reload, out: out}, nil
}

// Start begins watching in the background until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fsWatcher.Add(w.path); err != nil {
		return err
	}
	go w.loop(ctx)
	return nil
}

const debounce = 100 * time.Millisecond

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			w.mu.Lock()
			if time.Since(w.lastChange) < debounce {
				w.mu.Unlock()
				continue
			}
			w.lastChange = time.Now()
			w.mu.Unlock()

			fmt.Fprintf(w.out, "[watch] prelude changed: %s\n", w.path)
			if err := w.reload(w.path); err != nil {
				fmt.Fprintf(w.out, "[watch] reload failed: %v\n", err)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(w.out, "[watch] error: %v\n", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
