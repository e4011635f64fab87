// Package watch reports changes to a model snapshot file.
package watch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is a debounced modification of the watched file.
type Change struct {
	File    string // absolute path
	Removed bool   // the file no longer exists
}

// Watcher monitors one file for writes using fsnotify. The parent directory
// is watched so editors that replace the file through a rename are seen too.
type Watcher struct {
	File     string
	Debounce time.Duration
	Changes  <-chan Change // Read-only external channel
	Errors   <-chan error

	changes chan Change // Internal write channel
	errs    chan error
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a watcher for file. A zero debounce uses 100ms.
func New(file string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	errs := make(chan error, 4)
	return &Watcher{
		File:     abs,
		Debounce: debounce,
		Changes:  ch,
		Errors:   errs,
		changes:  ch,
		errs:     errs,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and its channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
	close(w.errs)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(tickInterval(w.Debounce))
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.File {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.Debounce {
				w.emit()
				pending = time.Time{}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal; drop it when nobody is listening.
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// minTick bounds the debounce poll interval from below.
const minTick = time.Millisecond

func tickInterval(debounce time.Duration) time.Duration {
	return max(debounce/2, minTick)
}

func (w *Watcher) emit() {
	_, err := os.Stat(w.File)
	w.changes <- Change{File: w.File, Removed: os.IsNotExist(err)}
}
