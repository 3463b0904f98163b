package dataset

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the export file for changes and invokes a callback when
// it is rewritten. Editors and sync tools replace files with rename+create,
// so the watch covers the containing directory and filters by name.
type Watcher struct {
	path     string
	callback func()
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher creates a watcher for the export file at path.
func NewWatcher(path string, callback func()) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		callback: callback,
		done:     make(chan struct{}),
	}
}

// Start begins watching. Call Stop to clean up.
func (w *Watcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return err
	}
	w.watcher = fw

	go w.loop()
	log.Printf("dataset: watching %s for changes", w.path)
	return nil
}

// Stop shuts down the watcher and waits for its loop to exit. Calling Stop
// on a watcher that never started is a no-op.
func (w *Watcher) Stop() {
	if w.watcher == nil {
		return
	}
	_ = w.watcher.Close()
	<-w.done
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 && w.callback != nil {
				w.callback()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("dataset: watcher error: %v", err)
		}
	}
}
