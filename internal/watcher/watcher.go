// file: internal/watcher/watcher.go
// version: 2.1.0
// guid: e503e019-8c53-4a47-9898-a15276eb3245

package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the default debounce period. Registry extracts are
// written in one go but editors and download tools produce bursts of events.
const DefaultDebounce = 5 * time.Second

// Callback is invoked after the debounce period with the extract path.
type Callback func(extractPath string)

// Watcher monitors a registry extract file and invokes a callback after a
// debounce period when it changes, so a running server re-imports fresh
// extracts without a restart.
type Watcher struct {
	fsWatcher   *fsnotify.Watcher
	extractPath string
	debounce    time.Duration
	callback    Callback
	stop        chan struct{}
	stopped     chan struct{}
	mu          sync.Mutex
	timer       *time.Timer
	running     bool
}

// New creates a Watcher. The callback is called with the extract path after
// events settle for the debounce duration. Pass 0 for debounce to use
// DefaultDebounce.
func New(callback Callback, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		debounce: debounce,
		callback: callback,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start begins watching the extract file. The containing directory is
// watched rather than the file itself so atomic replace-by-rename (the usual
// way extracts land) is still seen. Safe to call only once.
func (w *Watcher) Start(extractPath string) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsWatcher = fsw
	w.extractPath = filepath.Clean(extractPath)

	if err := fsw.Add(filepath.Dir(w.extractPath)); err != nil {
		fsw.Close()
		return err
	}

	go w.eventLoop()
	return nil
}

// Stop gracefully shuts down the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stop)
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}
	<-w.stopped

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
}

func (w *Watcher) eventLoop() {
	defer close(w.stopped)

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ERROR] watcher: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	relevant := event.Op&(fsnotify.Create|fsnotify.Rename|fsnotify.Write) != 0
	if !relevant {
		return
	}
	if filepath.Clean(event.Name) != w.extractPath {
		return
	}

	w.scheduleImport()
}

func (w *Watcher) scheduleImport() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}

	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		w.timer = nil
		w.mu.Unlock()

		log.Printf("[INFO] watcher: extract changed, triggering re-import of %s", w.extractPath)
		if w.callback != nil {
			w.callback(w.extractPath)
		}
	})
}
