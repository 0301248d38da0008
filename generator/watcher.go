package generator

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/YoungY620/utgen/internal"
	"github.com/fsnotify/fsnotify"
)

// Watcher calls onChange when files in root whose base name matches one of
// patterns change. Changes are debounced; maxWait caps how long a steady
// stream of changes can postpone the callback. Only root itself is watched,
// not its subdirectories.
type Watcher struct {
	debounceMs, maxWaitMs int
	patterns              []string
	onChange              func([]string)
	watcher               *fsnotify.Watcher
	rootPath              string

	mu                sync.Mutex
	pending           map[string]struct{}
	debounce, maxWait *time.Timer
	sem               chan struct{} // capacity 1: one run at a time
}

func NewWatcher(root string, patterns []string, debounceMs, maxWaitMs int, onChange func([]string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		rootPath:   root,
		patterns:   patterns,
		debounceMs: debounceMs,
		maxWaitMs:  maxWaitMs,
		onChange:   onChange,
		watcher:    fsw,
		pending:    make(map[string]struct{}),
		sem:        make(chan struct{}, 1),
	}
	if err := fsw.Add(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Matches reports whether path's base name matches a trigger pattern.
func (w *Watcher) Matches(path string) bool {
	base := filepath.Base(path)
	for _, p := range w.patterns {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}

// Trigger queues path as changed, as if an event had been received.
func (w *Watcher) Trigger(path string) {
	w.add(path)
}

func (w *Watcher) Run() error {
	for {
		select {
		case e, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.Matches(e.Name) {
				continue
			}
			internal.LogDebug("Event: %s %s", e.Op, e.Name)
			if e.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.add(e.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				internal.LogError("Watcher error: %v", err)
			}
		}
	}
}

func (w *Watcher) add(file string) {
	// Changes seen while a run is in flight come from that run's own tool
	// calls and are dropped.
	if w.busy() {
		internal.LogDebug("Run in progress, ignoring change to %s", file)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	first := len(w.pending) == 0
	w.pending[file] = struct{}{}

	// Reset debounce timer
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(time.Duration(w.debounceMs)*time.Millisecond, w.Flush)

	// Start max wait timer on first change
	if first {
		w.maxWait = time.AfterFunc(time.Duration(w.maxWaitMs)*time.Millisecond, w.Flush)
	}
}

func (w *Watcher) busy() bool {
	return len(w.sem) > 0
}

func (w *Watcher) Flush() {
	// Non-blocking acquire: skip if a run is already in progress
	select {
	case w.sem <- struct{}{}:
	default:
		internal.LogDebug("Run in progress, skipping flush")
		return
	}
	defer func() { <-w.sem }()

	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
		w.debounce = nil
	}
	if w.maxWait != nil {
		w.maxWait.Stop()
		w.maxWait = nil
	}
	files := make([]string, 0, len(w.pending))
	for f := range w.pending {
		files = append(files, f)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(files) > 0 && w.onChange != nil {
		w.onChange(files)
	}
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	if w.maxWait != nil {
		w.maxWait.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
