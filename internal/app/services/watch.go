// Package services holds the background helpers of the select application.
package services

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ItemsWatchDebounce is the debounce window for watcher events.
const ItemsWatchDebounce = 300 * time.Millisecond

// ItemsWatchService watches an items file and signals when it changes.
// The parent directory is watched so editors that replace the file on save
// are still noticed.
type ItemsWatchService struct {
	Started    bool
	Waiting    bool
	Path       string
	Events     chan struct{}
	Done       chan struct{}
	Mu         sync.Mutex
	Watcher    *fsnotify.Watcher
	LastReload time.Time
	// Pending is set while a trailing reload is scheduled.
	Pending    bool
	logf       func(string, ...any)
}

// NewItemsWatchService creates a watcher for path.
func NewItemsWatchService(path string, logf func(string, ...any)) *ItemsWatchService {
	return &ItemsWatchService{
		Path: path,
		logf: logf,
	}
}

// Start initialises the watcher and starts the background goroutine.
func (w *ItemsWatchService) Start() (bool, error) {
	if w.Started || w.Path == "" {
		return false, nil
	}
	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return false, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return false, err
	}

	w.Started = true
	w.Path = abs
	w.Watcher = watcher
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})

	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *ItemsWatchService) Stop() {
	w.Mu.Lock()
	defer w.Mu.Unlock()
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel if waiting is not already active.
func (w *ItemsWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *ItemsWatchService) ResetWaiting() {
	w.Waiting = false
}

// ShouldReload checks debounce timing for watcher events.
func (w *ItemsWatchService) ShouldReload(now time.Time) bool {
	if !w.LastReload.IsZero() && now.Sub(w.LastReload) < ItemsWatchDebounce {
		return false
	}
	w.LastReload = now
	return true
}

// DeferReload records an event that arrived inside the debounce window and
// returns the time left in that window. It reports false when a trailing
// reload is already scheduled.
func (w *ItemsWatchService) DeferReload(now time.Time) (time.Duration, bool) {
	if w.Pending {
		return 0, false
	}
	w.Pending = true
	return ItemsWatchDebounce - now.Sub(w.LastReload), true
}

// TrailingReload clears the pending flag and records a reload at now.
func (w *ItemsWatchService) TrailingReload(now time.Time) {
	w.Pending = false
	w.LastReload = now
}

// Signal notifies listeners of watcher activity.
func (w *ItemsWatchService) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

// Matches reports whether an event path refers to the watched file.
func (w *ItemsWatchService) Matches(path string) bool {
	return path != "" && filepath.Clean(path) == w.Path
}

func (w *ItemsWatchService) run() {
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.Matches(event.Name) {
				continue
			}
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("items watcher error: %v", err)
		}
	}
}

func (w *ItemsWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
