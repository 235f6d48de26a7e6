package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"media-board/internal/logging"
	"media-board/internal/metrics"
	"media-board/internal/storage"
)

// debounceWindow coalesces bursts of filesystem events (one import can
// touch several files) into a single change notification.
const debounceWindow = 250 * time.Millisecond

// Event tells the grid UI that a store directory changed externally and
// a re-list is in order.
type Event struct {
	Directory string    `json:"directory"` // "images" or "metadata"
	At        time.Time `json:"at"`
}

// Watcher observes the active-side store directories and emits
// debounced change events.
type Watcher struct {
	fsw    *fsnotify.Watcher
	paths  *storage.Context
	events chan Event
	done   chan struct{}
}

// New creates a Watcher over the active images and metadata
// directories. Call Start to begin emitting events.
func New(paths *storage.Context) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	for _, dir := range []string{paths.ImagesDir, paths.MetadataDir} {
		if err := fsw.Add(dir); err != nil {
			if cerr := fsw.Close(); cerr != nil {
				logging.Warn("failed to close watcher: %v", cerr)
			}
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return &Watcher{
		fsw:    fsw,
		paths:  paths,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}, nil
}

// Events returns the channel of debounced change events. Events are
// dropped rather than blocking when no one is listening.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start launches the watch loop.
func (w *Watcher) Start() {
	go w.loop()
	logging.Debug("Watcher started on %s and %s", w.paths.ImagesDir, w.paths.MetadataDir)
}

// Stop shuts the watcher down and closes the event channel.
func (w *Watcher) Stop() {
	close(w.done)
	if err := w.fsw.Close(); err != nil {
		logging.Warn("failed to close filesystem watcher: %v", err)
	}
}

func (w *Watcher) loop() {
	defer close(w.events)

	var timer *time.Timer
	var timerC <-chan time.Time
	dirty := map[string]bool{}

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			dir := w.classify(ev.Name)
			if dir == "" {
				continue
			}
			metrics.WatcherEventsTotal.WithLabelValues(dir).Inc()
			dirty[dir] = true
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case <-timerC:
			now := time.Now()
			for dir := range dirty {
				select {
				case w.events <- Event{Directory: dir, At: now}:
				default:
					logging.Debug("Dropping watcher event for %s: no listener", dir)
				}
				delete(dirty, dir)
			}
			timer = nil
			timerC = nil

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn("Watcher error: %v", err)
		}
	}
}

// classify maps an event path to a directory label, ignoring dotfiles
// such as the startup write probe.
func (w *Watcher) classify(name string) string {
	if strings.HasPrefix(filepath.Base(name), ".") {
		return ""
	}
	switch filepath.Dir(name) {
	case w.paths.ImagesDir:
		return "images"
	case w.paths.MetadataDir:
		return "metadata"
	default:
		return ""
	}
}
