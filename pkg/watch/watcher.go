// Package watch turns noisy filesystem notifications for a single file into
// coalesced reload signals. Editors save through temp-file renames and
// platforms duplicate events, so debouncing here is mandatory, not optional.
package watch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/mdview/internal/logging"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 250 * time.Millisecond

// ErrWatchUnavailable indicates the underlying subscription could not be
// established. The caller degrades to no-live-reload; the document already
// loaded stays visible and usable.
var ErrWatchUnavailable = errors.New("watch unavailable")

// SignalKind distinguishes the two signals a watcher emits.
type SignalKind uint8

const (
	// SignalReload means the watched file's content changed.
	SignalReload SignalKind = iota

	// SignalDeleted means the watched file no longer exists.
	SignalDeleted
)

// Signal is one coalesced notification for the watched path.
type Signal struct {
	Kind SignalKind
	Path string
}

// Watcher observes a single file path. Each raw filesystem event resets the
// debounce timer; on expiry exactly one signal is emitted and the watcher
// stays armed until stopped. Starting a new watch implicitly stops the
// previous one; only one path is watched at a time.
type Watcher struct {
	debounce time.Duration
	logger   *log.Logger
	signals  chan Signal

	mu    sync.Mutex
	fw    *fsnotify.Watcher
	path  string
	timer *time.Timer
	armed bool
}

// New creates a watcher in the inactive state. A zero debounce means
// DefaultDebounce.
func New(debounce time.Duration, logger *log.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Watcher{
		debounce: debounce,
		logger:   logger,
		signals:  make(chan Signal, 8),
	}
}

// Signals returns the channel coalesced signals are delivered on. The
// channel is owned by the watcher and survives Start/Stop cycles.
func (w *Watcher) Signals() <-chan Signal {
	return w.signals
}

// Armed reports whether a path is currently being watched.
func (w *Watcher) Armed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.armed
}

// Start arms the watcher on the given path, stopping any previous watch
// first. The subscription covers the containing directory filtered to the
// exact filename, since some platforms only deliver directory-level events
// and editors replace files by rename.
//
// Returns an error wrapping ErrWatchUnavailable when the subscription cannot
// be established.
func (w *Watcher) Start(path string) error {
	w.Stop()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %w", ErrWatchUnavailable, path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatchUnavailable, err)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("%w: %s: %w", ErrWatchUnavailable, filepath.Dir(abs), err)
	}

	w.mu.Lock()
	w.fw = fw
	w.path = abs
	w.armed = true
	w.mu.Unlock()

	go w.run(fw, abs)

	w.logger.Debug("watch armed",
		logging.FieldPath, abs, logging.FieldDebounce, w.debounce)
	return nil
}

// Stop disarms the watcher and discards any pending debounce timer. Safe to
// call from any state.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.fw != nil {
		_ = w.fw.Close()
		w.fw = nil
	}
	w.armed = false
	w.path = ""
}

// run consumes raw events until the fsnotify watcher is closed.
func (w *Watcher) run(fw *fsnotify.Watcher, path string) {
	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			w.handleEvent(event, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", logging.FieldError, err)
		}
	}
}

// handleEvent filters directory-level events to the watched filename and
// resets the debounce timer. The timer is reset, not accumulated, on
// repeated events within the window.
func (w *Watcher) handleEvent(event fsnotify.Event, path string) {
	if filepath.Clean(event.Name) != path {
		return
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.armed || w.path != path {
		// A Stop or a newer Start raced this event.
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.fire(path) })
}

// fire emits exactly one signal for the quiet window. Whether the window
// ends in reload or deleted is decided by what is on disk at expiry: a
// rename-style save removes and recreates the file inside one window and
// must count as a reload, not a delete.
func (w *Watcher) fire(path string) {
	w.mu.Lock()
	if !w.armed || w.path != path {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	sig := Signal{Kind: SignalReload, Path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		sig.Kind = SignalDeleted
	}

	select {
	case w.signals <- sig:
	default:
		w.logger.Warn("dropping watch signal, consumer not keeping up",
			logging.FieldPath, path)
	}
}
