// Package session orchestrates the document lifecycle: it owns the active
// file path, holds the current parsed document, drives the load/reload state
// machine, and mediates between watcher signals and parser invocations.
//
// Concurrency model: at most one read+parse is logically in flight per
// session. A new request does not run concurrently with cancellation of the
// old one; it supersedes it through a sequence counter, and the superseded
// result is discarded when it eventually lands. Ready snapshots are observed
// in increasing sequence order even when the underlying I/O completes out of
// order.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/pkg/derive"
	"github.com/yaklabco/mdview/pkg/document"
	parser "github.com/yaklabco/mdview/pkg/parser/goldmark"
	"github.com/yaklabco/mdview/pkg/source"
	"github.com/yaklabco/mdview/pkg/watch"
)

// ErrFileDeleted is the error reported when the watched file vanished after
// having been loaded.
var ErrFileDeleted = errors.New("file no longer exists")

// Options configures a Session.
type Options struct {
	// Debounce is the watcher quiet window. Zero means watch.DefaultDebounce.
	Debounce time.Duration

	// Derive configures statistics derivation.
	Derive derive.Options

	// DiagramTags configures which fence tags parse as diagram blocks.
	DiagramTags []string

	// Logger receives session logging. Nil means the default logger.
	Logger *log.Logger
}

// Session is the stateful orchestrator for a single open document. One
// session owns one path and its watcher subscription exclusively; opening a
// new file performs teardown-then-setup as one logical operation.
type Session struct {
	logger     *log.Logger
	parser     *parser.Parser
	deriveOpts derive.Options
	watcher    *watch.Watcher
	events     chan Event

	mu    sync.Mutex
	state State
	path  string
	doc   *document.Document
	info  *source.FileInfo
	stale bool
	err   error

	// seq strictly increases on every load request. A completed load is
	// applied only if its tag still equals seq; otherwise it is a stale
	// result and silently discarded.
	seq uint64

	quit     chan struct{}
	quitOnce sync.Once
}

// New creates an idle session and starts its watcher signal loop.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	s := &Session{
		logger:     logger,
		parser:     parser.New(parser.Options{DiagramTags: opts.DiagramTags}),
		deriveOpts: opts.Derive,
		watcher:    watch.New(opts.Debounce, logger),
		events:     make(chan Event, 32),
		state:      StateIdle,
		quit:       make(chan struct{}),
	}

	go s.watchLoop()
	return s
}

// Events returns the lifecycle event stream. Events are delivered in causal
// order per path; consumers that fall behind lose the oldest notifications
// rather than blocking the session.
func (s *Session) Events() <-chan Event {
	return s.events
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Path returns the currently open path, or "" when idle.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Err returns the failure reason when the session is in the error state.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// CurrentDocument returns the installed document snapshot, or nil. After an
// external delete the last good document remains retrievable; Stale reports
// that condition.
func (s *Session) CurrentDocument() *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Stale reports whether the current document no longer reflects a file on
// disk.
func (s *Session) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

// Open opens a path, fire-and-forget. Valid from any state: it supersedes
// any in-flight load for the previous path, stops the previous watcher, and
// starts a fresh read+parse. Completion surfaces through the event stream.
func (s *Session) Open(path string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.path = path
	s.state = StateLoading
	s.doc = nil
	s.info = nil
	s.stale = false
	s.err = nil
	s.emit(Event{Kind: EventStarted, Path: path, Seq: seq})
	s.mu.Unlock()

	// Teardown before setup, so a late signal from the previous watcher
	// cannot interleave with the new load.
	s.watcher.Stop()

	s.logger.Debug("load started", logging.FieldPath, path, logging.FieldSequence, seq)

	go s.load(path, seq, false)
}

// Close returns the session to idle and releases the watcher. The session
// remains usable; a later Open starts a new lifecycle.
func (s *Session) Close() {
	s.mu.Lock()
	s.seq++
	s.path = ""
	s.state = StateIdle
	s.doc = nil
	s.info = nil
	s.stale = false
	s.err = nil
	s.mu.Unlock()

	s.watcher.Stop()
}

// Shutdown permanently stops the session's background loop. Call when the
// surrounding application discards the session.
func (s *Session) Shutdown() {
	s.Close()
	s.quitOnce.Do(func() { close(s.quit) })
}

// ScrollSourceToRendered maps a 0-based source line to the index of the
// enclosing or preceding block. Returns 0 when no document is installed.
func (s *Session) ScrollSourceToRendered(line int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return 0
	}
	return s.doc.LineMap.BlockForLine(line)
}

// ScrollRenderedToSource maps a block index to its 0-based source line.
// Returns 0 when no document is installed.
func (s *Session) ScrollRenderedToSource(blockIndex int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return 0
	}
	return s.doc.LineMap.LineForBlock(blockIndex)
}

// watchLoop dispatches coalesced watcher signals for the session's lifetime.
func (s *Session) watchLoop() {
	for {
		select {
		case <-s.quit:
			return
		case sig := <-s.watcher.Signals():
			switch sig.Kind {
			case watch.SignalReload:
				s.externalChange()
			case watch.SignalDeleted:
				s.externalDelete()
			}
		}
	}
}

// externalChange re-enters the pipeline after a coalesced reload signal.
// Valid only from Ready; the displayed document stays visible and
// interactive until the replacement snapshot is installed.
func (s *Session) externalChange() {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	path := s.path
	s.state = StateReloading
	s.emit(Event{Kind: EventReloading, Path: path, Seq: seq})
	s.mu.Unlock()

	s.logger.Debug("reload started", logging.FieldPath, path, logging.FieldSequence, seq)

	go s.load(path, seq, true)
}

// externalDelete marks the document stale after the watched file vanished.
// Valid from Ready or Reloading. The document is kept, not discarded; the
// renderer may keep showing it.
func (s *Session) externalDelete() {
	s.mu.Lock()
	if s.state != StateReady && s.state != StateReloading {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	path := s.path
	s.state = StateError
	s.stale = true
	s.err = ErrFileDeleted
	s.emit(Event{Kind: EventDeleted, Path: path, Seq: seq})
	s.mu.Unlock()

	s.watcher.Stop()

	s.logger.Warn("watched file deleted",
		logging.FieldPath, path, logging.FieldStale, true)
}

// load runs the read → parse → derive pipeline on a background goroutine
// and applies the result under the stale guard.
func (s *Session) load(path string, seq uint64, reload bool) {
	content, info, err := source.Read(context.Background(), path)
	if err != nil {
		s.finishError(path, seq, err, reload)
		return
	}

	doc := derive.Apply(s.parser.Parse(content), s.deriveOpts)
	s.finishLoad(path, seq, doc, info, reload)
}

// finishLoad installs a completed document if its sequence tag is still
// current, and discards it otherwise.
func (s *Session) finishLoad(path string, seq uint64, doc *document.Document, info *source.FileInfo, reload bool) {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.logger.Debug("discarding stale parse",
			logging.FieldPath, path, logging.FieldSequence, seq)
		return
	}

	s.doc = doc
	s.info = info
	s.state = StateReady
	s.stale = false
	s.err = nil

	var watchErr error
	if !reload {
		watchErr = s.watcher.Start(path)
	}

	// Emit before unlocking: a newer load cannot install and deliver its
	// Ready event inside this window, so snapshots reach the stream in
	// sequence order.
	s.emit(Event{Kind: EventReady, Path: path, Seq: seq, Doc: doc})
	s.mu.Unlock()

	if watchErr != nil {
		// Degrade to no-live-reload; the loaded document stays usable.
		s.logger.Warn("live reload unavailable",
			logging.FieldPath, path, logging.FieldError, watchErr)
	}
	s.logger.Info("document ready",
		logging.FieldPath, path,
		logging.FieldBlocks, len(doc.Blocks),
		logging.FieldWords, doc.WordCount,
		logging.FieldBytes, doc.SourceByteLength)
}

// finishError resolves a failed load. During the initial open the failure is
// the visible outcome; during a live reload the last good document stays
// displayed and the failure is only logged, since a transient disk hiccup
// must never blank a working view.
func (s *Session) finishError(path string, seq uint64, loadErr error, reload bool) {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return
	}

	if reload {
		s.state = StateReady
		s.mu.Unlock()
		s.logger.Warn("reload failed, keeping last document",
			logging.FieldPath, path, logging.FieldError, loadErr)
		return
	}

	s.state = StateError
	s.err = loadErr
	s.doc = nil
	s.info = nil
	s.emit(Event{Kind: EventError, Path: path, Seq: seq, Err: loadErr})
	s.mu.Unlock()

	s.logger.Error("load failed", logging.FieldPath, path, logging.FieldError, loadErr)
}

// emit delivers an event without ever blocking the state machine.
func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		s.logger.Warn("dropping lifecycle event, consumer not keeping up",
			logging.FieldPath, ev.Path, logging.FieldSignal, ev.Kind.String())
	}
}
