package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdview/pkg/document"
	"github.com/yaklabco/mdview/pkg/source"
)

const (
	testDebounce = 50 * time.Millisecond
	waitTimeout  = 3 * time.Second
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s := New(Options{Debounce: testDebounce})
	t.Cleanup(s.Shutdown)
	return s
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// waitEvent consumes events until one of the wanted kind arrives.
func waitEvent(t *testing.T, s *Session, kind EventKind) Event {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case ev := <-s.Events():
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v", kind)
			return Event{}
		}
	}
}

func TestSessionOpenAndReady(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "# Title\n\nhello world\n")
	s := newSession(t)

	s.Open(path)

	started := waitEvent(t, s, EventStarted)
	assert.Equal(t, path, started.Path)

	ready := waitEvent(t, s, EventReady)
	require.NotNil(t, ready.Doc)
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, path, s.Path())
	assert.False(t, s.Stale())

	doc := s.CurrentDocument()
	require.NotNil(t, doc)
	// Heading text counts as prose, so "Title" joins the two body words.
	assert.Equal(t, 3, doc.WordCount)
	assert.Len(t, doc.TOC, 1)
}

func TestSessionOpenMissingFile(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	s.Open(filepath.Join(t.TempDir(), "absent.md"))

	errEv := waitEvent(t, s, EventError)
	assert.ErrorIs(t, errEv.Err, source.ErrNotFound)
	assert.Equal(t, StateError, s.State())
	assert.Nil(t, s.CurrentDocument())
	assert.ErrorIs(t, s.Err(), source.ErrNotFound)
}

func TestSessionReloadOnExternalChange(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "first version\n")
	s := newSession(t)
	s.Open(path)
	waitEvent(t, s, EventReady)

	require.NoError(t, os.WriteFile(path, []byte("second version entirely\n"), 0644))

	waitEvent(t, s, EventReloading)
	ready := waitEvent(t, s, EventReady)
	require.NotNil(t, ready.Doc)
	assert.Equal(t, 3, ready.Doc.WordCount)
	assert.Equal(t, StateReady, s.State())
}

func TestSessionBurstOfWritesYieldsSingleReload(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "v0\n")
	s := newSession(t)
	s.Open(path)
	waitEvent(t, s, EventReady)

	// Ten writes inside one debounce window coalesce into one reload.
	for i := range 10 {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i), '\n'}, 0644))
		time.Sleep(2 * time.Millisecond)
	}

	waitEvent(t, s, EventReloading)
	waitEvent(t, s, EventReady)

	// No further reload cycle follows once the writes have settled.
	select {
	case ev := <-s.Events():
		t.Fatalf("unexpected event %v after settled reload", ev.Kind)
	case <-time.After(4 * testDebounce):
	}
}

func TestSessionExternalDelete(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "# Keep me\n\nbody\n")
	s := newSession(t)
	s.Open(path)
	waitEvent(t, s, EventReady)

	require.NoError(t, os.Remove(path))

	deleted := waitEvent(t, s, EventDeleted)
	assert.Equal(t, path, deleted.Path)
	assert.Equal(t, StateError, s.State())
	assert.True(t, s.Stale())
	assert.ErrorIs(t, s.Err(), ErrFileDeleted)

	// The last good document stays retrievable.
	doc := s.CurrentDocument()
	require.NotNil(t, doc)
	assert.Len(t, doc.TOC, 1)
}

func TestSessionOpenSupersedesOpen(t *testing.T) {
	t.Parallel()

	first := writeDoc(t, "first document\n")
	second := filepath.Join(t.TempDir(), "second.md")
	require.NoError(t, os.WriteFile(second, []byte("second document wins here\n"), 0644))

	s := newSession(t)
	s.Open(first)
	s.Open(second)

	// The first open may or may not reach Ready before it is superseded;
	// the second one always lands last.
	deadline := time.After(waitTimeout)
	var ready Event
	for ready.Path != second {
		select {
		case ev := <-s.Events():
			if ev.Kind == EventReady {
				ready = ev
			}
		case <-deadline:
			t.Fatal("timed out waiting for second document")
		}
	}
	assert.Equal(t, second, s.Path())

	doc := s.CurrentDocument()
	require.NotNil(t, doc)
	assert.Equal(t, 4, doc.WordCount)
}

func TestSessionStaleResultDiscarded(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "old content\n")
	s := newSession(t)

	// Simulate a load completing after a newer request bumped the
	// sequence: the install is skipped and state is untouched.
	s.mu.Lock()
	s.seq = 7
	s.path = path
	s.state = StateLoading
	s.mu.Unlock()

	staleDoc := &document.Document{WordCount: 99}
	s.finishLoad(path, 3, staleDoc, nil, false)

	assert.Equal(t, StateLoading, s.State())
	assert.Nil(t, s.CurrentDocument())

	// A matching tag installs.
	currentDoc := &document.Document{WordCount: 2}
	s.finishLoad(path, 7, currentDoc, nil, true)

	assert.Equal(t, StateReady, s.State())
	assert.Same(t, currentDoc, s.CurrentDocument())
}

func TestSessionStaleErrorDiscarded(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "content\n")
	s := newSession(t)

	s.mu.Lock()
	s.seq = 5
	s.path = path
	s.state = StateLoading
	s.mu.Unlock()

	s.finishError(path, 2, os.ErrPermission, false)

	// The stale failure does not move the session to error.
	assert.Equal(t, StateLoading, s.State())
	assert.NoError(t, s.Err())
}

func TestSessionReloadFailureKeepsDocument(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "good content here\n")
	s := newSession(t)
	s.Open(path)
	waitEvent(t, s, EventReady)
	installed := s.CurrentDocument()

	s.mu.Lock()
	seq := s.seq + 1
	s.seq = seq
	s.state = StateReloading
	s.mu.Unlock()

	s.finishError(path, seq, os.ErrPermission, true)

	assert.Equal(t, StateReady, s.State())
	assert.Same(t, installed, s.CurrentDocument())
}

func TestSessionClose(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "content\n")
	s := newSession(t)
	s.Open(path)
	waitEvent(t, s, EventReady)

	s.Close()

	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.Path())
	assert.Nil(t, s.CurrentDocument())

	// Reopening after close starts a fresh lifecycle.
	s.Open(path)
	waitEvent(t, s, EventReady)
	assert.Equal(t, StateReady, s.State())
}

func TestSessionScrollMapping(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, "# Title\n\npara one\n\npara two\n")
	s := newSession(t)

	// No document installed yet.
	assert.Zero(t, s.ScrollSourceToRendered(4))
	assert.Zero(t, s.ScrollRenderedToSource(2))

	s.Open(path)
	waitEvent(t, s, EventReady)

	// Heading at line 0, paragraphs at lines 2 and 4.
	assert.Equal(t, 0, s.ScrollSourceToRendered(0))
	assert.Equal(t, 1, s.ScrollSourceToRendered(2))
	assert.Equal(t, 1, s.ScrollSourceToRendered(3))
	assert.Equal(t, 2, s.ScrollSourceToRendered(4))

	assert.Equal(t, 2, s.ScrollRenderedToSource(1))
	assert.Equal(t, 4, s.ScrollRenderedToSource(2))
}

func TestStateAndEventStrings(t *testing.T) {
	t.Parallel()

	states := map[State]string{
		StateIdle:      "idle",
		StateLoading:   "loading",
		StateReady:     "ready",
		StateReloading: "reloading",
		StateError:     "error",
		State(99):      "unknown",
	}
	for state, want := range states {
		assert.Equal(t, want, state.String())
	}

	kinds := map[EventKind]string{
		EventStarted:   "started",
		EventReady:     "ready",
		EventReloading: "reloading",
		EventError:     "error",
		EventDeleted:   "deleted",
		EventKind(99):  "unknown",
	}
	for kind, want := range kinds {
		assert.Equal(t, want, kind.String())
	}
}

func TestSessionReadyEventsInSequenceOrder(t *testing.T) {
	t.Parallel()

	first := writeDoc(t, "alpha doc\n")
	second := writeDoc(t, "beta doc\n")
	s := newSession(t)

	// Drain concurrently so racing loads cannot back up the channel.
	collected := make(chan []uint64, 1)
	go func() {
		var seqs []uint64
		quiet := time.NewTimer(waitTimeout)
		defer quiet.Stop()
		for {
			select {
			case ev := <-s.Events():
				if ev.Kind == EventReady {
					seqs = append(seqs, ev.Seq)
				}
				quiet.Reset(time.Second)
			case <-quiet.C:
				collected <- seqs
				return
			}
		}
	}()

	// Rapid alternating opens race their parse goroutines against each
	// other; superseded results must never surface after newer ones.
	for i := range 10 {
		if i%2 == 0 {
			s.Open(first)
		} else {
			s.Open(second)
		}
	}

	seqs := <-collected
	require.NotEmpty(t, seqs)
	for i := 1; i < len(seqs); i++ {
		assert.Greater(t, seqs[i], seqs[i-1],
			"ready events must carry strictly increasing sequence numbers")
	}
	assert.Equal(t, second, s.Path())
}
