package session

import "github.com/yaklabco/mdview/pkg/document"

// EventKind identifies a lifecycle event.
type EventKind uint8

const (
	// EventStarted fires when a load begins for a newly opened path.
	EventStarted EventKind = iota

	// EventReady fires when a document snapshot is installed. Ready events
	// are delivered in increasing sequence order; a stale snapshot is
	// never delivered after a newer one.
	EventReady

	// EventReloading fires when an external change triggers a re-parse
	// while the previous document stays visible.
	EventReloading

	// EventError fires when an initial load fails and there is nothing to
	// show.
	EventError

	// EventDeleted fires when the watched file vanished after having been
	// loaded. The last document remains retrievable, marked stale.
	EventDeleted
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventReady:
		return "ready"
	case EventReloading:
		return "reloading"
	case EventError:
		return "error"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event is one discrete lifecycle notification. The session never surfaces
// partial state; a Ready event carries a fully constructed, immutable
// document snapshot.
type Event struct {
	Kind EventKind

	// Path is the file the event concerns.
	Path string

	// Seq is the parse sequence number the event belongs to.
	Seq uint64

	// Doc is set for EventReady.
	Doc *document.Document

	// Err is set for EventError.
	Err error
}
