package session

// State is the lifecycle state governing what the reader sees.
type State uint8

const (
	// StateIdle means no file is open.
	StateIdle State = iota

	// StateLoading means a read+parse is in flight for a newly opened path.
	StateLoading

	// StateReady means a document is displayed and the watcher is armed.
	StateReady

	// StateReloading means a re-parse is in flight while the previous
	// document is still displayed.
	StateReloading

	// StateError means the session failed to produce a document, or the
	// watched file was deleted after having been loaded.
	StateError
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateReloading:
		return "reloading"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
