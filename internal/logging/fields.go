// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Session fields.
	FieldState    = "state"
	FieldSequence = "seq"
	FieldStale    = "stale"

	// Watch fields.
	FieldDebounce = "debounce"
	FieldSignal   = "signal"

	// Document fields.
	FieldBytes    = "bytes"
	FieldBlocks   = "blocks"
	FieldHeadings = "headings"
	FieldWords    = "words"
	FieldMinutes  = "minutes"

	// Scan fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"
	FieldJobs            = "jobs"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
