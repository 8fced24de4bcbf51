package scan

import "github.com/yaklabco/mdview/pkg/document"

// FileOutcome holds the parsed document for one file, or the error that
// prevented processing it.
type FileOutcome struct {
	// Path is the absolute file path that was processed.
	Path string

	// Doc is the parsed and derived document. Nil when Error is set.
	Doc *document.Document

	// Error is set if the file could not be read.
	Error error
}

// Stats captures aggregate information about a scan.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully parsed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// Blocks is the total top-level block count across all files.
	Blocks int

	// Headings is the total heading count across all files.
	Headings int

	// Words is the total prose word count across all files.
	Words int

	// ReadingTimeMinutes is the summed per-file reading-time estimate.
	ReadingTimeMinutes int

	// Bytes is the total source byte length across all files.
	Bytes int
}

// Result is the overall scan result. Files are ordered deterministically
// by path regardless of worker completion order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Doc == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Blocks += len(outcome.Doc.TopLevel())
	r.Stats.Headings += len(outcome.Doc.TOC)
	r.Stats.Words += outcome.Doc.WordCount
	r.Stats.ReadingTimeMinutes += outcome.Doc.ReadingTimeMinutes
	r.Stats.Bytes += outcome.Doc.SourceByteLength
}
