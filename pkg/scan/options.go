// Package scan provides multi-file document statistics orchestration.
// It discovers Markdown files under a set of paths, parses each one
// concurrently, and aggregates the derived statistics into a single
// deterministic result.
package scan

import "github.com/yaklabco/mdview/pkg/source"

// Options controls discovery and concurrency for a scan.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to source.DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// WordsPerMinute is the reading speed used for per-file reading-time
	// estimates. 0 means the derive package default.
	WordsPerMinute int

	// DiagramTags lists fence info strings treated as diagrams.
	// Empty means the parser default.
	DiagramTags []string
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return source.DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
