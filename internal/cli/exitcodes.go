package cli

import "github.com/yaklabco/mdview/pkg/scan"

// Exit codes for mdview.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFileErrors indicates one or more files could not be processed.
	ExitFileErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a scan result.
func ExitCodeFromResult(result *scan.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitFileErrors
	}
	return ExitSuccess
}
