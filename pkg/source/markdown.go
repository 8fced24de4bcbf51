package source

import (
	"path/filepath"
	"strings"
)

// DefaultExtensions returns the file extensions treated as Markdown.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".mdown", ".mkd"}
}

// IsMarkdown reports whether the path has a Markdown extension from the
// given set. An empty set means DefaultExtensions().
func IsMarkdown(path string, extensions []string) bool {
	if len(extensions) == 0 {
		extensions = DefaultExtensions()
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
