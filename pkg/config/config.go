// Package config defines the mdview configuration model and its loading
// pipeline. Configuration is pure data: the structs here carry no behavior
// beyond defaulting and validation, so they can be loaded from a YAML file,
// overridden from the environment, and handed to the packages that consume
// them without the loader knowing anything about parsing or rendering.
package config

import (
	"time"
)

// WatchConfig controls the file watcher used by `mdview view --watch`.
type WatchConfig struct {
	// DebounceMS is the quiet period, in milliseconds, after the last
	// filesystem event before a reload fires.
	DebounceMS int `yaml:"debounce_ms"`
}

// Debounce returns the debounce window as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// StatsConfig controls derived document statistics.
type StatsConfig struct {
	// WordsPerMinute is the reading speed used for the reading-time
	// estimate.
	WordsPerMinute int `yaml:"words_per_minute"`
}

// RenderConfig controls HTML and terminal rendering.
type RenderConfig struct {
	// HighlightStyle names the chroma style used for fenced code blocks
	// in HTML export.
	HighlightStyle string `yaml:"highlight_style"`

	// DiagramTags lists fence info strings treated as diagram blocks
	// rather than code.
	DiagramTags []string `yaml:"diagram_tags"`
}

// Config is the root mdview configuration.
type Config struct {
	Watch  WatchConfig  `yaml:"watch"`
	Stats  StatsConfig  `yaml:"stats"`
	Render RenderConfig `yaml:"render"`

	// Extensions lists file extensions recognized as Markdown.
	Extensions []string `yaml:"extensions"`
}

// Default returns the built-in configuration used when no config file is
// found. Every field is populated; loading merges file and environment
// values over this base.
func Default() *Config {
	return &Config{
		Watch: WatchConfig{
			DebounceMS: 250,
		},
		Stats: StatsConfig{
			WordsPerMinute: 200,
		},
		Render: RenderConfig{
			HighlightStyle: "github",
			DiagramTags:    []string{"mermaid"},
		},
		Extensions: []string{".md", ".markdown", ".mdown", ".mkd"},
	}
}
