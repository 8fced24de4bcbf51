package config

import (
	"fmt"
	"strings"
)

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e ValidationError) Error() string {
	var b strings.Builder
	if e.FilePath != "" {
		fmt.Fprintf(&b, "%s: ", e.FilePath)
	}
	fmt.Fprintf(&b, "%s: %s", e.Field, e.Message)
	if e.Value != nil {
		fmt.Fprintf(&b, " (got %v)", e.Value)
	}
	return b.String()
}

// ValidationResult aggregates everything wrong with a loaded configuration.
type ValidationResult struct {
	Errors []ValidationError
}

// Valid reports whether no errors were recorded.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

// Err folds the result into a single error, or nil when valid.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Validate checks cfg for out-of-range or malformed values. It never
// mutates cfg.
func Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	if cfg.Watch.DebounceMS < 0 {
		result.addError("watch.debounce_ms", cfg.Watch.DebounceMS, "must not be negative")
	}
	if cfg.Stats.WordsPerMinute <= 0 {
		result.addError("stats.words_per_minute", cfg.Stats.WordsPerMinute, "must be positive")
	}
	if cfg.Render.HighlightStyle == "" {
		result.addError("render.highlight_style", nil, "must not be empty")
	}
	for _, tag := range cfg.Render.DiagramTags {
		if strings.TrimSpace(tag) == "" {
			result.addError("render.diagram_tags", tag, "tags must not be blank")
		}
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.addError("extensions", ext, "extensions must start with a dot")
		}
	}

	return result
}
