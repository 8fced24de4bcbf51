package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFileNames are the project config file names probed in order during
// discovery. The first one found wins.
var configFileNames = []string{
	".mdview.yaml",
	".mdview.yml",
}

// vcsRootMarkers stop upward discovery: a directory containing one of these
// is treated as the project root.
var vcsRootMarkers = []string{".git", ".hg"}

const envPrefix = "MDVIEW_"

// Load assembles the effective configuration for startDir. Precedence, low
// to high: built-in defaults, the nearest project config file discovered
// walking upward from startDir, MDVIEW_* environment variables. The
// returned path is the config file used, or "" when none was found.
func Load(startDir string) (*Config, string, error) {
	cfg := Default()

	path, err := Discover(startDir)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, path, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, path, err
	}

	result := Validate(cfg)
	if err := result.Err(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadFile loads an explicitly named config file over the defaults,
// skipping discovery. Environment overrides still apply.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := applyFile(cfg, path); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg).Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover walks upward from startDir looking for a config file. The walk
// stops at a VCS root marker or the filesystem root. An empty path with a
// nil error means no config file exists.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", startDir, err)
	}

	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		if hasRootMarker(dir) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func hasRootMarker(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays MDVIEW_* environment variables onto cfg. Unset or
// empty variables leave the current value alone.
func applyEnv(cfg *Config) error {
	if v, ok := envInt("WATCH_DEBOUNCE_MS"); ok {
		n, err := v.value()
		if err != nil {
			return err
		}
		cfg.Watch.DebounceMS = n
	}
	if v, ok := envInt("STATS_WORDS_PER_MINUTE"); ok {
		n, err := v.value()
		if err != nil {
			return err
		}
		cfg.Stats.WordsPerMinute = n
	}
	if v := os.Getenv(envPrefix + "RENDER_HIGHLIGHT_STYLE"); v != "" {
		cfg.Render.HighlightStyle = v
	}
	if v := os.Getenv(envPrefix + "RENDER_DIAGRAM_TAGS"); v != "" {
		cfg.Render.DiagramTags = splitList(v)
	}
	if v := os.Getenv(envPrefix + "EXTENSIONS"); v != "" {
		cfg.Extensions = splitList(v)
	}
	return nil
}

type envIntVar struct {
	name string
	raw  string
}

func (v envIntVar) value() (int, error) {
	n, err := strconv.Atoi(v.raw)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s: expected integer, got %q", v.name, v.raw)
	}
	return n, nil
}

func envInt(suffix string) (envIntVar, bool) {
	name := envPrefix + suffix
	raw := os.Getenv(name)
	if raw == "" {
		return envIntVar{}, false
	}
	return envIntVar{name: name, raw: raw}, true
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
