package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"wayfind/internal/resolver"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Resolve resolveConfig `toml:"resolve"`
	Output  outputConfig  `toml:"output"`
}

type resolveConfig struct {
	Roots     []string        `toml:"roots"`
	DocLink   string          `toml:"doc_link"`
	Trace     bool            `toml:"trace"`
	ImportMap []resolver.Rule `toml:"import_map"`
}

type outputConfig struct {
	MinSeverity string `toml:"min_severity"`
	MaxIssues   int    `toml:"max_issues"`
}

// findWayfindToml walks up from startDir looking for a wayfind.toml.
func findWayfindToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "wayfind.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest finds and parses the nearest wayfind.toml. The
// second result is false when no manifest exists; the CLI then runs on
// defaults.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findWayfindToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", manifestPath, err)
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}
