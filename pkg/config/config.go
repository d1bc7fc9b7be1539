// Package config reads the optional per-project configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project config file under <root>/.prompt/.
const FileName = "config.yaml"

// Config holds the tunable limits for a project. Zero-valued fields in the
// file fall back to the defaults.
type Config struct {
	MaxFiles        int   `yaml:"max_files"`      // scan cap
	MaxFileBytes    int64 `yaml:"max_file_bytes"` // per-file content cap
	Workers         int   `yaml:"workers"`        // 0 = one per CPU
	HeadLines       int   `yaml:"head_lines"`     // terminal output head cap
	TailLines       int   `yaml:"tail_lines"`     // terminal output tail cap
	TimeoutSecs     int   `yaml:"timeout_secs"`   // terminal command timeout
	IncludeFileTree *bool `yaml:"include_file_tree"`
	TokenBudget     int   `yaml:"token_budget"` // budget the UI reports usage against
}

// Default returns the built-in limits.
func Default() Config {
	includeTree := true
	return Config{
		MaxFiles:        10_000,
		MaxFileBytes:    256 * 1024,
		Workers:         0,
		HeadLines:       1000,
		TailLines:       1000,
		TimeoutSecs:     25,
		IncludeFileTree: &includeTree,
		TokenBudget:     200_000,
	}
}

// TreeEnabled reports whether the file tree should be included in builds.
func (c Config) TreeEnabled() bool {
	return c.IncludeFileTree == nil || *c.IncludeFileTree
}

// Load reads <root>/.prompt/config.yaml, merging it over the defaults.
// A missing file is not an error; a malformed one is.
func Load(root string) (Config, error) {
	cfg := Default()

	path := filepath.Join(root, ".prompt", FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if file.MaxFiles > 0 {
		cfg.MaxFiles = file.MaxFiles
	}
	if file.MaxFileBytes > 0 {
		cfg.MaxFileBytes = file.MaxFileBytes
	}
	if file.Workers > 0 {
		cfg.Workers = file.Workers
	}
	if file.HeadLines > 0 {
		cfg.HeadLines = file.HeadLines
	}
	if file.TailLines > 0 {
		cfg.TailLines = file.TailLines
	}
	if file.TimeoutSecs > 0 {
		cfg.TimeoutSecs = file.TimeoutSecs
	}
	if file.IncludeFileTree != nil {
		cfg.IncludeFileTree = file.IncludeFileTree
	}
	if file.TokenBudget > 0 {
		cfg.TokenBudget = file.TokenBudget
	}
	return cfg, nil
}
