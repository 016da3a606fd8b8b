// Package config loads the ambient settings that are not themselves part
// of a grammar: where scratch files go, the default output prefix, whether
// conflicts get reported, and how wide a verbose table dump is allowed to
// get before wrapping. Settings are layered file-defaults, then
// environment, then explicit CLI flags, each overriding the last.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every ambient setting this module consults outside of the
// grammar itself.
type Config struct {
	TempDir             string `toml:"temp_dir"`
	DefaultPrefix       string `toml:"default_prefix"`
	ReportConflicts     bool   `toml:"report_conflicts"`
	MaxInlineTableWidth int    `toml:"max_inline_table_width"`
}

// Default returns the built-in defaults, before any file or environment
// overrides are applied.
func Default() Config {
	return Config{
		TempDir:             os.TempDir(),
		DefaultPrefix:       "y",
		ReportConflicts:     true,
		MaxInlineTableWidth: 120,
	}
}

// Load reads path as a TOML config file and layers it over Default,
// then applies the TMPDIR environment variable if set. A missing file is
// not an error; Load simply returns the defaults (with environment
// overrides applied).
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, err
			}
		}
	}
	if tmp := os.Getenv("TMPDIR"); tmp != "" {
		cfg.TempDir = tmp
	}
	return cfg, nil
}
