package config

// This file implements optional TOML config file loading. The file only
// carries tool-level settings (binary, extension, directories, timeouts);
// per-run settings (paths, verbosity) stay on the command line.

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the TOML config file layout. Timeouts are whole
// seconds in the file and converted to durations when applied.
type fileConfig struct {
	FFmpegBinary        string `toml:"ffmpeg_binary"`
	Extension           string `toml:"extension"`
	DefaultOutputDir    string `toml:"default_output_dir"`
	CheckTimeoutSeconds int    `toml:"check_timeout_seconds"`
	MergeTimeoutSeconds int    `toml:"merge_timeout_seconds"`
}

// LoadFile reads the TOML file at path and applies its non-zero fields onto
// cfg. A missing or unreadable file is an error: the flow only reaches here
// when the user explicitly passed --config.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	if fc.FFmpegBinary != "" {
		cfg.FFmpegBinary = fc.FFmpegBinary
	}
	if fc.Extension != "" {
		cfg.Extension = fc.Extension
	}
	if fc.DefaultOutputDir != "" {
		cfg.DefaultOutputDir = fc.DefaultOutputDir
	}
	if fc.CheckTimeoutSeconds < 0 || fc.MergeTimeoutSeconds < 0 {
		return fmt.Errorf("timeouts in %s must not be negative", path)
	}
	if fc.CheckTimeoutSeconds > 0 {
		cfg.CheckTimeout = time.Duration(fc.CheckTimeoutSeconds) * time.Second
	}
	if fc.MergeTimeoutSeconds > 0 {
		cfg.MergeTimeout = time.Duration(fc.MergeTimeoutSeconds) * time.Second
	}
	return nil
}
