// Package config holds runtime configuration: defaults, optional TOML file
// loading, and validation. Every process-wide constant (timeouts, default
// output directory, target extension, ffmpeg binary) lives here with an
// explicit default so tests can override it.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and then mutated by CLI flag binding
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from CLI flags).
	InputDir   string
	OutputPath string

	// External tool.
	FFmpegBinary string        // Default: "ffmpeg" (resolved via PATH).
	CheckTimeout time.Duration // Default: 10s. Bound on the -version probe.
	MergeTimeout time.Duration // Default: 5m. Bound on the concat invocation.

	// Discovery.
	Extension string // Default: "m4a". Matched case-insensitively, no dot.

	// Output.
	DefaultOutputDir string // Default: "merged". Used for bare output filenames.

	// Behavior flags.
	DryRun    bool
	CheckOnly bool // Run diagnostics and exit.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// m4a_merger behavior (10s probe timeout, 5 minute merge timeout, "merged"
// output folder). Used as the base before file and flag overrides apply.
func DefaultConfig() Config {
	return Config{
		FFmpegBinary:     "ffmpeg",
		CheckTimeout:     10 * time.Second,
		MergeTimeout:     5 * time.Minute,
		Extension:        "m4a",
		DefaultOutputDir: "merged",
		DryRun:           false,
		CheckOnly:        false,
		Verbose:          false,
		ColorMode:        ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum and timeout fields and canonicalizes the extension
// (lowercase, no leading dot). When not in CheckOnly mode, it also requires
// that both the input directory and output path are set.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.FFmpegBinary == "" {
		return errors.New("ffmpeg binary must not be empty")
	}
	if c.CheckTimeout <= 0 {
		return errors.New("check timeout must be positive")
	}
	if c.MergeTimeout <= 0 {
		return errors.New("merge timeout must be positive")
	}

	ext, err := normalizeExtension(c.Extension)
	if err != nil {
		return err
	}
	c.Extension = ext

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("input directory is required (--input)")
	}
	if c.OutputPath == "" {
		return errors.New("output path is required (--output)")
	}
	c.InputDir = NormalizeDirArg(c.InputDir)
	return nil
}

// normalizeExtension validates and canonicalizes the target extension.
// Accepted forms: "m4a", ".m4a", "M4A". Output is lowercase without dot.
func normalizeExtension(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return "", errors.New("target extension must not be empty")
	}
	if strings.ContainsAny(s, "./\\") {
		return "", fmt.Errorf("invalid target extension %q", raw)
	}
	return s, nil
}
