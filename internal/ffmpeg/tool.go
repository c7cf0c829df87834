// Package ffmpeg is the subprocess boundary to the external ffmpeg binary:
// the availability probe, the concat-manifest writer, and the merge
// invocation itself.
package ffmpeg

import "context"

// Tool is the narrow interface the pipeline uses to talk to ffmpeg, so
// tests can substitute a fake without spawning real processes.
type Tool interface {
	// Check probes tool availability (ffmpeg -version). Any launch
	// failure, non-zero exit, or timeout yields a non-nil error.
	Check(ctx context.Context) error

	// Merge concatenates the inputs listed in manifestPath into outputPath
	// using stream copy, overwriting an existing destination. One attempt,
	// no retries.
	Merge(ctx context.Context, manifestPath, outputPath string) Result
}

// Result is the outcome of one merge invocation.
type Result struct {
	Err      error  // nil on success.
	Stderr   string // Captured diagnostic output from the tool.
	TimedOut bool   // The merge deadline elapsed and the child was killed.
}
