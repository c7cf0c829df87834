// Package pipeline orchestrates the merge: availability check, file
// discovery with natural sort, manifest generation, ffmpeg invocation, and
// reporting. One sequential pass per run, no retries.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Maddox1809/m4a-merge/internal/config"
	"github.com/Maddox1809/m4a-merge/internal/display"
	"github.com/Maddox1809/m4a-merge/internal/ffmpeg"
	"github.com/Maddox1809/m4a-merge/internal/logging"
	"github.com/Maddox1809/m4a-merge/internal/naming"
)

// Run executes the whole merge pipeline and returns its result. Every
// failure is reported through log before returning; the caller only maps
// Success to the process exit code.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, tool ffmpeg.Tool) MergeResult {
	// --- Preflight: rule out "ffmpeg not installed" early ---
	if err := tool.Check(ctx); err != nil {
		log.Error("%s is not installed or not in PATH", cfg.FFmpegBinary)
		log.Error("Install ffmpeg: https://ffmpeg.org/download.html")
		log.Debug("availability probe: %v", err)
		return MergeResult{Diagnostic: err.Error()}
	}

	// --- Discovery ---
	files, err := Discover(cfg.InputDir, cfg.Extension)
	if err != nil {
		log.Error("%v", err)
		return MergeResult{Diagnostic: err.Error()}
	}
	log.Info("Found %d %s files in %s", len(files), cfg.Extension, cfg.InputDir)

	if cfg.Verbose || cfg.DryRun {
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name
		}
		fmt.Println(display.FileListing(names))
	}

	// --- Output path resolution ---
	outputPath := naming.ResolveOutputPath(cfg.OutputPath, cfg.DefaultOutputDir)
	if err := naming.EnsureParentDir(outputPath); err != nil {
		log.Error("Cannot create output directory: %v", err)
		return MergeResult{Diagnostic: err.Error()}
	}

	if cfg.DryRun {
		log.Success("[DRY] Would merge %d files into %s", len(files), outputPath)
		log.Info("[DRY] Command: %s", strings.Join(
			ffmpeg.BuildMergeArgs(cfg.FFmpegBinary, "<manifest>", outputPath), " "))
		return MergeResult{Success: true, OutputPath: outputPath}
	}

	lk, err := acquireOutputLock(outputPath)
	if err != nil {
		log.Error("%v", err)
		return MergeResult{Diagnostic: err.Error(), OutputPath: outputPath}
	}
	defer releaseOutputLock(lk)

	// --- Manifest: scoped to this run via the temp dir ---
	tmpDir, err := os.MkdirTemp("", "m4amerge-")
	if err != nil {
		log.Error("Cannot create temp directory: %v", err)
		return MergeResult{Diagnostic: err.Error(), OutputPath: outputPath}
	}
	defer os.RemoveAll(tmpDir)

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	manifestPath, err := ffmpeg.WriteManifest(paths, tmpDir)
	if err != nil {
		log.Error("%v", err)
		return MergeResult{Diagnostic: err.Error(), OutputPath: outputPath}
	}

	// --- Invocation ---
	log.Info("Merging %d files...", len(files))
	log.Info("Output: %s", outputPath)

	res := tool.Merge(ctx, manifestPath, outputPath)
	if res.Err != nil {
		return reportFailure(cfg, log, res, outputPath)
	}

	// --- Report ---
	result := MergeResult{Success: true, OutputPath: outputPath}
	if abs, err := filepath.Abs(outputPath); err == nil {
		result.OutputPath = abs
	}
	if info, err := os.Stat(outputPath); err == nil {
		log.Success("Merged file saved to: %s (%s)", result.OutputPath, display.FormatBytes(info.Size()))
	} else {
		log.Success("Merged file saved to: %s", result.OutputPath)
	}
	return result
}

// reportFailure logs the failed invocation with its specific reason,
// removes any partially-written output, and builds the failure result.
func reportFailure(cfg *config.Config, log *logging.Logger, res ffmpeg.Result, outputPath string) MergeResult {
	diagnostic := res.Err.Error()
	switch {
	case errors.Is(res.Err, context.Canceled):
		log.Warn("Merge cancelled by user")
		diagnostic = "merge cancelled by user"
	case res.TimedOut:
		log.Error("Merge timed out after %s", cfg.MergeTimeout)
	default:
		log.Error("%s failed: %v", cfg.FFmpegBinary, res.Err)
		logStderr(log, res.Stderr)
		if res.Stderr != "" {
			diagnostic = res.Stderr
		}
	}

	if err := removeIfExists(outputPath); err != nil {
		log.Warn("Cannot remove partial output %s: %v", outputPath, err)
	}
	return MergeResult{Diagnostic: diagnostic, OutputPath: outputPath}
}

// logStderr prints the tail of the tool's error stream, capped so a noisy
// run does not flood the console.
func logStderr(log *logging.Logger, stderr string) {
	if stderr == "" {
		return
	}
	log.Error("ffmpeg output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}
