// Package check provides the --check diagnostics flow: it reports where
// ffmpeg resolves to, its version line, and whether the concat demuxer the
// merge depends on is compiled in.
package check

import (
	"os/exec"
	"strings"

	"github.com/Maddox1809/m4a-merge/internal/config"
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// so that check stays dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow and reports whether the
// configured binary is usable for merging.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	path, err := exec.LookPath(cfg.FFmpegBinary)
	if err != nil {
		log.Error("%s not found on PATH", cfg.FFmpegBinary)
		log.Error("Install ffmpeg: https://ffmpeg.org/download.html")
		return false
	}
	log.Info("Binary: %s", path)

	if line := versionLine(cfg.FFmpegBinary); line != "" {
		log.Success("Version: %s", line)
	} else {
		log.Error("%s found but -version failed", cfg.FFmpegBinary)
		return false
	}

	if hasConcatDemuxer(cfg.FFmpegBinary) {
		log.Success("Concat demuxer: available")
	} else {
		log.Warn("Concat demuxer not reported by -demuxers; merging may fail")
	}
	return true
}

// versionLine returns the first line of "<binary> -version", or empty on failure.
func versionLine(binary string) string {
	out, err := exec.Command(binary, "-version").Output()
	if err != nil {
		return ""
	}
	line := strings.TrimSpace(string(out))
	if idx := strings.Index(line, "\n"); idx > 0 {
		line = line[:idx]
	}
	return line
}

// hasConcatDemuxer scans "<binary> -demuxers" output for the concat entry.
func hasConcatDemuxer(binary string) bool {
	out, err := exec.Command(binary, "-hide_banner", "-demuxers").Output()
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		for _, f := range fields {
			if f == "concat" {
				return true
			}
		}
	}
	return false
}
