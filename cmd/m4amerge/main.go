// Command m4amerge concatenates a directory of M4A files into a single
// output file by driving ffmpeg's concat demuxer in stream-copy mode.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or the merge pipeline.
package main

import (
	"errors"
	"fmt"
	"os"
)

// version is injected at build time via -ldflags "-X main.version=...".
// When built with plain "go build" it retains this default.
var version = "1.0.0"

// errReported marks a failure that has already been logged by the pipeline;
// main suppresses the duplicate message and only sets the exit status.
var errReported = errors.New("failure already reported")

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "m4amerge: %v\n", err)
		}
		return 1
	}
	return 0
}
