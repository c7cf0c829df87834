package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/Maddox1809/m4a-merge/internal/config"
)

// Exec runs the real ffmpeg binary. It is the production [Tool].
type Exec struct {
	Binary       string
	CheckTimeout time.Duration
	MergeTimeout time.Duration
}

// NewExec builds an Exec from the runtime configuration.
func NewExec(cfg *config.Config) *Exec {
	return &Exec{
		Binary:       cfg.FFmpegBinary,
		CheckTimeout: cfg.CheckTimeout,
		MergeTimeout: cfg.MergeTimeout,
	}
}

// Check runs "<binary> -version" under CheckTimeout with output discarded.
// This is advisory: it rules out the common "not installed" case early but
// does not guarantee the later merge succeeds.
func (e *Exec) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, e.CheckTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.Binary, "-version")
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s -version timed out after %s", e.Binary, e.CheckTimeout)
		}
		return fmt.Errorf("%s is not runnable: %w", e.Binary, err)
	}
	return nil
}

// Merge runs the concat invocation under MergeTimeout with stderr captured.
// On deadline the child is killed (CommandContext) and the result carries
// TimedOut; other failures carry the tool's stderr for diagnosis.
func (e *Exec) Merge(ctx context.Context, manifestPath, outputPath string) Result {
	runCtx, cancel := context.WithTimeout(ctx, e.MergeTimeout)
	defer cancel()

	args := BuildMergeArgs(e.Binary, manifestPath, outputPath)
	cmd := exec.CommandContext(runCtx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	res := Result{Stderr: stderrBuf.String()}
	if err == nil {
		return res
	}

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		res.TimedOut = true
		res.Err = fmt.Errorf("merge timed out after %s", e.MergeTimeout)
	case ctx.Err() != nil:
		res.Err = ctx.Err()
	default:
		res.Err = err
	}
	return res
}
