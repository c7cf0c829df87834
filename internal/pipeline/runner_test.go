package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Maddox1809/m4a-merge/internal/config"
	"github.com/Maddox1809/m4a-merge/internal/ffmpeg"
	"github.com/Maddox1809/m4a-merge/internal/logging"
)

// fakeTool implements ffmpeg.Tool without spawning processes. Merge captures
// the manifest content so tests can assert on what ffmpeg would have seen.
type fakeTool struct {
	checkErr     error
	mergeFn      func(ctx context.Context, manifestPath, outputPath string) ffmpeg.Result
	mergeCalls   int
	manifestSeen string
	manifestPath string
}

func (f *fakeTool) Check(ctx context.Context) error { return f.checkErr }

func (f *fakeTool) Merge(ctx context.Context, manifestPath, outputPath string) ffmpeg.Result {
	f.mergeCalls++
	f.manifestPath = manifestPath
	if data, err := os.ReadFile(manifestPath); err == nil {
		f.manifestSeen = string(data)
	}
	if f.mergeFn != nil {
		return f.mergeFn(ctx, manifestPath, outputPath)
	}
	return ffmpeg.Result{}
}

func testConfig(t *testing.T, inputDir string) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.InputDir = inputDir
	cfg.OutputPath = filepath.Join(t.TempDir(), "out", "final.m4a")
	cfg.ColorMode = config.ColorNever
	return cfg
}

func testLogger(t *testing.T, cfg *config.Config) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func inputDirWith(t *testing.T, filenames ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range filenames {
		touch(t, dir, name)
	}
	return dir
}

func TestRun_Success(t *testing.T) {
	dir := inputDirWith(t, "a2.m4a", "a10.m4a", "a1.m4a")
	cfg := testConfig(t, dir)
	log := testLogger(t, &cfg)

	tool := &fakeTool{
		mergeFn: func(_ context.Context, _, outputPath string) ffmpeg.Result {
			if err := os.WriteFile(outputPath, []byte("merged"), 0o644); err != nil {
				t.Fatal(err)
			}
			return ffmpeg.Result{}
		},
	}

	res := Run(context.Background(), &cfg, log, tool)
	if !res.Success {
		t.Fatalf("Run failed: %s", res.Diagnostic)
	}
	if !filepath.IsAbs(res.OutputPath) {
		t.Errorf("OutputPath = %q, want absolute", res.OutputPath)
	}
	if _, err := os.Stat(res.OutputPath); err != nil {
		t.Errorf("output file missing: %v", err)
	}

	// Manifest carried all inputs in natural order.
	lines := strings.Split(strings.TrimSpace(tool.manifestSeen), "\n")
	if len(lines) != 3 {
		t.Fatalf("manifest lines = %d, want 3:\n%s", len(lines), tool.manifestSeen)
	}
	for i, base := range []string{"a1.m4a", "a2.m4a", "a10.m4a"} {
		if !strings.Contains(lines[i], base) {
			t.Errorf("manifest line %d = %q, want it to reference %s", i, lines[i], base)
		}
	}

	// The scoped temp manifest is gone once Run returns.
	if _, err := os.Stat(tool.manifestPath); !os.IsNotExist(err) {
		t.Errorf("manifest %s should be removed after the run", tool.manifestPath)
	}
}

func TestRun_ToolUnavailable(t *testing.T) {
	dir := inputDirWith(t, "a1.m4a")
	cfg := testConfig(t, dir)
	log := testLogger(t, &cfg)

	tool := &fakeTool{checkErr: errors.New("ffmpeg is not runnable")}
	res := Run(context.Background(), &cfg, log, tool)

	if res.Success {
		t.Fatal("Run should fail when the tool is unavailable")
	}
	if tool.mergeCalls != 0 {
		t.Error("Merge must not run after a failed availability check")
	}
}

func TestRun_DiscoveryFailure(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "absent"))
	log := testLogger(t, &cfg)

	tool := &fakeTool{}
	res := Run(context.Background(), &cfg, log, tool)

	if res.Success {
		t.Fatal("Run should fail for a missing input directory")
	}
	if !strings.Contains(res.Diagnostic, "does not exist") {
		t.Errorf("Diagnostic = %q, want the missing-directory reason", res.Diagnostic)
	}
	if tool.mergeCalls != 0 {
		t.Error("Merge must not run after a discovery failure")
	}
}

func TestRun_MergeFailureRemovesPartialOutput(t *testing.T) {
	dir := inputDirWith(t, "a1.m4a", "a2.m4a")
	cfg := testConfig(t, dir)
	log := testLogger(t, &cfg)

	tool := &fakeTool{
		mergeFn: func(_ context.Context, _, outputPath string) ffmpeg.Result {
			// Simulate a partial write before the failure.
			_ = os.WriteFile(outputPath, []byte("partial"), 0o644)
			return ffmpeg.Result{Err: errors.New("exit status 1"), Stderr: "boom"}
		},
	}

	res := Run(context.Background(), &cfg, log, tool)
	if res.Success {
		t.Fatal("Run should fail when the merge exits non-zero")
	}
	if !strings.Contains(res.Diagnostic, "boom") {
		t.Errorf("Diagnostic = %q, want it to contain the tool's stderr", res.Diagnostic)
	}
	if _, err := os.Stat(res.OutputPath); !os.IsNotExist(err) {
		t.Errorf("partial output %s should be removed", res.OutputPath)
	}
}

func TestRun_MergeTimeout(t *testing.T) {
	dir := inputDirWith(t, "a1.m4a")
	cfg := testConfig(t, dir)
	log := testLogger(t, &cfg)

	tool := &fakeTool{
		mergeFn: func(context.Context, string, string) ffmpeg.Result {
			return ffmpeg.Result{Err: errors.New("merge timed out after 5m0s"), TimedOut: true}
		},
	}

	res := Run(context.Background(), &cfg, log, tool)
	if res.Success {
		t.Fatal("Run should fail on timeout")
	}
	if !strings.Contains(res.Diagnostic, "timed out") {
		t.Errorf("Diagnostic = %q, want a distinct timeout reason", res.Diagnostic)
	}
}

func TestRun_Cancellation(t *testing.T) {
	dir := inputDirWith(t, "a1.m4a")
	cfg := testConfig(t, dir)
	log := testLogger(t, &cfg)

	tool := &fakeTool{
		mergeFn: func(ctx context.Context, _, _ string) ffmpeg.Result {
			return ffmpeg.Result{Err: context.Canceled}
		},
	}

	res := Run(context.Background(), &cfg, log, tool)
	if res.Success {
		t.Fatal("Run should fail on cancellation")
	}
	if !strings.Contains(res.Diagnostic, "cancelled") {
		t.Errorf("Diagnostic = %q, want a distinct cancellation reason", res.Diagnostic)
	}
}

func TestRun_DryRun(t *testing.T) {
	dir := inputDirWith(t, "a1.m4a", "a2.m4a")
	cfg := testConfig(t, dir)
	cfg.DryRun = true
	log := testLogger(t, &cfg)

	tool := &fakeTool{}
	res := Run(context.Background(), &cfg, log, tool)

	if !res.Success {
		t.Fatalf("dry run failed: %s", res.Diagnostic)
	}
	if tool.mergeCalls != 0 {
		t.Error("dry run must not invoke the tool")
	}
	if _, err := os.Stat(res.OutputPath); !os.IsNotExist(err) {
		t.Errorf("dry run must not write %s", res.OutputPath)
	}
}

func TestRun_BareOutputNameUsesDefaultDir(t *testing.T) {
	dir := inputDirWith(t, "a1.m4a")
	cfg := testConfig(t, dir)
	cfg.OutputPath = "out.m4a"
	cfg.DefaultOutputDir = filepath.Join(t.TempDir(), "merged")
	log := testLogger(t, &cfg)

	tool := &fakeTool{
		mergeFn: func(_ context.Context, _, outputPath string) ffmpeg.Result {
			_ = os.WriteFile(outputPath, []byte("merged"), 0o644)
			return ffmpeg.Result{}
		},
	}

	res := Run(context.Background(), &cfg, log, tool)
	if !res.Success {
		t.Fatalf("Run failed: %s", res.Diagnostic)
	}
	want := filepath.Join(cfg.DefaultOutputDir, "out.m4a")
	if res.OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, want)
	}
}

func TestRun_OutputLockHeld(t *testing.T) {
	dir := inputDirWith(t, "a1.m4a")
	cfg := testConfig(t, dir)
	log := testLogger(t, &cfg)

	// Hold the lock the way a concurrent run would.
	if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o755); err != nil {
		t.Fatal(err)
	}
	lk, err := acquireOutputLock(cfg.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	defer releaseOutputLock(lk)

	tool := &fakeTool{}
	res := Run(context.Background(), &cfg, log, tool)

	if res.Success {
		t.Fatal("Run should fail while another merge holds the output lock")
	}
	if !strings.Contains(res.Diagnostic, "already") {
		t.Errorf("Diagnostic = %q, want the concurrent-merge reason", res.Diagnostic)
	}
	if tool.mergeCalls != 0 {
		t.Error("Merge must not run without the output lock")
	}
}
