package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// manifestName is the manifest filename inside the scoped temp directory.
const manifestName = "filelist.txt"

// Sentinel errors returned by WriteManifest for unusable input paths.
var (
	// ErrQuoteInPath rejects paths containing a single quote. The concat
	// manifest quotes each path with single quotes and ffmpeg's format has
	// no escape for an embedded one, so such paths would corrupt the
	// manifest silently. Rejecting is safer than guessing.
	ErrQuoteInPath = errors.New("input path contains a single quote, which the concat manifest cannot represent")

	// ErrRelativePath rejects non-absolute paths; the manifest contract
	// requires resolved absolute paths so ffmpeg is independent of the
	// working directory.
	ErrRelativePath = errors.New("input path is not absolute")
)

// WriteManifest writes the concat manifest into dir and returns its path.
// One "file '<absolute-path>'" line per input, newline-terminated, in the
// given order. The order is significant: it determines playback order of
// the merged audio.
//
// The caller owns dir (normally an os.MkdirTemp directory removed via
// defer), which scopes the manifest's lifetime to the merge operation.
func WriteManifest(paths []string, dir string) (string, error) {
	var b strings.Builder
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			return "", fmt.Errorf("%w: %s", ErrRelativePath, p)
		}
		if strings.Contains(p, "'") {
			return "", fmt.Errorf("%w: %s", ErrQuoteInPath, p)
		}
		fmt.Fprintf(&b, "file '%s'\n", p)
	}

	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("cannot write manifest: %w", err)
	}
	return path, nil
}
