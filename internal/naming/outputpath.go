// Package naming resolves the output file location for a merge run.
package naming

import (
	"os"
	"path/filepath"
)

// ResolveOutputPath rewrites a bare output filename to live under defaultDir
// (relative to the working directory). A path that already carries a
// directory component is returned unchanged.
//
//	out.m4a      → merged/out.m4a
//	sub/out.m4a  → sub/out.m4a
func ResolveOutputPath(output, defaultDir string) string {
	if filepath.Dir(output) == "." {
		return filepath.Join(defaultDir, output)
	}
	return output
}

// EnsureParentDir creates the parent directory tree for path. Idempotent:
// an already-existing directory is not an error.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
