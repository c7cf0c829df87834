package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// InputFile is one discovered input in merge order.
type InputFile struct {
	Path string // Absolute, symlink-resolved path.
	Name string // Base filename, used for sorting and display.
}

// Sentinel errors returned by Discover; callers distinguish them with
// errors.Is to report the specific reason.
var (
	ErrDirNotFound   = errors.New("input directory does not exist")
	ErrNotADirectory = errors.New("input path is not a directory")
	ErrNoFiles       = errors.New("no matching files found")
)

// Discover lists the files in dir whose extension matches ext
// (case-insensitive, no directory recursion) and returns them natural-sorted
// by filename. ext is the bare extension without dot (e.g. "m4a").
func Discover(dir, ext string) ([]InputFile, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	want := "." + ext
	var files []InputFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), want) {
			continue
		}
		abs, err := resolvePath(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("cannot resolve %s: %w", name, err)
		}
		files = append(files, InputFile{Path: abs, Name: name})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: *.%s in %s", ErrNoFiles, ext, dir)
	}

	// Stable so identical keys preserve directory-listing order.
	sort.SliceStable(files, func(i, j int) bool {
		return naturalLess(files[i].Name, files[j].Name)
	})
	return files, nil
}

// resolvePath returns the absolute, symlink-resolved path. The manifest
// contract requires resolved paths so ffmpeg reads the real files regardless
// of working directory.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
