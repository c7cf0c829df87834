package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gofrs/flock"
)

// acquireOutputLock takes a non-blocking file lock next to the resolved
// output path so two concurrent runs cannot write the same destination.
// The caller releases it via releaseOutputLock on every exit path.
func acquireOutputLock(outputPath string) (*flock.Flock, error) {
	lk := flock.New(outputPath + ".lock")
	ok, err := lk.TryLock()
	if err != nil {
		return nil, fmt.Errorf("cannot lock output path: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another merge is already writing %s", outputPath)
	}
	return lk, nil
}

// releaseOutputLock unlocks and removes the lock file. Best effort: the
// merge outcome is already decided when this runs.
func releaseOutputLock(lk *flock.Flock) {
	path := lk.Path()
	_ = lk.Unlock()
	_ = removeIfExists(path)
}

// removeIfExists removes path, treating "already gone" as success.
func removeIfExists(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
