package generator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StateDirName holds the run lock and history inside the working directory.
const StateDirName = ".utgen"

const lockFileName = "utgen.lock"

// ErrLocked is returned by TryLock when another run holds the working directory.
var ErrLocked = errors.New("another utgen run is already using this directory")

func openLockFile(stateDir string) (*os.File, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(stateDir, lockFileName), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	return f, nil
}

// stampOwner replaces the lock file content with the holder's PID.
func stampOwner(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("failed to write lock owner: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to write lock owner: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("failed to write lock owner: %w", err)
	}
	return f.Sync()
}
