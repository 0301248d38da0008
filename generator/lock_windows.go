//go:build windows

package generator

import (
	"errors"
	"fmt"
	"os"

	"github.com/YoungY620/utgen/internal"
	"golang.org/x/sys/windows"
)

// TryLock takes the run lock in stateDir without waiting. It returns
// ErrLocked when another process holds it.
func TryLock(stateDir string) (*os.File, error) {
	f, err := openLockFile(stateDir)
	if err != nil {
		return nil, err
	}

	err = windows.LockFileEx(
		windows.Handle(f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0,
		1, 0,
		&windows.Overlapped{},
	)
	if err != nil {
		f.Close()
		if errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to lock %s: %w", f.Name(), err)
	}

	if err := stampOwner(f); err != nil {
		Unlock(f)
		return nil, err
	}
	return f, nil
}

// Unlock releases a lock taken by TryLock. A nil file is ignored.
func Unlock(f *os.File) {
	if f == nil {
		return
	}
	if err := windows.UnlockFileEx(windows.Handle(f.Fd()), 0, 1, 0, &windows.Overlapped{}); err != nil {
		internal.LogDebug("Unlock %s: %v", f.Name(), err)
	}
	f.Close()
}
