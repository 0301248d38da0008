//go:build unix

package generator

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/YoungY620/utgen/internal"
)

// TryLock takes the run lock in stateDir without waiting. It returns
// ErrLocked when another process holds it.
func TryLock(stateDir string) (*os.File, error) {
	f, err := openLockFile(stateDir)
	if err != nil {
		return nil, err
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
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
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		internal.LogDebug("Unlock %s: %v", f.Name(), err)
	}
	f.Close()
}
