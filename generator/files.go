package generator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Warning is a file operation that failed without aborting the run.
type Warning struct {
	Op      string `json:"op"` // "copy", "move", "remove", "write manifest"
	Path    string `json:"path"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (w Warning) String() string {
	return fmt.Sprintf("could not %s %s: %s", w.Op, w.Path, w.Message)
}

func newWarning(op, path string, err error) Warning {
	return Warning{Op: op, Path: path, Message: err.Error(), Err: err}
}

// ensureDirs creates each directory if absent.
func ensureDirs(dirs ...string) error {
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}
	return nil
}

// copyInto copies src into dir under the same base name and returns the destination.
func copyInto(src, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	return dst, copyFile(src, dst)
}

// moveInto moves src into dir, replacing a file of the same name there.
// Renames across filesystems fall back to copy and remove.
func moveInto(src, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	if _, err := os.Stat(src); err != nil {
		return dst, err
	}
	if err := os.Rename(src, dst); err == nil {
		return dst, nil
	}
	if err := copyFile(src, dst); err != nil {
		return dst, err
	}
	return dst, os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// removeIfExists deletes path; a missing file is not an error.
func removeIfExists(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
