// Package script reads test scripts produced by clicast and pulls out the
// subprogram markers they declare.
package script

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// maxLineBytes bounds a single line; longer lines are reported as a ReadError.
const maxLineBytes = 1024 * 1024

// subprogramPattern matches "-- Subprogram: NAME" with any marker case.
// Whitespace includes Unicode space separators such as U+00A0 and U+3000.
// The first capture group is the subprogram name.
var subprogramPattern = regexp.MustCompile(`(?i)^[\s\p{Zs}]*-- Subprogram:[\s\p{Zs}]+([^\s\p{Zs}]+)`)

// ErrFileNotFound is returned when the script path does not exist.
var ErrFileNotFound = errors.New("test script not found")

// ReadError wraps any I/O failure other than a missing file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read test script %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// SubprogramReference is one "-- Subprogram:" marker found in a script.
type SubprogramReference struct {
	Name string
}

// Extract returns the subprogram references declared in the script at path,
// in file order. Duplicates are kept. Bytes that are not valid UTF-8 are
// dropped before matching.
func Extract(path string) ([]SubprogramReference, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	refs, err := Scan(f)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return refs, nil
}

// Scan reads r line by line and collects subprogram references.
func Scan(r io.Reader) ([]SubprogramReference, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	refs := []SubprogramReference{}
	for scanner.Scan() {
		line := strings.ToValidUTF8(scanner.Text(), "")
		if name, ok := MatchLine(line); ok {
			refs = append(refs, SubprogramReference{Name: name})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

// MatchLine reports whether line is a subprogram marker and returns the name.
// A marker with nothing after it does not match.
func MatchLine(line string) (string, bool) {
	m := subprogramPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Names projects refs to their names.
func Names(refs []SubprogramReference) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}

// CopyScratch writes a copy of src to dst with undecodable bytes removed.
// The pipeline extracts from this copy so the master script stays untouched.
func CopyScratch(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, src)
		}
		return &ReadError{Path: src, Err: err}
	}
	if err := os.WriteFile(dst, bytes.ToValidUTF8(data, nil), 0644); err != nil {
		return fmt.Errorf("failed to write scratch copy %s: %w", dst, err)
	}
	return nil
}
