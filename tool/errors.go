package tool

import (
	"errors"
	"fmt"

	"github.com/kballard/go-shellquote"
)

var (
	// ErrToolNotFound means the clicast executable does not exist at the configured path.
	ErrToolNotFound = errors.New("clicast executable not found")
	// ErrCommandFailed is matched by every *CommandError.
	ErrCommandFailed = errors.New("clicast command failed")
	// ErrCancelled means the run was interrupted while a command was running.
	ErrCancelled = errors.New("operation cancelled by user")
)

// CommandError reports a clicast call that did not exit with status zero.
// ExitCode is -1 when the process could not be started.
type CommandError struct {
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("clicast %s could not be started: %v", shellquote.Join(e.Args...), e.Err)
	}
	return fmt.Sprintf("clicast %s exited with code %d", shellquote.Join(e.Args...), e.ExitCode)
}

func (e *CommandError) Unwrap() error { return e.Err }

func (e *CommandError) Is(target error) bool { return target == ErrCommandFailed }
