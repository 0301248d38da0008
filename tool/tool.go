// Package tool runs the VectorCAST clicast executable with explicit argument
// lists and reports each call as a structured Result.
package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/YoungY620/utgen/internal"
	"github.com/acarl005/stripansi"
)

// outputTailBytes bounds the captured output kept in errors and history.
const outputTailBytes = 4096

// EnvironmentName is the clicast environment name for module.
func EnvironmentName(module string) string {
	return strings.ToUpper(module)
}

// Result is the outcome of one completed clicast call.
type Result struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner executes clicast invocations. *Tool is the production implementation.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (*Result, error)
}

var _ Runner = (*Tool)(nil)

// Tool runs clicast from a fixed working directory.
type Tool struct {
	path string
	dir  string
}

// New resolves the clicast executable to an absolute path. Paths containing a
// separator are taken relative to the current directory, not workDir; bare
// names are looked up on PATH.
func New(path, workDir string) (*Tool, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrToolNotFound)
	}

	var resolved string
	if strings.ContainsAny(path, `/\`) || filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrToolNotFound, path, err)
		}
		info, err := os.Stat(abs)
		if err != nil || info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrToolNotFound, path)
		}
		resolved = abs
	} else {
		p, err := exec.LookPath(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrToolNotFound, path)
		}
		resolved = p
	}

	return &Tool{path: resolved, dir: workDir}, nil
}

// Path returns the resolved executable path.
func (t *Tool) Path() string { return t.path }

// Dir returns the directory commands run in.
func (t *Tool) Dir() string { return t.dir }

// Run executes inv and blocks until clicast exits. A non-zero exit is a
// *CommandError; cancellation of ctx is ErrCancelled. Calls are never retried.
func (t *Tool) Run(ctx context.Context, inv Invocation) (*Result, error) {
	internal.LogInfo("Executing: %s %s", filepath.Base(t.path), inv)

	cmd := exec.CommandContext(ctx, t.path, inv.Args...)
	cmd.Dir = t.dir
	cmd.Env = append(os.Environ(), envList(inv.Env)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	res := &Result{
		Args:     inv.Args,
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}
	output := tail(stripansi.Strip(res.Stdout+res.Stderr), outputTailBytes)
	internal.History().LogCommand(inv.Args, res.ExitCode, duration, output)
	if output != "" {
		internal.LogDebug("clicast output:\n%s", output)
	}

	if ctx.Err() != nil {
		return res, fmt.Errorf("%w: %s", ErrCancelled, inv)
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			res.ExitCode = -1
		}
		return res, &CommandError{
			Args:     inv.Args,
			ExitCode: res.ExitCode,
			Output:   output,
			Err:      runErr,
		}
	}

	internal.LogDebug("Command finished in %s", duration.Round(time.Millisecond))
	return res, nil
}

// envList renders vars as KEY=VALUE pairs in a stable order.
func envList(vars map[string]string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]string, 0, len(keys))
	for _, k := range keys {
		list = append(list, k+"="+vars[k])
	}
	return list
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
