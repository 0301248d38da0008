package generator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YoungY620/utgen/generator"
	"github.com/YoungY620/utgen/script"
	"github.com/YoungY620/utgen/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoScript = "-- Environment: DEMO\n" +
	"-- Subprogram: Add\n" +
	"some other text\n" +
	"-- Subprogram: Subtract\n"

// fakeRunner stands in for clicast: it records every call and writes the
// expected output file into dir, unless told otherwise.
type fakeRunner struct {
	dir       string
	master    string
	calls     []tool.Invocation
	failOn    string // fail the first call whose args contain this value
	failErr   error
	skipWrite map[string]bool // outputs not to create
}

func (f *fakeRunner) Run(_ context.Context, inv tool.Invocation) (*tool.Result, error) {
	f.calls = append(f.calls, inv)
	if f.failOn != "" && contains(inv.Args, f.failOn) {
		return &tool.Result{Args: inv.Args, ExitCode: 1}, f.failErr
	}
	if !f.skipWrite[inv.Output] {
		content := "generated by " + strings.Join(inv.Args, " ")
		if strings.HasSuffix(inv.Output, "DEMO.tst") {
			content = f.master
		}
		if err := os.WriteFile(filepath.Join(f.dir, inv.Output), []byte(content), 0644); err != nil {
			return nil, err
		}
	}
	return &tool.Result{Args: inv.Args}, nil
}

func contains(args []string, v string) bool {
	for _, a := range args {
		if a == v {
			return true
		}
	}
	return false
}

func (f *fakeRunner) outputs() []string {
	var out []string
	for _, c := range f.calls {
		out = append(out, c.Output)
	}
	return out
}

func newFixture(t *testing.T, compound bool) (*generator.Generator, *fakeRunner, string) {
	t.Helper()
	dir := t.TempDir()
	runner := &fakeRunner{dir: dir, master: demoScript, skipWrite: map[string]bool{}}
	g, err := generator.New(generator.Options{
		WorkDir:  dir,
		Module:   "demo",
		Compound: compound,
	}, runner)
	require.NoError(t, err)
	return g, runner, dir
}

func TestNew_Validation(t *testing.T) {
	_, err := generator.New(generator.Options{}, &fakeRunner{})
	assert.True(t, errors.Is(err, generator.ErrEmptyModule))

	_, err = generator.New(generator.Options{Module: " \t "}, &fakeRunner{})
	assert.True(t, errors.Is(err, generator.ErrEmptyModule), "blank module names are rejected")

	g, err := generator.New(generator.Options{Module: "  demo\n"}, &fakeRunner{})
	require.NoError(t, err)
	assert.Equal(t, "demo", g.Target().Module)
	assert.Equal(t, "DEMO", g.Target().Environment)

	_, err = generator.New(generator.Options{Module: "demo"}, nil)
	assert.Error(t, err)

	g, err = generator.New(generator.Options{Module: "demo", WorkDir: "/work", ResultsDir: "/abs/results"}, &fakeRunner{})
	require.NoError(t, err)
	assert.Equal(t, "DEMO", g.Target().Environment)
	assert.Equal(t, filepath.Join("/work", "Unit_Tst"), g.ScriptsDir())
	assert.Equal(t, "/abs/results", g.ResultsDir())
}

func TestRun_FullPipeline(t *testing.T) {
	g, runner, dir := newFixture(t, true)

	summary, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"DEMO.tst",
		"demo_Testcase_Management_Report.html",
		"demo_Execution_Results_Report.html",
		"demo_Full_Report.html",
		"Add.tst",
		"Subtract.tst",
		"__COMPOUND__.tst",
	}, runner.outputs())

	assert.Equal(t, []string{"Add", "Subtract"}, summary.Subprograms)
	assert.Empty(t, summary.Warnings)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, "DEMO", summary.Environment)
	assert.True(t, summary.Compound)
	assert.False(t, summary.FinishedAt.Before(summary.StartedAt))

	scripts := filepath.Join(dir, "Unit_Tst")
	results := filepath.Join(dir, "Results")
	for _, f := range []string{"Add.tst", "Subtract.tst", "__COMPOUND__.tst"} {
		assert.FileExists(t, filepath.Join(scripts, f))
		assert.NoFileExists(t, filepath.Join(dir, f), "script should be moved, not copied")
	}
	for _, f := range []string{
		"DEMO.tst",
		"demo_Testcase_Management_Report.html",
		"demo_Execution_Results_Report.html",
		"demo_Full_Report.html",
		generator.ManifestFileName,
	} {
		assert.FileExists(t, filepath.Join(results, f))
	}
	assert.FileExists(t, filepath.Join(dir, "DEMO.tst"), "master script is copied, not moved")
	assert.NoFileExists(t, filepath.Join(dir, "DEMO_copy.tst"), "scratch copy is removed")

	assert.Len(t, summary.Scripts, 3)
	assert.Len(t, summary.Reports, 3)

	manifest, err := generator.ReadManifest(results)
	require.NoError(t, err)
	assert.Equal(t, summary.RunID, manifest.RunID)
	assert.Equal(t, summary.Subprograms, manifest.Subprograms)
}

func TestRun_PerSubprogramArguments(t *testing.T) {
	g, runner, _ := newFixture(t, false)

	_, err := g.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, runner.calls, 6, "no compound call when disabled")
	assert.Equal(t, tool.SubprogramScript(g.Target(), "Add").Args, runner.calls[4].Args)
	assert.Equal(t, tool.SubprogramScript(g.Target(), "Subtract").Args, runner.calls[5].Args)
	for _, c := range runner.calls {
		assert.Equal(t, "demo", c.Env["Unit_name"])
		assert.Equal(t, "DEMO", c.Env["Environment_Name"])
	}
}

func TestRun_DuplicateSubprograms(t *testing.T) {
	g, runner, _ := newFixture(t, false)
	runner.master = "-- Subprogram: Bar\n-- Subprogram: Foo\n-- Subprogram: Bar\n"

	summary, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bar", "Foo", "Bar"}, summary.Subprograms)
	assert.Equal(t, []string{"Bar.tst", "Foo.tst", "Bar.tst"}, runner.outputs()[4:])
	assert.Empty(t, summary.Warnings, "a repeated script replaces the earlier one")
}

func TestRun_NoSubprograms(t *testing.T) {
	g, runner, _ := newFixture(t, false)
	runner.master = "-- Environment: DEMO\n"

	summary, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Subprograms)
	assert.Len(t, runner.calls, 4)
}

func TestRun_CommandFailureAborts(t *testing.T) {
	g, runner, dir := newFixture(t, true)
	runner.failOn = "ACtual"
	runner.failErr = &tool.CommandError{Args: []string{"ACtual"}, ExitCode: 2}

	_, err := g.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, tool.ErrCommandFailed))

	assert.Len(t, runner.calls, 3, "remaining steps must not run")
	assert.NoFileExists(t, filepath.Join(dir, "Results", generator.ManifestFileName))
	assert.FileExists(t, filepath.Join(dir, "demo_Testcase_Management_Report.html"), "produced artifacts are kept")
}

func TestRun_SubprogramFailureAborts(t *testing.T) {
	g, runner, _ := newFixture(t, true)
	runner.failOn = "Add"
	runner.failErr = &tool.CommandError{ExitCode: 1}

	_, err := g.Run(context.Background())
	assert.True(t, errors.Is(err, tool.ErrCommandFailed))
	assert.Equal(t, "Add.tst", runner.calls[len(runner.calls)-1].Output)
}

func TestRun_Cancelled(t *testing.T) {
	g, runner, _ := newFixture(t, false)
	runner.failOn = "-lc"
	runner.failErr = tool.ErrCancelled

	_, err := g.Run(context.Background())
	assert.True(t, errors.Is(err, tool.ErrCancelled))
	assert.Len(t, runner.calls, 1)
}

func TestRun_MasterScriptMissing(t *testing.T) {
	g, runner, _ := newFixture(t, false)
	runner.skipWrite["DEMO.tst"] = true

	_, err := g.Run(context.Background())
	assert.True(t, errors.Is(err, script.ErrFileNotFound))
	assert.Len(t, runner.calls, 1)
}

func TestRun_MoveFailuresAreWarnings(t *testing.T) {
	g, runner, dir := newFixture(t, false)
	runner.skipWrite["Add.tst"] = true
	runner.skipWrite["demo_Full_Report.html"] = true

	summary, err := g.Run(context.Background())
	require.NoError(t, err, "move failures must not abort the run")

	require.Len(t, summary.Warnings, 2)
	assert.Equal(t, "move", summary.Warnings[0].Op)
	assert.Equal(t, "Add.tst", summary.Warnings[0].Path)
	assert.Equal(t, "demo_Full_Report.html", summary.Warnings[1].Path)

	assert.FileExists(t, filepath.Join(dir, "Unit_Tst", "Subtract.tst"))
	assert.Len(t, summary.Reports, 2)

	manifest, err := generator.ReadManifest(filepath.Join(dir, "Results"))
	require.NoError(t, err)
	assert.Len(t, manifest.Warnings, 2)
}

func TestRun_Rerun(t *testing.T) {
	g, _, dir := newFixture(t, true)

	first, err := g.Run(context.Background())
	require.NoError(t, err)
	second, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Empty(t, second.Warnings, "existing artifacts are replaced")
	assert.FileExists(t, filepath.Join(dir, "Unit_Tst", "Add.tst"))
}
