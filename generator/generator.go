// Package generator runs the clicast pipeline for one module: master script,
// reports, per-subprogram scripts and the optional compound script, then files
// the results into the scripts and results directories.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/YoungY620/utgen/internal"
	"github.com/YoungY620/utgen/script"
	"github.com/YoungY620/utgen/tool"
	"github.com/google/uuid"
)

// ErrEmptyModule is returned when no module name was supplied.
var ErrEmptyModule = errors.New("module name cannot be empty")

// Options configures a Generator. Relative directories are resolved against WorkDir.
type Options struct {
	WorkDir    string
	Module     string
	Compound   bool
	ScriptsDir string
	ResultsDir string
}

// Generator drives one module through the pipeline. Runs are sequential;
// a Generator must not be used by two goroutines at once.
type Generator struct {
	opts       Options
	target     tool.Target
	runner     tool.Runner
	scriptsDir string
	resultsDir string
}

// New validates opts and binds them to runner. Surrounding whitespace is
// trimmed from the module name; a blank name is ErrEmptyModule.
func New(opts Options, runner tool.Runner) (*Generator, error) {
	opts.Module = strings.TrimSpace(opts.Module)
	if opts.Module == "" {
		return nil, ErrEmptyModule
	}
	if runner == nil {
		return nil, fmt.Errorf("runner cannot be nil")
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.ScriptsDir == "" {
		opts.ScriptsDir = "Unit_Tst"
	}
	if opts.ResultsDir == "" {
		opts.ResultsDir = "Results"
	}

	return &Generator{
		opts:       opts,
		target:     tool.NewTarget(opts.Module),
		runner:     runner,
		scriptsDir: resolve(opts.WorkDir, opts.ScriptsDir),
		resultsDir: resolve(opts.WorkDir, opts.ResultsDir),
	}, nil
}

func resolve(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// Target returns the module and environment this generator works on.
func (g *Generator) Target() tool.Target { return g.target }

// ScriptsDir returns the resolved per-function scripts directory.
func (g *Generator) ScriptsDir() string { return g.scriptsDir }

// ResultsDir returns the resolved results directory.
func (g *Generator) ResultsDir() string { return g.resultsDir }

func (g *Generator) path(name string) string {
	return filepath.Join(g.opts.WorkDir, name)
}

// Run executes the whole pipeline once. Any failing clicast call, a missing
// master script or cancellation aborts the run; artifacts already produced
// stay where they are. File moves and copies that fail are collected as
// warnings in the returned Summary.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	s := &Summary{
		RunID:       uuid.NewString(),
		Module:      g.target.Module,
		Environment: g.target.Environment,
		Compound:    g.opts.Compound,
		ScriptsDir:  g.scriptsDir,
		ResultsDir:  g.resultsDir,
		Subprograms: []string{},
		Scripts:     []string{},
		Reports:     []string{},
		StartedAt:   time.Now(),
	}
	internal.History().BeginRun(s.RunID)
	internal.LogInfo("Run %s started for module %s (environment %s)", s.RunID, s.Module, s.Environment)

	if err := ensureDirs(g.scriptsDir, g.resultsDir); err != nil {
		return s, err
	}
	internal.LogDebug("Output directories: %s, %s", g.scriptsDir, g.resultsDir)

	if err := g.generateMasterScript(ctx, s); err != nil {
		return s, err
	}
	if err := g.generateReports(ctx); err != nil {
		return s, err
	}

	names, err := g.extractSubprograms()
	if err != nil {
		return s, err
	}
	s.Subprograms = names

	if err := g.generateSubprogramScripts(ctx, s, names); err != nil {
		return s, err
	}
	if err := g.generateCompoundScript(ctx, s); err != nil {
		return s, err
	}

	g.organizeReports(s)
	g.cleanup(s)

	s.FinishedAt = time.Now()
	if err := WriteManifest(g.resultsDir, s); err != nil {
		g.warn(s, newWarning("write manifest", filepath.Join(g.resultsDir, ManifestFileName), err))
	}
	internal.History().LogSummary(s)
	internal.LogInfo("Run %s completed: %d subprograms, %d warnings", s.RunID, len(s.Subprograms), len(s.Warnings))
	return s, nil
}

func (g *Generator) warn(s *Summary, w Warning) {
	s.Warnings = append(s.Warnings, w)
	internal.LogWarn("%s", w)
}

func (g *Generator) generateMasterScript(ctx context.Context, s *Summary) error {
	internal.LogInfo("Generating main test script...")
	inv := tool.MasterScript(g.target)
	if _, err := g.runner.Run(ctx, inv); err != nil {
		return err
	}

	master := g.path(inv.Output)
	if _, err := os.Stat(master); err != nil {
		return fmt.Errorf("%w: %s", script.ErrFileNotFound, master)
	}

	dst, err := copyInto(master, g.resultsDir)
	if err != nil {
		g.warn(s, newWarning("copy", master, err))
		return nil
	}
	internal.LogInfo("Main test script copied to %s", dst)
	return nil
}

func (g *Generator) generateReports(ctx context.Context) error {
	internal.LogInfo("Generating reports...")
	for _, kind := range tool.Reports {
		internal.LogInfo("Generating %s report...", kind.Name)
		if _, err := g.runner.Run(ctx, tool.Report(g.target, kind)); err != nil {
			return err
		}
	}
	return nil
}

// extractSubprograms copies the master script to the scratch file and reads
// the subprogram names from the copy.
func (g *Generator) extractSubprograms() ([]string, error) {
	internal.LogInfo("Extracting function names from test script...")
	master := g.path(g.target.MasterScriptName())
	scratch := g.path(g.target.ScratchScriptName())

	if err := script.CopyScratch(master, scratch); err != nil {
		return nil, err
	}
	refs, err := script.Extract(scratch)
	if err != nil {
		return nil, err
	}

	names := script.Names(refs)
	for _, n := range names {
		internal.LogDebug("Found function: %s", n)
	}
	internal.LogInfo("Extracted %d function names", len(names))
	return names, nil
}

func (g *Generator) generateSubprogramScripts(ctx context.Context, s *Summary, names []string) error {
	if len(names) == 0 {
		return nil
	}
	internal.LogInfo("Generating individual test scripts...")
	for _, name := range names {
		internal.LogInfo("Generating script for: %s", name)
		inv := tool.SubprogramScript(g.target, name)
		if _, err := g.runner.Run(ctx, inv); err != nil {
			return err
		}
		g.fileScript(s, inv.Output)
	}
	return nil
}

func (g *Generator) generateCompoundScript(ctx context.Context, s *Summary) error {
	if !g.opts.Compound {
		return nil
	}
	internal.LogInfo("Generating compound test script...")
	inv := tool.CompoundScriptCmd(g.target)
	if _, err := g.runner.Run(ctx, inv); err != nil {
		return err
	}
	g.fileScript(s, inv.Output)
	return nil
}

func (g *Generator) fileScript(s *Summary, name string) {
	dst, err := moveInto(g.path(name), g.scriptsDir)
	if err != nil {
		g.warn(s, newWarning("move", name, err))
		return
	}
	s.Scripts = append(s.Scripts, dst)
	internal.LogDebug("Moved %s to %s", name, g.scriptsDir)
}

func (g *Generator) organizeReports(s *Summary) {
	internal.LogInfo("Organizing generated files...")
	for _, kind := range tool.Reports {
		name := kind.FileName(g.target.Module)
		dst, err := moveInto(g.path(name), g.resultsDir)
		if err != nil {
			g.warn(s, newWarning("move", name, err))
			continue
		}
		s.Reports = append(s.Reports, dst)
		internal.LogDebug("Moved %s to %s", name, g.resultsDir)
	}
}

func (g *Generator) cleanup(s *Summary) {
	scratch := g.path(g.target.ScratchScriptName())
	removed, err := removeIfExists(scratch)
	if err != nil {
		g.warn(s, newWarning("remove", scratch, err))
		return
	}
	if removed {
		internal.LogDebug("Cleaned up temporary file: %s", scratch)
	}
}
