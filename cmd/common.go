package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/YoungY620/utgen/generator"
	"github.com/YoungY620/utgen/internal"
	"github.com/YoungY620/utgen/tool"
	"github.com/spf13/cobra"
)

// loadConfigAndSetup loads config and sets up logging
func loadConfigAndSetup(workDir string) (*internal.Config, error) {
	path := configFlag
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	// Set log level: flag takes precedence over config
	if logLevel != "" {
		internal.SetLogLevel(logLevel)
	} else {
		internal.SetLogLevel(cfg.LogLevel)
	}
	internal.LogDebug("Config loaded from %s:\n%s", path, cfg.PrettyYAML())

	if toolFlag != "" {
		cfg.ToolPath = toolFlag
	}
	return cfg, nil
}

// resolveRunSettings picks the module and compound flag from, in order:
// command-line flags, the config file, then prompts on stdin. Prompts read
// piped input as well as a terminal; input that ends before an answer is an
// error.
func resolveRunSettings(cmd *cobra.Command, cfg *internal.Config) (string, bool, error) {
	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	module := strings.TrimSpace(moduleFlag)
	if module == "" {
		var err error
		if module, err = p.askModule(); err != nil {
			if errors.Is(err, errInputClosed) {
				return "", false, fmt.Errorf("%w: %w", generator.ErrEmptyModule, err)
			}
			return "", false, err
		}
	}

	switch {
	case cmd.Flags().Changed("compound"):
		return module, compoundFlag, nil
	case cfg.Compound != nil:
		return module, *cfg.Compound, nil
	}

	compound, err := p.askYesNo("Do you want separate test scripts for Compound Test Cases? (Y/N): ")
	if err != nil {
		return "", false, err
	}
	return module, compound, nil
}

// newClicast resolves the configured tool or explains how to fix the path.
func newClicast(cfg *internal.Config, workDir string) (*tool.Tool, error) {
	clicast, err := tool.New(cfg.ToolPath, workDir)
	if err != nil {
		if errors.Is(err, tool.ErrToolNotFound) {
			return nil, fmt.Errorf("%w\nPlease ensure VectorCAST is properly installed or set tool_path / --tool", err)
		}
		return nil, err
	}
	internal.LogDebug("Using clicast at %s", clicast.Path())
	return clicast, nil
}

func newGenerator(cfg *internal.Config, workDir, module string, compound bool, runner tool.Runner) (*generator.Generator, error) {
	return generator.New(generator.Options{
		WorkDir:    workDir,
		Module:     module,
		Compound:   compound,
		ScriptsDir: cfg.Dirs.Scripts,
		ResultsDir: cfg.Dirs.Results,
	}, runner)
}

// cancelledError turns an interrupted run into the user-facing message.
func cancelledError(err error) error {
	if errors.Is(err, tool.ErrCancelled) {
		return errors.New("operation cancelled by user")
	}
	return err
}
