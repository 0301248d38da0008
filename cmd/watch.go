package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/YoungY620/utgen/generator"
	"github.com/YoungY620/utgen/internal"
	"github.com/spf13/cobra"
)

var (
	skipInitial bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch mode - re-runs the pipeline whenever the environment changes",
	Long: `Runs the pipeline, then watches the working directory and runs it again
whenever a file matching watch.patterns (default *.vce) changes. A failed run
is logged and watching continues.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	addRunFlags(watchCmd)
	watchCmd.Flags().BoolVar(&skipInitial, "skip-initial", false, "skip the initial run")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	workDir, err := resolveWorkDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfigAndSetup(workDir)
	if err != nil {
		return err
	}

	clicast, err := newClicast(cfg, workDir)
	if err != nil {
		return err
	}

	module, compound, err := resolveRunSettings(cmd, cfg)
	if err != nil {
		return err
	}

	g, err := newGenerator(cfg, workDir, module, compound, clicast)
	if err != nil {
		return err
	}

	// Acquire single instance lock
	stateDir := filepath.Join(workDir, generator.StateDirName)
	lockFile, err := generator.TryLock(stateDir)
	if err != nil {
		return err
	}
	defer generator.Unlock(lockFile)

	if cfg.History {
		internal.InitHistoryLogger(stateDir, "watch")
		defer internal.CloseHistoryLogger()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	run := func() {
		summary, err := g.Run(ctx)
		if err != nil {
			internal.LogError("Run failed: %v", cancelledError(err))
			return
		}
		generator.PrintSummary(out, summary, false)
	}

	watcher, err := generator.NewWatcher(workDir, cfg.Watch.Patterns, cfg.Watch.DebounceMs, cfg.Watch.MaxWaitMs, func(files []string) {
		internal.LogInfo("Triggered by %d changed files", len(files))
		internal.LogDebug("Changed files: %v", files)
		run()
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	generator.PrintBanner(out, generator.BannerOptions{
		WorkDir:     workDir,
		Version:     Version,
		Module:      g.Target().Module,
		Environment: g.Target().Environment,
		ToolPath:    clicast.Path(),
		Compound:    compound,
	})

	if !skipInitial {
		run()
	} else {
		internal.LogInfo("Skipping initial run (--skip-initial)")
	}

	internal.LogInfo("Watching %s for %v", workDir, cfg.Watch.Patterns)
	go func() {
		if err := watcher.Run(); err != nil {
			internal.LogError("Watcher error: %v", err)
		}
	}()

	<-ctx.Done()
	internal.LogInfo("Shutting down...")
	return nil
}
