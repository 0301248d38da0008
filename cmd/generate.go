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

var noBanner bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate test scripts and reports for a module once (default)",
	Long: `Creates the environment test script and the three reports, then one test
script per subprogram found in it, and files everything into the scripts and
results directories. This is the default command.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addRunFlags(generateCmd)
	generateCmd.Flags().BoolVar(&noBanner, "no-banner", false, "do not print the start banner")
	rootCmd.AddCommand(generateCmd)

	// Generate is the default command when no subcommand is provided
	addRunFlags(rootCmd)
	rootCmd.Flags().BoolVar(&noBanner, "no-banner", false, "do not print the start banner")
	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = runGenerate
}

func runGenerate(cmd *cobra.Command, args []string) error {
	workDir, err := resolveWorkDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfigAndSetup(workDir)
	if err != nil {
		return err
	}

	// The tool must exist before anything is asked or written
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
		internal.InitHistoryLogger(stateDir, "generate")
		defer internal.CloseHistoryLogger()
	}

	if !noBanner {
		generator.PrintBanner(cmd.OutOrStdout(), generator.BannerOptions{
			WorkDir:     workDir,
			Version:     Version,
			Module:      g.Target().Module,
			Environment: g.Target().Environment,
			ToolPath:    clicast.Path(),
			Compound:    compound,
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := g.Run(ctx)
	if err != nil {
		internal.History().LogError("Run failed", err)
		return cancelledError(err)
	}

	generator.PrintSummary(cmd.OutOrStdout(), summary, false)
	return nil
}
