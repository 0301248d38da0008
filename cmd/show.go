package cmd

import (
	"path/filepath"

	"github.com/YoungY620/utgen/generator"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the manifest of the last run",
	Long:  `Reads utgen-run.json from the results directory and prints the subprograms, scripts, reports and warnings of the last run.`,
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	workDir, err := resolveWorkDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfigAndSetup(workDir)
	if err != nil {
		return err
	}

	resultsDir := cfg.Dirs.Results
	if !filepath.IsAbs(resultsDir) {
		resultsDir = filepath.Join(workDir, resultsDir)
	}

	summary, err := generator.ReadManifest(resultsDir)
	if err != nil {
		return err
	}
	generator.PrintSummary(cmd.OutOrStdout(), summary, true)
	return nil
}
