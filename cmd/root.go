package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/YoungY620/utgen/internal"
	"github.com/spf13/cobra"
)

var (
	// Version is set by main.go from build flags
	Version = "dev"

	// Global flags
	pathFlag   string
	logLevel   string
	configFlag string

	// Run flags shared by generate and watch
	moduleFlag   string
	compoundFlag bool
	toolFlag     string
)

var rootCmd = &cobra.Command{
	Use:   "utgen",
	Short: "Unit test script and report generator for VectorCAST",
	Long: `utgen drives the VectorCAST clicast tool for one module: it creates the
environment test script, the management, execution and full reports, one test
script per subprogram (plus an optional compound script), and files them into
the scripts and results directories.

Commands:
  generate  Run the pipeline once (default)
  watch     Re-run the pipeline whenever the environment changes
  extract   Print the subprograms declared in a test script
  show      Print the manifest of the last run`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&pathFlag, "path", "p", "", "working directory (default: current dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: error/warn/info/debug")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", internal.DefaultConfigFile, "config file path, relative to the working directory")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

// resolveWorkDir resolves the working directory from the path flag
func resolveWorkDir() (string, error) {
	workDir := pathFlag
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	return filepath.Abs(workDir)
}

// addRunFlags registers the flags that select what a pipeline run does.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&moduleFlag, "module", "m", "", "module name (prompted when omitted)")
	cmd.Flags().BoolVar(&compoundFlag, "compound", false, "generate a separate script for compound test cases (prompted when omitted)")
	cmd.Flags().StringVar(&toolFlag, "tool", "", "path to the clicast executable (overrides tool_path)")
}
