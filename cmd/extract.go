package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/YoungY620/utgen/script"
	"github.com/spf13/cobra"
)

var extractJSON bool

var extractCmd = &cobra.Command{
	Use:   "extract <script.tst>",
	Short: "Print the subprograms declared in a test script",
	Long:  `Reads a clicast test script and prints the name of every "-- Subprogram:" marker in file order, one per line.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print a JSON array instead of one name per line")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	refs, err := script.Extract(args[0])
	if err != nil {
		return err
	}
	names := script.Names(refs)

	out := cmd.OutOrStdout()
	if extractJSON {
		enc := json.NewEncoder(out)
		return enc.Encode(names)
	}
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
	return nil
}
