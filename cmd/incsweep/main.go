// Package main provides the entry point for the incsweep CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/incsweep/cmd/incsweep/commands"
	"github.com/Sumatoshi-tech/incsweep/pkg/version"
)

var quiet bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "incsweep",
		Short: "Incsweep - redundant #include detector for C/C++ projects",
		Long: `Incsweep finds #include directives whose removal does not change the
number of compiler diagnostics produced by a full rebuild.

Commands:
  sweep     Run the full remove-rebuild-measure sweep
  list      Enumerate include directives without building`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	rootCmd.AddCommand(commands.NewSweepCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "incsweep %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
