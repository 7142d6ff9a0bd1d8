// Command sourcectl validates and scores routing rules offline against YAML fixtures.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:          "sourcectl",
		Short:        "Validate and score sourcing rules",
		Long:         `Offline tooling for sourcing rules: check a rule's configuration and rank locations for an item from fixture files.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(scoreCmd(&logLevel))
	return rootCmd
}
