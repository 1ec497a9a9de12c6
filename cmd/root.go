// Package cmd defines and implements the CLI commands for the projectmeta
// executable.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projectmeta",
		Short: "Enriches a project list with social-preview card metadata.",
		Long: `projectmeta reads a structured list of projects, fetches each project's
homepage, extracts Open Graph and Twitter Card metadata, and writes an
enriched document pairing every project with a normalized preview card.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	cmd.AddCommand(newEnrichCmd())

	return cmd
}

// Execute is the main entry point. It exits with a non-zero status when a
// command fails; Cobra has already reported the error on stderr.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
