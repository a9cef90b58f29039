// Package cmd defines and implements the CLI commands for the spiderling
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spiderling",
		Short: "A concurrent, depth-bounded web crawler.",
		Long: `spiderling fetches a set of seed URLs, extracts headings and links from
each page, and recursively follows discovered links up to a configured depth,
deduplicating visited URLs and emitting one aggregated JSON result.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cmd.AddCommand(newCrawlCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
