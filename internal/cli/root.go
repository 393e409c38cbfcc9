// Package cli provides the Cobra command structure for gomdtable.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdtable command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var logFormat string
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdtable",
		Short: "Markdown block parser with GitHub-style pipe tables",
		Long: `gomdtable parses Markdown with a pluggable block rule chain and
recognizes GitHub-style pipe tables, including alignment, escaped pipes and
tables nested in blockquotes and lists.

It renders documents to HTML, dumps their token streams, lists every
table it finds as aligned grids or JSON, and realigns table source in place.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if debug {
				level = "debug"
			}

			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level, logFormat)
			logging.SetDefault(logger)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatText,
		"log output format: text, json, logfmt")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newTablesCommand())
	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd)

	return rootCmd
}
