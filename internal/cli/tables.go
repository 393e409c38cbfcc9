package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/report"
	"github.com/yaklabco/gomdtable/pkg/reporter"
)

// Layouts accepted by tables --format.
const (
	tablesFormatGrid    = "grid"
	tablesFormatIndex   = "index"
	tablesFormatJSON    = "json"
	tablesFormatSummary = "summary"
)

type tablesFlags struct {
	parse   parseFlags
	walk    walkFlags
	format  string
	sortBy  string
	asc     bool
	compact bool
}

func newTablesCommand() *cobra.Command {
	flags := &tablesFlags{}

	cmd := &cobra.Command{
		Use:   "tables [paths...]",
		Short: "List the tables found in Markdown files",
		Long: `Find every pipe table in the given Markdown files and print it.

The default grid layout redraws each table with aligned columns under a
path:start-end heading. The index layout lists one table per line, json
writes the full report and summary shows per-file and alignment counts.

Examples:
  gomdtable tables                        # Grids for the current directory
  gomdtable tables --format index docs/   # One line per table
  gomdtable tables --format json > t.json # Machine-readable report
  gomdtable tables --format summary --sort cells`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args, flags)
		},
	}

	addParseFlags(cmd, &flags.parse)
	addWalkFlags(cmd, &flags.walk)

	cmd.Flags().StringVarP(&flags.format, "format", "f", tablesFormatGrid, "layout: grid, index, json, summary")
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(report.SortByCount),
		"order of the per-file summary: count, alpha, cells")
	cmd.Flags().BoolVar(&flags.asc, "asc", false, "sort the per-file summary in ascending order")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	return cmd
}

func runTables(cmd *cobra.Command, args []string, flags *tablesFlags) error {
	repOpts := reporter.Options{
		Compact:  flags.compact,
		SortBy:   report.SortField(flags.sortBy),
		SortDesc: !flags.asc,
	}

	switch flags.format {
	case tablesFormatGrid:
		repOpts.Format = reporter.FormatTables
	case tablesFormatIndex:
		repOpts.Format = reporter.FormatTables
		repOpts.Index = true
	case tablesFormatJSON:
		repOpts.Format = reporter.FormatJSON
	case tablesFormatSummary:
		repOpts.Format = reporter.FormatSummary
	default:
		return withExitCode(ExitInvalidUsage,
			fmt.Errorf("invalid format %q: must be grid, index, json or summary", flags.format))
	}

	if !repOpts.SortBy.IsValid() {
		return withExitCode(ExitInvalidUsage,
			fmt.Errorf("invalid sort %q: must be count, alpha or cells", flags.sortBy))
	}

	cliCfg := &config.Config{}
	flags.parse.apply(cmd, cliCfg)
	flags.walk.apply(cmd, cliCfg)

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	repOpts.ShowSummary = !flags.walk.quiet && repOpts.Format == reporter.FormatTables

	_, err = execute(cmd, cfg, flags.walk.runOptions(args, workDir, cfg), repOpts)
	return err
}
