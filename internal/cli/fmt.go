package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/reporter"
)

// ErrUnformatted is returned by fmt --check when a table needs realigning.
var ErrUnformatted = errors.New("some tables are not formatted")

type fmtFlags struct {
	parse parseFlags
	walk  walkFlags
	write bool
	diff  bool
	check bool
}

func newFmtCommand() *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Realign the pipe tables of Markdown files",
		Long: `Realign every pipe table outside blockquotes and lists: cells are
padded to their column width, the delimiter row is rebuilt from the column
alignments and each row gets outer pipes. Cell text is never changed, so
the rendered HTML stays the same.

By default the files that need formatting are listed. With --diff the
changes are shown as unified diffs, and with --write the files are
replaced in place.

Examples:
  gomdtable fmt                  # List unformatted files
  gomdtable fmt -d README.md     # Show what would change
  gomdtable fmt -w docs/         # Rewrite files in place
  gomdtable fmt --check          # Exit 1 when anything is unformatted`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, flags)
		},
	}

	addParseFlags(cmd, &flags.parse)
	addWalkFlags(cmd, &flags.walk)

	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "show changes as unified diffs")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with status 1 if any file needs formatting")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, flags *fmtFlags) error {
	cliCfg := &config.Config{}
	flags.parse.apply(cmd, cliCfg)
	flags.walk.apply(cmd, cliCfg)

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	runOpts := flags.walk.runOptions(args, workDir, cfg)
	runOpts.Reformat = true
	runOpts.WriteBack = flags.write

	repOpts := reporter.Options{
		Format:      reporter.FormatList,
		ShowSummary: !flags.walk.quiet,
	}
	if flags.diff {
		repOpts.Format = reporter.FormatDiff
	}

	unformatted, err := execute(cmd, cfg, runOpts, repOpts)
	if err != nil {
		return err
	}

	if flags.check && !flags.write && unformatted > 0 {
		return ErrUnformatted
	}
	return nil
}
