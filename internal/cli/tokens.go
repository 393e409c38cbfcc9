package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/reporter"
)

func newTokensCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream of a Markdown file",
		Long: `Parse a Markdown file and print its token stream, one token per line,
indented by nesting level. Each line shows the token type, tag, source line
range [start,end), attributes and content. Table tokens also show their
alignments and, for cells, the row, column and source column.

Examples:
  gomdtable tokens README.md
  gomdtable tokens --disable table README.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCfg := &config.Config{}
			flags.apply(cmd, cliCfg)

			cfg, workDir, err := loadConfig(cmd, cliCfg)
			if err != nil {
				return err
			}

			_, err = execute(cmd, cfg, runnerOptionsForFile(args[0], workDir), reporter.Options{
				Format: reporter.FormatTokens,
			})
			return err
		},
	}

	addParseFlags(cmd, flags)

	return cmd
}
