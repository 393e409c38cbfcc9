package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/reporter"
)

type renderFlags struct {
	parse          parseFlags
	walk           walkFlags
	format         string
	outputDir      string
	xhtml          bool
	breaks         bool
	langPrefix     string
	detectLanguage bool
	compact        bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render Markdown files to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addParseFlags(cmd, &flags.parse)
	addWalkFlags(cmd, &flags.walk)
	addRenderFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Render Markdown files to HTML.

By default, renders all .md and .markdown files in the current directory
and subdirectories to standard output. With --output-dir, each file is
written as .html below the directory, mirroring the source tree. Files
whose rendered output is unchanged are not rewritten.

Examples:
  gomdtable render README.md                 # Print HTML for one file
  gomdtable render docs/ -o site/            # Write site/**/*.html
  gomdtable render --format json docs/       # Table report as JSON
  gomdtable render --disable table README.md # Render without tables`

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatHTML),
		"output format: html, tokens, json, tables")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "write .html files below this directory")
	cmd.Flags().BoolVar(&flags.xhtml, "xhtml", false, "close void elements XHTML style (<br />)")
	cmd.Flags().BoolVar(&flags.breaks, "breaks", false, "render soft line breaks as <br>")
	cmd.Flags().StringVar(&flags.langPrefix, "lang-prefix", config.DefaultLangPrefix,
		"class prefix for fenced code languages")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"detect the language of fences without an info string")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}

// cliConfig builds the CLI configuration layer from the flags the user set.
func (f *renderFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	f.parse.apply(cmd, cfg)
	f.walk.apply(cmd, cfg)

	if cmd.Flags().Changed("format") {
		cfg.Output.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Output.Dir = f.outputDir
	}
	if cmd.Flags().Changed("xhtml") {
		cfg.Render.XHTML = config.Bool(f.xhtml)
	}
	if cmd.Flags().Changed("breaks") {
		cfg.Render.Breaks = config.Bool(f.breaks)
	}
	if cmd.Flags().Changed("lang-prefix") {
		cfg.Render.LangPrefix = f.langPrefix
	}
	if cmd.Flags().Changed("detect-language") {
		cfg.Render.DetectLanguage = config.Bool(f.detectLanguage)
	}

	return cfg
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	if !config.OutputFormat(flags.format).IsValid() {
		return withExitCode(ExitInvalidUsage,
			fmt.Errorf("invalid format %q: must be html, tokens, json or tables", flags.format))
	}

	cfg, workDir, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Output.Format))
	if err != nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format: %w", err))
	}

	runOpts := flags.walk.runOptions(args, workDir, cfg)
	runOpts.Render = format == reporter.FormatHTML
	runOpts.KeepDocuments = format == reporter.FormatTokens
	runOpts.OutputDir = cfg.Output.Dir

	_, err = execute(cmd, cfg, runOpts, reporter.Options{
		Format:      format,
		Compact:     flags.compact,
		ShowSummary: !flags.walk.quiet && (cfg.Output.Dir != "" || format == reporter.FormatTables),
	})
	return err
}
