package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/internal/configloader"
	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/markdown"
	"github.com/yaklabco/gomdtable/pkg/reporter"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

// parseFlags are the parser settings shared by every command that reads
// Markdown.
type parseFlags struct {
	flavor    string
	normalize string
	disable   []string
	nesting   int
}

func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorGFM), "inline flavor: gfm, commonmark")
	cmd.Flags().StringVar(&flags.normalize, "normalize", string(config.NormalizeNone),
		"Unicode normalization of the source: none, nfc")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "block rules to disable (see 'gomdtable rules')")
	cmd.Flags().IntVar(&flags.nesting, "max-nesting", config.DefaultMaxNesting, "maximum block nesting depth")

	setFlagGroup(cmd, flagGroupParse, "flavor", "normalize", "disable", "max-nesting")
}

// apply copies the flags the user set into the CLI config layer.
func (f *parseFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if cmd.Flags().Changed("normalize") {
		cfg.Normalize = config.Normalize(f.normalize)
	}
	if cmd.Flags().Changed("disable") {
		cfg.Rules.Disable = f.disable
	}
	if cmd.Flags().Changed("max-nesting") {
		cfg.MaxNesting = f.nesting
	}
}

// walkFlags control file discovery and the worker pool.
type walkFlags struct {
	ignore         []string
	include        []string
	extensions     []string
	jobs           int
	followSymlinks bool
	quiet          bool
}

func addWalkFlags(cmd *cobra.Command, flags *walkFlags) {
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only process files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", runner.DefaultExtensions(), "file extensions to process")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symbolic links while walking")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress the run summary")

	setFlagGroup(cmd, flagGroupWalk, "ignore", "include", "ext", "jobs", "follow-symlinks", "quiet")
}

func (f *walkFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = f.jobs
	}
}

// runOptions builds runner options from the resolved configuration.
func (f *walkFlags) runOptions(args []string, workDir string, cfg *config.Config) runner.Options {
	return runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     f.extensions,
		IncludeGlobs:   f.include,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: f.followSymlinks,
		Jobs:           cfg.Jobs,
	}
}

// commandContext returns the command context, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// colorMode returns the --color flag value, looking through the persistent
// flags of parent commands.
func colorMode(cmd *cobra.Command) string {
	flag := cmd.Flag("color")
	if flag == nil {
		return string(config.ColorAuto)
	}
	return flag.Value.String()
}

// loadConfig resolves the configuration with cliCfg as the highest layer.
// It returns the config and the working directory.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", withExitCode(ExitInternalError, fmt.Errorf("get config flag: %w", err))
	}

	if cmd.Flags().Changed("color") {
		cliCfg.Color = config.ColorMode(colorMode(cmd))
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		KnownRules:   knownRuleNames(),
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", withExitCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, workDir, nil
}

// engineOptions maps the configuration onto engine options.
func engineOptions(cfg *config.Config) markdown.Options {
	opts := markdown.DefaultOptions()

	if cfg.Flavor != "" {
		opts.Flavor = string(cfg.Flavor)
	}
	if cfg.Normalize != "" {
		opts.Normalize = string(cfg.Normalize)
	}
	if cfg.MaxNesting > 0 {
		opts.MaxNesting = cfg.MaxNesting
	}
	if cfg.Render.LangPrefix != "" {
		opts.Render.LangPrefix = cfg.Render.LangPrefix
	}

	opts.DisabledRules = cfg.Rules.Disable
	opts.Render.XHTML = config.BoolValue(cfg.Render.XHTML)
	opts.Render.Breaks = config.BoolValue(cfg.Render.Breaks)
	opts.Render.DetectLanguage = config.BoolValue(cfg.Render.DetectLanguage)

	return opts
}

// newEngine creates the Markdown engine for cfg.
func newEngine(cfg *config.Config) (*markdown.Engine, error) {
	engine, err := markdown.New(engineOptions(cfg))
	if err != nil {
		return nil, withExitCode(ExitInternalError, fmt.Errorf("create engine: %w", err))
	}
	return engine, nil
}

// knownRuleNames lists the block rules of a default engine, in chain order.
func knownRuleNames() []string {
	engine, err := markdown.New(markdown.DefaultOptions())
	if err != nil {
		return nil
	}

	rules := engine.Rules()
	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		names = append(names, rule.Name)
	}
	return names
}

// execute runs the pipeline and reports the result. It returns the count
// from the reporter. Per-file failures are reported by the reporter and
// surface as ErrFilesFailed.
func execute(cmd *cobra.Command, cfg *config.Config, runOpts runner.Options, repOpts reporter.Options) (int, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	engine, err := newEngine(cfg)
	if err != nil {
		return 0, err
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(engine).Run(ctx, runOpts)
	if err != nil {
		return 0, withExitCode(ExitIOError, errors.Join(errors.New("run failed"), err))
	}

	repOpts.Writer = cmd.OutOrStdout()
	repOpts.ErrorWriter = cmd.ErrOrStderr()
	repOpts.Color = string(cfg.Color)
	repOpts.WorkingDir = runOpts.WorkingDir

	rep, err := reporter.New(repOpts)
	if err != nil {
		return 0, withExitCode(ExitInternalError, fmt.Errorf("create reporter: %w", err))
	}

	count, err := rep.Report(ctx, result)
	if err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return 0, withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return count, ErrFilesFailed
	}

	return count, nil
}

// runnerOptionsForFile processes exactly one file, whatever its extension.
func runnerOptionsForFile(path, workDir string) runner.Options {
	return runner.Options{
		Paths:         []string{path},
		WorkingDir:    workDir,
		Extensions:    []string{filepath.Ext(path)},
		Jobs:          1,
		KeepDocuments: true,
	}
}
