// Package reporter writes run results in the supported output formats.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
	"github.com/yaklabco/gomdtable/pkg/report"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of tables reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer   Renderer
	reportOpts report.Options
	opts       Options
}

// Report implements Reporter by summarizing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	if result == nil {
		result = &runner.Result{}
	}

	writeFileErrors(f.opts, result)

	rep := report.Summarize(result.FileTables(), f.reportOpts)
	if err := f.renderer.Render(ctx, rep); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return rep.Totals.Tables, nil
}

// newRendererFacade creates a facade wrapping a Renderer.
func newRendererFacade(renderer Renderer, opts Options, includeTables bool) *reporterFacade {
	sortBy := opts.SortBy
	if !sortBy.IsValid() {
		sortBy = report.SortByCount
	}

	return &reporterFacade{
		renderer: renderer,
		opts:     opts,
		reportOpts: report.Options{
			IncludeTables: includeTables,
			IncludeByFile: true,
			SortBy:        sortBy,
			SortDesc:      opts.SortDesc,
			WorkingDir:    opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatHTML
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	case FormatTokens:
		return NewTokensReporter(opts), nil
	case FormatJSON:
		return newRendererFacade(NewJSONRenderer(opts), opts, true), nil
	case FormatTables:
		return NewTableReporter(opts), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts, false), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatList:
		return NewListReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// writeFileErrors reports failed files on the error writer.
func writeFileErrors(opts Options, result *runner.Result) {
	if opts.ErrorWriter == nil {
		return
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter))
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprint(opts.ErrorWriter, styles.FormatFileError(displayPath(file.Path, opts.WorkingDir), file.Error))
		}
	}
}

// writeSummary writes the one-line run summary to the error writer.
func writeSummary(opts Options, stats runner.Stats) {
	if !opts.ShowSummary || opts.ErrorWriter == nil {
		return
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.ErrorWriter))
	fmt.Fprint(opts.ErrorWriter, styles.FormatSummaryOneLine(stats))
}

// displayPath makes path relative to workDir when it lies below workDir.
// Other paths are returned as given.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// diffPath returns path in the slash-separated, root-relative form used in
// diff headers, so an absolute path reads a/tmp/doc.md rather than a//tmp/doc.md.
func diffPath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "/")
}
