package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

// DiffReporter reports the files whose tables need realigning, either as
// unified diffs or, in list mode, one path per line.
type DiffReporter struct {
	opts     Options
	styles   *pretty.Styles
	listOnly bool
}

// NewDiffReporter creates a reporter that writes a diff per file.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// NewListReporter creates a reporter that writes only the file paths.
func NewListReporter(opts Options) *DiffReporter {
	r := NewDiffReporter(opts)
	r.listOnly = true
	return r
}

// Report implements Reporter. It returns the number of files that needed
// formatting.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	if result == nil {
		return 0, nil
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	writeFileErrors(r.opts, result)

	var additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil || file.Formatted == nil {
			continue
		}

		path := displayPath(file.Path, r.opts.WorkingDir)
		if r.listOnly {
			fmt.Fprintln(bw, r.styles.FilePath.Render(path))
			continue
		}
		if file.Diff.HasChanges() {
			additions += file.Diff.Additions
			deletions += file.Diff.Deletions
			r.writeDiff(bw, path, file.Diff)
		}
	}

	if r.opts.ShowSummary && r.opts.ErrorWriter != nil {
		errStyles := pretty.NewStyles(pretty.IsColorEnabled(r.opts.Color, r.opts.ErrorWriter))
		fmt.Fprint(r.opts.ErrorWriter, errStyles.FormatReformatSummary(result.Stats, additions, deletions))
	}

	return result.Stats.FilesUnformatted, nil
}

// writeDiff writes one file's diff in git style under its display path.
func (r *DiffReporter) writeDiff(w io.Writer, path string, diff *fix.Diff) {
	path = diffPath(path)
	fmt.Fprintln(w, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(w, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(w, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(w, r.styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.LineAdd:
				fmt.Fprintln(w, r.styles.DiffAdd.Render("+"+line.Text))
			case fix.LineRemove:
				fmt.Fprintln(w, r.styles.DiffRemove.Render("-"+line.Text))
			case fix.LineContext:
				fmt.Fprintln(w, r.styles.DiffContext.Render(" "+line.Text))
			}
		}
	}
}
