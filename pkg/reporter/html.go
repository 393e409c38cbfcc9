package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdtable/pkg/runner"
)

// HTMLReporter writes rendered HTML. Files already written to an output
// directory are not repeated on the writer.
type HTMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	writeFileErrors(r.opts, result)

	// Mark file boundaries when several documents share one stream.
	var inline []runner.FileOutcome
	for _, file := range result.Files {
		if file.Error == nil && file.OutputPath == "" {
			inline = append(inline, file)
		}
	}

	for _, file := range inline {
		if len(inline) > 1 {
			fmt.Fprintf(r.bw, "<!-- %s -->\n", displayPath(file.Path, r.opts.WorkingDir))
		}
		fmt.Fprint(r.bw, file.HTML)
	}

	writeSummary(r.opts, result.Stats)

	return result.Stats.Tables, nil
}
