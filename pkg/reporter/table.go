package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
	"github.com/yaklabco/gomdtable/pkg/report"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter draws the extracted tables as aligned grids, or lists them
// one per line in index mode.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	writeFileErrors(r.opts, result)

	var tables []report.Table
	for _, file := range result.Files {
		for _, tbl := range file.Tables {
			tbl.Path = displayPath(tbl.Path, r.opts.WorkingDir)
			tables = append(tables, tbl)
		}
	}

	if len(tables) == 0 {
		writeSummary(r.opts, result.Stats)
		return 0, nil
	}

	if r.opts.Index {
		fmt.Fprint(r.bw, r.formatter.FormatIndex(tables))
	} else {
		r.reportGrids(tables)
	}

	writeSummary(r.opts, result.Stats)

	return len(tables), nil
}

// reportGrids writes every table under a "path:start-end" heading.
func (r *TableReporter) reportGrids(tables []report.Table) {
	for i, tbl := range tables {
		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprintf(r.bw, "%s%s\n",
			r.styles.FilePath.Render(tbl.Path),
			r.styles.Location.Render(fmt.Sprintf(":%d-%d", tbl.StartLine, tbl.EndLine)),
		)
		fmt.Fprint(r.bw, r.formatter.FormatGrid(tbl))
		for _, row := range tbl.Ragged {
			fmt.Fprintln(r.bw, r.styles.Warning.Render(
				fmt.Sprintf("line %d: %d cells, expected %d", row.Line, row.Cells, tbl.Columns)))
		}
	}
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
