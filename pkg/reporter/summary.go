package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
	"github.com/yaklabco/gomdtable/pkg/report"
	"github.com/yaklabco/gomdtable/pkg/table"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators.
	fileColWidth      = 58 // Width of the file path column.
	alignColWidth     = 12 // Width of the alignment name column.
	numColWidth       = 7  // Width of numeric columns.
	maxFilePathLength = 56 // Maximum display width of a path before truncation.
)

// padRight pads a string to the given display width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// padLeft pads a string to the given display width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

// SummaryRenderer formats a report as per-file and alignment tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, rep *report.Report) error {
	if !rep.Totals.HasTables() {
		fmt.Fprintln(r.out, r.styles.Dim.Render(fmt.Sprintf("No tables found (%d files processed)", rep.Totals.Files)))
		return nil
	}

	r.renderFileTable(rep.ByFile)
	fmt.Fprintln(r.out)
	r.renderAlignTable(rep.Totals)
	fmt.Fprintln(r.out)
	r.renderTotals(rep.Totals)

	return nil
}

func (r *SummaryRenderer) renderFileTable(files []report.FileSummary) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Tables", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Rows", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Cells", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Cols", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := file.Path
		if width := runewidth.StringWidth(path); width > maxFilePathLength {
			path = runewidth.TruncateLeft(path, width-maxFilePathLength+1, "…")
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			r.styles.FilePath.Render(padRight(path, fileColWidth)),
			padLeft(strconv.Itoa(file.Tables), numColWidth),
			padLeft(strconv.Itoa(file.Rows), numColWidth),
			padLeft(strconv.Itoa(file.Cells), numColWidth),
			padLeft(strconv.Itoa(file.MaxColumns), numColWidth),
		)
	}
}

// renderAlignTable lists how many delimiter columns use each alignment.
func (r *SummaryRenderer) renderAlignTable(totals report.Totals) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Alignments"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, align := range []table.Align{table.AlignNone, table.AlignLeft, table.AlignCenter, table.AlignRight} {
		name := align.String()
		fmt.Fprintf(r.out, "%s %s\n",
			r.styles.TableAlign.Render(padRight(name, alignColWidth)),
			padLeft(strconv.Itoa(totals.Aligns[name]), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals report.Totals) {
	tableWord := "tables"
	if totals.Tables == 1 {
		tableWord = "table"
	}
	fileWord := "files"
	if totals.FilesWithTables == 1 {
		fileWord = "file"
	}

	line := fmt.Sprintf("%d %s, %d rows, %d cells in %d %s",
		totals.Tables, tableWord, totals.Rows, totals.Cells, totals.FilesWithTables, fileWord)

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}
