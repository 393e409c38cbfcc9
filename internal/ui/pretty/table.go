package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gomdtable/pkg/report"
	"github.com/yaklabco/gomdtable/pkg/table"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minCellWidth     = 3
	minLocWidth      = 16
	minHeaderWidth   = 20
	numColumnWidth   = 5
	indexColumnCount = 5 // LOCATION, COLS, ROWS, ALIGN, HEADER
	heavySeparator   = "="
	lightSeparator   = "-"
	ellipsis         = "..."
	defaultTermWidth = 100
)

// TableFormatter formats extracted tables for the terminal.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatGrid renders tbl as a pipe table with every column padded to a
// common display width and aligned the way its delimiter cell says. Columns
// are narrowed, widest first, until the grid fits the terminal.
func (t *TableFormatter) FormatGrid(tbl report.Table) string {
	columns := gridColumns(tbl)
	if columns == 0 {
		return ""
	}

	widths := t.fitWidths(cellWidths(tbl, columns))

	var builder strings.Builder

	builder.WriteString(t.formatGridRow(tbl.Header, widths, tbl.Aligns, t.styles.TableHeader))
	builder.WriteString("\n")
	builder.WriteString(t.formatDelimiterRow(widths, tbl.Aligns))
	builder.WriteString("\n")

	for _, row := range tbl.Rows {
		builder.WriteString(t.formatGridRow(row, widths, tbl.Aligns, t.styles.SummaryValue))
		builder.WriteString("\n")
	}

	return builder.String()
}

// gridColumns returns the widest row of tbl, header included.
func gridColumns(tbl report.Table) int {
	columns := max(tbl.Columns, len(tbl.Header))
	for _, row := range tbl.Rows {
		columns = max(columns, len(row))
	}
	return columns
}

// cellWidths returns the display width of the widest cell per column.
func cellWidths(tbl report.Table, columns int) []int {
	widths := make([]int, columns)
	for i := range widths {
		widths[i] = minCellWidth
	}

	measure := func(cells []string) {
		for i, cell := range cells {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	measure(tbl.Header)
	for _, row := range tbl.Rows {
		measure(row)
	}

	return widths
}

// fitWidths narrows the widest column one cell at a time until the grid
// fits the terminal or every column is at its minimum.
func (t *TableFormatter) fitWidths(widths []int) []int {
	for gridWidth(widths) > t.termWidth {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minCellWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

// gridWidth is the rendered width of a row: "| " + cell + " " per column
// plus the closing pipe.
func gridWidth(widths []int) int {
	total := 1
	for _, w := range widths {
		total += w + 3
	}
	return total
}

// formatGridRow formats one row. Missing cells render empty.
func (t *TableFormatter) formatGridRow(cells []string, widths []int, aligns []table.Align, cellStyle lipgloss.Style) string {
	var builder strings.Builder

	pipe := t.styles.TableBorder.Render("|")
	builder.WriteString(pipe)

	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = truncateString(cell, w)

		builder.WriteString(" ")
		builder.WriteString(cellStyle.Render(padAligned(cell, w, alignAt(aligns, i))))
		builder.WriteString(" ")
		builder.WriteString(pipe)
	}

	return builder.String()
}

// formatDelimiterRow formats the delimiter row with alignment colons.
func (t *TableFormatter) formatDelimiterRow(widths []int, aligns []table.Align) string {
	var builder strings.Builder

	pipe := t.styles.TableBorder.Render("|")
	builder.WriteString(pipe)

	for i, w := range widths {
		builder.WriteString(" ")
		builder.WriteString(t.styles.TableAlign.Render(delimiterCell(w, alignAt(aligns, i))))
		builder.WriteString(" ")
		builder.WriteString(pipe)
	}

	return builder.String()
}

func alignAt(aligns []table.Align, column int) table.Align {
	if column < len(aligns) {
		return aligns[column]
	}
	return table.AlignNone
}

// padAligned pads s to width display columns according to align.
func padAligned(s string, width int, align table.Align) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}

	switch align {
	case table.AlignRight:
		return strings.Repeat(" ", gap) + s
	case table.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// delimiterCell returns a delimiter cell of the given width.
func delimiterCell(width int, align table.Align) string {
	switch align {
	case table.AlignLeft:
		return ":" + strings.Repeat("-", width-1)
	case table.AlignRight:
		return strings.Repeat("-", width-1) + ":"
	case table.AlignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	default:
		return strings.Repeat("-", width)
	}
}

// FormatIndex lists tables one per line with their location, shape,
// alignments and header.
func (t *TableFormatter) FormatIndex(tables []report.Table) string {
	if len(tables) == 0 {
		return ""
	}

	widths := t.calculateIndexWidths(tables)

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %*s  %*s  %-*s  %-*s",
		widths.loc, "LOCATION",
		numColumnWidth, "COLS",
		numColumnWidth, "ROWS",
		widths.align, "ALIGN",
		widths.header, "HEADER",
	)
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	prevPath := ""
	for i, tbl := range tables {
		if i > 0 && tbl.Path != prevPath {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		prevPath = tbl.Path

		builder.WriteString(t.formatIndexRow(tbl, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

type indexWidths struct {
	loc    int
	align  int
	header int
}

func (t *TableFormatter) calculateIndexWidths(tables []report.Table) indexWidths {
	widths := indexWidths{loc: minLocWidth, align: len("ALIGN"), header: minHeaderWidth}

	for _, tbl := range tables {
		widths.loc = max(widths.loc, runewidth.StringWidth(tableLocation(tbl)))
		widths.align = max(widths.align, len(alignSummary(tbl.Aligns)))
		widths.header = max(widths.header, runewidth.StringWidth(strings.Join(tbl.Header, ", ")))
	}

	// Constrain to terminal width, header first, then location.
	if total := calculateIndexWidth(widths); total > t.termWidth {
		widths.header = max(minHeaderWidth, widths.header-(total-t.termWidth))
	}
	if total := calculateIndexWidth(widths); total > t.termWidth {
		widths.loc = max(minLocWidth, widths.loc-(total-t.termWidth))
	}

	return widths
}

func calculateIndexWidth(widths indexWidths) int {
	return widths.loc + widths.align + widths.header + 2*numColumnWidth + tablePadding*indexColumnCount
}

func (t *TableFormatter) formatSeparator(widths indexWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, calculateIndexWidth(widths)))
}

func (t *TableFormatter) formatIndexRow(tbl report.Table, widths indexWidths) string {
	loc := truncateFilePath(tableLocation(tbl), widths.loc)
	header := truncateString(strings.Join(tbl.Header, ", "), widths.header)

	return fmt.Sprintf(" %s  %*s  %*s  %s  %s",
		t.styles.Location.Render(padAligned(loc, widths.loc, table.AlignLeft)),
		numColumnWidth, strconv.Itoa(tbl.Columns),
		numColumnWidth, strconv.Itoa(len(tbl.Rows)),
		t.styles.TableAlign.Render(padAligned(alignSummary(tbl.Aligns), widths.align, table.AlignLeft)),
		header,
	)
}

func (t *TableFormatter) formatLegend() string {
	return t.styles.TableLegend.Render(" Legend: l = left | c = center | r = right | - = none")
}

// tableLocation formats "path:start-end".
func tableLocation(tbl report.Table) string {
	return fmt.Sprintf("%s:%d-%d", tbl.Path, tbl.StartLine, tbl.EndLine)
}

// alignSummary abbreviates each alignment to one letter.
func alignSummary(aligns []table.Align) string {
	letters := make([]string, len(aligns))
	for i, a := range aligns {
		switch a {
		case table.AlignLeft:
			letters[i] = "l"
		case table.AlignCenter:
			letters[i] = "c"
		case table.AlignRight:
			letters[i] = "r"
		default:
			letters[i] = "-"
		}
	}
	return strings.Join(letters, " ")
}

// truncateString truncates str to maxWidth display columns, adding "..." if
// truncated.
func truncateString(str string, maxWidth int) string {
	if runewidth.StringWidth(str) <= maxWidth {
		return str
	}
	if maxWidth <= len(ellipsis) {
		return runewidth.Truncate(str, maxWidth, "")
	}
	return runewidth.Truncate(str, maxWidth, ellipsis)
}

// truncateFilePath truncates a path, preserving the end (filename) rather
// than the beginning.
func truncateFilePath(path string, maxWidth int) string {
	if runewidth.StringWidth(path) <= maxWidth {
		return path
	}
	if maxWidth <= len(ellipsis) {
		return runewidth.TruncateLeft(path, runewidth.StringWidth(path)-maxWidth, "")
	}
	return runewidth.TruncateLeft(path, runewidth.StringWidth(path)-maxWidth+len(ellipsis), ellipsis)
}
