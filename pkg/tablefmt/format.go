// Package tablefmt realigns the pipe tables of a Markdown document.
//
// Every cell is padded to its column width, the delimiter row is rebuilt
// from the column alignments and each row gets outer pipes. Cell text,
// escapes included, is kept byte for byte, so a reformatted document
// produces the same token stream as the original.
package tablefmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/mdast"
	"github.com/yaklabco/gomdtable/pkg/table"
)

// minWidth is the narrowest column, the shortest delimiter that can carry
// both alignment colons.
const minWidth = 3

// Edits returns one edit per table line of src that is not already
// formatted. Only tables outside containers are touched: a table inside a
// blockquote or list item shares its lines with the container markers.
func Edits(src string, tokens []*mdast.Token) []fix.Edit {
	lines := splitSourceLines(src)

	var b fix.Builder
	for _, tok := range tokens {
		if tok.Type != mdast.TypeTableOpen || tok.Level != 0 || tok.Map == nil {
			continue
		}
		meta, ok := tok.Meta.(*table.Meta)
		if !ok || tok.Map.End > len(lines) {
			continue
		}

		span := lines[tok.Map.Start:tok.Map.End]
		raw := make([]string, len(span))
		for i, line := range span {
			raw[i] = line.text
		}

		for i, formatted := range Rows(raw, meta.Aligns) {
			if formatted != span[i].text {
				b.Replace(span[i].start, span[i].start+len(span[i].text), formatted)
			}
		}
	}

	return b.Edits()
}

// Rows formats the raw lines of one table: the header, the delimiter row
// and the body rows. Rows keep their own cell count.
func Rows(raw []string, aligns []table.Align) []string {
	if len(raw) < 2 {
		return raw
	}

	cells := make([][]string, len(raw))
	widths := make([]int, len(aligns))
	for i, line := range raw {
		if i == 1 {
			continue
		}
		cells[i] = table.SplitLine(line)
		for col, cell := range cells[i] {
			if col >= len(widths) {
				widths = append(widths, minWidth)
			}
			widths[col] = max(widths[col], minWidth, runewidth.StringWidth(cell))
		}
	}
	for col := range widths {
		widths[col] = max(widths[col], minWidth)
	}

	out := make([]string, len(raw))
	for i := range raw {
		if i == 1 {
			out[i] = delimiterRow(aligns, widths)
			continue
		}
		out[i] = row(cells[i], aligns, widths)
	}

	return out
}

func row(cells []string, aligns []table.Align, widths []int) string {
	var b strings.Builder
	b.WriteByte('|')
	for col, cell := range cells {
		align := table.AlignNone
		if col < len(aligns) {
			align = aligns[col]
		}
		b.WriteByte(' ')
		b.WriteString(pad(cell, widths[col], align))
		b.WriteString(" |")
	}
	return b.String()
}

func delimiterRow(aligns []table.Align, widths []int) string {
	var b strings.Builder
	b.WriteByte('|')
	for col, align := range aligns {
		width := widths[col]
		b.WriteByte(' ')
		switch align {
		case table.AlignLeft:
			b.WriteString(":" + strings.Repeat("-", width-1))
		case table.AlignRight:
			b.WriteString(strings.Repeat("-", width-1) + ":")
		case table.AlignCenter:
			b.WriteString(":" + strings.Repeat("-", width-2) + ":")
		default:
			b.WriteString(strings.Repeat("-", width))
		}
		b.WriteString(" |")
	}
	return b.String()
}

func pad(cell string, width int, align table.Align) string {
	gap := width - runewidth.StringWidth(cell)
	switch align {
	case table.AlignRight:
		return strings.Repeat(" ", gap) + cell
	case table.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}

// sourceLine is one line of the source without its terminator.
type sourceLine struct {
	text  string
	start int
}

func splitSourceLines(src string) []sourceLine {
	var lines []sourceLine
	for start := 0; start < len(src); {
		end := strings.IndexByte(src[start:], '\n')
		next := start + end + 1
		if end < 0 {
			end = len(src) - start
			next = len(src)
		}
		text := strings.TrimSuffix(src[start:start+end], "\r")
		lines = append(lines, sourceLine{text: text, start: start})
		start = next
	}
	return lines
}
