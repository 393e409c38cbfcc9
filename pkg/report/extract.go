package report

import (
	"strings"

	"github.com/yaklabco/gomdtable/pkg/mdast"
	"github.com/yaklabco/gomdtable/pkg/table"
)

// Extract returns the tables in a flat token stream, in document order.
// Cell texts are the plain text of the cell's inline tokens, joined with a
// space when the cell holds more than one block.
func Extract(path string, tokens []*mdast.Token) []Table {
	var tables []Table

	for i, tok := range tokens {
		if tok.Type != mdast.TypeTableOpen {
			continue
		}
		closeIdx := mdast.FindClose(tokens, i)
		if closeIdx < 0 {
			continue
		}
		tables = append(tables, extractTable(path, tokens[i:closeIdx+1]))
	}

	return tables
}

func extractTable(path string, tokens []*mdast.Token) Table {
	open := tokens[0]
	tbl := Table{Path: path, Level: open.Level}

	if meta, ok := open.Meta.(*table.Meta); ok {
		tbl.Aligns = meta.Aligns
		tbl.Columns = len(meta.Aligns)
	}
	if open.Map != nil {
		tbl.StartLine = open.Map.Start + 1
		tbl.EndLine = open.Map.End
	}

	var (
		row    []string
		parts  []string
		header = true
	)

	for _, tok := range tokens[1:] {
		switch tok.Type {
		case mdast.TypeTROpen:
			row = nil
		case mdast.TypeTHOpen, mdast.TypeTDOpen:
			parts = nil
		case mdast.TypeInline:
			if text := mdast.PlainText(tok); text != "" {
				parts = append(parts, text)
			}
		case mdast.TypeTHClose, mdast.TypeTDClose:
			row = append(row, strings.Join(parts, " "))
		case mdast.TypeTRClose:
			if header {
				tbl.Header = row
				header = false
				continue
			}
			tbl.Rows = append(tbl.Rows, row)
		default:
		}
	}

	tbl.Ragged = raggedRows(tbl)

	return tbl
}

// raggedRows reports body rows with a cell count other than the column
// count. Rows follow the header and delimiter lines one per line.
func raggedRows(tbl Table) []RaggedRow {
	if tbl.Columns == 0 || tbl.StartLine == 0 {
		return nil
	}

	var ragged []RaggedRow
	for i, row := range tbl.Rows {
		if len(row) != tbl.Columns {
			ragged = append(ragged, RaggedRow{Line: tbl.StartLine + 2 + i, Cells: len(row)})
		}
	}
	return ragged
}
