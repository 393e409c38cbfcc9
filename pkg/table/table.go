package table

import (
	"strings"

	"github.com/yaklabco/gomdtable/pkg/block"
	"github.com/yaklabco/gomdtable/pkg/mdast"
)

// Name is the rule name under which the recognizer is registered.
const Name = "table"

// codeIndent is the indentation, relative to the block indent, at which a
// line becomes indented code.
const codeIndent = 4

// Host is the block parser state the recognizer works on.
// *block.State implements it.
type Host interface {
	// Source returns the full document text.
	Source() string

	// LineAt returns the line at index n of the host's line table.
	LineAt(n int) block.Line

	// BlockIndent returns the required block indent in columns.
	BlockIndent() int

	// Push appends a block token at the current nesting level.
	Push(typ mdast.TokenType, tag string, nesting mdast.Nesting) *mdast.Token

	// Append adds tokens produced by TokenizeView.
	Append(tokens ...*mdast.Token)

	// TokenizeView runs the block rule chain over view at the current level.
	TokenizeView(view block.View, parentType string) []*mdast.Token

	// Map converts a host-relative line range into a document line range.
	Map(start, end int) *mdast.LineRange

	// SetLine moves the line cursor.
	SetLine(n int)
}

// CellMeta is attached to every th_open and td_open token.
type CellMeta struct {
	// Row is 0 for the header row and counts body rows from 1.
	Row int

	// Column is the 0-based cell index within its row.
	Column int

	// SourceColumn is the 1-based byte column of the cell content in the
	// document line, container markers included.
	SourceColumn int
}

// Meta is attached to the table_open token.
type Meta struct {
	// Aligns holds one alignment per delimiter column.
	Aligns []Align
}

// Register installs the table rule before the paragraph rule. Tables may
// interrupt paragraphs and reference definitions.
func Register(parser *block.Parser) error {
	return parser.Ruler().Before(block.RuleParagraph, Name, Rule, block.ParentParagraph, block.RuleReference)
}

// Rule adapts Recognize to block.RuleFunc.
func Rule(s *block.State, startLine, endLine int, silent bool) bool {
	return Recognize(s, startLine, endLine, silent)
}

// Recognize tries to parse a table whose header is at startLine. Lines at or
// after endLine are never read. In silent mode it only reports whether a
// table starts here; no tokens are pushed and the cursor is left alone.
// On success the cursor moves to the first line after the table.
func Recognize(host Host, startLine, endLine int, silent bool) bool {
	// Header and delimiter rows are both required.
	if startLine+2 > endLine {
		return false
	}

	blkIndent := host.BlockIndent()

	delimiter := host.LineAt(startLine + 1)
	if delimiter.Indent() < blkIndent || delimiter.Indent()-blkIndent >= codeIndent {
		return false
	}

	delimiterText := strings.TrimSpace(delimiter.Text)
	if delimiterText == "" {
		return false
	}
	switch delimiterText[0] {
	case '|', '-', ':':
	default:
		return false
	}
	if !isDelimiterRow(delimiterText) {
		return false
	}

	aligns, ok := ParseDelimiter(delimiterText)
	if !ok {
		return false
	}

	header := host.LineAt(startLine)
	if !strings.Contains(header.Text, "|") {
		return false
	}
	if header.Indent()-blkIndent >= codeIndent {
		return false
	}

	headerText, headerStart := stripOuterPipes(header.Text)
	headerCells := splitFields(headerText)
	if len(headerCells) > len(aligns) {
		return false
	}

	if silent {
		return true
	}

	tableOpen := host.Push(mdast.TypeTableOpen, "table", mdast.NestingOpen)
	tableOpen.Meta = &Meta{Aligns: aligns}

	headerRow := host.Push(mdast.TypeTROpen, "tr", mdast.NestingOpen)
	headerRow.Map = host.Map(startLine, startLine+1)

	for i, cell := range headerCells {
		open := host.Push(mdast.TypeTHOpen, "th", mdast.NestingOpen)
		open.Map = host.Map(startLine, startLine+1)
		setAlign(open, aligns, i)

		lead := len(cell.text) - len(strings.TrimLeft(cell.text, " \t"))
		open.Meta = &CellMeta{
			Column:       i,
			SourceColumn: sourceColumn(host.Source(), header.Offset+headerStart+cell.start+lead),
		}

		// Header cells wrap their inline in a hidden paragraph, the same shape
		// body cells get from hideCellParagraphs.
		paragraph := host.Push(mdast.TypeParagraphOpen, "p", mdast.NestingOpen)
		paragraph.Map = host.Map(startLine, startLine+1)
		paragraph.Hidden = true

		inline := host.Push(mdast.TypeInline, "", mdast.NestingSelf)
		inline.Content = strings.TrimSpace(cell.text)
		inline.Map = host.Map(startLine, startLine+1)

		host.Push(mdast.TypeParagraphClose, "p", mdast.NestingClose).Hidden = true

		host.Push(mdast.TypeTHClose, "th", mdast.NestingClose)
	}

	host.Push(mdast.TypeTRClose, "tr", mdast.NestingClose)

	next := startLine + 2
	for row := 1; next < endLine; row++ {
		line := host.LineAt(next)
		if line.Indent() < blkIndent {
			break
		}
		if !strings.Contains(line.Text, "|") {
			break
		}
		if line.Indent()-blkIndent >= codeIndent {
			break
		}

		pushBodyRow(host, next, line, aligns, row)
		next++
	}

	tableOpen.Map = host.Map(startLine, next)
	host.Push(mdast.TypeTableClose, "table", mdast.NestingClose)
	host.SetLine(next)

	return true
}

// pushBodyRow emits one body row. Each cell is tokenized as blocks through a
// one-line view holding its trimmed text.
func pushBodyRow(host Host, index int, line block.Line, aligns []Align, row int) {
	rowOpen := host.Push(mdast.TypeTROpen, "tr", mdast.NestingOpen)
	rowOpen.Map = host.Map(index, index+1)

	text, start := stripOuterPipes(line.Text)

	for i, cell := range splitFields(text) {
		open := host.Push(mdast.TypeTDOpen, "td", mdast.NestingOpen)
		open.Map = host.Map(index, index+1)
		setAlign(open, aligns, i)

		lead := len(cell.text) - len(strings.TrimLeft(cell.text, " \t"))
		offset := line.Offset + start + cell.start + lead
		open.Meta = &CellMeta{
			Row:          row,
			Column:       i,
			SourceColumn: sourceColumn(host.Source(), offset),
		}

		view := block.NewView(block.Line{
			Text:   strings.TrimSpace(cell.text),
			Number: line.Number,
			Offset: offset,
		})
		tokens := host.TokenizeView(view, block.ParentTableCell)
		hideCellParagraphs(tokens, open.Level+1)
		host.Append(tokens...)

		host.Push(mdast.TypeTDClose, "td", mdast.NestingClose)
	}

	host.Push(mdast.TypeTRClose, "tr", mdast.NestingClose)
}

// setAlign adds the text-align style when the column has an alignment.
// Cells past the last delimiter column get none.
func setAlign(tok *mdast.Token, aligns []Align, column int) {
	if column >= len(aligns) {
		return
	}
	if style := aligns[column].Style(); style != "" {
		tok.AttrSet("style", style)
	}
}

// hideCellParagraphs hides paragraphs produced directly inside a cell so the
// cell renders its inline content only.
func hideCellParagraphs(tokens []*mdast.Token, level int) {
	for _, tok := range tokens {
		if tok.Level != level {
			continue
		}
		if tok.Type == mdast.TypeParagraphOpen || tok.Type == mdast.TypeParagraphClose {
			tok.Hidden = true
		}
	}
}

// sourceColumn converts an absolute byte offset into a 1-based byte column.
func sourceColumn(src string, offset int) int {
	if offset < 0 || offset > len(src) {
		return 0
	}
	return offset - (strings.LastIndexByte(src[:offset], '\n') + 1) + 1
}
