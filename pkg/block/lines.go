package block

import "strings"

// tabStop is the CommonMark tab width used for indentation math.
const tabStop = 4

// Line is one source line as seen by a (possibly nested) block state.
// Text excludes the line terminator and any container markers already
// consumed by an enclosing blockquote or list item.
type Line struct {
	// Text is the line content visible to block rules.
	Text string

	// Number is the 0-based line number in the original document.
	Number int

	// Offset is the absolute byte offset of Text[0] in the original document.
	Offset int
}

// Begin returns the absolute byte offset where the line content starts.
func (l Line) Begin() int {
	return l.Offset
}

// End returns the absolute byte offset where the line content ends (exclusive).
func (l Line) End() int {
	return l.Offset + len(l.Text)
}

// Indent returns the width of leading whitespace in columns.
func (l Line) Indent() int {
	cols, _ := leadingWhitespace(l.Text)
	return cols
}

// IsBlank returns true if the line has no non-whitespace characters.
func (l Line) IsBlank() bool {
	return strings.TrimLeft(l.Text, " \t") == ""
}

// Trimmed returns the line text without leading whitespace.
func (l Line) Trimmed() string {
	_, n := leadingWhitespace(l.Text)
	return l.Text[n:]
}

// Strip returns a copy of the line with up to cols columns of leading
// whitespace removed. Partially consumed tabs are expanded to spaces.
func (l Line) Strip(cols int) Line {
	text, consumed := removeColumns(l.Text, cols)
	return Line{Text: text, Number: l.Number, Offset: l.Offset + consumed}
}

// View is an explicit sub-range of lines handed to the recursive tokenizer.
// Nested tokenization works on the view and never rewrites the line table of
// the state that created it.
type View struct {
	Lines []Line
}

// NewView creates a view over the given lines.
func NewView(lines ...Line) View {
	return View{Lines: lines}
}

// Len returns the number of lines in the view.
func (v View) Len() int {
	return len(v.Lines)
}

// SplitLines splits source text into lines.
// It handles both LF (\n) and CRLF (\r\n) line endings. A trailing line
// terminator does not produce an extra empty line.
func SplitLines(src string) []Line {
	if src == "" {
		return []Line{}
	}

	var lines []Line
	lineStart := 0

	for idx := 0; idx < len(src); idx++ {
		if src[idx] != '\n' {
			continue
		}

		// Check for CRLF.
		textEnd := idx
		if idx > lineStart && src[idx-1] == '\r' {
			textEnd = idx - 1
		}

		lines = append(lines, Line{
			Text:   src[lineStart:textEnd],
			Number: len(lines),
			Offset: lineStart,
		})
		lineStart = idx + 1
	}

	// Handle last line (may not have trailing newline).
	if lineStart < len(src) {
		lines = append(lines, Line{
			Text:   src[lineStart:],
			Number: len(lines),
			Offset: lineStart,
		})
	}

	return lines
}

// leadingWhitespace returns the column width and byte length of the leading
// run of spaces and tabs.
func leadingWhitespace(text string) (int, int) {
	cols := 0
	idx := 0
	for idx < len(text) {
		switch text[idx] {
		case ' ':
			cols++
		case '\t':
			cols += tabStop - cols%tabStop
		default:
			return cols, idx
		}
		idx++
	}
	return cols, idx
}

// removeColumns strips up to cols columns of leading whitespace from text.
// It returns the remaining text and the number of source bytes consumed.
func removeColumns(text string, cols int) (string, int) {
	col := 0
	idx := 0
	for idx < len(text) && col < cols {
		switch text[idx] {
		case ' ':
			col++
		case '\t':
			next := col + tabStop - col%tabStop
			if next > cols {
				// Split the tab: keep the overshoot as spaces.
				return strings.Repeat(" ", next-cols) + text[idx+1:], idx + 1
			}
			col = next
		default:
			return text[idx:], idx
		}
		idx++
	}
	return text[idx:], idx
}
