package block

import (
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtable/pkg/mdast"
)

const (
	// maxOrderedDigits is the longest ordered list number CommonMark allows.
	maxOrderedDigits = 9

	// maxMarkerPadding is the widest gap between marker and content; wider
	// gaps make the content an indented code block.
	maxMarkerPadding = 4
)

// listMarker describes a parsed bullet or ordered list marker.
type listMarker struct {
	ordered bool
	// char is the bullet character or the ordered delimiter ('.' or ')').
	char   byte
	number int
	width  int
}

func (m listMarker) markup() string {
	return string(m.char)
}

func (m listMarker) sameList(other listMarker) bool {
	return m.ordered == other.ordered && m.char == other.char
}

// parseListMarker parses a list marker at the start of text.
func parseListMarker(text string) (listMarker, bool) {
	if text == "" {
		return listMarker{}, false
	}

	switch text[0] {
	case '-', '*', '+':
		if len(text) > 1 && text[1] != ' ' && text[1] != '\t' {
			return listMarker{}, false
		}
		return listMarker{char: text[0], width: 1}, true
	}

	digits := 0
	for digits < len(text) && text[digits] >= '0' && text[digits] <= '9' {
		digits++
		if digits > maxOrderedDigits {
			return listMarker{}, false
		}
	}
	if digits == 0 || digits >= len(text) {
		return listMarker{}, false
	}

	delim := text[digits]
	if delim != '.' && delim != ')' {
		return listMarker{}, false
	}
	if digits+1 < len(text) && text[digits+1] != ' ' && text[digits+1] != '\t' {
		return listMarker{}, false
	}

	number, err := strconv.Atoi(text[:digits])
	if err != nil {
		return listMarker{}, false
	}

	return listMarker{ordered: true, char: delim, number: number, width: digits + 1}, true
}

// markerAt parses the list marker starting line n, if any.
func markerAt(s *State, n int) (listMarker, bool) {
	if s.overIndented(n) {
		return listMarker{}, false
	}
	return parseListMarker(s.LineAt(n).Trimmed())
}

// listRule recognizes bullet and ordered lists. Each item's lines, with the
// marker and content indentation removed, are tokenized as a nested view.
func listRule(s *State, startLine, endLine int, silent bool) bool {
	first, ok := markerAt(s, startLine)
	if !ok {
		return false
	}

	// A list interrupting a paragraph must start at 1 and have content.
	if s.ParentType == ParentParagraph {
		if first.ordered && first.number != 1 {
			return false
		}
		rest := s.LineAt(startLine).Trimmed()[first.width:]
		if strings.TrimSpace(rest) == "" {
			return false
		}
	}

	if silent {
		return true
	}

	openType, closeType, tag := mdast.TypeBulletListOpen, mdast.TypeBulletListClose, "ul"
	if first.ordered {
		openType, closeType, tag = mdast.TypeOrderedListOpen, mdast.TypeOrderedListClose, "ol"
	}

	openIdx := len(s.Tokens)
	open := s.Push(openType, tag, mdast.NestingOpen)
	open.Markup = first.markup()
	if first.ordered && first.number != 1 {
		open.AttrSet("start", strconv.Itoa(first.number))
	}

	tight := true
	prevEmptyEnd := false
	itemEnd := startLine
	line := startLine

	for line < endLine {
		marker, ok := markerAt(s, line)
		if !ok || !marker.sameList(first) {
			break
		}
		if line != startLine && hrRule(s, line, endLine, true) {
			break
		}

		lines, next := collectItem(s, line, endLine, marker)

		item := s.Push(mdast.TypeListItemOpen, "li", mdast.NestingOpen)
		item.Markup = marker.markup()
		item.Map = s.Map(line, next)
		if marker.ordered {
			item.Info = strconv.Itoa(marker.number)
		}

		child := s.tokenizeChild(NewView(lines...), ParentList)
		s.Append(child.Tokens...)

		closeItem := s.Push(mdast.TypeListItemClose, "li", mdast.NestingClose)
		closeItem.Markup = marker.markup()

		if !child.Tight || prevEmptyEnd {
			tight = false
		}

		itemEnd = next
		after := s.SkipEmptyLines(next)
		prevEmptyEnd = after > next
		line = after

		if line >= endLine || s.Indent(line) < s.BlkIndent {
			break
		}
	}

	closeList := s.Push(closeType, tag, mdast.NestingClose)
	closeList.Markup = first.markup()
	open.Map = s.Map(startLine, itemEnd)

	if tight {
		markTightParagraphs(s.Tokens[openIdx:], open.Level+2)
	}

	s.Line = itemEnd

	return true
}

// collectItem gathers the lines of the list item starting at line and returns
// them with the content indentation removed, plus the first line after the
// item. Trailing blank lines are left to the caller.
func collectItem(s *State, line, endLine int, marker listMarker) ([]Line, int) {
	src := s.LineAt(line)
	markerIndent, wsBytes := leadingWhitespace(src.Text)
	rest := src.Text[wsBytes+marker.width:]
	restBlank := strings.TrimSpace(rest) == ""

	padding, _ := leadingWhitespace(rest)
	if restBlank || padding > maxMarkerPadding {
		padding = 1
	}
	contentCol := markerIndent + marker.width + padding

	firstText, consumed := removeColumns(rest, padding)
	if restBlank {
		firstText = ""
	}

	lines := []Line{{
		Text:   firstText,
		Number: src.Number,
		Offset: src.Offset + wsBytes + marker.width + consumed,
	}}

	next := line + 1
	for next < endLine {
		current := s.LineAt(next)

		if current.IsBlank() {
			// An item can begin with at most one blank line.
			if restBlank && len(lines) == 1 {
				break
			}
			lines = append(lines, Line{Number: current.Number, Offset: current.Offset})
			next++
			continue
		}

		if current.Indent() >= contentCol {
			lines = append(lines, current.Strip(contentCol))
			next++
			continue
		}

		// Lazy continuation is only allowed directly after text.
		if lines[len(lines)-1].IsBlank() {
			break
		}
		if _, isItem := markerAt(s, next); isItem {
			break
		}
		if s.Terminates(ParentList, next, endLine) {
			break
		}

		lines = append(lines, current)
		next++
	}

	// Trailing blank lines belong between items.
	for len(lines) > 1 && lines[len(lines)-1].IsBlank() {
		lines = lines[:len(lines)-1]
		next--
	}

	return lines, next
}

// markTightParagraphs hides paragraph tokens directly inside the items of a
// tight list.
func markTightParagraphs(tokens []*mdast.Token, level int) {
	for _, tok := range tokens {
		if tok.Level != level {
			continue
		}
		if tok.Type == mdast.TypeParagraphOpen || tok.Type == mdast.TypeParagraphClose {
			tok.Hidden = true
		}
	}
}
