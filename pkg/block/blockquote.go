package block

import (
	"strings"

	"github.com/yaklabco/gomdtable/pkg/mdast"
)

// blockquoteRule recognizes "> " quotes, including lazy continuation lines.
// The quoted lines, markers removed, are tokenized as a nested view.
func blockquoteRule(s *State, startLine, endLine int, silent bool) bool {
	if s.overIndented(startLine) {
		return false
	}
	if !strings.HasPrefix(s.LineAt(startLine).Trimmed(), ">") {
		return false
	}

	if silent {
		return true
	}

	var lines []Line
	lastBlank := false
	next := startLine

	for ; next < endLine; next++ {
		line := s.LineAt(next)

		if !s.overIndented(next) && strings.HasPrefix(line.Trimmed(), ">") {
			inner := stripQuoteMarker(line)
			lines = append(lines, inner)
			lastBlank = inner.IsBlank()
			continue
		}

		// A blank line ends the quote; lazy lines cannot follow a blank one.
		if line.IsBlank() || lastBlank {
			break
		}
		if s.Indent(next) < s.BlkIndent {
			break
		}
		if s.Terminates(ParentBlockquote, next, endLine) {
			break
		}

		lines = append(lines, line)
	}

	open := s.Push(mdast.TypeBlockquoteOpen, "blockquote", mdast.NestingOpen)
	open.Markup = ">"
	open.Map = s.Map(startLine, next)

	s.Append(s.TokenizeView(NewView(lines...), ParentBlockquote)...)

	closeTok := s.Push(mdast.TypeBlockquoteClose, "blockquote", mdast.NestingClose)
	closeTok.Markup = ">"

	s.Line = next

	return true
}

// stripQuoteMarker removes indentation, the '>' marker and one optional
// following space from line.
func stripQuoteMarker(line Line) Line {
	_, ws := leadingWhitespace(line.Text)
	pos := ws + 1
	if pos < len(line.Text) && (line.Text[pos] == ' ' || line.Text[pos] == '\t') {
		pos++
	}
	return Line{Text: line.Text[pos:], Number: line.Number, Offset: line.Offset + pos}
}
