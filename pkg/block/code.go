package block

import (
	"strings"

	"github.com/yaklabco/gomdtable/pkg/mdast"
)

// minFenceLength is the shortest run of backticks or tildes opening a fence.
const minFenceLength = 3

// codeRule recognizes indented code blocks.
func codeRule(s *State, startLine, endLine int, _ bool) bool {
	if !s.overIndented(startLine) {
		return false
	}

	next := startLine + 1
	last := next
	for next < endLine {
		if s.IsEmpty(next) {
			next++
			continue
		}
		if s.overIndented(next) {
			next++
			last = next
			continue
		}
		break
	}

	s.Line = last

	tok := s.Push(mdast.TypeCodeBlock, "code", mdast.NestingSelf)
	tok.Content = s.GetLines(startLine, last, tabStop+s.BlkIndent, true)
	tok.Map = s.Map(startLine, last)

	return true
}

// fenceRule recognizes ``` and ~~~ fenced code blocks.
func fenceRule(s *State, startLine, endLine int, silent bool) bool {
	if s.overIndented(startLine) {
		return false
	}

	opener := s.LineAt(startLine)
	text := opener.Trimmed()
	if len(text) < minFenceLength || (text[0] != '`' && text[0] != '~') {
		return false
	}

	marker := text[0]
	length := runLength(text, marker)
	if length < minFenceLength {
		return false
	}

	info := text[length:]
	if marker == '`' && strings.IndexByte(info, '`') >= 0 {
		return false
	}

	if silent {
		return true
	}

	openerIndent := opener.Indent()
	next := startLine
	closed := false

	for {
		next++
		if next >= endLine {
			break
		}
		if !s.IsEmpty(next) && s.Indent(next) < s.BlkIndent {
			break
		}

		candidate := s.LineAt(next)
		if s.overIndented(next) {
			continue
		}
		trimmed := candidate.Trimmed()
		if len(trimmed) == 0 || trimmed[0] != marker {
			continue
		}
		run := runLength(trimmed, marker)
		if run < length || strings.TrimRight(trimmed[run:], " \t") != "" {
			continue
		}

		closed = true
		break
	}

	s.Line = next
	if closed {
		s.Line = next + 1
	}

	tok := s.Push(mdast.TypeFence, "code", mdast.NestingSelf)
	tok.Info = strings.TrimSpace(info)
	tok.Content = s.GetLines(startLine+1, next, openerIndent, true)
	tok.Markup = strings.Repeat(string(marker), length)
	tok.Map = s.Map(startLine, s.Line)

	return true
}

// runLength counts consecutive ch bytes at the start of text.
func runLength(text string, ch byte) int {
	n := 0
	for n < len(text) && text[n] == ch {
		n++
	}
	return n
}
