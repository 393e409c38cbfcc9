package block

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtable/pkg/mdast"
)

var (
	// Capture group 1: heading opener.
	atxHeadingRegexp = regexp.MustCompile(`^(#{1,6})(?:[ \t]|$)`)
	// Closing sequence, optionally followed by whitespace.
	atxHeadingCloserRegexp = regexp.MustCompile(`(?:^|[ \t]+)#+[ \t]*$`)
)

// minThematicBreak is the number of marker characters forming a thematic break.
const minThematicBreak = 3

// hrRule recognizes thematic breaks (---, ***, ___).
func hrRule(s *State, startLine, _ int, silent bool) bool {
	if s.overIndented(startLine) {
		return false
	}

	text := s.LineAt(startLine).Trimmed()
	if text == "" {
		return false
	}

	marker := text[0]
	if marker != '*' && marker != '-' && marker != '_' {
		return false
	}

	count := 0
	for i := range len(text) {
		switch text[i] {
		case marker:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	if count < minThematicBreak {
		return false
	}

	if silent {
		return true
	}

	s.Line = startLine + 1

	tok := s.Push(mdast.TypeHR, "hr", mdast.NestingSelf)
	tok.Map = s.Map(startLine, s.Line)
	tok.Markup = strings.Repeat(string(marker), count)

	return true
}

// headingRule recognizes ATX headings (# Title).
func headingRule(s *State, startLine, _ int, silent bool) bool {
	if s.overIndented(startLine) {
		return false
	}

	text := s.LineAt(startLine).Trimmed()
	match := atxHeadingRegexp.FindStringSubmatch(text)
	if match == nil {
		return false
	}

	if silent {
		return true
	}

	level := len(match[1])
	content := strings.TrimRight(text[level:], " \t")
	content = atxHeadingCloserRegexp.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)

	s.Line = startLine + 1
	pushHeading(s, level, match[1], content, s.Map(startLine, s.Line))

	return true
}

// lheadingRule recognizes setext headings (Title followed by === or ---).
func lheadingRule(s *State, startLine, endLine int, _ bool) bool {
	if s.overIndented(startLine) {
		return false
	}

	level := 0
	markup := ""
	next := startLine + 1

	for ; next < endLine && !s.IsEmpty(next); next++ {
		if s.overIndented(next) {
			// Indented lines are lazy paragraph continuations.
			continue
		}

		if s.Indent(next) >= s.BlkIndent {
			underline := strings.TrimRight(s.LineAt(next).Trimmed(), " \t")
			if underline != "" && (underline[0] == '=' || underline[0] == '-') &&
				runLength(underline, underline[0]) == len(underline) {
				level = 1
				if underline[0] == '-' {
					level = 2
				}
				markup = underline
				break
			}
		}

		if s.Terminates(ParentParagraph, next, endLine) {
			break
		}
	}

	if level == 0 {
		return false
	}

	content := paragraphContent(s, startLine, next)
	s.Line = next + 1
	pushHeading(s, level, markup, content, s.Map(startLine, s.Line))

	return true
}

func pushHeading(s *State, level int, markup, content string, lines *mdast.LineRange) {
	tag := "h" + strconv.Itoa(level)

	open := s.Push(mdast.TypeHeadingOpen, tag, mdast.NestingOpen)
	open.Markup = markup
	open.Map = lines

	inline := s.Push(mdast.TypeInline, "", mdast.NestingSelf)
	inline.Content = content
	inline.Map = lines

	closeTok := s.Push(mdast.TypeHeadingClose, tag, mdast.NestingClose)
	closeTok.Markup = markup
}

// paragraphRule consumes lines until a blank line or a terminating block.
// It always matches.
func paragraphRule(s *State, startLine, endLine int, _ bool) bool {
	next := startLine + 1

	for ; next < endLine && !s.IsEmpty(next); next++ {
		if s.overIndented(next) {
			continue
		}
		if s.Indent(next) < s.BlkIndent {
			continue
		}
		if s.Terminates(ParentParagraph, next, endLine) {
			break
		}
	}

	content := paragraphContent(s, startLine, next)
	s.Line = next

	lines := s.Map(startLine, next)

	open := s.Push(mdast.TypeParagraphOpen, "p", mdast.NestingOpen)
	open.Map = lines

	inline := s.Push(mdast.TypeInline, "", mdast.NestingSelf)
	inline.Content = content
	inline.Map = lines

	s.Push(mdast.TypeParagraphClose, "p", mdast.NestingClose)

	return true
}

// paragraphContent joins lines [start, end) with leading whitespace removed
// from each line. Trailing spaces survive for hard line breaks.
func paragraphContent(s *State, start, end int) string {
	parts := make([]string, 0, end-start)
	for line := start; line < end; line++ {
		parts = append(parts, s.LineAt(line).Trimmed())
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
