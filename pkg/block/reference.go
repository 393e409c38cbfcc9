package block

import (
	"regexp"
	"strings"
)

// Capture groups:
// 1. Label
// 2. Destination (bare or <angle-bracketed>)
// 3. Optional quoted or parenthesized title
var referenceRegexp = regexp.MustCompile(
	`^\[((?:[^\[\]\\]|\\.){1,999})\]:[ \t]*(?:\n[ \t]*)?(<[^<>\n]*>|[^\s<>]\S*)` +
		`(?:(?:[ \t]+|[ \t]*\n[ \t]*)("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'|\((?:[^()\\]|\\.)*\)))?[ \t]*(?:\n|$)`)

// referenceRule recognizes link reference definitions and stores them in
// the shared Env. It emits no tokens.
func referenceRule(s *State, startLine, endLine int, silent bool) bool {
	if s.overIndented(startLine) {
		return false
	}
	if !strings.HasPrefix(s.LineAt(startLine).Trimmed(), "[") {
		return false
	}

	next := startLine + 1
	for ; next < endLine && !s.IsEmpty(next); next++ {
		if s.overIndented(next) {
			continue
		}
		if s.Terminates(RuleReference, next, endLine) {
			break
		}
	}

	match := referenceRegexp.FindStringSubmatch(paragraphContent(s, startLine, next))
	if match == nil || strings.TrimSpace(match[1]) == "" {
		return false
	}

	if silent {
		return true
	}

	destination := match[2]
	if strings.HasPrefix(destination, "<") {
		destination = destination[1 : len(destination)-1]
	}

	title := match[3]
	if len(title) >= 2 {
		title = title[1 : len(title)-1]
	}

	s.Env.AddReference(Reference{
		Label:       match[1],
		Destination: destination,
		Title:       title,
	})

	consumed := strings.Count(strings.TrimSuffix(match[0], "\n"), "\n") + 1
	s.Line = startLine + consumed

	return true
}
