package table

import "strings"

// field is one cell of a split row with its byte offset in the row.
type field struct {
	text  string
	start int
}

// SplitRow splits a row on unescaped pipes. A pipe is escaped when preceded
// by an odd number of backslashes, or when it sits inside a backtick code
// span. A backtick that is never closed is treated as a literal character.
// Outer pipes must be stripped by the caller.
func SplitRow(row string) []string {
	fields := splitFields(row)
	cells := make([]string, len(fields))
	for i, f := range fields {
		cells[i] = f.text
	}
	return cells
}

// SplitLine splits a raw table line the way the recognizer does: the outer
// pipes are dropped and every cell is trimmed.
func SplitLine(line string) []string {
	text, _ := stripOuterPipes(line)
	cells := SplitRow(text)
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}

func splitFields(row string) []field {
	var fields []field

	escapes := 0
	backTicked := false
	lastBackTick := 0
	lastPos := 0

	for pos := 0; pos < len(row); {
		char := row[pos]

		switch {
		case char == '`':
			if backTicked {
				backTicked = false
				lastBackTick = pos
			} else if escapes%2 == 0 {
				backTicked = true
				lastBackTick = pos
			}
		case char == '|' && escapes%2 == 0 && !backTicked:
			fields = append(fields, field{text: row[lastPos:pos], start: lastPos})
			lastPos = pos + 1
		}

		if char == '\\' {
			escapes++
		} else {
			escapes = 0
		}
		pos++

		// Unclosed code span: rescan from just after its opening backtick.
		if pos == len(row) && backTicked {
			backTicked = false
			escapes = 0
			pos = lastBackTick + 1
		}
	}

	return append(fields, field{text: row[lastPos:], start: lastPos})
}

// stripOuterPipes trims whitespace and one leading and one trailing pipe
// from row. It returns the remaining text and its byte offset in row.
func stripOuterPipes(row string) (string, int) {
	start := len(row) - len(strings.TrimLeft(row, " \t"))
	text := strings.TrimRight(row[start:], " \t")

	if strings.HasPrefix(text, "|") {
		text = text[1:]
		start++
	}
	text = strings.TrimSuffix(text, "|")

	return text, start
}
