package table

import (
	"regexp"
	"strings"
)

// Align is the alignment of a table column.
type Align uint8

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the CSS text-align value, or "none".
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignNone:
		return "none"
	default:
		return "none"
	}
}

// Style returns the inline style attribute value for the alignment,
// or "" for AlignNone.
func (a Align) Style() string {
	if a == AlignNone {
		return ""
	}
	return "text-align:" + a.String()
}

// MarshalText encodes the alignment by name.
func (a Align) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// delimiterCellRegexp matches one field of the delimiter row.
var delimiterCellRegexp = regexp.MustCompile(`^:?-+:?$`)

// ParseDelimiter parses the delimiter row into column alignments.
// The row is split on every '|', escaped or not. Empty fields are allowed
// only at the ends (outer pipes). It returns false when any interior field
// is not of the form :?-+:? or no column remains.
func ParseDelimiter(row string) ([]Align, bool) {
	fields := strings.Split(strings.TrimSpace(row), "|")
	aligns := make([]Align, 0, len(fields))

	for i, field := range fields {
		text := strings.TrimSpace(field)
		if text == "" {
			if i == 0 || i == len(fields)-1 {
				continue
			}
			return nil, false
		}
		if !delimiterCellRegexp.MatchString(text) {
			return nil, false
		}
		aligns = append(aligns, alignOf(text))
	}

	if len(aligns) == 0 {
		return nil, false
	}
	return aligns, true
}

func alignOf(field string) Align {
	left := field[0] == ':'
	right := field[len(field)-1] == ':'

	switch {
	case left && right:
		return AlignCenter
	case right:
		return AlignRight
	case left:
		return AlignLeft
	default:
		return AlignNone
	}
}

// isDelimiterRow reports whether text consists only of '|', '-', ':' and
// whitespace.
func isDelimiterRow(text string) bool {
	for i := range len(text) {
		switch text[i] {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}
