package table

import (
	"slices"
	"testing"
)

func TestSplitRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  string
		want []string
	}{
		{name: "plain", row: " a | b ", want: []string{" a ", " b "}},
		{name: "single cell", row: "a", want: []string{"a"}},
		{name: "empty", row: "", want: []string{""}},
		{name: "empty cells", row: "a||b", want: []string{"a", "", "b"}},
		{name: "escaped pipe", row: `a \| b | c`, want: []string{`a \| b `, " c"}},
		{name: "escaped backslash", row: `a \\| b`, want: []string{`a \\`, " b"}},
		{name: "three backslashes", row: `a \\\| b`, want: []string{`a \\\| b`}},
		{name: "pipe in code span", row: "`a|b` | c", want: []string{"`a|b` ", " c"}},
		{name: "two code spans", row: "`x|` | `|y`", want: []string{"`x|` ", " `|y`"}},
		{name: "escaped backtick", row: "\\`a|b", want: []string{"\\`a", "b"}},
		{name: "unclosed backtick", row: "`a | b", want: []string{"`a ", " b"}},
		{name: "unclosed after span", row: "`a|b` | `c | d", want: []string{"`a|b` ", " `c ", " d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SplitRow(tt.row)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SplitRow(%q) = %q, want %q", tt.row, got, tt.want)
			}
		})
	}
}

func TestSplitFieldsOffsets(t *testing.T) {
	t.Parallel()

	row := " a | bb |c"
	fields := splitFields(row)

	want := []int{0, 4, 9}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, f := range fields {
		if f.start != want[i] {
			t.Errorf("field %d start = %d, want %d", i, f.start, want[i])
		}
		if row[f.start:f.start+len(f.text)] != f.text {
			t.Errorf("field %d text %q does not match row at offset", i, f.text)
		}
	}
}

func TestStripOuterPipes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		row       string
		wantText  string
		wantStart int
	}{
		{row: "| a | b |", wantText: " a | b ", wantStart: 1},
		{row: "a | b", wantText: "a | b", wantStart: 0},
		{row: "  | a |  ", wantText: " a ", wantStart: 3},
		{row: "a |", wantText: "a ", wantStart: 0},
		{row: "|", wantText: "", wantStart: 1},
	}

	for _, tt := range tests {
		t.Run(tt.row, func(t *testing.T) {
			t.Parallel()

			text, start := stripOuterPipes(tt.row)
			if text != tt.wantText || start != tt.wantStart {
				t.Errorf("stripOuterPipes(%q) = (%q, %d), want (%q, %d)",
					tt.row, text, start, tt.wantText, tt.wantStart)
			}
		})
	}
}

func TestSplitLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want []string
	}{
		{line: "| a | b |", want: []string{"a", "b"}},
		{line: "  a|b  ", want: []string{"a", "b"}},
		{line: `| x \| y | z |`, want: []string{`x \| y`, "z"}},
		{line: "|", want: []string{""}},
		{line: "| `a|b` |", want: []string{"`a|b`"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			if got := SplitLine(tt.line); !slices.Equal(got, tt.want) {
				t.Errorf("SplitLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}
