package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// LineKind classifies a diff line.
type LineKind int

const (
	// LineContext is a line present in both versions.
	LineContext LineKind = iota
	// LineAdd is a line only in the modified version.
	LineAdd
	// LineRemove is a line only in the original version.
	LineRemove
)

// Line is one line of a hunk, without its newline.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Diff is a line-based unified diff of one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// GenerateDiff compares original and modified line by line. It returns nil
// when no line differs.
func GenerateDiff(path string, original, modified []byte) *Diff {
	oldLines := splitLines(original)
	newLines := splitLines(modified)

	prefix := 0
	for prefix < len(oldLines) && prefix < len(newLines) && oldLines[prefix] == newLines[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(oldLines)-prefix && suffix < len(newLines)-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		suffix++
	}

	ops := make([]Line, 0, len(oldLines)+len(newLines)-prefix-suffix)
	for _, text := range oldLines[:prefix] {
		ops = append(ops, Line{Kind: LineContext, Text: text})
	}
	ops = append(ops, lcsLines(oldLines[prefix:len(oldLines)-suffix], newLines[prefix:len(newLines)-suffix])...)
	for _, text := range oldLines[len(oldLines)-suffix:] {
		ops = append(ops, Line{Kind: LineContext, Text: text})
	}

	diff := &Diff{Path: path}
	for _, op := range ops {
		switch op.Kind {
		case LineAdd:
			diff.Additions++
		case LineRemove:
			diff.Deletions++
		case LineContext:
		}
	}
	if diff.Additions == 0 && diff.Deletions == 0 {
		return nil
	}

	diff.Hunks = groupHunks(ops)
	return diff
}

// HasChanges reports whether the diff has at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format with a/ and b/ path prefixes.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)

	for _, hunk := range d.Hunks {
		b.WriteString(hunk.Header())
		b.WriteByte('\n')

		for _, line := range hunk.Lines {
			b.WriteByte(line.Kind.marker())
			b.WriteString(line.Text)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

func (k LineKind) marker() byte {
	switch k {
	case LineAdd:
		return '+'
	case LineRemove:
		return '-'
	default:
		return ' '
	}
}

// splitLines splits content on '\n'. A final newline does not start an
// extra empty line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// lcsLines diffs two line slices through their longest common subsequence.
// At each change, removals come before additions.
func lcsLines(oldLines, newLines []string) []Line {
	// suffixLCS[i][j] is the LCS length of oldLines[i:] and newLines[j:].
	suffixLCS := make([][]int, len(oldLines)+1)
	for i := range suffixLCS {
		suffixLCS[i] = make([]int, len(newLines)+1)
	}
	for i := len(oldLines) - 1; i >= 0; i-- {
		for j := len(newLines) - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				suffixLCS[i][j] = suffixLCS[i+1][j+1] + 1
			} else {
				suffixLCS[i][j] = max(suffixLCS[i+1][j], suffixLCS[i][j+1])
			}
		}
	}

	lines := make([]Line, 0, len(oldLines)+len(newLines))
	i, j := 0, 0
	for i < len(oldLines) && j < len(newLines) {
		switch {
		case oldLines[i] == newLines[j]:
			lines = append(lines, Line{Kind: LineContext, Text: oldLines[i]})
			i++
			j++
		case suffixLCS[i+1][j] >= suffixLCS[i][j+1]:
			lines = append(lines, Line{Kind: LineRemove, Text: oldLines[i]})
			i++
		default:
			lines = append(lines, Line{Kind: LineAdd, Text: newLines[j]})
			j++
		}
	}
	for ; i < len(oldLines); i++ {
		lines = append(lines, Line{Kind: LineRemove, Text: oldLines[i]})
	}
	for ; j < len(newLines); j++ {
		lines = append(lines, Line{Kind: LineAdd, Text: newLines[j]})
	}

	return lines
}

// groupHunks cuts ops into hunks. Changes separated by at most twice the
// context size share a hunk.
func groupHunks(ops []Line) []Hunk {
	// oldBefore[i] and newBefore[i] count the lines of each version before ops[i].
	oldBefore := make([]int, len(ops)+1)
	newBefore := make([]int, len(ops)+1)
	for i, op := range ops {
		oldBefore[i+1] = oldBefore[i]
		newBefore[i+1] = newBefore[i]
		if op.Kind != LineAdd {
			oldBefore[i+1]++
		}
		if op.Kind != LineRemove {
			newBefore[i+1]++
		}
	}

	var hunks []Hunk
	for i := 0; i < len(ops); {
		if ops[i].Kind == LineContext {
			i++
			continue
		}

		start := max(0, i-contextLines)
		end := i
		for end < len(ops) {
			if ops[end].Kind != LineContext {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].Kind == LineContext {
				run++
			}
			if run == len(ops) || run-end > 2*contextLines {
				break
			}
			end = run
		}
		stop := min(len(ops), end+contextLines)

		hunk := Hunk{
			OldStart: oldBefore[start] + 1,
			OldCount: oldBefore[stop] - oldBefore[start],
			NewStart: newBefore[start] + 1,
			NewCount: newBefore[stop] - newBefore[start],
			Lines:    ops[start:stop],
		}
		hunks = append(hunks, hunk)

		i = end
	}

	return hunks
}
