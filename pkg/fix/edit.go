// Package fix rewrites source text through byte-range edits and describes
// the result as a unified diff.
package fix

// Edit replaces the bytes [Start, End) of a file with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Builder accumulates the edits for one file.
type Builder struct {
	edits []Edit
}

// Replace adds an edit that replaces bytes [start, end) with text.
// Replacing a range with identical text is left to the caller to skip.
func (b *Builder) Replace(start, end int, text string) {
	b.edits = append(b.edits, Edit{Start: start, End: end, Text: text})
}

// Len returns the number of edits added so far.
func (b *Builder) Len() int {
	return len(b.edits)
}

// Edits returns the accumulated edits in insertion order.
func (b *Builder) Edits() []Edit {
	return b.edits
}
