// Package table implements the GitHub-flavoured pipe table block rule.
//
// A table is a header row, a delimiter row of dashes with optional colons
// that fixes the column alignments, and zero or more body rows:
//
//	| Name | Size |
//	|:-----|-----:|
//	| a    |    1 |
//
// The recognizer plugs into the block parser's rule chain before the
// paragraph rule. Body cells are re-tokenized as blocks through an explicit
// one-line view, so a cell reading "- item" becomes a bullet list.
package table
