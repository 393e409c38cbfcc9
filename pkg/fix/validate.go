package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// RangeError describes an edit whose range does not fit the content.
type RangeError struct {
	Edit   Edit
	Length int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d] for content of %d bytes", e.Edit.Start, e.Edit.End, e.Length)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Prepare checks every edit against a content of length n and returns a
// sorted copy. Overlapping edits are rejected; two insertions at the same
// offset are not considered overlapping and keep their relative order.
func Prepare(edits []Edit, n int) ([]Edit, error) {
	for _, edit := range edits {
		if edit.Start < 0 || edit.End < edit.Start || edit.End > n {
			return nil, &RangeError{Edit: edit, Length: n}
		}
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			return nil, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}

	return sorted, nil
}
