package fix

import "bytes"

// Apply returns content with edits applied. The edits may be in any order
// but must not overlap. content itself is never modified.
func Apply(content []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return content, nil
	}

	sorted, err := Prepare(edits, len(content))
	if err != nil {
		return nil, err
	}

	delta := 0
	for _, e := range sorted {
		delta += len(e.Text) - (e.End - e.Start)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range sorted {
		out.Write(content[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.Write(content[cursor:])

	return out.Bytes(), nil
}
