package mdast

import "strings"

// Attr is a single name/value presentation attribute.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute list. Order is preserved for stable rendering.
type Attrs []Attr

// Get returns the value of the named attribute.
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Set returns the list with the named attribute set to value.
// An existing attribute keeps its position.
func (a Attrs) Set(name, value string) Attrs {
	for i := range a {
		if a[i].Name == name {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attr{Name: name, Value: value})
}

// Join appends value to the named attribute separated by a space,
// creating the attribute if needed. Used for class lists.
func (a Attrs) Join(name, value string) Attrs {
	if current, ok := a.Get(name); ok && current != "" {
		return a.Set(name, current+" "+value)
	}
	return a.Set(name, value)
}

// String renders the attributes as a space-separated name="value" list
// without escaping. Intended for debugging output.
func (a Attrs) String() string {
	parts := make([]string, 0, len(a))
	for _, attr := range a {
		parts = append(parts, attr.Name+`="`+attr.Value+`"`)
	}
	return strings.Join(parts, " ")
}
