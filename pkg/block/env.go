package block

import "strings"

// Reference is a link reference definition collected by the reference rule.
type Reference struct {
	Label       string
	Destination string
	Title       string
}

// Env carries document-wide data shared by every nested state of one parse.
type Env struct {
	// References maps normalized labels to their first definition.
	References map[string]Reference
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{References: make(map[string]Reference)}
}

// AddReference stores a definition unless the label is already defined.
// Returns false when an earlier definition wins.
func (e *Env) AddReference(ref Reference) bool {
	key := NormalizeLabel(ref.Label)
	if key == "" {
		return false
	}
	if _, exists := e.References[key]; exists {
		return false
	}
	e.References[key] = ref
	return true
}

// NormalizeLabel collapses internal whitespace and case-folds a reference label.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.ToUpper(strings.Join(strings.Fields(label), " ")))
}
