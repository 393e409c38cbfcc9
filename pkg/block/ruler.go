package block

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownRule is returned when a rule name does not exist in the chain.
var ErrUnknownRule = errors.New("unknown block rule")

// ErrDuplicateRule is returned when a rule name is registered twice.
var ErrDuplicateRule = errors.New("duplicate block rule")

// RuleFunc recognizes a block starting at startLine. It must not look at
// lines at or after endLine. In silent mode it only reports whether it would
// match and must not push tokens or move the cursor.
type RuleFunc func(s *State, startLine, endLine int, silent bool) bool

// Rule is a named entry of the block rule chain.
type Rule struct {
	// Name identifies the rule (e.g. "table").
	Name string

	// Fn is the recognizer.
	Fn RuleFunc

	// Alt lists the chains this rule may terminate ("paragraph", "reference",
	// "blockquote", "list").
	Alt []string

	// Enabled is false for rules switched off by configuration.
	Enabled bool
}

// Ruler keeps the ordered block rule chain.
// Mutations are not safe for concurrent use; lookups after setup are.
type Ruler struct {
	rules []Rule
	cache map[string][]RuleFunc
}

// NewRuler creates an empty rule chain.
func NewRuler() *Ruler {
	return &Ruler{cache: map[string][]RuleFunc{}}
}

// Push appends a rule to the end of the chain.
func (r *Ruler) Push(name string, fn RuleFunc, alt ...string) error {
	if r.index(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}
	r.rules = append(r.rules, Rule{Name: name, Fn: fn, Alt: alt, Enabled: true})
	r.compile()
	return nil
}

// Before inserts a rule immediately before the named rule.
func (r *Ruler) Before(before, name string, fn RuleFunc, alt ...string) error {
	return r.insertAt(before, 0, name, fn, alt)
}

// After inserts a rule immediately after the named rule.
func (r *Ruler) After(after, name string, fn RuleFunc, alt ...string) error {
	return r.insertAt(after, 1, name, fn, alt)
}

func (r *Ruler) insertAt(anchor string, shift int, name string, fn RuleFunc, alt []string) error {
	idx := r.index(anchor)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRule, anchor)
	}
	if r.index(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}
	r.rules = slices.Insert(r.rules, idx+shift, Rule{Name: name, Fn: fn, Alt: alt, Enabled: true})
	r.compile()
	return nil
}

// Enable switches the named rules on.
func (r *Ruler) Enable(names ...string) error {
	return r.setEnabled(names, true)
}

// Disable switches the named rules off. Disabled rules are skipped by the
// tokenizer and by terminator checks.
func (r *Ruler) Disable(names ...string) error {
	return r.setEnabled(names, false)
}

func (r *Ruler) setEnabled(names []string, enabled bool) error {
	for _, name := range names {
		idx := r.index(name)
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrUnknownRule, name)
		}
		r.rules[idx].Enabled = enabled
	}
	r.compile()
	return nil
}

// Rules returns the enabled recognizers of a chain in order.
// The empty chain name selects every enabled rule.
func (r *Ruler) Rules(chain string) []RuleFunc {
	return r.cache[chain]
}

// Names returns the names of all rules in chain order.
func (r *Ruler) Names() []string {
	names := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		names = append(names, rule.Name)
	}
	return names
}

// Entries returns a copy of the chain for inspection.
func (r *Ruler) Entries() []Rule {
	entries := make([]Rule, len(r.rules))
	for i, rule := range r.rules {
		entries[i] = rule
		entries[i].Alt = slices.Clone(rule.Alt)
	}
	return entries
}

func (r *Ruler) index(name string) int {
	return slices.IndexFunc(r.rules, func(rule Rule) bool { return rule.Name == name })
}

// compile rebuilds the per-chain lookup so that Rules never mutates state.
func (r *Ruler) compile() {
	cache := map[string][]RuleFunc{}
	for _, rule := range r.rules {
		if !rule.Enabled {
			continue
		}
		cache[""] = append(cache[""], rule.Fn)
		for _, chain := range rule.Alt {
			cache[chain] = append(cache[chain], rule.Fn)
		}
	}
	r.cache = cache
}
