// Package block implements a line-oriented Markdown block parser with an
// ordered, pluggable rule chain.
//
// Rules are tried in order at the start of each unconsumed line range; the
// first rule that matches pushes tokens and advances the line cursor.
// Container blocks (blockquotes, list items) and extensions such as tables
// re-enter the tokenizer through State.TokenizeView with an explicit View of
// the lines they own.
package block

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdtable/pkg/mdast"
)

// DefaultMaxNesting bounds the depth of nested views.
const DefaultMaxNesting = 20

// Core rule names in chain order.
const (
	RuleCode       = "code"
	RuleFence      = "fence"
	RuleBlockquote = "blockquote"
	RuleHR         = "hr"
	RuleList       = "list"
	RuleReference  = "reference"
	RuleHeading    = "heading"
	RuleLHeading   = "lheading"
	RuleParagraph  = "paragraph"
)

// Parser tokenizes Markdown source into block tokens.
type Parser struct {
	ruler      *Ruler
	maxNesting int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxNesting sets the maximum depth of nested views.
// Values below 1 keep the default.
func WithMaxNesting(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxNesting = depth
		}
	}
}

// New creates a parser with the core CommonMark block rules registered.
func New(opts ...Option) *Parser {
	parser := &Parser{
		ruler:      NewRuler(),
		maxNesting: DefaultMaxNesting,
	}

	for _, opt := range opts {
		opt(parser)
	}

	// Registration into an empty ruler cannot fail.
	core := []struct {
		name string
		fn   RuleFunc
		alt  []string
	}{
		{RuleCode, codeRule, nil},
		{RuleFence, fenceRule, []string{ParentParagraph, RuleReference, ParentBlockquote, ParentList}},
		{RuleBlockquote, blockquoteRule, []string{ParentParagraph, RuleReference, ParentBlockquote, ParentList}},
		{RuleHR, hrRule, []string{ParentParagraph, RuleReference, ParentBlockquote, ParentList}},
		{RuleList, listRule, []string{ParentParagraph, RuleReference, ParentBlockquote}},
		{RuleReference, referenceRule, nil},
		{RuleHeading, headingRule, []string{ParentParagraph, RuleReference, ParentBlockquote}},
		{RuleLHeading, lheadingRule, nil},
		{RuleParagraph, paragraphRule, nil},
	}
	for _, rule := range core {
		_ = parser.ruler.Push(rule.name, rule.fn, rule.alt...)
	}

	return parser
}

// Ruler returns the rule chain for registration of extensions.
func (p *Parser) Ruler() *Ruler {
	return p.ruler
}

// MaxNesting returns the configured nesting limit.
func (p *Parser) MaxNesting() int {
	return p.maxNesting
}

// Parse tokenizes src and returns the block token stream.
// Inline tokens are left with raw Content for the inline stage.
func (p *Parser) Parse(ctx context.Context, src string, env *Env) ([]*mdast.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	state := NewState(p, src, SplitLines(src), env)
	p.Tokenize(state, 0, state.LineMax)

	return state.Tokens, nil
}

// Tokenize runs the rule chain over lines [startLine, endLine) of state.
func (p *Parser) Tokenize(state *State, startLine, endLine int) {
	rules := p.ruler.Rules("")
	hasEmptyLines := false
	line := startLine

	for line < endLine {
		line = state.SkipEmptyLines(line)
		state.Line = line
		if line >= endLine {
			break
		}

		// Termination condition for nested calls.
		if state.Indent(line) < state.BlkIndent {
			break
		}

		// Too deep: drop the rest of this view.
		if state.depth >= p.maxNesting {
			state.Line = endLine
			break
		}

		matched := false
		for _, rule := range rules {
			if rule(state, line, endLine, false) {
				matched = true
				break
			}
		}

		// Every rule declined or a rule matched without progress. Paragraph
		// normally catches everything; this only guards against a disabled
		// paragraph rule.
		if !matched || state.Line <= line {
			state.Line = line + 1
		}

		state.Tight = !hasEmptyLines
		line = state.Line

		// Blank lines after a block make the parent loose.
		if state.IsEmpty(line - 1) {
			hasEmptyLines = true
		}
		if line < endLine && state.IsEmpty(line) {
			hasEmptyLines = true
			line++
			state.Line = line
		}
	}
}
