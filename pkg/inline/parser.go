// Package inline parses the content of inline tokens into child tokens
// using goldmark's inline parsers.
package inline

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdtable/pkg/block"
	"github.com/yaklabco/gomdtable/pkg/mdast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Flavor identifies the inline syntax supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// paragraphPriority is the goldmark priority of the only block parser.
const paragraphPriority = 1000

// GFM inline parser priorities, matching goldmark's extension defaults.
const (
	strikethroughPriority = 500
	linkifyPriority       = 999
)

// Parser converts inline content into child tokens.
// It is safe for concurrent use.
type Parser struct {
	flavor string
	md     parser.Parser
}

// New creates an inline parser for the given flavor.
// Invalid flavors default to "gfm".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkParser(f),
	}
}

// Flavor returns the configured flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse parses content and returns its inline child tokens. Link reference
// definitions from env resolve reference links.
func (p *Parser) Parse(content string, env *block.Env) []*mdast.Token {
	if content == "" {
		return nil
	}

	source := []byte(content)
	pc := parser.NewContext()
	if env != nil {
		for _, ref := range env.References {
			pc.AddReference(parser.NewReference([]byte(ref.Label), []byte(ref.Destination), []byte(ref.Title)))
		}
	}

	doc := p.md.Parse(text.NewReader(source), parser.WithContext(pc))

	m := newMapper(source)
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapChildren(child)
	}
	return m.tokens
}

// Process fills Children for every inline token of the stream.
func (p *Parser) Process(ctx context.Context, tokens []*mdast.Token, env *block.Env) error {
	for _, tok := range tokens {
		if tok.Type != mdast.TypeInline {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("inline parse cancelled: %w", err)
		}
		tok.Children = p.Parse(tok.Content, env)
	}
	return nil
}

// flavorOrDefault returns the flavor if valid, otherwise GFM.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

// newGoldmarkParser builds a goldmark parser that only knows paragraphs, so
// inline content never re-enters block recognition.
//
//nolint:ireturn // parser.Parser is an external interface type
func newGoldmarkParser(flavor string) parser.Parser {
	inlineParsers := parser.DefaultInlineParsers()

	switch flavor {
	case FlavorGFM:
		inlineParsers = append(inlineParsers,
			util.Prioritized(extension.NewStrikethroughParser(), strikethroughPriority),
			util.Prioritized(extension.NewLinkifyParser(), linkifyPriority),
		)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), paragraphPriority)),
		parser.WithInlineParsers(inlineParsers...),
	)
}
