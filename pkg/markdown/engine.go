// Package markdown wires the block parser, the table extension, the inline
// stage and the HTML renderer into a single engine.
package markdown

import (
	"context"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/yaklabco/gomdtable/pkg/block"
	"github.com/yaklabco/gomdtable/pkg/inline"
	"github.com/yaklabco/gomdtable/pkg/mdast"
	"github.com/yaklabco/gomdtable/pkg/render"
	"github.com/yaklabco/gomdtable/pkg/table"
)

// Unicode normalization modes applied to source text before parsing.
const (
	NormalizeNone = "none"
	NormalizeNFC  = "nfc"
)

// Options configures an Engine.
type Options struct {
	// Flavor selects the inline syntax ("gfm" or "commonmark").
	Flavor string

	// Normalize is "none" or "nfc".
	Normalize string

	// DisabledRules lists block rule names to switch off.
	DisabledRules []string

	// MaxNesting bounds nested container depth; 0 keeps the default.
	MaxNesting int

	// Render configures HTML output.
	Render render.Options
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		Flavor:     inline.FlavorGFM,
		Normalize:  NormalizeNone,
		MaxNesting: block.DefaultMaxNesting,
		Render:     render.DefaultOptions(),
	}
}

// Document is the result of parsing one source.
type Document struct {
	// Source is the text that was parsed, after normalization.
	Source string

	// Tokens is the block token stream with inline children filled in.
	Tokens []*mdast.Token

	// Env holds the link reference definitions of the document.
	Env *block.Env
}

// Engine parses and renders Markdown. It is safe for concurrent use.
type Engine struct {
	opts     Options
	block    *block.Parser
	inline   *inline.Parser
	renderer *render.Renderer
}

// New creates an engine with the table rule registered.
func New(opts Options) (*Engine, error) {
	parser := block.New(block.WithMaxNesting(opts.MaxNesting))

	if err := table.Register(parser); err != nil {
		return nil, fmt.Errorf("registering table rule: %w", err)
	}
	if len(opts.DisabledRules) > 0 {
		if err := parser.Ruler().Disable(opts.DisabledRules...); err != nil {
			return nil, fmt.Errorf("disabling rules: %w", err)
		}
	}

	return &Engine{
		opts:     opts,
		block:    parser,
		inline:   inline.New(opts.Flavor),
		renderer: render.New(opts.Render),
	}, nil
}

// Rules returns the block rule chain in order.
func (e *Engine) Rules() []block.Rule {
	return e.block.Ruler().Entries()
}

// Renderer returns the HTML renderer for rule customization.
func (e *Engine) Renderer() *render.Renderer {
	return e.renderer
}

// Parse runs the block and inline stages over src.
func (e *Engine) Parse(ctx context.Context, src string) (*Document, error) {
	if e.opts.Normalize == NormalizeNFC {
		src = norm.NFC.String(src)
	}

	env := block.NewEnv()
	tokens, err := e.block.Parse(ctx, src, env)
	if err != nil {
		return nil, err
	}

	if err := e.inline.Process(ctx, tokens, env); err != nil {
		return nil, err
	}

	return &Document{Source: src, Tokens: tokens, Env: env}, nil
}

// Render parses src and renders it to HTML.
func (e *Engine) Render(ctx context.Context, src string) (string, error) {
	doc, err := e.Parse(ctx, src)
	if err != nil {
		return "", err
	}
	return e.renderer.Render(doc.Tokens), nil
}

// RenderDocument renders an already parsed document.
func (e *Engine) RenderDocument(doc *Document) string {
	return e.renderer.Render(doc.Tokens)
}
