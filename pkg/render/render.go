// Package render turns a token stream into HTML.
//
// Open and close tokens render generically from their Tag and Attrs; leaf
// tokens (code, fences, text, breaks, images) have dedicated rules that can
// be replaced with SetRule. Hidden tokens (paragraphs in tight lists and
// table cells) are skipped so their inline content renders bare.
package render

import (
	"strings"

	"github.com/yaklabco/gomdtable/pkg/mdast"
	"github.com/yuin/goldmark/util"
)

// Options configures HTML output.
type Options struct {
	// XHTML closes void elements with " />".
	XHTML bool `yaml:"xhtml" json:"xhtml"`

	// Breaks renders soft line breaks as <br>.
	Breaks bool `yaml:"breaks" json:"breaks"`

	// LangPrefix is prepended to the fence language in the code class.
	LangPrefix string `yaml:"lang_prefix" json:"lang_prefix"`

	// DetectLanguage guesses the language of fences without an info string.
	DetectLanguage bool `yaml:"detect_language" json:"detect_language"`
}

// DefaultLangPrefix is the default fence class prefix.
const DefaultLangPrefix = "language-"

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{LangPrefix: DefaultLangPrefix}
}

// RuleFunc renders the token at idx into b.
type RuleFunc func(r *Renderer, b *strings.Builder, tokens []*mdast.Token, idx int)

// Renderer renders token streams to HTML. A configured Renderer is safe for
// concurrent use.
type Renderer struct {
	opts  Options
	rules map[mdast.TokenType]RuleFunc
}

// New creates a renderer with the default rules.
func New(opts Options) *Renderer {
	r := &Renderer{
		opts: opts,
		rules: map[mdast.TokenType]RuleFunc{
			mdast.TypeCodeInline: renderCodeInline,
			mdast.TypeCodeBlock:  renderCodeBlock,
			mdast.TypeFence:      renderFence,
			mdast.TypeImage:      renderImage,
			mdast.TypeHardbreak:  renderHardbreak,
			mdast.TypeSoftbreak:  renderSoftbreak,
			mdast.TypeText:       renderText,
			mdast.TypeHTMLInline: renderHTMLInline,
			mdast.TypeLinkOpen:   renderLinkOpen,
		},
	}
	return r
}

// Options returns the rendering options.
func (r *Renderer) Options() Options {
	return r.opts
}

// SetRule replaces the rule for a token type. A nil rule restores generic
// tag rendering.
func (r *Renderer) SetRule(typ mdast.TokenType, rule RuleFunc) {
	if rule == nil {
		delete(r.rules, typ)
		return
	}
	r.rules[typ] = rule
}

// Render renders a block token stream.
func (r *Renderer) Render(tokens []*mdast.Token) string {
	var b strings.Builder

	for idx, tok := range tokens {
		if tok.Type == mdast.TypeInline {
			r.renderInlineToken(&b, tok)
			continue
		}
		if rule, ok := r.rules[tok.Type]; ok {
			rule(r, &b, tokens, idx)
			continue
		}
		r.RenderToken(&b, tokens, idx)
	}

	return b.String()
}

// RenderInline renders inline child tokens.
func (r *Renderer) RenderInline(tokens []*mdast.Token) string {
	var b strings.Builder
	r.renderInline(&b, tokens)
	return b.String()
}

func (r *Renderer) renderInline(b *strings.Builder, tokens []*mdast.Token) {
	for idx, tok := range tokens {
		if rule, ok := r.rules[tok.Type]; ok {
			rule(r, b, tokens, idx)
			continue
		}
		r.RenderToken(b, tokens, idx)
	}
}

// renderInlineToken renders an inline token's children, or its escaped raw
// content when the inline stage has not run.
func (r *Renderer) renderInlineToken(b *strings.Builder, tok *mdast.Token) {
	if tok.Children == nil {
		b.WriteString(Escape(tok.Content))
		return
	}
	r.renderInline(b, tok.Children)
}

// RenderToken renders an open, close or self-closing token generically.
func (r *Renderer) RenderToken(b *strings.Builder, tokens []*mdast.Token, idx int) {
	tok := tokens[idx]
	if tok.Hidden {
		return
	}

	// Separate a hidden paragraph's content from a following block tag.
	if tok.Block && tok.Nesting != mdast.NestingClose && idx > 0 && tokens[idx-1].Hidden {
		b.WriteByte('\n')
	}

	if tok.Nesting == mdast.NestingClose {
		b.WriteString("</")
	} else {
		b.WriteString("<")
	}
	b.WriteString(tok.Tag)
	r.RenderAttrs(b, tok.Attrs)

	if tok.Nesting == mdast.NestingSelf && r.opts.XHTML {
		b.WriteString(" /")
	}
	b.WriteByte('>')

	if needsLineFeed(tokens, idx) {
		b.WriteByte('\n')
	}
}

// needsLineFeed reports whether a block tag is followed by a newline. Tags
// directly followed by inline content or their own close tag are not.
func needsLineFeed(tokens []*mdast.Token, idx int) bool {
	tok := tokens[idx]
	if !tok.Block {
		return false
	}
	if tok.Nesting != mdast.NestingOpen || idx+1 >= len(tokens) {
		return true
	}

	next := tokens[idx+1]
	switch {
	case next.Type == mdast.TypeInline || next.Hidden:
		return false
	case next.Nesting == mdast.NestingClose && next.Tag == tok.Tag:
		return false
	default:
		return true
	}
}

// RenderAttrs writes attributes with escaped values.
func (r *Renderer) RenderAttrs(b *strings.Builder, attrs mdast.Attrs) {
	for _, attr := range attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		b.WriteString(Escape(attr.Value))
		b.WriteByte('"')
	}
}

// Escape escapes HTML special characters.
func Escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}

// EscapeURL percent-encodes a link destination and escapes it for an attribute.
func EscapeURL(s string) string {
	return string(util.EscapeHTML(util.URLEscape([]byte(s), true)))
}
