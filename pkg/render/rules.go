package render

import (
	"strings"

	"github.com/yaklabco/gomdtable/pkg/langdetect"
	"github.com/yaklabco/gomdtable/pkg/mdast"
)

func renderCodeInline(r *Renderer, b *strings.Builder, tokens []*mdast.Token, idx int) {
	tok := tokens[idx]
	b.WriteString("<code")
	r.RenderAttrs(b, tok.Attrs)
	b.WriteByte('>')
	b.WriteString(Escape(tok.Content))
	b.WriteString("</code>")
}

func renderCodeBlock(r *Renderer, b *strings.Builder, tokens []*mdast.Token, idx int) {
	tok := tokens[idx]
	b.WriteString("<pre")
	r.RenderAttrs(b, tok.Attrs)
	b.WriteString("><code>")
	b.WriteString(Escape(tok.Content))
	b.WriteString("</code></pre>\n")
}

func renderFence(r *Renderer, b *strings.Builder, tokens []*mdast.Token, idx int) {
	tok := tokens[idx]
	attrs := tok.Attrs

	lang := langdetect.FenceLanguage(tok.Info, tok.Content, r.opts.DetectLanguage)
	if lang != "" {
		attrs = attrs.Join("class", r.opts.LangPrefix+lang)
	}

	b.WriteString("<pre><code")
	r.RenderAttrs(b, attrs)
	b.WriteByte('>')
	b.WriteString(Escape(tok.Content))
	b.WriteString("</code></pre>\n")
}

func renderImage(r *Renderer, b *strings.Builder, tokens []*mdast.Token, idx int) {
	tok := tokens[idx]
	b.WriteString("<img")
	for _, attr := range tok.Attrs {
		value := attr.Value
		switch attr.Name {
		case "src":
			value = EscapeURL(value)
		case "alt":
			value = Escape(mdast.PlainText(tok))
		default:
			value = Escape(value)
		}
		b.WriteString(" " + attr.Name + `="` + value + `"`)
	}
	if r.opts.XHTML {
		b.WriteString(" /")
	}
	b.WriteByte('>')
}

func renderLinkOpen(r *Renderer, b *strings.Builder, tokens []*mdast.Token, idx int) {
	tok := tokens[idx]
	b.WriteString("<a")
	for _, attr := range tok.Attrs {
		value := Escape(attr.Value)
		if attr.Name == "href" {
			value = EscapeURL(attr.Value)
		}
		b.WriteString(" " + attr.Name + `="` + value + `"`)
	}
	b.WriteByte('>')
}

func renderHardbreak(r *Renderer, b *strings.Builder, _ []*mdast.Token, _ int) {
	b.WriteString(r.lineBreak())
}

func renderSoftbreak(r *Renderer, b *strings.Builder, _ []*mdast.Token, _ int) {
	if r.opts.Breaks {
		b.WriteString(r.lineBreak())
		return
	}
	b.WriteByte('\n')
}

func renderText(_ *Renderer, b *strings.Builder, tokens []*mdast.Token, idx int) {
	b.WriteString(Escape(tokens[idx].Content))
}

func renderHTMLInline(_ *Renderer, b *strings.Builder, tokens []*mdast.Token, idx int) {
	b.WriteString(tokens[idx].Content)
}

func (r *Renderer) lineBreak() string {
	if r.opts.XHTML {
		return "<br />\n"
	}
	return "<br>\n"
}
