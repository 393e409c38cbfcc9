package inline

import (
	"bytes"
	"strings"

	"github.com/yaklabco/gomdtable/pkg/mdast"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

// mapper converts goldmark inline nodes into a flat child token stream.
type mapper struct {
	source []byte
	tokens []*mdast.Token
	level  int
}

func newMapper(source []byte) *mapper {
	return &mapper{source: source}
}

// mapChildren maps every child of parent in order.
func (m *mapper) mapChildren(parent ast.Node) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapNode(child)
	}
}

// mapNode converts a single goldmark node.
func (m *mapper) mapNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Text:
		m.mapText(n)

	case *ast.String:
		m.text(string(n.Value))

	case *ast.CodeSpan:
		m.mapCodeSpan(n)

	case *ast.Emphasis:
		typ, closeType, tag := mdast.TypeEmOpen, mdast.TypeEmClose, "em"
		if n.Level == 2 {
			typ, closeType, tag = mdast.TypeStrongOpen, mdast.TypeStrongClose, "strong"
		}
		m.push(typ, tag, mdast.NestingOpen)
		m.mapChildren(n)
		m.push(closeType, tag, mdast.NestingClose)

	case *east.Strikethrough:
		open := m.push(mdast.TypeSOpen, "s", mdast.NestingOpen)
		open.Markup = "~~"
		m.mapChildren(n)
		closeTok := m.push(mdast.TypeSClose, "s", mdast.NestingClose)
		closeTok.Markup = "~~"

	case *ast.Link:
		open := m.push(mdast.TypeLinkOpen, "a", mdast.NestingOpen)
		open.AttrSet("href", string(n.Destination))
		if len(n.Title) > 0 {
			open.AttrSet("title", unescape(n.Title))
		}
		m.mapChildren(n)
		m.push(mdast.TypeLinkClose, "a", mdast.NestingClose)

	case *ast.Image:
		m.mapImage(n)

	case *ast.AutoLink:
		m.mapAutoLink(n)

	case *ast.RawHTML:
		var raw bytes.Buffer
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			raw.Write(seg.Value(m.source))
		}
		tok := m.push(mdast.TypeHTMLInline, "", mdast.NestingSelf)
		tok.Content = raw.String()

	default:
		// Unknown containers contribute their children.
		m.mapChildren(node)
	}
}

// push appends a child token at the current level.
func (m *mapper) push(typ mdast.TokenType, tag string, nesting mdast.Nesting) *mdast.Token {
	tok := mdast.NewToken(typ, tag, nesting)

	if nesting < 0 {
		m.level--
	}
	tok.Level = m.level
	if nesting > 0 {
		m.level++
	}

	m.tokens = append(m.tokens, tok)
	return tok
}

// text appends literal text, merging it into a preceding text token.
func (m *mapper) text(content string) {
	if content == "" {
		return
	}
	if n := len(m.tokens); n > 0 && m.tokens[n-1].Type == mdast.TypeText {
		m.tokens[n-1].Content += content
		return
	}
	tok := m.push(mdast.TypeText, "", mdast.NestingSelf)
	tok.Content = content
}

// mapText converts a goldmark Text node. Line breaks are separate tokens.
func (m *mapper) mapText(node *ast.Text) {
	value := node.Value(m.source)
	if node.IsRaw() {
		m.text(string(value))
	} else {
		m.text(unescape(value))
	}

	switch {
	case node.HardLineBreak():
		m.push(mdast.TypeHardbreak, "br", mdast.NestingSelf)
	case node.SoftLineBreak():
		m.push(mdast.TypeSoftbreak, "br", mdast.NestingSelf)
	}
}

// mapCodeSpan converts a code span. Line endings become spaces.
func (m *mapper) mapCodeSpan(node *ast.CodeSpan) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			value := c.Value(m.source)
			if bytes.HasSuffix(value, []byte("\n")) {
				code.Write(value[:len(value)-1])
				code.WriteByte(' ')
				continue
			}
			code.Write(value)
		case *ast.String:
			code.Write(c.Value)
		}
	}

	tok := m.push(mdast.TypeCodeInline, "code", mdast.NestingSelf)
	tok.Content = code.String()
	tok.Markup = "`"
}

// mapImage converts an image. Its description is mapped into Children.
func (m *mapper) mapImage(node *ast.Image) {
	desc := newMapper(m.source)
	desc.mapChildren(node)

	tok := m.push(mdast.TypeImage, "img", mdast.NestingSelf)
	tok.Children = desc.tokens
	tok.Content = mdast.PlainText(tok)
	tok.AttrSet("src", string(node.Destination))
	tok.AttrSet("alt", tok.Content)
	if len(node.Title) > 0 {
		tok.AttrSet("title", unescape(node.Title))
	}
}

// mapAutoLink converts <scheme:...>, <user@host> and linkified URLs.
func (m *mapper) mapAutoLink(node *ast.AutoLink) {
	url := string(node.URL(m.source))
	if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		url = "mailto:" + url
	}

	open := m.push(mdast.TypeLinkOpen, "a", mdast.NestingOpen)
	open.AttrSet("href", url)
	open.Markup = "autolink"
	open.Info = "auto"

	m.text(string(node.Label(m.source)))

	closeTok := m.push(mdast.TypeLinkClose, "a", mdast.NestingClose)
	closeTok.Markup = "autolink"
	closeTok.Info = "auto"
}

// unescape resolves backslash escapes and character references.
func unescape(value []byte) string {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return string(value)
}
