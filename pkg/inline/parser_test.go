package inline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/gomdtable/pkg/block"
	"github.com/yaklabco/gomdtable/pkg/mdast"
)

func childTypes(tokens []*mdast.Token) []mdast.TokenType {
	out := make([]mdast.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func sameTypes(got, want []mdast.TokenType) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestParseStructure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		flavor string
		input  string
		want   []mdast.TokenType
	}{
		{name: "empty", input: "", want: nil},
		{name: "plain", input: "plain text", want: []mdast.TokenType{mdast.TypeText}},
		{
			name:  "emphasis and strong",
			input: "a *b* **c**",
			want: []mdast.TokenType{
				mdast.TypeText,
				mdast.TypeEmOpen, mdast.TypeText, mdast.TypeEmClose,
				mdast.TypeText,
				mdast.TypeStrongOpen, mdast.TypeText, mdast.TypeStrongClose,
			},
		},
		{name: "code span", input: "`a|b`", want: []mdast.TokenType{mdast.TypeCodeInline}},
		{
			name:  "soft break",
			input: "one\ntwo",
			want:  []mdast.TokenType{mdast.TypeText, mdast.TypeSoftbreak, mdast.TypeText},
		},
		{
			name:   "strikethrough gfm",
			flavor: FlavorGFM,
			input:  "~~gone~~",
			want:   []mdast.TokenType{mdast.TypeSOpen, mdast.TypeText, mdast.TypeSClose},
		},
		{
			name:   "strikethrough commonmark",
			flavor: FlavorCommonMark,
			input:  "~~gone~~",
			want:   []mdast.TokenType{mdast.TypeText},
		},
		{
			name:  "inline link",
			input: "[x](/u)",
			want:  []mdast.TokenType{mdast.TypeLinkOpen, mdast.TypeText, mdast.TypeLinkClose},
		},
		{
			name:  "autolink",
			input: "<https://example.com>",
			want:  []mdast.TokenType{mdast.TypeLinkOpen, mdast.TypeText, mdast.TypeLinkClose},
		},
		{
			name:  "raw html",
			input: "<span>hi</span>",
			want:  []mdast.TokenType{mdast.TypeHTMLInline, mdast.TypeText, mdast.TypeHTMLInline},
		},
		{name: "image", input: "![alt](/i.png)", want: []mdast.TokenType{mdast.TypeImage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := childTypes(New(tt.flavor).Parse(tt.input, nil))
			if !sameTypes(got, tt.want) {
				t.Errorf("Parse(%q) types = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseUnescapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: `a \| b`, want: "a | b"},
		{input: `\*not emphasis\*`, want: "*not emphasis*"},
		{input: "&amp; &#35; &copy;", want: "& # ©"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			tokens := New(FlavorGFM).Parse(tt.input, nil)
			if len(tokens) != 1 || tokens[0].Type != mdast.TypeText {
				t.Fatalf("expected a single text token, got %v", childTypes(tokens))
			}
			if tokens[0].Content != tt.want {
				t.Errorf("content = %q, want %q", tokens[0].Content, tt.want)
			}
		})
	}
}

func TestParseLevels(t *testing.T) {
	t.Parallel()

	tokens := New(FlavorGFM).Parse("**a *b***", nil)
	if !mdast.ValidateNesting(tokens) {
		t.Fatalf("unbalanced children: %v", childTypes(tokens))
	}
	if tokens[0].Level != 0 || tokens[1].Level != 1 {
		t.Errorf("levels = %d, %d; want 0, 1", tokens[0].Level, tokens[1].Level)
	}
}

func TestParseCodeSpanContent(t *testing.T) {
	t.Parallel()

	tokens := New(FlavorGFM).Parse("`a|b`", nil)
	if tokens[0].Content != "a|b" {
		t.Errorf("code content = %q, want %q", tokens[0].Content, "a|b")
	}
}

func TestParseLinks(t *testing.T) {
	t.Parallel()

	env := block.NewEnv()
	env.AddReference(block.Reference{Label: "Ref", Destination: "/target", Title: "T"})

	tokens := New(FlavorGFM).Parse("[x][ref] [y](/direct \"Dt\") <me@example.com>", env)
	links := mdast.Filter(tokens, mdast.TypeLinkOpen)
	if len(links) != 3 {
		t.Fatalf("got %d links, want 3: %v", len(links), childTypes(tokens))
	}

	tests := []struct {
		href  string
		title string
	}{
		{href: "/target", title: "T"},
		{href: "/direct", title: "Dt"},
		{href: "mailto:me@example.com"},
	}
	for i, tt := range tests {
		href, _ := links[i].AttrGet("href")
		title, _ := links[i].AttrGet("title")
		if href != tt.href || title != tt.title {
			t.Errorf("link %d = (%q, %q), want (%q, %q)", i, href, title, tt.href, tt.title)
		}
	}
}

func TestParseUndefinedReferenceStaysText(t *testing.T) {
	t.Parallel()

	tokens := New(FlavorGFM).Parse("[x][missing]", block.NewEnv())
	if n := len(mdast.Filter(tokens, mdast.TypeLinkOpen)); n != 0 {
		t.Errorf("got %d links for an undefined reference", n)
	}
	if got := mdast.PlainText(&mdast.Token{Children: tokens}); got != "[x][missing]" {
		t.Errorf("plain text = %q", got)
	}
}

func TestParseImageAlt(t *testing.T) {
	t.Parallel()

	tokens := New(FlavorGFM).Parse("![an *image*](/i.png \"Title\")", nil)
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}

	img := tokens[0]
	if alt, _ := img.AttrGet("alt"); alt != "an image" {
		t.Errorf("alt = %q, want %q", alt, "an image")
	}
	if src, _ := img.AttrGet("src"); src != "/i.png" {
		t.Errorf("src = %q", src)
	}
	if title, _ := img.AttrGet("title"); title != "Title" {
		t.Errorf("title = %q", title)
	}
}

func TestParseHardBreak(t *testing.T) {
	t.Parallel()

	tokens := New(FlavorGFM).Parse("a\\\nb", nil)
	if n := len(mdast.Filter(tokens, mdast.TypeHardbreak)); n != 1 {
		t.Fatalf("got %d hard breaks, want 1: %v", n, childTypes(tokens))
	}
	if got := strings.TrimSpace(tokens[0].Content); got != "a" {
		t.Errorf("text before break = %q, want %q", got, "a")
	}
}

func TestProcess(t *testing.T) {
	t.Parallel()

	tokens := []*mdast.Token{
		mdast.NewToken(mdast.TypeParagraphOpen, "p", mdast.NestingOpen),
		{Type: mdast.TypeInline, Content: "*x*"},
		mdast.NewToken(mdast.TypeParagraphClose, "p", mdast.NestingClose),
		{Type: mdast.TypeFence, Content: "*x*"},
	}

	if err := New(FlavorGFM).Process(context.Background(), tokens, nil); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if n := len(tokens[1].Children); n != 3 {
		t.Errorf("inline token has %d children, want 3", n)
	}
	if tokens[3].Children != nil {
		t.Error("fence token should not get children")
	}
}

func TestProcessCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tokens := []*mdast.Token{{Type: mdast.TypeInline, Content: "x"}}
	err := New(FlavorGFM).Process(ctx, tokens, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestFlavorDefault(t *testing.T) {
	t.Parallel()

	if got := New("bogus").Flavor(); got != FlavorGFM {
		t.Errorf("Flavor() = %q, want %q", got, FlavorGFM)
	}
	if got := New(FlavorCommonMark).Flavor(); got != FlavorCommonMark {
		t.Errorf("Flavor() = %q, want %q", got, FlavorCommonMark)
	}
}
