package mdast

// TokenType names the kind of a token in the block/inline token stream.
type TokenType string

// Block-level token types.
const (
	TypeTableOpen  TokenType = "table_open"
	TypeTableClose TokenType = "table_close"
	TypeTROpen     TokenType = "tr_open"
	TypeTRClose    TokenType = "tr_close"
	TypeTHOpen     TokenType = "th_open"
	TypeTHClose    TokenType = "th_close"
	TypeTDOpen     TokenType = "td_open"
	TypeTDClose    TokenType = "td_close"

	TypeParagraphOpen  TokenType = "paragraph_open"
	TypeParagraphClose TokenType = "paragraph_close"
	TypeHeadingOpen    TokenType = "heading_open"
	TypeHeadingClose   TokenType = "heading_close"

	TypeBlockquoteOpen   TokenType = "blockquote_open"
	TypeBlockquoteClose  TokenType = "blockquote_close"
	TypeBulletListOpen   TokenType = "bullet_list_open"
	TypeBulletListClose  TokenType = "bullet_list_close"
	TypeOrderedListOpen  TokenType = "ordered_list_open"
	TypeOrderedListClose TokenType = "ordered_list_close"
	TypeListItemOpen     TokenType = "list_item_open"
	TypeListItemClose    TokenType = "list_item_close"

	TypeCodeBlock TokenType = "code_block"
	TypeFence     TokenType = "fence"
	TypeHR        TokenType = "hr"

	// TypeInline is a leaf whose Content is parsed by the inline stage into Children.
	TypeInline TokenType = "inline"
)

// Inline child token types.
const (
	TypeText        TokenType = "text"
	TypeCodeInline  TokenType = "code_inline"
	TypeEmOpen      TokenType = "em_open"
	TypeEmClose     TokenType = "em_close"
	TypeStrongOpen  TokenType = "strong_open"
	TypeStrongClose TokenType = "strong_close"
	TypeSOpen       TokenType = "s_open"
	TypeSClose      TokenType = "s_close"
	TypeLinkOpen    TokenType = "link_open"
	TypeLinkClose   TokenType = "link_close"
	TypeImage       TokenType = "image"
	TypeSoftbreak   TokenType = "softbreak"
	TypeHardbreak   TokenType = "hardbreak"
	TypeHTMLInline  TokenType = "html_inline"
)

// Nesting tells whether a token opens, closes, or is self-contained.
type Nesting int8

const (
	NestingClose Nesting = -1
	NestingSelf  Nesting = 0
	NestingOpen  Nesting = 1
)

// Token is one element of the flat token stream produced by the block parser.
// Open and close tokens come in pairs; inline tokens carry Children after the
// inline stage has run.
type Token struct {
	// Type identifies the token (e.g. "table_open").
	Type TokenType

	// Tag is the HTML tag name used by renderers (e.g. "td").
	Tag string

	// Nesting is +1 for open, -1 for close, 0 for self-contained tokens.
	Nesting Nesting

	// Attrs holds presentation attributes in insertion order.
	Attrs Attrs

	// Map is the source line range covered by a block token.
	// Nil for inline children.
	Map *LineRange

	// Level is the nesting depth in the token stream.
	Level int

	// Content is the raw text of leaf tokens (inline, code, fence, text).
	Content string

	// Markup is the source markup that produced the token ("```", "-", "|").
	Markup string

	// Info is the fence info string.
	Info string

	// Block is true for tokens emitted by the block stage.
	Block bool

	// Hidden marks tokens that renderers skip (tight-list and cell paragraphs).
	Hidden bool

	// Children holds inline child tokens of an inline token.
	Children []*Token

	// Meta holds optional rule-specific metadata (e.g. table.CellMeta).
	// Must be treated as opaque by generic logic.
	Meta any
}

// NewToken creates a token with the given type, tag and nesting.
func NewToken(typ TokenType, tag string, nesting Nesting) *Token {
	return &Token{Type: typ, Tag: tag, Nesting: nesting}
}

// IsOpen returns true if the token opens a nested block.
func (t *Token) IsOpen() bool {
	return t.Nesting == NestingOpen
}

// IsClose returns true if the token closes a nested block.
func (t *Token) IsClose() bool {
	return t.Nesting == NestingClose
}

// AttrGet returns the value of the named attribute.
func (t *Token) AttrGet(name string) (string, bool) {
	return t.Attrs.Get(name)
}

// AttrSet sets the named attribute, replacing any previous value.
func (t *Token) AttrSet(name, value string) {
	t.Attrs = t.Attrs.Set(name, value)
}

// ValidateNesting checks that every open token has a matching close token of
// the same tag at the same level, in a properly nested order.
func ValidateNesting(tokens []*Token) bool {
	var stack []*Token

	for _, tok := range tokens {
		switch tok.Nesting {
		case NestingOpen:
			stack = append(stack, tok)
		case NestingClose:
			if len(stack) == 0 {
				return false
			}
			top := stack[len(stack)-1]
			if top.Tag != tok.Tag || top.Level != tok.Level {
				return false
			}
			stack = stack[:len(stack)-1]
		case NestingSelf:
		}
	}

	return len(stack) == 0
}
