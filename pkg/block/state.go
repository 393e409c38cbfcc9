package block

import (
	"strings"

	"github.com/yaklabco/gomdtable/pkg/mdast"
)

// Parent types recorded in State.ParentType.
const (
	ParentRoot       = "root"
	ParentBlockquote = "blockquote"
	ParentList       = "list"
	ParentParagraph  = "paragraph"
	ParentTableCell  = "table_cell"
)

// State is the block parser state for one document or one nested view.
// Rules read lines through it and append tokens to it.
type State struct {
	// Src is the full original document.
	Src string

	// Lines is the line table of this state. Nested states get their own.
	Lines []Line

	// BlkIndent is the required block indent in columns.
	BlkIndent int

	// Line is the cursor: the first line not yet consumed.
	Line int

	// LineMax is the number of lines in this state.
	LineMax int

	// Level is the current token nesting level.
	Level int

	// Tight is false once blank lines separated two blocks of this state.
	Tight bool

	// ParentType names the construct being parsed ("root", "list", ...).
	// Rules probing terminators see the chain name here.
	ParentType string

	// Tokens is the output stream.
	Tokens []*mdast.Token

	// Env is shared by every state of one parse.
	Env *Env

	parser *Parser
	depth  int
}

// NewState creates a root state over lines of src.
func NewState(parser *Parser, src string, lines []Line, env *Env) *State {
	if env == nil {
		env = NewEnv()
	}
	return &State{
		Src:        src,
		Lines:      lines,
		LineMax:    len(lines),
		Tight:      true,
		ParentType: ParentRoot,
		Env:        env,
		parser:     parser,
	}
}

// Push appends a new block token and adjusts the nesting level.
// The returned token may be modified until the state is discarded.
func (s *State) Push(typ mdast.TokenType, tag string, nesting mdast.Nesting) *mdast.Token {
	tok := mdast.NewToken(typ, tag, nesting)
	tok.Block = true

	if nesting < 0 {
		s.Level--
	}
	tok.Level = s.Level
	if nesting > 0 {
		s.Level++
	}

	s.Tokens = append(s.Tokens, tok)
	return tok
}

// Append adds already-built tokens (typically from TokenizeView) to the stream.
func (s *State) Append(tokens ...*mdast.Token) {
	s.Tokens = append(s.Tokens, tokens...)
}

// Source returns the full document text.
func (s *State) Source() string {
	return s.Src
}

// BlockIndent returns the required block indent in columns.
func (s *State) BlockIndent() int {
	return s.BlkIndent
}

// LineAt returns the line at index n, or a zero Line when out of range.
func (s *State) LineAt(n int) Line {
	if n < 0 || n >= len(s.Lines) {
		return Line{Number: -1}
	}
	return s.Lines[n]
}

// LineText returns the text of line n.
func (s *State) LineText(n int) string {
	return s.LineAt(n).Text
}

// Indent returns the indentation of line n in columns.
func (s *State) Indent(n int) int {
	return s.LineAt(n).Indent()
}

// IsEmpty returns true if line n is blank or out of range.
func (s *State) IsEmpty(n int) bool {
	return s.LineAt(n).IsBlank()
}

// SkipEmptyLines returns the first non-blank line at or after from.
func (s *State) SkipEmptyLines(from int) int {
	for line := from; line < s.LineMax; line++ {
		if !s.IsEmpty(line) {
			return line
		}
	}
	return s.LineMax
}

// SetLine moves the cursor to line n.
func (s *State) SetLine(n int) {
	s.Line = n
}

// overIndented reports whether line n is indented 4+ columns past BlkIndent.
func (s *State) overIndented(n int) bool {
	return s.Indent(n)-s.BlkIndent >= tabStop
}

// GetLines joins lines [begin, end) with up to indent columns stripped from each.
func (s *State) GetLines(begin, end, indent int, keepLastLF bool) string {
	if begin >= end {
		return ""
	}

	var builder strings.Builder
	for line := begin; line < end && line < len(s.Lines); line++ {
		stripped := s.Lines[line].Strip(indent)
		builder.WriteString(stripped.Text)
		if line+1 < end || keepLastLF {
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

// Terminates reports whether any rule of the named chain would start a block
// at line, probing in silent mode. Rules see chain as ParentType.
func (s *State) Terminates(chain string, line, end int) bool {
	oldParent := s.ParentType
	s.ParentType = chain
	defer func() { s.ParentType = oldParent }()

	for _, rule := range s.parser.ruler.Rules(chain) {
		if rule(s, line, end, true) {
			return true
		}
	}
	return false
}

// TokenizeView runs the full block rule chain over view and returns the
// resulting tokens at the current nesting level. The receiver's line table is
// not touched.
func (s *State) TokenizeView(view View, parentType string) []*mdast.Token {
	return s.tokenizeChild(view, parentType).Tokens
}

// tokenizeChild tokenizes view in a fresh nested state and returns it.
func (s *State) tokenizeChild(view View, parentType string) *State {
	child := &State{
		Src:        s.Src,
		Lines:      view.Lines,
		LineMax:    len(view.Lines),
		Level:      s.Level,
		Tight:      true,
		ParentType: parentType,
		Env:        s.Env,
		parser:     s.parser,
		depth:      s.depth + 1,
	}
	s.parser.Tokenize(child, 0, child.LineMax)
	return child
}

// Map returns the document line range of state-relative lines [start, end),
// suitable for Token.Map.
func (s *State) Map(start, end int) *mdast.LineRange {
	first := s.LineAt(start).Number
	if end <= start {
		return mdast.NewLineRange(first, first)
	}
	last := s.LineAt(end - 1).Number
	return mdast.NewLineRange(first, last+1)
}
