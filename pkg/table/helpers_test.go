package table

import (
	"context"
	"testing"

	"github.com/yaklabco/gomdtable/pkg/block"
	"github.com/yaklabco/gomdtable/pkg/mdast"
)

func newParser(t *testing.T) *block.Parser {
	t.Helper()

	parser := block.New()
	if err := Register(parser); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return parser
}

func parse(t *testing.T, src string) []*mdast.Token {
	t.Helper()

	tokens, err := newParser(t).Parse(context.Background(), src, nil)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return tokens
}

func newState(t *testing.T, src string) *block.State {
	t.Helper()
	return block.NewState(newParser(t), src, block.SplitLines(src), nil)
}

func types(tokens []*mdast.Token) []mdast.TokenType {
	out := make([]mdast.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func equalTypes(got, want []mdast.TokenType) bool {
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
