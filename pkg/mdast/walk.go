package mdast

import "errors"

// ErrSkipChildren can be returned from a WalkFunc to skip the Children of
// the current token.
var ErrSkipChildren = errors.New("skip children")

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(tok *Token) error

// Walk visits every token in order, descending into inline Children after
// their parent. If walkFunc returns a non-nil error other than
// ErrSkipChildren, the walk stops immediately and returns that error.
func Walk(tokens []*Token, walkFunc WalkFunc) error {
	for _, tok := range tokens {
		if tok == nil {
			continue
		}

		err := walkFunc(tok)
		if errors.Is(err, ErrSkipChildren) {
			continue
		}
		if err != nil {
			return err
		}

		if err := Walk(tok.Children, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// Filter returns the top-level tokens of the given type.
func Filter(tokens []*Token, typ TokenType) []*Token {
	var result []*Token
	for _, tok := range tokens {
		if tok.Type == typ {
			result = append(result, tok)
		}
	}
	return result
}

// Count returns the number of tokens of the given type, including inline children.
func Count(tokens []*Token, typ TokenType) int {
	count := 0
	_ = Walk(tokens, func(tok *Token) error {
		if tok.Type == typ {
			count++
		}
		return nil
	})
	return count
}

// FindClose returns the index of the token closing the open token at index
// open, or -1 if the stream is unbalanced.
func FindClose(tokens []*Token, open int) int {
	if open < 0 || open >= len(tokens) || !tokens[open].IsOpen() {
		return -1
	}

	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i].Nesting {
		case NestingOpen:
			depth++
		case NestingClose:
			depth--
			if depth == 0 {
				return i
			}
		case NestingSelf:
		}
	}

	return -1
}

// PlainText concatenates the text content of inline children, dropping markup.
// Falls back to Content when the inline stage has not run.
func PlainText(tok *Token) string {
	if tok == nil {
		return ""
	}
	if len(tok.Children) == 0 {
		return tok.Content
	}

	var buf []byte
	for _, child := range tok.Children {
		switch child.Type {
		case TypeText, TypeCodeInline, TypeHTMLInline:
			buf = append(buf, child.Content...)
		case TypeSoftbreak, TypeHardbreak:
			buf = append(buf, ' ')
		case TypeImage:
			buf = append(buf, PlainText(child)...)
		default:
		}
	}
	return string(buf)
}
