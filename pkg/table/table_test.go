package table

import (
	"errors"
	"slices"
	"testing"

	"github.com/yaklabco/gomdtable/pkg/block"
	"github.com/yaklabco/gomdtable/pkg/mdast"
)

func TestRecognizeRoundTrip(t *testing.T) {
	t.Parallel()

	state := newState(t, "| A | B |\n|---|:-:|\n| 1 | 2 |")
	if !Recognize(state, 0, state.LineMax, false) {
		t.Fatal("expected table to be recognized")
	}
	if state.Line != 3 {
		t.Errorf("cursor = %d, want 3", state.Line)
	}

	want := []mdast.TokenType{
		mdast.TypeTableOpen,
		mdast.TypeTROpen,
		mdast.TypeTHOpen, mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose, mdast.TypeTHClose,
		mdast.TypeTHOpen, mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose, mdast.TypeTHClose,
		mdast.TypeTRClose,
		mdast.TypeTROpen,
		mdast.TypeTDOpen, mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose, mdast.TypeTDClose,
		mdast.TypeTDOpen, mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose, mdast.TypeTDClose,
		mdast.TypeTRClose,
		mdast.TypeTableClose,
	}
	if got := types(state.Tokens); !equalTypes(got, want) {
		t.Fatalf("token types = %v, want %v", got, want)
	}
	if !mdast.ValidateNesting(state.Tokens) {
		t.Error("tokens are not properly nested")
	}

	headers := mdast.Filter(state.Tokens, mdast.TypeTHOpen)
	if _, ok := headers[0].AttrGet("style"); ok {
		t.Error("first header cell should have no style")
	}
	if style, _ := headers[1].AttrGet("style"); style != "text-align:center" {
		t.Errorf("second header style = %q, want text-align:center", style)
	}

	cells := mdast.Filter(state.Tokens, mdast.TypeTDOpen)
	if style, _ := cells[1].AttrGet("style"); style != "text-align:center" {
		t.Errorf("second body cell style = %q, want text-align:center", style)
	}

	var contents []string
	for _, tok := range mdast.Filter(state.Tokens, mdast.TypeInline) {
		contents = append(contents, tok.Content)
	}
	if !slices.Equal(contents, []string{"A", "B", "1", "2"}) {
		t.Errorf("inline contents = %q", contents)
	}

	for _, tok := range state.Tokens {
		if tok.Type == mdast.TypeParagraphOpen && !tok.Hidden {
			t.Error("cell paragraphs should be hidden")
		}
	}

	open := state.Tokens[0]
	if open.Map == nil || open.Map.Start != 0 || open.Map.End != 3 {
		t.Errorf("table map = %v, want [0, 3)", open.Map)
	}
	meta, ok := open.Meta.(*Meta)
	if !ok || !slices.Equal(meta.Aligns, []Align{AlignNone, AlignCenter}) {
		t.Errorf("table meta = %#v", open.Meta)
	}
}

func TestHeaderCellInlineIsWrappedInHiddenParagraph(t *testing.T) {
	t.Parallel()

	tokens := parse(t, "| a | b |\n|---|---|\n")

	for i, tok := range tokens {
		if tok.Type != mdast.TypeTHOpen {
			continue
		}
		open, inline, closeTok := tokens[i+1], tokens[i+2], tokens[i+3]
		if open.Type != mdast.TypeParagraphOpen || closeTok.Type != mdast.TypeParagraphClose {
			t.Fatalf("header cell holds %s %s %s, want a paragraph around the inline", open.Type, inline.Type, closeTok.Type)
		}
		if !open.Hidden || !closeTok.Hidden {
			t.Error("header cell paragraph should be hidden")
		}
		if open.Level != tok.Level+1 || inline.Level != tok.Level+2 {
			t.Errorf("levels = %d/%d, want %d/%d", open.Level, inline.Level, tok.Level+1, tok.Level+2)
		}
		if open.Map == nil || open.Map.Start != 0 || open.Map.End != 1 {
			t.Errorf("paragraph map = %v, want [0, 1)", open.Map)
		}
	}

	if !mdast.ValidateNesting(tokens) {
		t.Error("tokens are not properly nested")
	}
}

func TestRecognizeSilentHasNoSideEffects(t *testing.T) {
	t.Parallel()

	state := newState(t, "| A | B |\n|---|---|\n| 1 | 2 |")
	if !Recognize(state, 0, state.LineMax, true) {
		t.Fatal("expected silent check to match")
	}
	if len(state.Tokens) != 0 {
		t.Errorf("silent check pushed %d tokens", len(state.Tokens))
	}
	if state.Line != 0 {
		t.Errorf("silent check moved cursor to %d", state.Line)
	}
	if state.Level != 0 {
		t.Errorf("silent check changed level to %d", state.Level)
	}
}

func TestRecognizeRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "single line", src: "| a | b |"},
		{name: "blank delimiter", src: "a | b\n\n---|---"},
		{name: "delimiter starts with letter", src: "a | b\nfoo|bar"},
		{name: "delimiter with foreign characters", src: "a | b\n|--x|---|"},
		{name: "interior empty delimiter cell", src: "a | b\n|---||---|"},
		{name: "over-indented delimiter", src: "a | b\n    ---|---"},
		{name: "header without pipe", src: "a b\n---|---"},
		{name: "over-indented header", src: "    a | b\n---|---"},
		{name: "more header cells than columns", src: "| a | b | c |\n|---|---|"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := newState(t, tt.src)
			if Recognize(state, 0, state.LineMax, false) {
				t.Errorf("expected %q to be rejected", tt.src)
			}
			if len(state.Tokens) != 0 || state.Line != 0 {
				t.Error("rejection must leave the state untouched")
			}
		})
	}
}

func TestRecognizeRespectsEndLine(t *testing.T) {
	t.Parallel()

	state := newState(t, "| a |\n|---|\n| 1 |")
	if !Recognize(state, 0, 2, false) {
		t.Fatal("expected table to be recognized")
	}
	if state.Line != 2 {
		t.Errorf("cursor = %d, want 2", state.Line)
	}
	if n := len(mdast.Filter(state.Tokens, mdast.TypeTDOpen)); n != 0 {
		t.Errorf("got %d body cells past endLine", n)
	}
}

func TestHeaderDelimiterMismatchBecomesParagraph(t *testing.T) {
	t.Parallel()

	tokens := parse(t, "| a | b | c |\n|---|---|\n")

	want := []mdast.TokenType{mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose}
	if got := types(tokens); !equalTypes(got, want) {
		t.Errorf("token types = %v, want %v", got, want)
	}
}

func TestFewerHeaderCellsAndExtraBodyCells(t *testing.T) {
	t.Parallel()

	tokens := parse(t, "| a |\n|:--|--:|\n| 1 | 2 | 3 |\n")

	if n := len(mdast.Filter(tokens, mdast.TypeTHOpen)); n != 1 {
		t.Errorf("got %d header cells, want 1", n)
	}

	cells := mdast.Filter(tokens, mdast.TypeTDOpen)
	if len(cells) != 3 {
		t.Fatalf("got %d body cells, want 3", len(cells))
	}

	wantStyles := []string{"text-align:left", "text-align:right", ""}
	for i, cell := range cells {
		style, _ := cell.AttrGet("style")
		if style != wantStyles[i] {
			t.Errorf("cell %d style = %q, want %q", i, style, wantStyles[i])
		}
	}
}

func TestEscapedAndCodePipes(t *testing.T) {
	t.Parallel()

	tokens := parse(t, "| a \\| b | `c|d` |\n|---|---|\n| x \\| y | z |\n")

	if n := len(mdast.Filter(tokens, mdast.TypeTHOpen)); n != 2 {
		t.Errorf("got %d header cells, want 2", n)
	}
	if n := len(mdast.Filter(tokens, mdast.TypeTDOpen)); n != 2 {
		t.Errorf("got %d body cells, want 2", n)
	}

	var contents []string
	for _, tok := range mdast.Filter(tokens, mdast.TypeInline) {
		contents = append(contents, tok.Content)
	}
	want := []string{`a \| b`, "`c|d`", `x \| y`, "z"}
	if !slices.Equal(contents, want) {
		t.Errorf("inline contents = %q, want %q", contents, want)
	}
}

func TestBodyStopsAtLineWithoutPipe(t *testing.T) {
	t.Parallel()

	tokens := parse(t, "a | b\n--|--\n1 | 2\nplain\n")

	if n := len(mdast.Filter(tokens, mdast.TypeTROpen)); n != 2 {
		t.Errorf("got %d rows, want 2", n)
	}

	tableOpen := tokens[0]
	if tableOpen.Type != mdast.TypeTableOpen {
		t.Fatalf("first token = %s, want table_open", tableOpen.Type)
	}
	if tableOpen.Map.End != 3 {
		t.Errorf("table ends at line %d, want 3", tableOpen.Map.End)
	}

	last := tokens[len(tokens)-2]
	if last.Type != mdast.TypeInline || last.Content != "plain" {
		t.Errorf("expected trailing paragraph with %q, got %s %q", "plain", last.Type, last.Content)
	}
}

func TestBodyStopsAtBlankLine(t *testing.T) {
	t.Parallel()

	tokens := parse(t, "|a|\n|-|\n|1|\n\n|2|\n")

	if n := len(mdast.Filter(tokens, mdast.TypeTableOpen)); n != 1 {
		t.Fatalf("got %d tables, want 1", n)
	}
	if n := len(mdast.Filter(tokens, mdast.TypeTDOpen)); n != 1 {
		t.Errorf("got %d body cells, want 1", n)
	}
	if n := len(mdast.Filter(tokens, mdast.TypeParagraphOpen)); n != 3 {
		t.Errorf("got %d paragraphs, want 3 (header cell, body cell, trailing)", n)
	}
}

func TestCellContentIsTokenizedAsBlocks(t *testing.T) {
	t.Parallel()

	tokens := parse(t, "| x |\n|---|\n| - item |\n")

	open := slices.IndexFunc(tokens, func(tok *mdast.Token) bool { return tok.Type == mdast.TypeTDOpen })
	if open < 0 {
		t.Fatal("no body cell")
	}
	closeIdx := mdast.FindClose(tokens, open)
	if closeIdx < 0 {
		t.Fatal("body cell is not closed")
	}

	cell := tokens[open+1 : closeIdx]
	want := []mdast.TokenType{
		mdast.TypeBulletListOpen,
		mdast.TypeListItemOpen,
		mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose,
		mdast.TypeListItemClose,
		mdast.TypeBulletListClose,
	}
	if got := types(cell); !equalTypes(got, want) {
		t.Fatalf("cell token types = %v, want %v", got, want)
	}
	if cell[3].Content != "item" {
		t.Errorf("list item content = %q, want %q", cell[3].Content, "item")
	}
	if cell[0].Level != tokens[open].Level+1 {
		t.Errorf("list level = %d, want %d", cell[0].Level, tokens[open].Level+1)
	}
}

func TestTableInterruptsParagraph(t *testing.T) {
	t.Parallel()

	tokens := parse(t, "text\n| a |\n|---|\n")

	want := []mdast.TokenType{
		mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose,
		mdast.TypeTableOpen,
		mdast.TypeTROpen,
		mdast.TypeTHOpen, mdast.TypeParagraphOpen, mdast.TypeInline, mdast.TypeParagraphClose, mdast.TypeTHClose,
		mdast.TypeTRClose,
		mdast.TypeTableClose,
	}
	if got := types(tokens); !equalTypes(got, want) {
		t.Errorf("token types = %v, want %v", got, want)
	}
}

func TestCellMetaSourceColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "top level", src: "  | a |\n  |---|\n  | 1 |\n"},
		{name: "blockquote", src: "> | a |\n> |---|\n> | 1 |\n"},
		{name: "list item", src: "- | a |\n  |---|\n  | 1 |\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := parse(t, tt.src)

			header := mdast.Filter(tokens, mdast.TypeTHOpen)
			body := mdast.Filter(tokens, mdast.TypeTDOpen)
			if len(header) != 1 || len(body) != 1 {
				t.Fatalf("got %d header and %d body cells, want 1 and 1", len(header), len(body))
			}

			headerMeta, ok := header[0].Meta.(*CellMeta)
			if !ok {
				t.Fatalf("header meta = %#v", header[0].Meta)
			}
			if headerMeta.Row != 0 || headerMeta.Column != 0 || headerMeta.SourceColumn != 5 {
				t.Errorf("header meta = %+v, want row 0 column 0 source column 5", *headerMeta)
			}

			bodyMeta, ok := body[0].Meta.(*CellMeta)
			if !ok {
				t.Fatalf("body meta = %#v", body[0].Meta)
			}
			if bodyMeta.Row != 1 || bodyMeta.SourceColumn != 5 {
				t.Errorf("body meta = %+v, want row 1 source column 5", *bodyMeta)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	parser := block.New()
	if err := Register(parser); err != nil {
		t.Fatalf("Register: %v", err)
	}

	names := parser.Ruler().Names()
	idx := slices.Index(names, Name)
	if idx < 0 || idx+1 >= len(names) || names[idx+1] != block.RuleParagraph {
		t.Errorf("table rule should sit directly before paragraph, got %v", names)
	}

	if err := Register(parser); !errors.Is(err, block.ErrDuplicateRule) {
		t.Errorf("second Register error = %v, want ErrDuplicateRule", err)
	}
}

func TestDisabledTableRule(t *testing.T) {
	t.Parallel()

	parser := newParser(t)
	if err := parser.Ruler().Disable(Name); err != nil {
		t.Fatalf("Disable: %v", err)
	}

	state := block.NewState(parser, "| a |\n|---|\n", block.SplitLines("| a |\n|---|\n"), nil)
	parser.Tokenize(state, 0, state.LineMax)

	if n := len(mdast.Filter(state.Tokens, mdast.TypeTableOpen)); n != 0 {
		t.Errorf("disabled rule produced %d tables", n)
	}
}
