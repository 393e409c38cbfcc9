package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
	"github.com/yaklabco/gomdtable/pkg/mdast"
	"github.com/yaklabco/gomdtable/pkg/runner"
	"github.com/yaklabco/gomdtable/pkg/table"
)

// TokensReporter dumps token streams, one token per line, indented by
// nesting level. Inline children are listed under their parent.
// Requires runner.Options.KeepDocuments.
type TokensReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTokensReporter creates a new token dump reporter.
func NewTokensReporter(opts Options) *TokensReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TokensReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TokensReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	writeFileErrors(r.opts, result)

	multiple := len(result.Files) > 1
	for _, file := range result.Files {
		if file.Error != nil || file.Document == nil {
			continue
		}

		if multiple {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(displayPath(file.Path, r.opts.WorkingDir), len(file.Tables)))
		}
		r.writeTokens(r.bw, file.Document.Tokens, 0)
		if multiple {
			fmt.Fprintln(r.bw)
		}
	}

	writeSummary(r.opts, result.Stats)

	return result.Stats.Tables, nil
}

// writeTokens writes tokens with depth extra indentation for children.
func (r *TokensReporter) writeTokens(w io.Writer, tokens []*mdast.Token, depth int) {
	for _, tok := range tokens {
		indent := strings.Repeat("  ", tok.Level+depth)
		fmt.Fprintln(w, indent+r.describe(tok))

		if len(tok.Children) > 0 {
			r.writeTokens(w, tok.Children, tok.Level+depth+1)
		}
	}
}

// describe formats one token: type, tag, line range, attributes, meta and
// content.
func (r *TokensReporter) describe(tok *mdast.Token) string {
	parts := []string{r.styles.RuleName.Render(string(tok.Type))}

	if tok.Tag != "" && tok.Nesting != mdast.NestingClose {
		parts = append(parts, "<"+tok.Tag+">")
	}
	if tok.Map != nil {
		parts = append(parts, r.styles.Location.Render(fmt.Sprintf("[%d,%d)", tok.Map.Start, tok.Map.End)))
	}
	if len(tok.Attrs) > 0 {
		parts = append(parts, tok.Attrs.String())
	}
	if meta := describeMeta(tok.Meta); meta != "" {
		parts = append(parts, r.styles.TableAlign.Render(meta))
	}
	if tok.Info != "" {
		parts = append(parts, "info="+strconv.Quote(tok.Info))
	}
	if tok.Content != "" {
		parts = append(parts, strconv.Quote(tok.Content))
	}
	if tok.Hidden {
		parts = append(parts, r.styles.Dim.Render("(hidden)"))
	}

	return strings.Join(parts, " ")
}

// describeMeta formats the table metadata attached to tokens.
func describeMeta(meta any) string {
	switch m := meta.(type) {
	case *table.Meta:
		names := make([]string, len(m.Aligns))
		for i, a := range m.Aligns {
			names[i] = a.String()
		}
		return "aligns=" + strings.Join(names, ",")
	case *table.CellMeta:
		return fmt.Sprintf("row=%d col=%d src=%d", m.Row, m.Column, m.SourceColumn)
	default:
		return ""
	}
}
