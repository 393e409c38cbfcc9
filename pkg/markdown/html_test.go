package markdown

import (
	"context"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// parseHTML renders src and parses the result as an HTML document.
func parseHTML(t *testing.T, src string) *html.Node {
	t.Helper()

	out, err := newEngine(t, nil).Render(context.Background(), src)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("html.Parse: %v\n%s", err, out)
	}
	return doc
}

func textContent(node *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return strings.TrimSpace(b.String())
}

func TestRenderedTableStructure(t *testing.T) {
	t.Parallel()

	src := "# Stock\n\n" +
		"| Item | Qty | Note |\n" +
		"|:-----|----:|:----:|\n" +
		"| *pear* | 3 | - ripe |\n" +
		"| fig | 7 |\n" +
		"\n" +
		"> | quoted |\n" +
		"> |--------|\n" +
		"> | cell |\n"

	doc := parseHTML(t, src)

	tests := []struct {
		selector string
		want     []string
	}{
		{selector: "body > table th", want: []string{"Item", "Qty", "Note"}},
		{selector: `th[style="text-align:right"]`, want: []string{"Qty"}},
		{selector: `td[style="text-align:left"] em`, want: []string{"pear"}},
		{selector: "body > table td ul > li", want: []string{"ripe"}},
		{selector: "blockquote table td", want: []string{"cell"}},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			t.Parallel()

			nodes := cascadia.MustCompile(tt.selector).MatchAll(doc)
			got := make([]string, len(nodes))
			for i, node := range nodes {
				got[i] = textContent(node)
			}

			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("%s matched %q, want %q", tt.selector, got, tt.want)
			}
		})
	}

	rows := cascadia.MustCompile("body > table tr").MatchAll(doc)
	if len(rows) != 3 {
		t.Fatalf("got %d rows in the top-level table, want 3", len(rows))
	}
	if cells := cascadia.MustCompile("td").MatchAll(rows[2]); len(cells) != 2 {
		t.Errorf("short row has %d cells, want 2", len(cells))
	}
}

func TestRejectedTableRendersParagraph(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, "| a | b | c |\n|---|---|\n| 1 | 2 | 3 |\n")

	if tables := cascadia.MustCompile("table").MatchAll(doc); len(tables) != 0 {
		t.Errorf("got %d tables, want none when the header is wider than the delimiter row", len(tables))
	}
	paragraphs := cascadia.MustCompile("p").MatchAll(doc)
	if len(paragraphs) != 1 || !strings.HasPrefix(textContent(paragraphs[0]), "| a | b | c |") {
		t.Errorf("paragraphs = %d, want the rows kept as one paragraph", len(paragraphs))
	}
}
