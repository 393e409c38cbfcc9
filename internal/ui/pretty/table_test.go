package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
	"github.com/yaklabco/gomdtable/pkg/report"
	"github.com/yaklabco/gomdtable/pkg/table"
)

func fruitTable() report.Table {
	return report.Table{
		Path:      "docs/fruit.md",
		StartLine: 3,
		EndLine:   6,
		Columns:   3,
		Aligns:    []table.Align{table.AlignLeft, table.AlignCenter, table.AlignRight},
		Header:    []string{"Name", "Qty", "Price"},
		Rows: [][]string{
			{"apple", "1", "0.5"},
			{"kiwi"},
		},
	}
}

func TestFormatGrid_AlignsColumns(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)

	want := strings.Join([]string{
		"| Name  | Qty | Price |",
		"| :---- | :-: | ----: |",
		"| apple |  1  |   0.5 |",
		"| kiwi  |     |       |",
	}, "\n") + "\n"

	assert.Equal(t, want, formatter.FormatGrid(fruitTable()))
}

func TestFormatGrid_FitsTerminalWidth(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 15)

	tbl := report.Table{
		Columns: 2,
		Aligns:  []table.Align{table.AlignNone, table.AlignNone},
		Header:  []string{"abcdefghij", "x"},
	}

	got := formatter.FormatGrid(tbl)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "| ab... | x   |", lines[0])
	assert.Equal(t, "| ----- | --- |", lines[1])
}

func TestFormatGrid_WideCharacters(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)

	tbl := report.Table{
		Columns: 1,
		Aligns:  []table.Align{table.AlignNone},
		Header:  []string{"名前"},
		Rows:    [][]string{{"a"}},
	}

	want := "| 名前 |\n| ---- |\n| a    |\n"
	assert.Equal(t, want, formatter.FormatGrid(tbl))
}

func TestFormatGrid_ExtraCellsWithoutAlignment(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)

	tbl := report.Table{
		Columns: 1,
		Aligns:  []table.Align{table.AlignRight},
		Header:  []string{"a"},
		Rows:    [][]string{{"b", "extra"}},
	}

	want := "|   a |       |\n| --: | ----- |\n|   b | extra |\n"
	assert.Equal(t, want, formatter.FormatGrid(tbl))
}

func TestFormatGrid_Empty(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0)
	assert.Empty(t, formatter.FormatGrid(report.Table{}))
}

func TestFormatIndex(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 100)

	second := report.Table{
		Path:      "docs/other.md",
		StartLine: 10,
		EndLine:   11,
		Columns:   1,
		Aligns:    []table.Align{table.AlignNone},
		Header:    []string{"Only"},
	}

	got := formatter.FormatIndex([]report.Table{fruitTable(), second})

	assert.Contains(t, got, "LOCATION")
	assert.Contains(t, got, "docs/fruit.md:3-6")
	assert.Contains(t, got, "l c r")
	assert.Contains(t, got, "Name, Qty, Price")
	assert.Contains(t, got, "docs/other.md:10-11")
	assert.Contains(t, got, "Legend:")

	lines := strings.Split(got, "\n")
	light := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "---") {
			light++
		}
	}
	assert.Equal(t, 1, light, "one light separator between files")

	assert.Empty(t, formatter.FormatIndex(nil))
}

func TestFormatIndex_TruncatesLongPaths(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 60)

	tbl := fruitTable()
	tbl.Path = strings.Repeat("deep/", 20) + "fruit.md"

	got := formatter.FormatIndex([]report.Table{tbl})

	assert.Contains(t, got, "...")
	assert.Contains(t, got, "fruit.md:3-6")
}
