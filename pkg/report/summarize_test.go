package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/pkg/table"
)

func sampleFiles() []FileTables {
	return []FileTables{
		{Path: "/work/empty.md"},
		{
			Path: "/work/b.md",
			Tables: []Table{{
				Columns: 2,
				Aligns:  []table.Align{table.AlignLeft, table.AlignNone},
				Header:  []string{"a", "b"},
				Rows:    [][]string{{"1", "2"}, {"3", "4"}},
			}},
		},
		{
			Path: "/work/a.md",
			Tables: []Table{
				{Columns: 1, Aligns: []table.Align{table.AlignCenter}, Header: []string{"x"}},
				{Columns: 1, Aligns: []table.Align{table.AlignRight}, Header: []string{"y"}, Rows: [][]string{{"z"}}},
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	rep := Summarize(sampleFiles(), DefaultOptions())

	assert.Equal(t, ReportVersion, rep.Version)
	assert.False(t, rep.Timestamp.IsZero())

	assert.Equal(t, 3, rep.Totals.Files)
	assert.Equal(t, 2, rep.Totals.FilesWithTables)
	assert.Equal(t, 3, rep.Totals.Tables)
	assert.Equal(t, 3, rep.Totals.Rows)
	assert.Equal(t, 9, rep.Totals.Cells)
	assert.True(t, rep.Totals.HasTables())
	assert.Equal(t, map[string]int{"none": 1, "left": 1, "center": 1, "right": 1}, rep.Totals.Aligns)

	require.Len(t, rep.Tables, 3)
	require.Len(t, rep.ByFile, 2)
	assert.Equal(t, "/work/a.md", rep.ByFile[0].Path)
	assert.Equal(t, 2, rep.ByFile[0].Tables)
	assert.Equal(t, 1, rep.ByFile[0].MaxColumns)
	assert.Equal(t, "/work/b.md", rep.ByFile[1].Path)
	assert.Equal(t, 6, rep.ByFile[1].Cells)
}

func TestSummarize_Options(t *testing.T) {
	t.Parallel()

	t.Run("relative paths", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.WorkingDir = filepath.FromSlash("/work")

		files := sampleFiles()
		for i := range files {
			files[i].Path = filepath.FromSlash(files[i].Path)
		}

		rep := Summarize(files, opts)
		require.NotEmpty(t, rep.ByFile)
		assert.Equal(t, "a.md", rep.ByFile[0].Path)
		assert.Equal(t, "b.md", rep.Tables[0].Path)
	})

	t.Run("omits views", func(t *testing.T) {
		t.Parallel()

		rep := Summarize(sampleFiles(), Options{SortBy: SortByCount})
		assert.Empty(t, rep.Tables)
		assert.Empty(t, rep.ByFile)
		assert.Equal(t, 3, rep.Totals.Tables)
	})

	t.Run("nil input", func(t *testing.T) {
		t.Parallel()

		rep := Summarize(nil, DefaultOptions())
		assert.False(t, rep.Totals.HasTables())
		assert.Equal(t, 0, rep.Totals.Files)
	})
}

func TestSortFileSummaries(t *testing.T) {
	t.Parallel()

	files := func() []FileSummary {
		return []FileSummary{
			{Path: "b.md", Tables: 1, Cells: 9},
			{Path: "c.md", Tables: 3, Cells: 2},
			{Path: "a.md", Tables: 1, Cells: 4},
		}
	}
	paths := func(in []FileSummary) []string {
		out := make([]string, 0, len(in))
		for _, f := range in {
			out = append(out, f.Path)
		}
		return out
	}

	tests := []struct {
		name   string
		sortBy SortField
		desc   bool
		want   []string
	}{
		{name: "count desc", sortBy: SortByCount, desc: true, want: []string{"c.md", "a.md", "b.md"}},
		{name: "count asc", sortBy: SortByCount, want: []string{"a.md", "b.md", "c.md"}},
		{name: "alpha", sortBy: SortByAlpha, desc: true, want: []string{"a.md", "b.md", "c.md"}},
		{name: "cells", sortBy: SortByCells, want: []string{"b.md", "a.md", "c.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := files()
			sortFileSummaries(got, tt.sortBy, tt.desc)
			assert.Equal(t, tt.want, paths(got))
		})
	}
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SortByCount.IsValid())
	assert.True(t, SortByAlpha.IsValid())
	assert.True(t, SortByCells.IsValid())
	assert.False(t, SortField("severity").IsValid())
	assert.False(t, SortField("").IsValid())
}

func TestMakeRelativePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/abs/x.md", makeRelativePath("/abs/x.md", ""))
	assert.Equal(t, filepath.FromSlash("docs/x.md"),
		makeRelativePath(filepath.FromSlash("/abs/docs/x.md"), filepath.FromSlash("/abs")))
}
