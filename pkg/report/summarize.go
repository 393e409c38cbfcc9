package report

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gomdtable/pkg/table"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// Summarize aggregates extracted tables into a Report in a single pass.
func Summarize(files []FileTables, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
		Totals: Totals{
			Aligns: map[string]int{
				table.AlignNone.String():   0,
				table.AlignLeft.String():   0,
				table.AlignCenter.String(): 0,
				table.AlignRight.String():  0,
			},
		},
	}

	var byFile []FileSummary

	for _, file := range files {
		report.Totals.Files++
		if len(file.Tables) == 0 {
			continue
		}
		report.Totals.FilesWithTables++

		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		summary := FileSummary{Path: displayPath}

		for _, tbl := range file.Tables {
			tbl.Path = displayPath
			cells := tbl.Cells()

			report.Totals.Tables++
			report.Totals.Rows += len(tbl.Rows)
			report.Totals.Cells += cells
			for _, align := range tbl.Aligns {
				report.Totals.Aligns[align.String()]++
			}

			summary.Tables++
			summary.Rows += len(tbl.Rows)
			summary.Cells += cells
			summary.MaxColumns = max(summary.MaxColumns, tbl.Columns)

			if opts.IncludeTables {
				report.Tables = append(report.Tables, tbl)
			}
		}

		byFile = append(byFile, summary)
	}

	if opts.IncludeByFile {
		sortFileSummaries(byFile, opts.SortBy, opts.SortDesc)
		report.ByFile = byFile
	}

	return report
}

func sortFileSummaries(files []FileSummary, sortBy SortField, desc bool) {
	slices.SortStableFunc(files, func(left, right FileSummary) int {
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Path, right.Path)
		case SortByCells:
			result := cmp.Compare(right.Cells, left.Cells)
			if result == 0 {
				result = cmp.Compare(left.Path, right.Path)
			}
			return result
		default: // SortByCount
			result := cmp.Compare(left.Tables, right.Tables)
			if desc {
				result = -result
			}
			if result == 0 {
				result = cmp.Compare(left.Path, right.Path)
			}
			return result
		}
	})
}
