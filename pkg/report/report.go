// Package report extracts tables from token streams and aggregates them into
// per-file and total statistics.
package report

import (
	"time"

	"github.com/yaklabco/gomdtable/pkg/table"
)

// Report contains pre-computed views of the tables found in a run.
// Computed once by Summarize, used by all renderers.
type Report struct {
	// Tables is the flat list of extracted tables.
	Tables []Table `json:"tables,omitempty"`

	// ByFile groups table statistics by file path.
	ByFile []FileSummary `json:"byFile,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the summary was computed.
	Timestamp time.Time `json:"timestamp"`
}

// Table is one table recognized in a document.
type Table struct {
	Path string `json:"path"`

	// StartLine and EndLine are 1-based and inclusive.
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`

	// Level is the container nesting depth of the table_open token.
	Level int `json:"level"`

	// Columns is the number of delimiter columns.
	Columns int           `json:"columns"`
	Aligns  []table.Align `json:"aligns"`
	Header  []string      `json:"header"`
	Rows    [][]string    `json:"rows,omitempty"`

	// Ragged lists the body rows whose cell count differs from Columns.
	Ragged []RaggedRow `json:"ragged,omitempty"`
}

// RaggedRow is a body row with missing or extra cells.
type RaggedRow struct {
	// Line is the 1-based source line of the row.
	Line  int `json:"line"`
	Cells int `json:"cells"`
}

// Cells returns the number of header and body cells.
func (t Table) Cells() int {
	cells := len(t.Header)
	for _, row := range t.Rows {
		cells += len(row)
	}
	return cells
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesProcessed"`
	FilesWithTables int `json:"filesWithTables"`
	Tables          int `json:"tables"`
	Rows            int `json:"rows"`
	Cells           int `json:"cells"`

	// Aligns counts delimiter columns by alignment name.
	Aligns map[string]int `json:"aligns"`
}

// HasTables returns true if any table was found.
func (t Totals) HasTables() bool {
	return t.Tables > 0
}

// FileSummary contains aggregated data for a single file.
type FileSummary struct {
	Path       string `json:"path"`
	Tables     int    `json:"tables"`
	Rows       int    `json:"rows"`
	Cells      int    `json:"cells"`
	MaxColumns int    `json:"maxColumns"`
}

// FileTables pairs a file with the tables extracted from it.
type FileTables struct {
	Path   string
	Tables []Table
}
