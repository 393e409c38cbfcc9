package runner

import (
	"time"

	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/markdown"
	"github.com/yaklabco/gomdtable/pkg/report"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the absolute file path that was processed.
	Path string

	// Document is the parsed document when Options.KeepDocuments is set.
	Document *markdown.Document

	// HTML is the rendered output when rendering was requested.
	HTML string

	// Tables are the tables extracted from the document.
	Tables []report.Table

	// OutputPath is where HTML was written, if Options.OutputDir is set.
	OutputPath string

	// Written is false when the output file already held the same HTML.
	Written bool

	// Formatted is the content with realigned tables. It is nil when the
	// tables were already formatted or Options.Reformat is off.
	Formatted []byte

	// Diff describes the change from the file content to Formatted.
	Diff *fix.Diff

	// Rewritten is true when Formatted replaced the file in place.
	Rewritten bool

	// Duration is the wall time spent on this file.
	Duration time.Duration

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWritten is the number of output files created or changed.
	FilesWritten int

	// FilesUnformatted is the number of files whose tables needed
	// realigning.
	FilesUnformatted int

	// FilesRewritten is the number of files replaced in place.
	FilesRewritten int

	Tables int
	Rows   int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// FileTables returns the successfully processed files with their tables,
// ready for report.Summarize.
func (r *Result) FileTables() []report.FileTables {
	if r == nil {
		return nil
	}

	files := make([]report.FileTables, 0, len(r.Files))
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			continue
		}
		files = append(files, report.FileTables{Path: outcome.Path, Tables: outcome.Tables})
	}
	return files
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Formatted != nil {
		r.Stats.FilesUnformatted++
	}
	if outcome.Rewritten {
		r.Stats.FilesRewritten++
	}

	r.Stats.Tables += len(outcome.Tables)
	for _, tbl := range outcome.Tables {
		r.Stats.Rows += len(tbl.Rows)
	}
}
