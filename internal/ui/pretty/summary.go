package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtable/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// plural returns singular when n is 1 and pluralForm otherwise.
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 tables (12 rows) in 5 files, 2 written, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	files := fmt.Sprintf("%d %s", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))

	if stats.Tables == 0 {
		parts = append(parts, s.Dim.Render("No tables found")+s.Dim.Render(" ("+files+" processed)"))
	} else {
		parts = append(parts, fmt.Sprintf("%s (%d %s) in %s",
			s.Success.Render(fmt.Sprintf("%d %s", stats.Tables, plural(stats.Tables, "table", "tables"))),
			stats.Rows, plural(stats.Rows, "row", "rows"),
			files,
		))
	}

	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatReformatSummary formats the outcome of a table formatting run.
// Example: "2 files need formatting, 6 insertions(+), 6 deletions(-)".
func (s *Styles) FormatReformatSummary(stats runner.Stats, additions, deletions int) string {
	var parts []string

	switch {
	case stats.FilesUnformatted == 0:
		parts = append(parts, s.Success.Render("All tables formatted")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)",
				stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))))
	case stats.FilesRewritten > 0:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s reformatted",
			stats.FilesRewritten, plural(stats.FilesRewritten, wordFile, wordFiles))))
	default:
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s formatting",
			stats.FilesUnformatted, plural(stats.FilesUnformatted, "file needs", "files need"))))
	}

	if additions > 0 {
		parts = append(parts, s.DiffAdd.Render(fmt.Sprintf("%d %s(+)",
			additions, plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, s.DiffRemove.Render(fmt.Sprintf("%d %s(-)",
			deletions, plural(deletions, "deletion", "deletions"))))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files processed:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Tables:            " +
		s.SummaryValue.Render(strconv.Itoa(stats.Tables)) + "\n")
	builder.WriteString("  Body rows:         " +
		s.SummaryValue.Render(strconv.Itoa(stats.Rows)) + "\n")
	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Completed with errors"))
	case stats.Tables == 0:
		builder.WriteString(s.Dim.Render("No tables found"))
	default:
		builder.WriteString(s.Success.Render("Done"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, tableCount int) string {
	header := s.FilePath.Render(path)
	if tableCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", tableCount, plural(tableCount, "table", "tables")))
	}
	return header
}

// FormatFileError formats a per-file processing error.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// FormatWarning formats a non-fatal warning line.
func (s *Styles) FormatWarning(message string) string {
	return s.Warning.Render("warning:") + " " + message + "\n"
}
