package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatHTML    Format = "html"
	FormatTokens  Format = "tokens"
	FormatJSON    Format = "json"
	FormatTables  Format = "tables"
	FormatSummary Format = "summary"
	FormatDiff    Format = "diff"
	FormatList    Format = "list"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "html", "":
		return FormatHTML, nil
	case "tokens":
		return FormatTokens, nil
	case "json":
		return FormatJSON, nil
	case "tables":
		return FormatTables, nil
	case "summary":
		return FormatSummary, nil
	case "diff":
		return FormatDiff, nil
	case "list":
		return FormatList, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: html, tokens, json, tables, summary, diff, list",
			formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatHTML, FormatTokens, FormatJSON, FormatTables, FormatSummary, FormatDiff, FormatList:
		return true
	default:
		return false
	}
}
