package report

// SortField specifies how to sort per-file summaries.
type SortField string

const (
	// SortByCount sorts by table count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically by path.
	SortByAlpha SortField = "alpha"
	// SortByCells sorts by cell count, largest first.
	SortByCells SortField = "cells"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortByCells:
		return true
	default:
		return false
	}
}

// Options configures Summarize.
type Options struct {
	// IncludeTables includes the flat table list.
	IncludeTables bool

	// IncludeByFile includes the per-file summaries.
	IncludeByFile bool

	// SortBy specifies how to sort ByFile.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeTables: true,
		IncludeByFile: true,
		SortBy:        SortByCount,
		SortDesc:      true,
	}
}
