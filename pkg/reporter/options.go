package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gomdtable/pkg/report"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for per-file errors and status lines
	// (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary writes a one-line run summary to ErrorWriter.
	ShowSummary bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// Index lists tables one per line instead of drawing each grid
	// (tables format only).
	Index bool

	// SortBy and SortDesc order the per-file summary.
	SortBy   report.SortField
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatHTML,
		Color:       "auto",
		ShowSummary: true,
		SortBy:      report.SortByCount,
		SortDesc:    true,
	}
}
