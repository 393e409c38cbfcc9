package reporter

import (
	"context"

	"github.com/yaklabco/gomdtable/pkg/report"
)

// Renderer formats a report.Report for output.
// Renderers are stateless and only handle presentation logic.
type Renderer interface {
	// Render writes the formatted report to the configured output.
	Render(ctx context.Context, rep *report.Report) error
}
