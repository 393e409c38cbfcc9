package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/fsutil"
	"github.com/yaklabco/gomdtable/pkg/markdown"
	"github.com/yaklabco/gomdtable/pkg/report"
	"github.com/yaklabco/gomdtable/pkg/tablefmt"
)

// Runner processes Markdown files with a shared markdown.Engine.
// The engine is safe for concurrent use once built.
type Runner struct {
	Engine *markdown.Engine
}

// New creates a new Runner with the given engine.
func New(engine *markdown.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns outcomes in discovery (path) order and aggregate stats.
// Per-file failures are recorded on the outcome; Run itself fails only on
// discovery errors or cancellation.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger.Debug("starting run",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
		logging.FieldWorkingDir, workDir,
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, workDir, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; index by path and rebuild in file order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Debug("run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldTables, result.Stats.Tables,
	)

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	workDir string,
	opts Options,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.processFile(ctx, path, workDir, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processFile parses, extracts and optionally renders and writes one file.
func (r *Runner) processFile(ctx context.Context, path, workDir string, opts Options) (outcome FileOutcome) {
	logger := logging.FromContext(ctx)
	start := time.Now()
	outcome.Path = path

	defer func() {
		outcome.Duration = time.Since(start)
	}()

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	doc, err := r.Engine.Parse(ctx, string(content))
	if err != nil {
		outcome.Error = fmt.Errorf("parse %s: %w", path, err)
		return outcome
	}

	outcome.Tables = report.Extract(path, doc.Tokens)
	if opts.KeepDocuments {
		outcome.Document = doc
	}

	if opts.reformatting() {
		if err := r.reformat(ctx, &outcome, content, info, doc, opts.WriteBack); err != nil {
			outcome.Error = err
			return outcome
		}
	}

	if opts.rendering() {
		outcome.HTML = r.Engine.RenderDocument(doc)
	}

	if opts.OutputDir != "" {
		outDir, err := filepath.Abs(opts.OutputDir)
		if err != nil {
			outcome.Error = fmt.Errorf("resolve output directory: %w", err)
			return outcome
		}

		outPath, err := fsutil.OutputPath(outDir, workDir, path, ".html")
		if err != nil {
			outcome.Error = err
			return outcome
		}

		written, err := fsutil.WriteAtomicIfChanged(ctx, outPath, []byte(outcome.HTML), 0)
		if err != nil {
			outcome.Error = fmt.Errorf("write %s: %w", outPath, err)
			return outcome
		}
		outcome.OutputPath = outPath
		outcome.Written = written
	}

	logger.Debug("processed file",
		logging.FieldPath, path,
		logging.FieldBytes, info.Size,
		logging.FieldTables, len(outcome.Tables),
		logging.FieldDuration, time.Since(start),
	)

	return outcome
}

// reformat realigns the tables of doc and, if writeBack is set, replaces the
// file. The file is left alone when it changed on disk since it was read.
func (r *Runner) reformat(
	ctx context.Context,
	outcome *FileOutcome,
	content []byte,
	info *fsutil.FileInfo,
	doc *markdown.Document,
	writeBack bool,
) error {
	edits := tablefmt.Edits(doc.Source, doc.Tokens)
	if len(edits) == 0 {
		return nil
	}

	formatted, err := fix.Apply([]byte(doc.Source), edits)
	if err != nil {
		return fmt.Errorf("reformat %s: %w", outcome.Path, err)
	}

	outcome.Formatted = formatted
	outcome.Diff = fix.GenerateDiff(outcome.Path, content, formatted)

	if !writeBack {
		return nil
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return err
	}
	if modified {
		return fmt.Errorf("%w: %s", fsutil.ErrModified, outcome.Path)
	}

	if err := fsutil.WriteAtomic(ctx, outcome.Path, formatted, info.Mode.Perm()); err != nil {
		return fmt.Errorf("write %s: %w", outcome.Path, err)
	}
	outcome.Rewritten = true

	logging.FromContext(ctx).Debug("reformatted file",
		logging.FieldPath, outcome.Path,
		logging.FieldEdits, len(edits),
	)

	return nil
}
