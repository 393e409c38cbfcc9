package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"
	FieldBytes      = "bytes"
	FieldEdits      = "edits"

	// Configuration fields.
	FieldConfig    = "config"
	FieldSource    = "source"
	FieldFlavor    = "flavor"
	FieldNormalize = "normalize"
	FieldJobs      = "jobs"
	FieldDisabled  = "disabled_rules"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"
	FieldFilesWritten    = "files_written"
	FieldTables          = "tables"
	FieldRows            = "rows"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule = "rule"
)
