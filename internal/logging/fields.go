// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Merge fields.
	FieldDialect     = "dialect"
	FieldMode        = "mode"
	FieldReason      = "reason"
	FieldSize        = "size"
	FieldThreshold   = "threshold"
	FieldDefinitions = "definitions"
	FieldConflicts   = "conflicts"
	FieldFolded      = "folded"
	FieldWritten     = "written"
	FieldBackup      = "backup"
	FieldDiagnostic  = "diagnostic"
	FieldClean       = "clean"

	// Statistics fields.
	FieldJobs            = "jobs"
	FieldFilesDiscovered = "files_discovered"
	FieldFilesChecked    = "files_checked"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldGo       = "go"
	FieldDialects = "dialects"
)
