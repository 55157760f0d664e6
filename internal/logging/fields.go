// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldRoot   = "root"

	// Server fields.
	FieldAddr     = "addr"
	FieldConn     = "conn"
	FieldRemote   = "remote"
	FieldURL      = "url"
	FieldStatus   = "status"
	FieldBytes    = "bytes"
	FieldDuration = "duration"
	FieldTitle    = "title"

	// Build fields.
	FieldJobs           = "jobs"
	FieldFilesFound     = "files_found"
	FieldFilesWritten   = "files_written"
	FieldFilesUnchanged = "files_unchanged"
	FieldFilesFailed    = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
