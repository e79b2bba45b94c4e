package runner

import (
	"errors"

	"github.com/yaklabco/semmerge/pkg/definition"
	"github.com/yaklabco/semmerge/pkg/source"
)

// FileOutcome is the check result of one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Dialect is the dialect the file was parsed with; empty if none applied.
	Dialect string

	// Definitions is the extracted sequence; nil on error.
	Definitions []definition.Definition

	// Error is set if the file could not be read, classified or parsed.
	Error error
}

// ParseError returns the structural parse error of the outcome, if any.
func (o FileOutcome) ParseError() (*source.Error, bool) {
	var perr *source.Error
	if errors.As(o.Error, &perr) {
		return perr, true
	}
	return nil, false
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int `json:"files_discovered"`

	// FilesChecked is the number of files parsed successfully.
	FilesChecked int `json:"files_checked"`

	// FilesFailed is the number of files with an error.
	FilesFailed int `json:"files_failed"`

	// Definitions is the number of named definitions across checked files.
	Definitions int `json:"definitions"`

	// Opaque is the number of unnamed segments across checked files.
	Opaque int `json:"opaque"`

	// ByDialect counts checked files per dialect.
	ByDialect map[string]int `json:"by_dialect"`
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file, sorted by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

func newStats() Stats {
	return Stats{ByDialect: make(map[string]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesChecked++
	r.Stats.ByDialect[outcome.Dialect]++
	for _, def := range outcome.Definitions {
		if def.IsOpaque() {
			r.Stats.Opaque++
		} else {
			r.Stats.Definitions++
		}
	}
}
