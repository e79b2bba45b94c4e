package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/semmerge/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary runner.Stats     `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string     `json:"path"`
	Dialect     string     `json:"dialect,omitempty"`
	Definitions []string   `json:"definitions"`
	Opaque      int        `json:"opaque"`
	Error       *JSONError `json:"error,omitempty"`
}

// JSONError describes why a file could not be parsed.
type JSONError struct {
	Kind       string `json:"kind,omitempty"`
	Message    string `json:"message"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesFailed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	output.Summary = result.Stats
	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:        displayPath(file.Path, r.opts.WorkingDir),
			Dialect:     file.Dialect,
			Definitions: make([]string, 0, len(file.Definitions)),
		}
		for _, def := range file.Definitions {
			if def.IsOpaque() {
				entry.Opaque++
				continue
			}
			entry.Definitions = append(entry.Definitions, def.Name)
		}

		if file.Error != nil {
			entry.Error = &JSONError{Message: file.Error.Error()}
			if perr, ok := file.ParseError(); ok {
				entry.Error.Kind = string(perr.Kind)
				entry.Error.Message = perr.Message
				entry.Error.Line = perr.Span.Start.Line
				entry.Error.Column = perr.Span.Start.Column + 1
				entry.Error.Diagnostic = perr.Diagnostic()
			}
		}

		output.Files = append(output.Files, entry)
	}

	return output
}
