// Package reporter writes the results of a multi-file parse check.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/semmerge/pkg/runner"
)

// Reporter formats and writes check results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of failed files and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath makes path relative to workDir when it lies beneath it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
