package reporter

import (
	"bufio"
	"context"

	"github.com/yaklabco/semmerge/internal/ui/pretty"
	"github.com/yaklabco/semmerge/pkg/runner"
)

// SummaryReporter prints only the aggregate statistics block.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	if _, err := r.bw.WriteString(r.styles.FormatSummary(result.Stats)); err != nil {
		return 0, err
	}
	return result.Stats.FilesFailed, nil
}
