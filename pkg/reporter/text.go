package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/semmerge/internal/ui/pretty"
	"github.com/yaklabco/semmerge/pkg/runner"
)

// TextReporter lists failed files with their diagnostics.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	failed := writeFailures(r.bw, r.styles, result, r.opts.WorkingDir)

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}

// writeFailures writes one diagnostic per failed file and returns the count.
func writeFailures(w *bufio.Writer, styles *pretty.Styles, result *runner.Result, workDir string) int {
	var failed int
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		failed++
		if perr, ok := file.ParseError(); ok {
			fmt.Fprint(w, styles.FormatParseError(perr))
			continue
		}
		fmt.Fprint(w, styles.FormatFileError(displayPath(file.Path, workDir), file.Error))
	}
	return failed
}
