package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/semmerge/internal/ui/pretty"
	"github.com/yaklabco/semmerge/pkg/runner"
)

// TableReporter prints the definition table of every parsed file, followed
// by the failures.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, TerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	first := true
	for _, file := range result.Files {
		if file.Error != nil {
			continue
		}
		if !first {
			fmt.Fprintln(r.bw)
		}
		first = false

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(displayPath(file.Path, r.opts.WorkingDir), file.Dialect))
		fmt.Fprint(r.bw, r.formatter.FormatDefinitions(file.Definitions))
	}

	failed := writeFailures(r.bw, r.styles, result, r.opts.WorkingDir)

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return failed, nil
}

// TerminalWidth returns the width of w when it is a terminal, else 0.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
