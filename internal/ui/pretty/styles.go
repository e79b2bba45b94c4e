// Package pretty renders diagnostics, definition tables and summaries for the
// terminal.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Diagnostic components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Kind       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableName      lipgloss.Style
	TableOpaque    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI 256 palette indices.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorCyan   = "14"
	colorGray   = "8"
	colorLight  = "7"
)

// look is the color-independent description of a style.
type look struct {
	fg     string
	bold   bool
	italic bool
}

func (l look) style(colorEnabled bool) lipgloss.Style {
	st := lipgloss.NewStyle()
	if !colorEnabled {
		return st
	}
	if l.fg != "" {
		st = st.Foreground(lipgloss.Color(l.fg))
	}
	return st.Bold(l.bold).Italic(l.italic)
}

// NewStyles creates the output styles. With colorEnabled false every style
// renders text unchanged.
func NewStyles(colorEnabled bool) *Styles {
	mk := func(l look) lipgloss.Style { return l.style(colorEnabled) }

	return &Styles{
		Error:   mk(look{fg: colorRed, bold: true}),
		Warning: mk(look{fg: colorYellow, bold: true}),

		FilePath:   mk(look{bold: true}),
		Location:   mk(look{fg: colorGray}),
		Kind:       mk(look{fg: colorGray}),
		Message:    mk(look{}),
		SourceLine: mk(look{fg: colorLight}),
		Caret:      mk(look{fg: colorRed}),

		SummaryTitle: mk(look{bold: true}),
		SummaryValue: mk(look{}),
		Success:      mk(look{fg: colorGreen, bold: true}),
		Failure:      mk(look{fg: colorRed, bold: true}),

		TableHeader:    mk(look{fg: colorLight, bold: true}),
		TableName:      mk(look{fg: colorCyan}),
		TableOpaque:    mk(look{fg: colorGray, italic: true}),
		TableSeparator: mk(look{fg: colorGray}),

		Dim:  mk(look{fg: colorGray}),
		Bold: mk(look{bold: true}),
	}
}

// IsColorEnabled resolves a --color mode ("always", "never", anything else
// meaning auto) for writer. Auto enables color for terminals unless NO_COLOR
// is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	if mode == "always" || mode == "never" {
		return mode == "always"
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
