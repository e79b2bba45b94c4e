package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/semmerge/pkg/definition"
)

// Table formatting constants.
const (
	opaqueLabel      = "(opaque)"
	tablePadding     = 2
	tableColumnCount = 4 // LINE, NAME, SIZE, PREVIEW
	minLineWidth     = 4
	minNameWidth     = 12
	minSizeWidth     = 6
	minPreviewWidth  = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single definition in the table.
type TableRow struct {
	Line    string
	Name    string
	Size    string
	Preview string
	Opaque  bool
}

// TableFormatter formats definition sequences as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatDefinitions formats the definitions of one file as a table.
func (t *TableFormatter) FormatDefinitions(defs []definition.Definition) string {
	if len(defs) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(defs))
	for _, def := range defs {
		rows = append(rows, DefinitionToTableRow(def))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatFooter(defs))
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	line    int
	name    int
	size    int
	preview int
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		line:    minLineWidth,
		name:    minNameWidth,
		size:    minSizeWidth,
		preview: minPreviewWidth,
	}

	for _, row := range rows {
		widths.line = max(widths.line, len(row.Line))
		widths.name = max(widths.name, len(row.Name))
		widths.size = max(widths.size, len(row.Size))
		widths.preview = max(widths.preview, len(row.Preview))
	}

	// Shrink the preview first, then names.
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.preview = max(minPreviewWidth, widths.preview-(total-t.termWidth))
	}
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.name = max(minNameWidth, widths.name-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.line + widths.name + widths.size + widths.preview + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %*s  %-*s  %*s  %-*s ",
		widths.line, "LINE",
		widths.name, "NAME",
		widths.size, "SIZE",
		widths.preview, "PREVIEW",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	name := truncateString(row.Name, widths.name)
	padded := fmt.Sprintf("%-*s", widths.name, name)
	if row.Opaque {
		padded = t.styles.TableOpaque.Render(padded)
	} else {
		padded = t.styles.TableName.Render(padded)
	}

	return fmt.Sprintf(" %*s  %s  %*s  %s",
		widths.line, row.Line,
		padded,
		widths.size, row.Size,
		t.styles.Dim.Render(truncateString(row.Preview, widths.preview)),
	)
}

func (t *TableFormatter) formatFooter(defs []definition.Definition) string {
	named := 0
	for _, def := range defs {
		if !def.IsOpaque() {
			named++
		}
	}
	return t.styles.Dim.Render(fmt.Sprintf(" %d definitions, %d opaque", named, len(defs)-named))
}

// DefinitionToTableRow converts a definition to a table row.
func DefinitionToTableRow(def definition.Definition) TableRow {
	row := TableRow{
		Line:    strconv.Itoa(def.Line),
		Name:    def.Name,
		Size:    humanize.IBytes(uint64(len(def.Text))),
		Preview: preview(def.Text),
		Opaque:  def.IsOpaque(),
	}
	if row.Opaque {
		row.Name = opaqueLabel
	}
	return row
}

// preview returns the first non-blank line of text.
func preview(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
