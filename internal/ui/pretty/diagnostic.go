package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/semmerge/pkg/source"
)

// sourceIndent aligns source excerpts under the diagnostic line.
const sourceIndent = "        "

// FormatParseError formats a structural parse error with its source excerpt.
func (s *Styles) FormatParseError(perr *source.Error) string {
	var builder strings.Builder

	filename := "<input>"
	if perr.Buffer != nil && perr.Buffer.Filename != "" {
		filename = perr.Buffer.Filename
	}
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(filename),
		perr.Span.Start.Line,
		perr.Span.Start.Column+1,
	)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Error.Render("error"),
		s.Message.Render(perr.Message),
		s.Kind.Render("("+string(perr.Kind)+")"),
	))

	line, marker := perr.Excerpt()
	if line != "" {
		builder.WriteString(s.FormatSourceContext(line, marker))
	}

	return builder.String()
}

// FormatFileError formats a failure that has no source position.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("  %s  %s  %s\n",
		s.FilePath.Render(path),
		s.Error.Render("error"),
		s.Message.Render(err.Error()),
	)
}

// FormatSourceContext formats the source line with its caret marker.
func (s *Styles) FormatSourceContext(line, marker string) string {
	return sourceIndent + s.SourceLine.Render(line) + "\n" +
		sourceIndent + s.Caret.Render(marker) + "\n"
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path, dialect string) string {
	header := s.FilePath.Render(path)
	if dialect != "" {
		header += s.Dim.Render(" (" + dialect + ")")
	}
	return header
}
