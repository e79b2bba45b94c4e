package source

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a structural parse failure.
type ErrorKind string

const (
	// KindLex is non-whitespace input that no grammar rule matched.
	KindLex ErrorKind = "lex"

	// KindBracket is an unmatched or mismatched delimiter.
	KindBracket ErrorKind = "bracket"

	// KindIndent is an unexpected, expected or missing indent, or a dangling
	// colon or backslash at end of input.
	KindIndent ErrorKind = "indent"
)

// Error is a parse failure anchored to a span of a buffer.
type Error struct {
	Kind    ErrorKind
	Message string
	Buffer  *Buffer
	Span    Span

	// Length is the number of bytes underlined in the diagnostic.
	Length int
}

// NewError creates an error covering span.
func NewError(kind ErrorKind, buf *Buffer, span Span, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Buffer:  buf,
		Span:    span,
		Length:  span.Len(),
	}
}

// Errorf creates an error covering span with a formatted message.
func Errorf(kind ErrorKind, buf *Buffer, span Span, format string, args ...any) *Error {
	return NewError(kind, buf, span, fmt.Sprintf(format, args...))
}

// Error returns the one-line form "file:line:col: message".
func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.filename(), e.Span.Start.Line, e.Span.Start.Column+1, e.Message)
}

// Diagnostic renders the one-line form, followed by the offending source line
// and a caret under the span start with Length-1 tildes.
func (e *Error) Diagnostic() string {
	line, marker := e.Excerpt()

	var builder strings.Builder
	builder.WriteString(e.Error())
	builder.WriteString("\n    ")
	builder.WriteString(line)
	builder.WriteString("\n    ")
	builder.WriteString(marker)
	return builder.String()
}

// Excerpt returns the offending line with its leading whitespace removed and
// the caret marker aligned to it.
func (e *Error) Excerpt() (string, string) {
	if e.Buffer == nil {
		return "", "^"
	}

	line := e.Buffer.LineAt(e.Span.Start)
	column := min(e.Span.Start.Column, len(line))
	prefix := line[:column]
	trimmed := strings.TrimLeft(prefix, " \t")
	stripped := len(prefix) - len(trimmed)

	marker := strings.Repeat(" ", len(trimmed)) + "^" + strings.Repeat("~", max(e.Length-1, 0))
	return line[stripped:], marker
}

func (e *Error) filename() string {
	if e.Buffer == nil || e.Buffer.Filename == "" {
		return "<input>"
	}
	return e.Buffer.Filename
}
