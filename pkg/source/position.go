// Package source provides the immutable source buffer shared by every token
// derived from it, monotonic position tracking, and positioned parse errors.
package source

import (
	"fmt"
	"strings"
)

// Position is a location in a Buffer.
type Position struct {
	// Offset is the byte index into the buffer text.
	Offset int

	// Line is the 1-based line number.
	Line int

	// Column is the 0-based byte distance from the start of the line.
	Column int
}

// Start returns the position of the first byte of a buffer.
func Start() Position {
	return Position{Offset: 0, Line: 1, Column: 0}
}

// Advance returns the position reached after consuming text[i:j], where p is
// the position of text[i]. If the slice contains no newline the column grows
// by its length; otherwise the line count grows by the number of newlines and
// the column becomes the distance from the last newline to the slice end.
func (p Position) Advance(text string, i, j int) Position {
	if i >= j {
		return p
	}

	consumed := text[i:j]
	newlines := strings.Count(consumed, "\n")
	if newlines == 0 {
		return Position{Offset: p.Offset + (j - i), Line: p.Line, Column: p.Column + (j - i)}
	}

	last := strings.LastIndexByte(consumed, '\n')
	return Position{
		Offset: p.Offset + (j - i),
		Line:   p.Line + newlines,
		Column: len(consumed) - (last + 1),
	}
}

// String formats the position as line:column with a 1-based column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column+1)
}

// Span is a half-open range [Start, End) of a buffer.
type Span struct {
	Start Position
	End   Position
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Start.Offset == s.End.Offset
}

// Contains reports whether offset lies within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// String formats the span as start-end.
func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}
