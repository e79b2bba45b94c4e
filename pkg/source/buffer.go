package source

import "strings"

// Buffer is one input text and the name it was read from. A Buffer is created
// once per input and shared by pointer; it is never copied or modified.
type Buffer struct {
	// Filename is used in diagnostics only.
	Filename string

	// Text is the full source text.
	Text string
}

// NewBuffer creates a buffer for text.
func NewBuffer(filename, text string) *Buffer {
	return &Buffer{Filename: filename, Text: text}
}

// Len returns the length of the buffer text in bytes.
func (b *Buffer) Len() int {
	return len(b.Text)
}

// Slice returns the text covered by span.
func (b *Buffer) Slice(span Span) string {
	return b.Text[span.Start.Offset:span.End.Offset]
}

// SpanFrom returns the span that starts at pos and ends at offset end.
func (b *Buffer) SpanFrom(pos Position, end int) Span {
	return Span{Start: pos, End: pos.Advance(b.Text, pos.Offset, end)}
}

// LineAt returns the physical line containing pos, without its newline.
func (b *Buffer) LineAt(pos Position) string {
	start := pos.Offset - pos.Column
	if start < 0 || start > len(b.Text) {
		return ""
	}
	rest := b.Text[start:]
	if end := strings.IndexByte(rest, '\n'); end >= 0 {
		return rest[:end]
	}
	return rest
}
