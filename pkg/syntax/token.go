// Package syntax implements the dialect-independent structural parsing
// pipeline: a pattern-driven lexer, bracket matching, logical-line
// segmentation and indentation-block segmentation.
//
// Each stage pulls from the previous one element at a time. Parsed structures
// reference the source.Buffer they came from and never copy its text.
package syntax

import "github.com/yaklabco/semmerge/pkg/source"

// Kind tags a token. The set of kinds a lexer can produce is fixed by its
// Grammar; the kinds below are the vocabulary shared by the built-in dialects.
type Kind string

// Token kinds understood by the segmenters.
const (
	KindIndent    Kind = "indent"
	KindNewline   Kind = "newline"
	KindComment   Kind = "comment"
	KindBackslash Kind = "backslash"
)

// Token kinds used by the Python grammar.
const (
	KindName      Kind = "name"
	KindNumber    Kind = "number"
	KindString    Kind = "string"
	KindOp        Kind = "op"
	KindSemicolon Kind = "semicolon"
)

// Token kinds used by the CMake grammar.
const (
	KindBracket  Kind = "bracket"
	KindQuoted   Kind = "quoted"
	KindUnquoted Kind = "unquoted"
	KindSpecial  Kind = "special"
)

// Token is a classified span of a buffer. Its text is sliced from the buffer
// on demand.
type Token struct {
	Kind   Kind
	Span   source.Span
	Buffer *source.Buffer
}

// Text returns the source text of the token.
func (t Token) Text() string {
	return t.Buffer.Slice(t.Span)
}

// Len returns the byte length of the token.
func (t Token) Len() int {
	return t.Span.Len()
}

// Start returns the position of the first byte of the token.
func (t Token) Start() source.Position {
	return t.Span.Start
}

// End returns the position just past the token.
func (t Token) End() source.Position {
	return t.Span.End
}

// IsTrivia reports whether the token carries no syntax of its own: leading
// whitespace, a line break, or a line continuation.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case KindIndent, KindNewline, KindBackslash:
		return true
	default:
		return false
	}
}

// Error creates a parse error of the given kind covering the token.
func (t Token) Error(kind source.ErrorKind, format string, args ...any) *source.Error {
	return source.Errorf(kind, t.Buffer, t.Span, format, args...)
}

func (Token) element() {}
