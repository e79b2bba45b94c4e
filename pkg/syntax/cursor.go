package syntax

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/semmerge/pkg/source"
)

// ErrEndOfLine is returned when a cursor runs out of elements.
var ErrEndOfLine = errors.New("unexpected end of line")

// Cursor walks the elements of a line, skipping whitespace tokens (indents,
// newlines and continuations) between reads. Comments are not skipped.
type Cursor struct {
	elems []Element
	index int
}

// NewCursor creates a cursor positioned at the first non-whitespace element.
func NewCursor(elems []Element) *Cursor {
	cursor := &Cursor{elems: elems}
	cursor.skipWhitespace()
	return cursor
}

// HasNext reports whether any element remains.
func (c *Cursor) HasNext() bool {
	return c.index < len(c.elems)
}

// Peek returns the next element without consuming it, or nil.
func (c *Cursor) Peek() Element {
	if !c.HasNext() {
		return nil
	}
	return c.elems[c.index]
}

// Skip consumes and returns the next element, or nil.
func (c *Cursor) Skip() Element {
	elem := c.Peek()
	if elem != nil {
		c.index++
		c.skipWhitespace()
	}
	return elem
}

// Rest returns the unconsumed elements.
func (c *Cursor) Rest() []Element {
	return c.elems[c.index:]
}

// SkipToken consumes the next element if it is a token whose text is one of
// texts. With no texts any token matches.
func (c *Cursor) SkipToken(texts ...string) (Token, bool) {
	tok, ok := c.Peek().(Token)
	if !ok {
		return Token{}, false
	}
	if len(texts) > 0 && !slices.Contains(texts, tok.Text()) {
		return Token{}, false
	}
	c.Skip()
	return tok, true
}

// SkipGroup consumes the next element if it is a bracket group opened by
// open.
func (c *Cursor) SkipGroup(open string) (*Parenthesized, bool) {
	group, ok := c.Peek().(*Parenthesized)
	if !ok || group.Open.Text() != open {
		return nil, false
	}
	c.Skip()
	return group, true
}

// RequireToken is like SkipToken but fails when nothing matches.
func (c *Cursor) RequireToken(texts ...string) (Token, error) {
	if tok, ok := c.SkipToken(texts...); ok {
		return tok, nil
	}

	want := "a token"
	if len(texts) > 0 {
		want = fmt.Sprintf("one of %q", texts)
	}

	switch elem := c.Peek().(type) {
	case Token:
		return Token{}, elem.Error(source.KindLex, "expected %s, found %q", want, elem.Text())
	case *Parenthesized:
		return Token{}, elem.Open.Error(source.KindLex, "expected %s, found bracket group", want)
	default:
		return Token{}, fmt.Errorf("expected %s at end of line: %w", want, ErrEndOfLine)
	}
}

func (c *Cursor) skipWhitespace() {
	for c.index < len(c.elems) {
		tok, ok := c.elems[c.index].(Token)
		if !ok || !tok.IsTrivia() {
			return
		}
		c.index++
	}
}
