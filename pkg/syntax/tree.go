package syntax

import (
	"iter"

	"github.com/yaklabco/semmerge/pkg/source"
)

// Element is a member of a line: either a Token or a *Parenthesized group.
type Element interface {
	Start() source.Position
	End() source.Position
	element()
}

// Parenthesized is a balanced bracket group. Open and Close are the delimiter
// tokens; Elements holds everything between them.
type Parenthesized struct {
	Open     Token
	Close    Token
	Elements []Element
}

// Start returns the position of the opening delimiter.
func (p *Parenthesized) Start() source.Position {
	return p.Open.Start()
}

// End returns the position just past the closing delimiter.
func (p *Parenthesized) End() source.Position {
	return p.Close.End()
}

// Span covers the group including both delimiters.
func (p *Parenthesized) Span() source.Span {
	return source.Span{Start: p.Start(), End: p.End()}
}

// Text returns the source text of the group including both delimiters.
func (p *Parenthesized) Text() string {
	return p.Open.Buffer.Slice(p.Span())
}

func (*Parenthesized) element() {}

// Node is a member of a block structure: either a *Line or a *Block.
type Node interface {
	Start() source.Position
	End() source.Position
	node()
}

// Line is a logical line: elements up to and including a newline token that
// is not escaped by a continuation and not inside brackets. The final line of
// an input may lack a newline.
type Line struct {
	Elements []Element

	// Indent is the leading indent token, if the line has one.
	Indent *Token

	// FirstNonBlank is the first element that is not whitespace or a
	// comment. Nil marks a blank or comment-only line. For a bracket group it
	// is the opening delimiter.
	FirstNonBlank *Token

	// Colon is set when the last significant token on the line is ":".
	Colon *Token

	// Newline is the terminating newline token, nil at end of input.
	Newline *Token
}

// Start returns the position of the first element.
func (l *Line) Start() source.Position {
	return l.Elements[0].Start()
}

// End returns the position just past the last element.
func (l *Line) End() source.Position {
	return l.Elements[len(l.Elements)-1].End()
}

// IndentText returns the text of the leading indent, or "".
func (l *Line) IndentText() string {
	if l.Indent == nil {
		return ""
	}
	return l.Indent.Text()
}

// IsBlank reports whether the line holds only whitespace and comments.
func (l *Line) IsBlank() bool {
	return l.FirstNonBlank == nil
}

func (*Line) node() {}

// Block is a run of lines sharing an indentation level greater than that of
// the line that opened it. Children hold lines and nested blocks in order.
type Block struct {
	Indent   string
	Children []Node
}

// Start returns the position of the first child.
func (b *Block) Start() source.Position {
	return b.Children[0].Start()
}

// End returns the position just past the last child.
func (b *Block) End() source.Position {
	return b.Children[len(b.Children)-1].End()
}

// FirstNonBlank returns the first significant token of the block.
func (b *Block) FirstNonBlank() *Token {
	for _, child := range b.Children {
		switch child := child.(type) {
		case *Line:
			if child.FirstNonBlank != nil {
				return child.FirstNonBlank
			}
		case *Block:
			if tok := child.FirstNonBlank(); tok != nil {
				return tok
			}
		}
	}
	return nil
}

func (*Block) node() {}

// Tokens yields every token of elems depth-first in source order, including
// bracket delimiters.
func Tokens(elems []Element) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		walkElements(elems, yield)
	}
}

// Flatten yields every token of nodes depth-first in source order.
func Flatten(nodes ...Node) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		walkNodes(nodes, yield)
	}
}

func walkNodes(nodes []Node, yield func(Token) bool) bool {
	for _, node := range nodes {
		switch node := node.(type) {
		case *Line:
			if !walkElements(node.Elements, yield) {
				return false
			}
		case *Block:
			if !walkNodes(node.Children, yield) {
				return false
			}
		}
	}
	return true
}

func walkElements(elems []Element, yield func(Token) bool) bool {
	for _, elem := range elems {
		switch elem := elem.(type) {
		case Token:
			if !yield(elem) {
				return false
			}
		case *Parenthesized:
			if !yield(elem.Open) {
				return false
			}
			if !walkElements(elem.Elements, yield) {
				return false
			}
			if !yield(elem.Close) {
				return false
			}
		}
	}
	return true
}
