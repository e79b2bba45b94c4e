package syntax

import (
	"errors"
	"io"

	"github.com/yaklabco/semmerge/pkg/source"
)

// LineOptions selects the dialect-specific parts of line segmentation.
type LineOptions struct {
	// Colon tracks a trailing ":" token on each line.
	Colon bool

	// Continuation treats a backslash token followed by a newline as a line
	// continuation.
	Continuation bool
}

// LineStream is a pull-based sequence of logical lines. Next returns io.EOF
// after the last line.
type LineStream interface {
	Next() (*Line, error)
}

type lineSegmenter struct {
	elems     ElementStream
	opts      LineOptions
	line      *Line
	backslash *Token
	done      bool
	err       error
}

// SegmentLines splits an element stream into logical lines. Newlines inside
// bracket groups never end a line because they are nested in the group.
func SegmentLines(elems ElementStream, opts LineOptions) LineStream {
	return &lineSegmenter{elems: elems, opts: opts, line: &Line{}}
}

func (s *lineSegmenter) Next() (*Line, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.done {
		return nil, io.EOF
	}

	line, err := s.next()
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = err
	}
	return line, err
}

func (s *lineSegmenter) next() (*Line, error) {
	for {
		elem, err := s.elems.Next()
		if errors.Is(err, io.EOF) {
			s.done = true
			if s.backslash != nil {
				return nil, s.backslash.Error(source.KindIndent, "unexpected EOF after backslash")
			}
			if len(s.line.Elements) > 0 {
				return s.flush(), nil
			}
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}

		if tok, ok := elem.(Token); ok {
			switch tok.Kind {
			case KindIndent:
				if len(s.line.Elements) == 0 {
					s.line.Indent = &tok
				}
				s.line.Elements = append(s.line.Elements, tok)
				continue

			case KindNewline:
				s.line.Elements = append(s.line.Elements, tok)
				if s.backslash != nil {
					s.backslash = nil
					continue
				}
				s.line.Newline = &tok
				return s.flush(), nil

			case KindComment:
				s.line.Elements = append(s.line.Elements, tok)
				continue
			}
		}

		if s.backslash != nil {
			return nil, s.backslash.Error(source.KindIndent, "expected newline after backslash")
		}

		if s.line.FirstNonBlank == nil {
			s.line.FirstNonBlank = firstToken(elem)
		}
		s.line.Colon = nil
		s.line.Elements = append(s.line.Elements, elem)

		tok, ok := elem.(Token)
		if !ok {
			continue
		}
		switch {
		case s.opts.Continuation && tok.Kind == KindBackslash:
			s.backslash = &tok
		case s.opts.Colon && tok.Text() == ":":
			s.line.Colon = &tok
		}
	}
}

func (s *lineSegmenter) flush() *Line {
	line := s.line
	s.line = &Line{}
	return line
}

func firstToken(elem Element) *Token {
	switch elem := elem.(type) {
	case Token:
		return &elem
	case *Parenthesized:
		open := elem.Open
		return &open
	default:
		return nil
	}
}

// CollectLines drains a line stream.
func CollectLines(stream LineStream) ([]*Line, error) {
	var lines []*Line
	for {
		line, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}
