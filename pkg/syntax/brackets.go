package syntax

import (
	"errors"
	"io"

	"github.com/yaklabco/semmerge/pkg/source"
)

// ElementStream is a pull-based sequence of elements. Next returns io.EOF
// after the last element.
type ElementStream interface {
	Next() (Element, error)
}

// Pairs maps each opening delimiter text to its closing text.
type Pairs map[string]string

type bracketMatcher struct {
	tokens  TokenStream
	pairs   Pairs
	closers map[string]bool
	err     error
}

// MatchBrackets groups balanced delimiters of the token stream into
// Parenthesized elements. Tokens outside any group pass through unchanged.
// Each top-level group is consumed eagerly when its opener is reached.
func MatchBrackets(tokens TokenStream, pairs Pairs) ElementStream {
	closers := make(map[string]bool, len(pairs))
	for _, closer := range pairs {
		closers[closer] = true
	}
	return &bracketMatcher{tokens: tokens, pairs: pairs, closers: closers}
}

func (m *bracketMatcher) Next() (Element, error) {
	if m.err != nil {
		return nil, m.err
	}

	elem, err := m.next()
	if err != nil {
		m.err = err
		return nil, err
	}
	return elem, nil
}

func (m *bracketMatcher) next() (Element, error) {
	tok, err := m.tokens.Next()
	if err != nil {
		return nil, err
	}

	text := tok.Text()
	if closer, ok := m.pairs[text]; ok {
		return m.group(tok, closer)
	}
	if m.closers[text] {
		return nil, tok.Error(source.KindBracket, "unexpected parenthesis")
	}
	return tok, nil
}

func (m *bracketMatcher) group(open Token, closer string) (*Parenthesized, error) {
	group := &Parenthesized{Open: open}

	for {
		tok, err := m.tokens.Next()
		if errors.Is(err, io.EOF) {
			return nil, open.Error(source.KindBracket, "unclosed parenthesis: expected '%s'", closer)
		}
		if err != nil {
			return nil, err
		}

		text := tok.Text()
		switch {
		case text == closer:
			group.Close = tok
			return group, nil
		case m.closers[text]:
			return nil, tok.Error(source.KindBracket, "incorrectly matched parentheses: expected '%s'", closer)
		}

		if nested, ok := m.pairs[text]; ok {
			child, err := m.group(tok, nested)
			if err != nil {
				return nil, err
			}
			group.Elements = append(group.Elements, child)
			continue
		}

		group.Elements = append(group.Elements, tok)
	}
}

// CollectElements drains an element stream.
func CollectElements(stream ElementStream) ([]Element, error) {
	var elems []Element
	for {
		elem, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return elems, nil
		}
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
}
