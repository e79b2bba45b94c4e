package syntax

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/yaklabco/semmerge/pkg/source"
)

// Rule maps a regular expression to the token kind it produces.
// Patterns must not match the empty string and should only use
// non-capturing groups.
type Rule struct {
	Kind    Kind
	Pattern string
}

// Grammar is an ordered pattern table compiled into a single alternation.
// When several rules match at the same offset the earliest rule wins.
type Grammar struct {
	name   string
	rules  []Rule
	re     *regexp.Regexp
	groups []int
}

// ErrEmptyGrammar is returned when a grammar has no rules.
var ErrEmptyGrammar = errors.New("grammar has no rules")

// NewGrammar compiles rules in order. Patterns are compiled in multi-line
// mode so that ^ anchors at line starts.
func NewGrammar(name string, rules ...Rule) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyGrammar)
	}

	parts := make([]string, len(rules))
	for idx, rule := range rules {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return nil, fmt.Errorf("%s: rule %q: %w", name, rule.Kind, err)
		}
		parts[idx] = "(?P<r" + strconv.Itoa(idx) + ">" + rule.Pattern + ")"
	}

	re, err := regexp.Compile("(?m)" + strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	groups := make([]int, len(rules))
	for idx := range rules {
		groups[idx] = re.SubexpIndex("r" + strconv.Itoa(idx))
	}

	return &Grammar{name: name, rules: rules, re: re, groups: groups}, nil
}

// MustGrammar is like NewGrammar but panics on error. It is intended for
// package-level grammar tables.
func MustGrammar(name string, rules ...Rule) *Grammar {
	g, err := NewGrammar(name, rules...)
	if err != nil {
		panic(err)
	}
	return g
}

// Name returns the grammar name.
func (g *Grammar) Name() string {
	return g.name
}

// Kinds returns the token kinds the grammar can produce, in rule order.
func (g *Grammar) Kinds() []Kind {
	kinds := make([]Kind, len(g.rules))
	for idx, rule := range g.rules {
		kinds[idx] = rule.Kind
	}
	return kinds
}

// TokenStream is a pull-based sequence of tokens. Next returns io.EOF after
// the last token.
type TokenStream interface {
	Next() (Token, error)
}

// Lexer produces tokens from a buffer lazily. Any text between tokens must
// be whitespace.
type Lexer struct {
	grammar *Grammar
	buf     *source.Buffer
	pos     source.Position
	err     error
}

// NewLexer creates a lexer over the whole of buf.
func NewLexer(g *Grammar, buf *source.Buffer) *Lexer {
	return NewLexerAt(g, buf, source.Start())
}

// NewLexerAt creates a lexer that continues in buf from pos.
func NewLexerAt(g *Grammar, buf *source.Buffer, pos source.Position) *Lexer {
	return &Lexer{grammar: g, buf: buf, pos: pos}
}

// Buffer returns the buffer being lexed.
func (l *Lexer) Buffer() *source.Buffer {
	return l.buf
}

// Position returns the position just past the last token produced.
func (l *Lexer) Position() source.Position {
	return l.pos
}

// Next returns the next token, io.EOF at the end of input, or a lex error.
// Errors are sticky.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}

	tok, err := l.next()
	if err != nil {
		l.err = err
	}
	return tok, err
}

func (l *Lexer) next() (Token, error) {
	text := l.buf.Text

	for {
		offset := l.pos.Offset
		loc := l.grammar.re.FindStringSubmatchIndex(text[offset:])
		if loc == nil {
			if err := l.skipWhitespace(len(text)); err != nil {
				return Token{}, err
			}
			return Token{}, io.EOF
		}

		start, end := offset+loc[0], offset+loc[1]
		kind, ok := l.grammar.kindAt(loc)
		if !ok || start == end {
			return Token{}, source.NewError(source.KindLex, l.buf, l.buf.SpanFrom(l.pos, offset),
				fmt.Sprintf("grammar %s produced an empty match", l.grammar.name))
		}

		if err := l.skipWhitespace(start); err != nil {
			return Token{}, err
		}

		// ^ also matches where the search resumed, which is not necessarily
		// a line start.
		if kind == KindIndent && start > 0 && text[start-1] != '\n' {
			l.pos = l.pos.Advance(text, start, end)
			continue
		}

		span := l.buf.SpanFrom(l.pos, end)
		l.pos = span.End
		return Token{Kind: kind, Span: span, Buffer: l.buf}, nil
	}
}

// skipWhitespace advances to offset end, failing if the skipped text is not
// pure whitespace.
func (l *Lexer) skipWhitespace(end int) error {
	text := l.buf.Text
	begin := l.pos.Offset
	if begin >= end {
		return nil
	}

	gap := text[begin:end]
	if strings.TrimSpace(gap) != "" {
		lead := len(gap) - len(strings.TrimLeftFunc(gap, unicode.IsSpace))
		trail := len(strings.TrimRightFunc(gap, unicode.IsSpace))
		from := l.pos.Advance(text, begin, begin+lead)
		to := from.Advance(text, begin+lead, begin+trail)
		return source.NewError(source.KindLex, l.buf, source.Span{Start: from, End: to},
			"unexpected data while lexing")
	}

	l.pos = l.pos.Advance(text, begin, end)
	return nil
}

func (g *Grammar) kindAt(loc []int) (Kind, bool) {
	for idx, group := range g.groups {
		if loc[2*group] >= 0 {
			return g.rules[idx].Kind, true
		}
	}
	return "", false
}

// Tokenize lexes the whole of text.
func Tokenize(g *Grammar, filename, text string) ([]Token, error) {
	return CollectTokens(NewLexer(g, source.NewBuffer(filename, text)))
}

// CollectTokens drains a token stream.
func CollectTokens(stream TokenStream) ([]Token, error) {
	var tokens []Token
	for {
		tok, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}
