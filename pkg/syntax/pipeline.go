package syntax

import (
	"iter"
	"strings"

	"github.com/yaklabco/semmerge/pkg/source"
)

// Pipeline is the full structural configuration of a dialect.
type Pipeline struct {
	Grammar *Grammar
	Pairs   Pairs
	Lines   LineOptions
}

// LineStream returns the lazily parsed logical lines of buf.
func (p Pipeline) LineStream(buf *source.Buffer) LineStream {
	return SegmentLines(MatchBrackets(NewLexer(p.Grammar, buf), p.Pairs), p.Lines)
}

// ParseLines parses buf into logical lines.
func (p Pipeline) ParseLines(buf *source.Buffer) ([]*Line, error) {
	return CollectLines(p.LineStream(buf))
}

// ParseBlocks parses buf into top-level lines and indentation blocks, with
// trailing blank lines moved out of the blocks they do not belong to.
func (p Pipeline) ParseBlocks(buf *source.Buffer) ([]Node, error) {
	nodes, err := CollectBlocks(SegmentBlocks(p.LineStream(buf)))
	if err != nil {
		return nil, err
	}
	return FixupEndOfBlock(nodes), nil
}

// CheckCoverage verifies that tokens appear in order and that only
// whitespace lies between them and after the last one.
func CheckCoverage(buf *source.Buffer, tokens iter.Seq[Token]) error {
	pos := source.Start()
	for tok := range tokens {
		if tok.Span.Start.Offset < pos.Offset {
			return tok.Error(source.KindLex, "token overlaps previous token")
		}
		if err := checkGap(buf, pos, tok.Span.Start.Offset); err != nil {
			return err
		}
		pos = tok.Span.End
	}
	return checkGap(buf, pos, buf.Len())
}

func checkGap(buf *source.Buffer, pos source.Position, end int) error {
	if strings.TrimSpace(buf.Text[pos.Offset:end]) == "" {
		return nil
	}
	return source.NewError(source.KindLex, buf, buf.SpanFrom(pos, end), "text not covered by any token")
}
