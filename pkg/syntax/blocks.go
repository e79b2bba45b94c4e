package syntax

import (
	"errors"
	"io"

	"github.com/yaklabco/semmerge/pkg/source"
)

// NodeStream is a pull-based sequence of top-level nodes. Next returns io.EOF
// after the last node.
type NodeStream interface {
	Next() (Node, error)
}

type blockSegmenter struct {
	lines   LineStream
	stack   []*Block
	expect  *Token
	pending []Node
	done    bool
	err     error
}

// SegmentBlocks groups lines into indentation blocks. A line ending in a
// colon must be followed by a more deeply indented line, which opens a new
// block. Blank and comment-only lines never open or close blocks and are
// attached to the innermost open block.
//
// Top-level nodes are yielded as soon as they can no longer grow.
func SegmentBlocks(lines LineStream) NodeStream {
	return &blockSegmenter{lines: lines}
}

func (s *blockSegmenter) Next() (Node, error) {
	if s.err != nil {
		return nil, s.err
	}

	for len(s.pending) == 0 {
		if s.done {
			return nil, io.EOF
		}
		if err := s.pull(); err != nil {
			s.err = err
			return nil, err
		}
	}

	node := s.pending[0]
	s.pending = s.pending[1:]
	return node, nil
}

func (s *blockSegmenter) pull() error {
	line, err := s.lines.Next()
	if errors.Is(err, io.EOF) {
		if s.expect != nil {
			return s.expect.Error(source.KindIndent, "expected indent after colon at eof")
		}
		for len(s.stack) > 0 {
			s.pop()
		}
		s.done = true
		return nil
	}
	if err != nil {
		return err
	}

	if line.FirstNonBlank != nil {
		indent := line.IndentText()

		if s.expect != nil {
			if len(indent) <= len(s.currentIndent()) {
				return s.expect.Error(source.KindIndent, "expected indent")
			}
			s.stack = append(s.stack, &Block{Indent: indent})
		} else {
			for len(s.stack) > 0 && len(indent) < len(s.currentIndent()) {
				s.pop()
			}
			if len(indent) > len(s.currentIndent()) {
				return line.FirstNonBlank.Error(source.KindIndent, "unexpected indent")
			}
		}

		s.expect = line.Colon
	}

	s.attach(line)
	return nil
}

func (s *blockSegmenter) currentIndent() string {
	if len(s.stack) == 0 {
		return ""
	}
	return s.stack[len(s.stack)-1].Indent
}

func (s *blockSegmenter) pop() {
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.attach(top)
}

func (s *blockSegmenter) attach(node Node) {
	if len(s.stack) == 0 {
		s.pending = append(s.pending, node)
		return
	}
	top := s.stack[len(s.stack)-1]
	top.Children = append(top.Children, node)
}

// CollectBlocks drains a node stream.
func CollectBlocks(stream NodeStream) ([]Node, error) {
	var nodes []Node
	for {
		node, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return nodes, nil
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// FixupEndOfBlock moves blank and comment-only lines that trail a block,
// and are indented less than the block, out of the block so they follow it
// instead. Blocks are processed bottom-up. The flattened token sequence is
// unchanged.
func FixupEndOfBlock(nodes []Node) []Node {
	fixed := make([]Node, 0, len(nodes))

	for _, node := range nodes {
		block, ok := node.(*Block)
		if !ok {
			fixed = append(fixed, node)
			continue
		}

		block.Children = FixupEndOfBlock(block.Children)

		keep := len(block.Children)
		for keep > 0 {
			line, ok := block.Children[keep-1].(*Line)
			if !ok || line.FirstNonBlank != nil {
				break
			}
			if line.Indent != nil && len(line.IndentText()) >= len(block.Indent) {
				break
			}
			keep--
		}

		moved := block.Children[keep:]
		block.Children = block.Children[:keep:keep]
		fixed = append(fixed, block)
		fixed = append(fixed, moved...)
	}

	return fixed
}
