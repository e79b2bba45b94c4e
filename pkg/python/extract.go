package python

import (
	"github.com/yaklabco/semmerge/pkg/definition"
	"github.com/yaklabco/semmerge/pkg/source"
	"github.com/yaklabco/semmerge/pkg/syntax"
)

// Keywords introduce a named definition. "async def" is handled as well.
var Keywords = []string{"def", "class"}

// DefinitionName returns the name declared by a def, async def or class
// line.
func DefinitionName(line *syntax.Line) (string, bool) {
	cursor := syntax.NewCursor(line.Elements)

	if _, ok := cursor.SkipToken("async"); ok {
		if _, ok := cursor.SkipToken("def"); !ok {
			return "", false
		}
	} else if _, ok := cursor.SkipToken(Keywords...); !ok {
		return "", false
	}

	name, err := cursor.RequireToken()
	if err != nil || name.Kind != syntax.KindName {
		return "", false
	}
	return name.Text(), true
}

// Extract splits a Python source into top-level definitions. A definition
// starts at its prologue of decorators and unindented comments and extends
// over its body and any blank, indented or comment lines that follow it. Every
// other top-level line or block becomes an opaque segment of its own.
func Extract(filename, text string) ([]definition.Definition, error) {
	nodes, err := Pipeline.ParseBlocks(source.NewBuffer(filename, text))
	if err != nil {
		return nil, err
	}

	var cuts []definition.Cut
	opaque := func(node syntax.Node) {
		start := node.Start()
		cuts = append(cuts, definition.Cut{Offset: start.Offset, Line: start.Line})
	}

	for idx := 0; idx < len(nodes); {
		head := prologueEnd(nodes, idx)

		name, ok := "", false
		if head < len(nodes) {
			if line, isLine := nodes[head].(*syntax.Line); isLine {
				name, ok = DefinitionName(line)
			}
		}

		if !ok {
			for _, node := range nodes[idx:min(head+1, len(nodes))] {
				opaque(node)
			}
			idx = head + 1
			continue
		}

		start := nodes[idx].Start()
		cuts = append(cuts, definition.Cut{Offset: start.Offset, Line: start.Line, Name: name})

		idx = head + 1
		for idx < len(nodes) && isEpilogue(nodes, idx) {
			idx++
		}
	}

	return definition.Partition(text, cuts), nil
}

// prologueEnd returns the index of the first node at or after idx that is
// not a decorator or unindented comment line.
func prologueEnd(nodes []syntax.Node, idx int) int {
	for idx < len(nodes) && isPrologue(nodes[idx]) {
		idx++
	}
	return idx
}

func isPrologue(node syntax.Node) bool {
	line, ok := node.(*syntax.Line)
	if !ok {
		return false
	}

	first, ok := syntax.NewCursor(line.Elements).Peek().(syntax.Token)
	if !ok {
		return false
	}
	if first.Text() == "@" {
		return true
	}
	return first.Kind == syntax.KindComment && line.Indent == nil
}

// isEpilogue reports whether nodes[idx] belongs to the definition before it.
// An unindented comment that opens the prologue of the next definition does
// not.
func isEpilogue(nodes []syntax.Node, idx int) bool {
	line, ok := nodes[idx].(*syntax.Line)
	if !ok {
		return true
	}
	if line.Indent != nil {
		return true
	}
	if line.FirstNonBlank != nil {
		return false
	}

	first, ok := syntax.NewCursor(line.Elements).Peek().(syntax.Token)
	if !ok {
		return true
	}
	if first.Kind != syntax.KindComment {
		return false
	}

	head := prologueEnd(nodes, idx)
	if head < len(nodes) {
		if next, isLine := nodes[head].(*syntax.Line); isLine {
			if _, isDef := DefinitionName(next); isDef {
				return false
			}
		}
	}
	return true
}
