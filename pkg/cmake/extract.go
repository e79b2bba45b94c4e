package cmake

import (
	"strings"

	"github.com/yaklabco/semmerge/pkg/definition"
	"github.com/yaklabco/semmerge/pkg/source"
	"github.com/yaklabco/semmerge/pkg/syntax"
)

// ArgGroup is a keyword argument group of a command invocation. The group
// before the first keyword has an empty Key.
type ArgGroup struct {
	Key    string
	Values []string
}

// Invocation is a command call such as add_library(NAME foo SOURCES a.c).
type Invocation struct {
	Command string

	// Groups are ordered by key first appearance, the unnamed group first.
	// Repeated keys yield consecutive groups.
	Groups []ArgGroup
}

// Name returns the first argument value across all groups, or "".
func (inv Invocation) Name() string {
	for _, group := range inv.Groups {
		if len(group.Values) > 0 {
			return group.Values[0]
		}
	}
	return ""
}

// ParseInvocation recognizes a line whose first significant element is an
// unquoted word immediately followed by a parenthesized argument list.
func ParseInvocation(line *syntax.Line) (Invocation, bool) {
	cursor := syntax.NewCursor(line.Elements)

	command, ok := cursor.SkipToken()
	if !ok || command.Kind != syntax.KindUnquoted {
		return Invocation{}, false
	}

	args, ok := cursor.SkipGroup("(")
	if !ok {
		return Invocation{}, false
	}

	return Invocation{Command: command.Text(), Groups: groupArguments(args.Elements)}, true
}

// IsKeyword reports whether an argument starts a keyword group: a bare
// argument written entirely in upper case.
func IsKeyword(text string) bool {
	return strings.TrimSpace(text) != "" &&
		text == strings.ToUpper(text) &&
		!strings.HasPrefix(text, `"`)
}

func groupArguments(elems []syntax.Element) []ArgGroup {
	unnamed := &ArgGroup{}
	keys := []string{""}
	byKey := map[string][]*ArgGroup{"": {unnamed}}
	current := unnamed

	for _, elem := range elems {
		switch elem := elem.(type) {
		case syntax.Token:
			if elem.IsTrivia() || elem.Kind == syntax.KindComment {
				continue
			}
			text := elem.Text()
			if IsKeyword(text) {
				current = &ArgGroup{Key: text}
				if _, seen := byKey[text]; !seen {
					keys = append(keys, text)
				}
				byKey[text] = append(byKey[text], current)
				continue
			}
			current.Values = append(current.Values, text)
		case *syntax.Parenthesized:
			current.Values = append(current.Values, elem.Text())
		}
	}

	groups := make([]ArgGroup, 0, len(keys))
	for _, key := range keys {
		for _, group := range byKey[key] {
			groups = append(groups, *group)
		}
	}
	return groups
}

// Extract splits a CMake script into one definition per logical line. An
// invocation line is named after its first argument value; every other line
// is opaque.
func Extract(filename, text string) ([]definition.Definition, error) {
	lines, err := Pipeline.ParseLines(source.NewBuffer(filename, text))
	if err != nil {
		return nil, err
	}

	cuts := make([]definition.Cut, 0, len(lines))
	for _, line := range lines {
		start := line.Start()
		cut := definition.Cut{Offset: start.Offset, Line: start.Line}
		if inv, ok := ParseInvocation(line); ok {
			cut.Name = inv.Name()
		}
		cuts = append(cuts, cut)
	}

	return definition.Partition(text, cuts), nil
}
