// Package definition holds the unit of semantic merging: a named, contiguous
// slice of a source file.
package definition

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// ErrNotPartition is returned by Validate when definitions do not cover a
// text exactly.
var ErrNotPartition = errors.New("definitions do not partition the text")

// Definition is one top-level unit of a file. An empty Name marks an opaque
// segment that is carried through a merge verbatim.
type Definition struct {
	Name string `json:"name"`
	Text string `json:"text"`

	// Line is the 1-based line on which the definition starts.
	Line int `json:"line"`
}

// IsOpaque reports whether the definition has no name.
func (d Definition) IsOpaque() bool {
	return d.Name == ""
}

// Cut marks where a definition starts.
type Cut struct {
	Offset int
	Line   int
	Name   string
}

// Partition slices text at the given cuts. The first definition always starts
// at offset 0 and the last one always runs to the end of text, so the result
// covers text exactly. Cuts must be in ascending offset order; a cut that
// would produce an empty definition is merged into the following one, except
// that its name is kept when the following cut is unnamed.
func Partition(text string, cuts []Cut) []Definition {
	if text == "" {
		return nil
	}
	if len(cuts) == 0 {
		return []Definition{{Text: text, Line: 1}}
	}

	cuts = append([]Cut(nil), cuts...)
	cuts[0].Offset = 0
	cuts[0].Line = 1

	defs := make([]Definition, 0, len(cuts))
	for idx, cut := range cuts {
		end := len(text)
		if idx+1 < len(cuts) {
			end = cuts[idx+1].Offset
		}
		if end <= cut.Offset {
			if idx+1 < len(cuts) && cuts[idx+1].Name == "" {
				cuts[idx+1].Name = cut.Name
			}
			continue
		}
		defs = append(defs, Definition{Name: cut.Name, Text: text[cut.Offset:end], Line: cut.Line})
	}
	return defs
}

// Join concatenates the texts of defs.
func Join(defs []Definition) string {
	var builder strings.Builder
	for _, def := range defs {
		builder.WriteString(def.Text)
	}
	return builder.String()
}

// Names returns the names of defs in order.
func Names(defs []Definition) []string {
	return lo.Map(defs, func(def Definition, _ int) string {
		return def.Name
	})
}

// Validate checks that defs cover text exactly, in order.
func Validate(defs []Definition, text string) error {
	offset := 0
	for idx, def := range defs {
		if def.Text == "" {
			return fmt.Errorf("definition %d (%q) is empty: %w", idx, def.Name, ErrNotPartition)
		}
		if !strings.HasPrefix(text[offset:], def.Text) {
			return fmt.Errorf("definition %d (%q) does not match the text at offset %d: %w",
				idx, def.Name, offset, ErrNotPartition)
		}
		offset += len(def.Text)
	}
	if offset != len(text) {
		return fmt.Errorf("%d trailing bytes not covered: %w", len(text)-offset, ErrNotPartition)
	}
	return nil
}

// Duplicates returns the names that occur more than once in defs, sorted.
// Duplicate names can make alignment pair unrelated definitions.
func Duplicates(defs []Definition) []string {
	named := lo.Filter(Names(defs), func(name string, _ int) bool {
		return name != ""
	})
	dups := lo.FindDuplicates(named)
	sort.Strings(dups)
	return dups
}
