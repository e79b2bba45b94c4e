// Package merge implements the structure-aware three-way merge: each revision
// is cut into named definitions, the definitions are aligned by name against
// the common ancestor, and insertions that do not collide are folded into all
// three revisions so the line-based merge that follows sees no conflict.
package merge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"

	"github.com/yaklabco/semmerge/pkg/definition"
)

// Extractor cuts a text into definitions.
type Extractor interface {
	Extract(filename, text string) ([]definition.Definition, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(filename, text string) ([]definition.Definition, error)

// Extract implements Extractor.
func (f ExtractorFunc) Extract(filename, text string) ([]definition.Definition, error) {
	return f(filename, text)
}

// Input holds the three revisions of one file.
type Input struct {
	// Filename is used in parse diagnostics.
	Filename string

	Ancestor string
	Current  string
	Other    string
}

// Result holds the rewritten revisions.
type Result struct {
	Ancestor string
	Current  string
	Other    string

	// Clean is true when Current and Other are identical, so no line-based
	// merge is needed.
	Clean bool

	// Conflicts lists names inserted on both sides at the same position.
	Conflicts []string

	// Definitions is the number of definitions found in each revision.
	Definitions [3]int

	// Folded counts insertions copied into all three revisions.
	Folded int
}

// Revision indexes Result.Definitions.
const (
	RevAncestor = iota
	RevCurrent
	RevOther
)

// side is one revision aligned against the ancestor.
type side struct {
	// inserts[i] holds definitions to place before ancestor slot i; the
	// slot at len(ancestor) collects end-of-file insertions.
	inserts [][]definition.Definition

	// deleted marks ancestor slots replaced or removed on this side.
	deleted []bool

	// matched[i] is the index of the definition equal to ancestor slot i,
	// or -1.
	matched []int
}

// Merge extracts definitions from the three revisions and aligns them.
// A parse error in any revision is returned unchanged (wrapped), so callers
// can recover the *source.Error with errors.As.
func Merge(ext Extractor, in Input) (*Result, error) {
	anc, err := ext.Extract(in.Filename, in.Ancestor)
	if err != nil {
		return nil, fmt.Errorf("ancestor: %w", err)
	}
	cur, err := ext.Extract(in.Filename, in.Current)
	if err != nil {
		return nil, fmt.Errorf("current: %w", err)
	}
	oth, err := ext.Extract(in.Filename, in.Other)
	if err != nil {
		return nil, fmt.Errorf("other: %w", err)
	}

	return MergeDefinitions(anc, cur, oth), nil
}

// MergeDefinitions aligns already extracted definition sequences.
func MergeDefinitions(anc, cur, oth []definition.Definition) *Result {
	ancKeys := alignKeys(anc, "a")
	curSide := align(ancKeys, cur, "c")
	othSide := align(ancKeys, oth, "o")

	var ancOut, curOut, othOut strings.Builder
	result := &Result{
		Definitions: [3]int{len(anc), len(cur), len(oth)},
	}

	for i := 0; i <= len(anc); i++ {
		curIns, othIns := curSide.inserts[i], othSide.inserts[i]
		curNames, othNames := definition.Names(curIns), definition.Names(othIns)

		if lo.Some(curNames, othNames) {
			result.Conflicts = append(result.Conflicts,
				lo.Filter(curNames, func(name string, _ int) bool {
					return name != "" && lo.Contains(othNames, name)
				})...)
			curOut.WriteString(definition.Join(curIns))
			othOut.WriteString(definition.Join(othIns))
		} else {
			both := definition.Join(curIns) + definition.Join(othIns)
			ancOut.WriteString(both)
			curOut.WriteString(both)
			othOut.WriteString(both)
			result.Folded += len(curIns) + len(othIns)
		}

		if i == len(anc) {
			break
		}

		deleted := curSide.deleted[i] || othSide.deleted[i]
		if anc[i].Name == "" || !deleted {
			ancOut.WriteString(anc[i].Text)
		}
		if j := curSide.matched[i]; j >= 0 {
			curOut.WriteString(cur[j].Text)
		}
		if j := othSide.matched[i]; j >= 0 {
			othOut.WriteString(oth[j].Text)
		}
	}

	result.Ancestor = ancOut.String()
	result.Current = curOut.String()
	result.Other = othOut.String()
	result.Clean = result.Current == result.Other
	return result
}

// alignKeys returns the sequence compared by the matcher. Empty names get a
// key unique to their revision and position so they never match.
func alignKeys(defs []definition.Definition, tag string) []string {
	return lo.Map(defs, func(d definition.Definition, i int) string {
		if d.Name == "" {
			return "\x00" + tag + strconv.Itoa(i)
		}
		return d.Name
	})
}

func align(ancKeys []string, defs []definition.Definition, tag string) side {
	n := len(ancKeys)
	s := side{
		inserts: make([][]definition.Definition, n+1),
		deleted: make([]bool, n),
		matched: make([]int, n),
	}
	for i := range s.matched {
		s.matched[i] = -1
	}

	matcher := difflib.NewMatcherWithJunk(ancKeys, alignKeys(defs, tag), false, nil)
	for _, op := range matcher.GetOpCodes() {
		if op.Tag == 'e' {
			for k := 0; k < op.I2-op.I1; k++ {
				s.matched[op.I1+k] = op.J1 + k
			}
			continue
		}
		for i := op.I1; i < op.I2; i++ {
			s.deleted[i] = true
		}
		s.inserts[op.I1] = append(s.inserts[op.I1], defs[op.J1:op.J2]...)
	}
	return s
}
