package merge_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semmerge/pkg/definition"
	"github.com/yaklabco/semmerge/pkg/dialect"
	"github.com/yaklabco/semmerge/pkg/merge"
	"github.com/yaklabco/semmerge/pkg/source"
)

func lookup(t *testing.T, name string) *dialect.Dialect {
	t.Helper()
	d, err := dialect.Default().Lookup(name)
	require.NoError(t, err)
	return d
}

const (
	pyF1 = "def f1():\n\tpass\n\n"
	pyF2 = "def f2():\n\tpass\n\n"
	pyF3 = "def f3():\n\tpass\n\n"
	pyF4 = "def f4():\n\tpass\n\n"
)

func TestMerge_DisjointInserts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dialect  string
		ancestor string
		current  string
		other    string
		want     string
	}{
		{
			name:     "cmake middle",
			dialect:  dialect.CMake,
			ancestor: "add(f1)\nadd(f4)\n",
			current:  "add(f1)\nadd(f2)\nadd(f4)\n",
			other:    "add(f1)\nadd(f3)\nadd(f4)\n",
			want:     "add(f1)\nadd(f2)\nadd(f3)\nadd(f4)\n",
		},
		{
			name:     "cmake start and end",
			dialect:  dialect.CMake,
			ancestor: "add(f1)\n",
			current:  "add(f0)\nadd(f1)\n",
			other:    "add(f1)\nadd(f2)\n",
			want:     "add(f0)\nadd(f1)\nadd(f2)\n",
		},
		{
			name:     "cmake one side only",
			dialect:  dialect.CMake,
			ancestor: "add(f1)\n",
			current:  "add(f1)\n",
			other:    "add(f1)\nadd(f2)\n",
			want:     "add(f1)\nadd(f2)\n",
		},
		{
			name:     "python middle",
			dialect:  dialect.Python,
			ancestor: pyF1 + pyF4,
			current:  pyF1 + pyF2 + pyF4,
			other:    pyF1 + pyF3 + pyF4,
			want:     pyF1 + pyF2 + pyF3 + pyF4,
		},
		{
			name:     "python start and end",
			dialect:  dialect.Python,
			ancestor: pyF2,
			current:  pyF1 + pyF2,
			other:    pyF2 + pyF3,
			want:     pyF1 + pyF2 + pyF3,
		},
		{
			name:     "python decorated with comment prologues",
			dialect:  dialect.Python,
			ancestor: "# BEGIN f1\n@print\ndef f1():\n\tpass\n\n",
			current:  "# BEGIN f1\n@print\ndef f1():\n\tpass\n\n# BEGIN f2\n@print\ndef f2():\n\tpass\n\n",
			other:    "# BEGIN f3\n@print\ndef f3():\n\tpass\n\n# BEGIN f1\n@print\ndef f1():\n\tpass\n\n",
			want: "# BEGIN f3\n@print\ndef f3():\n\tpass\n\n" +
				"# BEGIN f1\n@print\ndef f1():\n\tpass\n\n" +
				"# BEGIN f2\n@print\ndef f2():\n\tpass\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := merge.Merge(lookup(t, tt.dialect), merge.Input{
				Filename: "f",
				Ancestor: tt.ancestor,
				Current:  tt.current,
				Other:    tt.other,
			})
			require.NoError(t, err)

			assert.True(t, res.Clean)
			assert.Empty(t, res.Conflicts)
			assert.Equal(t, tt.want, res.Ancestor)
			assert.Equal(t, tt.want, res.Current)
			assert.Equal(t, tt.want, res.Other)
		})
	}
}

func TestMerge_NoOp(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		dialect.CMake: "# header\n\nproject(demo)\nadd_library(core\n  a.c b.c)\n\n# trailing\n",
		dialect.Python: "\"\"\"Module doc.\"\"\"\nimport os\n\n" +
			"# helper\n@cache\ndef f1(a,\n       b):\n    return a\n\n" +
			"class C:\n    x = 1\n\nX = 2\n",
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res, err := merge.Merge(lookup(t, name), merge.Input{
				Filename: "f", Ancestor: text, Current: text, Other: text,
			})
			require.NoError(t, err)
			assert.True(t, res.Clean)
			assert.Equal(t, text, res.Ancestor)
			assert.Equal(t, text, res.Current)
			assert.Equal(t, text, res.Other)
		})
	}
}

func TestMerge_SameNameConflict(t *testing.T) {
	t.Parallel()

	res, err := merge.Merge(lookup(t, dialect.CMake), merge.Input{
		Filename: "CMakeLists.txt",
		Ancestor: "add(f1)\n",
		Current:  "add(f1)\nadd(f2 mine)\n",
		Other:    "add(f1)\nadd(f2 theirs)\n",
	})
	require.NoError(t, err)

	assert.False(t, res.Clean)
	assert.Equal(t, []string{"f2"}, res.Conflicts)
	assert.Equal(t, "add(f1)\n", res.Ancestor)
	assert.Equal(t, "add(f1)\nadd(f2 mine)\n", res.Current)
	assert.Equal(t, "add(f1)\nadd(f2 theirs)\n", res.Other)
	assert.Zero(t, res.Folded)
}

func TestMerge_Deletion(t *testing.T) {
	t.Parallel()

	res, err := merge.Merge(lookup(t, dialect.CMake), merge.Input{
		Ancestor: "add(f1)\nadd(f2)\nadd(f3)\n",
		Current:  "add(f1)\nadd(f3)\n",
		Other:    "add(f1)\nadd(f2)\nadd(f3)\n",
	})
	require.NoError(t, err)

	// The named ancestor entry is dropped; the line-based merge then sees f2
	// only in other.
	assert.False(t, res.Clean)
	assert.Equal(t, "add(f1)\nadd(f3)\n", res.Ancestor)
	assert.Equal(t, "add(f1)\nadd(f3)\n", res.Current)
	assert.Equal(t, "add(f1)\nadd(f2)\nadd(f3)\n", res.Other)
}

func TestMerge_ModifiedDefinition(t *testing.T) {
	t.Parallel()

	// A changed body keeps its name, so the definition stays matched and the
	// edit is carried on its own side only.
	res, err := merge.Merge(lookup(t, dialect.Python), merge.Input{
		Ancestor: pyF1 + pyF2,
		Current:  "def f1():\n\treturn 1\n\n" + pyF2,
		Other:    pyF1 + pyF2 + pyF3,
	})
	require.NoError(t, err)

	assert.False(t, res.Clean)
	assert.Equal(t, pyF1+pyF2+pyF3, res.Ancestor)
	assert.Equal(t, "def f1():\n\treturn 1\n\n"+pyF2+pyF3, res.Current)
	assert.Equal(t, pyF1+pyF2+pyF3, res.Other)
	assert.Equal(t, 1, res.Folded)
	assert.Equal(t, [3]int{2, 2, 3}, res.Definitions)
}

func TestMerge_ParseError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dialect string
		input   merge.Input
		kind    source.ErrorKind
		message string
	}{
		{
			name:    "unclosed bracket in current",
			dialect: dialect.CMake,
			input:   merge.Input{Ancestor: "add(f1)\n", Current: "add(f1\n", Other: "add(f1)\n"},
			kind:    source.KindBracket,
			message: "unclosed parenthesis: expected ')'",
		},
		{
			name:    "mismatched bracket in other",
			dialect: dialect.Python,
			input:   merge.Input{Ancestor: "x = 1\n", Current: "x = 1\n", Other: "x = ([)]\n"},
			kind:    source.KindBracket,
			message: "incorrectly matched parentheses: expected ']'",
		},
		{
			name:    "missing indent in ancestor",
			dialect: dialect.Python,
			input:   merge.Input{Ancestor: "def f():\nx = 1\n", Current: "x = 1\n", Other: "x = 1\n"},
			kind:    source.KindIndent,
			message: "expected indent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := merge.Merge(lookup(t, tt.dialect), tt.input)
			require.Error(t, err)

			var perr *source.Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, tt.message, perr.Message)
		})
	}
}

func TestMergeDefinitions_OpaqueSegmentsNeverMatch(t *testing.T) {
	t.Parallel()

	anc := []definition.Definition{{Name: "", Text: "a\n"}, {Name: "f", Text: "f\n"}}
	cur := []definition.Definition{{Name: "", Text: "a\n"}, {Name: "f", Text: "f\n"}}
	oth := []definition.Definition{{Name: "", Text: "b\n"}, {Name: "f", Text: "f\n"}}

	res := merge.MergeDefinitions(anc, cur, oth)

	// Both sides re-insert an opaque segment at slot 0; empty names collide,
	// so nothing is folded into the ancestor beyond its own text.
	assert.False(t, res.Clean)
	assert.Empty(t, res.Conflicts)
	assert.Equal(t, "a\nf\n", res.Ancestor)
	assert.Equal(t, "a\nf\n", res.Current)
	assert.Equal(t, "b\nf\n", res.Other)
}

func TestExtractorFunc(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	ext := merge.ExtractorFunc(func(_, _ string) ([]definition.Definition, error) {
		return nil, boom
	})

	_, err := merge.Merge(ext, merge.Input{})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "ancestor")
}
