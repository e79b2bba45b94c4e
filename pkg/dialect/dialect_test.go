package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semmerge/pkg/dialect"
)

func TestDefault_Names(t *testing.T) {
	t.Parallel()

	reg := dialect.Default()
	assert.Equal(t, []string{"cmake", "python"}, reg.Names())

	d, err := reg.Lookup("Python")
	require.NoError(t, err)
	assert.Equal(t, dialect.Python, d.Name)

	_, err = reg.Lookup("cobol")
	require.ErrorIs(t, err, dialect.ErrUnknownDialect)
	assert.Contains(t, err.Error(), "cmake, python")
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	_, err := dialect.NewRegistry(&dialect.Dialect{Name: "x"}, &dialect.Dialect{Name: "X"})
	require.ErrorIs(t, err, dialect.ErrDuplicate)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	reg := dialect.Default()

	tests := []struct {
		name     string
		filename string
		content  string
		opts     dialect.ResolveOptions
		expected string
	}{
		{
			name:     "cmake lists file",
			filename: "src/CMakeLists.txt",
			expected: dialect.CMake,
		},
		{
			name:     "cmake module",
			filename: "cmake/FindFoo.cmake",
			expected: dialect.CMake,
		},
		{
			name:     "python source",
			filename: "pkg/mod.py",
			content:  "def f():\n    pass\n",
			expected: dialect.Python,
		},
		{
			name:     "python shebang without extension",
			filename: "bin/tool",
			content:  "#!/usr/bin/env python3\nprint('x')\n",
			expected: dialect.Python,
		},
		{
			name:     "forced dialect",
			filename: "pkg/mod.py",
			opts:     dialect.ResolveOptions{Forced: "cmake"},
			expected: dialect.CMake,
		},
		{
			name:     "override by base name",
			filename: "build/rules.txt",
			opts: dialect.ResolveOptions{Overrides: []dialect.Override{
				{Pattern: "*.md", Dialect: "python"},
				{Pattern: "rules.txt", Dialect: "cmake"},
			}},
			expected: dialect.CMake,
		},
		{
			name:     "override by path",
			filename: "tools/gen/script",
			opts: dialect.ResolveOptions{Overrides: []dialect.Override{
				{Pattern: "tools/**", Dialect: "python"},
			}},
			expected: dialect.Python,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			d, err := reg.Resolve(testCase.filename, []byte(testCase.content), testCase.opts)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, d.Name)
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	t.Parallel()

	reg := dialect.Default()

	_, err := reg.Resolve("README.md", []byte("# Title\n"), dialect.ResolveOptions{})
	require.ErrorIs(t, err, dialect.ErrUnknownDialect)

	_, err = reg.Resolve("a.py", nil, dialect.ResolveOptions{Forced: "cobol"})
	require.ErrorIs(t, err, dialect.ErrUnknownDialect)
}

func TestResolve_BadPattern(t *testing.T) {
	t.Parallel()

	_, err := dialect.Default().Resolve("a.py", nil, dialect.ResolveOptions{
		Overrides: []dialect.Override{{Pattern: "[", Dialect: "python"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestDialect_Extract(t *testing.T) {
	t.Parallel()

	d, err := dialect.Default().Lookup(dialect.CMake)
	require.NoError(t, err)

	defs, err := d.Extract("CMakeLists.txt", "add(f1)\n")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "f1", defs[0].Name)
}
