package merge_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semmerge/pkg/config"
	"github.com/yaklabco/semmerge/pkg/dialect"
	"github.com/yaklabco/semmerge/pkg/fallback"
	"github.com/yaklabco/semmerge/pkg/fsutil"
	"github.com/yaklabco/semmerge/pkg/merge"
)

type revisions struct {
	ancestor, current, other string
}

// setup writes the three revisions and returns a request for them.
func setup(t *testing.T, name string, revs revisions) merge.Request {
	t.Helper()

	dir := t.TempDir()
	write := func(file, content string) string {
		path := filepath.Join(dir, file)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	return merge.Request{
		AncestorPath: write("base", revs.ancestor),
		CurrentPath:  write("ours", revs.current),
		OtherPath:    write("theirs", revs.other),
		Name:         name,
	}
}

func read(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

// recorder is a fallback tool that remembers its request and the content
// of the files it was given.
type recorder struct {
	calls    int
	req      fallback.Request
	ancestor string
	other    string
	clean    bool
	err      error
}

func (r *recorder) tool(t *testing.T) fallback.Tool {
	t.Helper()
	return fallback.Func(func(_ context.Context, req fallback.Request) (bool, error) {
		r.calls++
		r.req = req
		r.ancestor = read(t, req.AncestorPath)
		r.other = read(t, req.OtherPath)
		return r.clean, r.err
	})
}

func newDriver(t *testing.T, cfg *config.Config, rec *recorder) *merge.Driver {
	t.Helper()
	d := merge.NewDriver(cfg)
	d.Fallback = rec.tool(t)
	return d
}

func TestDriver_SemanticClean(t *testing.T) {
	t.Parallel()

	req := setup(t, "CMakeLists.txt", revisions{
		ancestor: "add(f1)\nadd(f4)\n",
		current:  "add(f1)\nadd(f2)\nadd(f4)\n",
		other:    "add(f1)\nadd(f3)\nadd(f4)\n",
	})
	rec := &recorder{}

	outcome, err := newDriver(t, nil, rec).Run(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, outcome.Clean)
	assert.Equal(t, merge.ModeSemantic, outcome.Mode)
	assert.Equal(t, dialect.CMake, outcome.Dialect)
	assert.Zero(t, rec.calls)
	assert.Equal(t, "add(f1)\nadd(f2)\nadd(f3)\nadd(f4)\n", read(t, req.CurrentPath))
}

func TestDriver_FallbackWithRewrittenRevisions(t *testing.T) {
	t.Parallel()

	req := setup(t, "pkg/mod.py", revisions{
		ancestor: "def f1():\n\tpass\n\n",
		current:  "def f1():\n\tpass\n\ndef f2():\n\treturn 1\n\ndef f9():\n\tpass\n\n",
		other:    "def f0():\n\tpass\n\ndef f1():\n\tpass\n\ndef f2():\n\treturn 2\n\n",
	})
	req.CurrentLabel = "ours"
	req.MarkerSize = 11
	rec := &recorder{clean: false}

	outcome, err := newDriver(t, nil, rec).Run(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, outcome.Clean)
	assert.Equal(t, merge.ModeFallback, outcome.Mode)
	assert.Equal(t, dialect.Python, outcome.Dialect)
	assert.Equal(t, []string{"f2"}, outcome.Result.Conflicts)

	require.Equal(t, 1, rec.calls)
	assert.Equal(t, req.CurrentPath, rec.req.CurrentPath)
	assert.NotEqual(t, req.AncestorPath, rec.req.AncestorPath)
	assert.Equal(t, "ours", rec.req.CurrentLabel)
	assert.Equal(t, req.AncestorPath, rec.req.AncestorLabel)
	assert.Equal(t, req.OtherPath, rec.req.OtherLabel)
	assert.Equal(t, 11, rec.req.MarkerSize)
	assert.Equal(t, ".py", filepath.Ext(rec.req.AncestorPath))

	// f0 is folded everywhere; the two f2 bodies stay on their own side.
	assert.Equal(t, "def f0():\n\tpass\n\ndef f1():\n\tpass\n\n", rec.ancestor)
	assert.Equal(t, "def f0():\n\tpass\n\ndef f1():\n\tpass\n\ndef f2():\n\treturn 1\n\ndef f9():\n\tpass\n\n",
		read(t, req.CurrentPath))
	assert.Equal(t, "def f0():\n\tpass\n\ndef f1():\n\tpass\n\ndef f2():\n\treturn 2\n\n", rec.other)

	_, statErr := os.Stat(filepath.Dir(rec.req.AncestorPath))
	assert.True(t, os.IsNotExist(statErr), "temporary directory must be removed")
}

func TestDriver_Bypass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		revs    revisions
		cfg     func(*config.Config)
		reason  string
		dialect string
	}{
		{
			name:   "over size threshold",
			file:   "CMakeLists.txt",
			revs:   revisions{"add(f1)\n", "add(f1)\nadd(f2)\n", "add(f1)\n"},
			cfg:    func(c *config.Config) { c.SizeThreshold = 10 },
			reason: "current is 16 B, over the 10 B limit",
		},
		{
			name:   "invalid utf-8",
			file:   "CMakeLists.txt",
			revs:   revisions{"add(f1)\n", "add(f1)\n", "add(\xff)\n"},
			reason: "other is not valid UTF-8",
		},
		{
			name:   "unknown dialect",
			file:   "README.md",
			revs:   revisions{"# a\n", "# b\n", "# c\n"},
			reason: "unknown dialect",
		},
		{
			name:    "parse error",
			file:    "CMakeLists.txt",
			revs:    revisions{"add(f1)\n", "add(f1\n", "add(f1)\n"},
			reason:  "unclosed parenthesis",
			dialect: dialect.CMake,
		},
		{
			name:    "forced dialect that cannot parse",
			file:    "CMakeLists.txt",
			revs:    revisions{"add(f1)\n", "add(f1)\n", "  add(f2)\n"},
			cfg:     func(c *config.Config) { c.Dialect = dialect.Python },
			reason:  "unexpected indent",
			dialect: dialect.Python,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			if tt.cfg != nil {
				tt.cfg(cfg)
			}
			req := setup(t, tt.file, tt.revs)
			rec := &recorder{clean: true}

			outcome, err := newDriver(t, cfg, rec).Run(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, merge.ModeBypass, outcome.Mode)
			assert.Contains(t, outcome.Reason, tt.reason)
			assert.Equal(t, tt.dialect, outcome.Dialect)
			assert.Nil(t, outcome.Result)
			assert.True(t, outcome.Clean)

			require.Equal(t, 1, rec.calls)
			assert.Equal(t, req.AncestorPath, rec.req.AncestorPath)
			assert.Equal(t, req.OtherPath, rec.req.OtherPath)
			assert.Equal(t, config.DefaultConflictMarkerSize, rec.req.MarkerSize)
			assert.Equal(t, tt.revs.current, read(t, req.CurrentPath))
		})
	}
}

func TestDriver_Backup(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Backups.Enabled = true

	req := setup(t, "CMakeLists.txt", revisions{
		ancestor: "add(f1)\n",
		current:  "add(f1)\nadd(f2)\n",
		other:    "add(f0)\nadd(f1)\n",
	})

	outcome, err := newDriver(t, cfg, &recorder{}).Run(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, outcome.Backup)
	assert.Equal(t, "add(f1)\nadd(f2)\n", read(t, fsutil.BackupPath(req.CurrentPath, fsutil.BackupModeSidecar)))
	assert.Equal(t, "add(f0)\nadd(f1)\nadd(f2)\n", read(t, req.CurrentPath))
}

func TestDriver_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		req := setup(t, "CMakeLists.txt", revisions{"a()\n", "a()\n", "a()\n"})
		req.OtherPath = filepath.Join(t.TempDir(), "gone")

		_, err := newDriver(t, nil, &recorder{}).Run(context.Background(), req)
		require.ErrorIs(t, err, fsutil.ErrNotFound)
		assert.Contains(t, err.Error(), "other")
	})

	t.Run("fallback cannot run", func(t *testing.T) {
		t.Parallel()

		req := setup(t, "CMakeLists.txt", revisions{"a(x)\n", "a(x)\nb(y 1)\n", "a(x)\nb(y 2)\n"})
		boom := errors.New("exec: not found")

		_, err := newDriver(t, nil, &recorder{err: boom}).Run(context.Background(), req)
		require.ErrorIs(t, err, boom)
	})
}
