package fallback_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semmerge/pkg/fallback"
)

func TestGitMergeFile_Args(t *testing.T) {
	t.Parallel()

	req := fallback.Request{
		CurrentPath:   "cur.py",
		AncestorPath:  "anc.py",
		OtherPath:     "oth.py",
		AncestorLabel: "base",
	}

	assert.Equal(t, []string{
		"merge-file",
		"-L", "cur.py",
		"-L", "base",
		"-L", "oth.py",
		"--marker-size=7",
		"cur.py", "anc.py", "oth.py",
	}, fallback.GitMergeFile{}.Args(req))

	req.MarkerSize = 9
	assert.Contains(t, fallback.GitMergeFile{}.Args(req), "--marker-size=9")
}

func TestGitMergeFile_MissingBinary(t *testing.T) {
	t.Parallel()

	tool := fallback.GitMergeFile{Binary: filepath.Join(t.TempDir(), "no-such-git")}
	ok, err := tool.Merge(context.Background(), fallback.Request{
		CurrentPath: "a", AncestorPath: "b", OtherPath: "c",
	})
	require.Error(t, err)
	assert.False(t, ok)
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestGitMergeFile_Integration(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	t.Run("clean", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"anc": "a\nb\nc\nd\ne\n",
			"cur": "A\nb\nc\nd\ne\n",
			"oth": "a\nb\nc\nd\nE\n",
		})

		ok, err := fallback.GitMergeFile{}.Merge(context.Background(), fallback.Request{
			CurrentPath:  filepath.Join(dir, "cur"),
			AncestorPath: filepath.Join(dir, "anc"),
			OtherPath:    filepath.Join(dir, "oth"),
		})
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := os.ReadFile(filepath.Join(dir, "cur"))
		require.NoError(t, err)
		assert.Equal(t, "A\nb\nc\nd\nE\n", string(got))
	})

	t.Run("conflict", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"anc": "x\n",
			"cur": "mine\n",
			"oth": "theirs\n",
		})

		ok, err := fallback.GitMergeFile{}.Merge(context.Background(), fallback.Request{
			CurrentPath:  filepath.Join(dir, "cur"),
			AncestorPath: filepath.Join(dir, "anc"),
			OtherPath:    filepath.Join(dir, "oth"),
			CurrentLabel: "ours",
			OtherLabel:   "theirs",
			MarkerSize:   10,
		})
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := os.ReadFile(filepath.Join(dir, "cur"))
		require.NoError(t, err)
		assert.Contains(t, string(got), "<<<<<<<<<< ours\n")
		assert.Contains(t, string(got), ">>>>>>>>>> theirs\n")
	})
}

func TestFunc(t *testing.T) {
	t.Parallel()

	var got fallback.Request
	tool := fallback.Func(func(_ context.Context, req fallback.Request) (bool, error) {
		got = req
		return true, nil
	})

	ok, err := tool.Merge(context.Background(), fallback.Request{CurrentPath: "x"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", got.CurrentPath)
}
