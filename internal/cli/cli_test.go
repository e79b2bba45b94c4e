package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/semmerge/internal/cli"
	"github.com/yaklabco/semmerge/internal/configloader"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "semmerge", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"merge", "extract", "check", "config", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestMergeCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	mergeCmd, _, err := cmd.Find([]string{"merge"})
	require.NoError(t, err)

	for _, name := range []string{
		"name", "dialect", "conflict-marker-size",
		"label-ancestor", "label-current", "label-other",
		"no-backups", "verbose",
	} {
		assert.NotNil(t, mergeCmd.Flags().Lookup(name), "merge flag %q", name)
	}

	require.Error(t, mergeCmd.Args(mergeCmd, []string{"a", "b"}))
	require.NoError(t, mergeCmd.Args(mergeCmd, []string{"a", "b", "c"}))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "semmerge")
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
	assert.Contains(t, out.String(), "cmake,python")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "Commands:")
	assert.Contains(t, help, "merge")
	assert.Contains(t, help, "--config")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"conflicts", fmt.Errorf("wrapped: %w", cli.ErrConflicts), cli.ExitConflicts},
		{"check failed", cli.ErrCheckFailed, cli.ExitCheckFailed},
		{"usage", fmt.Errorf("%w: bad", cli.ErrInvalidUsage), cli.ExitInvalidUsage},
		{"config", fmt.Errorf("%w: bad", cli.ErrConfig), cli.ExitConfigError},
		{"validation", &configloader.ValidationError{Field: "git", Message: "empty"}, cli.ExitConfigError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestIsSilent(t *testing.T) {
	t.Parallel()

	assert.True(t, cli.IsSilent(cli.ErrConflicts))
	assert.True(t, cli.IsSilent(cli.ErrCheckFailed))
	assert.False(t, cli.IsSilent(cli.ErrConfig))
	assert.False(t, cli.IsSilent(errors.New("boom")))
}
