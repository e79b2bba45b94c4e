// Package main is the entry point for the semmerge CLI.
package main

import (
	"os"

	"github.com/yaklabco/semmerge/internal/cli"
	"github.com/yaklabco/semmerge/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Conflicts and failed checks are reported by the command itself.
		if !cli.IsSilent(err) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
