// Package cli provides the Cobra command structure for semmerge.
package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/semmerge/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root semmerge command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "semmerge",
		Short: "A structure-aware three-way merge driver for CMake and Python",
		Long: `semmerge is a git merge driver that understands the top-level structure of
CMake and Python files.

Each revision is cut into named definitions (CMake commands, Python functions
and classes). Definitions added on one side only are copied into the other
revisions before the result is handed to git merge-file, so independent
additions at the same place no longer conflict. Files semmerge cannot parse
are merged line by line as usual.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if globals.debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{versionAnnotation: info.Version},
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newMergeCommand(globals))
	rootCmd.AddCommand(newExtractCommand(globals))
	rootCmd.AddCommand(newCheckCommand(globals))
	rootCmd.AddCommand(newConfigCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(globals.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// versionAnnotation carries the build version on the root command.
const versionAnnotation = "semmerge/version"

func buildVersion(cmd *cobra.Command) string {
	return cmd.Root().Annotations[versionAnnotation]
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func commandLogger(cmd *cobra.Command) *log.Logger {
	return logging.FromContext(commandContext(cmd))
}
