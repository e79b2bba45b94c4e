package cli

import (
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/semmerge/internal/logging"
	"github.com/yaklabco/semmerge/pkg/dialect"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit, build date, Go toolchain and supported dialects of semmerge.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := log.NewWithOptions(cmd.OutOrStdout(), log.Options{Level: log.InfoLevel})
			out.Info("semmerge",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				logging.FieldGo, runtime.Version(),
				logging.FieldDialects, strings.Join(dialect.Default().Names(), ","),
			)
		},
	}
}
