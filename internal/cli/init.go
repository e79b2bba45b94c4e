package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/semmerge/internal/configloader"
	"github.com/yaklabco/semmerge/internal/logging"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new semmerge configuration file",
		Long: `Create a commented .semmerge.yml in the current directory with the default
settings. An existing file is only replaced with --force, or after
confirmation when running in a terminal.

Examples:
  semmerge init                      Create .semmerge.yml
  semmerge init --force              Overwrite an existing file
  semmerge init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .semmerge.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := commandLogger(cmd)

	path, err := configloader.WriteDefaultConfig(configloader.InitOptions{
		Path:  flags.output,
		Force: flags.force,
		In:    cmd.InOrStdin(),
		Out:   cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, path)
	logger.Info("register the merge driver with: git config merge.semmerge.driver " +
		`"semmerge merge %O %A %B --name %P --conflict-marker-size %L"`)

	return nil
}
