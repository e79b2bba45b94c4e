package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/semmerge/internal/configloader"
	"github.com/yaklabco/semmerge/internal/logging"
	"github.com/yaklabco/semmerge/pkg/config"
	"github.com/yaklabco/semmerge/pkg/dialect"
)

// loadConfig resolves the layered configuration for cmd with cliCfg on top,
// then applies the configured log level unless --debug was given.
func loadConfig(cmd *cobra.Command, globals *globalFlags, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := commandLogger(cmd)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.configPath,
		Registry:     dialect.Default(),
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if !globals.debug {
		if level, ok := logging.ParseLevel(result.Config.LogLevel); ok {
			logger.SetLevel(level)
		}
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}

	return result, nil
}

// overrides converts configured glob overrides to dialect overrides.
func overrides(cfg *config.Config) []dialect.Override {
	out := make([]dialect.Override, 0, len(cfg.Dialects))
	for _, o := range cfg.Dialects {
		out = append(out, dialect.Override{Pattern: o.Pattern, Dialect: o.Dialect})
	}
	return out
}

type configFlags struct {
	env bool
}

func newConfigCommand(globals *globalFlags) *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration semmerge would use in the current directory,
after merging system, user and project files, the --config file and
SEMMERGE_* environment variables.

Examples:
  semmerge config          Print the merged configuration as YAML
  semmerge config --env    List the supported environment variables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.env {
				return printEnvVars(cmd)
			}
			return printConfig(cmd, globals)
		},
	}

	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables")

	return cmd
}

func printConfig(cmd *cobra.Command, globals *globalFlags) error {
	result, err := loadConfig(cmd, globals, nil)
	if err != nil {
		return err
	}

	header := "# Effective semmerge configuration"
	for _, path := range result.LoadedFrom {
		header += "\n# loaded from " + path
	}

	out, err := result.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func printEnvVars(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	for _, env := range configloader.ListEnvVars() {
		if _, err := fmt.Fprintf(out, "%-32s %s\n", env.Name, env.Description); err != nil {
			return err
		}
	}
	return nil
}
