package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/semmerge/internal/logging"
	"github.com/yaklabco/semmerge/pkg/config"
	"github.com/yaklabco/semmerge/pkg/dialect"
	"github.com/yaklabco/semmerge/pkg/reporter"
	"github.com/yaklabco/semmerge/pkg/runner"
)

type checkFlags struct {
	dialect string
	format  string
	exclude []string
	summary bool
}

func newCheckCommand(globals *globalFlags) *cobra.Command {
	var cliCfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse files and report structural errors",
		Long: `Parse every CMake and Python file under the given paths and report the
files semmerge could not cut into definitions. Such files are merged line by
line. Files are checked concurrently.

By default, checks the current directory and subdirectories. Hidden files and
directories are skipped unless named explicitly.

Examples:
  semmerge check                      Check the current directory
  semmerge check src/ CMakeLists.txt  Check specific paths
  semmerge check --exclude 'build/**' Skip generated files
  semmerge check --format json        Output as JSON for CI
  semmerge check --format sarif       Output SARIF for code scanning`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, globals, &cliCfg, flags)
		},
	}

	cmd.Flags().IntVarP(&cliCfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "", "force a dialect for every file")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, summary")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a detailed summary block")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, globals *globalFlags, cliCfg *config.Config, flags *checkFlags) error {
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	cliCfg.Dialect = flags.dialect

	loaded, err := loadConfig(cmd, globals, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config
	logger := commandLogger(cmd)
	ctx := commandContext(cmd)

	check := runner.New(dialect.Default())
	result, err := check.Run(ctx, runner.Options{
		Paths:        args,
		ExcludeGlobs: flags.exclude,
		Jobs:         cfg.Jobs,
		Dialect:      cfg.Dialect,
		Overrides:    overrides(cfg),
	})
	if err != nil {
		return fmt.Errorf("check run failed: %w", err)
	}

	logger.Debug("check finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesChecked, result.Stats.FilesChecked,
		logging.FieldFilesFailed, result.Stats.FilesFailed)

	workDir, _ := os.Getwd()
	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       globals.color,
		ShowSummary: true,
		WorkingDir:  workDir,
		Version:     buildVersion(cmd),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	failed, err := rep.Report(ctx, result)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if flags.summary && format != reporter.FormatSummary {
		summary, _ := reporter.New(reporter.Options{
			Writer: cmd.OutOrStdout(),
			Format: reporter.FormatSummary,
			Color:  globals.color,
		})
		if _, err := summary.Report(ctx, result); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if failed > 0 {
		return ErrCheckFailed
	}
	return nil
}
