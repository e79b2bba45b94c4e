package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/semmerge/internal/ui/pretty"
	"github.com/yaklabco/semmerge/pkg/config"
	"github.com/yaklabco/semmerge/pkg/definition"
	"github.com/yaklabco/semmerge/pkg/dialect"
	"github.com/yaklabco/semmerge/pkg/reporter"
	"github.com/yaklabco/semmerge/pkg/runner"
)

type extractFlags struct {
	dialect string
	format  string
}

func newExtractCommand(globals *globalFlags) *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Show the definitions of a file",
		Long: `Cut a file into top-level definitions the way the merge driver does and
print them. The definitions are checked to reassemble into the original text.

Examples:
  semmerge extract CMakeLists.txt
  semmerge extract tool.py --format json
  semmerge extract build.txt --dialect cmake`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.dialect, "dialect", "", "force a dialect: cmake, python")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// extractOutput is the JSON shape of extract.
type extractOutput struct {
	Path        string                  `json:"path"`
	Dialect     string                  `json:"dialect"`
	Definitions []definition.Definition `json:"definitions"`
}

func runExtract(cmd *cobra.Command, path string, globals *globalFlags, flags *extractFlags) error {
	format, ok := config.ParseOutputFormat(flags.format)
	if !ok {
		return fmt.Errorf("%w: format %q: must be text or json", ErrInvalidUsage, flags.format)
	}

	loaded, err := loadConfig(cmd, globals, &config.Config{Dialect: flags.dialect, Format: format})
	if err != nil {
		return err
	}
	cfg := loaded.Config

	check := runner.New(dialect.Default())
	outcome := check.CheckFile(commandContext(cmd), path, runner.Options{
		Dialect:   cfg.Dialect,
		Overrides: overrides(cfg),
	})

	out := cmd.OutOrStdout()

	if outcome.Error != nil {
		reportFailure(cmd, pretty.NewStyles(pretty.IsColorEnabled(globals.color, cmd.ErrOrStderr())), outcome)
		return ErrCheckFailed
	}

	if cfg.Format == config.FormatJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(extractOutput{
			Path:        outcome.Path,
			Dialect:     outcome.Dialect,
			Definitions: outcome.Definitions,
		})
	}

	rep, err := reporter.New(reporter.Options{
		Writer: out,
		Format: reporter.FormatTable,
		Color:  globals.color,
	})
	if err != nil {
		return err
	}
	_, err = rep.Report(commandContext(cmd), &runner.Result{Files: []runner.FileOutcome{outcome}})
	return err
}

// reportFailure writes the diagnostic for a failed file to stderr.
func reportFailure(cmd *cobra.Command, styles *pretty.Styles, outcome runner.FileOutcome) {
	if perr, ok := outcome.ParseError(); ok {
		cmd.PrintErr(styles.FormatParseError(perr))
		return
	}
	cmd.PrintErr(styles.FormatFileError(outcome.Path, outcome.Error))
}
