package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/semmerge/internal/ui/pretty"
	"github.com/yaklabco/semmerge/pkg/config"
	"github.com/yaklabco/semmerge/pkg/merge"
)

type mergeFlags struct {
	name          string
	dialect       string
	markerSize    int
	labelAncestor string
	labelCurrent  string
	labelOther    string
	noBackups     bool
	verbose       bool
}

func newMergeCommand(globals *globalFlags) *cobra.Command {
	flags := &mergeFlags{}

	cmd := &cobra.Command{
		Use:   "merge <ancestor> <current> <other>",
		Short: "Merge three revisions of a file (git merge driver)",
		Long: `Merge the ancestor, current and other revisions of a file and write the
result over <current>. Exits with status 1 when conflicts remain.

Register semmerge as a merge driver:

  git config merge.semmerge.name "structure-aware merge"
  git config merge.semmerge.driver "semmerge merge %O %A %B --name %P --conflict-marker-size %L"

and select it in .gitattributes:

  CMakeLists.txt merge=semmerge
  *.cmake        merge=semmerge
  *.py           merge=semmerge`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, args, globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "repository path of the merged file (selects the dialect)")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "", "force a dialect: cmake, python")
	cmd.Flags().IntVar(&flags.markerSize, "conflict-marker-size", 0, "width of conflict markers")
	cmd.Flags().StringVar(&flags.labelAncestor, "label-ancestor", "", "conflict label for the ancestor")
	cmd.Flags().StringVar(&flags.labelCurrent, "label-current", "", "conflict label for the current revision")
	cmd.Flags().StringVar(&flags.labelOther, "label-other", "", "conflict label for the other revision")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "do not back up the current revision")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "print a merge summary to stderr")

	return cmd
}

func runMerge(cmd *cobra.Command, args []string, globals *globalFlags, flags *mergeFlags) error {
	loaded, err := loadConfig(cmd, globals, &config.Config{
		ConflictMarkerSize: flags.markerSize,
		NoBackups:          flags.noBackups,
	})
	if err != nil {
		return err
	}

	driver := merge.NewDriver(loaded.Config)
	outcome, err := driver.Run(commandContext(cmd), merge.Request{
		AncestorPath:  args[0],
		CurrentPath:   args[1],
		OtherPath:     args[2],
		Name:          flags.name,
		AncestorLabel: flags.labelAncestor,
		CurrentLabel:  flags.labelCurrent,
		OtherLabel:    flags.labelOther,
		MarkerSize:    flags.markerSize,
		Dialect:       flags.dialect,
	})
	if err != nil {
		return err
	}

	if flags.verbose {
		styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, cmd.ErrOrStderr()))
		name := flags.name
		if name == "" {
			name = args[1]
		}
		cmd.PrintErr(styles.FormatMergeOutcome(name, outcome))
	}

	if !outcome.Clean {
		return ErrConflicts
	}
	return nil
}
