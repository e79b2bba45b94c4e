package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/semmerge/pkg/merge"
	"github.com/yaklabco/semmerge/pkg/runner"
)

const (
	summaryDividerWidth = 40
	maxPathWidth        = 60
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats check statistics as a single line.
// Example: "2 files failed, 10 checked (14 definitions, 3 opaque)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	detail := s.Dim.Render(fmt.Sprintf(" (%d definitions, %d opaque)", stats.Definitions, stats.Opaque))

	if stats.FilesFailed == 0 {
		return s.Success.Render(fmt.Sprintf("All %d %s parsed", stats.FilesChecked,
			plural(stats.FilesChecked, wordFile, wordFiles))) + detail + "\n"
	}

	failed := s.Failure.Render(fmt.Sprintf("%d %s failed", stats.FilesFailed,
		plural(stats.FilesFailed, wordFile, wordFiles)))
	return fmt.Sprintf("%s, %d checked", failed, stats.FilesChecked) + detail + "\n"
}

// FormatSummary formats check statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesChecked)) + "\n")
	if stats.FilesFailed > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}

	dialects := make([]string, 0, len(stats.ByDialect))
	for name := range stats.ByDialect {
		dialects = append(dialects, name)
	}
	sort.Strings(dialects)
	for _, name := range dialects {
		builder.WriteString(fmt.Sprintf("    %-16s%s\n", name+":",
			s.SummaryValue.Render(strconv.Itoa(stats.ByDialect[name]))))
	}

	builder.WriteString("\n")
	builder.WriteString("  Definitions:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.Definitions)) + "\n")
	builder.WriteString("  Opaque segments:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.Opaque)) + "\n")
	builder.WriteString("\n")

	if stats.FilesFailed > 0 {
		builder.WriteString(s.Failure.Render("Check failed"))
	} else {
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatMergeOutcome formats the result of one merge-driver run.
func (s *Styles) FormatMergeOutcome(path string, outcome *merge.Outcome) string {
	var builder strings.Builder

	status := s.Success.Render("merged")
	if !outcome.Clean {
		status = s.Failure.Render("conflicts")
	}

	builder.WriteString(fmt.Sprintf("%s  %s  %s",
		s.FilePath.Render(truncateFilePath(path, maxPathWidth)),
		status,
		s.Dim.Render("("+string(outcome.Mode)+")"),
	))

	if outcome.Dialect != "" {
		builder.WriteString(s.Dim.Render(" " + outcome.Dialect))
	}
	builder.WriteString("\n")

	if outcome.Reason != "" {
		builder.WriteString("  " + s.Warning.Render("bypass:") + " " + outcome.Reason + "\n")
	}

	if res := outcome.Result; res != nil {
		builder.WriteString(fmt.Sprintf("  definitions: %d ancestor, %d current, %d other\n",
			res.Definitions[merge.RevAncestor],
			res.Definitions[merge.RevCurrent],
			res.Definitions[merge.RevOther],
		))
		if res.Folded > 0 {
			builder.WriteString(fmt.Sprintf("  folded: %d\n", res.Folded))
		}
		if len(res.Conflicts) > 0 {
			builder.WriteString("  " + s.Warning.Render("conflicting:") + " " +
				strings.Join(res.Conflicts, ", ") + "\n")
		}
	}

	if outcome.Backup {
		builder.WriteString(s.Dim.Render("  backup written") + "\n")
	}

	return builder.String()
}
