package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/semmerge/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:     plain,
			Heading:     plain,
			Subcommand:  plain,
			Flag:        plain,
			Description: plain,
			Dim:         plain,
		}
	}
	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle(),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{ command .CommandPath }}

{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":    h.styles.Command.Render,
		"heading":    h.styles.Heading.Render,
		"subcommand": h.styles.Subcommand.Render,
		"flags":      h.flagUsages,
		"rpad":       rpad,
		"trimRight":  trimTrailingWhitespaces,
	}
}

// flagUsages renders pflag usage lines with the flag names highlighted.
func (h *HelpFormatter) flagUsages(flags *pflag.FlagSet) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles "  -f, --flag type   description". pflag separates
// the flag column from the description with at least two spaces.
func (h *HelpFormatter) styleFlagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	split := strings.Index(body, "  ")
	if split < 0 {
		return line
	}
	flagPart, rest := body[:split], body[split:]
	description := strings.TrimLeft(rest, " ")
	gap := rest[:len(rest)-len(description)]

	tokens := strings.Fields(flagPart)
	for i, token := range tokens {
		name := strings.TrimSuffix(token, ",")
		styled := h.styles.Dim.Render(name)
		if strings.HasPrefix(name, "-") {
			styled = h.styles.Flag.Render(name)
		}
		if name != token {
			styled += ","
		}
		tokens[i] = styled
	}

	return indent + strings.Join(tokens, " ") + gap + h.styles.Description.Render(description)
}

// ApplyToCommand applies styled help templates to a Cobra command and all subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
