package cli

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gojslint/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles; without color every style is plain.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	plain := lipgloss.NewStyle()
	if !colorEnabled {
		return &HelpStyles{
			Command: plain, Heading: plain, Subcommand: plain, Flag: plain,
			Description: plain, Example: plain, Dim: plain,
		}
	}

	dim := plain.Foreground(lipgloss.Color("8"))
	return &HelpStyles{
		Command:     plain.Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     plain.Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  plain.Foreground(lipgloss.Color("10")),
		Flag:        plain.Foreground(lipgloss.Color("12")),
		Description: plain,
		Example:     dim,
		Dim:         dim,
	}
}

// exitCodeHelp documents the process exit codes on the root command.
var exitCodeHelp = [][2]string{ //nolint:gochecknoglobals // Read-only table.
	{"0", "no errors, and no more warnings than --max-warnings"},
	{"1", "error findings, or too many warnings"},
	{"2", "invalid flags or configuration"},
	{"3", "files could not be processed, or an internal error"},
}

// flagLinePattern splits a pflag usage line into the flag names, the
// optional value type and the description.
var flagLinePattern = regexp.MustCompile(`^(\s*)((?:-\w, )?--[\w-]+)(?: (\w+))?(\s{2,})(.*)$`) //nolint:gochecknoglobals // Compiled once.

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	colorMode *string
	styles    *HelpStyles
}

// NewHelpFormatter creates a help formatter. colorMode is read when help is
// rendered, after flags have been parsed.
func NewHelpFormatter(colorMode *string) *HelpFormatter {
	return &HelpFormatter{colorMode: colorMode}
}

const helpTemplate = `{{with (or .Long .Short)}}{{ trimTrailing . }}

{{end}}{{ styleHeading "Usage:" }}
{{- if .Runnable}}
  {{ styleCommand .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ styleCommand .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ styleHeading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ flagUsages .LocalFlags }}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ flagUsages .InheritedFlags }}{{end}}
{{- if not .HasParent}}

{{ styleHeading "Exit Codes:" }}{{range exitCodes}}
  {{ index . 0 }}  {{ styleDim (index . 1) }}{{end}}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":    h.styles.Command.Render,
		"styleHeading":    h.styles.Heading.Render,
		"styleSubcommand": h.styles.Subcommand.Render,
		"styleExample":    h.styles.Example.Render,
		"styleDim":        h.styles.Dim.Render,
		"flagUsages":      h.flagUsages,
		"exitCodes":       func() [][2]string { return exitCodeHelp },
		"rpad":            rpad,
		"trimTrailing":    trimTrailingWhitespaces,
	}
}

// flagUsages renders pflag's aligned usage block with styled flag names.
func (h *HelpFormatter) flagUsages(flags *pflag.FlagSet) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	m := flagLinePattern.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	indent, names, valueType, gap, desc := m[1], m[2], m[3], m[4], m[5]

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(h.styles.Flag.Render(names))
	if valueType != "" {
		b.WriteString(" ")
		b.WriteString(h.styles.Dim.Render(valueType))
	}
	b.WriteString(gap)
	b.WriteString(h.styles.Description.Render(desc))
	return b.String()
}

// ApplyToCommand installs the styled help on cmd. Subcommands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	render := func(command *cobra.Command) error {
		out := command.OutOrStdout()
		mode := pretty.ColorAuto
		if h.colorMode != nil {
			mode = *h.colorMode
		}
		h.styles = NewHelpStyles(pretty.IsColorEnabled(mode, out))

		tmpl := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))
		if err := tmpl.Execute(out, command); err != nil {
			return fmt.Errorf("render help: %w", err)
		}
		return nil
	}

	cmd.SetUsageFunc(render)
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render(command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
