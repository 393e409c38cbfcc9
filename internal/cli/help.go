package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
)

// Flags shared by several commands carry a group annotation and get their
// own help section after the command's own flags.
const (
	flagGroupAnnotation = "gomdtable_flag_group"
	flagGroupOwn        = "Flags"
	flagGroupParse      = "Parser Flags"
	flagGroupWalk       = "File Selection Flags"
)

//nolint:gochecknoglobals // Read-only display order.
var flagGroupOrder = []string{flagGroupOwn, flagGroupParse, flagGroupWalk}

type exitStatus struct {
	Code    int
	Meaning string
}

//nolint:gochecknoglobals // Read-only table for the root help.
var exitStatuses = []exitStatus{
	{ExitSuccess, "success"},
	{ExitFileErrors, "some files failed, or fmt --check found unformatted tables"},
	{ExitInvalidUsage, "invalid flags or arguments"},
	{ExitConfigError, "invalid configuration"},
	{ExitInternalError, "internal error"},
	{ExitIOError, "file I/O error"},
}

const usageTemplate = `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleDim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- range flagSections .LocalFlags}}

{{ styleHeading .Title }}
{{ .Usages }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagUsages .InheritedFlags.FlagUsages }}
{{- end}}

{{- if not .HasParent}}

{{ styleHeading "Configuration:" }}
  Settings are read from the user config, the nearest .gomdtable.yml,
  GOMDTABLE_* environment variables and flags, later sources winning.
  Run "{{ styleCommand "gomdtable init" }}" to write a starter file.

{{ styleHeading "Exit Status:" }}{{range exitStatuses}}
  {{ printf "%-3d" .Code }} {{ .Meaning }}{{end}}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

// setFlagGroup files the named flags of cmd under group in help output.
func setFlagGroup(cmd *cobra.Command, group string, names ...string) {
	for _, name := range names {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if flag.Annotations == nil {
			flag.Annotations = map[string][]string{}
		}
		flag.Annotations[flagGroupAnnotation] = []string{group}
	}
}

// applyHelp installs styled help and usage output on cmd. Subcommands
// inherit both functions.
func applyHelp(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return newHelpRenderer(command).execute(command, usageTemplate)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := newHelpRenderer(command).execute(command, helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

// helpRenderer renders help for one command. Color is decided when help is
// shown, after --color has been parsed.
type helpRenderer struct {
	styles *pretty.Styles
}

func newHelpRenderer(command *cobra.Command) *helpRenderer {
	colorEnabled := pretty.IsColorEnabled(colorMode(command), command.OutOrStdout())
	return &helpRenderer{styles: pretty.NewStyles(colorEnabled)}
}

func (h *helpRenderer) execute(command *cobra.Command, text string) error {
	tmpl, err := template.New("help").Funcs(h.funcs()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
		return fmt.Errorf("render help: %w", err)
	}
	return nil
}

func (h *helpRenderer) funcs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":            h.styles.HelpCommand.Render,
		"styleHeading":            h.styles.HelpHeading.Render,
		"styleSubcommand":         h.styles.HelpSubcommand.Render,
		"styleDim":                h.styles.Dim.Render,
		"styleFlagUsages":         h.styleFlagUsages,
		"flagSections":            h.flagSections,
		"exitStatuses":            func() []exitStatus { return exitStatuses },
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

type flagSection struct {
	Title  string
	Usages string
}

// flagSections splits flags by group annotation, in flagGroupOrder.
// Groups without visible flags are left out.
func (h *helpRenderer) flagSections(flags *pflag.FlagSet) []flagSection {
	groups := make(map[string]*pflag.FlagSet)

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		group := flagGroupOwn
		if names := flag.Annotations[flagGroupAnnotation]; len(names) > 0 {
			group = names[0]
		}
		set, ok := groups[group]
		if !ok {
			set = pflag.NewFlagSet(group, pflag.ContinueOnError)
			groups[group] = set
		}
		set.AddFlag(flag)
	})

	var sections []flagSection
	for _, group := range flagGroupOrder {
		set, ok := groups[group]
		if !ok {
			continue
		}
		sections = append(sections, flagSection{
			Title:  group + ":",
			Usages: h.styleFlagUsages(set.FlagUsages()),
		})
	}
	return sections
}

// styleFlagUsages colors flag names and dims value types in pflag usage
// lines. Escape codes take no columns, so pflag's alignment survives.
func (h *helpRenderer) styleFlagUsages(usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *helpRenderer) styleFlagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	if body == "" {
		return line
	}
	indent := line[:len(line)-len(body)]

	// pflag separates the flag names from the description by two or more spaces.
	end := strings.Index(body, "  ")
	if end < 0 {
		end = len(body)
	}
	head, rest := body[:end], body[end:]

	words := strings.Split(head, " ")
	for i, word := range words {
		name := strings.TrimSuffix(word, ",")
		if strings.HasPrefix(name, "-") {
			words[i] = h.styles.HelpFlag.Render(name) + word[len(name):]
		} else {
			words[i] = h.styles.Dim.Render(word)
		}
	}

	return indent + strings.Join(words, " ") + rest
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
