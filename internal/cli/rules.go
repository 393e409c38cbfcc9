package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
	"github.com/yaklabco/gomdtable/pkg/block"
	"github.com/yaklabco/gomdtable/pkg/config"
)

type rulesFlags struct {
	parse  parseFlags
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Position   int      `json:"position"`
	Name       string   `json:"name"`
	Enabled    bool     `json:"enabled"`
	Terminates []string `json:"terminates"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the block rules in chain order",
		Long: `List the block rules in the order they are tried, whether each is
enabled under the current configuration, and which constructs (paragraph,
reference, blockquote, list) each rule may interrupt.

Any rule can be switched off with --disable or rules.disable in the
configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCfg := &config.Config{}
			flags.parse.apply(cmd, cliCfg)

			cfg, _, err := loadConfig(cmd, cliCfg)
			if err != nil {
				return err
			}

			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}

			rules := engine.Rules()

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), cmd.OutOrStdout()))
			return outputRulesText(cmd.OutOrStdout(), styles, rules)
		},
	}

	addParseFlags(cmd, &flags.parse)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// outputRulesText writes one aligned line per rule.
func outputRulesText(w io.Writer, styles *pretty.Styles, rules []block.Rule) error {
	nameWidth := 0
	for _, rule := range rules {
		nameWidth = max(nameWidth, runewidth.StringWidth(rule.Name))
	}

	for i, rule := range rules {
		status := styles.Enabled.Render("enabled")
		if !rule.Enabled {
			status = styles.Disabled.Render("disabled")
		}

		line := fmt.Sprintf("%2d  %s%s  %s", i+1,
			styles.RuleName.Render(rule.Name), pad(rule.Name, nameWidth), status)
		if len(rule.Alt) > 0 {
			if rule.Enabled {
				line += " "
			}
			line += "  " + styles.Dim.Render("terminates: "+strings.Join(rule.Alt, ", "))
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing rules: %w", err)
		}
	}

	return nil
}

// pad returns the spaces that widen s to width display columns.
func pad(s string, width int) string {
	return strings.Repeat(" ", max(0, width-runewidth.StringWidth(s)))
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, rules []block.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for i, rule := range rules {
		terminates := rule.Alt
		if terminates == nil {
			terminates = []string{}
		}
		infos = append(infos, ruleInfo{
			Position:   i + 1,
			Name:       rule.Name,
			Enabled:    rule.Enabled,
			Terminates: terminates,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
