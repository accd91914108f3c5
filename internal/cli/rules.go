package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
)

type rulesFlags struct {
	format string
	packs  bool
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}

// packInfo represents a rule pack in JSON output.
type packInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Rules       map[string]string `json:"rules"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their type, default severity,
and whether they can fix the problems they report.

With --packs, list the rule packs accepted by 'gojslint init --pack'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if flags.packs {
				if flags.format == formatJSON {
					return writeJSON(out, packInfos())
				}
				listPacks(out)
				return nil
			}

			registered := lint.DefaultRegistry.Rules()
			if flags.format == formatJSON {
				return writeJSON(out, ruleInfos(lint.DefaultRegistry, registered))
			}
			listRules(out, lint.DefaultRegistry, registered)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.packs, "packs", false, "list rule packs instead of rules")

	return cmd
}

func listRules(out io.Writer, registry *lint.Registry, registered []lint.Rule) {
	logger := logging.NewInteractive(out)

	if len(registered) == 0 {
		logger.Info("no rules registered")
		return
	}

	logger.Info("available rules")
	for _, rule := range registered {
		fixable := "-"
		if rule.CanFix() {
			fixable = "yes"
		}
		keyvals := []any{
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldFixable, fixable,
			logging.FieldDescription, rule.Description(),
		}
		if aliases := registry.Aliases(rule.ID()); len(aliases) > 0 {
			keyvals = append(keyvals, logging.FieldAliases, strings.Join(aliases, ","))
		}
		logger.Info(rule.ID(), keyvals...)
	}
}

func listPacks(out io.Writer) {
	logger := logging.NewInteractive(out)

	logger.Info("available rule packs")
	for _, pack := range rules.Packs() {
		logger.Info(pack.Name,
			logging.FieldDescription, pack.Description,
			logging.FieldRules, strings.Join(slices.Sorted(maps.Keys(pack.Rules)), ","),
		)
	}
}

func ruleInfos(registry *lint.Registry, registered []lint.Rule) []ruleInfo {
	infos := make([]ruleInfo, 0, len(registered))
	for _, rule := range registered {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Description: rule.Description(),
			Type:        string(rule.Type()),
			Severity:    rule.DefaultSeverity().String(),
			Enabled:     rule.DefaultEnabled(),
			Fixable:     rule.CanFix(),
			Tags:        rule.Tags(),
			Aliases:     registry.Aliases(rule.ID()),
		})
	}
	return infos
}

func packInfos() []packInfo {
	packs := rules.Packs()
	infos := make([]packInfo, 0, len(packs))
	for _, pack := range packs {
		ruleSeverities := make(map[string]string, len(pack.Rules))
		for id, rc := range pack.Rules {
			if rc.Severity != nil {
				ruleSeverities[id] = rc.Severity.String()
			}
		}
		infos = append(infos, packInfo{Name: pack.Name, Description: pack.Description, Rules: ruleSeverities})
	}
	return infos
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
