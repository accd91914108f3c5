package directive

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
)

// parseRules handles "rules semi: error, quotes: [warn, {style: double}]".
// The payload is read as the body of a YAML flow mapping.
func (p *parser) parseRules(comment ast.Comment, payload string) {
	payload = TrimSpace(payload)
	if payload == "" {
		p.problem(comment, "", config.SeverityError, "Failed to parse inline configuration: empty rules list.")
		return
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte("{"+payload+"}"), &root); err != nil {
		p.problem(comment, "", config.SeverityError,
			"Failed to parse inline configuration: "+strings.TrimPrefix(err.Error(), "yaml: "))
		return
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 || root.Content[0].Kind != yaml.MappingNode {
		p.problem(comment, "", config.SeverityError, "Failed to parse inline configuration: expected a mapping.")
		return
	}

	loc := p.src.LocationOf(comment.Range)
	mapping := root.Content[0]
	for idx := 0; idx+1 < len(mapping.Content); idx += 2 {
		ruleID := mapping.Content[idx].Value
		if !p.known(ruleID) {
			p.problem(comment, ruleID, config.SeverityError, fmt.Sprintf("Definition for rule '%s' was not found.", ruleID))
			continue
		}

		var rc config.RuleConfig
		if err := mapping.Content[idx+1].Decode(&rc); err != nil {
			p.problem(comment, ruleID, config.SeverityError,
				fmt.Sprintf("Inline configuration for rule '%s' is invalid: %v", ruleID, err))
			continue
		}

		p.result.RuleConfigs = append(p.result.RuleConfigs, InlineRuleConfig{
			RuleID: ruleID,
			Config: rc,
			Line:   loc.Start.Line,
			Column: loc.Start.Column,
		})
	}
}
