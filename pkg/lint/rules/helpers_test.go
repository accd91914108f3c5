package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/parser/js"
	"github.com/yaklabco/gojslint/pkg/source"
)

func parseJS(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, err := js.New().Parse(context.Background(), source.New("test.js", []byte(input)))
	require.NoError(t, err)
	return prog
}

// runRule applies a single rule to input with the given options.
func runRule(t *testing.T, rule lint.Rule, input string, options map[string]any) []finding.Finding {
	t.Helper()

	var ruleCfg *config.RuleConfig
	if options != nil {
		ruleCfg = &config.RuleConfig{Options: options}
	}
	ruleCtx := lint.NewRuleContext(context.Background(), parseJS(t, input), config.NewConfig(), ruleCfg)

	found, err := rule.Apply(ruleCtx)
	require.NoError(t, err)
	return found
}

// applyFixes applies every fix in found to input.
func applyFixes(t *testing.T, input string, found []finding.Finding) string {
	t.Helper()

	var edits []fix.TextEdit
	for _, f := range found {
		if f.Fix != nil {
			edits = append(edits, *f.Fix)
		}
	}
	prepared, err := fix.PrepareEdits(edits, len(input))
	require.NoError(t, err)
	return string(fix.ApplyEdits([]byte(input), prepared))
}

// applySuggestion applies the first suggestion of f to input.
func applySuggestion(t *testing.T, input string, f finding.Finding) string {
	t.Helper()
	require.NotEmpty(t, f.Suggestions)
	return string(fix.ApplyEdits([]byte(input), []fix.TextEdit{f.Suggestions[0].Fix}))
}

// assertFixIdempotent re-runs rule on fixed and expects no fixable findings.
func assertFixIdempotent(t *testing.T, rule lint.Rule, fixed string, options map[string]any) {
	t.Helper()
	for _, f := range runRule(t, rule, fixed, options) {
		require.False(t, f.HasFix(), "fix should be idempotent, got %q at %d:%d", f.Message, f.Line, f.Column)
	}
}
