package lint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/parser/js"
	"github.com/yaklabco/gojslint/pkg/source"
)

// mockRule is a configurable rule for engine and linter tests.
type mockRule struct {
	BaseRule
	enabled  bool
	severity config.Severity
	apply    func(ctx *RuleContext) ([]finding.Finding, error)
}

func newMockRule(id string, ruleType RuleType, fixable bool, apply func(ctx *RuleContext) ([]finding.Finding, error)) *mockRule {
	return &mockRule{
		BaseRule: NewBaseRule(id, "mock rule "+id, ruleType, nil, fixable),
		severity: config.SeverityError,
		apply:    apply,
	}
}

func (m *mockRule) DefaultEnabled() bool             { return m.enabled }
func (m *mockRule) DefaultSeverity() config.Severity { return m.severity }

func (m *mockRule) Apply(ctx *RuleContext) ([]finding.Finding, error) {
	if m.apply == nil {
		return nil, nil
	}
	return m.apply(ctx)
}

// alertRule reports calls to alert.
func alertRule() *mockRule {
	return newMockRule("no-alert", TypeSuggestion, false, func(ctx *RuleContext) ([]finding.Finding, error) {
		var found []finding.Finding
		for _, call := range ctx.Nodes(ast.NodeCallExpression) {
			if CalleeName(call) == "alert" {
				found = append(found, NewFinding(ctx.Program, call, "Unexpected alert.").Build())
			}
		}
		return found, nil
	})
}

// semiRule inserts a semicolon after declarations and expression statements
// that lack one.
func semiRule() *mockRule {
	return newMockRule("semi", TypeLayout, true, func(ctx *RuleContext) ([]finding.Finding, error) {
		var found []finding.Finding
		for _, stmt := range ctx.Nodes(ast.NodeVariableDeclaration, ast.NodeExpressionStatement) {
			last, ok := LastToken(ctx.Program, stmt)
			if !ok || last.Is(";") {
				continue
			}
			found = append(found, NewFindingAtRange(ctx.Source, last.Range, "Missing semicolon.").
				WithFix(fix.Insert(last.Range.End, ";")).
				Build())
		}
		return found, nil
	})
}

// appendNewlineRule always asks for one more newline at the end.
func appendNewlineRule() *mockRule {
	return newMockRule("always-newline", TypeLayout, true, func(ctx *RuleContext) ([]finding.Finding, error) {
		end := len(ctx.Source.Content)
		return []finding.Finding{
			NewFindingAtRange(ctx.Source, source.Range{Start: 0, End: 0}, "Needs a newline.").
				WithFix(fix.Insert(end, "\n")).
				Build(),
		}, nil
	})
}

// renameRule renames every identifier called from to to.
func renameRule(id, from, to string) *mockRule {
	return newMockRule(id, TypeSuggestion, true, func(ctx *RuleContext) ([]finding.Finding, error) {
		var found []finding.Finding
		for _, ident := range ctx.Nodes(ast.NodeIdentifier) {
			if ident.Name != from {
				continue
			}
			found = append(found, NewFinding(ctx.Program, ident, "Rename "+from+".").
				WithFix(fix.Replace(ident.Range.Start, ident.Range.End, to)).
				Build())
		}
		return found, nil
	})
}

// enable returns a config turning on the given rules at severity.
func enable(severity config.Severity, ids ...string) *config.Config {
	cfg := config.NewConfig()
	for _, id := range ids {
		cfg.SetRule(id, severity)
	}
	return cfg
}

func newTestRegistry(rules ...Rule) *Registry {
	reg := NewRegistry()
	for _, r := range rules {
		reg.Register(r)
	}
	return reg
}

func parseJS(t *testing.T, code string) *ast.Program {
	t.Helper()
	prog, err := js.New().Parse(context.Background(), source.New("test.js", []byte(code)))
	require.NoError(t, err)
	return prog
}
