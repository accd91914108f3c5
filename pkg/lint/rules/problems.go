package rules

import (
	"fmt"
	"slices"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// NoDebuggerRule disallows debugger statements.
type NoDebuggerRule struct {
	lint.BaseRule
}

// NewNoDebuggerRule creates a new no-debugger rule.
func NewNoDebuggerRule() *NoDebuggerRule {
	return &NoDebuggerRule{
		BaseRule: lint.NewBaseRule(
			"no-debugger",
			"Disallow the use of debugger",
			lint.TypeProblem,
			[]string{"problem", "recommended"},
			false,
		),
	}
}

// DefaultEnabled returns true; debugger statements are always a mistake.
func (r *NoDebuggerRule) DefaultEnabled() bool {
	return true
}

// Apply reports every debugger statement with a suggestion to remove it.
func (r *NoDebuggerRule) Apply(ctx *lint.RuleContext) ([]finding.Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	var found []finding.Finding
	for _, node := range ctx.Nodes(ast.NodeDebuggerStatement) {
		b := lint.NewFinding(ctx.Program, node, "Unexpected 'debugger' statement.")
		// Removing a statement that is the body of if/while would change
		// the meaning of the following statement.
		if parent := node.Parent; parent != nil && parent.Is(ast.NodeProgram, ast.NodeBlockStatement, ast.NodeSwitchCase) {
			b = b.WithSuggestion("Remove the debugger statement.", fix.Delete(node.Range.Start, node.Range.End))
		}
		found = append(found, b.Build())
	}

	return found, nil
}

// alertLike are the blocking dialog functions reported by no-alert.
//
//nolint:gochecknoglobals // Static lookup table.
var alertLike = []string{"alert", "confirm", "prompt"}

// NoAlertRule disallows alert, confirm and prompt.
type NoAlertRule struct {
	lint.BaseRule
}

// NewNoAlertRule creates a new no-alert rule.
func NewNoAlertRule() *NoAlertRule {
	return &NoAlertRule{
		BaseRule: lint.NewBaseRule(
			"no-alert",
			"Disallow the use of alert, confirm, and prompt",
			lint.TypeSuggestion,
			[]string{"browser"},
			false,
		),
	}
}

// Apply reports direct calls and calls through window or globalThis.
func (r *NoAlertRule) Apply(ctx *lint.RuleContext) ([]finding.Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	var found []finding.Finding
	for _, call := range ctx.Nodes(ast.NodeCallExpression) {
		if ctx.Cancelled() {
			return found, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		name := lint.CalleeName(call)
		if name == "" && (lint.IsMemberCall(call, "window") || lint.IsMemberCall(call, "globalThis")) {
			if prop := call.Callee.Property; prop != nil && !call.Callee.Computed {
				name = prop.Name
			}
		}
		if !slices.Contains(alertLike, name) {
			continue
		}

		found = append(found, lint.NewFinding(ctx.Program, call, fmt.Sprintf("Unexpected %s.", name)).Build())
	}

	return found, nil
}

// NoConsoleRule disallows the use of console.
type NoConsoleRule struct {
	lint.BaseRule
}

// NewNoConsoleRule creates a new no-console rule.
func NewNoConsoleRule() *NoConsoleRule {
	return &NoConsoleRule{
		BaseRule: lint.NewBaseRule(
			"no-console",
			"Disallow the use of console",
			lint.TypeSuggestion,
			[]string{"suggestion"},
			false,
		),
	}
}

// DefaultSeverity returns warn; console calls are often intentional.
func (r *NoConsoleRule) DefaultSeverity() config.Severity {
	return config.SeverityWarn
}

// Apply reports console method calls. Option "allow" lists permitted
// methods, e.g. [warn, error].
func (r *NoConsoleRule) Apply(ctx *lint.RuleContext) ([]finding.Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	allow := ctx.OptionStringSlice("allow", nil)

	var found []finding.Finding
	for _, call := range ctx.Nodes(ast.NodeCallExpression) {
		if !lint.IsMemberCall(call, "console") {
			continue
		}
		if prop := call.Callee.Property; prop != nil && slices.Contains(allow, prop.Name) {
			continue
		}

		b := lint.NewFinding(ctx.Program, call.Callee, "Unexpected console statement.")
		if stmt := call.Parent; stmt != nil && stmt.Kind == ast.NodeExpressionStatement &&
			stmt.Parent.Is(ast.NodeProgram, ast.NodeBlockStatement) {
			b = b.WithSuggestion("Remove the console statement.", fix.Delete(stmt.Range.Start, stmt.Range.End))
		}
		found = append(found, b.Build())
	}

	return found, nil
}
