package rules

import (
	"fmt"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
)

const (
	semiAlways = "always"
	semiNever  = "never"
)

// SemiRule requires or disallows semicolons at the end of statements.
type SemiRule struct {
	lint.BaseRule
}

// NewSemiRule creates a new semi rule.
func NewSemiRule() *SemiRule {
	return &SemiRule{
		BaseRule: lint.NewBaseRule(
			"semi",
			"Require or disallow semicolons instead of ASI",
			lint.TypeLayout,
			[]string{"style", "layout"},
			true,
		),
	}
}

// semiStatements are the statements terminated by a semicolon or ASI.
//
//nolint:gochecknoglobals // Static lookup table.
var semiStatements = []ast.NodeKind{
	ast.NodeVariableDeclaration,
	ast.NodeExpressionStatement,
	ast.NodeReturnStatement,
	ast.NodeThrowStatement,
	ast.NodeBreakStatement,
	ast.NodeContinueStatement,
	ast.NodeDebuggerStatement,
}

// Apply checks statement terminators. Option "style" is "always" (default)
// or "never".
func (r *SemiRule) Apply(ctx *lint.RuleContext) ([]finding.Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	style := ctx.OptionString("style", semiAlways)

	var found []finding.Finding
	for _, node := range ctx.Nodes(semiStatements...) {
		if ctx.Cancelled() {
			return found, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if isForInit(node) {
			continue
		}

		last, ok := lint.LastToken(ctx.Program, node)
		if !ok {
			continue
		}
		hasSemi := last.Kind == ast.TokenPunctuator && last.Value == ";"

		switch {
		case style == semiNever && hasSemi:
			if !r.canRemove(ctx, node) {
				continue
			}
			found = append(found, lint.NewFindingAtRange(ctx.Source, last.Range, "Extra semicolon.").
				WithNodeType(node.Type()).
				WithFix(fix.Delete(last.Range.Start, last.Range.End)).
				Build())

		case style != semiNever && !hasSemi:
			end := ctx.Source.PositionAt(last.Range.End)
			loc := ctx.Source.LocationOf(last.Range)
			loc.Start = end
			found = append(found, lint.NewFindingAt(loc, "Missing semicolon.").
				WithNodeType(node.Type()).
				WithFix(fix.Insert(last.Range.End, ";")).
				Build())
		}
	}

	return found, nil
}

// canRemove reports whether dropping the semicolon keeps the statement
// separate from the next one.
func (r *SemiRule) canRemove(ctx *lint.RuleContext, node *ast.Node) bool {
	next, ok := lint.TokenAfter(ctx.Program, node)
	if !ok {
		return true
	}
	if !next.NewlineBefore {
		return next.Is("}")
	}
	switch next.Value {
	case "(", "[", "+", "-", "/", "*", ",", ".", "?.", "++", "--":
		return false
	}
	return next.Kind != ast.TokenTemplate && next.Kind != ast.TokenRegExp
}

// isForInit reports whether a declaration is the head of a for loop.
func isForInit(node *ast.Node) bool {
	parent := node.Parent
	if parent == nil || node.Kind != ast.NodeVariableDeclaration {
		return false
	}
	switch parent.Kind {
	case ast.NodeForStatement:
		return parent.Init == node
	case ast.NodeForInStatement, ast.NodeForOfStatement:
		return parent.Left == node
	default:
		return false
	}
}
