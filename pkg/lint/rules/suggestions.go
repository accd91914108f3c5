package rules

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
)

const (
	eqeqeqAlways = "always"
	eqeqeqSmart  = "smart"
)

// EqeqeqRule requires === and !==.
type EqeqeqRule struct {
	lint.BaseRule
}

// NewEqeqeqRule creates a new eqeqeq rule.
func NewEqeqeqRule() *EqeqeqRule {
	return &EqeqeqRule{
		BaseRule: lint.NewBaseRule(
			"eqeqeq",
			"Require the use of === and !==",
			lint.TypeSuggestion,
			[]string{"suggestion", "recommended"},
			false,
		),
	}
}

// DefaultEnabled returns true.
func (r *EqeqeqRule) DefaultEnabled() bool {
	return true
}

// Apply reports == and != comparisons with a suggestion to use the strict
// operator. Option "style" is "always" (default) or "smart", which allows
// typeof comparisons, comparisons of two literals and comparisons with null.
func (r *EqeqeqRule) Apply(ctx *lint.RuleContext) ([]finding.Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	style := ctx.OptionString("style", eqeqeqAlways)

	var found []finding.Finding
	for _, node := range ctx.Nodes(ast.NodeBinaryExpression) {
		if node.Operator != "==" && node.Operator != "!=" {
			continue
		}
		if style == eqeqeqSmart && looseIsSafe(node) {
			continue
		}

		op, ok := operatorToken(ctx.Program, node)
		if !ok {
			continue
		}
		strict := node.Operator + "="

		found = append(found, lint.NewFindingAtRange(ctx.Source, op.Range,
			fmt.Sprintf("Expected '%s' and instead saw '%s'.", strict, node.Operator)).
			WithNodeType(node.Type()).
			WithSuggestion(fmt.Sprintf("Use '%s' instead of '%s'.", strict, node.Operator),
				fix.Replace(op.Range.Start, op.Range.End, strict)).
			Build())
	}

	return found, nil
}

// operatorToken finds the operator token between the operands of a binary node.
func operatorToken(prog *ast.Program, node *ast.Node) (ast.Token, bool) {
	if node.Left == nil || node.Right == nil {
		return ast.Token{}, false
	}
	for idx := node.Left.LastToken + 1; idx < node.Right.FirstToken; idx++ {
		tok, ok := prog.TokenAt(idx)
		if ok && tok.Kind == ast.TokenPunctuator && tok.Value == node.Operator {
			return tok, true
		}
	}
	return ast.Token{}, false
}

func looseIsSafe(node *ast.Node) bool {
	isTypeof := func(n *ast.Node) bool {
		return n.Kind == ast.NodeUnaryExpression && n.Operator == "typeof"
	}
	isNull := func(n *ast.Node) bool {
		return n.Kind == ast.NodeLiteral && n.Raw == "null"
	}
	left, right := node.Left, node.Right
	return isTypeof(left) || isTypeof(right) ||
		left.Kind == ast.NodeLiteral && right.Kind == ast.NodeLiteral ||
		isNull(left) || isNull(right)
}

// NoVarRule requires let or const instead of var.
type NoVarRule struct {
	lint.BaseRule
}

// NewNoVarRule creates a new no-var rule.
func NewNoVarRule() *NoVarRule {
	return &NoVarRule{
		BaseRule: lint.NewBaseRule(
			"no-var",
			"Require let or const instead of var",
			lint.TypeSuggestion,
			[]string{"suggestion", "es2015"},
			true,
		),
	}
}

// Apply reports var declarations. Declarations directly inside a program
// or block, outside loops, are fixed to let.
func (r *NoVarRule) Apply(ctx *lint.RuleContext) ([]finding.Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	var found []finding.Finding
	for _, node := range ctx.Nodes(ast.NodeVariableDeclaration) {
		if node.Qualifier != "var" {
			continue
		}

		b := lint.NewFinding(ctx.Program, node, "Unexpected var, use let or const instead.")
		if kw, ok := lint.FirstToken(ctx.Program, node); ok && canUseLet(node) {
			b = b.WithFix(fix.Replace(kw.Range.Start, kw.Range.End, "let"))
		}
		found = append(found, b.Build())
	}

	return found, nil
}

// canUseLet reports whether turning var into let keeps the program valid:
// the declaration sits directly in a program or block that is not a loop body.
func canUseLet(node *ast.Node) bool {
	parent := node.Parent
	if parent == nil || !parent.Is(ast.NodeProgram, ast.NodeBlockStatement) {
		return false
	}
	for anc := parent; anc != nil; anc = anc.Parent {
		if anc.Is(ast.NodeForStatement, ast.NodeForInStatement, ast.NodeForOfStatement,
			ast.NodeWhileStatement, ast.NodeDoWhileStatement, ast.NodeSwitchCase) {
			return false
		}
		if anc.Is(ast.NodeFunctionDeclaration, ast.NodeFunctionExpression, ast.NodeArrowFunctionExpression) {
			break
		}
	}
	return true
}

// CamelcaseRule enforces camelCase names for declarations.
type CamelcaseRule struct {
	lint.BaseRule
}

// NewCamelcaseRule creates a new camelcase rule.
func NewCamelcaseRule() *CamelcaseRule {
	return &CamelcaseRule{
		BaseRule: lint.NewBaseRule(
			"camelcase",
			"Enforce camelcase naming convention",
			lint.TypeSuggestion,
			[]string{"style", "naming"},
			false,
		),
	}
}

// Apply checks declared variable, function and parameter names.
// Option "allow" lists names that are always accepted.
func (r *CamelcaseRule) Apply(ctx *lint.RuleContext) ([]finding.Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	allow := ctx.OptionStringSlice("allow", nil)
	seen := make(map[*ast.Node]bool)

	var found []finding.Finding
	report := func(id *ast.Node) {
		if id == nil || id.Kind != ast.NodeIdentifier || seen[id] {
			return
		}
		seen[id] = true
		if slices.Contains(allow, id.Name) || IsCamelCase(id.Name) {
			return
		}
		found = append(found, lint.NewFinding(ctx.Program, id,
			fmt.Sprintf("Identifier '%s' is not in camel case.", id.Name)).Build())
	}

	declarations := ctx.Nodes(ast.NodeVariableDeclarator, ast.NodeFunctionDeclaration,
		ast.NodeFunctionExpression, ast.NodeArrowFunctionExpression)
	for _, node := range declarations {
		if ctx.Cancelled() {
			return found, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if node.Kind == ast.NodeVariableDeclarator {
			report(node.ID)
			continue
		}
		report(node.ID)
		for _, child := range node.Children {
			if child == node.ID || child == node.Body {
				continue
			}
			report(paramName(child))
		}
	}

	finding.Sort(found)
	return found, nil
}

// paramName returns the identifier bound by a simple parameter.
func paramName(param *ast.Node) *ast.Node {
	switch param.Kind {
	case ast.NodeIdentifier:
		return param
	case ast.NodeAssignmentPattern:
		return param.Left
	case ast.NodeRestElement:
		return param.Argument
	default:
		return nil
	}
}

// IsCamelCase reports whether a name is camelCase, PascalCase or an
// UPPER_SNAKE constant. Leading and trailing underscores and dollar signs
// are ignored.
func IsCamelCase(name string) bool {
	trimmed := strings.Trim(name, "_$")
	if trimmed == "" {
		return true
	}

	words := camelcase.Split(trimmed)
	hasUnderscore := false
	allUpper := true
	for _, word := range words {
		if strings.Trim(word, "_") == "" {
			hasUnderscore = true
			continue
		}
		for _, r := range word {
			if unicode.IsLower(r) {
				allUpper = false
			}
		}
	}

	return !hasUnderscore || allUpper
}
