package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
)

const (
	quotesDouble = "double"
	quotesSingle = "single"
)

// QuotesRule enforces a consistent quote style for string literals.
type QuotesRule struct {
	lint.BaseRule
}

// NewQuotesRule creates a new quotes rule.
func NewQuotesRule() *QuotesRule {
	return &QuotesRule{
		BaseRule: lint.NewBaseRule(
			"quotes",
			"Enforce the consistent use of either double or single quotes",
			lint.TypeLayout,
			[]string{"style", "layout"},
			true,
		),
	}
}

// Apply checks string tokens. Option "style" is "double" (default) or
// "single"; "avoidEscape" allows the other quote when it saves escaping.
func (r *QuotesRule) Apply(ctx *lint.RuleContext) ([]finding.Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	style := ctx.OptionString("style", quotesDouble)
	avoidEscape := ctx.OptionBool("avoidEscape", false)

	want := byte('"')
	if style == quotesSingle {
		want = '\''
	}

	var found []finding.Finding
	for _, tok := range ctx.Program.Tokens {
		if ctx.Cancelled() {
			return found, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if tok.Kind != ast.TokenString || len(tok.Value) < 2 || tok.Value[0] == want {
			continue
		}

		body := tok.Value[1 : len(tok.Value)-1]
		if avoidEscape && strings.IndexByte(body, want) >= 0 {
			continue
		}

		found = append(found, lint.NewFindingAtRange(ctx.Source, tok.Range,
			fmt.Sprintf("Strings must use %squote.", style)).
			WithNodeType("Literal").
			WithFix(fix.Replace(tok.Range.Start, tok.Range.End, requote(body, tok.Value[0], want))).
			Build())
	}

	return found, nil
}

// requote rewrites a string body from one quote character to another,
// unescaping the old quote and escaping the new one.
func requote(body string, from, to byte) string {
	var out strings.Builder
	out.Grow(len(body) + 2)
	out.WriteByte(to)
	for idx := 0; idx < len(body); idx++ {
		c := body[idx]
		switch {
		case c == '\\' && idx+1 < len(body):
			if body[idx+1] == from {
				out.WriteByte(from)
			} else {
				out.WriteByte(c)
				out.WriteByte(body[idx+1])
			}
			idx++
		case c == to:
			out.WriteByte('\\')
			out.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}
	out.WriteByte(to)
	return out.String()
}
