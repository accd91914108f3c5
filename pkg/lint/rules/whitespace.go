package rules

import (
	"fmt"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/source"
)

// NoTrailingSpacesRule disallows whitespace at the end of lines.
type NoTrailingSpacesRule struct {
	lint.BaseRule
}

// NewNoTrailingSpacesRule creates a new no-trailing-spaces rule.
func NewNoTrailingSpacesRule() *NoTrailingSpacesRule {
	return &NoTrailingSpacesRule{
		BaseRule: lint.NewBaseRule(
			"no-trailing-spaces",
			"Disallow trailing whitespace at the end of lines",
			lint.TypeLayout,
			[]string{"whitespace", "layout"},
			true,
		),
	}
}

// Apply checks each line for trailing whitespace. Lines inside template
// literals are skipped. Options: skipBlankLines, ignoreComments.
func (r *NoTrailingSpacesRule) Apply(ctx *lint.RuleContext) ([]finding.Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	skipBlank := ctx.OptionBool("skipBlankLines", false)
	ignoreComments := ctx.OptionBool("ignoreComments", false)

	var found []finding.Finding
	for lineNum := 1; lineNum <= ctx.Source.LineCount(); lineNum++ {
		if ctx.Cancelled() {
			return found, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		start, end := lint.TrailingWhitespaceRange(ctx.Source, lineNum)
		if start < 0 {
			continue
		}
		if skipBlank && lint.IsBlankLine(ctx.Source, lineNum) {
			continue
		}
		if insideTemplate(ctx.Program, start) {
			continue
		}
		if _, inComment := lint.CommentAt(ctx.Program, start); inComment && ignoreComments {
			continue
		}

		found = append(found, lint.NewFindingAtRange(ctx.Source, source.Range{Start: start, End: end},
			"Trailing spaces not allowed.").
			WithFix(fix.Delete(start, end)).
			Build())
	}

	return found, nil
}

// insideTemplate reports whether offset falls inside a template literal.
func insideTemplate(prog *ast.Program, offset int) bool {
	for _, tok := range prog.Tokens {
		if tok.Range.Start > offset {
			return false
		}
		if tok.Kind == ast.TokenTemplate && tok.Range.Contains(offset) {
			return true
		}
	}
	return false
}

const (
	eolAlways = "always"
	eolNever  = "never"
)

// EOLLastRule requires or disallows a newline at the end of files.
type EOLLastRule struct {
	lint.BaseRule
}

// NewEOLLastRule creates a new eol-last rule.
func NewEOLLastRule() *EOLLastRule {
	return &EOLLastRule{
		BaseRule: lint.NewBaseRule(
			"eol-last",
			"Require or disallow newline at the end of files",
			lint.TypeLayout,
			[]string{"whitespace", "layout"},
			true,
		),
	}
}

// Apply checks the end of the file. Option "style" is "always" (default)
// or "never". Empty files are ignored.
func (r *EOLLastRule) Apply(ctx *lint.RuleContext) ([]finding.Finding, error) {
	if ctx.Program == nil {
		return nil, nil
	}

	content := ctx.Source.Content
	if len(content) == 0 {
		return nil, nil
	}

	style := ctx.OptionString("style", eolAlways)
	endsWithNewline := content[len(content)-1] == '\n'
	end := ctx.Source.PositionAt(len(content))

	switch {
	case style != eolNever && !endsWithNewline:
		return []finding.Finding{
			lint.NewFindingAt(source.Location{Start: end, End: end},
				"Newline required at end of file but not found.").
				WithNodeType(ctx.Program.Type()).
				WithFix(fix.Insert(len(content), "\n")).
				Build(),
		}, nil

	case style == eolNever && endsWithNewline:
		start := len(content)
		for start > 0 && (content[start-1] == '\n' || content[start-1] == '\r') {
			start--
		}
		loc := ctx.Source.LocationOf(source.Range{Start: start, End: len(content)})
		return []finding.Finding{
			lint.NewFindingAt(loc, "Newline not allowed at end of file.").
				WithNodeType(ctx.Program.Type()).
				WithFix(fix.Delete(start, len(content))).
				Build(),
		}, nil
	}

	return nil, nil
}
