package suppress_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/directive"
	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/parser/js"
	"github.com/yaklabco/gojslint/pkg/source"
	"github.com/yaklabco/gojslint/pkg/suppress"
)

func directivesFor(t *testing.T, code string) ([]directive.Directive, *source.Text) {
	t.Helper()
	src := source.New("test.js", []byte(code))
	prog, err := js.New().Parse(context.Background(), src)
	require.NoError(t, err)
	result := directive.Parse(prog.Comments, src, directive.Options{
		AllowInlineConfig: true,
		Prefix:            "eslint-",
	})
	require.Empty(t, result.Problems)
	return result.Directives, src
}

func at(ruleID string, line, column int) finding.Finding {
	return finding.Finding{
		RuleID:   ruleID,
		Severity: config.SeverityWarn,
		Message:  "problem from " + ruleID,
		Line:     line,
		Column:   column,
	}
}

func apply(t *testing.T, code string, report config.Severity, findings ...finding.Finding) (suppress.Output, *source.Text) {
	t.Helper()
	directives, src := directivesFor(t, code)
	return suppress.Apply(suppress.Input{
		Directives:   directives,
		Findings:     findings,
		ReportUnused: report,
		Source:       src,
	}), src
}

func TestApply_DisableAllEnableAll(t *testing.T) {
	t.Parallel()

	code := "/*eslint-disable-all*/\nalert('x');\n/*eslint-enable-all*/\nalert('x');"
	out, _ := apply(t, code, config.SeverityOff, at("no-alert", 2, 1), at("no-alert", 4, 1))

	require.Len(t, out.Reported, 1)
	assert.Equal(t, 4, out.Reported[0].Line)

	require.Len(t, out.Suppressed, 1)
	assert.Equal(t, 2, out.Suppressed[0].Line)
	assert.Empty(t, cmp.Diff(
		[]finding.Suppression{{Kind: finding.SuppressionKindDirective, Justification: ""}},
		out.Suppressed[0].Suppressions,
	))
}

func TestApply_EnableAllClearsEverything(t *testing.T) {
	t.Parallel()

	code := "/* eslint-disable a */\n/* eslint-disable b */\n/* eslint-disable */\n/* eslint-enable */\nx;"
	out, _ := apply(t, code, config.SeverityOff, at("a", 5, 1), at("b", 5, 1), at("c", 5, 1))

	assert.Len(t, out.Reported, 3)
	assert.Empty(t, out.Suppressed)
}

func TestApply_Narrowing(t *testing.T) {
	t.Parallel()

	code := "/* eslint-disable */\n/* eslint-enable a */\nx;"
	out, _ := apply(t, code, config.SeverityOff, at("a", 3, 1), at("b", 3, 1))

	require.Len(t, out.Reported, 1)
	assert.Equal(t, "a", out.Reported[0].RuleID)
	require.Len(t, out.Suppressed, 1)
	assert.Equal(t, "b", out.Suppressed[0].RuleID)
}

func TestApply_DisableAfterNarrowing(t *testing.T) {
	t.Parallel()

	code := "/* eslint-disable */\n/* eslint-enable a */\n/* eslint-disable a */\nx;"
	out, _ := apply(t, code, config.SeverityOff, at("a", 4, 1))

	assert.Empty(t, out.Reported)
	require.Len(t, out.Suppressed, 1)
	assert.Len(t, out.Suppressed[0].Suppressions, 1)
}

func TestApply_MultiSuppression(t *testing.T) {
	t.Parallel()

	code := "/* eslint-disable -- block reason */\nfoo(); // eslint-disable-line a -- line reason\n"
	out, _ := apply(t, code, config.SeverityWarn, at("a", 2, 1))

	// The block directive gets the credit, so the line directive is unused.
	require.Len(t, out.Reported, 1)
	assert.Equal(t, "Unused disable directive (no problems were reported from 'a').", out.Reported[0].Message)

	require.Len(t, out.Suppressed, 1)
	assert.Empty(t, cmp.Diff([]finding.Suppression{
		{Kind: finding.SuppressionKindDirective, Justification: "block reason"},
		{Kind: finding.SuppressionKindDirective, Justification: "line reason"},
	}, out.Suppressed[0].Suppressions))
}

func TestApply_LineDirectives(t *testing.T) {
	t.Parallel()

	code := "// eslint-disable-next-line a\nfoo();\nbar(); // eslint-disable-line\nbaz();\n"
	out, _ := apply(t, code, config.SeverityOff,
		at("a", 2, 1), at("b", 2, 1), at("c", 3, 1), at("a", 4, 1))

	var reported []string
	for _, f := range out.Reported {
		reported = append(reported, f.RuleID)
	}
	assert.Equal(t, []string{"b", "a"}, reported)
	assert.Len(t, out.Suppressed, 2)
}

func TestApply_DirectiveBeforeFindingOnTies(t *testing.T) {
	t.Parallel()

	out, _ := apply(t, "/* eslint-disable */ x;", config.SeverityOff, at("a", 1, 1))
	assert.Empty(t, out.Reported)
	assert.Len(t, out.Suppressed, 1)
}

func TestApply_StructuralFindingsFollowDisableAll(t *testing.T) {
	t.Parallel()

	code := "/* eslint-disable */\n/* eslint-disable a */\nx;"
	out, _ := apply(t, code, config.SeverityOff, at("", 3, 1))
	assert.Empty(t, out.Reported)
	require.Len(t, out.Suppressed, 1)
	assert.Len(t, out.Suppressed[0].Suppressions, 1)
}

func TestApply_UnusedDisableEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		code         string
		findings     []finding.Finding
		wantEdits    []fix.TextEdit
		wantMessages []string
		wantOutputs  []string
	}{
		{
			name:         "trailing id",
			code:         "/* eslint-disable used, unused */\nx;",
			findings:     []finding.Finding{at("used", 2, 1)},
			wantEdits:    []fix.TextEdit{fix.Delete(22, 30)},
			wantMessages: []string{"Unused disable directive (no problems were reported from 'unused')."},
			wantOutputs:  []string{"/* eslint-disable used */\nx;"},
		},
		{
			name:        "leading id",
			code:        "/* eslint-disable unused, used */\nx;",
			findings:    []finding.Finding{at("used", 2, 1)},
			wantEdits:   []fix.TextEdit{fix.Delete(18, 26)},
			wantOutputs: []string{"/* eslint-disable used */\nx;"},
		},
		{
			name:        "stray commas",
			code:        "/* eslint-disable unused,, ,, used */\nx;",
			findings:    []finding.Finding{at("used", 2, 1)},
			wantEdits:   []fix.TextEdit{fix.Delete(18, 25)},
			wantOutputs: []string{"/* eslint-disable , ,, used */\nx;"},
		},
		{
			name:        "before justification",
			code:        "/* eslint-disable used , unused , -- unused and used are ok */\nx;",
			findings:    []finding.Finding{at("used", 2, 1)},
			wantEdits:   []fix.TextEdit{fix.Delete(23, 32)},
			wantOutputs: []string{"/* eslint-disable used , -- unused and used are ok */\nx;"},
		},
		{
			name:     "two unused ids",
			code:     "/* eslint-disable unused-1, unused-2, used */\nx;",
			findings: []finding.Finding{at("used", 2, 1)},
			wantEdits: []fix.TextEdit{
				fix.Delete(18, 28),
				fix.Delete(26, 36),
			},
			wantOutputs: []string{
				"/* eslint-disable unused-2, used */\nx;",
				"/* eslint-disable unused-1, used */\nx;",
			},
		},
		{
			name:        "quoted id",
			code:        "/* eslint-disable 'unused', used */\nx;",
			findings:    []finding.Finding{at("used", 2, 1)},
			wantEdits:   []fix.TextEdit{fix.Delete(18, 28)},
			wantOutputs: []string{"/* eslint-disable used */\nx;"},
		},
		{
			name:        "non-ASCII whitespace",
			code:        "/* eslint-disable used,\u00a0unused */\nx;",
			findings:    []finding.Finding{at("used", 2, 1)},
			wantEdits:   []fix.TextEdit{fix.Delete(22, 31)},
			wantOutputs: []string{"/* eslint-disable used */\nx;"},
		},
		{
			name:        "line comment",
			code:        "foo(); // eslint-disable-line A, B",
			findings:    []finding.Finding{at("B", 1, 1)},
			wantEdits:   []fix.TextEdit{fix.Delete(30, 33)},
			wantOutputs: []string{"foo(); // eslint-disable-line B"},
		},
		{
			name:         "every id unused",
			code:         "/* eslint-disable a, b */\nx;",
			wantEdits:    []fix.TextEdit{fix.Replace(0, 25, " ")},
			wantMessages: []string{"Unused disable directive (no problems were reported from 'a' or 'b')."},
			wantOutputs:  []string{" \nx;"},
		},
		{
			name:         "three unused ids",
			code:         "/* eslint-disable a, b, c */",
			wantEdits:    []fix.TextEdit{fix.Replace(0, 28, " ")},
			wantMessages: []string{"Unused disable directive (no problems were reported from 'a', 'b', or 'c')."},
		},
		{
			name:         "all form",
			code:         "x; // eslint-disable-line",
			wantEdits:    []fix.TextEdit{fix.Replace(3, 25, " ")},
			wantMessages: []string{"Unused disable directive (no problems were reported)."},
			wantOutputs:  []string{"x;  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, src := apply(t, tt.code, config.SeverityError, tt.findings...)

			var reports []finding.Finding
			for _, f := range out.Reported {
				if f.RuleID == "" {
					reports = append(reports, f)
				}
			}
			require.Len(t, reports, len(tt.wantEdits))

			for idx, report := range reports {
				assert.Equal(t, config.SeverityError, report.Severity)
				require.NotNil(t, report.Fix)
				assert.Equal(t, tt.wantEdits[idx], *report.Fix)

				if tt.wantMessages != nil {
					assert.Equal(t, tt.wantMessages[idx], report.Message)
				}
				if tt.wantOutputs != nil {
					got := fix.ApplyEdits(src.Content, []fix.TextEdit{*report.Fix})
					assert.Equal(t, tt.wantOutputs[idx], string(got))
				}
			}
		})
	}
}

func TestApply_UnusedEnable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		code         string
		findings     []finding.Finding
		wantMessages []string
	}{
		{
			name:         "enable without disable",
			code:         "/* eslint-enable a */\nx;",
			wantMessages: []string{"Unused enable directive (no matching disable directives were found for 'a')."},
		},
		{
			name:         "enable all without disable",
			code:         "/* eslint-enable */\nx;",
			wantMessages: []string{"Unused enable directive (no matching disable directives were found)."},
		},
		{
			name:     "matched pair",
			code:     "/* eslint-disable */\nx;\n/* eslint-enable */",
			findings: []finding.Finding{at("a", 2, 1)},
		},
		{
			name:     "enable narrows disable all",
			code:     "/* eslint-disable */\nx;\n/* eslint-enable a */",
			findings: []finding.Finding{at("b", 2, 1)},
		},
		{
			name:         "partly used enable",
			code:         "/* eslint-disable a */\nx;\n/* eslint-enable a, b */",
			findings:     []finding.Finding{at("a", 2, 1)},
			wantMessages: []string{"Unused enable directive (no matching disable directives were found for 'b')."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, _ := apply(t, tt.code, config.SeverityWarn, tt.findings...)

			var messages []string
			for _, f := range out.Reported {
				if f.RuleID == "" {
					messages = append(messages, f.Message)
				}
			}
			assert.Equal(t, tt.wantMessages, messages)
		})
	}
}

func TestApply_ReportUnusedOff(t *testing.T) {
	t.Parallel()

	out, _ := apply(t, "/* eslint-disable a */\nx;", config.SeverityOff)
	assert.Empty(t, out.Reported)
	assert.Empty(t, out.Suppressed)
}

func TestApply_ReportsSortedWithFindings(t *testing.T) {
	t.Parallel()

	code := "x;\n/* eslint-disable a */\ny;"
	out, _ := apply(t, code, config.SeverityWarn, at("b", 3, 1), at("c", 1, 1))

	require.Len(t, out.Reported, 3)
	assert.Equal(t, "c", out.Reported[0].RuleID)
	assert.Empty(t, out.Reported[1].RuleID)
	assert.Equal(t, 2, out.Reported[1].Line)
	assert.Equal(t, "b", out.Reported[2].RuleID)
}
