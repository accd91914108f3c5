package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqeqeqRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		options   map[string]any
		wantDiags int
	}{
		{name: "strict equality", input: "if (a === b) {}\n", wantDiags: 0},
		{name: "loose equality", input: "if (a == b) {}\n", wantDiags: 1},
		{name: "loose inequality", input: "x = a != b;\n", wantDiags: 1},
		{name: "null comparison always", input: "x = a != null;\n", wantDiags: 1},
		{
			name:      "null comparison smart",
			input:     "x = a != null;\n",
			options:   map[string]any{"style": "smart"},
			wantDiags: 0,
		},
		{
			name:      "typeof comparison smart",
			input:     "x = typeof a == 'string';\n",
			options:   map[string]any{"style": "smart"},
			wantDiags: 0,
		},
		{
			name:      "identifiers smart",
			input:     "x = a == b;\n",
			options:   map[string]any{"style": "smart"},
			wantDiags: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			found := runRule(t, NewEqeqeqRule(), tt.input, tt.options)
			assert.Len(t, found, tt.wantDiags)
		})
	}
}

func TestEqeqeqRule_Suggestion(t *testing.T) {
	t.Parallel()

	rule := NewEqeqeqRule()
	assert.True(t, rule.DefaultEnabled())
	assert.False(t, rule.CanFix())

	input := "if (a == b) {}\n"
	found := runRule(t, rule, input, nil)
	require.Len(t, found, 1)

	f := found[0]
	assert.Equal(t, "Expected '===' and instead saw '=='.", f.Message)
	assert.Equal(t, "BinaryExpression", f.NodeType)
	assert.Equal(t, 1, f.Line)
	assert.Equal(t, 7, f.Column)
	assert.False(t, f.HasFix())

	require.Len(t, f.Suggestions, 1)
	assert.Equal(t, "Use '===' instead of '=='.", f.Suggestions[0].Desc)
	assert.Equal(t, "if (a === b) {}\n", applySuggestion(t, input, f))
}

func TestNoVarRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "let is fine",
			input:     "let a = 1;\nconst b = 2;\n",
			wantDiags: 0,
			wantFix:   "let a = 1;\nconst b = 2;\n",
		},
		{
			name:      "top-level var fixed",
			input:     "var a = 1;\n",
			wantDiags: 1,
			wantFix:   "let a = 1;\n",
		},
		{
			name:      "var in function body fixed",
			input:     "function f() { var z; }\n",
			wantDiags: 1,
			wantFix:   "function f() { let z; }\n",
		},
		{
			name:      "for loop head not fixed",
			input:     "for (var i = 0; i < 1; i++) {}\n",
			wantDiags: 1,
			wantFix:   "for (var i = 0; i < 1; i++) {}\n",
		},
		{
			name:      "loop body not fixed",
			input:     "while (x) { var y = 1; }\n",
			wantDiags: 1,
			wantFix:   "while (x) { var y = 1; }\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			found := runRule(t, NewNoVarRule(), tt.input, nil)
			require.Len(t, found, tt.wantDiags)
			for _, f := range found {
				assert.Equal(t, "Unexpected var, use let or const instead.", f.Message)
			}
			assert.Equal(t, tt.wantFix, applyFixes(t, tt.input, found))
		})
	}
}

func TestCamelcaseRule(t *testing.T) {
	t.Parallel()

	input := "var fooBar = 1, foo_bar = 2;\n" +
		"function do_it(my_arg, ...rest_args) {}\n" +
		"const MAX_SIZE = 1;\n"

	found := runRule(t, NewCamelcaseRule(), input, nil)
	require.Len(t, found, 4)

	assert.Equal(t, "Identifier 'foo_bar' is not in camel case.", found[0].Message)
	assert.Equal(t, 1, found[0].Line)
	assert.Equal(t, 17, found[0].Column)
	assert.Equal(t, "Identifier 'do_it' is not in camel case.", found[1].Message)
	assert.Equal(t, "Identifier 'my_arg' is not in camel case.", found[2].Message)
	assert.Equal(t, "Identifier 'rest_args' is not in camel case.", found[3].Message)

	found = runRule(t, NewCamelcaseRule(), input, map[string]any{"allow": []any{"foo_bar", "do_it"}})
	assert.Len(t, found, 2)
}

func TestCamelcaseRule_ArrowParams(t *testing.T) {
	t.Parallel()

	found := runRule(t, NewCamelcaseRule(), "var f = (snake_case) => snake_case;\n", nil)
	require.Len(t, found, 1)
	assert.Equal(t, "Identifier 'snake_case' is not in camel case.", found[0].Message)
}

func TestIsCamelCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{name: "fooBar", want: true},
		{name: "FooBar", want: true},
		{name: "x", want: true},
		{name: "foo_bar", want: false},
		{name: "FOO_BAR", want: true},
		{name: "_private", want: true},
		{name: "__proto__", want: true},
		{name: "$el", want: true},
		{name: "a1_b", want: false},
		{name: "HTTP_status", want: false},
		{name: "_", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsCamelCase(tt.name))
		})
	}
}
