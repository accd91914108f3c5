package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "empty edits returns original",
			content: "hello world",
			want:    "hello world",
		},
		{
			name:    "single replacement",
			content: "hello world",
			edits:   []fix.TextEdit{fix.Replace(0, 5, "hi")},
			want:    "hi world",
		},
		{
			name:    "single insertion",
			content: "var a",
			edits:   []fix.TextEdit{fix.Insert(5, ";")},
			want:    "var a;",
		},
		{
			name:    "single deletion",
			content: "debugger;\nfoo();",
			edits:   []fix.TextEdit{fix.Delete(0, 10)},
			want:    "foo();",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits:   []fix.TextEdit{fix.Replace(0, 3, "X"), fix.Replace(3, 6, "Y")},
			want:    "XY",
		},
		{
			name:    "multibyte content is preserved",
			content: "a　é, b",
			edits:   []fix.TextEdit{fix.Delete(1, 7)},
			want:    "a b",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := fix.ApplyEdits([]byte(tc.content), tc.edits)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("overlapping candidate is deferred", func(t *testing.T) {
		t.Parallel()

		content := []byte("alert(1)")
		result := fix.Apply(content, []fix.Candidate{
			{Edit: fix.Replace(0, 5, "confirm"), Owner: 0},
			{Edit: fix.Replace(2, 4, "xx"), Owner: 1},
			{Edit: fix.Insert(8, ";"), Owner: 2},
		})

		assert.True(t, result.Fixed)
		assert.Equal(t, "confirm(1);", string(result.Output))
		require.Len(t, result.Rejected, 1)
		assert.Equal(t, 1, result.Rejected[0].Owner)
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()

		result := fix.Apply([]byte("x"), nil)
		assert.False(t, result.Fixed)
		assert.Equal(t, "x", string(result.Output))
	})

	t.Run("identity edit still counts as a fix", func(t *testing.T) {
		t.Parallel()

		result := fix.Apply([]byte("abc"), []fix.Candidate{{Edit: fix.Replace(0, 1, "a")}})
		assert.True(t, result.Fixed)
		assert.Equal(t, "abc", string(result.Output))
	})
}

func TestEditBuilderMerge(t *testing.T) {
	t.Parallel()

	content := []byte(`var s = "a";`)
	builder := fix.NewEditBuilder()
	builder.ReplaceRange(8, 9, "'")
	builder.ReplaceRange(10, 11, "'")

	merged, err := builder.Merge(content)
	require.NoError(t, err)
	assert.Equal(t, fix.Replace(8, 11, "'a'"), merged)

	_, err = fix.NewEditBuilder().Merge(content)
	require.ErrorIs(t, err, fix.ErrNoEdits)

	overlapping := fix.NewEditBuilder()
	overlapping.Delete(0, 4)
	overlapping.Delete(2, 6)
	_, err = overlapping.Merge(content)
	var conflict *fix.ConflictError
	require.ErrorAs(t, err, &conflict)
}
