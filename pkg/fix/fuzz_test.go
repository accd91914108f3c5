package fix_test

import (
	"testing"

	"github.com/yaklabco/gojslint/pkg/fix"
)

func FuzzSelect(f *testing.F) {
	f.Add([]byte("hello world"), 0, 5, 3, 8, 8, 8)
	f.Add([]byte("var a"), 5, 5, 5, 5, 0, 3)
	f.Add([]byte(""), 0, 0, 1, 0, -1, 2)

	f.Fuzz(func(t *testing.T, content []byte, s1, e1, s2, e2, s3, e3 int) {
		candidates := []fix.Candidate{
			{Edit: fix.Replace(s1, e1, "a"), Owner: 0},
			{Edit: fix.Replace(s2, e2, ""), Owner: 1},
			{Edit: fix.Replace(s3, e3, "bc"), Owner: 2},
		}

		applied, rejected := fix.Select(candidates, len(content))
		if len(applied)+len(rejected) != len(candidates) {
			t.Fatalf("partition lost candidates: %d + %d", len(applied), len(rejected))
		}

		for i := 1; i < len(applied); i++ {
			if applied[i-1].Edit.EndOffset > applied[i].Edit.StartOffset {
				t.Fatalf("applied edits overlap: %+v then %+v", applied[i-1].Edit, applied[i].Edit)
			}
		}

		// Applying must not panic.
		_ = fix.ApplyEdits(content, fix.Edits(applied))
	})
}

func FuzzGenerateDiff(f *testing.F) {
	f.Add([]byte(""), []byte("a\n"))
	f.Add([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	f.Add([]byte("a"), []byte("a\n"))

	f.Fuzz(func(t *testing.T, original, modified []byte) {
		diff := fix.GenerateDiff("fuzz.js", original, modified)
		if diff == nil {
			return
		}
		for _, hunk := range diff.Hunks {
			if hunk.OriginalCount < 0 || hunk.ModifiedCount < 0 {
				t.Fatalf("negative hunk counts: %+v", hunk)
			}
		}
		_ = diff.FullString()
	})
}
