package fix

import "bytes"

// ApplyEdits applies sorted, non-overlapping edits to content with a single
// forward cursor. Edits must come from Select or PrepareEdits.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - e.Len()
	}

	var out bytes.Buffer
	out.Grow(max(0, len(content)+delta))

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// Result is the outcome of applying a set of candidates.
type Result struct {
	// Output is the new text.
	Output []byte

	// Fixed is true if at least one candidate was applied. The output may
	// still equal the input when the applied edits rewrite text to itself.
	Fixed bool

	// Applied and Rejected partition the candidates.
	Applied  []Candidate
	Rejected []Candidate
}

// Apply selects non-overlapping candidates and applies them to content.
func Apply(content []byte, candidates []Candidate) Result {
	applied, rejected := Select(candidates, len(content))
	output := ApplyEdits(content, Edits(applied))

	return Result{
		Output:   output,
		Fixed:    len(applied) > 0,
		Applied:  applied,
		Rejected: rejected,
	}
}
