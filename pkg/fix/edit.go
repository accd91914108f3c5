// Package fix selects a conflict-free subset of proposed text edits and
// applies it to a source text.
package fix

// TextEdit replaces the half-open byte range [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Len returns the number of bytes replaced.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// IsNoop reports whether applying the edit leaves the text unchanged
// regardless of content, i.e. it replaces nothing with nothing.
func (e TextEdit) IsNoop() bool {
	return e.StartOffset == e.EndOffset && e.NewText == ""
}

// Overlaps reports whether two edits replace intersecting byte ranges.
// Adjacent edits and empty ranges never overlap.
func (e TextEdit) Overlaps(other TextEdit) bool {
	return e.StartOffset < other.EndOffset && other.StartOffset < e.EndOffset
}

// Replace returns an edit replacing [start, end) with text.
func Replace(start, end int, text string) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) TextEdit {
	return Replace(offset, offset, text)
}

// Delete returns an edit removing [start, end).
func Delete(start, end int) TextEdit {
	return Replace(start, end, "")
}

// EditBuilder accumulates text edits that belong to one logical fix and
// merges them into a single edit covering all of them.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, Replace(start, end, newText))
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Merge combines the accumulated edits into one edit spanning all of them,
// using content to fill the gaps. It fails if the edits are invalid or overlap.
func (b *EditBuilder) Merge(content []byte) (TextEdit, error) {
	if len(b.Edits) == 0 {
		return TextEdit{}, ErrNoEdits
	}
	sorted, err := PrepareEdits(b.Edits, len(content))
	if err != nil {
		return TextEdit{}, err
	}
	if len(sorted) == 1 {
		return sorted[0], nil
	}

	start := sorted[0].StartOffset
	end := sorted[len(sorted)-1].EndOffset
	merged := ApplyEdits(content[start:end], shift(sorted, -start))

	return Replace(start, end, string(merged)), nil
}

func shift(edits []TextEdit, delta int) []TextEdit {
	out := make([]TextEdit, len(edits))
	for i, e := range edits {
		out[i] = Replace(e.StartOffset+delta, e.EndOffset+delta, e.NewText)
	}
	return out
}
