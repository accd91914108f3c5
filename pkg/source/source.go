// Package source holds the text being linted and converts between byte
// offsets and 1-based line/column positions.
package source

import (
	"bytes"
	"sort"
)

// BOM is the UTF-8 encoding of U+FEFF.
const BOM = "\uFEFF"

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains returns true if the given offset is within this range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Position is a 1-based line and column. Columns count bytes.
type Position struct {
	Line   int
	Column int
}

// Before reports whether p sorts before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Compare returns -1, 0 or +1 depending on the ordering of p and other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Before(other):
		return -1
	case other.Before(p):
		return 1
	default:
		return 0
	}
}

// Location is a start/end pair of positions.
type Location struct {
	Start Position
	End   Position
}

// LineInfo describes one physical line.
type LineInfo struct {
	// StartOffset is the byte index of the first character.
	StartOffset int

	// NewlineStart is the byte index of the line terminator, or the end of
	// the content for the last line.
	NewlineStart int

	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// Text is an immutable piece of source with a precomputed line index.
type Text struct {
	// Path is informational and may be empty.
	Path string

	// Content is the text without a leading BOM.
	Content []byte

	// HasBOM records whether the original input started with a BOM.
	HasBOM bool

	Lines []LineInfo
}

// New creates a Text, stripping a leading BOM.
func New(path string, content []byte) *Text {
	hasBOM := bytes.HasPrefix(content, []byte(BOM))
	if hasBOM {
		content = content[len(BOM):]
	}
	return &Text{
		Path:    path,
		Content: content,
		HasBOM:  hasBOM,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata. Line breaks are \n, \r\n, a lone \r,
// U+2028 and U+2029.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		width := lineBreakWidth(content, idx)
		if width == 0 {
			continue
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: idx,
			EndOffset:    idx + width,
		})
		idx += width - 1
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// lineBreakWidth returns the byte length of the line terminator at idx, or 0.
func lineBreakWidth(content []byte, idx int) int {
	switch content[idx] {
	case '\n':
		return 1
	case '\r':
		if idx+1 < len(content) && content[idx+1] == '\n' {
			return 2
		}
		return 1
	case 0xE2:
		// U+2028 and U+2029 encode as E2 80 A8 / E2 80 A9.
		if idx+2 < len(content) && content[idx+1] == 0x80 &&
			(content[idx+2] == 0xA8 || content[idx+2] == 0xA9) {
			return 3
		}
	}
	return 0
}

// IsLineBreak reports whether a line terminator starts at idx.
func IsLineBreak(content []byte, idx int) bool {
	return idx >= 0 && idx < len(content) && lineBreakWidth(content, idx) > 0
}

// LineCount returns the number of lines.
func (t *Text) LineCount() int {
	return len(t.Lines)
}

// PositionAt converts a byte offset to a 1-based position.
// Offsets past the end clamp to the end of the last line.
func (t *Text) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.Content) {
		offset = len(t.Content)
	}

	lineIdx := sort.Search(len(t.Lines), func(i int) bool {
		return t.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(t.Lines) {
		lineIdx = len(t.Lines) - 1
	}

	return Position{
		Line:   lineIdx + 1,
		Column: offset - t.Lines[lineIdx].StartOffset + 1,
	}
}

// LocationOf converts a byte range to a location.
func (t *Text) LocationOf(r Range) Location {
	return Location{Start: t.PositionAt(r.Start), End: t.PositionAt(r.End)}
}

// Offset converts a 1-based position to a byte offset.
func (t *Text) Offset(pos Position) (int, bool) {
	if pos.Line < 1 || pos.Line > len(t.Lines) || pos.Column < 1 {
		return 0, false
	}
	info := t.Lines[pos.Line-1]
	offset := info.StartOffset + pos.Column - 1
	if offset > info.EndOffset {
		return 0, false
	}
	return offset, true
}

// LineContent returns a 1-based line without its terminator.
func (t *Text) LineContent(line int) []byte {
	if line < 1 || line > len(t.Lines) {
		return nil
	}
	info := t.Lines[line-1]
	return t.Content[info.StartOffset:info.NewlineStart]
}

// Slice returns the bytes covered by r, clamped to the content.
func (t *Text) Slice(r Range) []byte {
	start := max(0, min(r.Start, len(t.Content)))
	end := max(start, min(r.End, len(t.Content)))
	return t.Content[start:end]
}

// WithBOM returns content with the BOM restored if the input had one.
func (t *Text) WithBOM(content []byte) []byte {
	if !t.HasBOM {
		return content
	}
	out := make([]byte, 0, len(BOM)+len(content))
	out = append(out, BOM...)
	return append(out, content...)
}
