package fix

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Original is the original file content.
	Original []byte

	// Modified is the modified file content.
	Modified []byte

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk represents a single hunk in a unified diff.
type DiffHunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the original.
	OriginalStart int

	// OriginalCount is the number of lines from the original in this hunk.
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in the modified.
	ModifiedStart int

	// ModifiedCount is the number of lines from the modified in this hunk.
	ModifiedCount int

	// Lines contains the diff lines in this hunk.
	Lines []DiffLine
}

// DiffLine represents a single line in a diff hunk.
type DiffLine struct {
	// Kind indicates whether this is a context, add, or remove line.
	Kind DiffLineKind

	// Content is the line content (without the diff prefix).
	Content string

	// NoNewline marks the last line of a file that lacks a trailing newline.
	NoNewline bool
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}

	before, after := splitLines(original), splitLines(modified)
	matcher := difflib.NewMatcherWithJunk(before, after, false, nil)

	diff := &Diff{Path: path, Original: original, Modified: modified}
	for _, group := range matcher.GetGroupedOpCodes(contextLines) {
		hunk := buildHunk(group, before, after)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				diff.Additions++
			case DiffLineRemove:
				diff.Deletions++
			case DiffLineContext:
			}
		}
		diff.Hunks = append(diff.Hunks, hunk)
	}
	if diff.Additions+diff.Deletions == 0 {
		return nil
	}
	return diff
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	prefixes := map[DiffLineKind]byte{DiffLineContext: ' ', DiffLineAdd: '+', DiffLineRemove: '-'}
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			builder.WriteByte(prefixes[line.Kind])
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
			if line.NoNewline {
				builder.WriteString("\\ No newline at end of file\n")
			}
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits content after each newline. Every line keeps its
// terminator, so a final line without one differs from the same text with it.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// buildHunk converts one group of difflib opcodes to a hunk.
func buildHunk(group []difflib.OpCode, before, after []string) DiffHunk {
	first, last := group[0], group[len(group)-1]
	hunk := DiffHunk{
		OriginalStart: first.I1 + 1,
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: first.J1 + 1,
		ModifiedCount: last.J2 - first.J1,
	}
	// An empty side starts at the line before.
	if hunk.OriginalCount == 0 {
		hunk.OriginalStart--
	}
	if hunk.ModifiedCount == 0 {
		hunk.ModifiedStart--
	}

	add := func(kind DiffLineKind, lines []string) {
		for _, line := range lines {
			content, terminated := strings.CutSuffix(line, "\n")
			hunk.Lines = append(hunk.Lines, DiffLine{Kind: kind, Content: content, NoNewline: !terminated})
		}
	}
	for _, op := range group {
		switch op.Tag {
		case 'e':
			add(DiffLineContext, before[op.I1:op.I2])
		case 'd':
			add(DiffLineRemove, before[op.I1:op.I2])
		case 'i':
			add(DiffLineAdd, after[op.J1:op.J2])
		case 'r':
			add(DiffLineRemove, before[op.I1:op.I2])
			add(DiffLineAdd, after[op.J1:op.J2])
		}
	}
	return hunk
}
