package lint

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/gojslint/pkg/finding"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/source"
)

// Processor extracts JavaScript blocks from files that are not JavaScript,
// such as fenced code blocks in Markdown.
type Processor interface {
	// Supports reports whether the processor handles the file.
	Supports(path string) bool

	// Extract returns the JavaScript blocks of a host file in document order.
	Extract(ctx context.Context, content []byte) ([]Block, error)
}

// Block is a piece of JavaScript embedded in a host file.
type Block struct {
	// Lang is the block language as written (e.g., "js").
	Lang string

	// Start and End delimit the block content in the host file. End is just
	// past the last content line, line terminator included.
	Start int
	End   int

	// Line is the 1-based host line of the first content line.
	Line int

	// Indent is the number of bytes stripped from the start of every
	// content line.
	Indent int

	// Text is the dedented block content.
	Text []byte
}

// hostMapper translates positions from a block back into its host file.
type hostMapper struct {
	host  *source.Text
	block Block
	text  *source.Text
}

func newHostMapper(host *source.Text, block Block) *hostMapper {
	return &hostMapper{host: host, block: block, text: source.New("", block.Text)}
}

// position maps a 1-based block position to the host.
func (m *hostMapper) position(line, column int) (int, int) {
	return m.block.Line + line - 1, column + m.block.Indent
}

// offset maps a block byte offset to a host byte offset.
func (m *hostMapper) offset(off int) (int, bool) {
	pos := m.text.PositionAt(off)
	line, column := m.position(pos.Line, pos.Column)
	return m.host.Offset(source.Position{Line: line, Column: column})
}

// edit maps a block edit to the host. Multi-line edits of indented blocks
// cannot be mapped because their text is dedented.
func (m *hostMapper) edit(e fix.TextEdit) (fix.TextEdit, bool) {
	if m.block.Indent > 0 && m.text.PositionAt(e.StartOffset).Line != m.text.PositionAt(e.EndOffset).Line {
		return fix.TextEdit{}, false
	}
	start, okStart := m.offset(e.StartOffset)
	end, okEnd := m.offset(e.EndOffset)
	if !okStart || !okEnd {
		return fix.TextEdit{}, false
	}
	return fix.Replace(start, end, e.NewText), true
}

// finding maps a block finding to the host.
func (m *hostMapper) finding(f finding.Finding) finding.Finding {
	f.Line, f.Column = m.position(f.Line, f.Column)
	if f.EndLine > 0 {
		f.EndLine, f.EndColumn = m.position(f.EndLine, f.EndColumn)
	}
	if f.Fix != nil {
		if mapped, ok := m.edit(*f.Fix); ok {
			f.Fix = &mapped
		} else {
			f.Fix = nil
		}
	}
	suggestions := make([]finding.Suggestion, 0, len(f.Suggestions))
	for _, s := range f.Suggestions {
		if mapped, ok := m.edit(s.Fix); ok {
			suggestions = append(suggestions, finding.Suggestion{Desc: s.Desc, Fix: mapped})
		}
	}
	f.Suggestions = suggestions
	if len(f.Suggestions) == 0 {
		f.Suggestions = nil
	}
	return f
}

// reindent restores the block indentation on a fixed block text.
func (m *hostMapper) reindent(text []byte) []byte {
	if m.block.Indent == 0 {
		return text
	}
	prefix := m.host.Content[m.block.Start : m.block.Start+m.block.Indent]
	lines := bytes.SplitAfter(text, []byte{'\n'})
	var out bytes.Buffer
	for _, line := range lines {
		if len(bytes.TrimRight(line, "\r\n")) > 0 {
			out.Write(prefix)
		}
		out.Write(line)
	}
	return out.Bytes()
}

// AnalyzeHost runs AnalyzeAndFix over every block the processor extracts
// from a host file, maps the findings back into the host and splices fixed
// blocks into the returned output. Without opts.Fix it only analyzes.
func (l *Linter) AnalyzeHost(
	ctx context.Context,
	content []byte,
	proc Processor,
	opts Options,
) (*FixReport, error) {
	host := source.New(opts.Path, content)
	blocks, err := proc.Extract(ctx, host.Content)
	if err != nil {
		return nil, fmt.Errorf("extract blocks: %w", err)
	}

	report := &FixReport{Output: content, RuleErrors: make(map[string]error)}
	var splices []fix.TextEdit

	for _, block := range blocks {
		blockReport, err := l.AnalyzeAndFix(ctx, block.Text, opts)
		if err != nil {
			return nil, fmt.Errorf("block at line %d: %w", block.Line, err)
		}
		mapper := newHostMapper(host, block)

		for _, f := range blockReport.Messages {
			report.Messages = append(report.Messages, mapper.finding(f))
		}
		for _, f := range blockReport.SuppressedMessages {
			report.SuppressedMessages = append(report.SuppressedMessages, mapper.finding(f))
		}
		for id, err := range blockReport.RuleErrors {
			report.RuleErrors[id] = err
		}
		report.Passes = max(report.Passes, blockReport.Passes)
		report.Circular = report.Circular || blockReport.Circular

		if blockReport.Fixed {
			report.Fixed = true
			splices = append(splices, fix.Replace(block.Start, block.End, string(mapper.reindent(blockReport.Output))))
		}
	}

	if len(splices) > 0 {
		slices.SortFunc(splices, func(a, b fix.TextEdit) int { return a.StartOffset - b.StartOffset })
		report.Output = host.WithBOM(fix.ApplyEdits(host.Content, splices))
	}
	finding.Sort(report.Messages)
	finding.Sort(report.SuppressedMessages)

	return report, nil
}
