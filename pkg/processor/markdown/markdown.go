// Package markdown lints JavaScript embedded in Markdown. It finds fenced
// code blocks with goldmark and hands the JavaScript ones to the linter as
// lint.Block values.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gojslint/pkg/langdetect"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/source"
)

// DefaultExtensions are the host file extensions the processor handles.
var DefaultExtensions = []string{".md", ".markdown"}

// Options configures a Processor.
type Options struct {
	// Languages lists extra fence info strings treated as JavaScript.
	// Names go-enry resolves to JavaScript ("js", "javascript", "node",
	// "mjs", "cjs") always qualify.
	Languages []string

	// DetectUnlabeled classifies fences without an info string by content.
	DetectUnlabeled bool

	// Extensions overrides DefaultExtensions.
	Extensions []string
}

// Processor implements lint.Processor for Markdown files.
type Processor struct {
	opts Options
	md   goldmark.Markdown
}

var _ lint.Processor = (*Processor)(nil)

// New creates a Markdown processor.
func New(opts Options) *Processor {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	return &Processor{
		opts: opts,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Supports reports whether path has a Markdown extension.
func (p *Processor) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(p.opts.Extensions, ext)
}

// Extract returns the JavaScript fences of a Markdown document in order.
// Fences whose lines do not share one container prefix, and fences
// containing tab padding, are skipped because fixes could not be mapped
// back into them.
func (p *Processor) Extract(ctx context.Context, content []byte) ([]lint.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}

	doc := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))
	host := source.New("", content)

	var blocks []lint.Block
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if block, ok := p.block(host, fence); ok {
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return blocks, nil
}

func (p *Processor) block(host *source.Text, fence *ast.FencedCodeBlock) (lint.Block, bool) {
	lines := fence.Lines()
	if lines.Len() == 0 {
		return lint.Block{}, false
	}

	var info string
	if fence.Info != nil {
		info = string(fence.Info.Value(host.Content))
	}

	segments := lines.Sliced(0, lines.Len())
	for _, seg := range segments {
		if seg.Padding > 0 {
			return lint.Block{}, false
		}
	}

	first := host.PositionAt(segments[0].Start).Line
	last := host.PositionAt(segments[len(segments)-1].Start).Line
	indent := blockIndent(host, segments)
	start := host.Lines[first-1].StartOffset
	prefix := host.Content[start : start+indent]

	var body bytes.Buffer
	for line := first; line <= last; line++ {
		li := host.Lines[line-1]
		raw := host.Content[li.StartOffset:li.EndOffset]
		switch {
		case bytes.HasPrefix(raw, prefix):
			body.Write(raw[indent:])
		case isBlank(host.Content[li.StartOffset:li.NewlineStart]) && isBlank(prefix):
			body.Write(raw[li.NewlineStart-li.StartOffset:])
		default:
			return lint.Block{}, false
		}
	}

	lang := langdetect.FromInfo(info)
	if lang == "" {
		if !p.opts.DetectUnlabeled || langdetect.Detect(body.Bytes()) != langdetect.JavaScript {
			return lint.Block{}, false
		}
		lang = langdetect.JavaScript
	} else if !langdetect.IsJavaScript(lang, p.opts.Languages...) {
		return lint.Block{}, false
	}

	return lint.Block{
		Lang:   lang,
		Start:  start,
		End:    host.Lines[last-1].EndOffset,
		Line:   first,
		Indent: indent,
		Text:   body.Bytes(),
	}, true
}

// blockIndent is the container prefix width of the first non-blank line.
func blockIndent(host *source.Text, segments []text.Segment) int {
	for _, seg := range segments {
		if isBlank(seg.Value(host.Content)) {
			continue
		}
		line := host.PositionAt(seg.Start).Line
		return seg.Start - host.Lines[line-1].StartOffset
	}
	seg := segments[0]
	return seg.Start - host.Lines[host.PositionAt(seg.Start).Line-1].StartOffset
}

func isBlank(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}
