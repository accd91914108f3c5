package lint

import (
	"unicode/utf8"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/directive"
	"github.com/yaklabco/gojslint/pkg/source"
)

// Token helpers.

// FirstToken returns the first token of a node, or false for nodes without tokens.
func FirstToken(prog *ast.Program, n *ast.Node) (ast.Token, bool) {
	if prog == nil || n == nil {
		return ast.Token{}, false
	}
	return prog.TokenAt(n.FirstToken)
}

// LastToken returns the last token of a node, or false for nodes without tokens.
func LastToken(prog *ast.Program, n *ast.Node) (ast.Token, bool) {
	if prog == nil || n == nil {
		return ast.Token{}, false
	}
	return prog.TokenAt(n.LastToken)
}

// TokenAfter returns the token following the node, or false at end of input.
func TokenAfter(prog *ast.Program, n *ast.Node) (ast.Token, bool) {
	if prog == nil || n == nil || n.LastToken < 0 {
		return ast.Token{}, false
	}
	tok, ok := prog.TokenAt(n.LastToken + 1)
	if !ok || tok.Kind == ast.TokenEOF {
		return ast.Token{}, false
	}
	return tok, true
}

// TokenBefore returns the token preceding the node, or false at start of input.
func TokenBefore(prog *ast.Program, n *ast.Node) (ast.Token, bool) {
	if prog == nil || n == nil || n.FirstToken < 1 {
		return ast.Token{}, false
	}
	return prog.TokenAt(n.FirstToken - 1)
}

// Node helpers.

// NodeText returns the source text of a node.
func NodeText(prog *ast.Program, n *ast.Node) string {
	if prog == nil || n == nil {
		return ""
	}
	return prog.Text(n)
}

// IsMemberCall returns true if n is a call of object.property, e.g. console.log().
func IsMemberCall(n *ast.Node, object string) bool {
	if n == nil || n.Kind != ast.NodeCallExpression || n.Callee == nil {
		return false
	}
	callee := n.Callee
	return callee.Kind == ast.NodeMemberExpression && callee.Object.IsIdentifier(object)
}

// CalleeName returns the name of a plain identifier callee, or "".
func CalleeName(n *ast.Node) string {
	if n == nil || n.Callee == nil || n.Callee.Kind != ast.NodeIdentifier {
		return ""
	}
	return n.Callee.Name
}

// Line-based helpers.

// LineContent returns the content of the specified 1-based line number.
// Returns nil if the line number is out of range.
func LineContent(src *source.Text, lineNum int) []byte {
	if src == nil {
		return nil
	}
	return src.LineContent(lineNum)
}

// TrailingWhitespaceRange returns the byte range of trailing whitespace on a line.
// Returns (-1, -1) if no trailing whitespace or line is out of range.
func TrailingWhitespaceRange(src *source.Text, lineNum int) (int, int) {
	if src == nil || lineNum < 1 || lineNum > src.LineCount() {
		return -1, -1
	}
	line := src.Lines[lineNum-1]
	content := src.Content[line.StartOffset:line.NewlineStart]

	end := len(content)
	for end > 0 {
		r, size := utf8.DecodeLastRune(content[:end])
		if !directive.IsSpace(r) {
			break
		}
		end -= size
	}

	if end == len(content) {
		return -1, -1
	}
	return line.StartOffset + end, line.NewlineStart
}

// IsBlankLine returns true if the line contains only whitespace.
func IsBlankLine(src *source.Text, lineNum int) bool {
	start, end := TrailingWhitespaceRange(src, lineNum)
	content := LineContent(src, lineNum)
	if len(content) == 0 {
		return true
	}
	return start >= 0 && end-start == len(content)
}

// CommentAt returns the comment containing offset, or false.
func CommentAt(prog *ast.Program, offset int) (ast.Comment, bool) {
	if prog == nil {
		return ast.Comment{}, false
	}
	for _, c := range prog.Comments {
		if c.Range.Start <= offset && offset < c.Range.End {
			return c, true
		}
	}
	return ast.Comment{}, false
}
