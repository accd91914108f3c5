// Package js provides a JavaScript parser producing ast.Program trees with
// tokens, comments and byte ranges.
package js

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gojslint/pkg/ast"
	"github.com/yaklabco/gojslint/pkg/source"
)

// Parser parses script-mode JavaScript.
// Classes, modules and JSX are not supported and report a syntax error.
type Parser struct{}

// New creates a parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts source text into a Program.
//
// The method:
//  1. Checks for context cancellation.
//  2. Tokenizes the content, collecting comments.
//  3. Builds the syntax tree by recursive descent.
//
// A *SyntaxError is returned for malformed input.
func (p *Parser) Parse(ctx context.Context, src *source.Text) (*ast.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	lex := newLexer(src)
	if err := lex.tokenize(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	st := &state{src: src, tokens: lex.tokens}
	root, err := st.parseProgram()
	if err != nil {
		return nil, err
	}

	return &ast.Program{
		Node:     root,
		Source:   src,
		Tokens:   lex.tokens,
		Comments: lex.comments,
	}, nil
}

// bailout carries a syntax error up through the recursive descent.
type bailout struct {
	err *SyntaxError
}

// state holds the cursor over the token stream.
type state struct {
	src    *source.Text
	tokens []ast.Token
	pos    int

	funcDepth int
}

func (s *state) parseProgram() (root *ast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			root = nil
			err = b.err
		}
	}()

	root = ast.NewNode(ast.NodeProgram)
	for !s.atEOF() {
		root.Append(s.parseStatement())
	}
	root.Range = source.Range{Start: 0, End: len(s.src.Content)}
	if len(s.tokens) > 0 {
		root.FirstToken = 0
		root.LastToken = len(s.tokens) - 1
	}
	return root, nil
}

func (s *state) atEOF() bool {
	return s.pos >= len(s.tokens)
}

func (s *state) cur() ast.Token {
	return s.peek(0)
}

func (s *state) peek(n int) ast.Token {
	idx := s.pos + n
	if idx >= len(s.tokens) {
		end := len(s.src.Content)
		return ast.Token{Kind: ast.TokenEOF, Range: source.Range{Start: end, End: end}, NewlineBefore: true}
	}
	return s.tokens[idx]
}

func (s *state) next() ast.Token {
	tok := s.cur()
	if !s.atEOF() {
		s.pos++
	}
	return tok
}

// is reports whether the current token is the punctuator or keyword v.
func (s *state) is(v string) bool {
	return s.cur().Is(v)
}

// isName reports whether the current token is the identifier v.
func (s *state) isName(v string) bool {
	tok := s.cur()
	return tok.Kind == ast.TokenIdentifier && tok.Value == v
}

func (s *state) eat(v string) bool {
	if s.is(v) {
		s.pos++
		return true
	}
	return false
}

func (s *state) expect(v string) {
	if !s.eat(v) {
		s.unexpected()
	}
}

func (s *state) fail(offset int, msg string) {
	panic(bailout{err: &SyntaxError{Message: msg, Offset: offset, Position: s.src.PositionAt(offset)}})
}

func (s *state) unexpected() {
	tok := s.cur()
	if tok.Kind == ast.TokenEOF {
		s.fail(tok.Range.Start, "Unexpected token (end of input)")
	}
	s.fail(tok.Range.Start, "Unexpected token "+tok.Value)
}

// start creates a node whose span begins at the current token.
func (s *state) start(kind ast.NodeKind) *ast.Node {
	n := ast.NewNode(kind)
	n.FirstToken = s.pos
	return n
}

// startAt creates a node whose span begins where other begins.
func (s *state) startAt(kind ast.NodeKind, other *ast.Node) *ast.Node {
	n := ast.NewNode(kind)
	n.FirstToken = other.FirstToken
	n.Range.Start = other.Range.Start
	return n
}

// finish closes a node's span at the last consumed token.
func (s *state) finish(n *ast.Node) *ast.Node {
	n.LastToken = s.pos - 1
	if n.FirstToken >= 0 && n.FirstToken < len(s.tokens) {
		n.Range.Start = s.tokens[n.FirstToken].Range.Start
	}
	if n.LastToken >= 0 {
		n.Range.End = s.tokens[n.LastToken].Range.End
	}
	return n
}

// consumeSemicolon applies automatic semicolon insertion.
func (s *state) consumeSemicolon() {
	if s.eat(";") {
		return
	}
	tok := s.cur()
	if tok.Kind == ast.TokenEOF || tok.Is("}") || tok.NewlineBefore {
		return
	}
	s.unexpected()
}

// canInsertSemicolon reports whether a restricted production ends here.
func (s *state) canInsertSemicolon() bool {
	tok := s.cur()
	return tok.Kind == ast.TokenEOF || tok.Is(";") || tok.Is("}") || tok.NewlineBefore
}

func (s *state) parseStatement() *ast.Node {
	tok := s.cur()

	if tok.Kind == ast.TokenKeyword {
		switch tok.Value {
		case "var", "const":
			n := s.parseVariableDeclaration(false)
			s.consumeSemicolon()
			return s.finish(n)
		case "let":
			if next := s.peek(1); next.Kind == ast.TokenIdentifier || next.Is("[") || next.Is("{") ||
				next.Kind == ast.TokenKeyword && next.Value == "yield" {
				n := s.parseVariableDeclaration(false)
				s.consumeSemicolon()
				return s.finish(n)
			}
		case "function":
			return s.parseFunction(ast.NodeFunctionDeclaration, true)
		case "if":
			return s.parseIf()
		case "for":
			return s.parseFor()
		case "while":
			return s.parseWhile()
		case "do":
			return s.parseDoWhile()
		case "return":
			return s.parseReturn()
		case "throw":
			return s.parseThrow()
		case "break", "continue":
			return s.parseJump()
		case "try":
			return s.parseTry()
		case "switch":
			return s.parseSwitch()
		case "debugger":
			n := s.start(ast.NodeDebuggerStatement)
			s.next()
			s.consumeSemicolon()
			return s.finish(n)
		case "class", "import", "export", "with":
			s.fail(tok.Range.Start, "Unsupported syntax '"+tok.Value+"'")
		}
	}

	switch {
	case tok.Is("{"):
		return s.parseBlock()
	case tok.Is(";"):
		n := s.start(ast.NodeEmptyStatement)
		s.next()
		return s.finish(n)
	case tok.Kind == ast.TokenIdentifier && tok.Value == "async" &&
		s.peek(1).Is("function") && !s.peek(1).NewlineBefore:
		return s.parseFunction(ast.NodeFunctionDeclaration, true)
	case tok.Kind == ast.TokenIdentifier && s.peek(1).Is(":"):
		n := s.start(ast.NodeLabeledStatement)
		label := s.parseIdentifier()
		s.expect(":")
		n.ID = label
		n.Body = s.parseStatement()
		n.Append(label, n.Body)
		return s.finish(n)
	}

	n := s.start(ast.NodeExpressionStatement)
	expr := s.parseExpression(false)
	n.Argument = expr
	n.Append(expr)
	s.consumeSemicolon()
	return s.finish(n)
}

func (s *state) parseBlock() *ast.Node {
	n := s.start(ast.NodeBlockStatement)
	s.expect("{")
	for !s.is("}") {
		if s.atEOF() {
			s.unexpected()
		}
		n.Append(s.parseStatement())
	}
	s.next()
	return s.finish(n)
}

// parseVariableDeclaration parses declarators without the trailing semicolon.
func (s *state) parseVariableDeclaration(noIn bool) *ast.Node {
	n := s.start(ast.NodeVariableDeclaration)
	n.Qualifier = s.next().Value
	for {
		decl := s.start(ast.NodeVariableDeclarator)
		decl.ID = s.parseBindingTarget()
		decl.Append(decl.ID)
		if s.eat("=") {
			decl.Init = s.parseAssignment(noIn)
			decl.Append(decl.Init)
		}
		n.Append(s.finish(decl))
		if !s.eat(",") {
			break
		}
	}
	return n
}

// parseBindingTarget parses an identifier or a destructuring pattern.
func (s *state) parseBindingTarget() *ast.Node {
	switch {
	case s.is("["):
		return s.parseArray()
	case s.is("{"):
		return s.parseObject()
	default:
		return s.parseIdentifier()
	}
}

// parseBindingElement parses a parameter: a target with an optional default,
// or a rest element.
func (s *state) parseBindingElement() *ast.Node {
	if s.is("...") {
		n := s.start(ast.NodeRestElement)
		s.next()
		n.Argument = s.parseBindingTarget()
		n.Append(n.Argument)
		return s.finish(n)
	}
	target := s.parseBindingTarget()
	if !s.is("=") {
		return target
	}
	s.next()
	n := s.startAt(ast.NodeAssignmentPattern, target)
	n.Left = target
	n.Right = s.parseAssignment(false)
	n.Append(n.Left, n.Right)
	return s.finish(n)
}

func (s *state) parseIdentifier() *ast.Node {
	tok := s.cur()
	if tok.Kind != ast.TokenIdentifier && !(tok.Kind == ast.TokenKeyword && tok.Value == "yield") {
		s.unexpected()
	}
	n := s.start(ast.NodeIdentifier)
	n.Name = s.next().Value
	return s.finish(n)
}

// parseFunction parses declarations and expressions alike.
func (s *state) parseFunction(kind ast.NodeKind, requireName bool) *ast.Node {
	n := s.start(kind)
	if s.isName("async") {
		n.Qualifier = "async"
		s.next()
	}
	s.expect("function")
	if s.eat("*") {
		n.Operator = "*"
	}
	if s.cur().Kind == ast.TokenIdentifier {
		n.ID = s.parseIdentifier()
		n.Append(n.ID)
	} else if requireName {
		s.unexpected()
	}
	s.parseParams(n)
	n.Body = s.parseFunctionBody()
	n.Append(n.Body)
	return s.finish(n)
}

func (s *state) parseParams(fn *ast.Node) {
	s.expect("(")
	for !s.is(")") {
		fn.Append(s.parseBindingElement())
		if !s.is(")") {
			s.expect(",")
		}
	}
	s.next()
}

func (s *state) parseFunctionBody() *ast.Node {
	s.funcDepth++
	defer func() { s.funcDepth-- }()
	return s.parseBlock()
}

func (s *state) parseParenthesized() *ast.Node {
	s.expect("(")
	expr := s.parseExpression(false)
	s.expect(")")
	return expr
}

func (s *state) parseIf() *ast.Node {
	n := s.start(ast.NodeIfStatement)
	s.next()
	test := s.parseParenthesized()
	n.Left = test
	n.Body = s.parseStatement()
	n.Append(test, n.Body)
	if s.eat("else") {
		n.Right = s.parseStatement()
		n.Append(n.Right)
	}
	return s.finish(n)
}

func (s *state) parseWhile() *ast.Node {
	n := s.start(ast.NodeWhileStatement)
	s.next()
	n.Left = s.parseParenthesized()
	n.Body = s.parseStatement()
	n.Append(n.Left, n.Body)
	return s.finish(n)
}

func (s *state) parseDoWhile() *ast.Node {
	n := s.start(ast.NodeDoWhileStatement)
	s.next()
	n.Body = s.parseStatement()
	s.expect("while")
	n.Left = s.parseParenthesized()
	n.Append(n.Body, n.Left)
	// A semicolon after do-while is always optional.
	s.eat(";")
	return s.finish(n)
}

func (s *state) parseFor() *ast.Node {
	n := s.start(ast.NodeForStatement)
	s.next()
	if s.isName("await") {
		s.next()
	}
	s.expect("(")

	var init *ast.Node
	switch {
	case s.is(";"):
	case s.is("var") || s.is("const") || s.is("let"):
		init = s.finish(s.parseVariableDeclaration(true))
	default:
		init = s.parseExpression(true)
	}

	if init != nil && (s.is("in") || s.isName("of")) {
		if s.next().Value == "in" {
			n.Kind = ast.NodeForInStatement
			n.Right = s.parseExpression(false)
		} else {
			n.Kind = ast.NodeForOfStatement
			n.Right = s.parseAssignment(false)
		}
		n.Left = init
		s.expect(")")
		n.Body = s.parseStatement()
		n.Append(n.Left, n.Right, n.Body)
		return s.finish(n)
	}

	n.Init = init
	s.expect(";")
	if !s.is(";") {
		n.Left = s.parseExpression(false)
	}
	s.expect(";")
	if !s.is(")") {
		n.Right = s.parseExpression(false)
	}
	s.expect(")")
	n.Body = s.parseStatement()
	n.Append(n.Init, n.Left, n.Right, n.Body)
	return s.finish(n)
}

func (s *state) parseReturn() *ast.Node {
	tok := s.cur()
	if s.funcDepth == 0 {
		s.fail(tok.Range.Start, "'return' outside of function")
	}
	n := s.start(ast.NodeReturnStatement)
	s.next()
	if !s.canInsertSemicolon() {
		n.Argument = s.parseExpression(false)
		n.Append(n.Argument)
	}
	s.consumeSemicolon()
	return s.finish(n)
}

func (s *state) parseThrow() *ast.Node {
	n := s.start(ast.NodeThrowStatement)
	s.next()
	if s.cur().NewlineBefore {
		s.fail(s.cur().Range.Start, "Illegal newline after throw")
	}
	n.Argument = s.parseExpression(false)
	n.Append(n.Argument)
	s.consumeSemicolon()
	return s.finish(n)
}

func (s *state) parseJump() *ast.Node {
	kind := ast.NodeBreakStatement
	if s.is("continue") {
		kind = ast.NodeContinueStatement
	}
	n := s.start(kind)
	s.next()
	if s.cur().Kind == ast.TokenIdentifier && !s.cur().NewlineBefore {
		n.ID = s.parseIdentifier()
		n.Append(n.ID)
	}
	s.consumeSemicolon()
	return s.finish(n)
}

func (s *state) parseTry() *ast.Node {
	n := s.start(ast.NodeTryStatement)
	s.next()
	n.Body = s.parseBlock()
	n.Append(n.Body)
	if s.is("catch") {
		clause := s.start(ast.NodeCatchClause)
		s.next()
		if s.eat("(") {
			clause.ID = s.parseBindingTarget()
			clause.Append(clause.ID)
			s.expect(")")
		}
		clause.Body = s.parseBlock()
		clause.Append(clause.Body)
		n.Left = s.finish(clause)
		n.Append(n.Left)
	}
	if s.eat("finally") {
		n.Right = s.parseBlock()
		n.Append(n.Right)
	}
	if n.Left == nil && n.Right == nil {
		s.fail(s.cur().Range.Start, "Missing catch or finally clause")
	}
	return s.finish(n)
}

func (s *state) parseSwitch() *ast.Node {
	n := s.start(ast.NodeSwitchStatement)
	s.next()
	n.Argument = s.parseParenthesized()
	n.Append(n.Argument)
	s.expect("{")
	seenDefault := false
	for !s.eat("}") {
		c := s.start(ast.NodeSwitchCase)
		switch {
		case s.eat("case"):
			c.Left = s.parseExpression(false)
			c.Append(c.Left)
		case s.is("default"):
			if seenDefault {
				s.fail(s.cur().Range.Start, "Multiple default clauses")
			}
			seenDefault = true
			s.next()
		default:
			s.unexpected()
		}
		s.expect(":")
		for !s.is("case") && !s.is("default") && !s.is("}") {
			if s.atEOF() {
				s.unexpected()
			}
			c.Append(s.parseStatement())
		}
		n.Append(s.finish(c))
	}
	return s.finish(n)
}

// AsSyntaxError extracts a *SyntaxError from err.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var syntaxErr *SyntaxError
	ok := errors.As(err, &syntaxErr)
	return syntaxErr, ok
}
