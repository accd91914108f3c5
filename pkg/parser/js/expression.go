package js

import (
	"github.com/yaklabco/gojslint/pkg/ast"
)

//nolint:gochecknoglobals // Static lookup tables.
var (
	binaryPrecedence = map[string]int{
		"??": 1,
		"||": 2,
		"&&": 3,
		"|":  4,
		"^":  5,
		"&":  6,
		"==": 7, "!=": 7, "===": 7, "!==": 7,
		"<": 8, ">": 8, "<=": 8, ">=": 8, "instanceof": 8, "in": 8,
		"<<": 9, ">>": 9, ">>>": 9,
		"+": 10, "-": 10,
		"*": 11, "/": 11, "%": 11,
		"**": 12,
	}

	assignmentOperators = map[string]bool{
		"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
		"**=": true, "<<=": true, ">>=": true, ">>>=": true, "&=": true,
		"|=": true, "^=": true, "&&=": true, "||=": true, "??=": true,
	}

	unaryOperators = map[string]bool{
		"!": true, "~": true, "+": true, "-": true,
		"typeof": true, "void": true, "delete": true,
	}
)

// parseExpression parses a comma-separated sequence. noIn disables the "in"
// operator for for-statement heads.
func (s *state) parseExpression(noIn bool) *ast.Node {
	first := s.parseAssignment(noIn)
	if !s.is(",") {
		return first
	}
	n := s.startAt(ast.NodeSequenceExpression, first)
	n.Append(first)
	for s.eat(",") {
		n.Append(s.parseAssignment(noIn))
	}
	return s.finish(n)
}

func (s *state) parseAssignment(noIn bool) *ast.Node {
	if s.isArrowAhead() {
		return s.parseArrow(noIn)
	}
	if s.is("yield") && s.funcDepth > 0 {
		return s.parseYield(noIn)
	}

	left := s.parseConditional(noIn)
	op := s.cur()
	if op.Kind != ast.TokenPunctuator || !assignmentOperators[op.Value] {
		return left
	}
	s.next()
	n := s.startAt(ast.NodeAssignmentExpression, left)
	n.Operator = op.Value
	n.Left = left
	n.Right = s.parseAssignment(noIn)
	n.Append(n.Left, n.Right)
	return s.finish(n)
}

func (s *state) parseYield(noIn bool) *ast.Node {
	n := s.start(ast.NodeUnaryExpression)
	n.Operator = s.next().Value
	if s.eat("*") {
		n.Operator += "*"
	}
	if !s.canInsertSemicolon() && !s.is(")") && !s.is("]") && !s.is(",") && !s.is(":") {
		n.Argument = s.parseAssignment(noIn)
		n.Append(n.Argument)
	}
	return s.finish(n)
}

// isArrowAhead looks for "x =>", "(...) =>" or their async forms.
func (s *state) isArrowAhead() bool {
	offset := 0
	if s.isName("async") && !s.peek(1).NewlineBefore &&
		(s.peek(1).Kind == ast.TokenIdentifier || s.peek(1).Is("(")) {
		offset = 1
	}
	tok := s.peek(offset)
	if tok.Kind == ast.TokenIdentifier {
		arrow := s.peek(offset + 1)
		return arrow.Is("=>") && !arrow.NewlineBefore
	}
	if !tok.Is("(") {
		return false
	}
	closing := s.matchingParen(s.pos + offset)
	if closing < 0 || closing+1 >= len(s.tokens) {
		return false
	}
	arrow := s.tokens[closing+1]
	return arrow.Is("=>") && !arrow.NewlineBefore
}

// matchingParen returns the index of the token closing the "(" at open.
func (s *state) matchingParen(open int) int {
	depth := 0
	for idx := open; idx < len(s.tokens); idx++ {
		switch tok := s.tokens[idx]; {
		case tok.Is("(") || tok.Is("[") || tok.Is("{"):
			depth++
		case tok.Is(")") || tok.Is("]") || tok.Is("}"):
			depth--
			if depth == 0 {
				if !tok.Is(")") {
					return -1
				}
				return idx
			}
		}
	}
	return -1
}

func (s *state) parseArrow(noIn bool) *ast.Node {
	n := s.start(ast.NodeArrowFunctionExpression)
	if s.isName("async") && !s.peek(1).Is("=>") {
		n.Qualifier = "async"
		s.next()
	}
	if s.cur().Kind == ast.TokenIdentifier {
		n.Append(s.parseIdentifier())
	} else {
		s.parseParams(n)
	}
	s.expect("=>")
	if s.is("{") {
		n.Body = s.parseFunctionBody()
	} else {
		s.funcDepth++
		n.Body = s.parseAssignment(noIn)
		s.funcDepth--
	}
	n.Append(n.Body)
	return s.finish(n)
}

func (s *state) parseConditional(noIn bool) *ast.Node {
	test := s.parseBinary(0, noIn)
	if !s.eat("?") {
		return test
	}
	n := s.startAt(ast.NodeConditionalExpression, test)
	n.Left = s.parseAssignment(false)
	s.expect(":")
	n.Right = s.parseAssignment(noIn)
	n.Argument = test
	n.Append(test, n.Left, n.Right)
	return s.finish(n)
}

func (s *state) binaryOperator(noIn bool) (string, int) {
	tok := s.cur()
	if tok.Kind != ast.TokenPunctuator && tok.Kind != ast.TokenKeyword {
		return "", 0
	}
	if noIn && tok.Value == "in" {
		return "", 0
	}
	prec, ok := binaryPrecedence[tok.Value]
	if !ok {
		return "", 0
	}
	return tok.Value, prec
}

// parseBinary implements precedence climbing. "**" is right-associative.
func (s *state) parseBinary(minPrec int, noIn bool) *ast.Node {
	left := s.parseUnary()
	for {
		op, prec := s.binaryOperator(noIn)
		if prec == 0 || prec <= minPrec {
			return left
		}
		s.next()
		nextMin := prec
		if op == "**" {
			nextMin = prec - 1
		}
		right := s.parseBinary(nextMin, noIn)

		kind := ast.NodeBinaryExpression
		if op == "&&" || op == "||" || op == "??" {
			kind = ast.NodeLogicalExpression
		}
		n := s.startAt(kind, left)
		n.Operator = op
		n.Left = left
		n.Right = right
		n.Append(left, right)
		left = s.finish(n)
	}
}

func (s *state) parseUnary() *ast.Node {
	tok := s.cur()
	if (tok.Kind == ast.TokenPunctuator || tok.Kind == ast.TokenKeyword) && unaryOperators[tok.Value] ||
		tok.Kind == ast.TokenIdentifier && tok.Value == "await" && s.startsExpression(s.peek(1)) {
		n := s.start(ast.NodeUnaryExpression)
		n.Operator = s.next().Value
		n.Argument = s.parseUnary()
		n.Append(n.Argument)
		return s.finish(n)
	}
	if tok.Is("++") || tok.Is("--") {
		n := s.start(ast.NodeUpdateExpression)
		n.Operator = s.next().Value
		n.Qualifier = "prefix"
		n.Argument = s.parseUnary()
		n.Append(n.Argument)
		return s.finish(n)
	}

	expr := s.parseLeftHandSide()
	if post := s.cur(); (post.Is("++") || post.Is("--")) && !post.NewlineBefore {
		s.next()
		n := s.startAt(ast.NodeUpdateExpression, expr)
		n.Operator = post.Value
		n.Argument = expr
		n.Append(expr)
		return s.finish(n)
	}
	return expr
}

// startsExpression reports whether tok can begin an operand.
func (s *state) startsExpression(tok ast.Token) bool {
	if tok.NewlineBefore {
		return false
	}
	switch tok.Kind {
	case ast.TokenIdentifier, ast.TokenString, ast.TokenNumeric, ast.TokenTemplate,
		ast.TokenRegExp, ast.TokenBoolean, ast.TokenNull:
		return true
	case ast.TokenKeyword:
		return tok.Value == "this" || tok.Value == "function" || tok.Value == "new" ||
			unaryOperators[tok.Value]
	case ast.TokenPunctuator:
		return tok.Is("(") || tok.Is("[") || tok.Is("{") || tok.Is("!") || tok.Is("~") ||
			tok.Is("-") || tok.Is("+")
	default:
		return false
	}
}

func (s *state) parseLeftHandSide() *ast.Node {
	var expr *ast.Node
	if s.is("new") {
		expr = s.parseNew()
	} else {
		expr = s.parsePrimary()
	}
	return s.parseCallTail(expr, true)
}

func (s *state) parseNew() *ast.Node {
	n := s.start(ast.NodeNewExpression)
	s.next()
	if s.is(".") {
		// new.target
		meta := s.finish(s.startIdentifierAt(n.FirstToken, "new"))
		s.next()
		n.Kind = ast.NodeMemberExpression
		n.Object = meta
		n.Property = s.parsePropertyName()
		n.Append(n.Object, n.Property)
		return s.finish(n)
	}

	var callee *ast.Node
	if s.is("new") {
		callee = s.parseNew()
	} else {
		callee = s.parsePrimary()
	}
	n.Callee = s.parseCallTail(callee, false)
	n.Append(n.Callee)
	if s.is("(") {
		s.parseArguments(n)
	}
	return s.finish(n)
}

func (s *state) startIdentifierAt(tokenIdx int, name string) *ast.Node {
	n := ast.NewNode(ast.NodeIdentifier)
	n.FirstToken = tokenIdx
	n.Name = name
	n.LastToken = tokenIdx
	n.Range = s.tokens[tokenIdx].Range
	return n
}

// parseCallTail parses member accesses, calls and tagged templates following
// expr. Calls are only consumed when allowCalls is set.
func (s *state) parseCallTail(expr *ast.Node, allowCalls bool) *ast.Node {
	for {
		switch tok := s.cur(); {
		case tok.Is("."):
			s.next()
			n := s.startAt(ast.NodeMemberExpression, expr)
			n.Object = expr
			n.Property = s.parsePropertyName()
			n.Append(n.Object, n.Property)
			expr = s.finish(n)
		case tok.Is("?.") && allowCalls:
			s.next()
			switch {
			case s.is("("):
				n := s.startAt(ast.NodeCallExpression, expr)
				n.Qualifier = "optional"
				n.Callee = expr
				n.Append(expr)
				s.parseArguments(n)
				expr = s.finish(n)
			case s.is("["):
				expr = s.parseComputedMember(expr)
				expr.Qualifier = "optional"
			default:
				n := s.startAt(ast.NodeMemberExpression, expr)
				n.Qualifier = "optional"
				n.Object = expr
				n.Property = s.parsePropertyName()
				n.Append(n.Object, n.Property)
				expr = s.finish(n)
			}
		case tok.Is("["):
			expr = s.parseComputedMember(expr)
		case tok.Is("(") && allowCalls:
			n := s.startAt(ast.NodeCallExpression, expr)
			n.Callee = expr
			n.Append(expr)
			s.parseArguments(n)
			expr = s.finish(n)
		case tok.Kind == ast.TokenTemplate:
			n := s.startAt(ast.NodeTaggedTemplateExpression, expr)
			n.Callee = expr
			n.Argument = s.parseTemplate()
			n.Append(n.Callee, n.Argument)
			expr = s.finish(n)
		default:
			return expr
		}
	}
}

func (s *state) parseComputedMember(object *ast.Node) *ast.Node {
	s.expect("[")
	n := s.startAt(ast.NodeMemberExpression, object)
	n.Computed = true
	n.Object = object
	n.Property = s.parseExpression(false)
	s.expect("]")
	n.Append(n.Object, n.Property)
	return s.finish(n)
}

// parsePropertyName accepts identifiers, keywords and private names after ".".
func (s *state) parsePropertyName() *ast.Node {
	n := s.start(ast.NodeIdentifier)
	if s.eat("#") {
		n.Name = "#"
	}
	tok := s.cur()
	switch tok.Kind {
	case ast.TokenIdentifier, ast.TokenKeyword, ast.TokenBoolean, ast.TokenNull:
		s.next()
		n.Name += tok.Value
	default:
		s.unexpected()
	}
	return s.finish(n)
}

func (s *state) parseArguments(call *ast.Node) {
	s.expect("(")
	for !s.is(")") {
		call.Append(s.parseSpreadOrAssignment())
		if !s.is(")") {
			s.expect(",")
		}
	}
	s.next()
}

func (s *state) parseSpreadOrAssignment() *ast.Node {
	if !s.is("...") {
		return s.parseAssignment(false)
	}
	n := s.start(ast.NodeSpreadElement)
	s.next()
	n.Argument = s.parseAssignment(false)
	n.Append(n.Argument)
	return s.finish(n)
}

func (s *state) parsePrimary() *ast.Node {
	tok := s.cur()
	switch tok.Kind {
	case ast.TokenIdentifier:
		if tok.Value == "async" && s.peek(1).Is("function") && !s.peek(1).NewlineBefore {
			return s.parseFunction(ast.NodeFunctionExpression, false)
		}
		return s.parseIdentifier()
	case ast.TokenString:
		n := s.start(ast.NodeLiteral)
		s.next()
		n.Raw = tok.Value
		n.Value = cookString(tok.Value[1 : len(tok.Value)-1])
		return s.finish(n)
	case ast.TokenNumeric, ast.TokenRegExp, ast.TokenBoolean, ast.TokenNull:
		n := s.start(ast.NodeLiteral)
		s.next()
		n.Raw = tok.Value
		n.Value = tok.Value
		return s.finish(n)
	case ast.TokenTemplate:
		return s.parseTemplate()
	case ast.TokenKeyword:
		switch tok.Value {
		case "this":
			n := s.start(ast.NodeThisExpression)
			s.next()
			return s.finish(n)
		case "super":
			idx := s.pos
			s.next()
			return s.startIdentifierAt(idx, "super")
		case "function":
			return s.parseFunction(ast.NodeFunctionExpression, false)
		case "class":
			s.fail(tok.Range.Start, "Unsupported syntax 'class'")
		}
	case ast.TokenPunctuator:
		switch tok.Value {
		case "(":
			return s.parseParenthesized()
		case "[":
			return s.parseArray()
		case "{":
			return s.parseObject()
		}
	}
	s.unexpected()
	return nil
}

func (s *state) parseTemplate() *ast.Node {
	n := s.start(ast.NodeTemplateLiteral)
	tok := s.next()
	n.Raw = tok.Value
	return s.finish(n)
}

func (s *state) parseArray() *ast.Node {
	n := s.start(ast.NodeArrayExpression)
	s.expect("[")
	for !s.is("]") {
		if s.eat(",") {
			// hole
			continue
		}
		n.Append(s.parseSpreadOrAssignment())
		if !s.is("]") {
			s.expect(",")
		}
	}
	s.next()
	return s.finish(n)
}

func (s *state) parseObject() *ast.Node {
	n := s.start(ast.NodeObjectExpression)
	s.expect("{")
	for !s.is("}") {
		n.Append(s.parseProperty())
		if !s.is("}") {
			s.expect(",")
		}
	}
	s.next()
	return s.finish(n)
}

func (s *state) parseProperty() *ast.Node {
	if s.is("...") {
		return s.parseSpreadOrAssignment()
	}

	n := s.start(ast.NodeProperty)
	n.Qualifier = "init"

	// get/set/async prefixes are modifiers only when a key follows.
	if tok := s.cur(); tok.Kind == ast.TokenIdentifier &&
		(tok.Value == "get" || tok.Value == "set" || tok.Value == "async") {
		if next := s.peek(1); !next.Is(",") && !next.Is(":") && !next.Is("(") && !next.Is("}") && !next.Is("=") {
			s.next()
			n.Qualifier = tok.Value
		}
	}
	generator := s.eat("*")

	n.Key = s.parsePropertyKey(n)
	n.Append(n.Key)

	switch {
	case s.is("("):
		fn := s.start(ast.NodeFunctionExpression)
		if generator {
			fn.Operator = "*"
		}
		s.parseParams(fn)
		fn.Body = s.parseFunctionBody()
		fn.Append(fn.Body)
		n.Right = s.finish(fn)
		if n.Qualifier == "init" || n.Qualifier == "async" {
			n.Qualifier = "method"
		}
	case generator || n.Qualifier != "init":
		s.unexpected()
	case s.eat(":"):
		n.Right = s.parseAssignment(false)
	default:
		// Shorthand, optionally with a default inside patterns.
		if n.Key.Kind != ast.NodeIdentifier || n.Computed {
			s.unexpected()
		}
		n.Right = n.Key
		if s.is("=") {
			s.next()
			pattern := s.startAt(ast.NodeAssignmentPattern, n.Key)
			pattern.Left = n.Key
			pattern.Right = s.parseAssignment(false)
			pattern.Append(pattern.Right)
			n.Right = s.finish(pattern)
		}
		n.Operator = "shorthand"
		return s.finish(n)
	}
	n.Append(n.Right)
	return s.finish(n)
}

func (s *state) parsePropertyKey(prop *ast.Node) *ast.Node {
	tok := s.cur()
	switch {
	case tok.Is("["):
		s.next()
		prop.Computed = true
		key := s.parseAssignment(false)
		s.expect("]")
		return key
	case tok.Kind == ast.TokenString || tok.Kind == ast.TokenNumeric:
		return s.parsePrimary()
	case tok.Kind == ast.TokenIdentifier || tok.Kind == ast.TokenKeyword ||
		tok.Kind == ast.TokenBoolean || tok.Kind == ast.TokenNull:
		n := s.start(ast.NodeIdentifier)
		n.Name = s.next().Value
		return s.finish(n)
	default:
		s.unexpected()
		return nil
	}
}
