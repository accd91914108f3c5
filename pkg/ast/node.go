// Package ast defines the JavaScript syntax tree, tokens and comments
// consumed by rules and by directive parsing.
package ast

import "github.com/yaklabco/gojslint/pkg/source"

// NodeKind classifies the type of a syntax node.
type NodeKind uint16

const (
	NodeProgram NodeKind = iota

	// Statements and declarations.
	NodeVariableDeclaration
	NodeVariableDeclarator
	NodeFunctionDeclaration
	NodeExpressionStatement
	NodeBlockStatement
	NodeEmptyStatement
	NodeDebuggerStatement
	NodeIfStatement
	NodeForStatement
	NodeForInStatement
	NodeForOfStatement
	NodeWhileStatement
	NodeDoWhileStatement
	NodeReturnStatement
	NodeThrowStatement
	NodeBreakStatement
	NodeContinueStatement
	NodeTryStatement
	NodeCatchClause
	NodeSwitchStatement
	NodeSwitchCase
	NodeLabeledStatement

	// Expressions.
	NodeIdentifier
	NodeLiteral
	NodeTemplateLiteral
	NodeTaggedTemplateExpression
	NodeArrayExpression
	NodeObjectExpression
	NodeProperty
	NodeSpreadElement
	NodeFunctionExpression
	NodeArrowFunctionExpression
	NodeCallExpression
	NodeNewExpression
	NodeMemberExpression
	NodeUnaryExpression
	NodeUpdateExpression
	NodeBinaryExpression
	NodeLogicalExpression
	NodeAssignmentExpression
	NodeConditionalExpression
	NodeSequenceExpression
	NodeThisExpression
	NodeAssignmentPattern
	NodeRestElement
)

//nolint:gochecknoglobals // Static lookup table.
var nodeKindNames = [...]string{
	NodeProgram:                  "Program",
	NodeVariableDeclaration:      "VariableDeclaration",
	NodeVariableDeclarator:       "VariableDeclarator",
	NodeFunctionDeclaration:      "FunctionDeclaration",
	NodeExpressionStatement:      "ExpressionStatement",
	NodeBlockStatement:           "BlockStatement",
	NodeEmptyStatement:           "EmptyStatement",
	NodeDebuggerStatement:        "DebuggerStatement",
	NodeIfStatement:              "IfStatement",
	NodeForStatement:             "ForStatement",
	NodeForInStatement:           "ForInStatement",
	NodeForOfStatement:           "ForOfStatement",
	NodeWhileStatement:           "WhileStatement",
	NodeDoWhileStatement:         "DoWhileStatement",
	NodeReturnStatement:          "ReturnStatement",
	NodeThrowStatement:           "ThrowStatement",
	NodeBreakStatement:           "BreakStatement",
	NodeContinueStatement:        "ContinueStatement",
	NodeTryStatement:             "TryStatement",
	NodeCatchClause:              "CatchClause",
	NodeSwitchStatement:          "SwitchStatement",
	NodeSwitchCase:               "SwitchCase",
	NodeLabeledStatement:         "LabeledStatement",
	NodeIdentifier:               "Identifier",
	NodeLiteral:                  "Literal",
	NodeTemplateLiteral:          "TemplateLiteral",
	NodeTaggedTemplateExpression: "TaggedTemplateExpression",
	NodeArrayExpression:          "ArrayExpression",
	NodeObjectExpression:         "ObjectExpression",
	NodeProperty:                 "Property",
	NodeSpreadElement:            "SpreadElement",
	NodeFunctionExpression:       "FunctionExpression",
	NodeArrowFunctionExpression:  "ArrowFunctionExpression",
	NodeCallExpression:           "CallExpression",
	NodeNewExpression:            "NewExpression",
	NodeMemberExpression:         "MemberExpression",
	NodeUnaryExpression:          "UnaryExpression",
	NodeUpdateExpression:         "UpdateExpression",
	NodeBinaryExpression:         "BinaryExpression",
	NodeLogicalExpression:        "LogicalExpression",
	NodeAssignmentExpression:     "AssignmentExpression",
	NodeConditionalExpression:    "ConditionalExpression",
	NodeSequenceExpression:       "SequenceExpression",
	NodeThisExpression:           "ThisExpression",
	NodeAssignmentPattern:        "AssignmentPattern",
	NodeRestElement:              "RestElement",
}

// String returns the ESTree type name of the kind.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// IsStatement reports whether nodes of this kind appear in statement position.
func (k NodeKind) IsStatement() bool {
	return k >= NodeVariableDeclaration && k <= NodeLabeledStatement &&
		k != NodeVariableDeclarator && k != NodeCatchClause && k != NodeSwitchCase
}

// Node is one syntax tree node.
type Node struct {
	Kind NodeKind

	Parent   *Node
	Children []*Node

	// Range is the byte span of the node, including a trailing semicolon
	// for statements that have one.
	Range source.Range

	// Token span (indices into Program.Tokens). Both are -1 for nodes that
	// own no tokens.
	FirstToken int
	LastToken  int

	// Name is the identifier name of Identifier nodes.
	Name string

	// Raw is the source text of Literal nodes; Value is the cooked string
	// value for string literals.
	Raw   string
	Value string

	// Operator is set on unary, update, binary, logical and assignment nodes.
	Operator string

	// Kind-specific qualifier: "var", "let" or "const" on declarations,
	// "init", "get", "set" or "method" on properties.
	Qualifier string

	// Computed marks obj[expr] member access and [expr] property keys.
	Computed bool

	// Named links into Children for the common accessors.
	ID       *Node // declarator target, function name
	Init     *Node // declarator initializer
	Callee   *Node // call and new expressions
	Object   *Node // member expressions
	Property *Node // member expressions
	Key      *Node // properties
	// Left and Right are the operands of binary, logical and assignment
	// expressions. Conditionals and if statements use them for the two
	// branches with the test in Argument or Left; loops keep their test
	// in Left.
	Left     *Node
	Right    *Node
	Argument *Node // unary, update, spread, return, throw, switch discriminant
	Body     *Node // functions, loops, labeled statements, catch clauses
}

// NewNode creates a detached node with an empty token span.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind, FirstToken: -1, LastToken: -1}
}

// Append adds child nodes, setting their parent. Nil children are skipped.
func (n *Node) Append(children ...*Node) {
	for _, child := range children {
		if child == nil {
			continue
		}
		child.Parent = n
		n.Children = append(n.Children, child)
	}
}

// Type returns the ESTree type name.
func (n *Node) Type() string {
	return n.Kind.String()
}

// Is reports whether the node has one of the given kinds.
func (n *Node) Is(kinds ...NodeKind) bool {
	if n == nil {
		return false
	}
	for _, k := range kinds {
		if n.Kind == k {
			return true
		}
	}
	return false
}

// IsIdentifier reports whether n is an identifier with the given name.
func (n *Node) IsIdentifier(name string) bool {
	return n != nil && n.Kind == NodeIdentifier && n.Name == name
}

// Program is the root of a parsed file.
type Program struct {
	*Node

	Source   *source.Text
	Tokens   []Token
	Comments []Comment
}

// Text returns the source text of a node.
func (p *Program) Text(n *Node) string {
	return string(p.Source.Slice(n.Range))
}

// Location returns the line/column span of a node.
func (p *Program) Location(n *Node) source.Location {
	return p.Source.LocationOf(n.Range)
}

// TokenAt returns the token at index idx, or false when out of range.
func (p *Program) TokenAt(idx int) (Token, bool) {
	if idx < 0 || idx >= len(p.Tokens) {
		return Token{}, false
	}
	return p.Tokens[idx], true
}
