package ast

import "github.com/yaklabco/gojslint/pkg/source"

// TokenKind classifies a lexical token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenIdentifier
	TokenKeyword
	TokenPunctuator
	TokenString
	TokenNumeric
	TokenTemplate
	TokenRegExp
	TokenBoolean
	TokenNull
)

// String returns a readable token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenIdentifier:
		return "Identifier"
	case TokenKeyword:
		return "Keyword"
	case TokenPunctuator:
		return "Punctuator"
	case TokenString:
		return "String"
	case TokenNumeric:
		return "Numeric"
	case TokenTemplate:
		return "Template"
	case TokenRegExp:
		return "RegularExpression"
	case TokenBoolean:
		return "Boolean"
	case TokenNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// Token is one lexical token.
type Token struct {
	Kind  TokenKind
	Value string
	Range source.Range

	// NewlineBefore is true when a line terminator separates this token
	// from the previous one (comments included).
	NewlineBefore bool
}

// Is reports whether the token is a punctuator or keyword with the given value.
func (t Token) Is(value string) bool {
	return (t.Kind == TokenPunctuator || t.Kind == TokenKeyword) && t.Value == value
}

// CommentKind distinguishes line comments from block comments.
type CommentKind uint8

const (
	CommentLine CommentKind = iota
	CommentBlock
)

// String returns "Line" or "Block".
func (k CommentKind) String() string {
	if k == CommentBlock {
		return "Block"
	}
	return "Line"
}

// Comment is a comment with its delimiters stripped from Value.
type Comment struct {
	Kind  CommentKind
	Value string

	// Range covers the whole comment including its delimiters.
	Range source.Range
}

// ValueStart returns the byte offset of the first character of Value.
func (c Comment) ValueStart() int {
	return c.Range.Start + 2
}
