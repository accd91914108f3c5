package js

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gojslint/pkg/source"
)

// ErrSyntax is wrapped by every SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError describes the first problem that stopped parsing.
type SyntaxError struct {
	Message  string
	Offset   int
	Position source.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

// Unwrap allows errors.Is(err, ErrSyntax).
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Pos returns the position parsing stopped at.
func (e *SyntaxError) Pos() source.Position {
	return e.Position
}

// Reason returns the message without its position prefix.
func (e *SyntaxError) Reason() string {
	return e.Message
}
