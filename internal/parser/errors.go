package parser

import (
	"errors"
	"fmt"

	"github.com/wu-lang/wu/internal/position"
)

// ErrCursorBounds reports a cursor move outside the token buffer. The
// grammar never triggers it; seeing it means the parser itself is broken.
var ErrCursorBounds = errors.New("cursor moved outside token stack")

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// ErrSyntax is malformed input: token mismatch, dangling operator,
	// missing operand, unknown operator.
	ErrSyntax ErrorKind = iota
	// ErrUnimplemented is a token kind the grammar has no rule for.
	ErrUnimplemented
	// ErrMalformedNumber is numeral text that does not convert to a value.
	ErrMalformedNumber
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrUnimplemented:
		return "unimplemented"
	case ErrMalformedNumber:
		return "malformed number"
	default:
		return "unknown"
	}
}

// ParseError represents a parsing error with context
type ParseError struct {
	Kind     ErrorKind
	Position position.Position
	Message  string
	Line     string // source line containing Position, if known
	Err      error  // underlying cause, if any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error at %s: %s", e.Position.String(), e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, pos position.Position, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:     kind,
		Position: pos,
		Message:  fmt.Sprintf(format, args...),
	}
}
