// Package lexer defines the wu token model and a reference tokenizer.
package lexer

import (
	"fmt"

	"github.com/wu-lang/wu/internal/position"
)

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types. The set is closed; the parser dispatches on it exhaustively.
const (
	TokenEOF TokenType = iota
	TokenError
	TokenEOL
	TokenWhitespace

	TokenInt
	TokenFloat
	TokenStr
	TokenBool
	TokenIdentifier
	TokenKeyword

	TokenOperator
	TokenSymbol
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenError:      "ERROR",
	TokenEOL:        "EOL",
	TokenWhitespace: "WHITESPACE",
	TokenInt:        "INT",
	TokenFloat:      "FLOAT",
	TokenStr:        "STR",
	TokenBool:       "BOOL",
	TokenIdentifier: "IDENTIFIER",
	TokenKeyword:    "KEYWORD",
	TokenOperator:   "OPERATOR",
	TokenSymbol:     "SYMBOL",
}

// Token represents a lexical token with position information.
// Tokens are values and never change after the lexer produces them.
type Token struct {
	Type    TokenType
	Content string
	Pos     position.Position
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Content: %q, Pos: %s}", t.Type, t.Content, t.Pos)
}

// keywords are reserved words the grammar does not cover yet.
var keywords = map[string]TokenType{
	"fun":       TokenKeyword,
	"return":    TokenKeyword,
	"if":        TokenKeyword,
	"else":      TokenKeyword,
	"while":     TokenKeyword,
	"break":     TokenKeyword,
	"import":    TokenKeyword,
	"struct":    TokenKeyword,
	"trait":     TokenKeyword,
	"implement": TokenKeyword,
	"and":       TokenOperator,
	"or":        TokenOperator,
	"true":      TokenBool,
	"false":     TokenBool,
}

// lookupIdent checks if identifier is a reserved word
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}
