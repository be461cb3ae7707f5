package types

import (
	"errors"
	"fmt"

	"github.com/wu-lang/wu/internal/lexer"
)

// ErrInvalidType is wrapped by every error returned from Parse.
var ErrInvalidType = errors.New("invalid type")

// Parse reads a type written in wu syntax:
//
//	int
//	fun(int, str) -> bool
//	Point
//
// Names that are not built in are taken as struct types.
func Parse(src string) (*Type, error) {
	tokens, err := lexer.Tokenize(src, "")
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidType, src, err)
	}

	r := &typeReader{src: src}
	for _, tok := range tokens {
		if tok.Type != lexer.TokenWhitespace && tok.Type != lexer.TokenEOL {
			r.tokens = append(r.tokens, tok)
		}
	}

	t, err := r.readType()
	if err != nil {
		return nil, err
	}
	if tok := r.peek(); tok.Type != lexer.TokenEOF {
		return nil, r.errorf(tok, "unexpected '%s' after type", tok.Content)
	}
	return t, nil
}

// MustParse is like Parse but panics on error. It is meant for tables of
// known-good type strings.
func MustParse(src string) *Type {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

type typeReader struct {
	src    string
	tokens []lexer.Token // without whitespace, EOF last
	pos    int
}

func (r *typeReader) peek() lexer.Token {
	if r.pos >= len(r.tokens) {
		return r.tokens[len(r.tokens)-1]
	}
	return r.tokens[r.pos]
}

func (r *typeReader) next() lexer.Token {
	tok := r.peek()
	if r.pos < len(r.tokens) {
		r.pos++
	}
	return tok
}

func (r *typeReader) expect(content string) error {
	if tok := r.next(); tok.Content != content {
		return r.errorf(tok, "expected '%s', found '%s'", content, tok.Content)
	}
	return nil
}

func (r *typeReader) errorf(tok lexer.Token, format string, args ...interface{}) error {
	return fmt.Errorf("%w %q at column %d: %s", ErrInvalidType, r.src, tok.Pos.Column, fmt.Sprintf(format, args...))
}

func (r *typeReader) readType() (*Type, error) {
	tok := r.next()

	switch {
	case tok.Type == lexer.TokenKeyword && tok.Content == "fun":
		return r.readFunction()
	case tok.Type == lexer.TokenIdentifier:
		if t, ok := Builtin(tok.Content); ok {
			return t, nil
		}
		return NewStructType(tok.Content), nil
	case tok.Type == lexer.TokenEOF:
		return nil, r.errorf(tok, "missing type")
	default:
		return nil, r.errorf(tok, "unexpected '%s'", tok.Content)
	}
}

func (r *typeReader) readFunction() (*Type, error) {
	if err := r.expect("("); err != nil {
		return nil, err
	}

	params := make([]*Type, 0)
	if r.peek().Content != ")" {
		for {
			param, err := r.readType()
			if err != nil {
				return nil, err
			}
			params = append(params, param)

			if r.peek().Content != "," {
				break
			}
			r.next()
		}
	}
	if err := r.expect(")"); err != nil {
		return nil, err
	}

	if r.peek().Content != "-" {
		return NewFunctionType(params, Void), nil
	}
	r.next()
	if err := r.expect(">"); err != nil {
		return nil, err
	}
	ret, err := r.readType()
	if err != nil {
		return nil, err
	}
	return NewFunctionType(params, ret), nil
}
