package lexer

import (
	"fmt"

	"github.com/wu-lang/wu/internal/position"
)

// Error is a lexical error at a source position.
type Error struct {
	Pos     position.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Message)
}

// Lexer scans wu source into tokens. Whitespace and line ends are kept as
// tokens; comments starting with '#' are dropped.
type Lexer struct {
	input        string
	filename     string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a new lexer instance with filename for error reporting
func NewWithFilename(input, filename string) *Lexer {
	l := &Lexer{
		input:    input,
		filename: filename,
		line:     1,
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input and returns the token sequence terminated
// by an EOF token. The first TokenError stops the scan with an *Error.
func Tokenize(input, filename string) ([]Token, error) {
	l := NewWithFilename(input, filename)
	tokens := make([]Token, 0, len(input)/2+1)

	for {
		tok := l.NextToken()
		if tok.Type == TokenError {
			return tokens, &Error{Pos: tok.Pos, Message: tok.Content}
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL character represents "EOF"
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) currentPosition() position.Position {
	return position.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.position,
	}
}

// NextToken scans the input and returns the next token
func (l *Lexer) NextToken() Token {
	start := l.currentPosition()

	if l.atEnd() {
		return Token{Type: TokenEOF, Pos: start}
	}

	switch l.ch {
	case ' ', '\t', '\r':
		return l.newToken(TokenWhitespace, l.readWhile(isSpace), start)
	case '\n':
		l.readChar()
		return l.newToken(TokenEOL, "\n", start)
	case '#':
		for l.ch != '\n' && !l.atEnd() {
			l.readChar()
		}
		return l.NextToken()
	case '"':
		literal, terminated := l.readString()
		if !terminated {
			return l.newToken(TokenError, "unterminated string literal", start)
		}
		return l.newToken(TokenStr, literal, start)
	}

	if isDigit(l.ch) {
		literal, isFloat := l.readNumber()
		if isFloat {
			return l.newToken(TokenFloat, literal, start)
		}
		return l.newToken(TokenInt, literal, start)
	}

	if isLetter(l.ch) || l.ch == '_' {
		ident := l.readWhile(isIdentChar)
		return l.newToken(lookupIdent(ident), ident, start)
	}

	if op, ok := l.readOperator(); ok {
		return l.newToken(TokenOperator, op, start)
	}

	ch := l.ch
	l.readChar()
	if isSymbol(ch) {
		return l.newToken(TokenSymbol, string(ch), start)
	}
	return l.newToken(TokenError, fmt.Sprintf("unexpected character %q", ch), start)
}

func (l *Lexer) newToken(tokenType TokenType, content string, pos position.Position) Token {
	return Token{Type: tokenType, Content: content, Pos: pos}
}

func (l *Lexer) readWhile(pred func(byte) bool) string {
	start := l.position
	for !l.atEnd() && pred(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads a numeral. Letters directly attached to the digits and
// repeated decimal points are kept in the literal so the parser can report
// the whole malformed text.
func (l *Lexer) readNumber() (string, bool) {
	start := l.position
	isFloat := false

	for isDigit(l.ch) {
		l.readChar()
	}

	for l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	for !l.atEnd() && isIdentChar(l.ch) {
		l.readChar()
	}

	return l.input[start:l.position], isFloat
}

func (l *Lexer) readString() (string, bool) {
	start := l.position + 1 // skip opening quote

	for {
		l.readChar()
		if l.atEnd() {
			return l.input[start:], false
		}
		if l.ch == '"' {
			break
		}
		if l.ch == '\\' {
			l.readChar()
		}
	}

	literal := l.input[start:l.position]
	l.readChar() // closing quote
	return literal, true
}

var twoCharOperators = map[string]bool{
	"++": true,
	"==": true,
	"!=": true,
	"<=": true,
	">=": true,
}

func (l *Lexer) readOperator() (string, bool) {
	if pair := string([]byte{l.ch, l.peekChar()}); twoCharOperators[pair] {
		l.readChar()
		l.readChar()
		return pair, true
	}

	switch l.ch {
	case '+', '-', '*', '/', '%', '^', '<', '>':
		op := string(l.ch)
		l.readChar()
		return op, true
	}
	return "", false
}

func isSymbol(ch byte) bool {
	switch ch {
	case '=', '(', ')', '{', '}', '[', ']', ',', ':', '.', ';', '!':
		return true
	}
	return false
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

// isLetter checks if character is ASCII letter
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if character is ASCII digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
