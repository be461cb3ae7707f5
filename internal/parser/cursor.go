package parser

import (
	"fmt"
	"slices"

	"github.com/wu-lang/wu/internal/lexer"
)

// Checkpoint is a saved cursor position for tentative parsing.
type Checkpoint struct {
	top int
}

// Cursor reads a token buffer whose last token is an end sentinel.
type Cursor struct {
	tokens []lexer.Token
	top    int
}

// NewCursor creates a cursor at the first token. An empty buffer gets an EOF
// sentinel so that peeking is always defined.
func NewCursor(tokens []lexer.Token) *Cursor {
	if len(tokens) == 0 {
		tokens = []lexer.Token{{Type: lexer.TokenEOF}}
	}
	return &Cursor{tokens: tokens}
}

// Pos returns the index of the current token.
func (c *Cursor) Pos() int {
	return c.top
}

// Checkpoint snapshots the current position.
func (c *Cursor) Checkpoint() Checkpoint {
	return Checkpoint{top: c.top}
}

// Restore rewinds (or fast-forwards) to a snapshot.
func (c *Cursor) Restore(cp Checkpoint) {
	c.top = cp.top
}

// Advance moves forward one token.
func (c *Cursor) Advance() error {
	if c.top >= len(c.tokens) {
		return fmt.Errorf("advance at %d of %d: %w", c.top, len(c.tokens), ErrCursorBounds)
	}
	c.top++
	return nil
}

// Retreat moves back one token.
func (c *Cursor) Retreat() error {
	if c.top == 0 {
		return fmt.Errorf("retreat at 0: %w", ErrCursorBounds)
	}
	c.top--
	return nil
}

// Remaining returns the number of tokens not yet consumed, including the
// sentinel.
func (c *Cursor) Remaining() int {
	if c.top >= len(c.tokens) {
		return 0
	}
	return len(c.tokens) - c.top
}

// AtSentinel reports whether only the end sentinel (or nothing) is left.
func (c *Cursor) AtSentinel() bool {
	return c.Remaining() <= 1
}

// SkipWhile consumes tokens whose type is in types. It never consumes the
// sentinel.
func (c *Cursor) SkipWhile(types ...lexer.TokenType) {
	for c.Remaining() > 1 && slices.Contains(types, c.PeekType()) {
		c.top++
	}
}

// Peek returns the current token, or the final token once the cursor has
// run past the end.
func (c *Cursor) Peek() lexer.Token {
	if c.top > len(c.tokens)-1 {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[c.top]
}

// PeekContent returns the text of the current token.
func (c *Cursor) PeekContent() string {
	return c.Peek().Content
}

// PeekType returns the type of the current token.
func (c *Cursor) PeekType() lexer.TokenType {
	return c.Peek().Type
}

// ExpectType checks the current token type without consuming it.
func (c *Cursor) ExpectType(tt lexer.TokenType) error {
	tok := c.Peek()
	if tok.Type == tt {
		return nil
	}
	return newError(ErrSyntax, tok.Pos, "expecting type '%s', found '%s'", tt, tok.Content)
}

// ConsumeType checks the current token type and advances past it.
func (c *Cursor) ConsumeType(tt lexer.TokenType) (string, error) {
	if err := c.ExpectType(tt); err != nil {
		return "", err
	}
	content := c.PeekContent()
	if err := c.Advance(); err != nil {
		return "", err
	}
	return content, nil
}

// ExpectContent checks the current token text without consuming it.
func (c *Cursor) ExpectContent(content string) error {
	tok := c.Peek()
	if tok.Content == content {
		return nil
	}
	return newError(ErrSyntax, tok.Pos, "expecting '%s', found '%s'", content, tok.Content)
}

// ConsumeContent checks the current token text and advances past it.
func (c *Cursor) ConsumeContent(content string) (string, error) {
	if err := c.ExpectContent(content); err != nil {
		return "", err
	}
	if err := c.Advance(); err != nil {
		return "", err
	}
	return content, nil
}
