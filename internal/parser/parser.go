// Package parser implements the wu recursive descent parser.
//
// Statements are parsed by recursive descent. Binary expressions are built
// iteratively with an operand stack and an operator stack, so operator
// chains of any length use constant Go stack depth.
package parser

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/wu-lang/wu/internal/ast"
	"github.com/wu-lang/wu/internal/lexer"
	"github.com/wu-lang/wu/internal/position"
)

// Parser represents the recursive descent parser
type Parser struct {
	cursor *Cursor
	arena  *ast.Arena
	source *position.SourceFile
	trace  *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithTrace logs every position query at debug level.
func WithTrace(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.trace = logger
	}
}

// New creates a parser over tokens. source supplies the file name and line
// text for error messages and may be nil.
func New(tokens []lexer.Token, source *position.SourceFile, opts ...Option) *Parser {
	p := &Parser{
		cursor: NewCursor(tokens),
		arena:  ast.NewArena(),
		source: source,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseSource tokenizes and parses src in one step.
func ParseSource(filename, src string, opts ...Option) (*ast.Arena, []ast.Statement, error) {
	tokens, err := lexer.Tokenize(src, filename)
	if err != nil {
		return nil, nil, err
	}
	p := New(tokens, position.NewSourceFile(filename, src), opts...)
	stmts, err := p.Parse()
	return p.Arena(), stmts, err
}

// Arena returns the arena holding every expression the parser built.
func (p *Parser) Arena() *ast.Arena {
	return p.arena
}

// Cursor exposes the token cursor, mainly for tests.
func (p *Parser) Cursor() *Cursor {
	return p.cursor
}

// Parse parses statements until only the end sentinel is left. The first
// error aborts the parse and no statements are returned.
func (p *Parser) Parse() ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)

	for p.cursor.Remaining() > 1 {
		stmt, ok, err := p.statement()
		if err != nil {
			return nil, p.annotate(err)
		}
		if !ok {
			break
		}
		statements = append(statements, stmt)
	}

	return statements, nil
}

// annotate fills in file name and line text on parse errors.
func (p *Parser) annotate(err error) error {
	var pe *ParseError
	if p.source == nil || !errors.As(err, &pe) {
		return err
	}
	if pe.Position.Filename == "" {
		pe.Position.Filename = p.source.Filename
	}
	if pe.Line == "" {
		pe.Line = p.source.GetLine(pe.Position.Line)
	}
	return err
}

func (p *Parser) position() position.Position {
	pos := p.cursor.Peek().Pos
	if p.trace != nil {
		p.trace.Debug("parser position", "pos", pos.String(), "index", p.cursor.Pos())
	}
	return pos
}

// ====== Statements ======

// statement parses one statement. ok is false when the input held nothing
// but trailing whitespace.
func (p *Parser) statement() (ast.Statement, bool, error) {
	c := p.cursor
	c.SkipWhile(lexer.TokenWhitespace, lexer.TokenEOL)

	start := p.position()

	if c.PeekType() != lexer.TokenIdentifier || c.AtSentinel() {
		expr, err := p.expression()
		if err != nil {
			return ast.Statement{}, false, err
		}
		if p.arena.IsEndOfInput(expr) {
			return ast.Statement{}, false, nil
		}
		return ast.Statement{Node: &ast.ExpressionStmt{Expr: expr}, Pos: start}, true, nil
	}

	name, err := c.ConsumeType(lexer.TokenIdentifier)
	if err != nil {
		return ast.Statement{}, false, err
	}
	ident := p.arena.Add(&ast.Identifier{Name: name}, start)

	backup := c.Checkpoint()
	c.SkipWhile(lexer.TokenWhitespace)

	if c.PeekContent() != "=" || c.AtSentinel() {
		c.Restore(backup)

		expr, err := p.continueExpression(ident)
		if err != nil {
			return ast.Statement{}, false, err
		}
		return ast.Statement{Node: &ast.ExpressionStmt{Expr: expr}, Pos: start}, true, nil
	}

	eq := c.Peek()
	if err := c.Advance(); err != nil {
		return ast.Statement{}, false, err
	}

	right, err := p.expression()
	if err != nil {
		return ast.Statement{}, false, err
	}
	if p.arena.IsEndOfInput(right) {
		return ast.Statement{}, false, newError(ErrSyntax, eq.Pos, "missing right hand expression")
	}

	c.SkipWhile(lexer.TokenWhitespace)
	if !c.AtSentinel() {
		if err := c.ExpectType(lexer.TokenEOL); err != nil {
			return ast.Statement{}, false, err
		}
	}

	return ast.Statement{
		Node: &ast.Assignment{Left: ident, Right: right},
		Pos:  start,
	}, true, nil
}

// ====== Expressions ======

// expression parses an atom and any binary operator chain after it. The
// end-of-input sentinel is returned as is.
func (p *Parser) expression() (ast.ExprID, error) {
	atom, err := p.atom()
	if err != nil {
		return ast.NoExpr, err
	}
	if p.arena.IsEndOfInput(atom) {
		return atom, nil
	}
	return p.continueExpression(atom)
}

// continueExpression hands first to the binary reducer when an operator
// follows it, and otherwise leaves the cursor right after first.
func (p *Parser) continueExpression(first ast.ExprID) (ast.ExprID, error) {
	c := p.cursor
	backup := c.Checkpoint()

	c.SkipWhile(lexer.TokenWhitespace)
	if c.PeekType() == lexer.TokenOperator && !c.AtSentinel() {
		return p.binary(first)
	}

	c.Restore(backup)
	return first, nil
}

func (p *Parser) atom() (ast.ExprID, error) {
	c := p.cursor
	c.SkipWhile(lexer.TokenEOL, lexer.TokenWhitespace)

	pos := p.position()
	if c.AtSentinel() {
		return p.arena.Add(&ast.EndOfInput{}, pos), nil
	}

	tok := c.Peek()
	if err := c.Advance(); err != nil {
		return ast.NoExpr, err
	}

	var node ast.ExpressionNode

	switch tok.Type {
	case lexer.TokenInt:
		value, err := strconv.ParseInt(tok.Content, 10, 64)
		if err != nil {
			return ast.NoExpr, malformedNumber(tok, err)
		}
		node = &ast.IntLiteral{Value: value}
	case lexer.TokenFloat:
		value, err := strconv.ParseFloat(tok.Content, 64)
		if err != nil {
			return ast.NoExpr, malformedNumber(tok, err)
		}
		node = &ast.FloatLiteral{Value: value}
	case lexer.TokenStr:
		node = &ast.StringLiteral{Value: tok.Content}
	case lexer.TokenBool:
		node = &ast.BoolLiteral{Value: tok.Content == "true"}
	case lexer.TokenIdentifier:
		node = &ast.Identifier{Name: tok.Content}
	default:
		return ast.NoExpr, newError(ErrUnimplemented, tok.Pos, "token type '%s' currently unimplemented", tok.Type)
	}

	return p.arena.Add(node, pos), nil
}

func malformedNumber(tok lexer.Token, cause error) *ParseError {
	err := newError(ErrMalformedNumber, tok.Pos, "malformed %s literal '%s'", tok.Type, tok.Content)
	err.Err = cause
	return err
}

// pendingOp is an operator waiting on the operator stack.
type pendingOp struct {
	ast.Operator
	pos position.Position
}

// binary reduces an operator chain that starts after first. The cursor is
// on the first operator.
//
// Operands and operators are kept on two stacks. Before a new operator is
// pushed, every stacked operator that binds at least as tightly is reduced,
// which groups equal precedence to the left and tighter operators first.
func (p *Parser) binary(first ast.ExprID) (ast.ExprID, error) {
	c := p.cursor

	operands := []ast.ExprID{first}
	operators := make([]pendingOp, 0, 4)

	op, err := p.operator()
	if err != nil {
		return ast.NoExpr, err
	}
	operators = append(operators, op)

	right, err := p.operand(op)
	if err != nil {
		return ast.NoExpr, err
	}
	operands = append(operands, right)

	for {
		backup := c.Checkpoint()
		c.SkipWhile(lexer.TokenWhitespace)

		if c.PeekType() != lexer.TokenOperator || c.AtSentinel() {
			c.Restore(backup)
			break
		}

		next, err := p.operator()
		if err != nil {
			return ast.NoExpr, err
		}

		for len(operators) > 0 && next.Precedence >= operators[len(operators)-1].Precedence {
			operands, operators = p.reduce(operands, operators)
		}
		operators = append(operators, next)

		right, err := p.operand(next)
		if err != nil {
			return ast.NoExpr, err
		}
		operands = append(operands, right)
	}

	for len(operators) > 0 {
		operands, operators = p.reduce(operands, operators)
	}

	return operands[0], nil
}

// operator consumes an operator token and looks it up.
func (p *Parser) operator() (pendingOp, error) {
	tok := p.cursor.Peek()

	text, err := p.cursor.ConsumeType(lexer.TokenOperator)
	if err != nil {
		return pendingOp{}, err
	}

	op, ok := ast.LookupOperator(text)
	if !ok {
		return pendingOp{}, newError(ErrSyntax, tok.Pos, "unknown operator '%s'", text)
	}
	return pendingOp{Operator: op, pos: tok.Pos}, nil
}

// operand parses the right operand of op.
func (p *Parser) operand(op pendingOp) (ast.ExprID, error) {
	id, err := p.atom()
	if err != nil {
		return ast.NoExpr, err
	}
	if p.arena.IsEndOfInput(id) {
		return ast.NoExpr, newError(ErrSyntax, op.pos, "missing right hand expression")
	}
	return id, nil
}

// reduce pops two operands and one operator and pushes their Binary node.
func (p *Parser) reduce(operands []ast.ExprID, operators []pendingOp) ([]ast.ExprID, []pendingOp) {
	op := operators[len(operators)-1]
	operators = operators[:len(operators)-1]

	right := operands[len(operands)-1]
	left := operands[len(operands)-2]
	operands = operands[:len(operands)-2]

	node := p.arena.Add(&ast.Binary{Left: left, Op: op.Kind, Right: right}, op.pos)
	return append(operands, node), operators
}
