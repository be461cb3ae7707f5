// Package check type checks parsed wu statements against a symbol table.
package check

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/wu-lang/wu/internal/ast"
	"github.com/wu-lang/wu/internal/position"
	"github.com/wu-lang/wu/internal/symtab"
	"github.com/wu-lang/wu/internal/types"
)

// Error is a positioned type error.
type Error struct {
	Position position.Position
	Message  string
	Line     string // source line containing Position, if known
}

func (e *Error) Error() string {
	return fmt.Sprintf("Type error at %s: %s", e.Position.String(), e.Message)
}

// Checker walks statements, binding assignments in the symbol table and
// computing a type for every expression.
type Checker struct {
	st      *symtab.SymTab
	source  *position.SourceFile
	prelude []string
	logger  *slog.Logger

	arena *ast.Arena
	types map[ast.ExprID]*types.Type
	err   *Error
}

// Option configures a Checker.
type Option func(*Checker)

// WithPrelude makes the exports of the named foreign modules visible as
// bare names. Modules are searched in order after all scopes.
func WithPrelude(modules ...string) Option {
	return func(c *Checker) {
		c.prelude = append(c.prelude, modules...)
	}
}

// WithSource supplies the file used to fill in error lines.
func WithSource(source *position.SourceFile) Option {
	return func(c *Checker) {
		c.source = source
	}
}

// WithLogger sets the logger for binding events, logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// New creates a checker that binds names in st.
func New(st *symtab.SymTab, opts ...Option) *Checker {
	c := &Checker{
		st:     st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		types:  make(map[ast.ExprID]*types.Type),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SymTab returns the table the checker binds into.
func (c *Checker) SymTab() *symtab.SymTab {
	return c.st
}

// Check checks stmts in order and stops at the first error.
func (c *Checker) Check(arena *ast.Arena, stmts []ast.Statement) error {
	c.arena = arena
	c.err = nil

	for _, stmt := range stmts {
		ast.AcceptStatement(stmt, c)
		if c.err != nil {
			if c.source != nil {
				if c.err.Position.Filename == "" {
					c.err.Position.Filename = c.source.Filename
				}
				c.err.Line = c.source.GetLine(c.err.Position.Line)
			}
			return c.err
		}
	}
	return nil
}

// TypeOf returns the type computed for an expression by the last Check.
func (c *Checker) TypeOf(id ast.ExprID) (*types.Type, bool) {
	t, ok := c.types[id]
	return t, ok
}

func (c *Checker) errorf(pos position.Position, format string, args ...interface{}) *types.Type {
	if c.err == nil {
		c.err = &Error{Position: pos, Message: fmt.Sprintf(format, args...)}
	}
	return types.Unknown
}

func (c *Checker) expr(id ast.ExprID) *types.Type {
	t, _ := c.arena.Accept(id, c).(*types.Type)
	if t == nil {
		t = types.Unknown
	}
	c.types[id] = t
	return t
}

// lookup resolves name through the scopes, then the prelude modules.
func (c *Checker) lookup(name string) (*types.Type, bool) {
	if t, ok := c.st.Lookup(name); ok {
		typ, ok := t.(*types.Type)
		return typ, ok
	}
	for _, module := range c.prelude {
		bindings, ok := c.st.LookupModule(module)
		if !ok {
			continue
		}
		if t, ok := bindings[name]; ok {
			typ, ok := t.(*types.Type)
			return typ, ok
		}
	}
	return nil, false
}

// ====== Statements ======

// VisitAssignment implements ast.Visitor.
func (c *Checker) VisitAssignment(stmt ast.Statement, node *ast.Assignment) interface{} {
	ident, ok := c.arena.Node(node.Left).(*ast.Identifier)
	if !ok {
		return c.errorf(stmt.Pos, "cannot assign to %s", c.arena.Node(node.Left))
	}

	value := c.expr(node.Right)
	if c.err != nil {
		return nil
	}

	if existing, ok := c.lookup(ident.Name); ok {
		if !existing.Accepts(value) {
			return c.errorf(stmt.Pos, "cannot assign %s to '%s' of type %s", value, ident.Name, existing)
		}
		c.types[node.Left] = existing
		return nil
	}

	c.st.Assign(ident.Name, value)
	c.types[node.Left] = value
	c.logger.Debug("bound name", "name", ident.Name, "type", value.String(), "depth", c.st.ScopeDepth())
	return nil
}

// VisitExpressionStmt implements ast.Visitor.
func (c *Checker) VisitExpressionStmt(stmt ast.Statement, node *ast.ExpressionStmt) interface{} {
	return c.expr(node.Expr)
}

// ====== Expressions ======

// VisitIntLiteral implements ast.Visitor.
func (c *Checker) VisitIntLiteral(id ast.ExprID, node *ast.IntLiteral) interface{} {
	return types.Int
}

// VisitFloatLiteral implements ast.Visitor.
func (c *Checker) VisitFloatLiteral(id ast.ExprID, node *ast.FloatLiteral) interface{} {
	return types.Float
}

// VisitStringLiteral implements ast.Visitor.
func (c *Checker) VisitStringLiteral(id ast.ExprID, node *ast.StringLiteral) interface{} {
	return types.Str
}

// VisitBoolLiteral implements ast.Visitor.
func (c *Checker) VisitBoolLiteral(id ast.ExprID, node *ast.BoolLiteral) interface{} {
	return types.Bool
}

// VisitIdentifier implements ast.Visitor.
func (c *Checker) VisitIdentifier(id ast.ExprID, node *ast.Identifier) interface{} {
	t, ok := c.lookup(node.Name)
	if !ok {
		return c.errorf(c.arena.Get(id).Pos, "undefined name '%s'", node.Name)
	}
	return t
}

// VisitBinary implements ast.Visitor.
func (c *Checker) VisitBinary(id ast.ExprID, node *ast.Binary) interface{} {
	left := c.expr(node.Left)
	right := c.expr(node.Right)
	if c.err != nil {
		return types.Unknown
	}

	t, ok := binaryResult(node.Op, left, right)
	if !ok {
		return c.errorf(c.arena.Get(id).Pos, "operator '%s' cannot be applied to %s and %s", node.Op, left, right)
	}
	return t
}

func binaryResult(op ast.OpKind, left, right *types.Type) (*types.Type, bool) {
	anyOperand := left.Kind == types.TypeKindAny || right.Kind == types.TypeKindAny

	switch {
	case op.IsArithmetic():
		if anyOperand {
			return types.Any, true
		}
		if !left.IsNumeric() || !right.IsNumeric() {
			return nil, false
		}
		if left.Kind == types.TypeKindFloat || right.Kind == types.TypeKindFloat {
			return types.Float, true
		}
		return types.Int, true

	case op == ast.OpConcat:
		if anyOperand || (left.Kind == types.TypeKindStr && right.Kind == types.TypeKindStr) {
			return types.Str, true
		}
		return nil, false

	case op == ast.OpEq || op == ast.OpNe:
		return types.Bool, left.Accepts(right) || right.Accepts(left)

	case op.IsComparison():
		return types.Bool, anyOperand || (left.IsNumeric() && right.IsNumeric())

	case op.IsLogical():
		ok := anyOperand || (left.Kind == types.TypeKindBool && right.Kind == types.TypeKindBool)
		return types.Bool, ok
	}
	return nil, false
}
