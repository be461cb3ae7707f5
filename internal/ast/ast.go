// Package ast defines the wu syntax tree.
//
// Expressions live in an Arena and are addressed by ExprID. A Binary node
// stores the IDs of its operands, so one subtree can be referenced from
// several owners without copying. Nodes are never modified after the parser
// adds them.
package ast

import (
	"fmt"

	"github.com/wu-lang/wu/internal/position"
)

// ExprID is a stable handle to an expression stored in an Arena.
type ExprID int

// NoExpr is the zero handle; no arena ever hands it out.
const NoExpr ExprID = -1

// ExpressionNode is implemented by every expression variant.
type ExpressionNode interface {
	expressionNode()
	String() string
}

// Expression is an expression node with its source position.
type Expression struct {
	Node ExpressionNode
	Pos  position.Position
}

// IntLiteral is an integer literal.
type IntLiteral struct{ Value int64 }

// FloatLiteral is a floating point literal.
type FloatLiteral struct{ Value float64 }

// StringLiteral is a string literal, stored without quotes.
type StringLiteral struct{ Value string }

// BoolLiteral is true or false.
type BoolLiteral struct{ Value bool }

// Identifier is a name reference.
type Identifier struct{ Name string }

// Binary is an infix operation over two arena expressions.
type Binary struct {
	Left  ExprID
	Op    OpKind
	Right ExprID
}

// EndOfInput marks that no expression was present. It signals the end of
// the token stream during lookahead and never appears in parser output.
type EndOfInput struct{}

func (*IntLiteral) expressionNode()    {}
func (*FloatLiteral) expressionNode()  {}
func (*StringLiteral) expressionNode() {}
func (*BoolLiteral) expressionNode()   {}
func (*Identifier) expressionNode()    {}
func (*Binary) expressionNode()        {}
func (*EndOfInput) expressionNode()    {}

func (n *IntLiteral) String() string    { return fmt.Sprintf("%d", n.Value) }
func (n *FloatLiteral) String() string  { return fmt.Sprintf("%g", n.Value) }
func (n *StringLiteral) String() string { return fmt.Sprintf("%q", n.Value) }
func (n *BoolLiteral) String() string   { return fmt.Sprintf("%t", n.Value) }
func (n *Identifier) String() string    { return n.Name }
func (n *Binary) String() string        { return fmt.Sprintf("binary(%s)", n.Op) }
func (n *EndOfInput) String() string    { return "<eof>" }

// StatementNode is implemented by every statement variant.
type StatementNode interface {
	statementNode()
}

// Statement is a statement node with its source position.
type Statement struct {
	Node StatementNode
	Pos  position.Position
}

// Assignment binds the value of Right to the identifier Left.
type Assignment struct {
	Left  ExprID
	Right ExprID
}

// ExpressionStmt is an expression used as a statement.
type ExpressionStmt struct {
	Expr ExprID
}

func (*Assignment) statementNode()     {}
func (*ExpressionStmt) statementNode() {}

// Arena owns every expression of one parse.
type Arena struct {
	exprs []Expression
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{exprs: make([]Expression, 0, 64)}
}

// Add stores an expression and returns its handle.
func (a *Arena) Add(node ExpressionNode, pos position.Position) ExprID {
	a.exprs = append(a.exprs, Expression{Node: node, Pos: pos})
	return ExprID(len(a.exprs) - 1)
}

// Get returns the expression for id. It panics on a handle from another
// arena that is out of range, like an index expression would.
func (a *Arena) Get(id ExprID) Expression {
	return a.exprs[id]
}

// Node is a shorthand for Get(id).Node.
func (a *Arena) Node(id ExprID) ExpressionNode {
	return a.exprs[id].Node
}

// Len returns the number of stored expressions.
func (a *Arena) Len() int {
	return len(a.exprs)
}

// IsEndOfInput reports whether id is the end-of-input sentinel.
func (a *Arena) IsEndOfInput(id ExprID) bool {
	_, ok := a.exprs[id].Node.(*EndOfInput)
	return ok
}
