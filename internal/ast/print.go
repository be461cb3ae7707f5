package ast

import (
	"fmt"
	"strings"
)

// Sexp renders the expression as an S-expression, e.g. (+ 1 (* 2 3)).
func (a *Arena) Sexp(id ExprID) string {
	var sb strings.Builder
	a.writeSexp(&sb, id)
	return sb.String()
}

func (a *Arena) writeSexp(sb *strings.Builder, id ExprID) {
	if bin, ok := a.Node(id).(*Binary); ok {
		sb.WriteString("(")
		sb.WriteString(bin.Op.String())
		sb.WriteString(" ")
		a.writeSexp(sb, bin.Left)
		sb.WriteString(" ")
		a.writeSexp(sb, bin.Right)
		sb.WriteString(")")
		return
	}
	sb.WriteString(a.Node(id).String())
}

// FormatStatement renders a statement in S-expression form.
func (a *Arena) FormatStatement(stmt Statement) string {
	switch n := stmt.Node.(type) {
	case *Assignment:
		return fmt.Sprintf("(= %s %s)", a.Sexp(n.Left), a.Sexp(n.Right))
	case *ExpressionStmt:
		return a.Sexp(n.Expr)
	default:
		return fmt.Sprintf("<unknown statement %T>", stmt.Node)
	}
}

// PrettyPrint renders a statement list, one statement per line.
func (a *Arena) PrettyPrint(stmts []Statement) string {
	var sb strings.Builder
	for _, stmt := range stmts {
		sb.WriteString(a.FormatStatement(stmt))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Equal reports whether the expressions x (in a) and y (in b) have the same
// shape and values. Positions are ignored.
func Equal(a *Arena, x ExprID, b *Arena, y ExprID) bool {
	switch nx := a.Node(x).(type) {
	case *Binary:
		ny, ok := b.Node(y).(*Binary)
		return ok && nx.Op == ny.Op &&
			Equal(a, nx.Left, b, ny.Left) &&
			Equal(a, nx.Right, b, ny.Right)
	case *IntLiteral:
		ny, ok := b.Node(y).(*IntLiteral)
		return ok && nx.Value == ny.Value
	case *FloatLiteral:
		ny, ok := b.Node(y).(*FloatLiteral)
		return ok && nx.Value == ny.Value
	case *StringLiteral:
		ny, ok := b.Node(y).(*StringLiteral)
		return ok && nx.Value == ny.Value
	case *BoolLiteral:
		ny, ok := b.Node(y).(*BoolLiteral)
		return ok && nx.Value == ny.Value
	case *Identifier:
		ny, ok := b.Node(y).(*Identifier)
		return ok && nx.Name == ny.Name
	case *EndOfInput:
		_, ok := b.Node(y).(*EndOfInput)
		return ok
	default:
		return false
	}
}

// EqualStatements compares two statement lists structurally.
func EqualStatements(a *Arena, xs []Statement, b *Arena, ys []Statement) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		switch nx := xs[i].Node.(type) {
		case *Assignment:
			ny, ok := ys[i].Node.(*Assignment)
			if !ok || !Equal(a, nx.Left, b, ny.Left) || !Equal(a, nx.Right, b, ny.Right) {
				return false
			}
		case *ExpressionStmt:
			ny, ok := ys[i].Node.(*ExpressionStmt)
			if !ok || !Equal(a, nx.Expr, b, ny.Expr) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
