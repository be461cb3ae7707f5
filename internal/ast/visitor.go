package ast

// Visitor receives one call per node kind. Binary operands are not visited
// automatically; implementations recurse with Accept when they need to.
type Visitor interface {
	VisitAssignment(stmt Statement, node *Assignment) interface{}
	VisitExpressionStmt(stmt Statement, node *ExpressionStmt) interface{}

	VisitIntLiteral(id ExprID, node *IntLiteral) interface{}
	VisitFloatLiteral(id ExprID, node *FloatLiteral) interface{}
	VisitStringLiteral(id ExprID, node *StringLiteral) interface{}
	VisitBoolLiteral(id ExprID, node *BoolLiteral) interface{}
	VisitIdentifier(id ExprID, node *Identifier) interface{}
	VisitBinary(id ExprID, node *Binary) interface{}
}

// Accept dispatches the expression id to v.
func (a *Arena) Accept(id ExprID, v Visitor) interface{} {
	switch n := a.Node(id).(type) {
	case *IntLiteral:
		return v.VisitIntLiteral(id, n)
	case *FloatLiteral:
		return v.VisitFloatLiteral(id, n)
	case *StringLiteral:
		return v.VisitStringLiteral(id, n)
	case *BoolLiteral:
		return v.VisitBoolLiteral(id, n)
	case *Identifier:
		return v.VisitIdentifier(id, n)
	case *Binary:
		return v.VisitBinary(id, n)
	default:
		return nil
	}
}

// AcceptStatement dispatches stmt to v.
func AcceptStatement(stmt Statement, v Visitor) interface{} {
	switch n := stmt.Node.(type) {
	case *Assignment:
		return v.VisitAssignment(stmt, n)
	case *ExpressionStmt:
		return v.VisitExpressionStmt(stmt, n)
	default:
		return nil
	}
}

// Inspect walks the expression tree rooted at id in depth-first pre-order,
// calling fn for each node. If fn returns false the children are skipped.
func (a *Arena) Inspect(id ExprID, fn func(ExprID, Expression) bool) {
	expr := a.Get(id)
	if !fn(id, expr) {
		return
	}
	if bin, ok := expr.Node.(*Binary); ok {
		a.Inspect(bin.Left, fn)
		a.Inspect(bin.Right, fn)
	}
}
