package ast

// DumpNode is a self-contained tree view of the AST for serialization.
type DumpNode struct {
	Kind  string      `json:"kind" yaml:"kind"`
	Pos   string      `json:"pos" yaml:"pos"`
	Value interface{} `json:"value,omitempty" yaml:"value,omitempty"`
	Op    string      `json:"op,omitempty" yaml:"op,omitempty"`
	Left  *DumpNode   `json:"left,omitempty" yaml:"left,omitempty"`
	Right *DumpNode   `json:"right,omitempty" yaml:"right,omitempty"`
}

// Dump converts statements into DumpNode trees.
func (a *Arena) Dump(stmts []Statement) []*DumpNode {
	out := make([]*DumpNode, 0, len(stmts))
	for _, stmt := range stmts {
		switch n := stmt.Node.(type) {
		case *Assignment:
			out = append(out, &DumpNode{
				Kind:  "assignment",
				Pos:   stmt.Pos.String(),
				Left:  a.DumpExpr(n.Left),
				Right: a.DumpExpr(n.Right),
			})
		case *ExpressionStmt:
			out = append(out, &DumpNode{
				Kind: "expression",
				Pos:  stmt.Pos.String(),
				Left: a.DumpExpr(n.Expr),
			})
		}
	}
	return out
}

// DumpExpr converts one expression subtree.
func (a *Arena) DumpExpr(id ExprID) *DumpNode {
	expr := a.Get(id)
	node := &DumpNode{Pos: expr.Pos.String()}

	switch n := expr.Node.(type) {
	case *IntLiteral:
		node.Kind, node.Value = "int", n.Value
	case *FloatLiteral:
		node.Kind, node.Value = "float", n.Value
	case *StringLiteral:
		node.Kind, node.Value = "string", n.Value
	case *BoolLiteral:
		node.Kind, node.Value = "bool", n.Value
	case *Identifier:
		node.Kind, node.Value = "identifier", n.Name
	case *Binary:
		node.Kind = "binary"
		node.Op = n.Op.String()
		node.Left = a.DumpExpr(n.Left)
		node.Right = a.DumpExpr(n.Right)
	case *EndOfInput:
		node.Kind = "eof"
	}
	return node
}
