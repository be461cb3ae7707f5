package ast

// OpKind identifies a binary operator.
type OpKind int

const (
	OpPow OpKind = iota
	OpMul
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpConcat
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
)

// Operator is the table entry for an operator spelling. Lower precedence
// values bind tighter.
type Operator struct {
	Kind       OpKind
	Precedence int
}

var operators = map[string]Operator{
	"^":   {OpPow, 0},
	"*":   {OpMul, 1},
	"/":   {OpDiv, 1},
	"%":   {OpMod, 1},
	"+":   {OpAdd, 2},
	"-":   {OpSub, 2},
	"++":  {OpConcat, 3},
	"==":  {OpEq, 4},
	"!=":  {OpNe, 4},
	"<":   {OpLt, 4},
	">":   {OpGt, 4},
	"<=":  {OpLe, 4},
	">=":  {OpGe, 4},
	"and": {OpAnd, 5},
	"or":  {OpOr, 5},
}

var opSpelling = func() map[OpKind]string {
	m := make(map[OpKind]string, len(operators))
	for text, op := range operators {
		m[op.Kind] = text
	}
	return m
}()

// LookupOperator maps operator text to its kind and precedence. Unknown text
// is reported with ok=false.
func LookupOperator(text string) (Operator, bool) {
	op, ok := operators[text]
	return op, ok
}

// String returns the source spelling of the operator.
func (k OpKind) String() string {
	if s, ok := opSpelling[k]; ok {
		return s
	}
	return "?"
}

// IsArithmetic reports whether k is a numeric operator.
func (k OpKind) IsArithmetic() bool {
	switch k {
	case OpPow, OpMul, OpDiv, OpMod, OpAdd, OpSub:
		return true
	}
	return false
}

// IsComparison reports whether k yields a boolean from two operands of the
// same type.
func (k OpKind) IsComparison() bool {
	switch k {
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
		return true
	}
	return false
}

// IsLogical reports whether k is and/or.
func (k OpKind) IsLogical() bool {
	return k == OpAnd || k == OpOr
}
