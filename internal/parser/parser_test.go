package parser

import (
	"bytes"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/wu-lang/wu/internal/ast"
	"github.com/wu-lang/wu/internal/lexer"
)

func parseString(t *testing.T, src string) (*ast.Arena, []ast.Statement) {
	t.Helper()
	arena, stmts, err := ParseSource("test.wu", src)
	if err != nil {
		t.Fatalf("ParseSource(%q) failed: %v", src, err)
	}
	return arena, stmts
}

func parseError(t *testing.T, src string) *ParseError {
	t.Helper()
	_, stmts, err := ParseSource("test.wu", src)
	if err == nil {
		t.Fatalf("ParseSource(%q) should fail", src)
	}
	if stmts != nil {
		t.Errorf("ParseSource(%q) returned statements alongside an error", src)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return pe
}

func TestBinaryExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"1 + 2 + 3", "(+ (+ 1 2) 3)"},
		{"1 - 2 * 3 - 4", "(- (- 1 (* 2 3)) 4)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"2 ^ 3 * 4", "(* (^ 2 3) 4)"},
		{"1 * 2 + 3 * 4", "(+ (* 1 2) (* 3 4))"},
		{"1 + 2 * 3 ^ 4 - 5", "(- (+ 1 (* 2 (^ 3 4))) 5)"},
		{"a == b and c < d", "(and (== a b) (< c d))"},
		{`"a" ++ "b" ++ "c"`, `(++ (++ "a" "b") "c")`},
		{"1+2*3", "(+ 1 (* 2 3))"},
		{"x % 2 == 0", "(== (% x 2) 0)"},
		{"1.5 * 2", "(* 1.5 2)"},
		{"true or false", "(or true false)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			arena, stmts := parseString(t, tt.input)
			if len(stmts) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(stmts))
			}
			stmt, ok := stmts[0].Node.(*ast.ExpressionStmt)
			if !ok {
				t.Fatalf("expected *ast.ExpressionStmt, got %T", stmts[0].Node)
			}
			if got := arena.Sexp(stmt.Expr); got != tt.expected {
				t.Errorf("Sexp = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestAssignment(t *testing.T) {
	arena, stmts := parseString(t, "x = 5")

	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	assign, ok := stmts[0].Node.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", stmts[0].Node)
	}

	ident, ok := arena.Node(assign.Left).(*ast.Identifier)
	if !ok || ident.Name != "x" {
		t.Errorf("left = %v, want identifier x", arena.Node(assign.Left))
	}
	lit, ok := arena.Node(assign.Right).(*ast.IntLiteral)
	if !ok || lit.Value != 5 {
		t.Errorf("right = %v, want int 5", arena.Node(assign.Right))
	}
	if stmts[0].Pos.Line != 1 || stmts[0].Pos.Column != 1 {
		t.Errorf("statement position = %s, want 1:1", stmts[0].Pos)
	}
}

func TestStatementSequence(t *testing.T) {
	src := "x = 1\ny = x + 2\n\n   x\n"
	arena, stmts := parseString(t, src)

	want := []string{"(= x 1)", "(= y (+ x 2))", "x"}
	if len(stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d: %s", len(want), len(stmts), arena.PrettyPrint(stmts))
	}
	for i, stmt := range stmts {
		if got := arena.FormatStatement(stmt); got != want[i] {
			t.Errorf("statement %d = %s, want %s", i, got, want[i])
		}
	}
	if stmts[2].Pos.Line != 4 || stmts[2].Pos.Column != 4 {
		t.Errorf("third statement at %s, want 4:4", stmts[2].Pos)
	}
}

func TestIdentifierFollowedByOperator(t *testing.T) {
	arena, stmts := parseString(t, "x + 1")

	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	if got := arena.FormatStatement(stmts[0]); got != "(+ x 1)" {
		t.Errorf("got %s, want (+ x 1)", got)
	}
}

func TestBareIdentifierConsumesOnlyItself(t *testing.T) {
	tokens := []lexer.Token{
		{Type: lexer.TokenIdentifier, Content: "x"},
		{Type: lexer.TokenEOF},
	}
	p := New(tokens, nil)

	stmts, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	if _, ok := stmts[0].Node.(*ast.ExpressionStmt); !ok {
		t.Errorf("expected *ast.ExpressionStmt, got %T", stmts[0].Node)
	}
	if p.Cursor().Pos() != 1 {
		t.Errorf("cursor at %d, want 1", p.Cursor().Pos())
	}
}

func TestBinaryNodePositions(t *testing.T) {
	arena, stmts := parseString(t, "1 + 2 * 3")

	root := stmts[0].Node.(*ast.ExpressionStmt).Expr
	if pos := arena.Get(root).Pos; pos.Column != 3 {
		t.Errorf("+ node at column %d, want 3", pos.Column)
	}
	bin := arena.Node(root).(*ast.Binary)
	if pos := arena.Get(bin.Right).Pos; pos.Column != 7 {
		t.Errorf("* node at column %d, want 7", pos.Column)
	}
	if pos := arena.Get(bin.Left).Pos; pos.Column != 1 {
		t.Errorf("literal 1 at column %d, want 1", pos.Column)
	}
}

func TestEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\n", " \n # just a comment\n"} {
		_, stmts := parseString(t, src)
		if len(stmts) != 0 {
			t.Errorf("ParseSource(%q) = %d statements, want 0", src, len(stmts))
		}
	}
}

func TestDanglingOperator(t *testing.T) {
	tests := []struct {
		input  string
		line   int
		column int
	}{
		{"1 +", 1, 3},
		{"1 + 2 *", 1, 7},
		{"1 +\n", 1, 3},
		{"x =", 1, 3},
		{"y = 1\nx = \n", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pe := parseError(t, tt.input)
			if pe.Kind != ErrSyntax {
				t.Errorf("Kind = %s, want %s", pe.Kind, ErrSyntax)
			}
			if pe.Message != "missing right hand expression" {
				t.Errorf("Message = %q", pe.Message)
			}
			if pe.Position.Line != tt.line || pe.Position.Column != tt.column {
				t.Errorf("error at %d:%d, want %d:%d", pe.Position.Line, pe.Position.Column, tt.line, tt.column)
			}
		})
	}
}

func TestMalformedNumbers(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"12ab", "malformed INT literal '12ab'"},
		{"99999999999999999999", "malformed INT literal '99999999999999999999'"},
		{"x = 1 + 3x", "malformed INT literal '3x'"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pe := parseError(t, tt.input)
			if pe.Kind != ErrMalformedNumber {
				t.Errorf("Kind = %s, want %s", pe.Kind, ErrMalformedNumber)
			}
			if pe.Message != tt.message {
				t.Errorf("Message = %q, want %q", pe.Message, tt.message)
			}
			var numErr *strconv.NumError
			if !errors.As(pe, &numErr) {
				t.Errorf("cause should be *strconv.NumError, got %v", pe.Unwrap())
			}
		})
	}
}

func TestUnimplementedTokens(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"fun", "token type 'KEYWORD' currently unimplemented"},
		{"(1)", "token type 'SYMBOL' currently unimplemented"},
		{"1 + return", "token type 'KEYWORD' currently unimplemented"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pe := parseError(t, tt.input)
			if pe.Kind != ErrUnimplemented {
				t.Errorf("Kind = %s, want %s", pe.Kind, ErrUnimplemented)
			}
			if pe.Message != tt.message {
				t.Errorf("Message = %q, want %q", pe.Message, tt.message)
			}
		})
	}
}

func TestUnknownOperator(t *testing.T) {
	tokens := []lexer.Token{
		{Type: lexer.TokenInt, Content: "2"},
		{Type: lexer.TokenOperator, Content: "**"},
		{Type: lexer.TokenInt, Content: "3"},
		{Type: lexer.TokenEOF},
	}

	_, err := New(tokens, nil).Parse()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Message != "unknown operator '**'" {
		t.Errorf("Message = %q", pe.Message)
	}
}

func TestAssignmentRequiresLineEnd(t *testing.T) {
	pe := parseError(t, "x = 1 y = 2")

	if pe.Message != "expecting type 'EOL', found 'y'" {
		t.Errorf("Message = %q", pe.Message)
	}
	if pe.Position.Column != 7 {
		t.Errorf("error column = %d, want 7", pe.Position.Column)
	}
}

func TestErrorCarriesSourceLine(t *testing.T) {
	pe := parseError(t, "a = 1\nb = 2 +\n")

	if pe.Position.Filename != "test.wu" {
		t.Errorf("Filename = %q, want test.wu", pe.Position.Filename)
	}
	if pe.Line != "b = 2 +" {
		t.Errorf("Line = %q, want %q", pe.Line, "b = 2 +")
	}
	if !strings.HasPrefix(pe.Error(), "Parse error at test.wu:2:7") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestParseIsDeterministic(t *testing.T) {
	src := "a = 1 + 2 * 3\nb = a ^ 2 - a / 4\na == b or b > 10\n"

	a1, s1 := parseString(t, src)
	a2, s2 := parseString(t, src)

	if !ast.EqualStatements(a1, s1, a2, s2) {
		t.Errorf("two parses differ:\n%s\n%s", a1.PrettyPrint(s1), a2.PrettyPrint(s2))
	}
}

func TestLongChainsAreIterative(t *testing.T) {
	const n = 20000
	var sb strings.Builder
	sb.WriteString("x = 0")
	for i := 0; i < n; i++ {
		sb.WriteString(" + 1")
	}

	arena, stmts := parseString(t, sb.String())

	count := 0
	assign := stmts[0].Node.(*ast.Assignment)
	arena.Inspect(assign.Right, func(_ ast.ExprID, e ast.Expression) bool {
		if _, ok := e.Node.(*ast.Binary); ok {
			count++
		}
		return true
	})
	if count != n {
		t.Errorf("got %d binary nodes, want %d", count, n)
	}
}

func TestTraceOption(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tokens, err := lexer.Tokenize("x = 1", "")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if _, err := New(tokens, nil, WithTrace(logger)).Parse(); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !strings.Contains(buf.String(), "parser position") {
		t.Errorf("trace output missing position records: %q", buf.String())
	}
}

func TestLexErrorPassesThrough(t *testing.T) {
	_, _, err := ParseSource("bad.wu", `x = "open`)

	var le *lexer.Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *lexer.Error, got %T: %v", err, err)
	}
}
