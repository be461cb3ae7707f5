package types

import (
	"errors"
	"testing"

	"github.com/wu-lang/wu/internal/symtab"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ      *Type
		expected string
	}{
		{Int, "int"},
		{Str, "str"},
		{NewFunctionType(nil, nil), "fun()"},
		{NewFunctionType([]*Type{Int, Float}, Bool), "fun(int, float) -> bool"},
		{NewFunctionType([]*Type{NewFunctionType([]*Type{Str}, nil)}, Int), "fun(fun(str)) -> int"},
		{NewStructType("Point"), "Point"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestTypeEquality(t *testing.T) {
	f1 := NewFunctionType([]*Type{Int}, Str)
	f2 := NewFunctionType([]*Type{Int}, Str)
	f3 := NewFunctionType([]*Type{Float}, Str)

	if !f1.Equals(f2) {
		t.Error("identical function types should be equal")
	}
	if f1.Equals(f3) {
		t.Error("function types with different parameters should differ")
	}
	if !NewStructType("A").Equals(NewStructType("A")) || NewStructType("A").Equals(NewStructType("B")) {
		t.Error("struct types compare by name")
	}
	if Int.Equals(Float) {
		t.Error("int and float are distinct")
	}

	var st symtab.Type = f1
	if !st.Equal(f2) {
		t.Error("Equal through symtab.Type should match Equals")
	}
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		want, value *Type
		ok          bool
	}{
		{Float, Int, true},
		{Int, Float, false},
		{Any, Str, true},
		{Str, Any, true},
		{Bool, Bool, true},
		{Str, Int, false},
	}

	for _, tt := range tests {
		if got := tt.want.Accepts(tt.value); got != tt.ok {
			t.Errorf("%s.Accepts(%s) = %v, want %v", tt.want, tt.value, got, tt.ok)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"int", "int"},
		{"  str ", "str"},
		{"fun()", "fun()"},
		{"fun(int,int)->int", "fun(int, int) -> int"},
		{"fun(str) -> fun(int) -> bool", "fun(str) -> fun(int) -> bool"},
		{"Vec", "Vec"},
		{"fun(Vec, any) -> void", "fun(Vec, any)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			typ, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := typ.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "fun", "fun(int", "fun(int) ->", "int str", "fun(,)", "12", `"s"`} {
		if _, err := Parse(input); !errors.Is(err, ErrInvalidType) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidType", input, err)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if typ, ok := r.Lookup("int"); !ok || typ != Int {
		t.Error("built-in int should be registered")
	}
	r.Register("Point", NewStructType("Point"))
	if typ, ok := r.Lookup("Point"); !ok || typ.ID() != "Point" {
		t.Errorf("Lookup(Point) = %v, %v", typ, ok)
	}
}
