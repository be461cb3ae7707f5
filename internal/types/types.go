// Package types implements the wu type representation used by the checker
// and stored in the symbol table.
package types

import (
	"fmt"
	"strings"

	"github.com/wu-lang/wu/internal/symtab"
)

// ====== Core Type System ======

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindVoid TypeKind = iota
	TypeKindBool
	TypeKindInt
	TypeKindFloat
	TypeKindStr
	TypeKindFunction
	TypeKindStruct

	// Special types
	TypeKindAny
	TypeKindUnknown
)

// String returns the string representation of a TypeKind
func (tk TypeKind) String() string {
	switch tk {
	case TypeKindVoid:
		return "void"
	case TypeKindBool:
		return "bool"
	case TypeKindInt:
		return "int"
	case TypeKindFloat:
		return "float"
	case TypeKindStr:
		return "str"
	case TypeKindFunction:
		return "fun"
	case TypeKindStruct:
		return "struct"
	case TypeKindAny:
		return "any"
	case TypeKindUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Type represents a wu type.
type Type struct {
	Kind TypeKind
	Data interface{} // *FunctionType or *StructType, nil otherwise
}

// FunctionType is the payload of a function type.
type FunctionType struct {
	Parameters []*Type
	ReturnType *Type
}

// StructType is the payload of a nominal struct type.
type StructType struct {
	Name string
}

// Built-in types. They are shared and must not be modified.
var (
	Void    = &Type{Kind: TypeKindVoid}
	Bool    = &Type{Kind: TypeKindBool}
	Int     = &Type{Kind: TypeKindInt}
	Float   = &Type{Kind: TypeKindFloat}
	Str     = &Type{Kind: TypeKindStr}
	Any     = &Type{Kind: TypeKindAny}
	Unknown = &Type{Kind: TypeKindUnknown}
)

var builtins = map[string]*Type{
	"void":  Void,
	"bool":  Bool,
	"int":   Int,
	"float": Float,
	"str":   Str,
	"any":   Any,
}

// Builtin returns the built-in type spelled name.
func Builtin(name string) (*Type, bool) {
	t, ok := builtins[name]
	return t, ok
}

// NewFunctionType creates a function type. A nil returnType means void.
func NewFunctionType(parameters []*Type, returnType *Type) *Type {
	if returnType == nil {
		returnType = Void
	}
	return &Type{
		Kind: TypeKindFunction,
		Data: &FunctionType{Parameters: parameters, ReturnType: returnType},
	}
}

// NewStructType creates a nominal struct type.
func NewStructType(name string) *Type {
	return &Type{Kind: TypeKindStruct, Data: &StructType{Name: name}}
}

// ====== Type Operations ======

// Equals reports structural equality. Structs compare by name.
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}

	switch t.Kind {
	case TypeKindFunction:
		tFunc := t.Data.(*FunctionType)
		oFunc := other.Data.(*FunctionType)
		if len(tFunc.Parameters) != len(oFunc.Parameters) {
			return false
		}
		for i, param := range tFunc.Parameters {
			if !param.Equals(oFunc.Parameters[i]) {
				return false
			}
		}
		return tFunc.ReturnType.Equals(oFunc.ReturnType)

	case TypeKindStruct:
		return t.Data.(*StructType).Name == other.Data.(*StructType).Name

	default:
		return true
	}
}

// Equal implements symtab.Type.
func (t *Type) Equal(other symtab.Type) bool {
	o, ok := other.(*Type)
	return ok && t.Equals(o)
}

// Accepts reports whether a value of type value can be bound where t is
// expected. Any accepts everything, and an int widens to float.
func (t *Type) Accepts(value *Type) bool {
	if t.Kind == TypeKindAny || value.Kind == TypeKindAny {
		return true
	}
	if t.Kind == TypeKindFloat && value.Kind == TypeKindInt {
		return true
	}
	return t.Equals(value)
}

// IsNumeric reports whether t is int or float.
func (t *Type) IsNumeric() bool {
	return t.Kind == TypeKindInt || t.Kind == TypeKindFloat
}

// IsCallable reports whether t is a function type.
func (t *Type) IsCallable() bool {
	return t.Kind == TypeKindFunction
}

// ID returns the identifier under which methods of t are registered.
func (t *Type) ID() string {
	if t.Kind == TypeKindStruct {
		return t.Data.(*StructType).Name
	}
	return t.String()
}

// String renders t in wu syntax, e.g. fun(int, str) -> bool.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindFunction:
		fn := t.Data.(*FunctionType)
		params := make([]string, len(fn.Parameters))
		for i, param := range fn.Parameters {
			params[i] = param.String()
		}
		s := fmt.Sprintf("fun(%s)", strings.Join(params, ", "))
		if fn.ReturnType.Kind != TypeKindVoid {
			s += " -> " + fn.ReturnType.String()
		}
		return s

	case TypeKindStruct:
		return t.Data.(*StructType).Name

	default:
		return t.Kind.String()
	}
}

// ====== Type Registry ======

// Registry maps type names to types. Built-in names are always present.
type Registry struct {
	types map[string]*Type
}

// NewRegistry creates a registry holding the built-in types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]*Type, len(builtins))}
	for name, t := range builtins {
		r.types[name] = t
	}
	return r
}

// Register adds or replaces a named type.
func (r *Registry) Register(name string, t *Type) {
	r.types[name] = t
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.types[name]
	return t, ok
}
