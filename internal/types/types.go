// Package types describes the results of type checking as seen by the code
// generator: types, symbols, signatures and the Checker query interface the
// external front end implements.
package types

import (
	"strings"

	"github.com/nativets-lang/nativets/internal/ast"
)

// TypeFlags classifies a checked type. A type may carry several flags.
type TypeFlags uint32

const (
	FlagAny TypeFlags = 1 << iota
	FlagUnknown
	FlagString
	FlagNumber
	FlagBoolean
	FlagStringLiteral
	FlagNumberLiteral
	FlagBooleanLiteral
	FlagVoid
	FlagUndefined
	FlagNull
	FlagNever
	FlagTypeParameter
	FlagObject
	FlagUnion
)

var flagNames = []struct {
	flag TypeFlags
	name string
}{
	{FlagAny, "any"},
	{FlagUnknown, "unknown"},
	{FlagString, "string"},
	{FlagNumber, "number"},
	{FlagBoolean, "boolean"},
	{FlagStringLiteral, "stringLiteral"},
	{FlagNumberLiteral, "numberLiteral"},
	{FlagBooleanLiteral, "booleanLiteral"},
	{FlagVoid, "void"},
	{FlagUndefined, "undefined"},
	{FlagNull, "null"},
	{FlagNever, "never"},
	{FlagTypeParameter, "typeParameter"},
	{FlagObject, "object"},
	{FlagUnion, "union"},
}

// ParseTypeFlag returns the flag with the given name.
func ParseTypeFlag(name string) (TypeFlags, bool) {
	for _, f := range flagNames {
		if f.name == name {
			return f.flag, true
		}
	}
	return 0, false
}

func (f TypeFlags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// SymbolFlags classifies a symbol.
type SymbolFlags uint32

const (
	SymbolVariable SymbolFlags = 1 << iota
	SymbolProperty
	SymbolMethod
	SymbolFunction
	SymbolClass
	SymbolInterface
	SymbolConstructor
	SymbolNamespace
	SymbolTypeParameter
	SymbolParameter
)

var symbolFlagNames = []struct {
	flag SymbolFlags
	name string
}{
	{SymbolVariable, "variable"},
	{SymbolProperty, "property"},
	{SymbolMethod, "method"},
	{SymbolFunction, "function"},
	{SymbolClass, "class"},
	{SymbolInterface, "interface"},
	{SymbolConstructor, "constructor"},
	{SymbolNamespace, "namespace"},
	{SymbolTypeParameter, "typeParameter"},
	{SymbolParameter, "parameter"},
}

// ParseSymbolFlag returns the flag with the given name.
func ParseSymbolFlag(name string) (SymbolFlags, bool) {
	for _, f := range symbolFlagNames {
		if f.name == name {
			return f.flag, true
		}
	}
	return 0, false
}

func (f SymbolFlags) String() string {
	var parts []string
	for _, fn := range symbolFlagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Symbol is a named entity produced by the binder.
type Symbol struct {
	Name  string
	Flags SymbolFlags
	// Declarations lists every declaration node of the symbol.
	Declarations []ast.Node
	// ValueDeclaration is the declaration that introduces the symbol's value.
	ValueDeclaration ast.Node
}

// Is reports whether the symbol carries any of the given flags.
func (s *Symbol) Is(flags SymbolFlags) bool {
	return s != nil && s.Flags&flags != 0
}

// Type is a checked type.
type Type struct {
	Flags  TypeFlags
	Symbol *Symbol
	// Name is the printed form used for symbol-less types and diagnostics.
	Name string
	// TypeArguments are set on references to generic types.
	TypeArguments []*Type
	// Value is set on literal types.
	Value any
}

// Is reports whether the type carries any of the given flags.
func (t *Type) Is(flags TypeFlags) bool {
	return t != nil && t.Flags&flags != 0
}

// IsObject reports whether t is an object type (class, interface, literal).
func (t *Type) IsObject() bool { return t.Is(FlagObject) }

// IsString reports whether t is string-like.
func (t *Type) IsString() bool { return t.Is(FlagString | FlagStringLiteral) }

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Name != "" {
		return t.Name
	}
	if t.Symbol != nil {
		return t.Symbol.Name
	}
	return t.Flags.String()
}

// Signature is the call signature of a function-like declaration.
type Signature struct {
	Declaration ast.Node
	Parameters  []*Symbol
	ReturnType  *Type
}

// Checker answers type queries about a checked program. The front end
// guarantees that PropertiesOfType returns properties in a stable order; the
// generator relies on that order for class layout.
type Checker interface {
	// TypeAtLocation returns the type of the node.
	TypeAtLocation(node ast.Node) *Type
	// SymbolAtLocation returns the symbol the node refers to, or nil.
	SymbolAtLocation(node ast.Node) *Symbol
	// PropertiesOfType enumerates the properties (fields, methods) of t.
	PropertiesOfType(t *Type) []*Symbol
	// SignatureFromDeclaration returns the signature of a function-like declaration.
	SignatureFromDeclaration(decl ast.Node) *Signature
	// IndexTypeOfType returns the element type of t's numeric index signature, or nil.
	IndexTypeOfType(t *Type) *Type
	// BaseTypeOfLiteralType widens literal types to their primitive base.
	BaseTypeOfLiteralType(t *Type) *Type
	// TypeToString renders t for diagnostics.
	TypeToString(t *Type) string
}

//go:generate mockgen -destination=typesmock/checker.go -package=typesmock . Checker
