package codegen

import (
	"github.com/llir/llvm/ir/types"

	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/errors"
	"github.com/nativets-lang/nativets/internal/mangle"
	ts "github.com/nativets-lang/nativets/internal/types"
)

// StringTypeName is the name of the string record {i8*, i32}.
const StringTypeName = "string"

// lowerType maps a checked type to its IR type:
//
//	boolean -> i1
//	number  -> double
//	string  -> %string
//	object  -> %Name*
//	void    -> void
func (g *Generator) lowerType(t *ts.Type) (types.Type, error) {
	switch {
	case t == nil:
		return nil, errors.Internal("missing type")
	case t.Is(ts.FlagBoolean | ts.FlagBooleanLiteral):
		return types.I1, nil
	case t.Is(ts.FlagNumber | ts.FlagNumberLiteral):
		return types.Double, nil
	case t.IsString():
		return g.stringRecord(), nil
	case t.IsObject():
		st, err := g.buildStruct(t, false)
		if err != nil {
			return nil, err
		}
		return types.NewPointer(st), nil
	case t.Is(ts.FlagVoid):
		return types.Void, nil
	case t.Is(ts.FlagAny):
		return nil, errors.AnyType()
	default:
		return nil, errors.UnsupportedType(g.checker.TypeToString(t))
	}
}

// stringRecord returns the %string type, defining it on first use.
func (g *Generator) stringRecord() *types.StructType {
	if g.stringType == nil {
		st := types.NewStruct(types.I8Ptr, types.I32)
		g.module.NewTypeDef(StringTypeName, st)
		g.stringType = st
	}
	return g.stringType
}

// buildStruct returns the named struct for an object type, creating it on
// first request. The struct is registered before its fields are lowered so
// that self-referential types terminate. Types declared by ambient classes
// are opaque regardless of the opaque argument.
func (g *Generator) buildStruct(t *ts.Type, opaque bool) (*types.StructType, error) {
	name := mangle.Type(t, g.checker)
	if st, ok := g.typeDefs[name]; ok {
		return st, nil
	}

	st := &types.StructType{Opaque: opaque || declaredAmbient(t)}
	g.module.NewTypeDef(name, st)
	g.typeDefs[name] = st
	if st.Opaque {
		return st, nil
	}

	for _, prop := range g.storedProperties(t) {
		ft, err := g.lowerType(g.checker.TypeAtLocation(declarationOf(prop)))
		if err != nil {
			return nil, err
		}
		st.Fields = append(st.Fields, ft)
	}
	g.logLayout(st)
	return st, nil
}

// logLayout reports the size and padding of a completed struct. Structs
// whose fields are still being defined are skipped.
func (g *Generator) logLayout(st *types.StructType) {
	sl, err := g.layout.Struct(st)
	if err != nil {
		g.log.Debug("defined %s with %d fields", st, len(st.Fields))
		return
	}
	g.log.Debug("defined %s", sl)
}

// storedProperties returns the properties of t that occupy a field, in the
// checker's order.
func (g *Generator) storedProperties(t *ts.Type) []*ts.Symbol {
	var out []*ts.Symbol
	for _, p := range g.checker.PropertiesOfType(t) {
		if p.Is(ts.SymbolProperty) {
			out = append(out, p)
		}
	}
	return out
}

// fieldIndex returns the field index of the stored property name of t, or -1.
func (g *Generator) fieldIndex(t *ts.Type, name string) int {
	for i, p := range g.storedProperties(t) {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// isValueType reports whether values of t are passed by value: booleans,
// numbers, strings and pointers. Everything else lives behind a pointer.
func (g *Generator) isValueType(t types.Type) bool {
	switch t := t.(type) {
	case *types.IntType:
		return t.BitSize == 1
	case *types.FloatType:
		return t.Kind == types.FloatKindDouble
	case *types.PointerType:
		return true
	case *types.StructType:
		return g.stringType != nil && t == g.stringType
	}
	return false
}

func (g *Generator) isString(t types.Type) bool {
	st, ok := t.(*types.StructType)
	return ok && g.stringType != nil && st == g.stringType
}

func isDouble(t types.Type) bool {
	ft, ok := t.(*types.FloatType)
	return ok && ft.Kind == types.FloatKindDouble
}

func declaredAmbient(t *ts.Type) bool {
	if t.Symbol == nil {
		return false
	}
	for _, d := range t.Symbol.Declarations {
		if c, ok := d.(*ast.ClassDeclaration); ok && c.Ambient {
			return true
		}
	}
	return false
}

func declarationOf(sym *ts.Symbol) ast.Node {
	if sym.ValueDeclaration != nil || len(sym.Declarations) == 0 {
		return sym.ValueDeclaration
	}
	return sym.Declarations[0]
}
