package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/nativets-lang/nativets/internal/errors"
)

// Runtime entry points the generated code may call. The runtime library
// providing them is linked separately.
const (
	BuiltinGCAllocate   = "gc_allocate"
	BuiltinStringConcat = "string__concat"
)

// BuiltinFunctions contains the runtime functions known to the generator.
// string__concat coincides with the mangled name of String.concat, so a
// declared String interface and the "+" operator share one declaration.
var BuiltinFunctions = map[string]BuiltinFunction{
	BuiltinGCAllocate: {
		Name:       BuiltinGCAllocate,
		ReturnType: "i8*",
		Parameters: []BuiltinParameter{
			{Name: "size", Type: "i32"},
		},
	},
	BuiltinStringConcat: {
		Name:       BuiltinStringConcat,
		ReturnType: StringTypeName,
		Parameters: []BuiltinParameter{
			{Name: "lhs", Type: StringTypeName},
			{Name: "rhs", Type: StringTypeName},
		},
	},
}

// BuiltinFunction represents a runtime function signature
type BuiltinFunction struct {
	Name       string
	ReturnType string
	Parameters []BuiltinParameter
}

// BuiltinParameter represents a parameter of a runtime function
type BuiltinParameter struct {
	Name string
	Type string
}

// IsBuiltinFunction checks if a function name is a runtime function
func IsBuiltinFunction(name string) bool {
	_, exists := BuiltinFunctions[name]
	return exists
}

// GetBuiltinFunction returns the runtime function definition
func GetBuiltinFunction(name string) (BuiltinFunction, bool) {
	fn, exists := BuiltinFunctions[name]
	return fn, exists
}

// getBuiltin returns the declaration of a runtime function, adding it to the
// module on first reference.
func (g *Generator) getBuiltin(name string) (*ir.Func, error) {
	if f, ok := g.funcs[name]; ok {
		return f, nil
	}
	def, ok := GetBuiltinFunction(name)
	if !ok {
		return nil, errors.UnknownBuiltin(name)
	}

	ret, err := g.builtinType(def.ReturnType)
	if err != nil {
		return nil, err
	}
	params := make([]*ir.Param, len(def.Parameters))
	for i, p := range def.Parameters {
		t, err := g.builtinType(p.Type)
		if err != nil {
			return nil, err
		}
		params[i] = ir.NewParam(p.Name, t)
	}

	f := g.module.NewFunc(def.Name, ret, params...)
	g.funcs[name] = f
	return f, nil
}

func (g *Generator) builtinType(name string) (types.Type, error) {
	switch name {
	case "void":
		return types.Void, nil
	case "i32":
		return types.I32, nil
	case "i8*":
		return types.I8Ptr, nil
	case StringTypeName:
		return g.stringRecord(), nil
	}
	return nil, errors.Internal("unknown runtime type %q", name)
}

// createGCAllocate allocates one t on the collected heap at the cursor and
// returns a t*. Value types are never heap-allocated.
func (g *Generator) createGCAllocate(t types.Type) (value.Value, error) {
	if g.isValueType(t) {
		return nil, errors.ValueTypeAllocation(t.String())
	}
	size, err := g.layout.SizeOf(t)
	if err != nil {
		return nil, errors.Internal("size of %s: %v", t, err)
	}
	alloc, err := g.getBuiltin(BuiltinGCAllocate)
	if err != nil {
		return nil, err
	}

	raw := g.cur.NewCall(alloc, constant.NewInt(types.I32, size))
	return g.cur.NewBitCast(raw, types.NewPointer(t)), nil
}
