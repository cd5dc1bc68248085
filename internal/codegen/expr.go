package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/env"
	"github.com/nativets-lang/nativets/internal/errors"
	ts "github.com/nativets-lang/nativets/internal/types"
)

// lowerRvalue lowers expr and loads the result when it is the address of a
// value-type slot.
func (g *Generator) lowerRvalue(expr ast.Expression) (value.Value, error) {
	v, err := g.lowerLvalue(expr)
	if err != nil {
		return nil, err
	}
	return g.toRvalue(v), nil
}

func (g *Generator) toRvalue(v value.Value) value.Value {
	ptr, ok := v.Type().(*types.PointerType)
	if !ok || !g.isValueType(ptr.ElemType) {
		return v
	}
	return g.cur.NewLoad(ptr.ElemType, v)
}

// lowerLvalue lowers expr without loading from the address it yields.
// Unhandled expression kinds are errors.
func (g *Generator) lowerLvalue(expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.NumericLiteral:
		return constant.NewFloat(types.Double, e.Value), nil
	case *ast.BooleanLiteral:
		return constant.NewBool(e.Value), nil
	case *ast.StringLiteral:
		return g.stringLiteral(e.Value), nil
	case *ast.Identifier:
		return g.lookupValue(e.Name, e)
	case *ast.ThisExpression:
		return g.lookupValue("this", e)
	case *ast.BinaryExpression:
		return g.lowerBinary(e)
	case *ast.PrefixUnaryExpression:
		return g.lowerPrefixUnary(e)
	case *ast.PropertyAccessExpression:
		return g.lowerPropertyAccess(e)
	case *ast.NewExpression:
		return g.lowerNew(e)
	case *ast.CallExpression:
		return g.lowerCall(e)
	default:
		return nil, errors.UnsupportedSyntax(expr.Kind().String(), expr.String()).At(expr.GetSpan())
	}
}

func (g *Generator) lookupValue(name string, n ast.Node) (value.Value, error) {
	v, err := g.env.GetValue(name)
	if err == nil {
		v, err = g.local(name, v)
	}
	if err != nil {
		return nil, atSpan(err, n)
	}
	return v, nil
}

// stringLiteral returns a %string constant pointing at a private,
// NUL-terminated global. Equal literals share one global.
func (g *Generator) stringLiteral(s string) constant.Constant {
	glob, ok := g.strings[s]
	if !ok {
		data := constant.NewCharArrayFromString(s + "\x00")
		glob = g.module.NewGlobalDef(fmt.Sprintf(".str.%d", len(g.strings)), data)
		glob.Immutable = true
		glob.Linkage = enum.LinkagePrivate
		glob.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
		g.strings[s] = glob
	}

	zero := constant.NewInt(types.I32, 0)
	ptr := constant.NewGetElementPtr(glob.ContentType, glob, zero, zero)
	return constant.NewStruct(g.stringRecord(), ptr, constant.NewInt(types.I32, int64(len(s))))
}

func (g *Generator) lowerBinary(e *ast.BinaryExpression) (value.Value, error) {
	if e.Operator == ast.OpEquals {
		return nil, errors.Assignment().At(e.GetSpan())
	}

	l, err := g.lowerRvalue(e.Left)
	if err != nil {
		return nil, err
	}
	r, err := g.lowerRvalue(e.Right)
	if err != nil {
		return nil, err
	}

	if e.Operator == ast.OpPlus {
		return g.lowerPlus(e, l, r)
	}

	pred, isCmp := comparisons[e.Operator]
	arith, isArith := arithmetic[e.Operator]
	if !isCmp && !isArith {
		return nil, errors.UnsupportedOperator(string(e.Operator)).At(e.GetSpan())
	}
	if !isDouble(l.Type()) || !isDouble(r.Type()) {
		return nil, errors.InvalidOperands(string(e.Operator), l.Type().String(), r.Type().String()).At(e.GetSpan())
	}
	if isCmp {
		return g.cur.NewFCmp(pred, l, r), nil
	}
	return arith(g.cur, l, r), nil
}

var comparisons = map[ast.Operator]enum.FPred{
	ast.OpEqualsEquals:            enum.FPredOEQ,
	ast.OpEqualsEqualsEquals:      enum.FPredOEQ,
	ast.OpExclamationEquals:       enum.FPredONE,
	ast.OpExclamationEqualsEquals: enum.FPredONE,
	ast.OpLessThan:                enum.FPredOLT,
	ast.OpGreaterThan:             enum.FPredOGT,
	ast.OpLessThanEquals:          enum.FPredOLE,
	ast.OpGreaterThanEquals:       enum.FPredOGE,
}

var arithmetic = map[ast.Operator]func(b *ir.Block, x, y value.Value) value.Value{
	ast.OpMinus:    func(b *ir.Block, x, y value.Value) value.Value { return b.NewFSub(x, y) },
	ast.OpAsterisk: func(b *ir.Block, x, y value.Value) value.Value { return b.NewFMul(x, y) },
	ast.OpSlash:    func(b *ir.Block, x, y value.Value) value.Value { return b.NewFDiv(x, y) },
	ast.OpPercent:  func(b *ir.Block, x, y value.Value) value.Value { return b.NewFRem(x, y) },
}

// lowerPlus adds numbers and concatenates strings through the runtime.
func (g *Generator) lowerPlus(e *ast.BinaryExpression, l, r value.Value) (value.Value, error) {
	switch {
	case isDouble(l.Type()) && isDouble(r.Type()):
		return g.cur.NewFAdd(l, r), nil
	case g.isString(l.Type()) && g.isString(r.Type()):
		concat, err := g.getBuiltin(BuiltinStringConcat)
		if err != nil {
			return nil, err
		}
		return g.cur.NewCall(concat, l, r), nil
	default:
		return nil, errors.InvalidOperands("+", l.Type().String(), r.Type().String()).At(e.GetSpan())
	}
}

func (g *Generator) lowerPrefixUnary(e *ast.PrefixUnaryExpression) (value.Value, error) {
	if e.Operator != ast.OpPlus {
		return nil, errors.UnsupportedOperator(string(e.Operator)).At(e.GetSpan())
	}
	return g.lowerRvalue(e.Operand)
}

// lowerPropertyAccess resolves a member of a namespace, the length of a
// string, or a stored property of an object. The latter yields the field
// address.
func (g *Generator) lowerPropertyAccess(e *ast.PropertyAccessExpression) (value.Value, error) {
	if scope, ok := g.resolveScope(e.Expression); ok {
		b, err := scope.Get(e.Name)
		if err != nil {
			return nil, atSpan(err, e)
		}
		if b.IsScope() {
			return nil, errors.UnsupportedSyntax("namespace reference", e.String()).At(e.GetSpan())
		}
		v, err := g.local(e.String(), b.Value)
		return v, atSpan(err, e)
	}

	if sym := g.checker.SymbolAtLocation(e); sym.Is(ts.SymbolMethod) {
		return nil, errors.UnboundMethodAccess(e.String()).At(e.GetSpan())
	}

	recv, err := g.lowerRvalue(e.Expression)
	if err != nil {
		return nil, err
	}

	if g.isString(recv.Type()) && e.Name == "length" {
		n := g.cur.NewExtractValue(recv, 1)
		return g.cur.NewSIToFP(n, types.Double), nil
	}

	owner := g.checker.TypeAtLocation(e.Expression)
	ptr, ok := recv.Type().(*types.PointerType)
	if !ok {
		return nil, errors.UnknownMember(e.Name, g.checker.TypeToString(owner)).At(e.GetSpan())
	}
	st, ok := ptr.ElemType.(*types.StructType)
	if !ok || st.Opaque {
		return nil, errors.UnknownMember(e.Name, g.checker.TypeToString(owner)).At(e.GetSpan())
	}
	idx := g.fieldIndex(owner, e.Name)
	if idx < 0 {
		return nil, errors.UnknownMember(e.Name, g.checker.TypeToString(owner)).At(e.GetSpan())
	}

	return g.cur.NewGetElementPtr(st, recv, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(idx))), nil
}

// resolveScope reports whether expr names a namespace or class scope.
func (g *Generator) resolveScope(expr ast.Expression) (*env.Scope, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		b, err := g.env.Get(e.Name)
		if err != nil || !b.IsScope() {
			return nil, false
		}
		return b.Scope, true
	case *ast.PropertyAccessExpression:
		outer, ok := g.resolveScope(e.Expression)
		if !ok {
			return nil, false
		}
		b, ok := outer.Lookup(e.Name)
		if !ok || !b.IsScope() {
			return nil, false
		}
		return b.Scope, true
	}
	return nil, false
}

// lowerNew emits the constructor of the instantiated class and calls it.
func (g *Generator) lowerNew(e *ast.NewExpression) (value.Value, error) {
	sym := g.checker.SymbolAtLocation(e.Expression)
	var class *ast.ClassDeclaration
	if sym != nil {
		class, _ = sym.ValueDeclaration.(*ast.ClassDeclaration)
	}
	if class == nil {
		return nil, errors.NotClass(g.checker.TypeToString(g.checker.TypeAtLocation(e.Expression))).At(e.GetSpan())
	}
	ctor := class.Constructor()
	if ctor == nil {
		return nil, errors.MissingConstructor(class.Name).At(e.GetSpan())
	}

	f, err := g.emitCallee(ctor, g.checker.TypeAtLocation(e), e.Arguments)
	if err != nil {
		return nil, err
	}
	args, err := g.lowerArguments(e.Arguments)
	if err != nil {
		return nil, err
	}
	return g.cur.NewCall(f, args...), nil
}

// lowerCall calls a free function or a method. Method receivers are passed
// as the first argument.
func (g *Generator) lowerCall(e *ast.CallExpression) (value.Value, error) {
	sym := g.checker.SymbolAtLocation(e.Expression)
	if sym == nil || sym.ValueDeclaration == nil {
		return nil, errors.InvalidCallTarget(e.Expression.String()).At(e.GetSpan())
	}
	decl := sym.ValueDeclaration
	if _, ok := decl.(ast.FunctionLike); !ok {
		return nil, errors.InvalidCallTarget(e.Expression.String()).At(e.GetSpan())
	}

	access, isMember := e.Expression.(*ast.PropertyAccessExpression)
	isMethod := isMember && sym.Is(ts.SymbolMethod)

	var owner *ts.Type
	if isMethod {
		owner = g.checker.TypeAtLocation(access.Expression)
	}

	f, err := g.emitCallee(decl, owner, e.Arguments)
	if err != nil {
		return nil, err
	}

	var args []value.Value
	if isMethod {
		recv, err := g.lowerRvalue(access.Expression)
		if err != nil {
			return nil, err
		}
		args = append(args, recv)
	}
	rest, err := g.lowerArguments(e.Arguments)
	if err != nil {
		return nil, err
	}
	return g.cur.NewCall(f, append(args, rest...)...), nil
}

// emitCallee emits decl for the given call-site arguments with the cursor
// guarded.
func (g *Generator) emitCallee(decl ast.Node, owner *ts.Type, args []ast.Expression) (*ir.Func, error) {
	defer g.keepInsertionPoint()()

	argTypes := make([]*ts.Type, len(args))
	for i, a := range args {
		argTypes[i] = g.checker.TypeAtLocation(a)
	}
	return g.emitFunction(decl, owner, argTypes)
}

func (g *Generator) lowerArguments(args []ast.Expression) ([]value.Value, error) {
	out := make([]value.Value, 0, len(args))
	for _, a := range args {
		v, err := g.lowerRvalue(a)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
