package codegen

import (
	stderrors "errors"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"go.uber.org/mock/gomock"

	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/errors"
	ts "github.com/nativets-lang/nativets/internal/types"
	"github.com/nativets-lang/nativets/internal/types/typesmock"
)

var (
	numberType = &ts.Type{Flags: ts.FlagNumber, Name: "number"}
	stringType = &ts.Type{Flags: ts.FlagString, Name: "string"}
)

func identity() (*ast.SourceFile, *ast.FunctionDeclaration) {
	fn := &ast.FunctionDeclaration{
		Name:       "identity",
		Parameters: []*ast.Parameter{{Name: "a"}},
		Body: &ast.Block{Statements: []ast.Statement{
			&ast.ReturnStatement{Expression: &ast.Identifier{Name: "a"}},
		}},
	}
	file := &ast.SourceFile{Name: "identity.ts", Statements: []ast.Statement{fn}}
	ast.SetParents(file)
	return file, fn
}

func TestEmitFunctionIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := typesmock.NewMockChecker(ctrl)
	_, fn := identity()

	checker.EXPECT().SignatureFromDeclaration(fn).Return(&ts.Signature{
		Declaration: fn,
		Parameters:  []*ts.Symbol{{Name: "a", Flags: ts.SymbolParameter}},
		ReturnType:  numberType,
	}).Times(1)

	g := New(checker, Options{})
	first, err := g.emitFunction(fn, nil, []*ts.Type{numberType})
	if err != nil {
		t.Fatalf("emitFunction: %v", err)
	}
	second, err := g.emitFunction(fn, nil, []*ts.Type{numberType})
	if err != nil {
		t.Fatalf("second emitFunction: %v", err)
	}

	if first != second {
		t.Fatalf("repeated emission returned a different function")
	}
	var count int
	for _, f := range g.Module().Funcs {
		if f.Name() == "identity" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("identity emitted %d times", count)
	}
	if b, ok := g.Environment().Global().Lookup("identity"); !ok || b.Value != first {
		t.Errorf("identity is not bound in the global scope")
	}
	if ret, ok := first.Blocks[0].Term.(*ir.TermRet); !ok || ret.X != first.Params[0] {
		t.Errorf("identity does not return its parameter: %v", first.Blocks[0].Term)
	}
}

func TestCursorIsRestoredAfterLazyEmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := typesmock.NewMockChecker(ctrl)
	_, fn := identity()
	checker.EXPECT().SignatureFromDeclaration(fn).Return(&ts.Signature{
		Parameters: []*ts.Symbol{{Name: "a"}},
		ReturnType: numberType,
	})
	checker.EXPECT().TypeAtLocation(gomock.Any()).Return(numberType)

	g := New(checker, Options{})
	before := g.cur

	if _, err := g.emitCallee(fn, nil, []ast.Expression{&ast.NumericLiteral{Value: 1}}); err != nil {
		t.Fatalf("emitCallee: %v", err)
	}
	if g.cur != before || g.frame.fn != g.main {
		t.Errorf("cursor left in %s", g.frame.fn.Name())
	}
}

func TestStructFieldsFollowPropertyOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := typesmock.NewMockChecker(ctrl)

	aDecl := &ast.PropertyDeclaration{Name: "a"}
	bDecl := &ast.PropertyDeclaration{Name: "b"}
	pair := &ts.Type{Flags: ts.FlagObject, Symbol: &ts.Symbol{Name: "Pair", Flags: ts.SymbolClass}}

	checker.EXPECT().PropertiesOfType(pair).Return([]*ts.Symbol{
		{Name: "first", Flags: ts.SymbolMethod},
		{Name: "a", Flags: ts.SymbolProperty, ValueDeclaration: aDecl},
		{Name: "second", Flags: ts.SymbolMethod},
		{Name: "b", Flags: ts.SymbolProperty, ValueDeclaration: bDecl},
	}).Times(1)
	checker.EXPECT().TypeAtLocation(aDecl).Return(numberType)
	checker.EXPECT().TypeAtLocation(bDecl).Return(stringType)

	log := &recordingLogger{}
	g := New(checker, Options{Logger: log})
	st, err := g.buildStruct(pair, false)
	if err != nil {
		t.Fatalf("buildStruct: %v", err)
	}
	if len(st.Fields) != 2 || !isDouble(st.Fields[0]) || !g.isString(st.Fields[1]) {
		t.Fatalf("Pair fields = %v, want [double %%string]", st.Fields)
	}
	if want := "defined Struct Pair (2 fields, 24 bytes, 0 padding)"; len(log.debug) != 1 || log.debug[0] != want {
		t.Errorf("debug log = %q, want [%q]", log.debug, want)
	}

	again, err := g.buildStruct(pair, false)
	if err != nil || again != st {
		t.Errorf("second buildStruct = %v, %v; want the same struct", again, err)
	}
	if st.Name() != "Pair" {
		t.Errorf("struct name = %q, want Pair", st.Name())
	}
}

func TestSelfReferentialStructTerminates(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := typesmock.NewMockChecker(ctrl)

	nextDecl := &ast.PropertyDeclaration{Name: "next"}
	node := &ts.Type{Flags: ts.FlagObject, Symbol: &ts.Symbol{Name: "Node", Flags: ts.SymbolClass}}
	checker.EXPECT().PropertiesOfType(node).Return([]*ts.Symbol{
		{Name: "next", Flags: ts.SymbolProperty, ValueDeclaration: nextDecl},
	})
	checker.EXPECT().TypeAtLocation(nextDecl).Return(node)

	g := New(checker, Options{})
	st, err := g.buildStruct(node, false)
	if err != nil {
		t.Fatalf("buildStruct: %v", err)
	}
	ptr, ok := st.Fields[0].(*types.PointerType)
	if !ok || ptr.ElemType != st {
		t.Errorf("Node.next = %v, want %%Node*", st.Fields[0])
	}
}

func TestLowerType(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := typesmock.NewMockChecker(ctrl)
	union := &ts.Type{Flags: ts.FlagUnion, Name: "number | string"}
	checker.EXPECT().TypeToString(union).Return("number | string")

	g := New(checker, Options{})

	tests := []struct {
		name string
		in   *ts.Type
		want types.Type
		err  error
	}{
		{"number", numberType, types.Double, nil},
		{"number literal", &ts.Type{Flags: ts.FlagNumberLiteral, Value: 1.0}, types.Double, nil},
		{"boolean", &ts.Type{Flags: ts.FlagBoolean}, types.I1, nil},
		{"void", &ts.Type{Flags: ts.FlagVoid}, types.Void, nil},
		{"string", stringType, g.stringRecord(), nil},
		{"any", &ts.Type{Flags: ts.FlagAny}, nil, errors.ErrAnyType},
		{"union", union, nil, errors.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.lowerType(tt.in)
			if tt.err != nil {
				if !stderrors.Is(err, tt.err) {
					t.Fatalf("lowerType error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("lowerType: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("lowerType = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValueType(t *testing.T) {
	g := New(typesmock.NewMockChecker(gomock.NewController(t)), Options{})
	record := types.NewStruct(types.Double)

	tests := []struct {
		name string
		in   types.Type
		want bool
	}{
		{"i1", types.I1, true},
		{"double", types.Double, true},
		{"string", g.stringRecord(), true},
		{"pointer", types.NewPointer(record), true},
		{"i32", types.I32, false},
		{"record", record, false},
	}

	for _, tt := range tests {
		if got := g.isValueType(tt.in); got != tt.want {
			t.Errorf("isValueType(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDeclaringScopeErrors(t *testing.T) {
	inner := &ast.FunctionDeclaration{Name: "inner", Body: &ast.Block{}}
	outer := &ast.FunctionDeclaration{Name: "outer", Body: &ast.Block{Statements: []ast.Statement{inner}}}
	method := &ast.MethodDeclaration{Name: "m", Body: &ast.Block{}}
	class := &ast.ClassDeclaration{Name: "C", Members: []ast.Member{method}}
	ast.SetParents(&ast.SourceFile{Statements: []ast.Statement{outer, class}})

	g := New(typesmock.NewMockChecker(gomock.NewController(t)), Options{})

	if _, err := g.emitFunction(inner, nil, nil); !stderrors.Is(err, errors.ErrUnhandledContext) {
		t.Errorf("nested function: error = %v, want unhandled declaration context", err)
	}
	if _, err := g.emitFunction(method, nil, nil); !stderrors.Is(err, errors.ErrMissingOwner) {
		t.Errorf("method without owner: error = %v, want missing owner", err)
	}
}

func TestBuiltins(t *testing.T) {
	g := New(typesmock.NewMockChecker(gomock.NewController(t)), Options{})

	first, err := g.getBuiltin(BuiltinStringConcat)
	if err != nil {
		t.Fatalf("getBuiltin: %v", err)
	}
	second, err := g.getBuiltin(BuiltinStringConcat)
	if err != nil || first != second {
		t.Fatalf("second getBuiltin = %v, %v; want the same declaration", second, err)
	}
	if len(first.Params) != 2 || !g.isString(first.Sig.RetType) {
		t.Errorf("string__concat signature = %s", first.Sig.LLString())
	}

	if _, err := g.getBuiltin("print"); !stderrors.Is(err, errors.ErrUnknownBuiltin) {
		t.Errorf("unknown builtin error = %v", err)
	}
	if !IsBuiltinFunction(BuiltinGCAllocate) || IsBuiltinFunction("print") {
		t.Errorf("IsBuiltinFunction misreports")
	}

	if _, err := g.createGCAllocate(types.Double); !stderrors.Is(err, errors.ErrValueTypeAlloc) {
		t.Errorf("allocating a double: error = %v, want value type allocation", err)
	}
	obj, err := g.createGCAllocate(types.NewStruct(types.Double, types.I1))
	if err != nil {
		t.Fatalf("createGCAllocate: %v", err)
	}
	if _, ok := obj.Type().(*types.PointerType); !ok {
		t.Errorf("allocation has type %s, want a pointer", obj.Type())
	}
}

func TestStringLiteralsShareGlobals(t *testing.T) {
	g := New(typesmock.NewMockChecker(gomock.NewController(t)), Options{})

	g.stringLiteral("hi")
	g.stringLiteral("hi")
	g.stringLiteral("there")

	if n := len(g.Module().Globals); n != 2 {
		t.Fatalf("module has %d globals, want 2", n)
	}
	if !g.Module().Globals[0].Immutable {
		t.Errorf("string global is mutable")
	}
}

func TestAllocationSizeFollowsTarget(t *testing.T) {
	tests := []struct {
		triple string
		want   int64
	}{
		{"", 16},
		{"x86_64-unknown-linux-gnu", 16},
		{"wasm32-unknown-unknown", 8},
		{"i686-unknown-linux-gnu", 8},
	}

	for _, tt := range tests {
		t.Run(tt.triple, func(t *testing.T) {
			g := New(typesmock.NewMockChecker(gomock.NewController(t)), Options{TargetTriple: tt.triple})
			obj, err := g.createGCAllocate(types.NewStruct(types.I8Ptr, types.I32))
			if err != nil {
				t.Fatalf("createGCAllocate: %v", err)
			}
			cast, ok := obj.(*ir.InstBitCast)
			if !ok {
				t.Fatalf("allocation is %T, want bitcast", obj)
			}
			call, ok := cast.From.(*ir.InstCall)
			if !ok {
				t.Fatalf("bitcast of %T, want gc_allocate call", cast.From)
			}
			size, ok := call.Args[0].(*constant.Int)
			if !ok || size.X.Int64() != tt.want {
				t.Errorf("gc_allocate(%v), want %d bytes", call.Args[0], tt.want)
			}
		})
	}
}

func TestUnknownTargetFailsGeneration(t *testing.T) {
	g := New(typesmock.NewMockChecker(gomock.NewController(t)), Options{TargetTriple: "avr-atmel-none"})

	if err := g.Generate(&ast.SourceFile{Name: "empty.ts"}); !stderrors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("Generate error = %v, want invalid config", err)
	}
	if m, err := g.Finish(); m != nil || !stderrors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("Finish = %v, %v; want invalid config", m, err)
	}
}
