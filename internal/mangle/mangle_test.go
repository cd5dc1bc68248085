package mangle

import (
	stderrors "errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/errors"
	"github.com/nativets-lang/nativets/internal/types"
	"github.com/nativets-lang/nativets/internal/types/typesmock"
)

var (
	numberType = &types.Type{Flags: types.FlagNumber, Name: "number"}
	stringType = &types.Type{Flags: types.FlagString, Name: "string"}
)

// primitiveChecker answers the two queries used for symbol-less types.
func primitiveChecker(t *testing.T) *typesmock.MockChecker {
	ctrl := gomock.NewController(t)
	checker := typesmock.NewMockChecker(ctrl)
	checker.EXPECT().BaseTypeOfLiteralType(gomock.Any()).DoAndReturn(func(t *types.Type) *types.Type { return t }).AnyTimes()
	checker.EXPECT().TypeToString(gomock.Any()).DoAndReturn(func(t *types.Type) string { return t.Name }).AnyTimes()
	return checker
}

func genericClass() (*ast.ClassDeclaration, *ast.MethodDeclaration, *types.Symbol) {
	method := &ast.MethodDeclaration{Name: "get", Body: &ast.Block{}}
	class := &ast.ClassDeclaration{Name: "Box", TypeParameters: []string{"T"}, Members: []ast.Member{
		method,
		&ast.Constructor{Body: &ast.Block{}},
		&ast.IndexSignature{Parameters: []*ast.Parameter{{Name: "i"}}},
	}}
	ast.SetParents(&ast.SourceFile{Statements: []ast.Statement{class}})
	sym := &types.Symbol{Name: "Box", Flags: types.SymbolClass, Declarations: []ast.Node{class}, ValueDeclaration: class}
	return class, method, sym
}

func TestFunctionIsDeterministic(t *testing.T) {
	checker := primitiveChecker(t)
	_, method, sym := genericClass()
	owner := &types.Type{Flags: types.FlagObject, Symbol: sym, TypeArguments: []*types.Type{numberType}}

	first, err := Function(method, owner, checker)
	if err != nil {
		t.Fatalf("Function: %v", err)
	}
	second, err := Function(method, owner, checker)
	if err != nil {
		t.Fatalf("Function: %v", err)
	}
	if first != second {
		t.Fatalf("mangling is not deterministic: %q vs %q", first, second)
	}
	if first != "Box__number__get" {
		t.Errorf("Function(get, Box<number>) = %q, want Box__number__get", first)
	}
}

func TestGenericOwnersDiffer(t *testing.T) {
	checker := primitiveChecker(t)
	_, method, sym := genericClass()

	withNumber, _ := Function(method, &types.Type{Flags: types.FlagObject, Symbol: sym, TypeArguments: []*types.Type{numberType}}, checker)
	withString, _ := Function(method, &types.Type{Flags: types.FlagObject, Symbol: sym, TypeArguments: []*types.Type{stringType}}, checker)
	if withNumber == withString {
		t.Fatalf("Box<number> and Box<string> mangle to the same name %q", withNumber)
	}

	nested := &types.Type{Flags: types.FlagObject, Symbol: sym, TypeArguments: []*types.Type{
		{Flags: types.FlagObject, Symbol: sym, TypeArguments: []*types.Type{stringType}},
	}}
	if got := Type(nested, checker); got != "Box__Box__string" {
		t.Errorf("Type(Box<Box<string>>) = %q", got)
	}
}

func TestReservedBaseNames(t *testing.T) {
	checker := primitiveChecker(t)
	class, _, sym := genericClass()
	owner := &types.Type{Flags: types.FlagObject, Symbol: sym}

	tests := []struct {
		decl ast.Node
		want string
	}{
		{class.Members[1], "Box__constructor"},
		{class.Members[2], "Box__subscript"},
	}
	for _, tt := range tests {
		got, err := Function(tt.decl, owner, checker)
		if err != nil || got != tt.want {
			t.Errorf("Function(%s) = %q, %v, want %q", tt.decl.Kind(), got, err, tt.want)
		}
	}
}

func TestMemberWithoutOwnerFails(t *testing.T) {
	_, method, _ := genericClass()

	_, err := Function(method, nil, primitiveChecker(t))
	if !stderrors.Is(err, errors.ErrMissingOwner) {
		t.Fatalf("Function(method, nil) = %v, want missing owner", err)
	}
	if err.Error() == "" || !errors.IsCategory(err, errors.CategoryInvariant) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestNamespacedDeclarations(t *testing.T) {
	fn := &ast.FunctionDeclaration{Name: "area", Body: &ast.Block{}}
	class := &ast.ClassDeclaration{Name: "Circle"}
	inner := &ast.ModuleDeclaration{Name: "Shapes", Body: []ast.Statement{fn, class}}
	outer := &ast.ModuleDeclaration{Name: "Geo", Body: []ast.Statement{inner}}
	top := &ast.FunctionDeclaration{Name: "main2", Body: &ast.Block{}}
	ast.SetParents(&ast.SourceFile{Statements: []ast.Statement{outer, top}})

	checker := primitiveChecker(t)

	if got, _ := Function(fn, nil, checker); got != "Geo__Shapes__area" {
		t.Errorf("namespaced function = %q", got)
	}
	if got, _ := Function(top, nil, checker); got != "main2" {
		t.Errorf("top-level function = %q", got)
	}

	circle := &types.Type{Flags: types.FlagObject, Symbol: &types.Symbol{Name: "Circle", Flags: types.SymbolClass, Declarations: []ast.Node{class}}}
	if got := Type(circle, checker); got != "Geo__Shapes__Circle" {
		t.Errorf("namespaced class type = %q", got)
	}
}

func TestSymbolLessTypesUseBaseType(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := typesmock.NewMockChecker(ctrl)

	literal := &types.Type{Flags: types.FlagStringLiteral, Value: "hi"}
	checker.EXPECT().BaseTypeOfLiteralType(literal).Return(stringType).Times(1)
	checker.EXPECT().TypeToString(stringType).Return("string").Times(1)

	if got := Type(literal, checker); got != "string" {
		t.Errorf("Type(\"hi\") = %q, want string", got)
	}
}
