// Package mangle derives the deterministic names under which lowered
// functions and types are emitted. A mangled name is the de-duplication key
// for the generator's declaration tables, so equal inputs must always yield
// byte-identical output.
package mangle

import (
	"strings"

	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/errors"
	"github.com/nativets-lang/nativets/internal/types"
)

// Separator joins the segments of a mangled name.
const Separator = "__"

// Reserved base names for declarations without an identifier.
const (
	ConstructorName = "constructor"
	SubscriptName   = "subscript"
)

// BaseName returns the unqualified name of a declaration.
func BaseName(decl ast.Node) string {
	switch d := decl.(type) {
	case *ast.Constructor:
		return ConstructorName
	case *ast.IndexSignature:
		return SubscriptName
	case *ast.FunctionDeclaration:
		return d.Name
	case *ast.MethodDeclaration:
		return d.Name
	case *ast.MethodSignature:
		return d.Name
	case *ast.PropertyDeclaration:
		return d.Name
	case *ast.ClassDeclaration:
		return d.Name
	case *ast.InterfaceDeclaration:
		return d.Name
	case *ast.ModuleDeclaration:
		return d.Name
	case *ast.VariableDeclaration:
		return d.Name
	case *ast.Parameter:
		return d.Name
	default:
		return decl.String()
	}
}

// Function mangles a function-like declaration. Members of classes and
// interfaces require the concrete owner type; free functions declared in
// namespaces are prefixed with the namespace path.
func Function(decl ast.Node, owner *types.Type, checker types.Checker) (string, error) {
	var prefix string

	switch decl.Parent().(type) {
	case *ast.ClassDeclaration, *ast.InterfaceDeclaration:
		if owner == nil {
			return "", errors.MissingOwner(decl.String()).At(decl.GetSpan())
		}
	}

	if owner != nil {
		prefix = Type(owner, checker)
	} else if path := ast.NamespacePath(decl); len(path) > 0 {
		prefix = strings.Join(path, Separator)
	}

	if prefix == "" {
		return BaseName(decl), nil
	}
	return prefix + Separator + BaseName(decl), nil
}

// Type mangles a type: its base name followed by the mangled names of its
// type arguments, recursively.
func Type(t *types.Type, checker types.Checker) string {
	parts := []string{typeBaseName(t, checker)}
	for _, arg := range t.TypeArguments {
		parts = append(parts, Type(arg, checker))
	}
	return strings.Join(parts, Separator)
}

// typeBaseName is the symbol name, qualified by enclosing namespaces for
// declared types, or the printed base type for symbol-less types.
func typeBaseName(t *types.Type, checker types.Checker) string {
	if t.Symbol == nil {
		return checker.TypeToString(checker.BaseTypeOfLiteralType(t))
	}

	name := t.Symbol.Name
	if decl := declarationOf(t.Symbol); decl != nil {
		if path := ast.NamespacePath(decl); len(path) > 0 {
			name = strings.Join(path, Separator) + Separator + name
		}
	}
	return name
}

func declarationOf(sym *types.Symbol) ast.Node {
	if sym.ValueDeclaration != nil {
		return sym.ValueDeclaration
	}
	if len(sym.Declarations) > 0 {
		return sym.Declarations[0]
	}
	return nil
}
