package codegen

import (
	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/env"
	"github.com/nativets-lang/nativets/internal/mangle"
	ts "github.com/nativets-lang/nativets/internal/types"
)

// emitClass binds a class scope for one instantiation of decl in container.
// A nil owner means the declaration itself is being visited: generic classes
// are then skipped and instantiated later, on first use, with a concrete
// owner. Members are not emitted here; each is emitted when first referenced.
func (g *Generator) emitClass(decl *ast.ClassDeclaration, owner *ts.Type, container *env.Scope) (outcome, error) {
	if owner == nil {
		if len(decl.TypeParameters) > 0 {
			g.log.Debug("deferring generic class %s", decl.Name)
			return outcomeSkipped, nil
		}
		owner = g.checker.TypeAtLocation(decl)
	}

	name := mangle.Type(owner, g.checker)
	if _, ok := container.Lookup(name); ok {
		return outcomeSkipped, nil
	}

	st, err := g.buildStruct(owner, decl.Ambient)
	if err != nil {
		return outcomeLowered, err
	}

	scope := env.NewScope(name, &env.ScopeData{Declaration: decl, Type: st})
	if err := container.SetScope(name, scope); err != nil {
		return outcomeLowered, err
	}
	return outcomeLowered, nil
}

// emitInterface binds an interface scope. The String interface additionally
// binds "string", the scope string methods are emitted into. Repeated
// declarations of one interface merge into the first scope.
func (g *Generator) emitInterface(decl *ast.InterfaceDeclaration, container *env.Scope) error {
	if _, ok := container.Lookup(decl.Name); ok {
		return nil
	}
	if err := container.SetScope(decl.Name, env.NewScope(decl.Name, &env.ScopeData{Declaration: decl})); err != nil {
		return err
	}

	if decl.Name == "String" {
		if _, ok := container.Lookup(StringTypeName); !ok {
			data := &env.ScopeData{Declaration: decl, Type: g.stringRecord()}
			return container.SetScope(StringTypeName, env.NewScope(StringTypeName, data))
		}
	}
	return nil
}

// emitNamespace binds the namespace scope before lowering its body, so that
// declarations in the body can be resolved while the body is still being
// lowered. A namespace declared more than once reuses its scope.
func (g *Generator) emitNamespace(decl *ast.ModuleDeclaration, container *env.Scope) error {
	var ns *env.Scope
	if b, ok := container.Lookup(decl.Name); ok && b.IsScope() {
		ns = b.Scope
	} else {
		ns = env.NewScope(decl.Name, &env.ScopeData{Declaration: decl})
		if err := container.SetScope(decl.Name, ns); err != nil {
			return err
		}
	}

	return g.env.Enter(ns, func() error {
		return g.lowerStatements(decl.Body, ns)
	})
}
