package codegen

import (
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/env"
	"github.com/nativets-lang/nativets/internal/errors"
	"github.com/nativets-lang/nativets/internal/mangle"
	ts "github.com/nativets-lang/nativets/internal/types"
)

// emitFunction returns the IR function for a function-like declaration,
// emitting it on first request. owner is the concrete type of the receiver
// for class and interface members and nil otherwise; argTypes are the checked
// types of the call-site arguments and determine the parameter types.
//
// The cursor is moved into the new function while its body is lowered;
// callers restore it with keepInsertionPoint.
func (g *Generator) emitFunction(decl ast.Node, owner *ts.Type, argTypes []*ts.Type) (*ir.Func, error) {
	fl, ok := decl.(ast.FunctionLike)
	if !ok {
		return nil, errors.InvalidCallTarget(decl.Kind().String()).At(decl.GetSpan())
	}

	name, err := mangle.Function(decl, owner, g.checker)
	if err != nil {
		return nil, err
	}
	if f, ok := g.funcs[name]; ok {
		return f, nil
	}

	parent, err := g.declaringScope(decl, owner)
	if err != nil {
		return nil, err
	}

	// Declarations of runtime functions take the runtime signature.
	if IsBuiltinFunction(name) && fl.FunctionBody() == nil {
		f, err := g.getBuiltin(name)
		if err != nil {
			return nil, err
		}
		if err := parent.SetValue(mangle.BaseName(decl), f); err != nil {
			return nil, err
		}
		return f, nil
	}

	var thisType types.Type
	if owner != nil {
		thisType, err = g.ownerType(parent, owner)
		if err != nil {
			return nil, err
		}
	}

	_, isCtor := decl.(*ast.Constructor)
	sig := g.checker.SignatureFromDeclaration(decl)
	if sig == nil {
		return nil, errors.Internal("no signature for %s", decl.Kind()).At(decl.GetSpan())
	}

	ret, err := g.returnType(decl, sig, owner, thisType)
	if err != nil {
		return nil, err
	}

	var names []string
	if hasThisParameter(decl) {
		names = append(names, "this")
	}
	for _, p := range sig.Parameters {
		names = append(names, p.Name)
	}

	var params []types.Type
	if hasThisParameter(decl) {
		if thisType == nil {
			return nil, errors.MissingOwner(decl.String()).At(decl.GetSpan())
		}
		params = append(params, receiverType(g, thisType))
	}
	for _, at := range argTypes {
		t, err := g.lowerType(at)
		if err != nil {
			return nil, err
		}
		params = append(params, t)
	}

	irParams := make([]*ir.Param, len(params))
	for i, t := range params {
		pname := ""
		if i < len(names) {
			pname = names[i]
		}
		irParams[i] = ir.NewParam(pname, t)
	}

	f := g.module.NewFunc(name, ret, irParams...)
	g.funcs[name] = f
	g.log.Debug("emitting %s", name)

	if body := fl.FunctionBody(); body != nil {
		err := g.env.Detached(func() error {
			return g.withNamespaces(ast.NamespacePath(decl), func() error {
				return g.env.WithScope(name, func(scope *env.Scope) error {
					return g.emitBody(f, decl, body, scope, isCtor, thisType, owner, names)
				})
			})
		})
		if err != nil {
			return nil, err
		}
		if err := verifyFunction(f); err != nil {
			text := ""
			if printable(f) {
				text = f.LLString()
			}
			return nil, errors.InvalidFunction(name, err.Error(), text).At(decl.GetSpan())
		}
	}

	if err := parent.SetValue(mangle.BaseName(decl), f); err != nil {
		return nil, err
	}
	return f, nil
}

func (g *Generator) emitBody(f *ir.Func, decl ast.Node, body *ast.Block, scope *env.Scope,
	isCtor bool, thisType types.Type, owner *ts.Type, names []string) error {
	for i, p := range f.Params {
		if i >= len(names) || names[i] == "" {
			continue
		}
		if err := scope.SetValue(names[i], p); err != nil {
			return err
		}
		g.localName(f, names[i])
	}

	g.cur = f.NewBlock("entry")
	g.frame = &frame{fn: f, ctor: isCtor}

	if isCtor {
		this, err := g.createGCAllocate(thisType)
		if err != nil {
			return err
		}
		g.frame.this = this
		if err := scope.SetValue("this", this); err != nil {
			return err
		}
		if err := g.initFields(decl.(*ast.Constructor), f, owner, thisType, this); err != nil {
			return err
		}
	} else if hasThisParameter(decl) {
		g.frame.this = f.Params[0]
	}

	if err := g.lowerStatements(body.Statements, scope); err != nil {
		return err
	}

	if g.cur.Term == nil {
		switch {
		case isCtor:
			g.cur.NewRet(g.frame.this)
		case f.Sig.RetType.Equal(types.Void):
			g.cur.NewRet(nil)
		default:
			g.cur.NewUnreachable()
		}
	}
	return nil
}

// initFields stores constructor parameter properties, then property
// initializers, into the freshly allocated object.
func (g *Generator) initFields(ctor *ast.Constructor, f *ir.Func, owner *ts.Type, st types.Type, this value.Value) error {
	for i, p := range ctor.Parameters {
		if !p.Property || i >= len(f.Params) {
			continue
		}
		if err := g.storeField(owner, st, this, p.Name, f.Params[i]); err != nil {
			return err
		}
	}

	class, ok := ctor.Parent().(*ast.ClassDeclaration)
	if !ok {
		return nil
	}
	for _, m := range class.Members {
		prop, ok := m.(*ast.PropertyDeclaration)
		if !ok || prop.Initializer == nil {
			continue
		}
		v, err := g.lowerRvalue(prop.Initializer)
		if err != nil {
			return err
		}
		if err := g.storeField(owner, st, this, prop.Name, v); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) storeField(owner *ts.Type, st types.Type, this value.Value, name string, v value.Value) error {
	idx := g.fieldIndex(owner, name)
	if idx < 0 {
		return errors.UnknownMember(name, g.checker.TypeToString(owner))
	}
	ptr := g.cur.NewGetElementPtr(st, this, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(idx)))
	g.cur.NewStore(v, ptr)
	return nil
}

// returnType computes the IR return type of decl.
func (g *Generator) returnType(decl ast.Node, sig *ts.Signature, owner *ts.Type, thisType types.Type) (types.Type, error) {
	switch decl.(type) {
	case *ast.Constructor:
		return types.NewPointer(thisType), nil
	case *ast.IndexSignature:
		elem := g.checker.IndexTypeOfType(owner)
		if elem == nil {
			return nil, errors.UnsupportedType(g.checker.TypeToString(owner)).At(decl.GetSpan())
		}
		t, err := g.lowerType(elem)
		if err != nil {
			return nil, err
		}
		return types.NewPointer(t), nil
	case *ast.PropertyDeclaration:
		return g.lowerType(g.checker.TypeAtLocation(decl))
	default:
		return g.lowerType(sig.ReturnType)
	}
}

func hasThisParameter(decl ast.Node) bool {
	switch decl.(type) {
	case *ast.MethodDeclaration, *ast.MethodSignature, *ast.IndexSignature, *ast.PropertyDeclaration:
		return true
	}
	return false
}

// receiverType passes value types by value and objects by pointer.
func receiverType(g *Generator, thisType types.Type) types.Type {
	if g.isValueType(thisType) {
		return thisType
	}
	return types.NewPointer(thisType)
}

// declaringScope returns the scope a function-like declaration is bound in:
// the global scope for top-level functions, the namespace scope for functions
// in namespaces, and the scope of the concrete owner type for members.
func (g *Generator) declaringScope(decl ast.Node, owner *ts.Type) (*env.Scope, error) {
	switch parent := decl.Parent().(type) {
	case *ast.SourceFile:
		return g.env.Global(), nil
	case *ast.ModuleDeclaration:
		return g.env.GetScope(strings.Join(ast.NamespacePath(decl), "."))
	case *ast.ClassDeclaration, *ast.InterfaceDeclaration:
		if owner == nil {
			return nil, errors.MissingOwner(decl.String()).At(decl.GetSpan())
		}
		return g.ownerScope(parent, owner)
	case nil:
		return nil, errors.UnhandledContext("<detached>").At(decl.GetSpan())
	default:
		return nil, errors.UnhandledContext(parent.Kind().String()).At(decl.GetSpan())
	}
}

// ownerScope returns the scope of the class or interface instantiation
// owner, emitting the class on demand. Generic classes are skipped at their
// declaration and instantiated here, once per distinct type argument list.
func (g *Generator) ownerScope(typeDecl ast.Node, owner *ts.Type) (*env.Scope, error) {
	container, err := g.namespaceScope(ast.NamespacePath(typeDecl))
	if err != nil {
		return nil, err
	}
	name := mangle.Type(owner, g.checker)

	if b, ok := container.Lookup(name); ok {
		if !b.IsScope() {
			return nil, errors.NotNamespace(name).At(typeDecl.GetSpan())
		}
		return b.Scope, nil
	}

	switch d := typeDecl.(type) {
	case *ast.ClassDeclaration:
		if _, err := g.emitClass(d, owner, container); err != nil {
			return nil, err
		}
	case *ast.InterfaceDeclaration:
		if err := g.emitInterface(d, container); err != nil {
			return nil, err
		}
	}

	b, ok := container.Lookup(name)
	if !ok || !b.IsScope() {
		return nil, errors.UnknownIdentifier(name).At(typeDecl.GetSpan())
	}
	return b.Scope, nil
}

// ownerType returns the IR type of the receiver held in an owner scope.
// Interfaces other than String carry no type; their layout is built from the
// checked owner type.
func (g *Generator) ownerType(scope *env.Scope, owner *ts.Type) (types.Type, error) {
	if scope.Data != nil && scope.Data.Type != nil {
		return scope.Data.Type, nil
	}
	if owner.IsString() {
		return g.stringRecord(), nil
	}
	return g.buildStruct(owner, false)
}

// namespaceScope resolves a namespace path to its scope; the empty path is
// the global scope.
func (g *Generator) namespaceScope(path []string) (*env.Scope, error) {
	if len(path) == 0 {
		return g.env.Global(), nil
	}
	return g.env.GetScope(strings.Join(path, "."))
}

// withNamespaces runs body with the scopes of the namespace path pushed,
// outermost first, so that namespace members resolve by their bare names.
func (g *Generator) withNamespaces(path []string, body func() error) error {
	if len(path) == 0 {
		return body()
	}
	scope, err := g.namespaceScope(path[:1])
	if err != nil {
		return err
	}
	return g.enterNamespace(scope, path[1:], body)
}

func (g *Generator) enterNamespace(scope *env.Scope, rest []string, body func() error) error {
	return g.env.Enter(scope, func() error {
		if len(rest) == 0 {
			return body()
		}
		next, err := scope.Get(rest[0])
		if err != nil {
			return err
		}
		if !next.IsScope() {
			return errors.NotNamespace(rest[0])
		}
		return g.enterNamespace(next.Scope, rest[1:], body)
	})
}
