package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/env"
	"github.com/nativets-lang/nativets/internal/errors"
)

// outcome reports what lowering did with a statement.
type outcome int

const (
	outcomeLowered outcome = iota
	// outcomeSkipped marks nodes emitted lazily or not at all.
	outcomeSkipped
	// outcomeUnsupported marks statements the generator cannot lower yet;
	// they are reported and skipped.
	outcomeUnsupported
)

func (o outcome) String() string {
	switch o {
	case outcomeLowered:
		return "lowered"
	case outcomeSkipped:
		return "skipped"
	default:
		return "unsupported"
	}
}

// lowerStatements lowers a statement list into scope. Statements after a
// terminator are unreachable and are not lowered.
func (g *Generator) lowerStatements(stmts []ast.Statement, scope *env.Scope) error {
	for i, stmt := range stmts {
		if g.cur.Term != nil && g.frame.fn != g.main {
			g.log.Debug("%s: dropping %d unreachable statements", stmt.GetSpan().Start, len(stmts)-i)
			return nil
		}
		o, err := g.lowerStatement(stmt, scope)
		if err != nil {
			return err
		}
		if o == outcomeUnsupported {
			g.log.Warn("%s: unhandled %s: %s", stmt.GetSpan().Start, stmt.Kind(), stmt.String())
		}
	}
	return nil
}

// lowerStatement lowers one statement or declaration into scope. Executable
// statements at the top level are appended to the entry function.
func (g *Generator) lowerStatement(stmt ast.Statement, scope *env.Scope) (outcome, error) {
	if stmt.Kind().IsStatementKind() && scope == g.env.Global() {
		g.frame = &frame{fn: g.main}
		g.cur = g.main.Blocks[len(g.main.Blocks)-1]
	}

	switch s := stmt.(type) {
	case *ast.EndOfFile, *ast.FunctionDeclaration:
		return outcomeSkipped, nil
	case *ast.ClassDeclaration:
		return g.emitClass(s, nil, scope)
	case *ast.InterfaceDeclaration:
		return outcomeLowered, g.emitInterface(s, scope)
	case *ast.ModuleDeclaration:
		return outcomeLowered, g.emitNamespace(s, scope)
	case *ast.VariableStatement:
		return outcomeLowered, g.lowerVariableStatement(s, scope)
	case *ast.ExpressionStatement:
		_, err := g.lowerLvalue(s.Expression)
		return outcomeLowered, err
	case *ast.Block:
		return outcomeLowered, g.env.WithScope("", func(inner *env.Scope) error {
			return g.lowerStatements(s.Statements, inner)
		})
	case *ast.ReturnStatement:
		return outcomeLowered, g.lowerReturn(s)
	default:
		// if, while and unknown statements
		return outcomeUnsupported, nil
	}
}

// lowerVariableStatement binds each declared name. const bindings hold the
// initializer value itself; let bindings get a stack slot in the entry block
// of the current function.
func (g *Generator) lowerVariableStatement(stmt *ast.VariableStatement, scope *env.Scope) error {
	for _, decl := range stmt.Declarations {
		if decl.Initializer == nil {
			return errors.UnsupportedSyntax("declaration without initializer", decl.String()).At(decl.GetSpan())
		}
		v, err := g.lowerRvalue(decl.Initializer)
		if err != nil {
			return err
		}

		if stmt.Const {
			g.nameValue(v, decl.Name)
			if err := scope.SetValue(decl.Name, v); err != nil {
				return atSpan(err, decl)
			}
			continue
		}

		slot := ir.NewAlloca(v.Type())
		slot.SetName(g.localName(g.frame.fn, decl.Name))
		entry := g.entryBlock()
		entry.Insts = append([]ir.Instruction{slot}, entry.Insts...)
		g.cur.NewStore(v, slot)
		if err := scope.SetValue(decl.Name, slot); err != nil {
			return atSpan(err, decl)
		}
	}
	return nil
}

type namer interface {
	SetName(name string)
}

// nameValue gives an unnamed instruction result the source name of the
// constant it is bound to. Constants, parameters and functions keep theirs.
func (g *Generator) nameValue(v value.Value, name string) {
	inst, ok := v.(ir.Instruction)
	if !ok {
		return
	}
	named, ok := inst.(namer)
	if !ok || g.named[inst] {
		return
	}
	g.named[inst] = true
	named.SetName(g.localName(g.frame.fn, name))
}

func (g *Generator) lowerReturn(stmt *ast.ReturnStatement) error {
	if g.frame.fn == g.main {
		return errors.UnsupportedSyntax("top-level return", stmt.String()).At(stmt.GetSpan())
	}
	if stmt.Expression == nil {
		if g.frame.ctor {
			g.cur.NewRet(g.frame.this)
		} else {
			g.cur.NewRet(nil)
		}
		return nil
	}

	v, err := g.lowerRvalue(stmt.Expression)
	if err != nil {
		return err
	}
	g.cur.NewRet(v)
	return nil
}

// atSpan attaches the span of n to compile errors that carry none.
func atSpan(err error, n ast.Node) error {
	if ce, ok := errors.As(err); ok && !ce.Span.IsValid() {
		return ce.At(n.GetSpan())
	}
	return err
}
