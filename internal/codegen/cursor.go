package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/nativets-lang/nativets/internal/errors"
)

// keepInsertionPoint saves the current block and function and returns a
// func that restores them. Lazy emission of a callee moves the cursor into
// the callee's blocks; callers defer the returned func so that lowering of the
// calling expression resumes where it left off:
//
//	defer g.keepInsertionPoint()()
func (g *Generator) keepInsertionPoint() func() {
	block, fr := g.cur, g.frame
	return func() {
		g.cur, g.frame = block, fr
	}
}

// localName returns name, suffixed when it is already used in f.
func (g *Generator) localName(f *ir.Func, name string) string {
	used, ok := g.locals[f]
	if !ok {
		used = make(map[string]int)
		g.locals[f] = used
	}
	n := used[name]
	used[name] = n + 1
	if n == 0 {
		return name
	}
	return fmt.Sprintf("%s.%d", name, n)
}

// entryBlock returns the first block of the current function.
func (g *Generator) entryBlock() *ir.Block {
	return g.frame.fn.Blocks[0]
}

// definedIn reports whether v is a parameter or instruction of f. Values that
// are neither, such as constants, globals and functions, belong to no
// function and are reported as defined in f.
func definedIn(f *ir.Func, v value.Value) bool {
	switch v := v.(type) {
	case *ir.Param:
		for _, p := range f.Params {
			if p == v {
				return true
			}
		}
		return false
	case ir.Instruction:
		for _, b := range f.Blocks {
			for _, inst := range b.Insts {
				if inst == v {
					return true
				}
			}
		}
		return false
	}
	return true
}

// local returns the value bound to name, failing when it is a local of a
// function other than the one being emitted.
func (g *Generator) local(name string, v value.Value) (value.Value, error) {
	if definedIn(g.frame.fn, v) {
		return v, nil
	}
	owner := "another function"
	if f := g.ownerOf(v); f != nil {
		owner = f.Ident()
	}
	return nil, errors.CapturedBinding(name, owner, g.frame.fn.Ident())
}

func (g *Generator) ownerOf(v value.Value) *ir.Func {
	for _, f := range g.module.Funcs {
		if definedIn(f, v) {
			return f
		}
	}
	return nil
}
