package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/nativets-lang/nativets/internal/errors"
)

// verifyModule checks the structural invariants of every function in m.
func verifyModule(m *ir.Module) error {
	for _, f := range m.Funcs {
		if err := verifyFunction(f); err != nil {
			text := ""
			if printable(m.Funcs...) {
				text = m.String()
			}
			return errors.InvalidModule(fmt.Sprintf("%s: %v", f.Name(), err), text)
		}
	}
	return nil
}

// printable reports whether every block of fs is terminated; the printer
// cannot render a block without a terminator.
func printable(fs ...*ir.Func) bool {
	for _, f := range fs {
		for _, b := range f.Blocks {
			if b.Term == nil {
				return false
			}
		}
	}
	return true
}

// verifyFunction checks that every block of f is terminated, that returns
// match the signature, and that loads, stores and calls are well typed.
// Declarations have no blocks and always pass.
func verifyFunction(f *ir.Func) error {
	locals := make(map[value.Value]bool, len(f.Params))
	for _, p := range f.Params {
		locals[p] = true
	}
	for _, b := range f.Blocks {
		for _, inst := range b.Insts {
			if v, ok := inst.(value.Value); ok {
				locals[v] = true
			}
		}
	}

	for _, b := range f.Blocks {
		if b.Term == nil {
			return fmt.Errorf("block %s has no terminator", b.Ident())
		}
		for _, inst := range b.Insts {
			if err := verifyInst(inst); err != nil {
				return fmt.Errorf("block %s: %w", b.Ident(), err)
			}
			if err := verifyOperands(locals, operands(inst)); err != nil {
				return fmt.Errorf("block %s: %w", b.Ident(), err)
			}
		}
		if err := verifyOperands(locals, operands(b.Term)); err != nil {
			return fmt.Errorf("block %s: %w", b.Ident(), err)
		}
		if ret, ok := b.Term.(*ir.TermRet); ok {
			if err := verifyRet(f, ret); err != nil {
				return fmt.Errorf("block %s: %w", b.Ident(), err)
			}
		}
	}
	return nil
}

// operands returns the values used by an instruction or terminator.
func operands(x interface{}) []value.Value {
	if ret, ok := x.(*ir.TermRet); ok {
		if ret.X == nil {
			return nil
		}
		return []value.Value{ret.X}
	}
	user, ok := x.(interface{ Operands() []*value.Value })
	if !ok {
		return nil
	}
	var out []value.Value
	for _, op := range user.Operands() {
		if op != nil && *op != nil {
			out = append(out, *op)
		}
	}
	return out
}

// verifyOperands rejects parameters and instruction results that are not
// defined in the function using them.
func verifyOperands(locals map[value.Value]bool, ops []value.Value) error {
	for _, op := range ops {
		switch op.(type) {
		case *ir.Param, ir.Instruction:
			if !locals[op] {
				return fmt.Errorf("use of %s defined in another function", op.Ident())
			}
		}
	}
	return nil
}

func verifyRet(f *ir.Func, ret *ir.TermRet) error {
	want := f.Sig.RetType
	if want.Equal(types.Void) {
		if ret.X != nil {
			return fmt.Errorf("ret %s in void function", ret.X.Type())
		}
		return nil
	}
	if ret.X == nil {
		return fmt.Errorf("ret void in function returning %s", want)
	}
	if !ret.X.Type().Equal(want) {
		return fmt.Errorf("ret %s in function returning %s", ret.X.Type(), want)
	}
	return nil
}

func verifyInst(inst ir.Instruction) error {
	switch inst := inst.(type) {
	case *ir.InstStore:
		ptr, ok := inst.Dst.Type().(*types.PointerType)
		if !ok {
			return fmt.Errorf("store to non-pointer %s", inst.Dst.Type())
		}
		if !ptr.ElemType.Equal(inst.Src.Type()) {
			return fmt.Errorf("store of %s to %s", inst.Src.Type(), inst.Dst.Type())
		}
	case *ir.InstLoad:
		ptr, ok := inst.Src.Type().(*types.PointerType)
		if !ok {
			return fmt.Errorf("load from non-pointer %s", inst.Src.Type())
		}
		if !ptr.ElemType.Equal(inst.ElemType) {
			return fmt.Errorf("load of %s from %s", inst.ElemType, inst.Src.Type())
		}
	case *ir.InstCall:
		return verifyCall(inst)
	}
	return nil
}

func verifyCall(call *ir.InstCall) error {
	ptr, ok := call.Callee.Type().(*types.PointerType)
	if !ok {
		return fmt.Errorf("call of non-pointer %s", call.Callee.Type())
	}
	sig, ok := ptr.ElemType.(*types.FuncType)
	if !ok {
		return fmt.Errorf("call of non-function %s", call.Callee.Type())
	}

	name := call.Callee.Ident()
	if len(call.Args) != len(sig.Params) && !(sig.Variadic && len(call.Args) > len(sig.Params)) {
		return fmt.Errorf("call of %s with %d arguments, want %d", name, len(call.Args), len(sig.Params))
	}
	for i, p := range sig.Params {
		if got := call.Args[i].Type(); !got.Equal(p) {
			return fmt.Errorf("argument %d of %s has type %s, want %s", i, name, got, p)
		}
	}
	return nil
}
