package codegen

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/nativets-lang/nativets/internal/errors"
)

func TestVerifyFunction(t *testing.T) {
	tests := []struct {
		name  string
		build func(m *ir.Module) *ir.Func
		want  string
	}{
		{
			name: "declaration",
			build: func(m *ir.Module) *ir.Func {
				return m.NewFunc("decl", types.Double)
			},
		},
		{
			name: "missing terminator",
			build: func(m *ir.Module) *ir.Func {
				f := m.NewFunc("f", types.Double)
				f.NewBlock("entry")
				return f
			},
			want: "has no terminator",
		},
		{
			name: "return type mismatch",
			build: func(m *ir.Module) *ir.Func {
				f := m.NewFunc("f", types.Double)
				f.NewBlock("entry").NewRet(constant.NewInt(types.I32, 0))
				return f
			},
			want: "ret i32 in function returning double",
		},
		{
			name: "value returned from void function",
			build: func(m *ir.Module) *ir.Func {
				f := m.NewFunc("f", types.Void)
				f.NewBlock("entry").NewRet(constant.NewFloat(types.Double, 1))
				return f
			},
			want: "in void function",
		},
		{
			name: "call arity",
			build: func(m *ir.Module) *ir.Func {
				callee := m.NewFunc("callee", types.Void, ir.NewParam("a", types.Double))
				f := m.NewFunc("f", types.Void)
				entry := f.NewBlock("entry")
				entry.NewCall(callee)
				entry.NewRet(nil)
				return f
			},
			want: "with 0 arguments, want 1",
		},
		{
			name: "call argument type",
			build: func(m *ir.Module) *ir.Func {
				callee := m.NewFunc("callee", types.Void, ir.NewParam("a", types.Double))
				f := m.NewFunc("f", types.Void)
				entry := f.NewBlock("entry")
				entry.NewCall(callee, constant.NewBool(true))
				entry.NewRet(nil)
				return f
			},
			want: "argument 0 of @callee has type i1, want double",
		},
		{
			name: "store type",
			build: func(m *ir.Module) *ir.Func {
				f := m.NewFunc("f", types.Void)
				entry := f.NewBlock("entry")
				slot := entry.NewAlloca(types.Double)
				entry.Insts = append(entry.Insts, &ir.InstStore{Src: constant.NewBool(false), Dst: slot})
				entry.NewRet(nil)
				return f
			},
			want: "store of i1",
		},
		{
			name: "instruction of another function",
			build: func(m *ir.Module) *ir.Func {
				other := m.NewFunc("other", types.Void)
				entry := other.NewBlock("entry")
				sum := entry.NewFAdd(constant.NewFloat(types.Double, 1), constant.NewFloat(types.Double, 2))
				entry.NewRet(nil)

				f := m.NewFunc("f", types.Double)
				f.NewBlock("entry").NewRet(sum)
				return f
			},
			want: "defined in another function",
		},
		{
			name: "parameter of another function",
			build: func(m *ir.Module) *ir.Func {
				other := m.NewFunc("other", types.Void, ir.NewParam("p", types.Double))
				other.NewBlock("entry").NewRet(nil)

				f := m.NewFunc("f", types.Double)
				entry := f.NewBlock("entry")
				entry.NewRet(entry.NewFMul(other.Params[0], constant.NewFloat(types.Double, 2)))
				return f
			},
			want: "defined in another function",
		},
		{
			name: "well formed",
			build: func(m *ir.Module) *ir.Func {
				f := m.NewFunc("f", types.Double, ir.NewParam("x", types.Double))
				entry := f.NewBlock("entry")
				slot := entry.NewAlloca(types.Double)
				entry.NewStore(f.Params[0], slot)
				entry.NewRet(entry.NewLoad(types.Double, slot))
				return f
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifyFunction(tt.build(ir.NewModule()))
			if tt.want == "" {
				if err != nil {
					t.Fatalf("verifyFunction: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("verifyFunction error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestVerifyModuleCarriesIR(t *testing.T) {
	m := ir.NewModule()
	m.NewFunc("broken", types.Double).NewBlock("entry").NewRet(constant.NewInt(types.I32, 0))

	err := verifyModule(m)
	if !stderrors.Is(err, errors.ErrInvalidModule) {
		t.Fatalf("verifyModule error = %v, want invalid module", err)
	}
	ce, _ := errors.As(err)
	if !strings.Contains(ce.Detail, "@broken") {
		t.Errorf("error detail does not contain the module text: %q", ce.Detail)
	}
}

func TestCheckTarget(t *testing.T) {
	tests := []struct {
		version string
		want    error
	}{
		{"7.0.0", nil},
		{"14.0.6", nil},
		{"16", nil},
		{"17.0.1", errors.ErrUnsupportedTarget},
		{"6.0.1", errors.ErrUnsupportedTarget},
		{"latest", errors.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := CheckTarget(tt.version)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("CheckTarget(%s): %v", tt.version, err)
				}
				return
			}
			if !stderrors.Is(err, tt.want) {
				t.Fatalf("CheckTarget(%s) = %v, want %v", tt.version, err, tt.want)
			}
		})
	}
}
