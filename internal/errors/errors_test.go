package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nativets-lang/nativets/internal/position"
)

func TestErrorFormat(t *testing.T) {
	err := UnknownIdentifier("x")
	if got := err.Error(); got != "[BINDING:UNKNOWN_IDENTIFIER] unknown identifier 'x'" {
		t.Fatalf("Error() = %q", got)
	}

	err.At(position.NewSpan("a.ts", 3, 7, 3, 8))
	if got := err.Error(); !strings.HasPrefix(got, "a.ts:3:7: ") {
		t.Errorf("Error() with span = %q, want position prefix", got)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("lowering main.ts: %w", DuplicateBinding("x", "global"))

	if !stderrors.Is(wrapped, ErrDuplicateBinding) {
		t.Fatalf("errors.Is did not match the sentinel through wrapping")
	}
	if stderrors.Is(wrapped, ErrUnknownBinding) {
		t.Errorf("errors.Is matched a different code")
	}
	if !IsCategory(wrapped, CategoryBinding) {
		t.Errorf("IsCategory(BINDING) = false")
	}
	if IsCategory(stderrors.New("plain"), CategoryBinding) {
		t.Errorf("IsCategory matched a plain error")
	}
}

func TestInvalidOperandsMessage(t *testing.T) {
	tests := []struct {
		op   string
		want string
	}{
		{"+", "invalid operand types to binary plus"},
		{"-", "invalid operand types to binary '-'"},
	}
	for _, tt := range tests {
		if got := InvalidOperands(tt.op, "string", "number").Message; got != tt.want {
			t.Errorf("InvalidOperands(%q).Message = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestCallerIsRecorded(t *testing.T) {
	err := AnyType()
	if !strings.HasSuffix(err.Caller, "TestCallerIsRecorded") {
		t.Errorf("Caller = %q, want the test function", err.Caller)
	}
}

func TestReportIncludesDetail(t *testing.T) {
	err := InvalidFunction("f", "block has no terminator", "define void @f() {\nentry:\n}")
	report := err.Report()
	for _, want := range []string{"invalid function 'f'", "function: f", "define void @f()"} {
		if !strings.Contains(report, want) {
			t.Errorf("Report() missing %q:\n%s", want, report)
		}
	}
	if ce, ok := As(fmt.Errorf("wrap: %w", err)); !ok || ce != err {
		t.Errorf("As did not unwrap the compile error")
	}
}
