// Package errors provides the error taxonomy of the code generator. Every
// failure raised while lowering a program is a *CompileError carrying a
// category, a stable code, the message shown to the user and optional
// structured context.
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/nativets-lang/nativets/internal/position"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	// CategoryUnsupported is raised for constructs the generator does not lower.
	CategoryUnsupported ErrorCategory = "UNSUPPORTED"
	// CategoryBinding is raised for name resolution failures.
	CategoryBinding ErrorCategory = "BINDING"
	// CategoryInvariant marks internal consistency failures.
	CategoryInvariant ErrorCategory = "INVARIANT"
	// CategoryVerification is raised when emitted IR is structurally invalid.
	CategoryVerification ErrorCategory = "VERIFICATION"
	// CategoryConfig is raised for invalid configuration or target settings.
	CategoryConfig ErrorCategory = "CONFIG"
)

// CompileError provides a consistent error format
type CompileError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Span     position.Span
	Context  map[string]interface{}
	// Detail holds long diagnostic payloads such as printed IR.
	Detail string
	Caller string
}

// Error implements the error interface
func (e *CompileError) Error() string {
	msg := fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
	if e.Span.IsValid() {
		return e.Span.Start.String() + ": " + msg
	}
	return msg
}

// Is matches errors by code, so sentinel values work with errors.Is.
func (e *CompileError) Is(target error) bool {
	t, ok := target.(*CompileError)
	return ok && t.Code == e.Code
}

// At attaches a source span and returns e.
func (e *CompileError) At(span position.Span) *CompileError {
	e.Span = span
	return e
}

// WithDetail attaches a long diagnostic payload and returns e.
func (e *CompileError) WithDetail(detail string) *CompileError {
	e.Detail = detail
	return e
}

// Report renders the error with its context, caller and detail for verbose
// output.
func (e *CompileError) Report() string {
	var b strings.Builder
	b.WriteString(e.Error())
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "\n  %s: %v", k, e.Context[k])
		}
	}
	if e.Caller != "" {
		fmt.Fprintf(&b, "\n  caller: %s", e.Caller)
	}
	if e.Detail != "" {
		b.WriteString("\n")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// NewCompileError creates a new error and records the calling function.
func NewCompileError(category ErrorCategory, code, message string, context map[string]interface{}) *CompileError {
	return newError(2, category, code, message, context)
}

func newError(skip int, category ErrorCategory, code, message string, context map[string]interface{}) *CompileError {
	caller := "unknown"
	pcs := make([]uintptr, 1)
	if runtime.Callers(skip+1, pcs) > 0 {
		frame, _ := runtime.CallersFrames(pcs).Next()
		if frame.Function != "" {
			caller = frame.Function
		}
	}

	return &CompileError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// As returns the *CompileError in err's chain.
func As(err error) (*CompileError, bool) {
	var ce *CompileError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsCategory reports whether err is a *CompileError of the given category.
func IsCategory(err error, category ErrorCategory) bool {
	ce, ok := As(err)
	return ok && ce.Category == category
}
