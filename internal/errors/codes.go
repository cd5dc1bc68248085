package errors

import "fmt"

// Error codes.
const (
	CodeUnsupportedType     = "UNSUPPORTED_TYPE"
	CodeAnyType             = "ANY_TYPE"
	CodeUnsupportedSyntax   = "UNSUPPORTED_SYNTAX"
	CodeUnsupportedOperator = "UNSUPPORTED_OPERATOR"
	CodeAssignment          = "ASSIGNMENT"
	CodeInvalidOperands     = "INVALID_OPERANDS"

	CodeUnknownIdentifier   = "UNKNOWN_IDENTIFIER"
	CodeDuplicateBinding    = "DUPLICATE_BINDING"
	CodeUnknownBinding      = "UNKNOWN_BINDING"
	CodeNotNamespace        = "NOT_A_NAMESPACE"
	CodeUnhandledContext    = "UNHANDLED_DECLARATION_CONTEXT"
	CodeInvalidCallTarget   = "INVALID_CALL_TARGET"
	CodeNotClass            = "NOT_A_CLASS"
	CodeMissingConstructor  = "MISSING_CONSTRUCTOR"
	CodeUnknownMember       = "UNKNOWN_MEMBER"
	CodeUnboundMethodAccess = "UNBOUND_METHOD_ACCESS"
	CodeCapturedBinding     = "CAPTURED_BINDING"

	CodeMissingOwner      = "MISSING_OWNER_TYPE"
	CodeUnknownBuiltin    = "UNKNOWN_BUILTIN"
	CodeValueTypeAlloc    = "VALUE_TYPE_ALLOCATION"
	CodeInternal          = "INTERNAL"
	CodeInvalidModule     = "INVALID_MODULE"
	CodeInvalidFunction   = "INVALID_FUNCTION"
	CodeInvalidConfig     = "INVALID_CONFIG"
	CodeUnsupportedTarget = "UNSUPPORTED_TARGET"
)

// Sentinels for errors.Is.
var (
	ErrUnsupportedType     = &CompileError{Category: CategoryUnsupported, Code: CodeUnsupportedType}
	ErrAnyType             = &CompileError{Category: CategoryUnsupported, Code: CodeAnyType}
	ErrUnsupportedSyntax   = &CompileError{Category: CategoryUnsupported, Code: CodeUnsupportedSyntax}
	ErrUnsupportedOperator = &CompileError{Category: CategoryUnsupported, Code: CodeUnsupportedOperator}
	ErrAssignment          = &CompileError{Category: CategoryUnsupported, Code: CodeAssignment}
	ErrInvalidOperands     = &CompileError{Category: CategoryUnsupported, Code: CodeInvalidOperands}

	ErrUnknownIdentifier   = &CompileError{Category: CategoryBinding, Code: CodeUnknownIdentifier}
	ErrDuplicateBinding    = &CompileError{Category: CategoryBinding, Code: CodeDuplicateBinding}
	ErrUnknownBinding      = &CompileError{Category: CategoryBinding, Code: CodeUnknownBinding}
	ErrNotNamespace        = &CompileError{Category: CategoryBinding, Code: CodeNotNamespace}
	ErrUnhandledContext    = &CompileError{Category: CategoryBinding, Code: CodeUnhandledContext}
	ErrInvalidCallTarget   = &CompileError{Category: CategoryBinding, Code: CodeInvalidCallTarget}
	ErrNotClass            = &CompileError{Category: CategoryBinding, Code: CodeNotClass}
	ErrMissingConstructor  = &CompileError{Category: CategoryBinding, Code: CodeMissingConstructor}
	ErrUnknownMember       = &CompileError{Category: CategoryBinding, Code: CodeUnknownMember}
	ErrUnboundMethodAccess = &CompileError{Category: CategoryBinding, Code: CodeUnboundMethodAccess}
	ErrCapturedBinding     = &CompileError{Category: CategoryBinding, Code: CodeCapturedBinding}

	ErrMissingOwner   = &CompileError{Category: CategoryInvariant, Code: CodeMissingOwner}
	ErrUnknownBuiltin = &CompileError{Category: CategoryInvariant, Code: CodeUnknownBuiltin}
	ErrValueTypeAlloc = &CompileError{Category: CategoryInvariant, Code: CodeValueTypeAlloc}
	ErrInternal       = &CompileError{Category: CategoryInvariant, Code: CodeInternal}

	ErrInvalidModule   = &CompileError{Category: CategoryVerification, Code: CodeInvalidModule}
	ErrInvalidFunction = &CompileError{Category: CategoryVerification, Code: CodeInvalidFunction}

	ErrInvalidConfig     = &CompileError{Category: CategoryConfig, Code: CodeInvalidConfig}
	ErrUnsupportedTarget = &CompileError{Category: CategoryConfig, Code: CodeUnsupportedTarget}
)

// Unsupported constructs

func UnsupportedType(typeName string) *CompileError {
	return newError(2, CategoryUnsupported, CodeUnsupportedType,
		fmt.Sprintf("unsupported type '%s'", typeName),
		map[string]interface{}{"type": typeName})
}

func AnyType() *CompileError {
	return newError(2, CategoryUnsupported, CodeAnyType, "'any' type is not supported", nil)
}

func UnsupportedSyntax(kind, text string) *CompileError {
	return newError(2, CategoryUnsupported, CodeUnsupportedSyntax,
		fmt.Sprintf("unsupported %s: %s", kind, text),
		map[string]interface{}{"kind": kind})
}

func UnsupportedOperator(op string) *CompileError {
	return newError(2, CategoryUnsupported, CodeUnsupportedOperator,
		fmt.Sprintf("unsupported operator '%s'", op),
		map[string]interface{}{"operator": op})
}

func Assignment() *CompileError {
	return newError(2, CategoryUnsupported, CodeAssignment, "assignment is not yet supported", nil)
}

// InvalidOperands reports operand types a binary operator cannot combine.
func InvalidOperands(op, left, right string) *CompileError {
	msg := fmt.Sprintf("invalid operand types to binary '%s'", op)
	if op == "+" {
		msg = "invalid operand types to binary plus"
	}
	return newError(2, CategoryUnsupported, CodeInvalidOperands, msg,
		map[string]interface{}{"operator": op, "left": left, "right": right})
}

// Binding failures

func UnknownIdentifier(name string) *CompileError {
	return newError(2, CategoryBinding, CodeUnknownIdentifier,
		fmt.Sprintf("unknown identifier '%s'", name),
		map[string]interface{}{"name": name})
}

func DuplicateBinding(name, scope string) *CompileError {
	return newError(2, CategoryBinding, CodeDuplicateBinding,
		fmt.Sprintf("duplicate binding '%s' in scope %s", name, scope),
		map[string]interface{}{"name": name, "scope": scope})
}

func UnknownBinding(name, scope string) *CompileError {
	return newError(2, CategoryBinding, CodeUnknownBinding,
		fmt.Sprintf("unknown binding '%s' in scope %s", name, scope),
		map[string]interface{}{"name": name, "scope": scope})
}

// CapturedBinding reports a reference to a local of another function.
// Closures are not supported, so such values cannot be used.
func CapturedBinding(name, owner, user string) *CompileError {
	return newError(2, CategoryBinding, CodeCapturedBinding,
		fmt.Sprintf("'%s' is local to %s and cannot be used in %s", name, owner, user),
		map[string]interface{}{"name": name, "owner": owner, "user": user})
}

func NotNamespace(name string) *CompileError {
	return newError(2, CategoryBinding, CodeNotNamespace,
		fmt.Sprintf("'%s' is not a namespace", name),
		map[string]interface{}{"name": name})
}

func UnhandledContext(kind string) *CompileError {
	return newError(2, CategoryBinding, CodeUnhandledContext,
		fmt.Sprintf("unhandled declaration context %s", kind),
		map[string]interface{}{"kind": kind})
}

func InvalidCallTarget(callee string) *CompileError {
	return newError(2, CategoryBinding, CodeInvalidCallTarget,
		fmt.Sprintf("invalid call target '%s'", callee),
		map[string]interface{}{"callee": callee})
}

func NotClass(typeName string) *CompileError {
	return newError(2, CategoryBinding, CodeNotClass,
		fmt.Sprintf("cannot 'new' non-class type '%s'", typeName),
		map[string]interface{}{"type": typeName})
}

func MissingConstructor(class string) *CompileError {
	return newError(2, CategoryBinding, CodeMissingConstructor,
		fmt.Sprintf("missing constructor for class '%s'", class),
		map[string]interface{}{"class": class})
}

func UnknownMember(member, owner string) *CompileError {
	return newError(2, CategoryBinding, CodeUnknownMember,
		fmt.Sprintf("unknown member '%s' of '%s'", member, owner),
		map[string]interface{}{"member": member, "owner": owner})
}

func UnboundMethodAccess(method string) *CompileError {
	return newError(2, CategoryBinding, CodeUnboundMethodAccess,
		fmt.Sprintf("method '%s' can only be called", method),
		map[string]interface{}{"method": method})
}

// Internal invariants

func MissingOwner(decl string) *CompileError {
	return newError(2, CategoryInvariant, CodeMissingOwner,
		"mangling methods requires an owner type",
		map[string]interface{}{"declaration": decl})
}

func UnknownBuiltin(name string) *CompileError {
	return newError(2, CategoryInvariant, CodeUnknownBuiltin,
		fmt.Sprintf("unknown builtin '%s'", name),
		map[string]interface{}{"name": name})
}

func ValueTypeAllocation(typeName string) *CompileError {
	return newError(2, CategoryInvariant, CodeValueTypeAlloc,
		fmt.Sprintf("cannot heap-allocate value type '%s'", typeName),
		map[string]interface{}{"type": typeName})
}

func Internal(format string, args ...interface{}) *CompileError {
	return newError(2, CategoryInvariant, CodeInternal, fmt.Sprintf(format, args...), nil)
}

// Verification failures carry the printed IR in Detail.

func InvalidModule(reason, ir string) *CompileError {
	return newError(2, CategoryVerification, CodeInvalidModule,
		"invalid module: "+reason, nil).WithDetail(ir)
}

func InvalidFunction(name, reason, ir string) *CompileError {
	return newError(2, CategoryVerification, CodeInvalidFunction,
		fmt.Sprintf("invalid function '%s': %s", name, reason),
		map[string]interface{}{"function": name}).WithDetail(ir)
}

// Configuration

func InvalidConfig(field, reason string) *CompileError {
	return newError(2, CategoryConfig, CodeInvalidConfig,
		fmt.Sprintf("invalid configuration %s: %s", field, reason),
		map[string]interface{}{"field": field})
}

func UnsupportedTarget(version, constraint string) *CompileError {
	return newError(2, CategoryConfig, CodeUnsupportedTarget,
		fmt.Sprintf("LLVM %s does not satisfy %s", version, constraint),
		map[string]interface{}{"version": version, "constraint": constraint})
}
