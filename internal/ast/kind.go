package ast

// Kind identifies the syntax kind of a node.
type Kind int

const (
	KindUnknown Kind = iota
	KindSourceFile
	KindEndOfFileToken

	// Declarations
	KindModuleDeclaration
	KindClassDeclaration
	KindInterfaceDeclaration
	KindFunctionDeclaration
	KindMethodDeclaration
	KindMethodSignature
	KindConstructor
	KindIndexSignature
	KindPropertyDeclaration
	KindParameter

	// Statements
	KindVariableStatement
	KindVariableDeclaration
	KindExpressionStatement
	KindBlock
	KindReturnStatement
	KindIfStatement
	KindWhileStatement

	// Expressions
	KindNumericLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindIdentifier
	KindThisKeyword
	KindBinaryExpression
	KindPrefixUnaryExpression
	KindPropertyAccessExpression
	KindNewExpression
	KindCallExpression
)

var kindNames = [...]string{
	KindUnknown:                  "Unknown",
	KindSourceFile:               "SourceFile",
	KindEndOfFileToken:           "EndOfFileToken",
	KindModuleDeclaration:        "ModuleDeclaration",
	KindClassDeclaration:         "ClassDeclaration",
	KindInterfaceDeclaration:     "InterfaceDeclaration",
	KindFunctionDeclaration:      "FunctionDeclaration",
	KindMethodDeclaration:        "MethodDeclaration",
	KindMethodSignature:          "MethodSignature",
	KindConstructor:              "Constructor",
	KindIndexSignature:           "IndexSignature",
	KindPropertyDeclaration:      "PropertyDeclaration",
	KindParameter:                "Parameter",
	KindVariableStatement:        "VariableStatement",
	KindVariableDeclaration:      "VariableDeclaration",
	KindExpressionStatement:      "ExpressionStatement",
	KindBlock:                    "Block",
	KindReturnStatement:          "ReturnStatement",
	KindIfStatement:              "IfStatement",
	KindWhileStatement:           "WhileStatement",
	KindNumericLiteral:           "NumericLiteral",
	KindStringLiteral:            "StringLiteral",
	KindBooleanLiteral:           "BooleanLiteral",
	KindIdentifier:               "Identifier",
	KindThisKeyword:              "ThisKeyword",
	KindBinaryExpression:         "BinaryExpression",
	KindPrefixUnaryExpression:    "PrefixUnaryExpression",
	KindPropertyAccessExpression: "PropertyAccessExpression",
	KindNewExpression:            "NewExpression",
	KindCallExpression:           "CallExpression",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsStatementKind reports whether nodes of kind k are executable statements
// (as opposed to declarations).
func (k Kind) IsStatementKind() bool {
	switch k {
	case KindBlock, KindExpressionStatement, KindIfStatement, KindWhileStatement,
		KindReturnStatement, KindVariableStatement:
		return true
	default:
		return false
	}
}

// Operator is a binary or prefix operator token, spelled as in source.
type Operator string

const (
	OpEquals                  Operator = "="
	OpEqualsEquals            Operator = "=="
	OpExclamationEquals       Operator = "!="
	OpEqualsEqualsEquals      Operator = "==="
	OpExclamationEqualsEquals Operator = "!=="
	OpLessThan                Operator = "<"
	OpGreaterThan             Operator = ">"
	OpLessThanEquals          Operator = "<="
	OpGreaterThanEquals       Operator = ">="
	OpPlus                    Operator = "+"
	OpMinus                   Operator = "-"
	OpAsterisk                Operator = "*"
	OpSlash                   Operator = "/"
	OpPercent                 Operator = "%"
	OpExclamation             Operator = "!"
	OpTilde                   Operator = "~"
)
