// Package ast defines the checked declaration tree consumed by the code
// generator. The tree is produced by the external front end after binding and
// type checking; every node kind the generator understands is a concrete type
// in this package and the set of kinds is closed: code that switches over
// nodes must handle every case or fall into an explicit Unknown branch.
//
// All nodes carry a source span, optional source text for diagnostics and a
// parent link. Parent links are established by SetParents once a tree has been
// assembled.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nativets-lang/nativets/internal/position"
)

// Node is the base interface for all tree nodes.
type Node interface {
	// GetSpan returns the source span covered by this node
	GetSpan() position.Span
	// Kind reports the syntax kind of the node
	Kind() Kind
	// Parent returns the syntactic parent, nil for a SourceFile
	Parent() Node
	// String returns the source text of the node when known, or a rendering of it
	String() string

	setParent(Node)
	base() *Base
}

// Statement represents nodes that may appear in statement position,
// including declarations.
type Statement interface {
	Node
	statementNode()
}

// Expression represents expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// Member represents class and interface members.
type Member interface {
	Node
	memberNode()
}

// FunctionLike is implemented by every declaration that can be lowered to a
// function: free functions, methods, method signatures, constructors, index
// signatures and property declarations.
type FunctionLike interface {
	Node
	Params() []*Parameter
	FunctionBody() *Block
}

// Base holds the fields shared by all nodes.
type Base struct {
	Span position.Span
	// Text is the original source text, used only for diagnostics.
	Text   string
	parent Node
}

func (b *Base) GetSpan() position.Span { return b.Span }
func (b *Base) Parent() Node           { return b.parent }
func (b *Base) setParent(p Node)       { b.parent = p }
func (b *Base) base() *Base            { return b }

// SetSource records the span and source text of n.
func SetSource(n Node, span position.Span, text string) {
	b := n.base()
	b.Span = span
	b.Text = text
}

func (b *Base) text(fallback func() string) string {
	if b.Text != "" {
		return b.Text
	}
	return fallback()
}

// ===== Program Structure =====

// SourceFile is the root of a checked tree.
type SourceFile struct {
	Base
	Name       string
	Statements []Statement
}

func (f *SourceFile) Kind() Kind { return KindSourceFile }
func (f *SourceFile) String() string {
	return f.text(func() string { return fmt.Sprintf("<file %s>", f.Name) })
}

// EndOfFile marks the end of a source file.
type EndOfFile struct{ Base }

func (e *EndOfFile) Kind() Kind     { return KindEndOfFileToken }
func (e *EndOfFile) String() string { return "" }
func (e *EndOfFile) statementNode() {}

// ===== Declarations =====

// ModuleDeclaration is a namespace declaration.
type ModuleDeclaration struct {
	Base
	Name    string
	Ambient bool
	Body    []Statement
}

func (m *ModuleDeclaration) Kind() Kind     { return KindModuleDeclaration }
func (m *ModuleDeclaration) statementNode() {}
func (m *ModuleDeclaration) String() string {
	return m.text(func() string { return "namespace " + m.Name + " { ... }" })
}

// ClassDeclaration declares a class. Ambient classes (declare class) have no
// implementation in the program and lower to opaque types.
type ClassDeclaration struct {
	Base
	Name           string
	TypeParameters []string
	Ambient        bool
	Members        []Member
}

func (c *ClassDeclaration) Kind() Kind     { return KindClassDeclaration }
func (c *ClassDeclaration) statementNode() {}
func (c *ClassDeclaration) String() string {
	return c.text(func() string { return "class " + c.Name + typeParams(c.TypeParameters) + " { ... }" })
}

// Constructor returns the first constructor member, or nil.
func (c *ClassDeclaration) Constructor() *Constructor {
	for _, m := range c.Members {
		if ctor, ok := m.(*Constructor); ok {
			return ctor
		}
	}
	return nil
}

// InterfaceDeclaration declares an interface.
type InterfaceDeclaration struct {
	Base
	Name           string
	TypeParameters []string
	Members        []Member
}

func (i *InterfaceDeclaration) Kind() Kind     { return KindInterfaceDeclaration }
func (i *InterfaceDeclaration) statementNode() {}
func (i *InterfaceDeclaration) String() string {
	return i.text(func() string { return "interface " + i.Name + typeParams(i.TypeParameters) + " { ... }" })
}

// FunctionDeclaration declares a free function. Body is nil for ambient
// declarations.
type FunctionDeclaration struct {
	Base
	Name       string
	Parameters []*Parameter
	Body       *Block
}

func (f *FunctionDeclaration) Kind() Kind           { return KindFunctionDeclaration }
func (f *FunctionDeclaration) statementNode()       {}
func (f *FunctionDeclaration) Params() []*Parameter { return f.Parameters }
func (f *FunctionDeclaration) FunctionBody() *Block { return f.Body }
func (f *FunctionDeclaration) String() string {
	return f.text(func() string { return "function " + f.Name + "(" + paramList(f.Parameters) + ")" })
}

// MethodDeclaration is a class method with an implementation.
type MethodDeclaration struct {
	Base
	Name       string
	Parameters []*Parameter
	Body       *Block
}

func (m *MethodDeclaration) Kind() Kind           { return KindMethodDeclaration }
func (m *MethodDeclaration) memberNode()          {}
func (m *MethodDeclaration) Params() []*Parameter { return m.Parameters }
func (m *MethodDeclaration) FunctionBody() *Block { return m.Body }
func (m *MethodDeclaration) String() string {
	return m.text(func() string { return m.Name + "(" + paramList(m.Parameters) + ")" })
}

// MethodSignature is a method without an implementation, as found in
// interfaces and ambient classes.
type MethodSignature struct {
	Base
	Name       string
	Parameters []*Parameter
}

func (m *MethodSignature) Kind() Kind           { return KindMethodSignature }
func (m *MethodSignature) memberNode()          {}
func (m *MethodSignature) Params() []*Parameter { return m.Parameters }
func (m *MethodSignature) FunctionBody() *Block { return nil }
func (m *MethodSignature) String() string {
	return m.text(func() string { return m.Name + "(" + paramList(m.Parameters) + ");" })
}

// Constructor is a class constructor.
type Constructor struct {
	Base
	Parameters []*Parameter
	Body       *Block
}

func (c *Constructor) Kind() Kind           { return KindConstructor }
func (c *Constructor) memberNode()          {}
func (c *Constructor) Params() []*Parameter { return c.Parameters }
func (c *Constructor) FunctionBody() *Block { return c.Body }
func (c *Constructor) String() string {
	return c.text(func() string { return "constructor(" + paramList(c.Parameters) + ")" })
}

// IndexSignature is a numeric index signature such as [index: number]: T.
type IndexSignature struct {
	Base
	Parameters []*Parameter
}

func (s *IndexSignature) Kind() Kind           { return KindIndexSignature }
func (s *IndexSignature) memberNode()          {}
func (s *IndexSignature) Params() []*Parameter { return s.Parameters }
func (s *IndexSignature) FunctionBody() *Block { return nil }
func (s *IndexSignature) String() string {
	return s.text(func() string { return "[" + paramList(s.Parameters) + "]" })
}

// PropertyDeclaration is a stored property of a class or interface.
type PropertyDeclaration struct {
	Base
	Name        string
	Readonly    bool
	Initializer Expression
}

func (p *PropertyDeclaration) Kind() Kind           { return KindPropertyDeclaration }
func (p *PropertyDeclaration) memberNode()          {}
func (p *PropertyDeclaration) Params() []*Parameter { return nil }
func (p *PropertyDeclaration) FunctionBody() *Block { return nil }
func (p *PropertyDeclaration) String() string {
	return p.text(func() string { return p.Name })
}

// Parameter is a function parameter. Property marks a constructor parameter
// property (constructor(public x: number)), which also declares a field.
type Parameter struct {
	Base
	Name     string
	Property bool
}

func (p *Parameter) Kind() Kind     { return KindParameter }
func (p *Parameter) String() string { return p.text(func() string { return p.Name }) }

// ===== Statements =====

// VariableStatement declares one or more variables.
type VariableStatement struct {
	Base
	Const        bool
	Declarations []*VariableDeclaration
}

func (v *VariableStatement) Kind() Kind     { return KindVariableStatement }
func (v *VariableStatement) statementNode() {}
func (v *VariableStatement) String() string {
	return v.text(func() string {
		keyword := "let "
		if v.Const {
			keyword = "const "
		}
		names := make([]string, len(v.Declarations))
		for i, d := range v.Declarations {
			names[i] = d.String()
		}
		return keyword + strings.Join(names, ", ") + ";"
	})
}

// VariableDeclaration is one binding of a variable statement.
type VariableDeclaration struct {
	Base
	Name        string
	Initializer Expression
}

func (v *VariableDeclaration) Kind() Kind { return KindVariableDeclaration }
func (v *VariableDeclaration) String() string {
	return v.text(func() string {
		if v.Initializer == nil {
			return v.Name
		}
		return v.Name + " = " + v.Initializer.String()
	})
}

// ExpressionStatement evaluates an expression for its effects.
type ExpressionStatement struct {
	Base
	Expression Expression
}

func (e *ExpressionStatement) Kind() Kind     { return KindExpressionStatement }
func (e *ExpressionStatement) statementNode() {}
func (e *ExpressionStatement) String() string {
	return e.text(func() string { return e.Expression.String() + ";" })
}

// Block is a braced statement list.
type Block struct {
	Base
	Statements []Statement
}

func (b *Block) Kind() Kind     { return KindBlock }
func (b *Block) statementNode() {}
func (b *Block) String() string {
	return b.text(func() string { return "{ ... }" })
}

// ReturnStatement returns from the enclosing function. Expression may be nil.
type ReturnStatement struct {
	Base
	Expression Expression
}

func (r *ReturnStatement) Kind() Kind     { return KindReturnStatement }
func (r *ReturnStatement) statementNode() {}
func (r *ReturnStatement) String() string {
	return r.text(func() string {
		if r.Expression == nil {
			return "return;"
		}
		return "return " + r.Expression.String() + ";"
	})
}

// IfStatement is a conditional statement.
type IfStatement struct {
	Base
	Condition Expression
	Then      Statement
	Else      Statement
}

func (s *IfStatement) Kind() Kind     { return KindIfStatement }
func (s *IfStatement) statementNode() {}
func (s *IfStatement) String() string {
	return s.text(func() string { return "if (" + s.Condition.String() + ") ..." })
}

// WhileStatement is a pre-tested loop.
type WhileStatement struct {
	Base
	Condition Expression
	Body      Statement
}

func (s *WhileStatement) Kind() Kind     { return KindWhileStatement }
func (s *WhileStatement) statementNode() {}
func (s *WhileStatement) String() string {
	return s.text(func() string { return "while (" + s.Condition.String() + ") ..." })
}

// Unknown stands for any syntax kind the tree producer emitted that has no
// dedicated node type. It can appear in statement and expression position.
type Unknown struct {
	Base
	Name string
}

func (u *Unknown) Kind() Kind      { return KindUnknown }
func (u *Unknown) statementNode()  {}
func (u *Unknown) expressionNode() {}
func (u *Unknown) String() string {
	return u.text(func() string { return "<" + u.Name + ">" })
}

// ===== Expressions =====

// NumericLiteral is a number literal. Text is the literal as written.
type NumericLiteral struct {
	Base
	Value float64
}

func (n *NumericLiteral) Kind() Kind      { return KindNumericLiteral }
func (n *NumericLiteral) expressionNode() {}
func (n *NumericLiteral) String() string {
	return n.text(func() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) })
}

// StringLiteral is a string literal with its decoded value.
type StringLiteral struct {
	Base
	Value string
}

func (s *StringLiteral) Kind() Kind      { return KindStringLiteral }
func (s *StringLiteral) expressionNode() {}
func (s *StringLiteral) String() string {
	return s.text(func() string { return strconv.Quote(s.Value) })
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Base
	Value bool
}

func (b *BooleanLiteral) Kind() Kind      { return KindBooleanLiteral }
func (b *BooleanLiteral) expressionNode() {}
func (b *BooleanLiteral) String() string {
	return b.text(func() string { return strconv.FormatBool(b.Value) })
}

// Identifier references a binding by name.
type Identifier struct {
	Base
	Name string
}

func (i *Identifier) Kind() Kind      { return KindIdentifier }
func (i *Identifier) expressionNode() {}
func (i *Identifier) String() string  { return i.text(func() string { return i.Name }) }

// ThisExpression is the this keyword.
type ThisExpression struct{ Base }

func (t *ThisExpression) Kind() Kind      { return KindThisKeyword }
func (t *ThisExpression) expressionNode() {}
func (t *ThisExpression) String() string  { return "this" }

// BinaryExpression applies a binary operator.
type BinaryExpression struct {
	Base
	Left     Expression
	Operator Operator
	Right    Expression
}

func (b *BinaryExpression) Kind() Kind      { return KindBinaryExpression }
func (b *BinaryExpression) expressionNode() {}
func (b *BinaryExpression) String() string {
	return b.text(func() string {
		return b.Left.String() + " " + string(b.Operator) + " " + b.Right.String()
	})
}

// PrefixUnaryExpression applies a prefix operator.
type PrefixUnaryExpression struct {
	Base
	Operator Operator
	Operand  Expression
}

func (p *PrefixUnaryExpression) Kind() Kind      { return KindPrefixUnaryExpression }
func (p *PrefixUnaryExpression) expressionNode() {}
func (p *PrefixUnaryExpression) String() string {
	return p.text(func() string { return string(p.Operator) + p.Operand.String() })
}

// PropertyAccessExpression is expr.name.
type PropertyAccessExpression struct {
	Base
	Expression Expression
	Name       string
}

func (p *PropertyAccessExpression) Kind() Kind      { return KindPropertyAccessExpression }
func (p *PropertyAccessExpression) expressionNode() {}
func (p *PropertyAccessExpression) String() string {
	return p.text(func() string { return p.Expression.String() + "." + p.Name })
}

// NewExpression constructs a class instance.
type NewExpression struct {
	Base
	Expression Expression
	Arguments  []Expression
}

func (n *NewExpression) Kind() Kind      { return KindNewExpression }
func (n *NewExpression) expressionNode() {}
func (n *NewExpression) String() string {
	return n.text(func() string { return "new " + n.Expression.String() + "(" + exprList(n.Arguments) + ")" })
}

// CallExpression calls a function or method.
type CallExpression struct {
	Base
	Expression Expression
	Arguments  []Expression
}

func (c *CallExpression) Kind() Kind      { return KindCallExpression }
func (c *CallExpression) expressionNode() {}
func (c *CallExpression) String() string {
	return c.text(func() string { return c.Expression.String() + "(" + exprList(c.Arguments) + ")" })
}

// ===== Helpers =====

func typeParams(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func paramList(params []*Parameter) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}

func exprList(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
