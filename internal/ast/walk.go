package ast

import "fmt"

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil && !isNilNode(c) {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *SourceFile:
		for _, s := range n.Statements {
			add(s)
		}
	case *ModuleDeclaration:
		for _, s := range n.Body {
			add(s)
		}
	case *ClassDeclaration:
		for _, m := range n.Members {
			add(m)
		}
	case *InterfaceDeclaration:
		for _, m := range n.Members {
			add(m)
		}
	case *FunctionDeclaration:
		addParams(add, n.Parameters)
		add(blockNode(n.Body))
	case *MethodDeclaration:
		addParams(add, n.Parameters)
		add(blockNode(n.Body))
	case *MethodSignature:
		addParams(add, n.Parameters)
	case *Constructor:
		addParams(add, n.Parameters)
		add(blockNode(n.Body))
	case *IndexSignature:
		addParams(add, n.Parameters)
	case *PropertyDeclaration:
		add(n.Initializer)
	case *VariableStatement:
		for _, d := range n.Declarations {
			add(d)
		}
	case *VariableDeclaration:
		add(n.Initializer)
	case *ExpressionStatement:
		add(n.Expression)
	case *Block:
		for _, s := range n.Statements {
			add(s)
		}
	case *ReturnStatement:
		add(n.Expression)
	case *IfStatement:
		add(n.Condition, n.Then, n.Else)
	case *WhileStatement:
		add(n.Condition, n.Body)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *PrefixUnaryExpression:
		add(n.Operand)
	case *PropertyAccessExpression:
		add(n.Expression)
	case *NewExpression:
		add(n.Expression)
		for _, a := range n.Arguments {
			add(a)
		}
	case *CallExpression:
		add(n.Expression)
		for _, a := range n.Arguments {
			add(a)
		}
	case *EndOfFile, *Parameter, *NumericLiteral, *StringLiteral, *BooleanLiteral,
		*Identifier, *ThisExpression, *Unknown:
		// leaves
	default:
		panic(fmt.Sprintf("ast.Children: unexpected node type %T", n))
	}

	return out
}

func addParams(add func(...Node), params []*Parameter) {
	for _, p := range params {
		add(p)
	}
}

// blockNode avoids storing a typed nil *Block in a Node interface.
func blockNode(b *Block) Node {
	if b == nil {
		return nil
	}
	return b
}

func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Block:
		return v == nil
	case *Parameter:
		return v == nil
	case *VariableDeclaration:
		return v == nil
	}
	return false
}

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each node. If f returns false, the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// SetParents links every node below root to its syntactic parent.
func SetParents(root Node) {
	for _, c := range Children(root) {
		c.setParent(root)
		SetParents(c)
	}
}

// EnclosingClass returns the nearest ClassDeclaration or InterfaceDeclaration
// containing n, or nil.
func EnclosingClass(n Node) Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.(type) {
		case *ClassDeclaration, *InterfaceDeclaration:
			return p
		}
	}
	return nil
}

// NamespacePath returns the names of the namespaces enclosing n, outermost
// first.
func NamespacePath(n Node) []string {
	var path []string
	for p := n.Parent(); p != nil; p = p.Parent() {
		if m, ok := p.(*ModuleDeclaration); ok {
			path = append([]string{m.Name}, path...)
		}
	}
	return path
}
