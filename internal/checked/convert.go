package checked

import (
	"fmt"

	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/position"
)

// converter builds the declaration tree of one file and records the checker
// annotations of every node on the program.
type converter struct {
	prog     *Program
	filename string
}

func newConverter(prog *Program, filename string) *converter {
	return &converter{prog: prog, filename: filename}
}

func (c *converter) file(fd *fileDoc) (*ast.SourceFile, error) {
	file := &ast.SourceFile{Name: fd.Name}
	file.Span = position.NewSpan(fd.Name, 1, 1, 1, 1)

	stmts, err := c.statements(fd.Statements)
	if err != nil {
		return nil, err
	}
	file.Statements = stmts
	ast.SetParents(file)
	return file, nil
}

func (c *converter) statements(docs []*nodeDoc) ([]ast.Statement, error) {
	out := make([]ast.Statement, 0, len(docs))
	for _, d := range docs {
		s, err := c.statement(d)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *converter) statement(d *nodeDoc) (ast.Statement, error) {
	n, err := c.node(d)
	if err != nil {
		return nil, err
	}
	s, ok := n.(ast.Statement)
	if !ok {
		return nil, c.errorf(d, "%s is not a statement", d.Kind)
	}
	return s, nil
}

func (c *converter) optionalStatement(d *nodeDoc) (ast.Statement, error) {
	if d == nil {
		return nil, nil
	}
	return c.statement(d)
}

func (c *converter) expression(d *nodeDoc) (ast.Expression, error) {
	if d == nil {
		return nil, nil
	}
	n, err := c.node(d)
	if err != nil {
		return nil, err
	}
	e, ok := n.(ast.Expression)
	if !ok {
		return nil, c.errorf(d, "%s is not an expression", d.Kind)
	}
	return e, nil
}

func (c *converter) requiredExpression(d *nodeDoc, field string) (ast.Expression, error) {
	if d == nil {
		return nil, fmt.Errorf("missing %s", field)
	}
	return c.expression(d)
}

func (c *converter) expressions(docs []*nodeDoc) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0, len(docs))
	for _, d := range docs {
		e, err := c.expression(d)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (c *converter) members(docs []*nodeDoc) ([]ast.Member, error) {
	out := make([]ast.Member, 0, len(docs))
	for _, d := range docs {
		n, err := c.node(d)
		if err != nil {
			return nil, err
		}
		m, ok := n.(ast.Member)
		if !ok {
			return nil, c.errorf(d, "%s is not a class member", d.Kind)
		}
		out = append(out, m)
	}
	return out, nil
}

func (c *converter) parameters(docs []*nodeDoc) ([]*ast.Parameter, error) {
	out := make([]*ast.Parameter, 0, len(docs))
	for _, d := range docs {
		p := &ast.Parameter{Name: d.Name, Property: d.Property}
		if err := c.annotate(p, d); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// block converts an optional function body. A body is given as a Block node.
func (c *converter) block(d *nodeDoc) (*ast.Block, error) {
	if d == nil {
		return nil, nil
	}
	n, err := c.node(d)
	if err != nil {
		return nil, err
	}
	b, ok := n.(*ast.Block)
	if !ok {
		return nil, c.errorf(d, "function body must be a Block, got %s", d.Kind)
	}
	return b, nil
}

func (c *converter) node(d *nodeDoc) (ast.Node, error) {
	var (
		n   ast.Node
		err error
	)

	switch d.Kind {
	case "EndOfFileToken":
		n = &ast.EndOfFile{}
	case "ModuleDeclaration":
		m := &ast.ModuleDeclaration{Name: d.Name, Ambient: d.Ambient}
		m.Body, err = c.statements(d.Statements)
		n = m
	case "ClassDeclaration":
		cl := &ast.ClassDeclaration{Name: d.Name, TypeParameters: d.TypeParameters, Ambient: d.Ambient}
		cl.Members, err = c.members(d.Members)
		n = cl
	case "InterfaceDeclaration":
		in := &ast.InterfaceDeclaration{Name: d.Name, TypeParameters: d.TypeParameters}
		in.Members, err = c.members(d.Members)
		n = in
	case "FunctionDeclaration":
		f := &ast.FunctionDeclaration{Name: d.Name}
		if f.Parameters, err = c.parameters(d.Parameters); err == nil {
			f.Body, err = c.block(d.Body)
		}
		n = f
	case "MethodDeclaration":
		m := &ast.MethodDeclaration{Name: d.Name}
		if m.Parameters, err = c.parameters(d.Parameters); err == nil {
			m.Body, err = c.block(d.Body)
		}
		n = m
	case "MethodSignature":
		m := &ast.MethodSignature{Name: d.Name}
		m.Parameters, err = c.parameters(d.Parameters)
		n = m
	case "Constructor":
		ctor := &ast.Constructor{}
		if ctor.Parameters, err = c.parameters(d.Parameters); err == nil {
			ctor.Body, err = c.block(d.Body)
		}
		n = ctor
	case "IndexSignature":
		s := &ast.IndexSignature{}
		s.Parameters, err = c.parameters(d.Parameters)
		n = s
	case "PropertyDeclaration":
		p := &ast.PropertyDeclaration{Name: d.Name, Readonly: d.Readonly}
		p.Initializer, err = c.expression(d.Initializer)
		n = p
	case "VariableStatement":
		v := &ast.VariableStatement{Const: d.Const}
		for _, dd := range d.Declarations {
			decl := &ast.VariableDeclaration{Name: dd.Name}
			if decl.Initializer, err = c.expression(dd.Initializer); err != nil {
				break
			}
			if err = c.annotate(decl, dd); err != nil {
				break
			}
			v.Declarations = append(v.Declarations, decl)
		}
		n = v
	case "ExpressionStatement":
		s := &ast.ExpressionStatement{}
		s.Expression, err = c.requiredExpression(d.Expression, "expression")
		n = s
	case "Block":
		b := &ast.Block{}
		b.Statements, err = c.statements(d.Statements)
		n = b
	case "ReturnStatement":
		r := &ast.ReturnStatement{}
		r.Expression, err = c.expression(d.Expression)
		n = r
	case "IfStatement":
		s := &ast.IfStatement{}
		if s.Condition, err = c.requiredExpression(d.Condition, "condition"); err == nil {
			if s.Then, err = c.statement(orEmpty(d.Then)); err == nil {
				s.Else, err = c.optionalStatement(d.Else)
			}
		}
		n = s
	case "WhileStatement":
		s := &ast.WhileStatement{}
		if s.Condition, err = c.requiredExpression(d.Condition, "condition"); err == nil {
			s.Body, err = c.statement(orEmpty(d.Body))
		}
		n = s
	case "NumericLiteral":
		lit := &ast.NumericLiteral{}
		err = c.decodeValue(d, &lit.Value)
		n = lit
	case "StringLiteral":
		lit := &ast.StringLiteral{}
		err = c.decodeValue(d, &lit.Value)
		n = lit
	case "BooleanLiteral", "TrueKeyword", "FalseKeyword":
		lit := &ast.BooleanLiteral{Value: d.Kind == "TrueKeyword"}
		if d.Value.Kind != 0 {
			err = c.decodeValue(d, &lit.Value)
		}
		n = lit
	case "Identifier":
		n = &ast.Identifier{Name: d.Name}
	case "ThisKeyword":
		n = &ast.ThisExpression{}
	case "BinaryExpression":
		b := &ast.BinaryExpression{Operator: ast.Operator(d.Operator)}
		if b.Left, err = c.requiredExpression(d.Left, "left operand"); err == nil {
			b.Right, err = c.requiredExpression(d.Right, "right operand")
		}
		n = b
	case "PrefixUnaryExpression":
		u := &ast.PrefixUnaryExpression{Operator: ast.Operator(d.Operator)}
		u.Operand, err = c.requiredExpression(d.Operand, "operand")
		n = u
	case "PropertyAccessExpression":
		pa := &ast.PropertyAccessExpression{Name: d.Name}
		pa.Expression, err = c.requiredExpression(d.Expression, "object")
		n = pa
	case "NewExpression":
		ne := &ast.NewExpression{}
		if ne.Expression, err = c.requiredExpression(d.Expression, "class"); err == nil {
			ne.Arguments, err = c.expressions(d.Arguments)
		}
		n = ne
	case "CallExpression":
		ce := &ast.CallExpression{}
		if ce.Expression, err = c.requiredExpression(d.Expression, "callee"); err == nil {
			ce.Arguments, err = c.expressions(d.Arguments)
		}
		n = ce
	default:
		n = &ast.Unknown{Name: d.Kind}
	}

	if err != nil {
		return nil, c.wrap(d, err)
	}
	if err := c.annotate(n, d); err != nil {
		return nil, err
	}
	return n, nil
}

// annotate sets the span and text of n and records its checker annotations.
func (c *converter) annotate(n ast.Node, d *nodeDoc) error {
	setSource(n, c.filename, d)

	if d.Type != "" {
		t, err := c.prog.typ(d.Type)
		if err != nil {
			return c.wrap(d, err)
		}
		c.prog.nodeTypes[n] = t
	}
	if d.Symbol != "" {
		s, err := c.prog.symbol(d.Symbol)
		if err != nil {
			return c.wrap(d, err)
		}
		c.prog.nodeSymbols[n] = s
	}
	if d.Declares != "" {
		s, err := c.prog.symbol(d.Declares)
		if err != nil {
			return c.wrap(d, err)
		}
		s.Declarations = append(s.Declarations, n)
		if s.ValueDeclaration == nil {
			s.ValueDeclaration = n
		}
		if _, ok := c.prog.nodeSymbols[n]; !ok {
			c.prog.nodeSymbols[n] = s
		}
	}
	if d.Returns != "" {
		t, err := c.prog.typ(d.Returns)
		if err != nil {
			return c.wrap(d, err)
		}
		c.prog.returnTypes[n] = t
	}
	return nil
}

func (c *converter) decodeValue(d *nodeDoc, out any) error {
	if d.Value.Kind == 0 {
		return fmt.Errorf("missing value")
	}
	return d.Value.Decode(out)
}

func (c *converter) wrap(d *nodeDoc, err error) error {
	return fmt.Errorf("%s at %s: %w", d.Kind, c.pos(d), err)
}

func (c *converter) errorf(d *nodeDoc, format string, args ...any) error {
	return fmt.Errorf("%s: %s", c.pos(d), fmt.Sprintf(format, args...))
}

func (c *converter) pos(d *nodeDoc) string {
	return position.Position{Filename: c.filename, Line: d.Line, Column: d.Column}.String()
}

func setSource(n ast.Node, filename string, d *nodeDoc) {
	endLine, endCol := d.EndLine, d.EndColumn
	if endLine == 0 {
		endLine, endCol = d.Line, d.Column
	}
	ast.SetSource(n, position.NewSpan(filename, d.Line, d.Column, endLine, endCol), d.Text)
}

func orEmpty(d *nodeDoc) *nodeDoc {
	if d == nil {
		return &nodeDoc{Kind: "Block"}
	}
	return d
}
