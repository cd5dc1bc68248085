package checked

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/types"
)

// Intrinsic type ids. Documents may refer to them without declaring them.
var intrinsics = map[string]types.TypeFlags{
	"any":       types.FlagAny,
	"unknown":   types.FlagUnknown,
	"number":    types.FlagNumber,
	"string":    types.FlagString,
	"boolean":   types.FlagBoolean,
	"void":      types.FlagVoid,
	"undefined": types.FlagUndefined,
	"null":      types.FlagNull,
	"never":     types.FlagNever,
}

// Program is a loaded checked program. It implements types.Checker.
type Program struct {
	Name  string
	Files []*ast.SourceFile

	types   map[string]*types.Type
	symbols map[string]*types.Symbol

	properties  map[*types.Type][]*types.Symbol
	numberIndex map[*types.Type]*types.Type
	baseTypes   map[*types.Type]*types.Type

	nodeTypes   map[ast.Node]*types.Type
	nodeSymbols map[ast.Node]*types.Symbol
	returnTypes map[ast.Node]*types.Type
}

var _ types.Checker = (*Program)(nil)

// Load reads and parses a checked program from path.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checked program: %w", err)
	}
	prog, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	prog.Name = path
	return prog, nil
}

// Parse decodes a checked program document.
func Parse(data []byte) (*Program, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse checked program: %w", err)
	}
	if len(doc.Files) == 0 {
		return nil, fmt.Errorf("checked program has no files")
	}

	p := &Program{
		types:       make(map[string]*types.Type),
		symbols:     make(map[string]*types.Symbol),
		properties:  make(map[*types.Type][]*types.Symbol),
		numberIndex: make(map[*types.Type]*types.Type),
		baseTypes:   make(map[*types.Type]*types.Type),
		nodeTypes:   make(map[ast.Node]*types.Type),
		nodeSymbols: make(map[ast.Node]*types.Symbol),
		returnTypes: make(map[ast.Node]*types.Type),
	}

	if err := p.loadSymbols(doc.Symbols); err != nil {
		return nil, err
	}
	if err := p.loadTypes(doc.Types); err != nil {
		return nil, err
	}

	for _, fd := range doc.Files {
		file, err := newConverter(p, fd.Name).file(fd)
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", fd.Name, err)
		}
		p.Files = append(p.Files, file)
	}
	return p, nil
}

func (p *Program) loadSymbols(docs map[string]*symbolDoc) error {
	for _, id := range sortedKeys(docs) {
		sd := docs[id]
		sym := &types.Symbol{Name: sd.Name}
		if sym.Name == "" {
			sym.Name = id
		}
		for _, name := range sd.Flags {
			flag, ok := types.ParseSymbolFlag(name)
			if !ok {
				return fmt.Errorf("symbol %s: unknown flag %q", id, name)
			}
			sym.Flags |= flag
		}
		p.symbols[id] = sym
	}
	return nil
}

func (p *Program) loadTypes(docs map[string]*typeDoc) error {
	for id, flag := range intrinsics {
		p.types[id] = &types.Type{Flags: flag, Name: id}
	}

	// Create every type first so references may point forward.
	ids := sortedKeys(docs)
	for _, id := range ids {
		td := docs[id]
		t := &types.Type{Name: td.Name}
		for _, name := range td.Flags {
			flag, ok := types.ParseTypeFlag(name)
			if !ok {
				return fmt.Errorf("type %s: unknown flag %q", id, name)
			}
			t.Flags |= flag
		}
		if td.Value.Kind != 0 {
			var v any
			if err := td.Value.Decode(&v); err != nil {
				return fmt.Errorf("type %s: %w", id, err)
			}
			t.Value = v
		}
		p.types[id] = t
	}

	for _, id := range ids {
		td, t := docs[id], p.types[id]
		var err error

		if td.Symbol != "" {
			if t.Symbol, err = p.symbol(td.Symbol); err != nil {
				return fmt.Errorf("type %s: %w", id, err)
			}
		}
		for _, argID := range td.TypeArguments {
			arg, err := p.typ(argID)
			if err != nil {
				return fmt.Errorf("type %s: %w", id, err)
			}
			t.TypeArguments = append(t.TypeArguments, arg)
		}
		for _, propID := range td.Properties {
			prop, err := p.symbol(propID)
			if err != nil {
				return fmt.Errorf("type %s: %w", id, err)
			}
			p.properties[t] = append(p.properties[t], prop)
		}
		if td.NumberIndex != "" {
			if p.numberIndex[t], err = p.typ(td.NumberIndex); err != nil {
				return fmt.Errorf("type %s: %w", id, err)
			}
		}
		if td.Base != "" {
			if p.baseTypes[t], err = p.typ(td.Base); err != nil {
				return fmt.Errorf("type %s: %w", id, err)
			}
		}
	}
	return nil
}

func (p *Program) typ(id string) (*types.Type, error) {
	t, ok := p.types[id]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", id)
	}
	return t, nil
}

func (p *Program) symbol(id string) (*types.Symbol, error) {
	s, ok := p.symbols[id]
	if !ok {
		return nil, fmt.Errorf("unknown symbol %q", id)
	}
	return s, nil
}

// Type returns the type with the given document id, or nil.
func (p *Program) Type(id string) *types.Type { return p.types[id] }

// Symbol returns the symbol with the given document id, or nil.
func (p *Program) Symbol(id string) *types.Symbol { return p.symbols[id] }

// TypeAtLocation implements types.Checker.
func (p *Program) TypeAtLocation(node ast.Node) *types.Type {
	if t, ok := p.nodeTypes[node]; ok {
		return t
	}
	switch node.(type) {
	case *ast.NumericLiteral:
		return p.types["number"]
	case *ast.StringLiteral:
		return p.types["string"]
	case *ast.BooleanLiteral:
		return p.types["boolean"]
	}
	return p.types["any"]
}

// SymbolAtLocation implements types.Checker.
func (p *Program) SymbolAtLocation(node ast.Node) *types.Symbol {
	return p.nodeSymbols[node]
}

// PropertiesOfType implements types.Checker.
func (p *Program) PropertiesOfType(t *types.Type) []*types.Symbol {
	return p.properties[t]
}

// SignatureFromDeclaration implements types.Checker.
func (p *Program) SignatureFromDeclaration(decl ast.Node) *types.Signature {
	fn, ok := decl.(ast.FunctionLike)
	if !ok {
		return nil
	}

	sig := &types.Signature{Declaration: decl, ReturnType: p.types["void"]}
	if ret, ok := p.returnTypes[decl]; ok {
		sig.ReturnType = ret
	}
	for _, param := range fn.Params() {
		sym := p.nodeSymbols[param]
		if sym == nil {
			sym = &types.Symbol{Name: param.Name, Flags: types.SymbolParameter, ValueDeclaration: param}
		}
		sig.Parameters = append(sig.Parameters, sym)
	}
	return sig
}

// IndexTypeOfType implements types.Checker.
func (p *Program) IndexTypeOfType(t *types.Type) *types.Type {
	return p.numberIndex[t]
}

// BaseTypeOfLiteralType implements types.Checker.
func (p *Program) BaseTypeOfLiteralType(t *types.Type) *types.Type {
	if base, ok := p.baseTypes[t]; ok {
		return base
	}
	switch {
	case t.Is(types.FlagStringLiteral):
		return p.types["string"]
	case t.Is(types.FlagNumberLiteral):
		return p.types["number"]
	case t.Is(types.FlagBooleanLiteral):
		return p.types["boolean"]
	}
	return t
}

// TypeToString implements types.Checker.
func (p *Program) TypeToString(t *types.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name != "" {
		return t.Name
	}
	if t.Symbol == nil {
		return t.Flags.String()
	}
	if len(t.TypeArguments) == 0 {
		return t.Symbol.Name
	}
	args := make([]string, len(t.TypeArguments))
	for i, arg := range t.TypeArguments {
		args[i] = p.TypeToString(arg)
	}
	return t.Symbol.Name + "<" + strings.Join(args, ", ") + ">"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
