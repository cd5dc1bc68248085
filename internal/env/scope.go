// Package env implements the symbol environment used while lowering: a stack
// of write-once scopes mapping identifiers to IR values or nested scopes.
package env

import (
	"sort"
	"strings"

	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/nativets-lang/nativets/internal/ast"
	"github.com/nativets-lang/nativets/internal/errors"
)

// ScopeData records where a scope comes from. Classes carry their
// declaration and lowered struct type here.
type ScopeData struct {
	Declaration ast.Node
	Type        types.Type
}

// Binding is what an identifier resolves to: exactly one of Value or Scope
// is set.
type Binding struct {
	Value value.Value
	Scope *Scope
}

// ValueBinding wraps an IR value.
func ValueBinding(v value.Value) Binding { return Binding{Value: v} }

// ScopeBinding wraps a nested scope.
func ScopeBinding(s *Scope) Binding { return Binding{Scope: s} }

// IsScope reports whether the binding is a nested scope.
func (b Binding) IsScope() bool { return b.Scope != nil }

func (b Binding) isZero() bool { return b.Value == nil && b.Scope == nil }

// Scope is a named or anonymous set of bindings.
type Scope struct {
	Name     string
	Data     *ScopeData
	bindings map[string]Binding
}

// NewScope creates an empty scope. Name may be empty for anonymous scopes.
func NewScope(name string, data *ScopeData) *Scope {
	return &Scope{Name: name, Data: data, bindings: make(map[string]Binding)}
}

func (s *Scope) label() string {
	if s.Name == "" {
		return "<anonymous>"
	}
	return s.Name
}

// Lookup returns the binding for name without failing.
func (s *Scope) Lookup(name string) (Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Get resolves name in this scope. Dotted names descend into nested scopes.
func (s *Scope) Get(name string) (Binding, error) {
	head, rest, dotted := strings.Cut(name, ".")
	b, ok := s.bindings[head]
	if !ok {
		return Binding{}, errors.UnknownIdentifier(head)
	}
	if !dotted {
		return b, nil
	}
	if !b.IsScope() {
		return Binding{}, errors.NotNamespace(head)
	}
	return b.Scope.Get(rest)
}

// Set binds name. Bindings are write-once.
func (s *Scope) Set(name string, b Binding) error {
	if b.isZero() {
		return errors.Internal("empty binding for '%s'", name)
	}
	if _, exists := s.bindings[name]; exists {
		return errors.DuplicateBinding(name, s.label())
	}
	s.bindings[name] = b
	return nil
}

// SetValue binds name to an IR value.
func (s *Scope) SetValue(name string, v value.Value) error {
	return s.Set(name, ValueBinding(v))
}

// SetScope binds name to a nested scope.
func (s *Scope) SetScope(name string, child *Scope) error {
	return s.Set(name, ScopeBinding(child))
}

// Overwrite replaces an existing binding.
func (s *Scope) Overwrite(name string, b Binding) error {
	if _, exists := s.bindings[name]; !exists {
		return errors.UnknownBinding(name, s.label())
	}
	s.bindings[name] = b
	return nil
}

// Names returns the bound identifiers in sorted order.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.bindings))
	for name := range s.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bindings.
func (s *Scope) Len() int { return len(s.bindings) }
