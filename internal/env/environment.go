package env

import (
	"strings"

	"github.com/llir/llvm/ir/value"

	"github.com/nativets-lang/nativets/internal/errors"
)

// Environment is the stack of scopes active during lowering. The outermost
// scope is the global scope and is never popped.
type Environment struct {
	scopes []*Scope
}

// New creates an environment holding only the global scope.
func New() *Environment {
	return &Environment{scopes: []*Scope{NewScope("", nil)}}
}

// Global returns the outermost scope.
func (e *Environment) Global() *Scope { return e.scopes[0] }

// Current returns the innermost scope.
func (e *Environment) Current() *Scope { return e.scopes[len(e.scopes)-1] }

// Depth returns the number of active scopes, including the global scope.
func (e *Environment) Depth() int { return len(e.scopes) }

// WithScope runs body with a fresh scope pushed. The scope is popped on every
// exit path, including errors and panics.
func (e *Environment) WithScope(name string, body func(*Scope) error) error {
	scope := NewScope(name, nil)
	e.scopes = append(e.scopes, scope)
	depth := len(e.scopes)
	defer func() {
		e.scopes = e.scopes[:depth-1]
	}()
	return body(scope)
}

// Enter runs body with an existing scope pushed, for constructs whose scope
// outlives a single traversal such as namespaces.
func (e *Environment) Enter(scope *Scope, body func() error) error {
	e.scopes = append(e.scopes, scope)
	depth := len(e.scopes)
	defer func() {
		e.scopes = e.scopes[:depth-1]
	}()
	return body()
}

// Detached runs body with only the global scope active and restores the
// previous stack afterwards. Lazily emitted functions use it so that their
// bodies cannot see the locals of whatever construct triggered them.
func (e *Environment) Detached(body func() error) error {
	saved := e.scopes
	e.scopes = []*Scope{saved[0]}
	defer func() {
		e.scopes = saved
	}()
	return body()
}

// Get resolves name. A dotted name a.b.c requires a to resolve to a scope and
// continues inside it; a plain name is searched innermost to outermost.
func (e *Environment) Get(name string) (Binding, error) {
	if head, rest, dotted := strings.Cut(name, "."); dotted {
		b, err := e.Get(head)
		if err != nil {
			return Binding{}, err
		}
		if !b.IsScope() {
			return Binding{}, errors.NotNamespace(head)
		}
		return b.Scope.Get(rest)
	}

	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i].Lookup(name); ok {
			return b, nil
		}
	}
	return Binding{}, errors.UnknownIdentifier(name)
}

// GetValue resolves name and requires an IR value.
func (e *Environment) GetValue(name string) (value.Value, error) {
	b, err := e.Get(name)
	if err != nil {
		return nil, err
	}
	if b.IsScope() {
		return nil, errors.Internal("'%s' names a scope, not a value", name)
	}
	return b.Value, nil
}

// GetScope resolves name and requires a scope.
func (e *Environment) GetScope(name string) (*Scope, error) {
	b, err := e.Get(name)
	if err != nil {
		return nil, err
	}
	if !b.IsScope() {
		return nil, errors.NotNamespace(name)
	}
	return b.Scope, nil
}
