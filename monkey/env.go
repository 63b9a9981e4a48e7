package monkey

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUndefined is returned by Resolve when no scope binds the name.
var ErrUndefined = errors.New("identifier not found")

// Env is one lexical scope. Lookups walk outward through parent scopes;
// definitions always bind in the receiver.
type Env struct {
	parent *Env
	values map[string]Value
}

// NewEnv returns an empty top-level scope.
func NewEnv() *Env {
	return newEnv(nil)
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

// Child returns a new scope whose parent is e.
func (e *Env) Child() *Env {
	return newEnv(e)
}

// Parent returns the enclosing scope, or nil for a top-level scope.
func (e *Env) Parent() *Env {
	return e.parent
}

func (e *Env) Get(name string) (Value, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if val, ok := scope.values[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

// Resolve is Get with a descriptive error for unbound names.
func (e *Env) Resolve(name string) (Value, error) {
	val, ok := e.Get(name)
	if !ok {
		return NewNull(), fmt.Errorf("%w: %s", ErrUndefined, name)
	}
	return val, nil
}

// Define binds or rebinds name in e, shadowing any outer binding.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Names returns the names bound directly in e, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
