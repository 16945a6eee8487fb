package interpreter

import (
	"github.com/loxlang/golox/loxerror"
	"github.com/loxlang/golox/token"
)

// Environment is one link in the lexical scope chain: the global
// environment plus one per block, function call, and method binding.
type Environment struct {
	enclosing *Environment
	values    map[string]Value
}

// NewEnvironment creates a top-level (global) environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// NewChildEnvironment creates an environment nested inside enclosing.
func NewChildEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]Value)}
}

// Define binds name to value in this environment, shadowing any binding of
// the same name in an enclosing environment. Redefinition within the same
// environment is allowed (the resolver rejects it only for block-scoped
// declarations, not globals).
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get looks up name by walking the environment chain outward, reporting a
// runtime error if it's never defined.
func (e *Environment) Get(name token.Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, loxerror.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// GetAt looks up name exactly `distance` environments out from e, as
// computed by the resolver. It never fails: the resolver guarantees the
// binding exists at that depth.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// Assign rebinds an existing variable, walking the environment chain
// outward. Unlike Define, it reports a runtime error if name was never
// declared, matching Lox's distinction between declaration and assignment.
func (e *Environment) Assign(name token.Token, value Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return loxerror.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// AssignAt rebinds name exactly `distance` environments out from e.
func (e *Environment) AssignAt(distance int, name token.Token, value Value) {
	e.ancestor(distance).values[name.Lexeme] = value
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}
