package interp

import "github.com/rlox-lang/rlox/token"

// Environment holds one scope's bindings, chained to the enclosing scope.
type Environment struct {
	enclosing *Environment
	values    map[string]Value
}

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: map[string]Value{}}
}

func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

// Get walks the chain outward until the name is found.
func (e *Environment) Get(name token.Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return Value{}, Error{Line: name.Pos.Line, Message: "Undefined variable."}
}

func (e *Environment) Assign(name token.Token, v Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = v
			return nil
		}
	}
	return Error{Line: name.Pos.Line, Message: "Undefined variable."}
}

// GetAt reads from the scope depth hops up the chain. The resolver has
// already proven the binding exists there.
func (e *Environment) GetAt(depth int, name string) Value {
	return e.ancestor(depth).values[name]
}

func (e *Environment) AssignAt(depth int, name string, v Value) {
	e.ancestor(depth).values[name] = v
}

func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.enclosing
	}
	return env
}
