package interp

import (
	"github.com/rlox-lang/rlox/ast"
	"github.com/rlox-lang/rlox/token"
)

// Function is a user-defined function or method together with the
// environment it closed over.
type Function struct {
	decl    *ast.FunDecl
	closure *Environment
	isInit  bool
}

func (f *Function) Arity() int   { return len(f.decl.Params) }
func (f *Function) Name() string { return f.decl.Name.Lexeme }

// bind returns a copy of f whose closure carries the receiver as this.
func (f *Function) bind(inst *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", InstanceValue(inst))
	return &Function{decl: f.decl, closure: env, isInit: f.isInit}
}

// Native is a built-in function. Call receives the running interpreter for
// access to its streams, and the call site line for diagnostics.
type Native struct {
	Name string
	Call func(i *Interpreter, args []Value, line int) (Value, error)
}

// Class is the runtime form of a class declaration. Calling it constructs
// an instance.
type Class struct {
	Name    string
	methods map[string]*Function
}

func (c *Class) findMethod(name string) (*Function, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// Instance is one object: its class plus mutable fields.
type Instance struct {
	class  *Class
	fields map[string]Value
}

// get reads a field or binds a method. Fields shadow methods.
func (inst *Instance) get(name token.Token) (Value, error) {
	if v, ok := inst.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m, ok := inst.class.findMethod(name.Lexeme); ok {
		return FunctionValue(m.bind(inst)), nil
	}
	return Value{}, Error{Line: name.Pos.Line, Message: "Undefined property " + name.Lexeme}
}

func (inst *Instance) set(name string, v Value) {
	inst.fields[name] = v
}
