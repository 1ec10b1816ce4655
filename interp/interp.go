// Package interp evaluates resolved programs with a tree walk. One
// interpreter carries its global scope across calls, so it can back a whole
// interactive session as well as a single script run.
package interp

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rlox-lang/rlox/ast"
	"github.com/rlox-lang/rlox/resolver"
	"github.com/rlox-lang/rlox/token"
)

// Error is a runtime diagnostic.
type Error struct {
	Line    int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("Runtime Error: %s - [Line: %d]", e.Message, e.Line)
}

// Interpreter executes programs against a persistent global scope.
type Interpreter struct {
	globals *Environment
	env     *Environment
	depths  resolver.Depths

	stdin  *bufio.Reader
	stdout io.Writer
}

// New returns an interpreter reading input lines from in and printing to out.
func New(in io.Reader, out io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	defineNatives(globals)
	return &Interpreter{
		globals: globals,
		env:     globals,
		depths:  resolver.Depths{},
		stdin:   bufio.NewReader(in),
		stdout:  out,
	}
}

// Interpret runs stmts with their resolution table. Execution stops at the
// first runtime error.
func (i *Interpreter) Interpret(stmts []ast.Stmt, depths resolver.Depths) error {
	i.learn(depths)
	for _, s := range stmts {
		if _, err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// EvalExpr evaluates a single resolved expression, for interactive use.
func (i *Interpreter) EvalExpr(e ast.Expr, depths resolver.Depths) (Value, error) {
	i.learn(depths)
	return i.eval(e)
}

// learn merges a resolution table into the interpreter's. Tables from
// separate parses never collide because entries are keyed by node identity.
func (i *Interpreter) learn(depths resolver.Depths) {
	for e, d := range depths {
		i.depths[e] = d
	}
}

// execute runs one statement. A non-nil first result is a return value
// unwinding toward the nearest call.
func (i *Interpreter) execute(s ast.Stmt) (*Value, error) {
	switch s := s.(type) {
	case *ast.VarDecl:
		value := NilValue()
		if s.Init != nil {
			v, err := i.eval(s.Init)
			if err != nil {
				return nil, err
			}
			value = v
		}
		i.env.Define(s.Name.Lexeme, value)
	case *ast.FunDecl:
		i.env.Define(s.Name.Lexeme, FunctionValue(&Function{decl: s, closure: i.env}))
	case *ast.ClassDecl:
		methods := make(map[string]*Function, len(s.Methods))
		for _, m := range s.Methods {
			methods[m.Name.Lexeme] = &Function{
				decl:    m,
				closure: i.env,
				isInit:  m.Name.Lexeme == "init",
			}
		}
		i.env.Define(s.Name.Lexeme, ClassValue(&Class{Name: s.Name.Lexeme, methods: methods}))
	case *ast.ExprStmt:
		if _, err := i.eval(s.X); err != nil {
			return nil, err
		}
	case *ast.Block:
		return i.executeBlock(s.Stmts, NewEnvironment(i.env))
	case *ast.If:
		cond, err := i.eval(s.Cond)
		if err != nil {
			return nil, err
		}
		if cond.Truthy() {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
	case *ast.While:
		for {
			cond, err := i.eval(s.Cond)
			if err != nil {
				return nil, err
			}
			if !cond.Truthy() {
				return nil, nil
			}
			ret, err := i.execute(s.Body)
			if err != nil {
				return nil, err
			}
			if ret != nil {
				return ret, nil
			}
		}
	case *ast.Return:
		value := NilValue()
		if s.Value != nil {
			v, err := i.eval(s.Value)
			if err != nil {
				return nil, err
			}
			value = v
		}
		return &value, nil
	}
	return nil, nil
}

// executeBlock runs stmts in env and restores the previous environment even
// when a return value unwinds through.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) (*Value, error) {
	prev := i.env
	i.env = env
	defer func() { i.env = prev }()

	for _, s := range stmts {
		ret, err := i.execute(s)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			return ret, nil
		}
	}
	return nil, nil
}

func (i *Interpreter) eval(e ast.Expr) (Value, error) {
	switch e := e.(type) {
	case *ast.Literal:
		return literalValue(e), nil
	case *ast.Variable:
		return i.lookUpVariable(e.Name, e)
	case *ast.This:
		return i.lookUpVariable(e.Keyword, e)
	case *ast.Grouping:
		return i.eval(e.X)
	case *ast.Assign:
		value, err := i.eval(e.Value)
		if err != nil {
			return Value{}, err
		}
		if depth, ok := i.depths[e]; ok {
			i.env.AssignAt(depth, e.Name.Lexeme, value)
		} else if err := i.globals.Assign(e.Name, value); err != nil {
			return Value{}, err
		}
		return value, nil
	case *ast.Unary:
		return i.unary(e)
	case *ast.Binary:
		return i.binary(e)
	case *ast.Logical:
		left, err := i.eval(e.X)
		if err != nil {
			return Value{}, err
		}
		// Short-circuit: the deciding operand is the result.
		if e.Op.Type == token.Or {
			if left.Truthy() {
				return left, nil
			}
		} else if !left.Truthy() {
			return left, nil
		}
		return i.eval(e.Y)
	case *ast.Call:
		return i.callExpr(e)
	case *ast.Get:
		obj, err := i.eval(e.Object)
		if err != nil {
			return Value{}, err
		}
		if obj.Kind != KindInstance {
			return Value{}, Error{Line: e.Name.Pos.Line, Message: "Only instances have properties."}
		}
		return obj.Instance.get(e.Name)
	case *ast.Set:
		obj, err := i.eval(e.Object)
		if err != nil {
			return Value{}, err
		}
		if obj.Kind != KindInstance {
			return Value{}, Error{Line: e.Name.Pos.Line, Message: "Only instances have fields."}
		}
		value, err := i.eval(e.Value)
		if err != nil {
			return Value{}, err
		}
		obj.Instance.set(e.Name.Lexeme, value)
		return value, nil
	}
	return Value{}, nil
}

func (i *Interpreter) lookUpVariable(name token.Token, e ast.Expr) (Value, error) {
	if depth, ok := i.depths[e]; ok {
		return i.env.GetAt(depth, name.Lexeme), nil
	}
	return i.globals.Get(name)
}

func (i *Interpreter) unary(e *ast.Unary) (Value, error) {
	operand, err := i.eval(e.X)
	if err != nil {
		return Value{}, err
	}
	if e.Op.Type == token.Bang {
		return BoolValue(!operand.Truthy()), nil
	}
	if operand.Kind != KindNumber {
		return Value{}, Error{Line: e.Op.Pos.Line, Message: "operands must be numbers."}
	}
	return NumberValue(-operand.Num), nil
}

func (i *Interpreter) binary(e *ast.Binary) (Value, error) {
	left, err := i.eval(e.X)
	if err != nil {
		return Value{}, err
	}
	right, err := i.eval(e.Y)
	if err != nil {
		return Value{}, err
	}

	line := e.Op.Pos.Line
	switch e.Op.Type {
	case token.Plus:
		// The complaint follows the left operand: a number wants a number,
		// a string wants a string, anything else can't be added at all.
		switch left.Kind {
		case KindNumber:
			if right.Kind == KindNumber {
				return NumberValue(left.Num + right.Num), nil
			}
			return Value{}, Error{Line: line, Message: "operands must be two numbers."}
		case KindString:
			if right.Kind == KindString {
				return StringValue(left.Str + right.Str), nil
			}
			return Value{}, Error{Line: line, Message: "operands must be two strings."}
		}
		return Value{}, Error{Line: line, Message: "operands must be two numbers or two strings."}
	case token.EqualEqual:
		return BoolValue(Equal(left, right)), nil
	case token.BangEqual:
		return BoolValue(!Equal(left, right)), nil
	}

	if left.Kind != KindNumber || right.Kind != KindNumber {
		return Value{}, Error{Line: line, Message: "operands must be two numbers."}
	}
	switch e.Op.Type {
	case token.Minus:
		return NumberValue(left.Num - right.Num), nil
	case token.Star:
		return NumberValue(left.Num * right.Num), nil
	case token.Slash:
		return NumberValue(left.Num / right.Num), nil
	case token.Greater:
		return BoolValue(left.Num > right.Num), nil
	case token.GreaterEqual:
		return BoolValue(left.Num >= right.Num), nil
	case token.Less:
		return BoolValue(left.Num < right.Num), nil
	default:
		return BoolValue(left.Num <= right.Num), nil
	}
}

func (i *Interpreter) callExpr(e *ast.Call) (Value, error) {
	callee, err := i.eval(e.Callee)
	if err != nil {
		return Value{}, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := i.eval(a)
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}

	line := e.Paren.Pos.Line
	switch callee.Kind {
	case KindFunction:
		if len(args) != callee.Fn.Arity() {
			return Value{}, arityError(callee.Fn.Arity(), len(args), line)
		}
		return i.callFunction(callee.Fn, args)
	case KindNative:
		return callee.Native.Call(i, args, line)
	case KindClass:
		return i.instantiate(callee.Class, args, line)
	}
	return Value{}, Error{Line: line, Message: "Can only call functions and classes."}
}

func (i *Interpreter) callFunction(fn *Function, args []Value) (Value, error) {
	env := NewEnvironment(fn.closure)
	for idx, param := range fn.decl.Params {
		env.Define(param.Lexeme, args[idx])
	}

	ret, err := i.executeBlock(fn.decl.Body.Stmts, env)
	if err != nil {
		return Value{}, err
	}
	// Constructors always hand back the receiver, even on explicit return.
	if fn.isInit {
		return fn.closure.GetAt(0, "this"), nil
	}
	if ret != nil {
		return *ret, nil
	}
	return NilValue(), nil
}

func (i *Interpreter) instantiate(class *Class, args []Value, line int) (Value, error) {
	inst := &Instance{class: class, fields: map[string]Value{}}
	init, ok := class.findMethod("init")
	if !ok {
		if len(args) != 0 {
			return Value{}, arityError(0, len(args), line)
		}
		return InstanceValue(inst), nil
	}

	if len(args) != init.Arity() {
		return Value{}, arityError(init.Arity(), len(args), line)
	}
	if _, err := i.callFunction(init.bind(inst), args); err != nil {
		return Value{}, err
	}
	return InstanceValue(inst), nil
}

func arityError(want, got, line int) error {
	return Error{Line: line, Message: fmt.Sprintf("Expected %d arguments but got %d.", want, got)}
}

func literalValue(e *ast.Literal) Value {
	switch v := e.Value.(type) {
	case bool:
		return BoolValue(v)
	case float64:
		return NumberValue(v)
	case string:
		return StringValue(v)
	}
	return NilValue()
}
