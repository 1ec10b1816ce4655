// Package resolver performs the static pass between parsing and evaluation.
// It binds every local variable use to the scope that declared it and rejects
// programs that misuse declarations, this, or return.
package resolver

import (
	"fmt"

	"github.com/rlox-lang/rlox/ast"
	"github.com/rlox-lang/rlox/token"
)

// Error is a static analysis diagnostic.
type Error struct {
	Line    int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s [Line: %d]", e.Message, e.Line)
}

// Depths maps a variable or this expression to the number of scopes between
// its use and its declaration. Globals have no entry; the evaluator falls
// back to the global environment for them.
type Depths map[ast.Expr]int

// Resolve analyzes a program and returns its depth table. The table is
// only meaningful when errs is empty.
func Resolve(stmts []ast.Stmt) (Depths, []Error) {
	r := &resolver{depths: Depths{}}
	r.stmts(stmts)
	return r.depths, r.errs
}

// ResolveExpr analyzes a single top-level expression.
func ResolveExpr(e ast.Expr) (Depths, []Error) {
	r := &resolver{depths: Depths{}}
	r.expr(e)
	return r.depths, r.errs
}

type funcType int

const (
	funcNone funcType = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
)

type resolver struct {
	scopes []map[string]bool
	depths Depths
	errs   []Error

	currentFunc  funcType
	currentClass classType
}

func (r *resolver) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.stmt(s)
	}
}

func (r *resolver) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.VarDecl:
		r.declare(s.Name)
		if s.Init != nil {
			r.expr(s.Init)
		}
		r.define(s.Name)
	case *ast.FunDecl:
		r.declare(s.Name)
		r.define(s.Name)
		r.function(s, funcFunction)
	case *ast.ClassDecl:
		enclosing := r.currentClass
		r.currentClass = classClass
		r.declare(s.Name)
		r.define(s.Name)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = true
		for _, method := range s.Methods {
			typ := funcMethod
			if method.Name.Lexeme == "init" {
				typ = funcInitializer
			}
			r.function(method, typ)
		}
		r.endScope()
		r.currentClass = enclosing
	case *ast.ExprStmt:
		r.expr(s.X)
	case *ast.Block:
		r.beginScope()
		r.stmts(s.Stmts)
		r.endScope()
	case *ast.If:
		r.expr(s.Cond)
		r.stmt(s.Then)
		if s.Else != nil {
			r.stmt(s.Else)
		}
	case *ast.While:
		r.expr(s.Cond)
		r.stmt(s.Body)
	case *ast.Return:
		if r.currentFunc == funcNone {
			r.error(s.Return.Pos.Line, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunc == funcInitializer {
				r.error(s.Return.Pos.Line, "Can't return a value from an initializer.")
			}
			r.expr(s.Value)
		}
	}
}

// function resolves params and body in one shared scope. The evaluator
// builds call environments the same way.
func (r *resolver) function(fn *ast.FunDecl, typ funcType) {
	enclosing := r.currentFunc
	r.currentFunc = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.stmts(fn.Body.Stmts)
	r.endScope()

	r.currentFunc = enclosing
}

func (r *resolver) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Literal:
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.error(e.Name.Pos.Line, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.This:
		if r.currentClass == classNone {
			r.error(e.Keyword.Pos.Line, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Assign:
		r.expr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Binary:
		r.expr(e.X)
		r.expr(e.Y)
	case *ast.Logical:
		r.expr(e.X)
		r.expr(e.Y)
	case *ast.Unary:
		r.expr(e.X)
	case *ast.Call:
		r.expr(e.Callee)
		for _, arg := range e.Args {
			r.expr(arg)
		}
	case *ast.Get:
		r.expr(e.Object)
	case *ast.Set:
		r.expr(e.Object)
		r.expr(e.Value)
	case *ast.Grouping:
		r.expr(e.X)
	}
}

// resolveLocal records how many scopes separate a use from its declaration.
// Names not found in any scope are globals and stay out of the table.
func (r *resolver) resolveLocal(e ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.depths[e] = len(r.scopes) - 1 - i
			return
		}
	}
}

// declare marks a name as existing but not yet usable, so an initializer
// cannot read the variable it is about to define.
func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.error(name.Pos.Line, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) error(line int, message string) {
	r.errs = append(r.errs, Error{Line: line, Message: message})
}
