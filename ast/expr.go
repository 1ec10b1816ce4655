package ast

import (
	"github.com/rlox-lang/rlox/lang"
	"github.com/rlox-lang/rlox/token"
)

// Literal is a number, string, boolean, or nil constant. Value holds the
// decoded payload: float64, string, bool, or nil.
type Literal struct {
	Tok   token.Token
	Value any
}

// Variable is a reference to a named binding.
type Variable struct {
	Name token.Token
}

// This is the receiver reference inside a method body.
type This struct {
	Keyword token.Token
}

// Assign writes Value to the binding named by Name.
type Assign struct {
	Name  token.Token
	Value Expr
}

// Binary is an arithmetic, comparison, or equality operation.
type Binary struct {
	X  Expr
	Op token.Token
	Y  Expr
}

// Logical is an and/or operation.
type Logical struct {
	X  Expr
	Op token.Token
	Y  Expr
}

// Unary is a prefix ! or - operation.
type Unary struct {
	Op token.Token
	X  Expr
}

// Call invokes Callee with Args. Paren is the closing parenthesis, kept for
// runtime error positions.
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

// Get reads property Name from Object.
type Get struct {
	Object Expr
	Name   token.Token
}

// Set writes Value to property Name on Object.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

// Grouping is a parenthesized expression.
type Grouping struct {
	Lparen token.Token
	X      Expr
	Rparen token.Token
}

func (e *Literal) Pos() token.Position  { return e.Tok.Pos }
func (e *Variable) Pos() token.Position { return e.Name.Pos }
func (e *This) Pos() token.Position     { return e.Keyword.Pos }
func (e *Assign) Pos() token.Position   { return e.Name.Pos }
func (e *Binary) Pos() token.Position   { return e.X.Pos() }
func (e *Logical) Pos() token.Position  { return e.X.Pos() }
func (e *Unary) Pos() token.Position    { return e.Op.Pos }
func (e *Call) Pos() token.Position     { return e.Callee.Pos() }
func (e *Get) Pos() token.Position      { return e.Object.Pos() }
func (e *Set) Pos() token.Position      { return e.Object.Pos() }
func (e *Grouping) Pos() token.Position { return e.Lparen.Pos }

func (e *Literal) End() token.Position  { return e.Tok.End() }
func (e *Variable) End() token.Position { return e.Name.End() }
func (e *This) End() token.Position     { return e.Keyword.End() }
func (e *Assign) End() token.Position   { return e.Value.End() }
func (e *Binary) End() token.Position   { return e.Y.End() }
func (e *Logical) End() token.Position  { return e.Y.End() }
func (e *Unary) End() token.Position    { return e.X.End() }
func (e *Call) End() token.Position     { return e.Paren.End() }
func (e *Get) End() token.Position      { return e.Name.End() }
func (e *Set) End() token.Position      { return e.Value.End() }
func (e *Grouping) End() token.Position { return e.Rparen.End() }

// Literal nodes report the terminal symbol of their token: number, string,
// true, false, or nil.
func (e *Literal) Symbol() lang.Symbol  { return lang.TerminalSymbol(e.Tok.Type) }
func (e *Variable) Symbol() lang.Symbol { return lang.SymIdentifier }
func (e *This) Symbol() lang.Symbol     { return lang.SymThis }
func (e *Assign) Symbol() lang.Symbol   { return lang.SymAssignmentExpression }
func (e *Binary) Symbol() lang.Symbol   { return lang.SymBinaryExpression }
func (e *Logical) Symbol() lang.Symbol  { return lang.SymLogicalExpression }
func (e *Unary) Symbol() lang.Symbol    { return lang.SymUnaryExpression }
func (e *Call) Symbol() lang.Symbol     { return lang.SymCallExpression }
func (e *Get) Symbol() lang.Symbol      { return lang.SymGetExpression }
func (e *Set) Symbol() lang.Symbol      { return lang.SymSetExpression }
func (e *Grouping) Symbol() lang.Symbol { return lang.SymGroupingExpression }

func (*Literal) exprNode()  {}
func (*Variable) exprNode() {}
func (*This) exprNode()     {}
func (*Assign) exprNode()   {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Unary) exprNode()    {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*Grouping) exprNode() {}
