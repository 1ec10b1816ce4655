package ast

import (
	"github.com/rlox-lang/rlox/lang"
	"github.com/rlox-lang/rlox/token"
)

// VarDecl declares a variable with an optional initializer.
type VarDecl struct {
	Var  token.Token
	Name token.Token
	Init Expr
}

// FunDecl declares a function or, inside a class body, a method. Methods
// have no fun keyword; Fun is the zero token for them.
type FunDecl struct {
	Fun    token.Token
	Name   token.Token
	Params []token.Token
	Body   *Block
}

// ClassDecl declares a class and its methods.
type ClassDecl struct {
	Class   token.Token
	Name    token.Token
	Methods []*FunDecl
	Rbrace  token.Token
}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	X Expr
}

// Block is a braced statement list introducing a scope.
type Block struct {
	Lbrace token.Token
	Stmts  []Stmt
	Rbrace token.Token
}

// If executes Then or Else depending on Cond.
type If struct {
	If   token.Token
	Cond Expr
	Then Stmt
	Else Stmt
}

// While executes Body as long as Cond is truthy. for loops desugar to this.
type While struct {
	While token.Token
	Cond  Expr
	Body  Stmt
}

// Return exits the enclosing function, with an optional value.
type Return struct {
	Return token.Token
	Value  Expr
}

func (s *VarDecl) Pos() token.Position   { return s.Var.Pos }
func (s *ClassDecl) Pos() token.Position { return s.Class.Pos }
func (s *ExprStmt) Pos() token.Position  { return s.X.Pos() }
func (s *Block) Pos() token.Position     { return s.Lbrace.Pos }
func (s *If) Pos() token.Position        { return s.If.Pos }
func (s *While) Pos() token.Position     { return s.While.Pos }
func (s *Return) Pos() token.Position    { return s.Return.Pos }

func (s *FunDecl) Pos() token.Position {
	if s.Fun.Pos.Line > 0 {
		return s.Fun.Pos
	}
	return s.Name.Pos
}

func (s *VarDecl) End() token.Position {
	if s.Init != nil {
		return s.Init.End()
	}
	return s.Name.End()
}
func (s *FunDecl) End() token.Position   { return s.Body.End() }
func (s *ClassDecl) End() token.Position { return s.Rbrace.End() }
func (s *ExprStmt) End() token.Position  { return s.X.End() }
func (s *Block) End() token.Position     { return s.Rbrace.End() }
func (s *While) End() token.Position     { return s.Body.End() }
func (s *Return) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.Return.End()
}

func (s *If) End() token.Position {
	if s.Else != nil {
		return s.Else.End()
	}
	return s.Then.End()
}

func (s *VarDecl) Symbol() lang.Symbol   { return lang.SymVarDeclaration }
func (s *FunDecl) Symbol() lang.Symbol   { return lang.SymFunDeclaration }
func (s *ClassDecl) Symbol() lang.Symbol { return lang.SymClassDeclaration }
func (s *ExprStmt) Symbol() lang.Symbol  { return lang.SymExpressionStatement }
func (s *Block) Symbol() lang.Symbol     { return lang.SymBlock }
func (s *If) Symbol() lang.Symbol        { return lang.SymIfStatement }
func (s *While) Symbol() lang.Symbol     { return lang.SymWhileStatement }
func (s *Return) Symbol() lang.Symbol    { return lang.SymReturnStatement }

func (*VarDecl) stmtNode()   {}
func (*FunDecl) stmtNode()   {}
func (*ClassDecl) stmtNode() {}
func (*ExprStmt) stmtNode()  {}
func (*Block) stmtNode()     {}
func (*If) stmtNode()        {}
func (*While) stmtNode()     {}
func (*Return) stmtNode()    {}
