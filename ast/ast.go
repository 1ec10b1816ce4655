// Package ast declares the syntax tree for rlox programs. Nodes follow the
// go/ast convention: small structs that record the tokens they were built
// from, with marker methods separating expressions from statements. Every
// node reports a grammar symbol; names resolve through the language
// descriptor.
package ast

import (
	"github.com/rlox-lang/rlox/lang"
	"github.com/rlox-lang/rlox/token"
)

// Node is implemented by all syntax tree nodes.
type Node interface {
	Pos() token.Position
	End() token.Position
	Symbol() lang.Symbol
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}
