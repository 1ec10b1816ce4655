package ast

import (
	"encoding/json"

	"github.com/rlox-lang/rlox/lang"
)

// MarshalJSON encodes a program as an indented JSON tree for tooling. Each
// node carries its descriptor-resolved kind and start position.
func MarshalJSON(l *lang.Language, stmts []Stmt) ([]byte, error) {
	children := make([]any, len(stmts))
	for i, s := range stmts {
		children[i] = jsonStmt(l, s)
	}
	doc := map[string]any{
		"kind":     l.SymbolName(lang.SymSourceFile),
		"children": children,
	}
	return json.MarshalIndent(doc, "", "  ")
}

func jsonBase(l *lang.Language, n Node) map[string]any {
	pos := n.Pos()
	return map[string]any{
		"kind": l.SymbolName(n.Symbol()),
		"pos":  map[string]int{"line": pos.Line, "column": pos.Column},
	}
}

func jsonStmt(l *lang.Language, s Stmt) map[string]any {
	m := jsonBase(l, s)
	switch s := s.(type) {
	case *VarDecl:
		m["name"] = s.Name.Lexeme
		if s.Init != nil {
			m["init"] = jsonExpr(l, s.Init)
		}
	case *FunDecl:
		m["name"] = s.Name.Lexeme
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Lexeme
		}
		m["params"] = params
		m["body"] = jsonStmt(l, s.Body)
	case *ClassDecl:
		m["name"] = s.Name.Lexeme
		methods := make([]any, len(s.Methods))
		for i, meth := range s.Methods {
			methods[i] = jsonStmt(l, meth)
		}
		m["methods"] = methods
	case *ExprStmt:
		m["expr"] = jsonExpr(l, s.X)
	case *Block:
		children := make([]any, len(s.Stmts))
		for i, inner := range s.Stmts {
			children[i] = jsonStmt(l, inner)
		}
		m["children"] = children
	case *If:
		m["cond"] = jsonExpr(l, s.Cond)
		m["then"] = jsonStmt(l, s.Then)
		if s.Else != nil {
			m["else"] = jsonStmt(l, s.Else)
		}
	case *While:
		m["cond"] = jsonExpr(l, s.Cond)
		m["body"] = jsonStmt(l, s.Body)
	case *Return:
		if s.Value != nil {
			m["value"] = jsonExpr(l, s.Value)
		}
	}
	return m
}

func jsonExpr(l *lang.Language, e Expr) map[string]any {
	m := jsonBase(l, e)
	switch e := e.(type) {
	case *Literal:
		m["value"] = e.Value
	case *Variable:
		m["name"] = e.Name.Lexeme
	case *Assign:
		m["name"] = e.Name.Lexeme
		m["value"] = jsonExpr(l, e.Value)
	case *Binary:
		m["op"] = e.Op.Lexeme
		m["left"] = jsonExpr(l, e.X)
		m["right"] = jsonExpr(l, e.Y)
	case *Logical:
		m["op"] = e.Op.Lexeme
		m["left"] = jsonExpr(l, e.X)
		m["right"] = jsonExpr(l, e.Y)
	case *Unary:
		m["op"] = e.Op.Lexeme
		m["operand"] = jsonExpr(l, e.X)
	case *Call:
		m["callee"] = jsonExpr(l, e.Callee)
		args := make([]any, len(e.Args))
		for i, a := range e.Args {
			args[i] = jsonExpr(l, a)
		}
		m["args"] = args
	case *Get:
		m["object"] = jsonExpr(l, e.Object)
		m["name"] = e.Name.Lexeme
	case *Set:
		m["object"] = jsonExpr(l, e.Object)
		m["name"] = e.Name.Lexeme
		m["value"] = jsonExpr(l, e.Value)
	case *Grouping:
		m["expr"] = jsonExpr(l, e.X)
	}
	return m
}
