package ast

import (
	"fmt"
	"strings"

	"github.com/rlox-lang/rlox/lang"
	"github.com/rlox-lang/rlox/token"
)

// Sprint renders a program as an indented S-expression, one node per line,
// with kind names resolved through the descriptor.
func Sprint(l *lang.Language, stmts []Stmt) string {
	p := printer{l: l}
	p.sb.WriteString("(" + l.SymbolName(lang.SymSourceFile))
	for _, s := range stmts {
		p.stmt(s, 1)
	}
	p.sb.WriteString(")")
	return p.sb.String()
}

// SprintExpr renders a single expression.
func SprintExpr(l *lang.Language, e Expr) string {
	p := printer{l: l}
	p.expr(e, 0)
	return p.sb.String()
}

type printer struct {
	sb strings.Builder
	l  *lang.Language
}

func (p *printer) open(depth int, sym lang.Symbol, atoms ...string) {
	if depth > 0 || p.sb.Len() > 0 {
		p.sb.WriteString("\n" + strings.Repeat("  ", depth))
	}
	p.sb.WriteString("(" + p.l.SymbolName(sym))
	for _, a := range atoms {
		p.sb.WriteString(" " + a)
	}
}

func (p *printer) close() {
	p.sb.WriteString(")")
}

func (p *printer) stmt(s Stmt, depth int) {
	switch s := s.(type) {
	case *VarDecl:
		p.open(depth, s.Symbol(), s.Name.Lexeme)
		if s.Init != nil {
			p.expr(s.Init, depth+1)
		}
		p.close()
	case *FunDecl:
		p.fun(s, depth)
	case *ClassDecl:
		p.open(depth, s.Symbol(), s.Name.Lexeme)
		for _, m := range s.Methods {
			p.fun(m, depth+1)
		}
		p.close()
	case *ExprStmt:
		p.open(depth, s.Symbol())
		p.expr(s.X, depth+1)
		p.close()
	case *Block:
		p.open(depth, s.Symbol())
		for _, inner := range s.Stmts {
			p.stmt(inner, depth+1)
		}
		p.close()
	case *If:
		p.open(depth, s.Symbol())
		p.expr(s.Cond, depth+1)
		p.stmt(s.Then, depth+1)
		if s.Else != nil {
			p.stmt(s.Else, depth+1)
		}
		p.close()
	case *While:
		p.open(depth, s.Symbol())
		p.expr(s.Cond, depth+1)
		p.stmt(s.Body, depth+1)
		p.close()
	case *Return:
		p.open(depth, s.Symbol())
		if s.Value != nil {
			p.expr(s.Value, depth+1)
		}
		p.close()
	}
}

func (p *printer) fun(s *FunDecl, depth int) {
	p.open(depth, s.Symbol(), s.Name.Lexeme)
	if len(s.Params) > 0 {
		names := make([]string, len(s.Params))
		for i, prm := range s.Params {
			names[i] = prm.Lexeme
		}
		p.open(depth+1, lang.SymParameters, names...)
		p.close()
	}
	p.stmt(s.Body, depth+1)
	p.close()
}

func (p *printer) expr(e Expr, depth int) {
	switch e := e.(type) {
	case *Literal:
		p.literal(e, depth)
	case *Variable:
		p.open(depth, e.Symbol(), e.Name.Lexeme)
		p.close()
	case *This:
		p.open(depth, e.Symbol())
		p.close()
	case *Assign:
		p.open(depth, e.Symbol(), e.Name.Lexeme)
		p.expr(e.Value, depth+1)
		p.close()
	case *Binary:
		p.open(depth, e.Symbol(), e.Op.Lexeme)
		p.expr(e.X, depth+1)
		p.expr(e.Y, depth+1)
		p.close()
	case *Logical:
		p.open(depth, e.Symbol(), e.Op.Lexeme)
		p.expr(e.X, depth+1)
		p.expr(e.Y, depth+1)
		p.close()
	case *Unary:
		p.open(depth, e.Symbol(), e.Op.Lexeme)
		p.expr(e.X, depth+1)
		p.close()
	case *Call:
		p.open(depth, e.Symbol())
		p.expr(e.Callee, depth+1)
		if len(e.Args) > 0 {
			p.open(depth+1, lang.SymArguments)
			for _, a := range e.Args {
				p.expr(a, depth+2)
			}
			p.close()
		}
		p.close()
	case *Get:
		p.open(depth, e.Symbol())
		p.expr(e.Object, depth+1)
		p.sb.WriteString(" " + e.Name.Lexeme)
		p.close()
	case *Set:
		p.open(depth, e.Symbol())
		p.expr(e.Object, depth+1)
		p.sb.WriteString(" " + e.Name.Lexeme)
		p.expr(e.Value, depth+1)
		p.close()
	case *Grouping:
		p.open(depth, e.Symbol())
		p.expr(e.X, depth+1)
		p.close()
	}
}

func (p *printer) literal(e *Literal, depth int) {
	switch e.Tok.Type {
	case token.True, token.False, token.Nil:
		p.open(depth, e.Symbol())
	case token.String:
		p.open(depth, e.Symbol(), fmt.Sprintf("%q", e.Value))
	default:
		p.open(depth, e.Symbol(), e.Tok.Lexeme)
	}
	p.close()
}
