// Package parser builds syntax trees from token streams. Parsing recovers
// at statement boundaries after an error, so one pass reports every
// syntactic problem it can reach.
package parser

import (
	"fmt"

	"github.com/rlox-lang/rlox/ast"
	"github.com/rlox-lang/rlox/token"
)

// Error is a syntactic diagnostic anchored at the offending token.
type Error struct {
	Token   token.Token
	Message string
}

func (e Error) Error() string {
	if e.Token.Type == token.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Pos.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Pos.Line, e.Token.Lexeme, e.Message)
}

// Incomplete reports whether errs only complain about running out of input.
// Interactive callers use it to keep reading instead of giving up.
func Incomplete(errs []Error) bool {
	if len(errs) == 0 {
		return false
	}
	for _, e := range errs {
		if e.Token.Type != token.EOF {
			return false
		}
	}
	return true
}

// Parser consumes a token slice produced by the scanner. The slice must end
// with an EOF token.
type Parser struct {
	tokens  []token.Token
	current int
	errs    []Error
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a whole program. The returned statements cover everything
// that parsed cleanly; errs holds one entry per recovered failure.
func (p *Parser) Parse() ([]ast.Stmt, []Error) {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts, p.errs
}

// ParseExpression parses the entire input as one expression.
func (p *Parser) ParseExpression() (ast.Expr, []Error) {
	expr, err := p.expression()
	if err != nil {
		p.record(err)
		return nil, p.errs
	}
	if !p.isAtEnd() {
		p.record(Error{Token: p.peek(), Message: "Expect end of expression."})
		return nil, p.errs
	}
	return expr, p.errs
}

// Declarations.

func (p *Parser) declaration() (ast.Stmt, error) {
	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Fun):
		return p.function("function", p.previous())
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() (ast.Stmt, error) {
	class := p.previous()
	name, err := p.consume(token.Ident, "Expect class name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	var methods []*ast.FunDecl
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		method, err := p.function("method", token.Token{})
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	rbrace, err := p.consume(token.RightBrace, "Expect '}' after class body.")
	if err != nil {
		return nil, err
	}
	return &ast.ClassDecl{Class: class, Name: name, Methods: methods, Rbrace: rbrace}, nil
}

// function parses the part after the introducing keyword. Methods have no
// keyword, so fun is the zero token for them.
func (p *Parser) function(kind string, fun token.Token) (*ast.FunDecl, error) {
	name, err := p.consume(token.Ident, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= 255 {
				p.record(Error{Token: p.peek(), Message: "Can't have more than 255 parameters."})
			}
			param, err := p.consume(token.Ident, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	lbrace, err := p.consume(token.LeftBrace, "Expect '{' before function body.")
	if err != nil {
		return nil, err
	}
	body, err := p.blockRest(lbrace)
	if err != nil {
		return nil, err
	}
	return &ast.FunDecl{Fun: fun, Name: name, Params: params, Body: body}, nil
}

func (p *Parser) varDecl() (ast.Stmt, error) {
	kw := p.previous()
	name, err := p.consume(token.Ident, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.match(token.Equal) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Var: kw, Name: name, Init: init}, nil
}

// Statements.

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.LeftBrace):
		return p.blockRest(p.previous())
	default:
		return p.exprStmt()
	}
}

func (p *Parser) ifStmt() (ast.Stmt, error) {
	kw := p.previous()
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.match(token.Else) {
		if elseStmt, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return &ast.If{If: kw, Cond: cond, Then: then, Else: elseStmt}, nil
}

func (p *Parser) whileStmt() (ast.Stmt, error) {
	kw := p.previous()
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.While{While: kw, Cond: cond, Body: body}, nil
}

// forStmt desugars to while: the initializer and the loop wrap into blocks,
// the increment joins the body, and a missing condition becomes true.
func (p *Parser) forStmt() (ast.Stmt, error) {
	kw := p.previous()
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err error
	switch {
	case p.match(token.Semicolon):
	case p.match(token.Var):
		if init, err = p.varDecl(); err != nil {
			return nil, err
		}
	default:
		if init, err = p.exprStmt(); err != nil {
			return nil, err
		}
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		if cond, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr ast.Expr
	if !p.check(token.RightParen) {
		if incr, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after loop clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = synthBlock(kw, body, &ast.ExprStmt{X: incr})
	}
	if cond == nil {
		cond = &ast.Literal{
			Tok:   token.Token{Type: token.True, Lexeme: "true", Pos: kw.Pos},
			Value: true,
		}
	}
	body = &ast.While{While: kw, Cond: cond, Body: body}
	if init != nil {
		body = synthBlock(kw, init, body)
	}
	return body, nil
}

// synthBlock wraps desugared statements in a block whose brace positions
// borrow from the surrounding tokens.
func synthBlock(at token.Token, stmts ...ast.Stmt) *ast.Block {
	end := stmts[len(stmts)-1].End()
	return &ast.Block{
		Lbrace: token.Token{Type: token.LeftBrace, Pos: at.Pos},
		Stmts:  stmts,
		Rbrace: token.Token{Type: token.RightBrace, Pos: end},
	}
}

func (p *Parser) returnStmt() (ast.Stmt, error) {
	kw := p.previous()
	var value ast.Expr
	var err error
	if !p.check(token.Semicolon) {
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after return statement."); err != nil {
		return nil, err
	}
	return &ast.Return{Return: kw, Value: value}, nil
}

// blockRest parses the statements after an already consumed '{'. Failures
// inside a block recover locally so the rest of the block still parses.
func (p *Parser) blockRest(lbrace token.Token) (*ast.Block, error) {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}

	rbrace, err := p.consume(token.RightBrace, "Expect '}' after block.")
	if err != nil {
		return nil, err
	}
	return &ast.Block{Lbrace: lbrace, Stmts: stmts, Rbrace: rbrace}, nil
}

func (p *Parser) exprStmt() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{X: expr}, nil
}

// Expressions, from lowest to highest precedence.

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(token.Equal) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}, nil
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}, nil
		}
		// Not fatal: the left side already parsed, keep going with it.
		p.record(Error{Token: equals, Message: "Invalid assignment target."})
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{X: expr, Op: op, Y: right}
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{X: expr, Op: op, Y: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{X: expr, Op: op, Y: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{X: expr, Op: op, Y: right}
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{X: expr, Op: op, Y: right}
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{X: expr, Op: op, Y: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, X: right}, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(token.LeftParen):
			if expr, err = p.finishCall(expr); err != nil {
				return nil, err
			}
		case p.match(token.Dot):
			name, err := p.consume(token.Ident, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= 255 {
				p.record(Error{Token: p.peek(), Message: "Can't have more than 255 arguments."})
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}

	paren, err := p.consume(token.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(token.False):
		return &ast.Literal{Tok: p.previous(), Value: false}, nil
	case p.match(token.True):
		return &ast.Literal{Tok: p.previous(), Value: true}, nil
	case p.match(token.Nil):
		return &ast.Literal{Tok: p.previous(), Value: nil}, nil
	case p.match(token.Number, token.String):
		tok := p.previous()
		return &ast.Literal{Tok: tok, Value: tok.Literal}, nil
	case p.match(token.This):
		return &ast.This{Keyword: p.previous()}, nil
	case p.match(token.Ident):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(token.LeftParen):
		lparen := p.previous()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		rparen, err := p.consume(token.RightParen, "Expect ')' after expression")
		if err != nil {
			return nil, err
		}
		return &ast.Grouping{Lparen: lparen, X: expr, Rparen: rparen}, nil
	}
	return nil, Error{Token: p.peek(), Message: "Expect expression"}
}

// synchronize skips to the next likely statement boundary after an error.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Return:
			return
		}
		p.advance()
	}
}

// Token cursor.

func (p *Parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(typ token.Type, message string) (token.Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	return token.Token{}, Error{Token: p.peek(), Message: message}
}

func (p *Parser) check(typ token.Type) bool {
	return p.peek().Type == typ
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) record(err error) {
	if e, ok := err.(Error); ok {
		p.errs = append(p.errs, e)
		return
	}
	p.errs = append(p.errs, Error{Token: p.peek(), Message: err.Error()})
}
