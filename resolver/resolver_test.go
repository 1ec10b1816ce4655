package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlox-lang/rlox/ast"
	"github.com/rlox-lang/rlox/lang"
	"github.com/rlox-lang/rlox/parser"
	"github.com/rlox-lang/rlox/scanner"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, serrs := scanner.New(lang.Get(), src).ScanTokens()
	require.Empty(t, serrs)
	stmts, perrs := parser.New(toks).Parse()
	require.Empty(t, perrs)
	return stmts
}

func resolve(t *testing.T, src string) (Depths, []ast.Stmt) {
	t.Helper()
	stmts := parse(t, src)
	depths, errs := Resolve(stmts)
	require.Empty(t, errs)
	return depths, stmts
}

func TestResolveGlobalsStayOutOfTable(t *testing.T) {
	depths, _ := resolve(t, "var x = 1;\nx = x + 1;")
	assert.Empty(t, depths)
}

func TestResolveLocalInSameScope(t *testing.T) {
	depths, stmts := resolve(t, "{ var x = 1; x = x + 2; }")

	block := stmts[0].(*ast.Block)
	assign := block.Stmts[1].(*ast.ExprStmt).X.(*ast.Assign)
	use := assign.Value.(*ast.Binary).X.(*ast.Variable)

	require.Contains(t, depths, ast.Expr(assign))
	require.Contains(t, depths, ast.Expr(use))
	assert.Equal(t, 0, depths[assign])
	assert.Equal(t, 0, depths[use])
}

func TestResolveCountsScopeHops(t *testing.T) {
	depths, stmts := resolve(t, "fun f(x) {\n\t{\n\t\treturn x;\n\t}\n}")

	fn := stmts[0].(*ast.FunDecl)
	inner := fn.Body.Stmts[0].(*ast.Block)
	use := inner.Stmts[0].(*ast.Return).Value.(*ast.Variable)

	// One block scope sits between the use and the parameter scope.
	assert.Equal(t, 1, depths[use])
}

func TestResolveClosureCapture(t *testing.T) {
	depths, stmts := resolve(t, "fun outer() {\n\tvar x = 1;\n\tfun inner() {\n\t\treturn x;\n\t}\n}")

	outer := stmts[0].(*ast.FunDecl)
	inner := outer.Body.Stmts[1].(*ast.FunDecl)
	use := inner.Body.Stmts[0].(*ast.Return).Value.(*ast.Variable)

	assert.Equal(t, 1, depths[use])
}

func TestResolveParameterUse(t *testing.T) {
	depths, stmts := resolve(t, "fun id(a) { return a; }")

	fn := stmts[0].(*ast.FunDecl)
	use := fn.Body.Stmts[0].(*ast.Return).Value.(*ast.Variable)

	require.Contains(t, depths, ast.Expr(use))
	assert.Equal(t, 0, depths[use])
}

func TestResolveThisInMethod(t *testing.T) {
	depths, stmts := resolve(t, "class Box { get() { return this.v; } }")

	class := stmts[0].(*ast.ClassDecl)
	get := class.Methods[0].Body.Stmts[0].(*ast.Return).Value.(*ast.Get)
	this := get.Object.(*ast.This)

	// The receiver lives one scope above the method body.
	assert.Equal(t, 1, depths[this])
}

func TestResolveShadowingPicksNearest(t *testing.T) {
	depths, stmts := resolve(t, "{ var x = 1; { var x = 2; x = 3; } }")

	outer := stmts[0].(*ast.Block)
	inner := outer.Stmts[1].(*ast.Block)
	assign := inner.Stmts[1].(*ast.ExprStmt).X.(*ast.Assign)

	require.Contains(t, depths, ast.Expr(assign))
	assert.Equal(t, 0, depths[assign])
}

func TestResolveReadInOwnInitializer(t *testing.T) {
	stmts := parse(t, "{\n\tvar a = 1;\n\t{\n\t\tvar a = a;\n\t}\n}")
	_, errs := Resolve(stmts)

	require.Len(t, errs, 1)
	assert.Equal(t, "Can't read local variable in its own initializer. [Line: 4]", errs[0].Error())
}

func TestResolveGlobalSelfReferenceAllowed(t *testing.T) {
	stmts := parse(t, "var a = a;")
	_, errs := Resolve(stmts)
	assert.Empty(t, errs)
}

func TestResolveDuplicateDeclaration(t *testing.T) {
	stmts := parse(t, "{ var a = 1; var a = 2; }")
	_, errs := Resolve(stmts)

	require.Len(t, errs, 1)
	assert.Equal(t, "Already a variable with this name in this scope. [Line: 1]", errs[0].Error())
}

func TestResolveDuplicateGlobalsAllowed(t *testing.T) {
	stmts := parse(t, "var a = 1;\nvar a = 2;")
	_, errs := Resolve(stmts)
	assert.Empty(t, errs)
}

func TestResolveTopLevelReturn(t *testing.T) {
	stmts := parse(t, "return 1;")
	_, errs := Resolve(stmts)

	require.Len(t, errs, 1)
	assert.Equal(t, "Can't return from top-level code. [Line: 1]", errs[0].Error())
}

func TestResolveReturnInsideFunction(t *testing.T) {
	stmts := parse(t, "fun f() { return 1; }")
	_, errs := Resolve(stmts)
	assert.Empty(t, errs)
}

func TestResolveThisOutsideClass(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"top level", "this.x;", 1},
		{"plain function", "fun f() {\n\treturn this;\n}", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts := parse(t, tt.src)
			_, errs := Resolve(stmts)
			require.Len(t, errs, 1)
			assert.Equal(t, "Can't use 'this' outside of a class.", errs[0].Message)
			assert.Equal(t, tt.line, errs[0].Line)
		})
	}
}

func TestResolveReturnValueFromInitializer(t *testing.T) {
	stmts := parse(t, "class A {\n\tinit() {\n\t\treturn 1;\n\t}\n}")
	_, errs := Resolve(stmts)

	require.Len(t, errs, 1)
	assert.Equal(t, "Can't return a value from an initializer. [Line: 3]", errs[0].Error())
}

func TestResolveBareReturnFromInitializer(t *testing.T) {
	stmts := parse(t, "class A { init() { return; } }")
	_, errs := Resolve(stmts)
	assert.Empty(t, errs)
}

func TestResolveCollectsEveryError(t *testing.T) {
	src := "return 1;\n{ var a = 1; var a = 2; }\nthis.x;"
	stmts := parse(t, src)
	_, errs := Resolve(stmts)

	require.Len(t, errs, 3)
	assert.Equal(t, "Can't return from top-level code.", errs[0].Message)
	assert.Equal(t, "Already a variable with this name in this scope.", errs[1].Message)
	assert.Equal(t, "Can't use 'this' outside of a class.", errs[2].Message)
}

func TestResolveExprTopLevel(t *testing.T) {
	toks, serrs := scanner.New(lang.Get(), "x + 1").ScanTokens()
	require.Empty(t, serrs)
	expr, perrs := parser.New(toks).ParseExpression()
	require.Empty(t, perrs)

	depths, errs := ResolveExpr(expr)
	assert.Empty(t, errs)
	assert.Empty(t, depths)
}
