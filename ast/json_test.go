package ast_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlox-lang/rlox/ast"
	"github.com/rlox-lang/rlox/lang"
	"github.com/rlox-lang/rlox/parser"
	"github.com/rlox-lang/rlox/scanner"
)

func parseProgram(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, scanErrs := scanner.New(lang.Get(), src).ScanTokens()
	require.Empty(t, scanErrs)
	stmts, parseErrs := parser.New(toks).Parse()
	require.Empty(t, parseErrs)
	return stmts
}

func TestMarshalJSON_Program(t *testing.T) {
	stmts := parseProgram(t, "var x = 1 + 2;\nprintln(x);")

	data, err := ast.MarshalJSON(lang.Get(), stmts)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "source_file", doc["kind"])
	children := doc["children"].([]any)
	require.Len(t, children, 2)

	decl := children[0].(map[string]any)
	assert.Equal(t, "var_declaration", decl["kind"])
	assert.Equal(t, "x", decl["name"])
	assert.Equal(t, map[string]any{"line": float64(1), "column": float64(1)}, decl["pos"])

	sum := decl["init"].(map[string]any)
	assert.Equal(t, "binary_expression", sum["kind"])
	assert.Equal(t, "+", sum["op"])
	assert.Equal(t, float64(1), sum["left"].(map[string]any)["value"])
	assert.Equal(t, float64(2), sum["right"].(map[string]any)["value"])

	call := children[1].(map[string]any)["expr"].(map[string]any)
	assert.Equal(t, "call_expression", call["kind"])
	assert.Equal(t, "identifier", call["callee"].(map[string]any)["kind"])
	assert.Equal(t, "println", call["callee"].(map[string]any)["name"])
	args := call["args"].([]any)
	require.Len(t, args, 1)
	assert.Equal(t, "x", args[0].(map[string]any)["name"])
}

func TestMarshalJSON_ClassAndControlFlow(t *testing.T) {
	src := `class Box {
  get() {
    return this.v;
  }
}

if (true) {
  println("yes");
} else {
  println("no");
}`
	stmts := parseProgram(t, src)

	data, err := ast.MarshalJSON(lang.Get(), stmts)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	children := doc["children"].([]any)
	require.Len(t, children, 2)

	class := children[0].(map[string]any)
	assert.Equal(t, "class_declaration", class["kind"])
	assert.Equal(t, "Box", class["name"])

	methods := class["methods"].([]any)
	require.Len(t, methods, 1)
	method := methods[0].(map[string]any)
	assert.Equal(t, "fun_declaration", method["kind"])
	assert.Equal(t, "get", method["name"])
	assert.Empty(t, method["params"])

	body := method["body"].(map[string]any)["children"].([]any)
	ret := body[0].(map[string]any)
	assert.Equal(t, "return_statement", ret["kind"])
	get := ret["value"].(map[string]any)
	assert.Equal(t, "get_expression", get["kind"])
	assert.Equal(t, "v", get["name"])
	assert.Equal(t, "this", get["object"].(map[string]any)["kind"])

	cond := children[1].(map[string]any)
	assert.Equal(t, "if_statement", cond["kind"])
	assert.Equal(t, true, cond["cond"].(map[string]any)["value"])
	assert.Equal(t, "block", cond["then"].(map[string]any)["kind"])
	assert.Equal(t, "block", cond["else"].(map[string]any)["kind"])
}

func TestNodePositions(t *testing.T) {
	stmts := parseProgram(t, "var total = 10;")
	require.Len(t, stmts, 1)

	decl := stmts[0].(*ast.VarDecl)
	assert.Equal(t, 1, decl.Pos().Line)
	assert.Equal(t, 1, decl.Pos().Column)
	assert.Equal(t, 15, decl.End().Column)
	assert.Equal(t, lang.SymVarDeclaration, decl.Symbol())
}
