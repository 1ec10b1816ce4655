package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSource_Clean(t *testing.T) {
	src := `
fun add(a, b) { return a + b; }
println(add(1, 2));
`
	diags := CheckSource(src)
	assert.Empty(t, diags)
}

func TestCheckSource_ScanStage(t *testing.T) {
	// A lexical error reports with the scan stage and its rendered form.
	// The parse stage never runs: its errors for the same input would
	// only be noise.
	src := "var y = @;\n"
	diags := CheckSource(src)

	require.Len(t, diags, 1)
	assert.Equal(t, StageScan, diags[0].Stage)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, "Unexpected character.", diags[0].Message)
	assert.Equal(t, "[line 1] Error: Unexpected character.", diags[0].Rendered)
}

func TestCheckSource_ParseStage_ReportsAllErrors(t *testing.T) {
	// Panic-mode recovery resumes at statement boundaries, so one pass
	// reports every syntactic problem.
	src := "var a = ;\nvar b = ;"
	diags := CheckSource(src)

	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, StageParse, d.Stage)
	}
	assert.Equal(t, "[line 1] Error at ';': Expect expression", diags[0].Rendered)
	assert.Equal(t, "[line 2] Error at ';': Expect expression", diags[1].Rendered)
}

func TestCheckSource_ParseGatesResolve(t *testing.T) {
	// A top-level return is a resolve error, but the parse error on the
	// second line wins: resolve never sees a broken tree.
	src := "return 1;\nvar b = ;"
	diags := CheckSource(src)

	require.NotEmpty(t, diags)
	for _, d := range diags {
		assert.Equal(t, StageParse, d.Stage)
	}
}

func TestCheckSource_ResolveStage(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		rendered string
	}{
		{
			name:     "self-referential initializer",
			src:      "fun f() {\n  var a = a;\n}",
			rendered: "Can't read local variable in its own initializer. [Line: 2]",
		},
		{
			name:     "top-level return",
			src:      "return 42;",
			rendered: "Can't return from top-level code. [Line: 1]",
		},
		{
			name:     "this outside class",
			src:      "println(this);",
			rendered: "Can't use 'this' outside of a class. [Line: 1]",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags := CheckSource(tc.src)
			require.Len(t, diags, 1)
			assert.Equal(t, StageResolve, diags[0].Stage)
			assert.Equal(t, tc.rendered, diags[0].Rendered)
		})
	}
}

func TestStaticError_Message(t *testing.T) {
	diags := CheckSource("var a = ;\nvar b = ;")
	require.Len(t, diags, 2)

	err := &StaticError{Diagnostics: diags}
	assert.Equal(t,
		"[line 1] Error at ';': Expect expression\n"+
			"[line 2] Error at ';': Expect expression",
		err.Error())
}
