package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlox-lang/rlox/interp"
)

// newTestSession returns a session wired to a capture buffer.
func newTestSession() (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	return NewSession(strings.NewReader(""), &out), &out
}

func TestSession_ExpressionEchoesValue(t *testing.T) {
	s, out := newTestSession()

	require.NoError(t, s.Eval("1 + 2 * 3"))
	assert.Equal(t, "7\n", out.String())
}

func TestSession_StringExpression(t *testing.T) {
	s, out := newTestSession()

	require.NoError(t, s.Eval(`"lo" + "x"`))
	assert.Equal(t, "lox\n", out.String())
}

func TestSession_NilNotEchoed(t *testing.T) {
	// println returns nil; echoing it after the printed line would just
	// be clutter.
	s, out := newTestSession()

	require.NoError(t, s.Eval(`println("hi")`))
	assert.Equal(t, "hi\n", out.String())
}

func TestSession_DefinitionsPersist(t *testing.T) {
	s, out := newTestSession()

	require.NoError(t, s.Eval("var x = 10;"))
	require.NoError(t, s.Eval("fun double(n) { return 2 * n; }"))
	require.NoError(t, s.Eval("double(x)"))

	assert.Equal(t, "20\n", out.String())
}

func TestSession_ClassAcrossEvals(t *testing.T) {
	s, out := newTestSession()

	require.NoError(t, s.Eval("class Point { init(x, y) { this.x = x; this.y = y; } }"))
	require.NoError(t, s.Eval("var p = Point(3, 4);"))
	require.NoError(t, s.Eval("p.x + p.y"))

	assert.Equal(t, "7\n", out.String())
}

func TestSession_IncompleteInput(t *testing.T) {
	cases := []string{
		"fun f() {",
		"if (true) {",
		"( 1 +",
		"while (x <",
	}
	s, _ := newTestSession()
	for _, input := range cases {
		err := s.Eval(input)
		assert.ErrorIs(t, err, ErrIncomplete, "input %q", input)
	}
}

func TestSession_IncompleteThenComplete(t *testing.T) {
	// The caller accumulates lines until the parser stops asking for
	// more, then evaluates the whole buffer.
	s, out := newTestSession()

	buf := "fun greet(name) {"
	require.ErrorIs(t, s.Eval(buf), ErrIncomplete)

	buf += "\n" + `  println("hi", name);`
	require.ErrorIs(t, s.Eval(buf), ErrIncomplete)

	buf += "\n" + "}"
	require.NoError(t, s.Eval(buf))

	require.NoError(t, s.Eval(`greet("lox")`))
	assert.Equal(t, "hi lox\n", out.String())
}

func TestSession_StaticError(t *testing.T) {
	s, _ := newTestSession()

	err := s.Eval("return 1;")
	var staticErr *StaticError
	require.ErrorAs(t, err, &staticErr)
	assert.Equal(t, "Can't return from top-level code. [Line: 1]", staticErr.Error())
}

func TestSession_ScanError(t *testing.T) {
	s, _ := newTestSession()

	err := s.Eval("var x = @;")
	var staticErr *StaticError
	require.ErrorAs(t, err, &staticErr)
	require.Len(t, staticErr.Diagnostics, 1)
	assert.Equal(t, StageScan, staticErr.Diagnostics[0].Stage)
}

func TestSession_RuntimeErrorDoesNotKillSession(t *testing.T) {
	s, out := newTestSession()

	err := s.Eval("1 + nil")
	var runtimeErr interp.Error
	require.ErrorAs(t, err, &runtimeErr)

	// The session is still usable afterwards.
	require.NoError(t, s.Eval("var ok = 1;"))
	require.NoError(t, s.Eval("ok"))
	assert.Equal(t, "1\n", out.String())
}

func TestSession_StatementsExecuteSilently(t *testing.T) {
	s, out := newTestSession()

	require.NoError(t, s.Eval("var a = 5; var b = 6;"))
	assert.Empty(t, out.String())

	require.NoError(t, s.Eval("a * b"))
	assert.Equal(t, "30\n", out.String())
}
