//go:build cgo && !lean

package treesitter

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDynamicLoader_LoadAndParse_EndToEnd compiles the lox grammar to a .so,
// loads it via purego under the rlox alias, and verifies it produces the same
// tree as the compiled-in grammar.
func TestDynamicLoader_LoadAndParse_EndToEnd(t *testing.T) {
	// Find the grammar source in the Go module cache
	goPath := os.Getenv("GOPATH")
	if goPath == "" {
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		goPath = filepath.Join(home, "go")
	}

	loxSrc := filepath.Join(goPath, "pkg", "mod", "github.com", "alexaandru",
		"go-sitter-forest", "lox@v1.9.2")

	parserC := filepath.Join(loxSrc, "parser.c")
	if _, err := os.Stat(parserC); err != nil {
		t.Skipf("lox grammar source not in module cache: %v", err)
	}

	// Check gcc is available
	if _, err := exec.LookPath("gcc"); err != nil {
		t.Skip("gcc not available")
	}

	// Compile to .so under the alias name a user would install
	dir := t.TempDir()
	soPath := filepath.Join(dir, "lox"+LibExtension())

	cmd := exec.Command("gcc", "-shared", "-fPIC",
		"-I"+loxSrc,
		"-o", soPath,
		parserC)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "gcc failed: %s", out)

	// A CST with no compiled-in grammar, only dynamic loading
	dynamic := &CST{}
	dynamic.SetGrammarPaths([]string{dir})

	source := []byte(`fun greet(name) {
	println("hello", name);
}
greet("world");
`)

	dynSexp, err := dynamic.Sexp(source)
	require.NoError(t, err)
	require.NotEmpty(t, dynSexp)

	// The compiled-in grammar must agree with the dynamically loaded one.
	builtin := NewCST()
	builtinSexp, err := builtin.Sexp(source)
	require.NoError(t, err)
	require.Equal(t, builtinSexp, dynSexp)
}
