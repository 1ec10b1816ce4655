//go:build cgo && !lean

package treesitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlox-lang/rlox/internal/ports"
)

func TestBuiltinGrammarLoads(t *testing.T) {
	// The compiled-in grammar resolves through the tree-sitter runtime.
	assert.NotNil(t, builtinLanguage())
}

func TestNewCSTHasGrammar(t *testing.T) {
	c := NewCST()
	assert.True(t, c.HasGrammar())
}

func TestParseProducesTree(t *testing.T) {
	c := NewCST()
	root, err := c.Parse([]byte("var x = 1;\n"))
	require.NoError(t, err)
	require.NotNil(t, root)

	assert.NotEmpty(t, root.Kind)
	assert.True(t, root.Named)
	assert.Equal(t, 1, root.StartLine)
	assert.Equal(t, 1, root.StartCol)
	assert.NotEmpty(t, root.Children)
}

// leafTexts collects the source text of every leaf node.
func leafTexts(n *ports.CSTNode, out *[]string) {
	if len(n.Children) == 0 {
		if n.Text != "" {
			*out = append(*out, n.Text)
		}
		return
	}
	for _, c := range n.Children {
		leafTexts(c, out)
	}
}

func TestParseLeavesCarrySourceText(t *testing.T) {
	c := NewCST()
	root, err := c.Parse([]byte("var answer = 42;\n"))
	require.NoError(t, err)

	var texts []string
	leafTexts(root, &texts)
	assert.Contains(t, texts, "answer")
	assert.Contains(t, texts, "42")
}

func TestParseSpansAllLines(t *testing.T) {
	src := "var a = 1;\nvar b = 2;\n"
	c := NewCST()
	root, err := c.Parse([]byte(src))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, root.EndLine, 2)
}

func TestSexp(t *testing.T) {
	c := NewCST()
	sexp, err := c.Sexp([]byte("var x = 1;\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sexp, "("), "sexp should open a list, got %q", sexp)
	assert.Contains(t, sexp, ")")
}

func TestParseTwice(t *testing.T) {
	// Each parse owns its tree; back-to-back parses do not interfere.
	c := NewCST()
	_, err := c.Parse([]byte("var x = 1;\n"))
	require.NoError(t, err)
	_, err = c.Parse([]byte("var y = 2;\n"))
	require.NoError(t, err)
}
