//go:build cgo

// Package treesitter adapts the tree-sitter runtime to the ports.CST
// contract. The rlox grammar is compiled in by default; builds with
// -tags lean start without a grammar and load one dynamically from a
// shared library instead.
package treesitter

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/rlox-lang/rlox/internal/ports"
)

// GrammarName is the grammar this adapter parses with.
const GrammarName = "rlox"

// CST implements ports.CST for rlox source.
type CST struct {
	lang   *tree_sitter.Language
	loader *DynamicLoader
}

// NewCST returns a CST backed by the compiled-in grammar when present.
// Lean builds start without one; SetGrammarPaths enables dynamic loading
// as a fallback.
func NewCST() *CST {
	return &CST{lang: builtinLanguage()}
}

// SetGrammarPaths configures directories to search for grammar shared
// libraries when no grammar is compiled in.
func (c *CST) SetGrammarPaths(paths []string) {
	c.loader = NewDynamicLoader(paths)
}

// Loader returns the dynamic loader, or nil if none is configured.
func (c *CST) Loader() *DynamicLoader {
	return c.loader
}

// HasGrammar reports whether a grammar is already resolved (compiled in or
// previously loaded).
func (c *CST) HasGrammar() bool {
	return c.lang != nil
}

// language resolves the grammar: compiled-in first, then dynamic.
func (c *CST) language() (*tree_sitter.Language, error) {
	if c.lang != nil {
		return c.lang, nil
	}
	if c.loader == nil {
		return nil, fmt.Errorf("grammar %q: not compiled in and no search paths configured", GrammarName)
	}
	lang, err := c.loader.LoadGrammar(GrammarName)
	if err != nil {
		return nil, err
	}
	c.lang = lang
	return lang, nil
}

// Parse parses source and converts the tree to portable nodes.
func (c *CST) Parse(source []byte) (*ports.CSTNode, error) {
	tree, err := c.parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	return convert(tree.RootNode(), source), nil
}

// Sexp returns the raw tree-sitter S-expression for source.
func (c *CST) Sexp(source []byte) (string, error) {
	tree, err := c.parse(source)
	if err != nil {
		return "", err
	}
	defer tree.Close()
	return tree.RootNode().ToSexp(), nil
}

func (c *CST) parse(source []byte) (*tree_sitter.Tree, error) {
	lang, err := c.language()
	if err != nil {
		return nil, err
	}
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("grammar %q: %w", GrammarName, err)
	}
	return parser.Parse(source, nil), nil
}

// convert maps a tree-sitter node to the portable representation.
// Leaves carry their source text.
func convert(n *tree_sitter.Node, source []byte) *ports.CSTNode {
	out := &ports.CSTNode{
		Kind:      n.Kind(),
		Named:     n.IsNamed(),
		StartLine: int(n.StartPosition().Row + 1),
		StartCol:  int(n.StartPosition().Column + 1),
		EndLine:   int(n.EndPosition().Row + 1),
		EndCol:    int(n.EndPosition().Column + 1),
	}
	count := uint(n.ChildCount())
	if count == 0 {
		out.Text = string(source[n.StartByte():n.EndByte()])
		return out
	}
	for i := uint(0); i < count; i++ {
		out.Children = append(out.Children, convert(n.Child(i), source))
	}
	return out
}
