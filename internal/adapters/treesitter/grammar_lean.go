//go:build cgo && lean

package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// builtinLanguage returns nil in lean builds; the grammar loads dynamically
// through the DynamicLoader instead.
func builtinLanguage() *tree_sitter.Language {
	return nil
}
