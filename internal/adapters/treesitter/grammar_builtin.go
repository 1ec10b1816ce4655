//go:build cgo && !lean

package treesitter

// This file compiles the rlox grammar into the binary. It is included in the
// default build but excluded with -tags lean, which produces a binary that
// loads the grammar dynamically from a .so/.dylib file.

import (
	"unsafe"

	forest_lox "github.com/alexaandru/go-sitter-forest/lox"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// langPtr wraps a grammar entry point that returns unsafe.Pointer.
func langPtr(p unsafe.Pointer) *tree_sitter.Language {
	return tree_sitter.NewLanguage(p)
}

// builtinLanguage returns the compiled-in rlox grammar. rlox is a Lox
// dialect; the lox grammar is the one that parses it.
func builtinLanguage() *tree_sitter.Language {
	return langPtr(forest_lox.GetLanguage())
}
