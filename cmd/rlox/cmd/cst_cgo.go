//go:build cgo

package cmd

import (
	"github.com/rlox-lang/rlox/internal/adapters/treesitter"
	"github.com/rlox-lang/rlox/internal/config"
	"github.com/rlox-lang/rlox/internal/ports"
)

// newCST returns the tree-sitter adapter when CGo is available. Configured
// grammar paths come first so an operator can shadow the default search
// directories; lean builds depend on these paths to find a grammar at all.
func newCST(cfg *config.Config) (ports.CST, error) {
	c := treesitter.NewCST()
	paths := append([]string{}, cfg.GrammarPaths...)
	paths = append(paths, treesitter.DefaultGrammarPaths(cfg.ProjectRoot)...)
	c.SetGrammarPaths(paths)
	return c, nil
}
