//go:build !cgo

package cmd

import (
	"errors"

	"github.com/rlox-lang/rlox/internal/config"
	"github.com/rlox-lang/rlox/internal/ports"
)

// newCST fails in pure-Go builds: the tree-sitter runtime needs CGo even
// when the grammar itself would be loaded dynamically. The interpreter,
// checker, and REPL are unaffected.
func newCST(_ *config.Config) (ports.CST, error) {
	return nil, errors.New("cst requires a cgo build of rlox")
}
