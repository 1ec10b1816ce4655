// rlox is a small Lox-family language in one binary: tree-walk interpreter,
// REPL, static checker, and tree-sitter grammar tooling.
package main

import (
	"os"

	"github.com/rlox-lang/rlox/cmd/rlox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}
}
