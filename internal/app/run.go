package app

import (
	"fmt"
	"io"
	"os"

	"github.com/rlox-lang/rlox/interp"
)

// RunFile reads and executes a Lox script. in and out back the program's
// input/print natives.
func RunFile(path string, in io.Reader, out io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return RunSource(string(src), in, out)
}

// RunSource runs one source buffer through the whole pipeline. Static
// problems come back as *StaticError carrying every diagnostic; runtime
// failures surface as interp.Error.
func RunSource(src string, in io.Reader, out io.Writer) error {
	stmts, depths, diags := analyze(src)
	if len(diags) > 0 {
		return &StaticError{Diagnostics: diags}
	}
	return interp.New(in, out).Interpret(stmts, depths)
}
