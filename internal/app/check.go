// Package app orchestrates the language pipeline behind the CLI commands:
// static checking with caching and parallelism, script execution, and
// interactive sessions. It depends on the front-end packages and on the
// ports interfaces, never on concrete adapters.
package app

import (
	"strings"

	"github.com/rlox-lang/rlox/ast"
	"github.com/rlox-lang/rlox/internal/ports"
	"github.com/rlox-lang/rlox/lang"
	"github.com/rlox-lang/rlox/parser"
	"github.com/rlox-lang/rlox/resolver"
	"github.com/rlox-lang/rlox/scanner"
)

// Pipeline stage names recorded in diagnostics.
const (
	StageScan    = "scan"
	StageParse   = "parse"
	StageResolve = "resolve"
)

// StaticError aggregates the diagnostics that stopped a program before
// execution. Its message is every rendered diagnostic, one per line.
type StaticError struct {
	Diagnostics []ports.Diagnostic
}

func (e *StaticError) Error() string {
	lines := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		lines[i] = d.Rendered
	}
	return strings.Join(lines, "\n")
}

// CheckSource runs the static pipeline over one source buffer and returns
// every diagnostic from the first failing stage. A nil result means the
// program is statically clean.
func CheckSource(src string) []ports.Diagnostic {
	_, _, diags := analyze(src)
	return diags
}

// analyze runs scan, parse, and resolve, keeping the artifacts for callers
// that go on to execute. Each stage gates the next: parse never sees a
// token stream with lexical errors, resolve never sees a broken tree.
func analyze(src string) ([]ast.Stmt, resolver.Depths, []ports.Diagnostic) {
	tokens, scanErrs := scanner.New(lang.Get(), src).ScanTokens()
	if len(scanErrs) > 0 {
		return nil, nil, scanDiagnostics(scanErrs)
	}

	stmts, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		return nil, nil, parseDiagnostics(parseErrs)
	}

	depths, resolveErrs := resolver.Resolve(stmts)
	if len(resolveErrs) > 0 {
		return nil, nil, resolveDiagnostics(resolveErrs)
	}

	return stmts, depths, nil
}

func scanDiagnostics(errs []scanner.Error) []ports.Diagnostic {
	diags := make([]ports.Diagnostic, len(errs))
	for i, e := range errs {
		diags[i] = ports.Diagnostic{
			Stage:    StageScan,
			Line:     e.Line,
			Message:  e.Message,
			Rendered: e.Error(),
		}
	}
	return diags
}

func parseDiagnostics(errs []parser.Error) []ports.Diagnostic {
	diags := make([]ports.Diagnostic, len(errs))
	for i, e := range errs {
		diags[i] = ports.Diagnostic{
			Stage:    StageParse,
			Line:     e.Token.Pos.Line,
			Message:  e.Message,
			Rendered: e.Error(),
		}
	}
	return diags
}

func resolveDiagnostics(errs []resolver.Error) []ports.Diagnostic {
	diags := make([]ports.Diagnostic, len(errs))
	for i, e := range errs {
		diags[i] = ports.Diagnostic{
			Stage:    StageResolve,
			Line:     e.Line,
			Message:  e.Message,
			Rendered: e.Error(),
		}
	}
	return diags
}
