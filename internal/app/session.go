package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/rlox-lang/rlox/interp"
	"github.com/rlox-lang/rlox/lang"
	"github.com/rlox-lang/rlox/parser"
	"github.com/rlox-lang/rlox/resolver"
	"github.com/rlox-lang/rlox/scanner"
)

// ErrIncomplete reports that the input so far is a prefix of a valid
// program. Interactive callers keep the buffer and read another line.
var ErrIncomplete = errors.New("incomplete input")

// Session is one interactive evaluation context. Definitions persist across
// Eval calls because a single interpreter carries the global scope.
type Session struct {
	interp *interp.Interpreter
	out    io.Writer
}

// NewSession returns a session printing to out and reading program input
// (the input native) from in.
func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{interp: interp.New(in, out), out: out}
}

// Eval runs one chunk of input. A bare expression echoes its value unless
// it evaluates to nil; statements execute silently. Returns ErrIncomplete
// when the chunk ends mid-construct, *StaticError for diagnostics, and
// interp.Error for runtime failures.
func (s *Session) Eval(input string) error {
	tokens, scanErrs := scanner.New(lang.Get(), input).ScanTokens()
	if len(scanErrs) > 0 {
		return &StaticError{Diagnostics: scanDiagnostics(scanErrs)}
	}

	// Expression first, so `1 + 2` answers instead of complaining about a
	// missing semicolon.
	if expr, errs := parser.New(tokens).ParseExpression(); len(errs) == 0 {
		depths, resolveErrs := resolver.ResolveExpr(expr)
		if len(resolveErrs) > 0 {
			return &StaticError{Diagnostics: resolveDiagnostics(resolveErrs)}
		}
		v, err := s.interp.EvalExpr(expr, depths)
		if err != nil {
			return err
		}
		if v.Kind != interp.KindNil {
			fmt.Fprintln(s.out, v.String())
		}
		return nil
	}

	stmts, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		if parser.Incomplete(parseErrs) {
			return ErrIncomplete
		}
		return &StaticError{Diagnostics: parseDiagnostics(parseErrs)}
	}

	depths, resolveErrs := resolver.Resolve(stmts)
	if len(resolveErrs) > 0 {
		return &StaticError{Diagnostics: resolveDiagnostics(resolveErrs)}
	}

	return s.interp.Interpret(stmts, depths)
}
