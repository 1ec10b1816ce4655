package cmd

import "fmt"

// Exit codes follow the sysexits convention: 65 (EX_DATAERR) when the source
// fails to scan, parse, or resolve; 70 (EX_SOFTWARE) when it fails at runtime.
const (
	exitStatic  = 65
	exitRuntime = 70
)

// loxExit is returned by run and check to signal a specific exit code.
// The diagnostics have already been printed by the time it is returned.
type loxExit struct{ code int }

func (e loxExit) Error() string {
	switch e.code {
	case exitStatic:
		return "static errors"
	case exitRuntime:
		return "runtime error"
	default:
		return fmt.Sprintf("exit %d", e.code)
	}
}

// ExitCode extracts the exit code from a loxExit error.
// Returns -1 if the error is not a loxExit.
func ExitCode(err error) int {
	if le, ok := err.(loxExit); ok {
		return le.code
	}
	return -1
}
