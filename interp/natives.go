package interp

import (
	"fmt"
	"strings"
	"unicode"
)

// defineNatives installs the built-in functions into the global scope.
func defineNatives(globals *Environment) {
	for _, n := range []*Native{
		{Name: "input", Call: nativeInput},
		{Name: "print", Call: nativePrint},
		{Name: "println", Call: nativePrintln},
	} {
		globals.Define(n.Name, NativeValue(n))
	}
}

// nativeInput shows an optional prompt, then reads one line and returns it
// without trailing whitespace. End of input yields the empty string.
func nativeInput(i *Interpreter, args []Value, line int) (Value, error) {
	if len(args) > 1 {
		return Value{}, Error{
			Line:    line,
			Message: fmt.Sprintf("expect 0 or 1 arguments, got %d", len(args)),
		}
	}
	if len(args) == 1 {
		fmt.Fprint(i.stdout, args[0].String())
	}

	text, err := i.stdin.ReadString('\n')
	if err != nil && text == "" {
		return StringValue(""), nil
	}
	return StringValue(strings.TrimRightFunc(text, unicode.IsSpace)), nil
}

// nativePrint writes its arguments joined by single spaces, no newline.
func nativePrint(i *Interpreter, args []Value, line int) (Value, error) {
	fmt.Fprint(i.stdout, joinValues(args))
	return NilValue(), nil
}

// nativePrintln is print with a trailing newline.
func nativePrintln(i *Interpreter, args []Value, line int) (Value, error) {
	fmt.Fprintln(i.stdout, joinValues(args))
	return NilValue(), nil
}

func joinValues(args []Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
