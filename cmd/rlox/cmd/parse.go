package cmd

import (
	"fmt"
	"os"

	"github.com/rlox-lang/rlox/ast"
	"github.com/rlox-lang/rlox/lang"
	"github.com/rlox-lang/rlox/parser"
	"github.com/rlox-lang/rlox/scanner"
	"github.com/spf13/cobra"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:           "parse <file.lox>",
	Short:         "Dump the syntax tree",
	Long:          "Parses a source file and prints the tree as grammar S-expressions, or as JSON with --json.",
	Args:          cobra.ExactArgs(1),
	RunE:          runParse,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Emit the tree as JSON")
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "rlox: %v\n", err)
		return err
	}

	l := lang.Get()
	tokens, scanErrs := scanner.New(l, string(src)).ScanTokens()
	if len(scanErrs) > 0 {
		for _, e := range scanErrs {
			fmt.Fprintln(cmd.ErrOrStderr(), e.Error())
		}
		return loxExit{exitStatic}
	}

	stmts, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintln(cmd.ErrOrStderr(), e.Error())
		}
		return loxExit{exitStatic}
	}

	out := cmd.OutOrStdout()
	if parseJSON {
		data, err := ast.MarshalJSON(l, stmts)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "rlox: %v\n", err)
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintln(out, ast.Sprint(l, stmts))
	return nil
}
