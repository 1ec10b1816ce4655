package cmd

import (
	"fmt"
	"os"

	"github.com/rlox-lang/rlox/lang"
	"github.com/rlox-lang/rlox/scanner"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:           "scan <file.lox>",
	Short:         "Dump the token stream",
	Long:          "Scans a source file and prints one token per line: position, class, and lexeme.",
	Args:          cobra.ExactArgs(1),
	RunE:          runScan,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func runScan(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "rlox: %v\n", err)
		return err
	}

	tokens, scanErrs := scanner.New(lang.Get(), string(src)).ScanTokens()

	out := cmd.OutOrStdout()
	for _, t := range tokens {
		fmt.Fprintf(out, "%6s  %s\n", t.Pos, t)
	}

	if len(scanErrs) > 0 {
		for _, e := range scanErrs {
			fmt.Fprintln(cmd.ErrOrStderr(), e.Error())
		}
		return loxExit{exitStatic}
	}
	return nil
}
