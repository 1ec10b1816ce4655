package cmd

import (
	"errors"
	"fmt"

	"github.com/rlox-lang/rlox/internal/app"
	"github.com/rlox-lang/rlox/interp"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:           "run <file.lox>",
	Short:         "Run an rlox program",
	Long:          "Scans, parses, resolves, and interprets a source file. Exits 65 on scan/parse/resolve errors, 70 on a runtime error.",
	Args:          cobra.ExactArgs(1),
	RunE:          runRun,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func runRun(cmd *cobra.Command, args []string) error {
	err := app.RunFile(args[0], cmd.InOrStdin(), cmd.OutOrStdout())
	if err == nil {
		return nil
	}

	var static *app.StaticError
	if errors.As(err, &static) {
		for _, d := range static.Diagnostics {
			fmt.Fprintln(cmd.ErrOrStderr(), d.Rendered)
		}
		return loxExit{exitStatic}
	}

	var rt interp.Error
	if errors.As(err, &rt) {
		fmt.Fprintln(cmd.ErrOrStderr(), rt.Error())
		return loxExit{exitRuntime}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "rlox: %v\n", err)
	return err
}
