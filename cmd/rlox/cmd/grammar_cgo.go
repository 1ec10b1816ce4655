//go:build cgo

package cmd

import (
	"fmt"
	"os"

	"github.com/rlox-lang/rlox/internal/adapters/treesitter"
	"github.com/spf13/cobra"
)

var grammarPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show grammar search paths",
	Long:  "Lists the directories searched for a dynamically loadable grammar, in order.",
	Args:  cobra.NoArgs,
	RunE:  runGrammarPath,
}

func runGrammarPath(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	paths := append([]string{}, cfg.GrammarPaths...)
	paths = append(paths, treesitter.DefaultGrammarPaths(cfg.ProjectRoot)...)

	out := cmd.OutOrStdout()
	for _, p := range paths {
		exists := "  "
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			exists = "* "
		}
		fmt.Fprintf(out, "%s%s\n", exists, p)
	}
	fmt.Fprintln(out, "\n* = directory exists")
	fmt.Fprintf(out, "Grammar object: %s%s\n", treesitter.GrammarName, treesitter.LibExtension())
	return nil
}
