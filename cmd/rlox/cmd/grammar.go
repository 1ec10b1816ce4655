package cmd

import (
	"fmt"

	"github.com/rlox-lang/rlox/lang"
	"github.com/spf13/cobra"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Inspect the language descriptor",
	Long:  "Introspection over the rlox grammar descriptor: version, symbol table, keywords, and grammar search paths.",
}

var grammarInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show descriptor name, version, and counts",
	Args:  cobra.NoArgs,
	RunE:  runGrammarInfo,
}

var grammarSymbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List the symbol table",
	Long:  "Lists every grammar symbol: terminals in token order, then node kinds. Anonymous symbols are quoted.",
	Args:  cobra.NoArgs,
	RunE:  runGrammarSymbols,
}

var grammarKeywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List reserved words",
	Args:  cobra.NoArgs,
	RunE:  runGrammarKeywords,
}

func init() {
	grammarCmd.AddCommand(grammarInfoCmd)
	grammarCmd.AddCommand(grammarSymbolsCmd)
	grammarCmd.AddCommand(grammarKeywordsCmd)
	grammarCmd.AddCommand(grammarPathCmd)
}

func runGrammarInfo(cmd *cobra.Command, args []string) error {
	l := lang.Get()

	var named, anon int
	for i := 0; i < l.SymbolCount(); i++ {
		if l.SymbolIsNamed(lang.Symbol(i)) {
			named++
		} else {
			anon++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Grammar:   %s\n", l.Name())
	fmt.Fprintf(out, "Version:   %s\n", l.Version())
	fmt.Fprintf(out, "Symbols:   %d (%d named, %d anonymous)\n", l.SymbolCount(), named, anon)
	fmt.Fprintf(out, "Keywords:  %d\n", len(l.Keywords()))
	fmt.Fprintf(out, "C symbol:  tree_sitter_%s\n", l.Name())
	return nil
}

func runGrammarSymbols(cmd *cobra.Command, args []string) error {
	l := lang.Get()
	out := cmd.OutOrStdout()

	for i := 0; i < l.SymbolCount(); i++ {
		s := lang.Symbol(i)
		name := l.SymbolName(s)
		if !l.SymbolIsNamed(s) {
			name = fmt.Sprintf("%q", name)
		}
		fmt.Fprintf(out, "%4d  %s\n", i, name)
	}
	return nil
}

func runGrammarKeywords(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, kw := range lang.Get().Keywords() {
		fmt.Fprintln(out, kw)
	}
	return nil
}
