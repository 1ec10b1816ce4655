package cmd

import (
	"fmt"
	"os"

	"github.com/rlox-lang/rlox/internal/config"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "rlox",
	Short: "rlox — a Lox dialect with tooling",
	Long:  "Tree-walk interpreter, REPL, static checker, and tree-sitter grammar tooling for rlox programs.",
}

// loadConfig merges defaults, rlox.yaml, RLOX_* environment variables, and
// the command's own flags, in rising precedence.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: rlox.yaml in the project root)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(cstCmd)
	rootCmd.AddCommand(grammarCmd)
	rootCmd.AddCommand(configCmd)
}
