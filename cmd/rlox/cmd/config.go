package cmd

import (
	"fmt"
	"strings"

	"github.com/rlox-lang/rlox/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  "Prints the merged configuration: defaults, then rlox.yaml, then RLOX_* environment variables, then flags.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	fileStatus := fmt.Sprintf("%s(none)%s", colorGray, colorReset)
	if used := config.FileUsed(); used != "" {
		fileStatus = used
	}

	cacheStatus := fmt.Sprintf("%s✗ disabled%s", colorYellow, colorReset)
	if cfg.Cache {
		cacheStatus = fmt.Sprintf("%s✓ enabled%s", colorGreen, colorReset)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s⚡ rlox config%s\n", colorBold, colorReset)
	fmt.Fprintf(out, "  Root:      %s\n", cfg.ProjectRoot)
	fmt.Fprintf(out, "  File:      %s\n", fileStatus)
	fmt.Fprintf(out, "  Cache:     %s\n", cacheStatus)
	fmt.Fprintf(out, "  Jobs:      %d\n", cfg.Jobs)
	fmt.Fprintf(out, "  History:   %s\n", cfg.History)
	if len(cfg.GrammarPaths) > 0 {
		fmt.Fprintf(out, "  Grammars:  %s\n", strings.Join(cfg.GrammarPaths, ", "))
	}
	return nil
}
