//go:build !cgo

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var grammarPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show grammar search paths (requires cgo)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Dynamic grammar loading requires a cgo build of rlox.")
		fmt.Fprintln(cmd.OutOrStdout(), "This binary scans, parses, checks, and runs rlox without the CST facility.")
		return nil
	},
}
