package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rlox-lang/rlox/internal/ports"
	"github.com/spf13/cobra"
)

var cstSexp bool

var cstCmd = &cobra.Command{
	Use:   "cst <file.lox>",
	Short: "Show the tree-sitter concrete syntax tree",
	Long: `Parses a source file with the tree-sitter grammar and prints the concrete
syntax tree. Unlike parse, the CST keeps every token, so it shows the source
exactly as the grammar segments it.`,
	Args:         cobra.ExactArgs(1),
	RunE:         runCst,
	SilenceUsage: true,
}

func init() {
	cstCmd.Flags().BoolVar(&cstSexp, "sexp", false, "Print the raw tree-sitter S-expression")
}

func runCst(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	cfg := loadConfig(cmd)
	cst, err := newCST(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cstSexp {
		sexp, err := cst.Sexp(src)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, sexp)
		return nil
	}

	root, err := cst.Parse(src)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cstLabel(root))
	var sb strings.Builder
	walkCST(&sb, root, "")
	fmt.Fprint(out, sb.String())
	return nil
}

func walkCST(sb *strings.Builder, n *ports.CSTNode, prefix string) {
	for i, child := range n.Children {
		isLast := i == len(n.Children)-1
		connector := "├── "
		if isLast {
			connector = "└── "
		}

		sb.WriteString(prefix + connector + cstLabel(child) + "\n")

		if len(child.Children) > 0 {
			newPrefix := prefix + "│   "
			if isLast {
				newPrefix = prefix + "    "
			}
			walkCST(sb, child, newPrefix)
		}
	}
}

// cstLabel renders one node: kind, source range, and leaf text. Anonymous
// nodes are bare tokens, so their text stands in for a kind.
func cstLabel(n *ports.CSTNode) string {
	rng := fmt.Sprintf("%d:%d-%d:%d", n.StartLine, n.StartCol, n.EndLine, n.EndCol)
	if !n.Named {
		return fmt.Sprintf("%q %s", n.Text, rng)
	}
	if len(n.Children) == 0 && n.Text != "" {
		return fmt.Sprintf("%s %s %q", n.Kind, rng, n.Text)
	}
	return fmt.Sprintf("%s %s", n.Kind, rng)
}
