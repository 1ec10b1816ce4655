package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rlox-lang/rlox/internal/app"
	"github.com/rlox-lang/rlox/lang"
	"github.com/spf13/cobra"
)

const (
	replPrompt     = "rlox> "
	replMorePrompt = "  ..> "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Reads rlox source a line at a time. Expressions print their value;
statements execute silently. Definitions persist for the rest of the session,
and an unfinished block continues on the next line.`,
	Args:         cobra.NoArgs,
	RunE:         runRepl,
	SilenceUsage: true,
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	// History lives under .rlox by default; readline needs the directory to
	// exist before it can persist across sessions.
	_ = os.MkdirAll(filepath.Dir(cfg.History), 0o755)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     cfg.History,
		AutoComplete:    newReplCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("initialize repl: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	l := lang.Get()
	fmt.Fprintf(out, "%s %s\n", l.Name(), l.Version())
	fmt.Fprintln(out, "Type .help for commands, .quit to exit")

	session := app.NewSession(cmd.InOrStdin(), out)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		if buffer.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ".") {
				if quit := handleReplCommand(cmd, trimmed); quit {
					break
				}
				continue
			}
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")

		err = session.Eval(buffer.String())
		if errors.Is(err, app.ErrIncomplete) {
			rl.SetPrompt(replMorePrompt)
			continue
		}

		buffer.Reset()
		rl.SetPrompt(replPrompt)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}
	return nil
}

// handleReplCommand dispatches a dot-command. Returns true when the session
// should end.
func handleReplCommand(cmd *cobra.Command, line string) bool {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		printReplHelp(cmd.OutOrStdout())
	case ".clear":
		fmt.Print("\033[H\033[2J")
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", line)
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .clear          Clear the screen
  .quit / .exit   Exit the session

Tips:
  - Expressions print their value; statements end with a semicolon
  - var, fun, and class definitions carry across lines
  - An unfinished block or call continues on the next line
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newReplCompleter completes reserved words and dot-commands.
func newReplCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, kw := range lang.Get().Keywords() {
		items = append(items, readline.PcItem(kw))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
