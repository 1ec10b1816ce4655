package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rlox-lang/rlox/internal/adapters/bbolt"
	"github.com/rlox-lang/rlox/internal/adapters/fsnotify"
	"github.com/rlox-lang/rlox/internal/app"
	"github.com/rlox-lang/rlox/internal/ports"
	"github.com/spf13/cobra"
)

var checkWatch bool

var checkCmd = &cobra.Command{
	Use:   "check [path ...]",
	Short: "Check sources without running them",
	Long: `Scans, parses, and resolves .lox files and reports every diagnostic.
Directories are walked recursively; with no arguments the project root is
checked. Results are cached in .rlox/check.db by content hash, so unchanged
files are not re-analyzed.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runCheck,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	f := checkCmd.Flags()
	f.Bool("no-cache", false, "Bypass the check result cache")
	f.IntP("jobs", "j", 0, "Parallel workers (default: CPU count)")
	f.BoolVarP(&checkWatch, "watch", "w", false, "Stay running and re-check files as they change")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	var cache ports.CheckCache
	if cfg.Cache {
		paths := app.NewPaths(cfg.ProjectRoot)
		if err := paths.EnsureDirs(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "rlox: %v\n", err)
			return err
		}
		store, err := bbolt.NewStore(paths.CheckDB)
		if err != nil {
			// A locked or unreadable cache should not block checking.
			fmt.Fprintf(cmd.ErrOrStderr(), "rlox: %v (continuing without cache)\n", err)
		} else {
			cache = store
			defer func() { _ = store.Close() }()
		}
	}

	checker := app.NewChecker(cache, cfg.ProjectRoot, cfg.Jobs)

	targets := args
	if len(targets) == 0 {
		targets = []string{cfg.ProjectRoot}
	}

	out := cmd.OutOrStdout()
	useColor := isStdoutTTY()

	start := time.Now()
	results, err := checker.CheckPaths(targets)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "rlox: %v\n", err)
		return err
	}

	fmt.Fprint(out, formatCheckSummary(results, time.Since(start), useColor))
	dirty := false
	for _, res := range results {
		fmt.Fprint(out, formatFileResult(res, useColor))
		if !res.Clean() {
			dirty = true
		}
	}

	if !checkWatch {
		if dirty {
			return loxExit{exitStatic}
		}
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		err = fmt.Errorf("start watcher: %w", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "rlox: %v\n", err)
		return err
	}
	defer func() { _ = w.Stop() }()

	err = checker.Watch(w, func(res app.FileResult, err error) {
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "rlox: %v\n", err)
			return
		}
		fmt.Fprint(out, formatWatchResult(res, useColor))
	})
	if err != nil {
		err = fmt.Errorf("watch %s: %w", cfg.ProjectRoot, err)
		fmt.Fprintf(cmd.ErrOrStderr(), "rlox: %v\n", err)
		return err
	}

	fmt.Fprintf(out, "%s watching %s (Ctrl-C to stop)\n", colorize("⚡", colorBold, useColor), cfg.ProjectRoot)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Fprintln(out, "\n⚡ stopping...")
	return nil
}
