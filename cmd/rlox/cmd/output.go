package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/rlox-lang/rlox/internal/app"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// colorize wraps s in an ANSI color when enabled.
func colorize(s, color string, enabled bool) string {
	if !enabled {
		return s
	}
	return color + s + colorReset
}

// formatCheckSummary renders the header line for a batch of check results.
//
//	⚡ 12 files │ clean │ 3 cached │ 14ms
//	⚡ 12 files │ 5 errors in 2 files │ 14ms
func formatCheckSummary(results []app.FileResult, elapsed time.Duration, useColor bool) string {
	var cached, errCount, errFiles int
	for _, r := range results {
		if r.FromCache {
			cached++
		}
		if n := len(r.Diagnostics); n > 0 {
			errCount += n
			errFiles++
		}
	}

	status := colorize("clean", colorGreen, useColor)
	if errCount > 0 {
		status = colorize(fmt.Sprintf("%d errors in %d files", errCount, errFiles), colorRed, useColor)
	}

	var sb strings.Builder
	sb.WriteString(colorize(fmt.Sprintf("⚡ %d files", len(results)), colorBold, useColor))
	sb.WriteString(" │ " + status)
	if cached > 0 {
		sb.WriteString(" │ " + colorize(fmt.Sprintf("%d cached", cached), colorGray, useColor))
	}
	sb.WriteString(fmt.Sprintf(" │ %s\n", elapsed.Round(time.Millisecond)))
	return sb.String()
}

// formatFileResult renders one file's diagnostics indented under its path.
// Clean files render nothing; diagnostic lines stay verbatim so the output
// greps the same with and without a terminal.
func formatFileResult(res app.FileResult, useColor bool) string {
	if res.Clean() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("  " + colorize(res.Path, colorCyan, useColor))
	if res.FromCache {
		sb.WriteString(" " + colorize("(cached)", colorGray, useColor))
	}
	sb.WriteString("\n")
	for _, d := range res.Diagnostics {
		sb.WriteString("    " + d.Rendered + "\n")
	}
	return sb.String()
}

// formatWatchResult renders one re-check outcome in watch mode.
func formatWatchResult(res app.FileResult, useColor bool) string {
	if res.Clean() {
		return fmt.Sprintf("%s %s\n", colorize("✓", colorGreen, useColor), res.Path)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s\n", colorize("✗", colorRed, useColor), res.Path))
	for _, d := range res.Diagnostics {
		sb.WriteString("    " + d.Rendered + "\n")
	}
	return sb.String()
}
