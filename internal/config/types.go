// Package config loads rlox configuration from rlox.yaml, RLOX_*
// environment variables, and command-line flags, merged through koanf.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

// Config holds all CLI configuration options.
type Config struct {
	// ProjectRoot is inferred (upward config search or CWD), never read
	// from a file key.
	ProjectRoot string `koanf:"-"`

	Cache        bool     `koanf:"cache"`         // persist check results in .rlox/check.db
	Jobs         int      `koanf:"jobs"`          // parallel workers for rlox check
	History      string   `koanf:"history"`       // REPL history file
	GrammarPaths []string `koanf:"grammar_paths"` // extra dirs searched for grammar shared objects
}

// Default configuration values.
const (
	DefaultHistoryFile = ".rlox/history"
)
