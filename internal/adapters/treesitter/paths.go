package treesitter

import (
	"os"
	"path/filepath"
)

// GlobalGrammarDir returns the user-wide grammar directory: ~/.rlox/grammars/
func GlobalGrammarDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rlox", "grammars")
}

// ProjectGrammarDir returns the project-local grammar directory:
// <root>/.rlox/grammars/
func ProjectGrammarDir(projectRoot string) string {
	return filepath.Join(projectRoot, ".rlox", "grammars")
}

// DefaultGrammarPaths returns the grammar search paths for a project,
// most specific first: project-local, then global. Extra directories from
// configuration go in front of these.
func DefaultGrammarPaths(projectRoot string) []string {
	paths := []string{ProjectGrammarDir(projectRoot)}
	if global := GlobalGrammarDir(); global != "" {
		paths = append(paths, global)
	}
	return paths
}
