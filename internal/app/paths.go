package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .rlox/ project directory.
// All fields are pre-computed strings.
type Paths struct {
	Root    string // .rlox/
	CheckDB string // .rlox/check.db
	History string // .rlox/history

	GrammarsDir string // .rlox/grammars/
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".rlox")
	return &Paths{
		Root:    root,
		CheckDB: filepath.Join(root, "check.db"),
		History: filepath.Join(root, "history"),

		GrammarsDir: filepath.Join(root, "grammars"),
	}
}

// EnsureDirs creates all subdirectories under .rlox/. Idempotent.
func (p *Paths) EnsureDirs() error {
	dirs := []string{
		p.Root,
		p.GrammarsDir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}
