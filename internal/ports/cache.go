// Package ports defines the interfaces (contracts) that adapters must
// implement. These are the boundaries of the hexagonal architecture: the
// app layer depends on these interfaces, and internal/adapters provides
// the implementations.
package ports

// Diagnostic is one problem found in a source file, normalized across
// pipeline stages so results can be cached and rendered uniformly.
type Diagnostic struct {
	Stage    string `json:"stage"` // "scan", "parse" or "resolve"
	Line     int    `json:"line"`
	Message  string `json:"message"`  // bare message, no position dressing
	Rendered string `json:"rendered"` // full display form
}

// CheckEntry is the cached outcome of checking one file.
type CheckEntry struct {
	Hash        string       `json:"hash"`       // hex SHA-256 of the file content
	CheckedAt   int64        `json:"checked_at"` // unix seconds
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// CheckCache persists per-file check results keyed by project-relative path.
//
// Entries carry the content hash they were computed from; callers compare
// hashes to decide whether a cached result is still valid. Implementations
// must be safe for concurrent use.
type CheckCache interface {
	// Load retrieves the entry for a file path.
	// Returns nil, nil if the path has never been checked.
	Load(path string) (*CheckEntry, error)

	// Save stores the entry for a file path, replacing any previous entry.
	// The write is transactional: a crash mid-write cannot corrupt
	// previously committed entries.
	Save(path string, entry *CheckEntry) error

	// Delete removes the entry for a file path.
	// Idempotent: deleting an unknown path is not an error.
	Delete(path string) error

	// Wipe removes every entry.
	Wipe() error

	// Close releases the underlying store.
	Close() error
}
