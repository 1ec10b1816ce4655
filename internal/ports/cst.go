package ports

// CSTNode is one node of a concrete syntax tree, decoupled from the parsing
// runtime that produced it. Lines and columns are 1-based.
type CSTNode struct {
	Kind      string
	Named     bool
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Text      string // source text for leaves; empty for interior nodes
	Children  []*CSTNode
}

// CST parses rlox source into concrete syntax trees using a compiled
// tree-sitter grammar.
type CST interface {
	// Parse returns the root of the concrete syntax tree for source.
	// Returns an error when no grammar is available to this build.
	Parse(source []byte) (*CSTNode, error)

	// Sexp returns the parse tree as a raw tree-sitter S-expression.
	Sexp(source []byte) (string, error)
}
