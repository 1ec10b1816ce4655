// Package lang provides the language descriptor for rlox: a process-wide,
// immutable handle describing the grammar, with its name, version, keyword
// inventory, and node-kind inventory. The scanner classifies identifiers
// through it, the parser stamps node kinds from it, and tools resolve
// kind names against it.
//
// The descriptor is a singleton. Get never fails, never returns nil, and
// always returns the same pointer; it is safe to call from any number of
// goroutines without synchronization.
package lang

import (
	"sort"

	"github.com/rlox-lang/rlox/token"
)

// Language is an opaque grammar descriptor. Its layout is not part of the
// API: hosts hold the pointer, compare it by identity, and interact with it
// only through its methods or by handing it to scanner.New and parser.New.
type Language struct {
	name     string
	version  string
	keywords map[string]token.Type
	symbols  []symbolInfo
}

// rlox is built during package initialization, which the runtime completes
// before any goroutine can call Get. Every call observes the same fully
// constructed descriptor.
var rlox = &Language{
	name:     "rlox",
	version:  "0.1.0",
	keywords: keywordTable(),
	symbols:  symbolTable[:],
}

// Get returns the descriptor for the rlox grammar. The returned pointer is
// never nil and is identical across all calls in a process.
func Get() *Language {
	return rlox
}

// Name returns the grammar name.
func (l *Language) Name() string { return l.name }

// Version returns the grammar version.
func (l *Language) Version() string { return l.version }

// LookupKeyword reports whether ident is a reserved word and, if so, its
// token type.
func (l *Language) LookupKeyword(ident string) (token.Type, bool) {
	t, ok := l.keywords[ident]
	return t, ok
}

// Keywords returns the reserved words in sorted order. The slice is a copy;
// mutating it does not affect the descriptor.
func (l *Language) Keywords() []string {
	words := make([]string, 0, len(l.keywords))
	for w := range l.keywords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// SymbolCount returns the number of symbols in the grammar, terminals and
// node kinds together.
func (l *Language) SymbolCount() int { return len(l.symbols) }

// SymbolName returns the canonical name of a symbol, or "" if the id is out
// of range.
func (l *Language) SymbolName(s Symbol) string {
	if int(s) >= len(l.symbols) {
		return ""
	}
	return l.symbols[s].name
}

// SymbolIsNamed reports whether the symbol appears as a named node in parse
// output. Punctuation and keyword terminals are anonymous.
func (l *Language) SymbolIsNamed(s Symbol) bool {
	if int(s) >= len(l.symbols) {
		return false
	}
	return l.symbols[s].named
}

func keywordTable() map[string]token.Type {
	kws := make(map[string]token.Type, int(token.While-token.And)+1)
	for t := token.And; t <= token.While; t++ {
		kws[t.String()] = t
	}
	return kws
}
