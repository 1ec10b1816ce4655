//go:build cgo

package treesitter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// DynamicLoader loads tree-sitter grammars from shared libraries (.so on Linux,
// .dylib on macOS) using purego. It searches configured paths for grammar files
// and caches loaded languages for reuse.
type DynamicLoader struct {
	searchPaths []string
	mu          sync.Mutex
	loaded      map[string]*tree_sitter.Language
	handles     []uintptr
}

// NewDynamicLoader creates a loader that searches the given paths for grammar
// shared libraries. Paths are searched in order; first match wins.
func NewDynamicLoader(searchPaths []string) *DynamicLoader {
	return &DynamicLoader{
		searchPaths: searchPaths,
		loaded:      make(map[string]*tree_sitter.Language),
	}
}

// LibExtension returns the shared library extension for the current platform.
func LibExtension() string {
	if runtime.GOOS == "darwin" {
		return ".dylib"
	}
	return ".so"
}

// grammarAliases maps a language to grammars that can stand in for it.
// rlox is a Lox dialect: a stock lox grammar parses it, so a library
// installed as lox.so exporting tree_sitter_lox satisfies a request
// for rlox.
var grammarAliases = map[string][]string{
	"rlox": {"lox"},
}

// LoadCandidates returns the grammar names to try for a language, most
// specific first.
func LoadCandidates(lang string) []string {
	return append([]string{lang}, grammarAliases[lang]...)
}

// CSymbolName returns the C function name for a language's tree-sitter
// grammar, following the convention tree_sitter_{name}.
func CSymbolName(lang string) string {
	return "tree_sitter_" + strings.ReplaceAll(lang, "-", "_")
}

// LoadGrammar loads a grammar from a shared library for the given language.
// Results are cached; subsequent calls for the same language return the cached
// value. The language's aliases are tried when no library matches its own name.
func (dl *DynamicLoader) LoadGrammar(lang string) (*tree_sitter.Language, error) {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if cached, ok := dl.loaded[lang]; ok {
		return cached, nil
	}

	soPath := dl.findLibrary(lang)
	if soPath == "" {
		return nil, fmt.Errorf("grammar %q: shared library not found in search paths", lang)
	}

	handle, err := purego.Dlopen(soPath, purego.RTLD_LAZY)
	if err != nil {
		return nil, fmt.Errorf("grammar %q: dlopen %s: %w", lang, soPath, err)
	}
	dl.handles = append(dl.handles, handle)

	// The library may export the entry point under the requested name or
	// under an alias (a lox grammar renamed to rlox.so still exports
	// tree_sitter_lox). Probe before registering.
	var symName string
	var tried []string
	for _, name := range LoadCandidates(lang) {
		sym := CSymbolName(name)
		if _, err := purego.Dlsym(handle, sym); err == nil {
			symName = sym
			break
		}
		tried = append(tried, sym)
	}
	if symName == "" {
		return nil, fmt.Errorf("grammar %q: none of %s exported by %s",
			lang, strings.Join(tried, ", "), soPath)
	}

	var langFunc func() uintptr
	purego.RegisterLibFunc(&langFunc, handle, symName)

	ptr := langFunc()
	if ptr == 0 {
		return nil, fmt.Errorf("grammar %q: %s() returned null", lang, symName)
	}

	// Convert uintptr from C (purego) to unsafe.Pointer without triggering go
	// vet's unsafeptr check. Safe because ptr is a static TSLanguage* from the
	// grammar .so, not a Go-managed pointer that could be moved by GC.
	language := tree_sitter.NewLanguage(*(*unsafe.Pointer)(unsafe.Pointer(&ptr)))
	dl.loaded[lang] = language
	return language, nil
}

// findLibrary returns the first shared library path matching the language or
// one of its aliases.
func (dl *DynamicLoader) findLibrary(lang string) string {
	ext := LibExtension()
	for _, name := range LoadCandidates(lang) {
		for _, dir := range dl.searchPaths {
			candidate := filepath.Join(dir, name+ext)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}

// GrammarPath returns the path to the shared library that would be loaded for
// a language, or "" if none is installed.
func (dl *DynamicLoader) GrammarPath(lang string) string {
	return dl.findLibrary(lang)
}

// InstalledGrammars returns language names found as shared libraries in the
// search paths.
func (dl *DynamicLoader) InstalledGrammars() []string {
	ext := LibExtension()
	seen := make(map[string]bool)
	var names []string
	for _, dir := range dl.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if strings.HasSuffix(name, ext) {
				lang := strings.TrimSuffix(name, ext)
				if !seen[lang] {
					seen[lang] = true
					names = append(names, lang)
				}
			}
		}
	}
	return names
}

// Close releases all dlopen handles.
func (dl *DynamicLoader) Close() {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.handles = nil
	dl.loaded = make(map[string]*tree_sitter.Language)
}

// SearchPaths returns the configured search paths.
func (dl *DynamicLoader) SearchPaths() []string {
	return dl.searchPaths
}
