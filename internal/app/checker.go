package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rlox-lang/rlox/internal/ports"
)

// skipDirs lists directories to skip during file discovery (matches the
// fsnotify watcher).
var skipDirs = map[string]bool{
	".git":         true,
	".rlox":        true,
	".idea":        true,
	".vscode":      true,
	"node_modules": true,
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path        string // project-relative when under the root, absolute otherwise
	Diagnostics []ports.Diagnostic
	FromCache   bool
}

// Clean reports whether the file checked without diagnostics.
func (r FileResult) Clean() bool { return len(r.Diagnostics) == 0 }

// Checker runs the static pipeline over files and directories, with
// content-hash caching and bounded parallelism.
type Checker struct {
	cache ports.CheckCache // nil disables caching
	root  string           // project root anchoring cache keys
	jobs  int
}

// NewChecker returns a checker. cache may be nil to disable result reuse.
func NewChecker(cache ports.CheckCache, projectRoot string, jobs int) *Checker {
	if jobs < 1 {
		jobs = 1
	}
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		root = projectRoot
	}
	return &Checker{cache: cache, root: root, jobs: jobs}
}

// CheckPaths checks every .lox file reachable from the given paths.
// Directories are walked recursively; explicit file arguments are taken
// as-is. Results come back in path order regardless of worker scheduling.
func (c *Checker) CheckPaths(paths []string) ([]FileResult, error) {
	files, err := c.collect(paths)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, len(files))
	var g errgroup.Group
	g.SetLimit(c.jobs)
	for i, file := range files {
		g.Go(func() error {
			res, err := c.CheckFile(file)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CheckFile checks a single file, consulting the cache first. A cached
// entry is reused only when its content hash still matches.
func (c *Checker) CheckFile(path string) (FileResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("read %s: %w", path, err)
	}

	key := c.cacheKey(path)
	hash := contentHash(src)

	if c.cache != nil {
		entry, err := c.cache.Load(key)
		if err == nil && entry != nil && entry.Hash == hash {
			return FileResult{Path: key, Diagnostics: entry.Diagnostics, FromCache: true}, nil
		}
		// A load error or corrupt entry just means a fresh check.
	}

	diags := CheckSource(string(src))

	if c.cache != nil {
		entry := &ports.CheckEntry{Hash: hash, CheckedAt: time.Now().Unix(), Diagnostics: diags}
		// Saving is best-effort; the result stands either way.
		_ = c.cache.Save(key, entry)
	}

	return FileResult{Path: key, Diagnostics: diags}, nil
}

// Forget drops the cache entry for a file that no longer exists.
func (c *Checker) Forget(path string) {
	if c.cache == nil {
		return
	}
	_ = c.cache.Delete(c.cacheKey(path))
}

// Watch re-checks files as they change, until the watcher is stopped.
// Deleted files fall out of the cache. Outcomes are delivered to onResult
// from the watcher goroutine.
func (c *Checker) Watch(w ports.Watcher, onResult func(FileResult, error)) error {
	return w.Watch(c.root, func(path string) {
		if _, err := os.Stat(path); err != nil {
			c.Forget(path)
			return
		}
		onResult(c.CheckFile(path))
	})
}

// collect expands path arguments into a sorted list of .lox files.
func (c *Checker) collect(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		err = filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil // skip unreadable
			}
			if info.IsDir() {
				if skipDirs[info.Name()] && path != p {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == ".lox" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// cacheKey normalizes a file path into a stable cache key: project-relative
// with forward slashes when the file lives under the root, absolute
// otherwise.
func (c *Checker) cacheKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(c.root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return abs
	}
	return filepath.ToSlash(rel)
}

// contentHash returns the hex SHA-256 of a source buffer.
func contentHash(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}
