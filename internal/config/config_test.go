package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes an rlox.yaml into dir and returns its path.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "rlox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// chdir changes into dir for the duration of the test and restores the
// previous working directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	ResetConfig()

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.True(t, cfg.Cache)
	assert.GreaterOrEqual(t, cfg.Jobs, 1)
	assert.NotEmpty(t, cfg.ProjectRoot)
	assert.True(t, filepath.IsAbs(cfg.History), "history should be resolved to an absolute path")
	assert.True(t, strings.HasSuffix(cfg.History, filepath.Join(".rlox", "history")))
	assert.Empty(t, cfg.GrammarPaths)
	assert.Empty(t, FileUsed())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
cache: false
jobs: 2
history: custom/hist
grammar_paths:
  - grammars
  - /opt/rlox/grammars
`)
	ResetConfig()

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.False(t, cfg.Cache)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, dir, cfg.ProjectRoot, "explicit config file anchors the project root")
	assert.Equal(t, filepath.Join(dir, "custom", "hist"), cfg.History)
	// Relative grammar paths resolve against the project root, absolute stay put
	require.Len(t, cfg.GrammarPaths, 2)
	assert.Equal(t, filepath.Join(dir, "grammars"), cfg.GrammarPaths[0])
	assert.Equal(t, "/opt/rlox/grammars", cfg.GrammarPaths[1])
	assert.Equal(t, path, FileUsed())
}

func TestLoad_FindsConfigUpward(t *testing.T) {
	// rlox.yaml in a parent directory marks the project root even when
	// invoked from a nested directory.
	root := t.TempDir()
	writeConfig(t, root, "jobs: 3\n")
	nested := filepath.Join(root, "lib", "deep")
	require.NoError(t, os.MkdirAll(nested, 0755))
	chdir(t, nested)
	ResetConfig()

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Jobs)
	// Compare resolved paths: t.TempDir may go through symlinks on some
	// platforms and Getwd reports the resolved form.
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(cfg.ProjectRoot)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "jobs: 2\n")
	t.Setenv("RLOX_JOBS", "5")
	ResetConfig()

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Jobs)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("RLOX_JOBS", "5")
	chdir(t, t.TempDir())
	ResetConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("jobs", 0, "")
	require.NoError(t, flags.Set("jobs", "7"))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Jobs)
}

func TestLoad_UnchangedFlagsIgnored(t *testing.T) {
	// A flag that was defined but never set must not clobber env/file
	// values with its zero default.
	t.Setenv("RLOX_JOBS", "5")
	chdir(t, t.TempDir())
	ResetConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("jobs", 0, "")

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Jobs)
}

func TestLoad_NoCacheFlag(t *testing.T) {
	// --no-cache maps onto the positive "cache" key, inverted.
	chdir(t, t.TempDir())
	ResetConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("no-cache", false, "")
	require.NoError(t, flags.Set("no-cache", "true"))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.False(t, cfg.Cache)
}

func TestLoad_EnvGrammarPaths(t *testing.T) {
	t.Setenv("RLOX_GRAMMAR_PATHS", "/a/grammars,/b/grammars")
	chdir(t, t.TempDir())
	ResetConfig()

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"/a/grammars", "/b/grammars"}, cfg.GrammarPaths)
}

func TestLoad_AbsoluteHistoryUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "history: /var/tmp/rlox_history\n")
	ResetConfig()

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "/var/tmp/rlox_history", cfg.History)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	ResetConfig()

	_, err := Load("/nonexistent/rlox.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_JobsClamped(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "jobs: 0\n")
	ResetConfig()

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Jobs)
}
