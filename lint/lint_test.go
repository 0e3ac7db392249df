package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/rubylint/rlint/internal/types"
)

func writeRubyFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestNewWithDefaultConfiguration(t *testing.T) {
	t.Parallel()

	engine, err := New(".", nil, "")
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("def foo?\n  nil\nend\n"))
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestNewWithConfigurationFile(t *testing.T) {
	t.Parallel()

	cfg := writeRubyFile(t, t.TempDir(), ".rlint.yaml", `
name: rlint
rules:
  predicate-return-nil:
    severity: OFF
`)
	engine, err := New(".", nil, cfg)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("def foo?\n  nil\nend\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestNewWithAllowedMethods(t *testing.T) {
	t.Parallel()

	cfg := writeRubyFile(t, t.TempDir(), ".rlint.yaml", `
name: rlint
rules:
  predicate-return-nil:
    severity: WARNING
    allowed_methods:
      - foo?
`)
	engine, err := New(".", nil, cfg)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("def foo?\n  nil\nend\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = engine.RunSource([]byte("def bar?\n  nil\nend\n"))
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestNewConfigurationWithoutSeverity(t *testing.T) {
	t.Parallel()

	cfg := writeRubyFile(t, t.TempDir(), ".rlint.yaml", `
name: rlint
rules:
  predicate-return-nil:
    allowed_methods:
      - bar?
`)
	engine, err := New(".", nil, cfg)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte("def foo?\n  nil\nend\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
}

func TestNewWithMissingConfigurationFile(t *testing.T) {
	t.Parallel()

	_, err := New(".", nil, filepath.Join(t.TempDir(), "no-such-file.yaml"))
	assert.Error(t, err)
}

func TestProcessFile(t *testing.T) {
	t.Parallel()

	path := writeRubyFile(t, t.TempDir(), "sample.rb", "def foo?\n  nil\nend\n")

	engine, err := New(".", nil, "")
	require.NoError(t, err)

	issues, err := ProcessFile(engine, path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, path, issues[0].Filename)
}

func TestProcessPathDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRubyFile(t, dir, "a.rb", "def a?\n  nil\nend\n")
	writeRubyFile(t, dir, "b.rb", "def b?\n  nil\nend\n")
	writeRubyFile(t, dir, "notes.txt", "not ruby")

	engine, err := New(".", nil, "")
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, dir, ProcessFile)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestProcessFilesMultiplePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeRubyFile(t, dir, "a.rb", "def a?\n  nil\nend\n")
	b := writeRubyFile(t, dir, "b.rb", "def b?\n  true\nend\n")

	engine, err := New(".", nil, "")
	require.NoError(t, err)

	issues, err := ProcessFiles(context.Background(), nil, engine, []string{a, b}, ProcessFile)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, a, issues[0].Filename)
}

func TestProcessSources(t *testing.T) {
	t.Parallel()

	engine, err := New(".", nil, "")
	require.NoError(t, err)

	sources := [][]byte{
		[]byte("def a?\n  nil\nend\n"),
		[]byte("def b?\n  false\nend\n"),
	}
	issues, err := ProcessSources(context.Background(), nil, engine, sources, ProcessSource)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestHasDesiredExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, hasDesiredExtension("foo.rb"))
	assert.True(t, hasDesiredExtension(filepath.Join("a", "b", "c.rb")))
	assert.False(t, hasDesiredExtension("foo.go"))
	assert.False(t, hasDesiredExtension("foo"))
}

func TestParseConfigurationFile(t *testing.T) {
	t.Parallel()

	cfg := writeRubyFile(t, t.TempDir(), ".rlint.yaml", `
name: rlint
rules:
  predicate-return-nil:
    severity: ERROR
    allowed_patterns:
      - "^has_"
  nested-method-definition:
    severity: OFF
`)
	config, err := parseConfigurationFile(cfg)
	require.NoError(t, err)
	assert.Equal(t, "rlint", config.Name)

	rule := config.Rules["predicate-return-nil"]
	assert.Equal(t, tt.SeverityError, rule.Severity)
	assert.Equal(t, []string{"^has_"}, rule.AllowedPatterns)
	assert.Equal(t, tt.SeverityOff, config.Rules["nested-method-definition"].Severity)
}
