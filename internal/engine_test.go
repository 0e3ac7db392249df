package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/rubylint/rlint/internal/types"
)

func newTestEngine(t *testing.T, rules map[string]tt.ConfigRule) *Engine {
	t.Helper()
	engine, err := NewEngine(".", nil, rules)
	require.NoError(t, err)
	return engine
}

func TestEngineRunSource(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	issues, err := engine.RunSource([]byte(`
def foo?
  nil
end
`))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "predicate-return-nil", issues[0].Rule)
	assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
}

func TestEngineRunFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.rb")
	require.NoError(t, os.WriteFile(path, []byte("def foo?\n  nil\nend\n"), 0o644))

	engine := newTestEngine(t, nil)
	issues, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, path, issues[0].Filename)
}

func TestEngineSeverityConfiguration(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]tt.ConfigRule{
		"predicate-return-nil": {Severity: tt.SeverityError},
	})
	issues, err := engine.RunSource([]byte("def foo?\n  nil\nend\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
}

func TestEngineUnsetSeverityKeepsRuleDefault(t *testing.T) {
	t.Parallel()

	// configuring only the allow list must not touch the severity
	engine := newTestEngine(t, map[string]tt.ConfigRule{
		"predicate-return-nil": {AllowedMethods: []string{"bar?"}},
	})
	issues, err := engine.RunSource([]byte("def foo?\n  nil\nend\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
}

func TestEngineSeverityOffDisablesRule(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]tt.ConfigRule{
		"predicate-return-nil": {Severity: tt.SeverityOff},
	})
	issues, err := engine.RunSource([]byte("def foo?\n  nil\nend\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineAllowedMethodsConfiguration(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]tt.ConfigRule{
		"predicate-return-nil": {
			Severity:       tt.SeverityWarning,
			AllowedMethods: []string{"foo?"},
		},
	})
	issues, err := engine.RunSource([]byte("def foo?\n  nil\nend\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineInvalidAllowedPattern(t *testing.T) {
	t.Parallel()

	_, err := NewEngine(".", nil, map[string]tt.ConfigRule{
		"predicate-return-nil": {
			Severity:        tt.SeverityWarning,
			AllowedPatterns: []string{`^valid(`},
		},
	})
	assert.Error(t, err)
}

func TestEngineUnknownRuleIgnored(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, map[string]tt.ConfigRule{
		"no-such-rule": {Severity: tt.SeverityError},
	})
	issues, err := engine.RunSource([]byte("def foo?\n  nil\nend\n"))
	require.NoError(t, err)
	assert.Len(t, issues, 1)
}

func TestEngineIgnoreRule(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	engine.IgnoreRule("predicate-return-nil")

	issues, err := engine.RunSource([]byte("def foo?\n  nil\nend\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineIgnorePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "vendor", "sample.rb")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("def foo?\n  nil\nend\n"), 0o644))

	engine := newTestEngine(t, nil)
	engine.IgnorePath(filepath.Join(dir, "vendor"))

	issues, err := engine.Run(path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineNolintSuppression(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	issues, err := engine.RunSource([]byte(`def foo?
  nil # rlint:disable:predicate-return-nil
end
`))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineDocumentOrder(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	issues, err := engine.RunSource([]byte(`
def a?
  def b?
    nil
  end
end
`))
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "nested-method-definition", issues[0].Rule)
	assert.Equal(t, "predicate-return-nil", issues[1].Rule)
	assert.LessOrEqual(t, issues[0].Start.Offset, issues[1].Start.Offset)
}

func TestEngineParseErrorPropagates(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)
	_, err := engine.RunSource([]byte("def foo?\n  nil\n"))
	assert.Error(t, err)
}
