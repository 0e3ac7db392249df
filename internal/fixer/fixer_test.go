package fixer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubylint/rlint/internal/ruby"
	tt "github.com/rubylint/rlint/internal/types"
)

func editIssue(start, end int, newText string, opts ...func(*tt.Issue)) tt.Issue {
	issue := tt.Issue{
		Rule:       "predicate-return-nil",
		Message:    "use `false` instead of `nil` in predicate methods",
		Suggestion: newText,
		Start:      ruby.Position{Offset: start},
		End:        ruby.Position{Offset: end},
		Confidence: 1.0,
		Edit:       &tt.Edit{StartOffset: start, EndOffset: end, NewText: newText},
	}
	for _, opt := range opts {
		opt(&issue)
	}
	return issue
}

func unsafe(issue *tt.Issue) { issue.Unsafe = true }

func confidence(c float64) func(*tt.Issue) {
	return func(issue *tt.Issue) { issue.Confidence = c }
}

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	src := []byte("def foo?\n  nil\nend\n")
	fixed, err := ApplyEdits(src, []tt.Issue{editIssue(11, 14, "false")})
	require.NoError(t, err)
	assert.Equal(t, "def foo?\n  false\nend\n", string(fixed))
}

func TestApplyEditsMultiple(t *testing.T) {
	t.Parallel()

	src := []byte("return\nnil\n")
	issues := []tt.Issue{
		editIssue(0, 6, "return false"),
		editIssue(7, 10, "false"),
	}
	fixed, err := ApplyEdits(src, issues)
	require.NoError(t, err)
	assert.Equal(t, "return false\nfalse\n", string(fixed))
}

func TestApplyEditsOverlap(t *testing.T) {
	t.Parallel()

	src := []byte("return nil\n")
	issues := []tt.Issue{
		editIssue(0, 10, "return false"),
		editIssue(7, 10, "false"),
	}
	_, err := ApplyEdits(src, issues)
	assert.ErrorContains(t, err, "overlapping")
}

func TestApplyEditsOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := ApplyEdits([]byte("nil"), []tt.Issue{editIssue(0, 10, "false")})
	assert.ErrorContains(t, err, "out of range")
}

func TestFixerUnsafeGating(t *testing.T) {
	t.Parallel()

	f := New(false, 0.8)
	issues := []tt.Issue{editIssue(0, 3, "false", unsafe)}

	assert.Empty(t, f.applicableIssues(issues))

	f.ApplyUnsafe = true
	assert.Len(t, f.applicableIssues(issues), 1)
}

func TestFixerConfidenceThreshold(t *testing.T) {
	t.Parallel()

	f := New(false, 0.8)
	issues := []tt.Issue{
		editIssue(0, 3, "false", confidence(0.5)),
		editIssue(4, 7, "false", confidence(0.9)),
	}
	applicable := f.applicableIssues(issues)
	require.Len(t, applicable, 1)
	assert.Equal(t, 4, applicable[0].Edit.StartOffset)
}

func TestFixerSkipsIssuesWithoutEdits(t *testing.T) {
	t.Parallel()

	f := New(false, 0)
	issue := tt.Issue{Rule: "predicate-return-nil", Confidence: 1.0}
	assert.Empty(t, f.applicableIssues([]tt.Issue{issue}))
}

func TestFixerRewritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.rb")
	require.NoError(t, os.WriteFile(path, []byte("def foo?\n  nil\nend\n"), 0o644))

	f := New(false, 0.5)
	f.ApplyUnsafe = true
	require.NoError(t, f.Fix(path, []tt.Issue{editIssue(11, 14, "false", unsafe)}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "def foo?\n  false\nend\n", string(content))
}

func TestFixerDryRunLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	original := "def foo?\n  nil\nend\n"
	path := filepath.Join(t.TempDir(), "sample.rb")
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	f := New(true, 0)
	require.NoError(t, f.Fix(path, []tt.Issue{editIssue(11, 14, "false")}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}
