package formatter

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubylint/rlint/internal"
	"github.com/rubylint/rlint/internal/ruby"
	tt "github.com/rubylint/rlint/internal/types"
)

func init() {
	color.NoColor = true
}

func TestGenerateFormattedIssueGeneral(t *testing.T) {
	t.Parallel()

	code := &internal.SourceCode{Lines: []string{
		"def outer",
		"  def inner",
		"  end",
		"end",
	}}
	issue := tt.Issue{
		Rule:     "nested-method-definition",
		Filename: "sample.rb",
		Message:  "method definition nested inside another method definition",
		Start:    ruby.Position{Line: 2, Column: 3},
		End:      ruby.Position{Line: 3, Column: 6},
		Severity: tt.SeverityWarning,
	}

	output := GenerateFormattedIssue([]tt.Issue{issue}, code)

	assert.Contains(t, output, "warning: nested-method-definition")
	assert.Contains(t, output, "sample.rb:2:3")
	assert.Contains(t, output, "def inner")
	assert.Contains(t, output, issue.Message)
}

func TestGenerateFormattedIssuePredicateReturnNil(t *testing.T) {
	t.Parallel()

	code := &internal.SourceCode{Lines: []string{
		"def foo?",
		"  nil",
		"end",
	}}
	issue := tt.Issue{
		Rule:       "predicate-return-nil",
		Filename:   "sample.rb",
		Message:    "use `false` instead of `nil` in predicate methods",
		Suggestion: "false",
		Start:      ruby.Position{Line: 2, Column: 3},
		End:        ruby.Position{Line: 2, Column: 6},
		Severity:   tt.SeverityWarning,
	}

	output := GenerateFormattedIssue([]tt.Issue{issue}, code)

	assert.Contains(t, output, "warning: predicate-return-nil")
	assert.Contains(t, output, "sample.rb:2:3")
	assert.Contains(t, output, "Suggestion:")
	assert.Contains(t, output, "false")
	assert.Contains(t, output, "Note: ")
	assert.Contains(t, output, "autocorrection is unsafe")
}

func TestGenerateFormattedIssueUnderline(t *testing.T) {
	t.Parallel()

	code := &internal.SourceCode{Lines: []string{
		"def foo?",
		"  nil",
		"end",
	}}
	issue := tt.Issue{
		Rule:     "predicate-return-nil",
		Filename: "sample.rb",
		Message:  "use `false` instead of `nil` in predicate methods",
		Start:    ruby.Position{Line: 2, Column: 3},
		End:      ruby.Position{Line: 2, Column: 6},
		Severity: tt.SeverityError,
	}

	output := GenerateFormattedIssue([]tt.Issue{issue}, code)

	require.Contains(t, output, "error: predicate-return-nil")
	assert.Contains(t, output, "~~~")
}

func TestGenerateFormattedIssueMultiple(t *testing.T) {
	t.Parallel()

	code := &internal.SourceCode{Lines: []string{
		"def a?",
		"  nil",
		"end",
		"def b?",
		"  nil",
		"end",
	}}
	issues := []tt.Issue{
		{
			Rule:     "predicate-return-nil",
			Filename: "sample.rb",
			Message:  "use `false` instead of `nil` in predicate methods",
			Start:    ruby.Position{Line: 2, Column: 3},
			End:      ruby.Position{Line: 2, Column: 6},
			Severity: tt.SeverityWarning,
		},
		{
			Rule:     "predicate-return-nil",
			Filename: "sample.rb",
			Message:  "use `false` instead of `nil` in predicate methods",
			Start:    ruby.Position{Line: 5, Column: 3},
			End:      ruby.Position{Line: 5, Column: 6},
			Severity: tt.SeverityWarning,
		},
	}

	output := GenerateFormattedIssue(issues, code)
	assert.Equal(t, 2, strings.Count(output, "warning: predicate-return-nil"))
	assert.Contains(t, output, "sample.rb:2:3")
	assert.Contains(t, output, "sample.rb:5:3")
}

func TestGetCodeSnippet(t *testing.T) {
	t.Parallel()

	code := &internal.SourceCode{Lines: []string{
		"def foo?",
		"  nil",
		"end",
	}}
	issue := tt.Issue{
		Start: ruby.Position{Line: 1},
		End:   ruby.Position{Line: 2},
	}
	assert.Equal(t, "def foo?\n  nil", GetCodeSnippet(issue, code))

	// out-of-range lines are clamped
	issue = tt.Issue{Start: ruby.Position{Line: 0}, End: ruby.Position{Line: 99}}
	assert.Equal(t, "def foo?\n  nil\nend", GetCodeSnippet(issue, code))
}

func TestFindCommonIndent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    []string
		expected string
	}{
		{name: "no indent", lines: []string{"a", "b"}, expected: ""},
		{name: "uniform spaces", lines: []string{"  a", "  b"}, expected: "  "},
		{name: "mixed depth", lines: []string{"    a", "  b"}, expected: "  "},
		{name: "empty lines skipped", lines: []string{"  a", "", "  b"}, expected: "  "},
		{name: "tabs", lines: []string{"\ta", "\tb"}, expected: "\t"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, findCommonIndent(tc.lines))
		})
	}
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, calculateVisualColumn("abc", 1))
	assert.Equal(t, 2, calculateVisualColumn("abc", 3))
	assert.Equal(t, tabWidth, calculateVisualColumn("\tabc", 2))
	assert.Equal(t, 0, calculateVisualColumn("abc", -1))
}
