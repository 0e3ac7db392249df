package fixer

import (
	"fmt"
	"os"
	"sort"

	tt "github.com/rubylint/rlint/internal/types"
)

// Fixer applies the edits attached to issues. Unsafe edits are skipped
// unless ApplyUnsafe is set, since they can change observable behavior.
type Fixer struct {
	DryRun        bool
	ApplyUnsafe   bool
	MinConfidence float64 // threshold for fixing issues
}

func New(dryRun bool, threshold float64) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
	}
}

// Fix rewrites filename with every applicable edit from issues. It returns
// an error if any two edits overlap: that indicates a bug in a rule, and
// applying them could corrupt the file.
func (f *Fixer) Fix(filename string, issues []tt.Issue) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	applicable := f.applicableIssues(issues)
	if len(applicable) == 0 {
		return nil
	}

	if f.DryRun {
		for _, issue := range applicable {
			fmt.Printf("Would fix issue in %s at line %d: %s\n", filename, issue.Start.Line, issue.Message)
			fmt.Printf("Suggestion:\n%s\n", issue.Suggestion)
		}
		return nil
	}

	fixed, err := ApplyEdits(content, applicable)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, fixed, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Fixed %d issue(s) in %s\n", len(applicable), filename)
	return nil
}

func (f *Fixer) applicableIssues(issues []tt.Issue) []tt.Issue {
	var out []tt.Issue
	for _, issue := range issues {
		if issue.Edit == nil {
			continue
		}
		if issue.Confidence < f.MinConfidence {
			continue
		}
		if issue.Unsafe && !f.ApplyUnsafe {
			continue
		}
		out = append(out, issue)
	}
	return out
}

// ApplyEdits returns content with each issue's edit applied. Edits are
// applied from the end of the buffer backwards so earlier offsets stay
// valid. Overlapping or out-of-range edits are a hard error.
func ApplyEdits(content []byte, issues []tt.Issue) ([]byte, error) {
	edits := make([]tt.Edit, 0, len(issues))
	for _, issue := range issues {
		if issue.Edit != nil {
			edits = append(edits, *issue.Edit)
		}
	}

	sort.Slice(edits, func(i, j int) bool {
		return edits[i].StartOffset > edits[j].StartOffset
	})

	for i, e := range edits {
		if e.StartOffset < 0 || e.EndOffset > len(content) || e.StartOffset > e.EndOffset {
			return nil, fmt.Errorf("edit out of range: [%d, %d) in %d bytes", e.StartOffset, e.EndOffset, len(content))
		}
		if i > 0 && edits[i-1].StartOffset < e.EndOffset {
			return nil, fmt.Errorf("overlapping edits at offsets %d and %d", e.StartOffset, edits[i-1].StartOffset)
		}
	}

	for _, e := range edits {
		var buf []byte
		buf = append(buf, content[:e.StartOffset]...)
		buf = append(buf, e.NewText...)
		buf = append(buf, content[e.EndOffset:]...)
		content = buf
	}
	return content, nil
}
