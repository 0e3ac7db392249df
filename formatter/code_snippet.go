package formatter

import (
	"strings"

	"github.com/rubylint/rlint/internal"
	tt "github.com/rubylint/rlint/internal/types"
)

func GetCodeSnippet(issue tt.Issue, snippet *internal.SourceCode) string {
	startLine := issue.Start.Line - 1
	endLine := issue.End.Line
	if startLine < 0 {
		startLine = 0
	}
	if endLine > len(snippet.Lines) {
		endLine = len(snippet.Lines)
	}
	return strings.Join(snippet.Lines[startLine:endLine], "\n")
}
