package formatter

// PredicateReturnNilFormatter renders predicate-return-nil issues. It is the
// general layout plus a fixed note reminding that the autocorrection is
// unsafe.
type PredicateReturnNilFormatter struct{}

func (f *PredicateReturnNilFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}

{{- if .Suggestion }}
{{suggestion .Suggestion .Padding .MaxLineNumWidth .StartLine}}
{{- end }}
{{note "autocorrection is unsafe: nil and false behave differently for callers that check for nil"}}
`
}
