package lints

import (
	"github.com/rubylint/rlint/internal/ruby"
	tt "github.com/rubylint/rlint/internal/types"
)

// DetectNestedMethodDefinition reports method definitions nested inside
// another method's body. In Ruby the inner def does not create a closure; it
// redefines the method on every call of the outer one.
func DetectNestedMethodDefinition(filename string, file *ruby.File, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	var walk func(n *ruby.Node, inMethod bool)
	walk = func(n *ruby.Node, inMethod bool) {
		if n == nil {
			return
		}
		if n.IsMethodDef() {
			if inMethod {
				issues = append(issues, tt.Issue{
					Rule:     "nested-method-definition",
					Category: "lint",
					Filename: filename,
					Message:  "method definition nested inside another method definition",
					Start:    n.Pos,
					End:      n.End,
					Severity: severity,
				})
			}
			inMethod = true
		}
		if n.Recv != nil {
			walk(n.Recv, inMethod)
		}
		for _, c := range n.Children {
			walk(c, inMethod)
		}
	}
	walk(file.Root, false)

	return issues, nil
}
