package lints

import (
	"sort"

	"github.com/rubylint/rlint/internal/allowlist"
	"github.com/rubylint/rlint/internal/ruby"
	tt "github.com/rubylint/rlint/internal/types"
)

const (
	predicateReturnNilRule    = "predicate-return-nil"
	predicateReturnNilMessage = "use `false` instead of `nil` in predicate methods"
)

// DetectPredicateReturnNil reports code paths in predicate methods (methods
// whose name ends in `?`) that produce nil instead of an explicit boolean:
// bare returns, `return nil`, and nil literals in the tail position of the
// method body. Each issue carries an unsafe autocorrection to `false`, since
// nil and false are not interchangeable for callers that check for nil
// explicitly.
func DetectPredicateReturnNil(filename string, file *ruby.File, allow *allowlist.AllowList, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue
	seen := make(map[int]bool)

	ruby.Inspect(file.Root, func(n *ruby.Node) bool {
		if n.IsMethodDef() {
			issues = append(issues, checkPredicateMethod(filename, n, allow, severity, seen)...)
		}
		return true
	})

	// the two matchers report independently; offenses follow source order
	sort.Slice(issues, func(i, j int) bool {
		return issues[i].Start.Offset < issues[j].Start.Offset
	})

	return issues, nil
}

func checkPredicateMethod(
	filename string,
	def *ruby.Node,
	allow *allowlist.AllowList,
	severity tt.Severity,
	seen map[int]bool,
) []tt.Issue {
	if !isPredicateName(def.Name) {
		return nil
	}
	if allow.IsAllowedMethod(def.Name) || allow.MatchesAllowedPattern(def.Name) {
		return nil
	}
	body := def.Body()
	if body == nil {
		return nil
	}

	var issues []tt.Issue

	// explicit `return` / `return nil` anywhere in the body. The search
	// deliberately crosses into nested method definitions; the nested def
	// is checked on its own as well, so identical offenses are deduped by
	// source offset.
	ruby.Inspect(body, func(n *ruby.Node) bool {
		if returnsNil(n) && !seen[n.Pos.Offset] {
			seen[n.Pos.Offset] = true
			issues = append(issues, nilIssue(filename, n, "return false", severity))
		}
		return true
	})

	// nil literals whose value would be the method's implicit return value
	for _, n := range terminalNils(body) {
		if seen[n.Pos.Offset] {
			continue
		}
		seen[n.Pos.Offset] = true
		issues = append(issues, nilIssue(filename, n, "false", severity))
	}

	return issues
}

// isPredicateName reports whether the method name follows the boolean-result
// naming convention.
func isPredicateName(name string) bool {
	return len(name) > 1 && name[len(name)-1] == '?'
}

// returnsNil matches `return` with no value and `return nil`.
func returnsNil(n *ruby.Node) bool {
	if n.Kind != ruby.Return {
		return false
	}
	switch len(n.Children) {
	case 0:
		return true
	case 1:
		return n.Children[0].Kind == ruby.NilLit
	default:
		return false
	}
}

// terminalNils returns the nil literals in tail position of body: the value
// the method would implicitly return. It recurses through sequence tails,
// rescue-protected bodies and every rescue branch, and the protected body of
// an ensure. An ensure's cleanup body is never analyzed since its value is
// discarded. Any other node kind is treated as not statically analyzable and
// contributes nothing.
func terminalNils(body *ruby.Node) []*ruby.Node {
	if body == nil {
		return nil
	}
	switch body.Kind {
	case ruby.NilLit:
		return []*ruby.Node{body}
	case ruby.Begin:
		return terminalNils(body.LastChild())
	case ruby.Rescue:
		var nils []*ruby.Node
		if len(body.Children) > 0 {
			nils = append(nils, terminalNils(body.Children[0])...)
		}
		for _, branch := range body.Children[1:] {
			if branch.Kind == ruby.RescueBranch && len(branch.Children) == 2 {
				nils = append(nils, terminalNils(branch.Children[1])...)
			}
		}
		return nils
	case ruby.Ensure:
		if len(body.Children) > 0 {
			return terminalNils(body.Children[0])
		}
		return nil
	default:
		return nil
	}
}

func nilIssue(filename string, n *ruby.Node, replacement string, severity tt.Severity) tt.Issue {
	return tt.Issue{
		Rule:       predicateReturnNilRule,
		Category:   "style",
		Filename:   filename,
		Message:    predicateReturnNilMessage,
		Suggestion: replacement,
		Start:      n.Pos,
		End:        n.End,
		Severity:   severity,
		Confidence: 1.0,
		Edit: &tt.Edit{
			StartOffset: n.Pos.Offset,
			EndOffset:   n.End.Offset,
			NewText:     replacement,
		},
		Unsafe: true,
	}
}
