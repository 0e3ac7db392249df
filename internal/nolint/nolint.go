// Package nolint interprets `# rlint:disable` comments and decides which
// issues they suppress.
package nolint

import (
	"math"
	"strings"

	"github.com/rubylint/rlint/internal/ruby"
)

const directive = "rlint:disable"

// Manager holds the suppression scopes of one file.
type Manager struct {
	scopes []scope
}

// scope is a line range in which a set of rules is disabled. An empty rule
// set disables every rule.
type scope struct {
	rules     map[string]struct{}
	startLine int
	endLine   int
}

// ParseComments collects the rlint:disable directives of a parsed file.
// A directive before the first statement applies to the whole file; any
// other directive applies to its own line and the line below it, so it can
// be placed inline or on the line preceding the statement.
func ParseComments(file *ruby.File) *Manager {
	m := &Manager{}

	firstStmtLine := math.MaxInt
	if first := firstStatement(file.Root); first != nil {
		firstStmtLine = first.Pos.Line
	}

	for _, c := range file.Comments {
		rules, ok := parseDirective(c.Text)
		if !ok {
			continue
		}
		s := scope{rules: rules, startLine: c.Pos.Line, endLine: c.Pos.Line + 1}
		if c.Pos.Line < firstStmtLine {
			s.startLine = 1
			s.endLine = math.MaxInt
		}
		m.scopes = append(m.scopes, s)
	}

	return m
}

func firstStatement(root *ruby.Node) *ruby.Node {
	if root == nil || len(root.Children) == 0 {
		return nil
	}
	return root.Children[0]
}

// parseDirective parses a comment body (without the leading '#') and returns
// the disabled rule names. ok is false when the comment is not a directive.
func parseDirective(text string) (map[string]struct{}, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, directive) {
		return nil, false
	}
	rest := text[len(directive):]

	rules := make(map[string]struct{})
	if rest == "" {
		return rules, true
	}
	if rest[0] != ':' {
		return nil, false
	}
	for _, name := range strings.Split(rest[1:], ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			rules[name] = struct{}{}
		}
	}
	if len(rules) == 0 {
		return nil, false
	}
	return rules, true
}

// IsNolint reports whether an issue of the given rule at the given line is
// suppressed.
func (m *Manager) IsNolint(line int, ruleName string) bool {
	if m == nil {
		return false
	}
	for _, s := range m.scopes {
		if line < s.startLine || line > s.endLine {
			continue
		}
		if len(s.rules) == 0 {
			return true
		}
		if _, ok := s.rules[ruleName]; ok {
			return true
		}
	}
	return false
}
