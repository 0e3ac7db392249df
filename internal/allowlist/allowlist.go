// Package allowlist answers whether a method name is exempted from a rule,
// either by exact name or by regular-expression pattern. An AllowList is
// immutable once built and safe for concurrent use.
package allowlist

import (
	"fmt"
	"regexp"
)

type AllowList struct {
	names    map[string]struct{}
	patterns []*regexp.Regexp
}

// New compiles an allow list from explicit method names and regular
// expression patterns. An invalid pattern is a configuration error.
func New(methods []string, patterns []string) (*AllowList, error) {
	a := &AllowList{names: make(map[string]struct{}, len(methods))}
	for _, m := range methods {
		a.names[m] = struct{}{}
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed pattern %q: %w", p, err)
		}
		a.patterns = append(a.patterns, re)
	}
	return a, nil
}

// IsAllowedMethod reports whether name is in the explicit allow set.
func (a *AllowList) IsAllowedMethod(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a.names[name]
	return ok
}

// MatchesAllowedPattern reports whether name matches any allowed pattern.
func (a *AllowList) MatchesAllowedPattern(name string) bool {
	if a == nil {
		return false
	}
	for _, re := range a.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
