package internal

import (
	"github.com/rubylint/rlint/internal/allowlist"
	"github.com/rubylint/rlint/internal/lints"
	"github.com/rubylint/rlint/internal/ruby"
	tt "github.com/rubylint/rlint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given parsed file and returns a
	// slice of Issues.
	Check(filename string, file *ruby.File) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	// Severity returns the severity of the lint rule.
	Severity() tt.Severity

	// SetSeverity sets the severity of the lint rule.
	SetSeverity(tt.Severity)
}

// ConfigurableRule is implemented by rules that accept per-rule settings
// from the configuration file.
type ConfigurableRule interface {
	Configure(cfg tt.ConfigRule) error
}

// PredicateReturnNilRule flags predicate methods that can yield nil instead
// of an explicit boolean.
type PredicateReturnNilRule struct {
	severity tt.Severity
	allow    *allowlist.AllowList
}

func NewPredicateReturnNilRule() LintRule {
	return &PredicateReturnNilRule{severity: tt.SeverityWarning}
}

func (r *PredicateReturnNilRule) Check(filename string, file *ruby.File) ([]tt.Issue, error) {
	return lints.DetectPredicateReturnNil(filename, file, r.allow, r.severity)
}

func (r *PredicateReturnNilRule) Name() string {
	return "predicate-return-nil"
}

func (r *PredicateReturnNilRule) Severity() tt.Severity {
	return r.severity
}

func (r *PredicateReturnNilRule) SetSeverity(s tt.Severity) {
	r.severity = s
}

func (r *PredicateReturnNilRule) Configure(cfg tt.ConfigRule) error {
	allow, err := allowlist.New(cfg.AllowedMethods, cfg.AllowedPatterns)
	if err != nil {
		return err
	}
	r.allow = allow
	return nil
}

// NestedMethodDefinitionRule flags method definitions nested inside another
// method's body.
type NestedMethodDefinitionRule struct {
	severity tt.Severity
}

func NewNestedMethodDefinitionRule() LintRule {
	return &NestedMethodDefinitionRule{severity: tt.SeverityWarning}
}

func (r *NestedMethodDefinitionRule) Check(filename string, file *ruby.File) ([]tt.Issue, error) {
	return lints.DetectNestedMethodDefinition(filename, file, r.severity)
}

func (r *NestedMethodDefinitionRule) Name() string {
	return "nested-method-definition"
}

func (r *NestedMethodDefinitionRule) Severity() tt.Severity {
	return r.severity
}

func (r *NestedMethodDefinitionRule) SetSeverity(s tt.Severity) {
	r.severity = s
}
