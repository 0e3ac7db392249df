package types

import (
	"fmt"
	"strings"

	"github.com/rubylint/rlint/internal/ruby"
)

// Severity is the reporting level of a rule or an issue. The zero value is
// unset: a configuration entry that omits the severity keeps the rule's own
// default.
type Severity int

const (
	SeverityUnset Severity = iota
	SeverityError
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityUnset:
		return "UNSET"
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// MarshalYAML implements yaml.Marshaler.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, accepting the textual severity
// names case-insensitively.
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch strings.ToUpper(raw) {
	case "UNSET":
		*s = SeverityUnset
	case "ERROR":
		*s = SeverityError
	case "WARNING", "WARN":
		*s = SeverityWarning
	case "INFO":
		*s = SeverityInfo
	case "OFF":
		*s = SeverityOff
	default:
		return fmt.Errorf("unknown severity %q", raw)
	}
	return nil
}

// ConfigRule carries the per-rule settings from the configuration file.
type ConfigRule struct {
	Severity        Severity `yaml:"severity"`
	AllowedMethods  []string `yaml:"allowed_methods,omitempty"`
	AllowedPatterns []string `yaml:"allowed_patterns,omitempty"`
}

// Edit is a replacement of one source byte range. Edits attached to issues
// within a file never overlap; the fixer treats overlap as a hard error.
type Edit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      ruby.Position
	End        ruby.Position
	Severity   Severity
	Confidence float64
	Edit       *Edit
	// Unsafe marks autocorrections that can change observable behavior;
	// they are never applied without explicit opt-in.
	Unsafe bool
}
