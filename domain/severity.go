package domain

import "fmt"

// Severity represents the importance of a report message
type Severity int

// Severities in increasing order of importance
const (
	SeverityInfo Severity = iota
	SeveritySuggestion
	SeverityNotice
	SeverityWarning
	SeverityIssue
)

// Severities lists all severities from least to most important
var Severities = []Severity{
	SeverityInfo,
	SeveritySuggestion,
	SeverityNotice,
	SeverityWarning,
	SeverityIssue,
}

// String returns the lowercase severity name used in serialized reports
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeveritySuggestion:
		return "suggestion"
	case SeverityNotice:
		return "notice"
	case SeverityWarning:
		return "warning"
	case SeverityIssue:
		return "issue"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity converts a severity name to a Severity value
func ParseSeverity(name string) (Severity, error) {
	for _, s := range Severities {
		if s.String() == name {
			return s, nil
		}
	}
	return SeverityInfo, fmt.Errorf("unknown severity %q, must be one of: info, suggestion, notice, warning, issue", name)
}

// Message is a single entry in the report message log
type Message struct {
	Text     string   `json:"text" yaml:"text"`
	Analyser string   `json:"analyser" yaml:"analyser"`
	Paths    []string `json:"paths,omitempty" yaml:"paths,omitempty"`
}
