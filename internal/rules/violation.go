// Package rules defines the FormattingRule contract (spec.md §4.5),
// and the FormattingViolation/FixStrategy value types (spec.md §3). The
// TransformationContext rules operate over lives in package txctx.
package rules

// Severity classifies a FormattingViolation.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// FixStrategy is a single suggested remediation for a violation.
type FixStrategy struct {
	Description    string
	AutoApplicable bool
	ReplacementText string
	ByteStart      uint32
	ByteEnd        uint32
}

// FormattingViolation is one finding produced by a rule's Analyze. It is
// immutable; SuggestedFixes is a snapshot taken at construction time.
type FormattingViolation struct {
	RuleID         string
	Severity       Severity
	Message        string
	File           string
	ByteStart      uint32
	ByteEnd        uint32
	Line           uint32
	Column         uint32
	SuggestedFixes []FixStrategy
}
