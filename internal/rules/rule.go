package rules

import (
	"fmt"

	"github.com/jfmt/styler/internal/txctx"
)

// Config is one rule's configuration entry in the ordered rule_configs
// list a ProcessingContext carries. RuleID identifies which rule the
// config is for; rules receive the entire ordered list and pick their own
// (spec.md §4.4: "rules receive the entire ordered rule_configs list and
// are responsible for picking their own").
type Config interface {
	RuleID() string
}

// ErrIncompatibleConfig is returned by Analyze/Format when the config list
// does not contain a compatible entry for the rule and the rule cannot
// fall back to its own defaults (spec.md §4.5: "fails with a typed error
// when the list does not contain a compatible configuration").
type ErrIncompatibleConfig struct {
	RuleID string
	Reason string
}

func (e *ErrIncompatibleConfig) Error() string {
	return fmt.Sprintf("rule %q: incompatible configuration: %s", e.RuleID, e.Reason)
}

// ErrNilArgument is returned when tx_ctx is nil. A nil config list is not
// an error: the built-in rules treat it the same as an empty list (see
// FindConfig).
type ErrNilArgument struct {
	RuleID string
	Arg    string
}

func (e *ErrNilArgument) Error() string {
	return fmt.Sprintf("rule %q: %s must not be nil", e.RuleID, e.Arg)
}

// Rule is the FormattingRule contract (spec.md §4.5). Analyze is pure
// inspection; Format produces a new source string. A rule that sees
// nothing to change from Format must return its input unchanged, and must
// be idempotent on its own output — running Format twice in a row on the
// same text yields the same text the second time.
type Rule interface {
	ID() string
	Name() string
	Description() string
	DefaultSeverity() Severity

	Analyze(ctx *txctx.Context, configs []Config) ([]FormattingViolation, error)
	Format(ctx *txctx.Context, configs []Config) (string, error)
}

// FindConfig returns the first Config in configs whose RuleID matches
// ruleID, or nil if none matches. An empty or nil configs slice is
// equivalent to "no config" — callers treat that as "use my defaults"
// rather than an error (spec.md §4.5: "An empty config list is equivalent
// to this rule's default configuration").
func FindConfig(configs []Config, ruleID string) Config {
	for _, c := range configs {
		if c != nil && c.RuleID() == ruleID {
			return c
		}
	}
	return nil
}
