// Package linelength is a reference FormattingRule that reports (but does
// not fix) physical lines exceeding a configured maximum length. Wrapping
// a long line is a line-break decision left to a real formatter rule — out
// of scope per spec.md §1 — so Format is the identity function here; this
// rule exists to exercise the violation-reporting path.
package linelength

import (
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/jfmt/styler/internal/rules"
	"github.com/jfmt/styler/internal/txctx"
)

// RuleID is the stable identifier for this rule.
const RuleID = "line-length"

// DefaultMaxLength is used when no Config entry is supplied for this rule.
const DefaultMaxLength = 120

// Config is this rule's entry in the ordered rule_configs list.
type Config struct {
	MaxLength int
}

func (Config) RuleID() string { return RuleID }

// Schema describes the JSON shape a decoded TOML rule-config blob must
// have before internal/config builds a Config from it.
var Schema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"max_length": {
			Type:        "integer",
			Description: "maximum permitted physical line length, in characters",
		},
	},
	Required: []string{"max_length"},
}

// Rule implements rules.Rule.
type Rule struct{}

// New returns the line-length rule.
func New() *Rule { return &Rule{} }

func (r *Rule) ID() string                      { return RuleID }
func (r *Rule) Name() string                    { return "Line Length" }
func (r *Rule) Description() string             { return "Flags physical lines exceeding a configured maximum length." }
func (r *Rule) DefaultSeverity() rules.Severity { return rules.SeverityInfo }

func maxLength(configs []rules.Config) (int, error) {
	c := rules.FindConfig(configs, RuleID)
	if c == nil {
		return DefaultMaxLength, nil
	}
	typed, ok := c.(Config)
	if !ok {
		return 0, &rules.ErrIncompatibleConfig{RuleID: RuleID, Reason: fmt.Sprintf("expected linelength.Config, got %T", c)}
	}
	if typed.MaxLength <= 0 {
		return DefaultMaxLength, nil
	}
	return typed.MaxLength, nil
}

// Analyze reports one INFO violation per line longer than the configured
// maximum.
func (r *Rule) Analyze(ctx *txctx.Context, configs []rules.Config) ([]rules.FormattingViolation, error) {
	if ctx == nil {
		return nil, &rules.ErrNilArgument{RuleID: RuleID, Arg: "tx_ctx"}
	}
	limit, err := maxLength(configs)
	if err != nil {
		return nil, err
	}

	var violations []rules.FormattingViolation
	var byteOffset uint32
	lines := strings.Split(ctx.Source, "\n")
	for i, line := range lines {
		lineLen := len([]rune(line))
		if lineLen > limit {
			violations = append(violations, rules.FormattingViolation{
				RuleID:    RuleID,
				Severity:  rules.SeverityInfo,
				Message:   fmt.Sprintf("line exceeds %d characters (%d)", limit, lineLen),
				File:      ctx.FilePath,
				ByteStart: byteOffset,
				ByteEnd:   byteOffset + uint32(len(line)),
				Line:      uint32(i + 1),
				Column:    uint32(limit + 1),
			})
		}
		byteOffset += uint32(len(line)) + 1 // +1 for the stripped '\n'
	}
	return violations, nil
}

// Format is the identity function: this reference rule does not rewrap
// long lines.
func (r *Rule) Format(ctx *txctx.Context, configs []rules.Config) (string, error) {
	if ctx == nil {
		return "", &rules.ErrNilArgument{RuleID: RuleID, Arg: "tx_ctx"}
	}
	if _, err := maxLength(configs); err != nil {
		return "", err
	}
	return ctx.Source, nil
}
