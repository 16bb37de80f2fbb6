// Package report aggregates formatting violations into a ViolationReport
// and renders it in either of the two supported output formats.
package report

import (
	"os"

	"github.com/jfmt/styler/internal/rules"
)

// ViolationReport is ValidateStage's output: the full ordered violation
// list plus a per-rule count.
type ViolationReport struct {
	FilePath   string
	Violations []rules.FormattingViolation
	Counts     map[string]int
}

// Build groups violations by RuleID into Counts.
func Build(filePath string, violations []rules.FormattingViolation) ViolationReport {
	counts := make(map[string]int)
	for _, v := range violations {
		counts[v.RuleID]++
	}
	return ViolationReport{FilePath: filePath, Violations: violations, Counts: counts}
}

// OutputFormat selects which renderer OutputStage uses.
type OutputFormat int

const (
	FormatHuman OutputFormat = iota
	FormatJSON
)

// aiEnvVars are environment variables whose presence signals a
// non-interactive AI/CI caller that should receive JSON rather than a
// human-formatted report.
var aiEnvVars = []string{"CI", "CLAUDECODE", "GITHUB_ACTIONS"}

// DetectFormat implements the auto-detection rule from spec.md §6: JSON
// when stdout is non-interactive or one of the recognised AI/CI
// environment variables is set, HUMAN otherwise.
func DetectFormat() OutputFormat {
	for _, name := range aiEnvVars {
		if os.Getenv(name) != "" {
			return FormatJSON
		}
	}
	if info, err := os.Stdout.Stat(); err == nil {
		if info.Mode()&os.ModeCharDevice == 0 {
			return FormatJSON
		}
	}
	return FormatHuman
}
