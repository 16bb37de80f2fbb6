// Package pipeline wires ParseStage, FormatStage, ValidateStage and
// OutputStage into the four-stage FileProcessingPipeline (spec.md §4.4),
// the strictly-sequential per-file chain the rest of this module exists to
// drive.
package pipeline

import (
	"github.com/jfmt/styler/internal/classpath"
	"github.com/jfmt/styler/internal/limits"
	"github.com/jfmt/styler/internal/report"
	"github.com/jfmt/styler/internal/rules"
)

// ProcessingContext is immutable once built and shared by reference across
// a single file's four stages.
type ProcessingContext struct {
	FilePath             string
	Limits               limits.SecurityLimits
	RuleConfigs          []rules.Config
	Rules                []rules.Rule
	ValidationOnly       bool
	OutputFormatOverride *report.OutputFormat
	ClasspathScanner     classpath.Scanner // may be nil
}
