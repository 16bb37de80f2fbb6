package pipeline

import (
	"context"
	"fmt"

	"github.com/jfmt/styler/internal/report"
	"github.com/jfmt/styler/internal/stage"
)

// validateInput is ValidateStage's input: the ProcessingContext plus
// FormatStage's output.
type validateInput struct {
	Ctx    ProcessingContext
	Format FormatResult
}

// ValidateStage groups FormatStage's violations by rule id into a
// ViolationReport. It never applies fixes (spec.md §4.4).
type ValidateStage struct{}

func (s *ValidateStage) Name() string { return "validate" }

func (s *ValidateStage) ExecuteStage(ctx context.Context, input any) (stage.Result, error) {
	in, ok := input.(validateInput)
	if !ok {
		return stage.Result{}, fmt.Errorf("validate stage: unexpected input type %T", input)
	}
	r := report.Build(in.Ctx.FilePath, in.Format.Violations)
	return stage.Success(r), nil
}
