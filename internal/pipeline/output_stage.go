package pipeline

import (
	"context"
	"fmt"

	"github.com/jfmt/styler/internal/report"
	"github.com/jfmt/styler/internal/stage"
)

// outputInput is OutputStage's input: the ProcessingContext plus
// ValidateStage's ViolationReport.
type outputInput struct {
	Ctx    ProcessingContext
	Report report.ViolationReport
}

// OutputStage renders the ViolationReport with the format chosen by the
// context override, falling back to auto-detection.
type OutputStage struct{}

func (s *OutputStage) Name() string { return "output" }

func (s *OutputStage) ExecuteStage(ctx context.Context, input any) (stage.Result, error) {
	in, ok := input.(outputInput)
	if !ok {
		return stage.Result{}, fmt.Errorf("output stage: unexpected input type %T", input)
	}
	format := report.DetectFormat()
	if in.Ctx.OutputFormatOverride != nil {
		format = *in.Ctx.OutputFormatOverride
	}
	rendered, err := report.NewRenderer(format).Render(in.Report)
	if err != nil {
		return stage.Failure(fmt.Sprintf("render output failed: %v", err), err), nil
	}
	return stage.Success(rendered), nil
}
