package stage

import (
	"context"
	"fmt"

	"github.com/jfmt/styler/internal/debug"
)

// Stage is the only operation a pipeline stage must implement.
// ExecuteStage receives whatever input the caller passes to Run (the
// pipeline passes a per-stage struct that bundles the previous stage's
// payload) and returns its own Result.
type Stage interface {
	Name() string
	ExecuteStage(ctx context.Context, input any) (Result, error)
}

// Setupper is implemented by stages that need a setup hook; stages that
// don't implement it get the default no-op.
type Setupper interface {
	Setup(ctx context.Context) error
}

// Cleanuper is implemented by stages that need a cleanup hook; stages
// that don't implement it get the default no-op.
type Cleanuper interface {
	Cleanup(ctx context.Context) error
}

// Run drives a stage through setup/execute_stage/cleanup. A panic inside
// ExecuteStage is recovered and converted to a Failure; cleanup always
// runs, and a cleanup error is logged but never overrides the stage's
// own result.
func Run(ctx context.Context, s Stage, file string, input any) Result {
	if su, ok := s.(Setupper); ok {
		if err := su.Setup(ctx); err != nil {
			return Failure(fmt.Sprintf("stage %q setup failed for %s: %v", s.Name(), file, err), err)
		}
	}

	result := execute(ctx, s, file, input)

	if cu, ok := s.(Cleanuper); ok {
		if err := cu.Cleanup(ctx); err != nil {
			debug.LogPipeline("cleanup failed for stage %q on %s: %v", s.Name(), file, err)
		}
	}

	return result
}

func execute(ctx context.Context, s Stage, file string, input any) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Failure(fmt.Sprintf("stage %q failed for %s: %v", s.Name(), file, r), nil)
		}
	}()

	res, err := s.ExecuteStage(ctx, input)
	if err != nil {
		return Failure(fmt.Sprintf("stage %q failed for %s: %v", s.Name(), file, err), err)
	}
	return res
}
