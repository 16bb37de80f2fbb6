package pipeline

import (
	"context"
	"fmt"
	"os"

	stylererrors "github.com/jfmt/styler/internal/errors"
	"github.com/jfmt/styler/internal/parse"
	"github.com/jfmt/styler/internal/stage"
)

// parseInput is ParseStage's input: the ProcessingContext built for one
// file. It is the pipeline orchestrator's job to supply it; the Stage
// interface itself only knows "previous stage's payload".
type parseInput struct {
	Ctx ProcessingContext
}

// ParseStage reads the target file, constructs an arena-backed parse via
// its Parser collaborator, and emits ParsedData on success.
type ParseStage struct {
	Parser parse.Parser
}

func (s *ParseStage) Name() string { return "parse" }

func (s *ParseStage) ExecuteStage(ctx context.Context, input any) (stage.Result, error) {
	in, ok := input.(parseInput)
	if !ok {
		return stage.Result{}, fmt.Errorf("parse stage: unexpected input type %T", input)
	}

	source, err := os.ReadFile(in.Ctx.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			msg := fmt.Sprintf("File not found: %s", in.Ctx.FilePath)
			return stage.Failure(msg, stylererrors.NewSystemError("read source file", err)), nil
		}
		msg := fmt.Sprintf("failed to read %s: %v", in.Ctx.FilePath, err)
		return stage.Failure(msg, stylererrors.NewSystemError("read source file", err)), nil
	}

	result := s.Parser.Parse(ctx, source, in.Ctx.FilePath)
	if !result.IsSuccess() {
		cause := result.Cause()
		if cause == nil {
			cause = fmt.Errorf("%s", result.Message())
		}
		return stage.Failure(result.Message(), stylererrors.NewParseError(in.Ctx.FilePath, 0, 0, cause)), nil
	}
	return stage.Success(result.Data()), nil
}
