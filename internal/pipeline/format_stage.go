package pipeline

import (
	"context"
	"fmt"

	stylererrors "github.com/jfmt/styler/internal/errors"
	"github.com/jfmt/styler/internal/parse"
	"github.com/jfmt/styler/internal/rules"
	"github.com/jfmt/styler/internal/source"
	"github.com/jfmt/styler/internal/stage"
	"github.com/jfmt/styler/internal/txctx"
)

// formatInput is FormatStage's input: the ProcessingContext plus
// ParseStage's output.
type formatInput struct {
	Ctx    ProcessingContext
	Parsed parse.ParsedData
}

// FormatResult is FormatStage's output payload.
type FormatResult struct {
	FinalSource string
	Violations  []rules.FormattingViolation
	LineMapping source.LineMapping
}

// FormatStage runs every configured rule over the parsed file, either
// analysis-only or applying fixes in sequence (spec.md §4.4).
type FormatStage struct{}

func (s *FormatStage) Name() string { return "format" }

func (s *FormatStage) ExecuteStage(ctx context.Context, input any) (stage.Result, error) {
	in, ok := input.(formatInput)
	if !ok {
		return stage.Result{}, fmt.Errorf("format stage: unexpected input type %T", input)
	}

	base := txctx.Context{
		Arena:     in.Parsed.Arena,
		Root:      in.Parsed.Root,
		Source:    in.Parsed.Source,
		FilePath:  in.Parsed.FilePath,
		Limits:    in.Ctx.Limits,
		Classpath: in.Ctx.ClasspathScanner,
	}

	if in.Ctx.ValidationOnly {
		return s.analyzeOnly(base, in.Ctx.Rules, in.Ctx.RuleConfigs)
	}
	return s.fix(base, in.Ctx.Rules, in.Ctx.RuleConfigs)
}

func (s *FormatStage) analyzeOnly(base txctx.Context, ruleList []rules.Rule, configs []rules.Config) (stage.Result, error) {
	var violations []rules.FormattingViolation
	for _, r := range ruleList {
		vs, err := r.Analyze(&base, configs)
		if err != nil {
			msg := fmt.Sprintf("rule %q analyze failed: %v", r.ID(), err)
			return stage.Failure(msg, stylererrors.NewSystemError("rule analyze: "+r.ID(), err)), nil
		}
		violations = append(violations, vs...)
	}
	lineCount := countLines(base.Source)
	return stage.Success(FormatResult{
		FinalSource: base.Source,
		Violations:  violations,
		LineMapping: source.Identity(lineCount),
	}), nil
}

func (s *FormatStage) fix(base txctx.Context, ruleList []rules.Rule, configs []rules.Config) (stage.Result, error) {
	original := base.Source
	current := base
	for _, r := range ruleList {
		next, err := r.Format(&current, configs)
		if err != nil {
			msg := fmt.Sprintf("rule %q format failed: %v", r.ID(), err)
			return stage.Failure(msg, stylererrors.NewSystemError("rule format: "+r.ID(), err)), nil
		}
		current = current.WithSource(next)
	}

	var residual []rules.FormattingViolation
	for _, r := range ruleList {
		vs, err := r.Analyze(&current, configs)
		if err != nil {
			msg := fmt.Sprintf("rule %q residual analyze failed: %v", r.ID(), err)
			return stage.Failure(msg, stylererrors.NewSystemError("rule residual analyze: "+r.ID(), err)), nil
		}
		residual = append(residual, vs...)
	}

	return stage.Success(FormatResult{
		FinalSource: current.Source,
		Violations:  residual,
		LineMapping: source.FromDiff(original, current.Source),
	}), nil
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	count := 1
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
		}
	}
	return count
}
