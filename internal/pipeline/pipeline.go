package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jfmt/styler/internal/classpath"
	"github.com/jfmt/styler/internal/limits"
	"github.com/jfmt/styler/internal/parse"
	"github.com/jfmt/styler/internal/report"
	"github.com/jfmt/styler/internal/rules"
	"github.com/jfmt/styler/internal/stage"
	"github.com/jfmt/styler/internal/validate"
)

// Builder collects the configuration a FileProcessingPipeline is built
// from (spec.md §4.4: "Construction is via a builder collecting security
// limits, formatting rules, rule configurations, validation_only flag,
// and a type-resolution configuration").
type Builder struct {
	limits           limits.SecurityLimits
	rules            []rules.Rule
	ruleConfigs      []rules.Config
	validationOnly   bool
	classpathConfig  classpath.Config
	outputOverride   *report.OutputFormat
	workers          int
}

// NewBuilder returns a Builder seeded with default limits.
func NewBuilder() *Builder {
	return &Builder{limits: limits.Defaults(), workers: 1}
}

func (b *Builder) WithLimits(l limits.SecurityLimits) *Builder {
	b.limits = limits.Defaults().WithOverrides(l)
	return b
}

func (b *Builder) WithRules(rs ...rules.Rule) *Builder {
	b.rules = append(b.rules, rs...)
	return b
}

func (b *Builder) WithRuleConfigs(cfgs ...rules.Config) *Builder {
	b.ruleConfigs = append(b.ruleConfigs, cfgs...)
	return b
}

func (b *Builder) WithValidationOnly(v bool) *Builder {
	b.validationOnly = v
	return b
}

func (b *Builder) WithClasspathConfig(cfg classpath.Config) *Builder {
	b.classpathConfig = cfg
	return b
}

func (b *Builder) WithOutputFormat(f report.OutputFormat) *Builder {
	b.outputOverride = &f
	return b
}

func (b *Builder) WithWorkers(n int) *Builder {
	if n > 0 {
		b.workers = n
	}
	return b
}

// Build opens the pipeline's shared ClasspathScanner and assembles the
// fixed four-stage chain.
func (b *Builder) Build() (*FileProcessingPipeline, error) {
	scanner, err := classpath.Create(b.classpathConfig)
	if err != nil {
		return nil, err
	}
	return &FileProcessingPipeline{
		limits:         b.limits,
		rules:          b.rules,
		ruleConfigs:    b.ruleConfigs,
		validationOnly: b.validationOnly,
		outputOverride: b.outputOverride,
		workers:        b.workers,
		scanner:        scanner,
		validator:      validate.New(scanner),
		parseStage:     &ParseStage{Parser: parse.NewTreeSitterParser(b.limits)},
		formatStage:    &FormatStage{},
		validateStage:  &ValidateStage{},
		outputStage:    &OutputStage{},
	}, nil
}

// FileProcessingPipeline is the fixed four-stage chain, built once and
// reused across every file it processes (spec.md §4.4). It owns the
// shared ClasspathScanner and releases it on Close.
type FileProcessingPipeline struct {
	limits         limits.SecurityLimits
	rules          []rules.Rule
	ruleConfigs    []rules.Config
	validationOnly bool
	outputOverride *report.OutputFormat
	workers        int

	scanner classpath.Scanner

	validator *validate.Validator

	parseStage    *ParseStage
	formatStage   *FormatStage
	validateStage *ValidateStage
	outputStage   *OutputStage
}

// Close releases the pipeline's shared scanner.
func (p *FileProcessingPipeline) Close() error {
	return p.scanner.Close()
}

func (p *FileProcessingPipeline) processingContext(filePath string) ProcessingContext {
	return ProcessingContext{
		FilePath:             filePath,
		Limits:               p.limits,
		RuleConfigs:          p.ruleConfigs,
		Rules:                p.rules,
		ValidationOnly:       p.validationOnly,
		OutputFormatOverride: p.outputOverride,
		ClasspathScanner:     p.scanner,
	}
}

// carryForward returns r's typed payload on Success, or prev unchanged on
// Skipped — the orchestrator's half of spec.md §4.3's "Skipped in stage k
// causes stage k+1 to receive the most recent Success payload". Callers
// must check r.IsSuccess() first; carryForward only distinguishes Success
// from Skipped, both of which already passed that check.
func carryForward[T any](prev T, r stage.Result) T {
	if r.Outcome() == stage.OutcomeSuccess {
		return r.Data().(T)
	}
	return prev
}

// ProcessFile runs the chain for a single file (spec.md §4.4, process_file).
//
// Success and Skipped both mean "continue" (spec.md §4.3): only Failure
// short-circuits the chain.
func (p *FileProcessingPipeline) ProcessFile(ctx context.Context, filePath string) *PipelineResult {
	start := time.Now()
	pctx := p.processingContext(filePath)
	result := &PipelineResult{FilePath: filePath}

	var parsed parse.ParsedData
	parseResult := stage.Run(ctx, p.parseStage, filePath, parseInput{Ctx: pctx})
	result.StageResults = append(result.StageResults, parseResult)
	if !parseResult.IsSuccess() {
		result.ProcessingTime = time.Since(start)
		result.OverallSuccess = false
		return result
	}
	parsed = carryForward(parsed, parseResult)
	result.arena = parsed.Arena

	var fr FormatResult
	formatResult := stage.Run(ctx, p.formatStage, filePath, formatInput{Ctx: pctx, Parsed: parsed})
	result.StageResults = append(result.StageResults, formatResult)
	if !formatResult.IsSuccess() {
		result.ProcessingTime = time.Since(start)
		result.OverallSuccess = false
		return result
	}
	fr = carryForward(fr, formatResult)

	var vr report.ViolationReport
	validateResult := stage.Run(ctx, p.validateStage, filePath, validateInput{Ctx: pctx, Format: fr})
	result.StageResults = append(result.StageResults, validateResult)
	if !validateResult.IsSuccess() {
		result.ProcessingTime = time.Since(start)
		result.OverallSuccess = false
		return result
	}
	vr = carryForward(vr, validateResult)

	outputResult := stage.Run(ctx, p.outputStage, filePath, outputInput{Ctx: pctx, Report: vr})
	result.StageResults = append(result.StageResults, outputResult)

	result.ProcessingTime = time.Since(start)
	result.OverallSuccess = outputResult.IsSuccess()
	return result
}

// ProcessFiles runs ProcessFile for every path on an independent worker,
// bounded to p.workers concurrent goroutines (spec.md §5: "one file per
// worker, independent workers"). Each result is written to its own index
// in a pre-sized slice — no shared-state write races.
func (p *FileProcessingPipeline) ProcessFiles(ctx context.Context, paths []string) ([]*PipelineResult, error) {
	results := make([]*PipelineResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = p.ProcessFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
