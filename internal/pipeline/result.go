package pipeline

import (
	"time"

	"github.com/jfmt/styler/internal/arena"
	"github.com/jfmt/styler/internal/report"
	"github.com/jfmt/styler/internal/stage"
)

// PipelineResult is the scoped, per-file outcome of process_file: the
// ordered stage results plus the arena ParseStage allocated. Callers must
// call Release exactly once (spec.md §3: "Scoped: on drop, the arena is
// released").
type PipelineResult struct {
	FilePath       string
	StageResults   []stage.Result
	ProcessingTime time.Duration
	OverallSuccess bool
	arena          *arena.Arena
}

// Release frees the owned arena, if any. Safe to call on a result whose
// ParseStage never ran or failed (arena is nil).
func (r *PipelineResult) Release() {
	if r.arena != nil {
		r.arena.Release()
		r.arena = nil
	}
}

// RenderedOutput returns OutputStage's string payload, or "" if the chain
// never reached OutputStage.
func (r *PipelineResult) RenderedOutput() string {
	if len(r.StageResults) == 0 {
		return ""
	}
	last := r.StageResults[len(r.StageResults)-1]
	if last.Outcome() != stage.OutcomeSuccess {
		return ""
	}
	s, _ := last.Data().(string)
	return s
}

// FailureMessage returns the first Failure's message, or "" if every
// stage succeeded (or was skipped).
func (r *PipelineResult) FailureMessage() string {
	for _, sr := range r.StageResults {
		if sr.Outcome() == stage.OutcomeFailure {
			return sr.Message()
		}
	}
	return ""
}

// FailureCause returns the first Failure's underlying error (normalised to
// one of internal/errors' typed errors by the stage that raised it — see
// ParseStage and FormatStage), or nil if every stage succeeded (or was
// skipped). Used by the CLI to route a failed file through errors.Reporter
// instead of printing a raw stage message.
func (r *PipelineResult) FailureCause() error {
	for _, sr := range r.StageResults {
		if sr.Outcome() == stage.OutcomeFailure {
			return sr.Cause()
		}
	}
	return nil
}

// FormattedSource returns FormatStage's final source text and true, or
// ("", false) if FormatStage never ran or failed. Used by the CLI to
// write fixed source back to disk in fix mode.
func (r *PipelineResult) FormattedSource() (string, bool) {
	const formatStageIndex = 1
	if len(r.StageResults) <= formatStageIndex {
		return "", false
	}
	fr, ok := r.StageResults[formatStageIndex].Data().(FormatResult)
	if !ok {
		return "", false
	}
	return fr.FinalSource, true
}

// HasViolations reports whether ValidateStage's report contains any
// violation.
func (r *PipelineResult) HasViolations() bool {
	const validateStageIndex = 2
	if len(r.StageResults) <= validateStageIndex {
		return false
	}
	vr, ok := r.StageResults[validateStageIndex].Data().(report.ViolationReport)
	if !ok {
		return false
	}
	return len(vr.Violations) > 0
}
