package stage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type okStage struct{}

func (okStage) Name() string { return "ok" }
func (okStage) ExecuteStage(ctx context.Context, input any) (Result, error) {
	return Success("done"), nil
}

type failStage struct{}

func (failStage) Name() string { return "fail" }
func (failStage) ExecuteStage(ctx context.Context, input any) (Result, error) {
	return Result{}, errors.New("boom")
}

type panicStage struct{}

func (panicStage) Name() string { return "panic" }
func (panicStage) ExecuteStage(ctx context.Context, input any) (Result, error) {
	panic("kaboom")
}

type cleanupTrackingStage struct {
	cleanedUp *bool
}

func (s cleanupTrackingStage) Name() string { return "cleanup" }
func (s cleanupTrackingStage) ExecuteStage(ctx context.Context, input any) (Result, error) {
	return Result{}, errors.New("still fails")
}
func (s cleanupTrackingStage) Cleanup(ctx context.Context) error {
	*s.cleanedUp = true
	return nil
}

func TestRunSuccess(t *testing.T) {
	result := Run(context.Background(), okStage{}, "Foo.java", nil)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, "done", result.Data())
}

func TestRunErrorBecomesFailure(t *testing.T) {
	result := Run(context.Background(), failStage{}, "Foo.java", nil)
	assert.False(t, result.IsSuccess())
	assert.Contains(t, result.Message(), "Foo.java")
	assert.Contains(t, result.Message(), "boom")
}

func TestRunRecoversPanic(t *testing.T) {
	result := Run(context.Background(), panicStage{}, "Foo.java", nil)
	assert.False(t, result.IsSuccess())
	assert.Contains(t, result.Message(), "kaboom")
}

func TestCleanupRunsOnFailure(t *testing.T) {
	cleaned := false
	result := Run(context.Background(), cleanupTrackingStage{cleanedUp: &cleaned}, "Foo.java", nil)
	assert.False(t, result.IsSuccess())
	assert.True(t, cleaned)
}

func TestSkippedIsSuccessLike(t *testing.T) {
	r := Skipped("no rules configured")
	assert.True(t, r.IsSuccess())
	assert.Equal(t, OutcomeSkipped, r.Outcome())
}
