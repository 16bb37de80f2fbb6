package config

import (
	"fmt"
	"runtime"

	"github.com/jfmt/styler/internal/errors"
)

// Validator validates a ProjectSettings and fills in smart defaults,
// grounded on the teacher's Validator.ValidateAndSetDefaults shape: a
// sequence of per-section range checks followed by a defaulting pass.
type Validator struct{}

// NewValidator returns a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults rejects out-of-range values and fills in the
// worker-count default derived from the running machine.
func (v *Validator) ValidateAndSetDefaults(s *ProjectSettings) error {
	if err := v.validateLimits(s); err != nil {
		return errors.NewConfigError("limits", "", err)
	}
	if s.Workers < 0 {
		return errors.NewConfigError("workers", fmt.Sprintf("%d", s.Workers), fmt.Errorf("workers cannot be negative"))
	}
	v.setSmartDefaults(s)
	return nil
}

func (v *Validator) validateLimits(s *ProjectSettings) error {
	l := s.Limits
	if l.MaxSourceSizeBytes <= 0 {
		return fmt.Errorf("max_source_size_bytes must be positive, got %d", l.MaxSourceSizeBytes)
	}
	if l.MaxTokenCount <= 0 {
		return fmt.Errorf("max_token_count must be positive, got %d", l.MaxTokenCount)
	}
	if l.MaxArenaCapacity <= 0 {
		return fmt.Errorf("max_arena_capacity must be positive, got %d", l.MaxArenaCapacity)
	}
	if l.MaxNodeDepth <= 0 {
		return fmt.Errorf("max_node_depth must be positive, got %d", l.MaxNodeDepth)
	}
	if l.ParsingTimeout <= 0 {
		return fmt.Errorf("parsing_timeout_ms must be positive, got %s", l.ParsingTimeout)
	}
	return nil
}

// setSmartDefaults mirrors the teacher's cores-minus-one worker default
// (internal/config.Validator.setSmartDefaults), leaving one core free.
func (v *Validator) setSmartDefaults(s *ProjectSettings) {
	if s.Workers == 0 {
		s.Workers = max(1, runtime.NumCPU()-1)
	}
}
