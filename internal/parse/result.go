package parse

import (
	"fmt"

	"github.com/jfmt/styler/internal/arena"
)

// ParsedData is the payload ParseStage hands to FormatStage on success.
type ParsedData struct {
	Arena    *arena.Arena
	Root     arena.NodeIndex
	Source   string
	FilePath string
}

// Outcome tags a ParseResult as Success or Failure (spec.md §3: ParseResult
// is a sealed sum type).
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
)

// ParseResult is the return value of Parser.Parse.
type ParseResult struct {
	outcome Outcome
	data    ParsedData
	message string
	cause   error
}

func Success(data ParsedData) ParseResult {
	return ParseResult{outcome: OutcomeSuccess, data: data}
}

func Failure(message string, cause error) ParseResult {
	return ParseResult{outcome: OutcomeFailure, message: message, cause: cause}
}

func (r ParseResult) IsSuccess() bool { return r.outcome == OutcomeSuccess }

func (r ParseResult) Data() ParsedData { return r.data }

func (r ParseResult) Message() string { return r.message }

func (r ParseResult) Cause() error { return r.cause }

func (r ParseResult) Error() error {
	if r.outcome == OutcomeSuccess {
		return nil
	}
	if r.cause != nil {
		return fmt.Errorf("%s: %w", r.message, r.cause)
	}
	return fmt.Errorf("%s", r.message)
}
