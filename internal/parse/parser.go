package parse

import (
	"context"
	"fmt"

	"github.com/jfmt/styler/internal/arena"
	"github.com/jfmt/styler/internal/limits"
)

// Parser is the collaborator ParseStage drives: source text in, an arena
// plus root index or a structured failure out.
type Parser interface {
	Parse(ctx context.Context, source []byte, path string) ParseResult
}

// errSourceTooLarge and friends are returned wrapped in a ParseResult.Failure,
// never raised as panics — the parser never recovers a panic for the
// caller's benefit beyond what tree-sitter itself already guards against.
var (
	errSourceTooLarge = fmt.Errorf("source exceeds MaxSourceSizeBytes")
	errTokenCountOver = fmt.Errorf("token count exceeds MaxTokenCount")
	errSyntaxError    = fmt.Errorf("source contains a syntax error")
)

// newArenaForSource sizes the initial arena conservatively: one node per
// ~8 bytes of source, capped at the configured maximum.
func newArenaForSource(sourceLen int, lim limits.SecurityLimits) *arena.Arena {
	initial := sourceLen/8 + 16
	if initial > lim.MaxArenaCapacity {
		initial = lim.MaxArenaCapacity
	}
	return arena.New(initial, lim.MaxArenaCapacity)
}
