// Package txctx defines TransformationContext (spec.md §3, C5): the
// immutable view a FormattingRule receives, gathering the arena, a pointer
// at the current source text, and the collaborators a rule may consult
// (the classpath scanner) without giving rules write access to any of
// them.
package txctx

import (
	"github.com/jfmt/styler/internal/arena"
	"github.com/jfmt/styler/internal/classpath"
	"github.com/jfmt/styler/internal/limits"
)

// Context is passed to every FormattingRule call. It is immutable after
// construction — rules read it freely without synchronization (spec.md
// §5, "TransformationContext is immutable after construction").
type Context struct {
	Arena       *arena.Arena
	Root        arena.NodeIndex
	Source      string
	FilePath    string
	Limits      limits.SecurityLimits
	Classpath   classpath.Scanner // may be nil if no classpath was configured
}

// WithSource returns a shallow copy of c with Source replaced. Arena, Root
// and FilePath are carried forward unchanged (spec.md §4.4, FormatStage:
// "rebuild the context around next_source; arena, root and file_path
// remain; only the source text changes").
func (c Context) WithSource(next string) Context {
	c.Source = next
	return c
}
