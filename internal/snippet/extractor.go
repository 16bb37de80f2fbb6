// Package snippet renders a caret-annotated excerpt of source text around
// an error location, the way a compiler diagnostic would.
package snippet

import (
	"fmt"
	"strings"

	"github.com/jfmt/styler/internal/source"
)

const (
	tabWidth      = 4
	maxLineLength = 120
)

// Extractor turns a byte/line range into a human-readable excerpt.
type Extractor struct {
	ContextLines int
}

// New returns an Extractor with the default 2 lines of context on either
// side of the error range.
func New() *Extractor {
	return &Extractor{ContextLines: 2}
}

// Extract renders the excerpt for rng within src. Line numbers in rng are
// 1-based; an out-of-range start line yields a one-line "not found" notice.
func (e *Extractor) Extract(src string, rng source.Range) string {
	lines := strings.Split(src, "\n")
	startLine := int(rng.Start.Line)
	if startLine < 1 || startLine > len(lines) {
		return fmt.Sprintf("(line %d not found)", startLine)
	}

	contextLines := e.ContextLines
	if contextLines <= 0 {
		contextLines = 2
	}

	firstLine := startLine - contextLines
	if firstLine < 1 {
		firstLine = 1
	}
	lastLine := startLine + contextLines
	if lastLine > len(lines) {
		lastLine = len(lines)
	}

	gutterWidth := len(fmt.Sprintf("%d", lastLine))

	var b strings.Builder
	for ln := firstLine; ln <= lastLine; ln++ {
		rendered, _ := expandAndTruncate(lines[ln-1])
		fmt.Fprintf(&b, "%*d | %s\n", gutterWidth, ln, rendered)
		if ln == startLine {
			b.WriteString(strings.Repeat(" ", gutterWidth+3))
			b.WriteString(caretLine(lines[ln-1], int(rng.Start.Column), rng))
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// caretLine renders the indicator beneath the error line: a single
// "^--- error starts here" for multi-line ranges, or a run of carets
// aligned to the expanded column for a single-line range.
func caretLine(line string, column int, rng source.Range) string {
	expandedCol := expandedColumn(line, column)
	pad := strings.Repeat(" ", expandedCol)
	if rng.Start.Line != rng.End.Line {
		return pad + "^--- error starts here"
	}

	width := int(rng.End.Column) - int(rng.Start.Column)
	if width < 1 {
		width = 1
	}
	return pad + strings.Repeat("^", width)
}

// expandedColumn converts a 1-based byte column into the column it would
// occupy after tab expansion.
func expandedColumn(line string, column int) int {
	if column < 1 {
		column = 1
	}
	runes := []rune(line)
	limit := column - 1
	if limit > len(runes) {
		limit = len(runes)
	}
	expanded := 0
	for _, r := range runes[:limit] {
		if r == '\t' {
			expanded += tabWidth - (expanded % tabWidth)
		} else {
			expanded++
		}
	}
	return expanded
}

// expandAndTruncate expands tabs to tabWidth spaces and truncates the
// result to maxLineLength characters, appending "..." when truncated.
func expandAndTruncate(line string) (string, bool) {
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - (col % tabWidth)
			b.WriteString(strings.Repeat(" ", n))
			col += n
		} else {
			b.WriteRune(r)
			col++
		}
	}
	expanded := b.String()
	if len([]rune(expanded)) <= maxLineLength {
		return expanded, false
	}
	runes := []rune(expanded)
	return string(runes[:maxLineLength]) + "...", true
}
