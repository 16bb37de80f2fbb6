package source

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// LineMapping is a best-effort bijection approximation from original line
// numbers (1-based) to formatted line numbers (1-based), computed from a
// diff between the two texts (spec.md §3, C7).
type LineMapping struct {
	// forward[i] holds the formatted line number (1-based) for original
	// line i+1. FromDiff maps deleted lines to the next matched line, so a
	// value of 0 occurs only when the formatted text has no lines.
	forward []int
	origLen int
}

// Identity returns the mapping valid when no rule changed the source: line
// n maps to line n for every line in a text of lineCount lines.
func Identity(lineCount int) LineMapping {
	forward := make([]int, lineCount)
	for i := range forward {
		forward[i] = i + 1
	}
	return LineMapping{forward: forward, origLen: lineCount}
}

// FromDiff computes the mapping from original to final source using a
// line-level diff (grounded on github.com/pmezard/go-difflib, a direct
// requirement in go.mod). Matched
// (unchanged) line blocks map directly; lines inside a replaced or deleted
// block map to the nearest following matched line, or the last formatted
// line if the block runs to the end of the file — an approximation, not a
// true bijection, as spec.md §3 allows ("approximation").
func FromDiff(original, final string) LineMapping {
	origLines := splitLinesKeepCount(original)
	finalLines := splitLinesKeepCount(final)

	forward := make([]int, len(origLines))

	matcher := difflib.NewMatcher(difflib.SplitLines(original), difflib.SplitLines(final))
	blocks := matcher.GetMatchingBlocks()

	for _, blk := range blocks {
		for k := 0; k < blk.Size; k++ {
			origIdx := blk.A + k
			finalIdx := blk.B + k
			if origIdx < len(forward) {
				forward[origIdx] = finalIdx + 1
			}
		}
	}

	// Fill gaps between matched blocks: any unmapped original line takes
	// the formatted line number of the next mapped line, or the last
	// formatted line if nothing follows.
	lastFinal := len(finalLines)
	for i := len(forward) - 1; i >= 0; i-- {
		if forward[i] == 0 {
			forward[i] = lastFinal
		} else {
			lastFinal = forward[i]
		}
	}

	return LineMapping{forward: forward, origLen: len(origLines)}
}

// Map returns the formatted line number for the given 1-based original
// line, and whether that original line number is in range.
func (m LineMapping) Map(originalLine int) (int, bool) {
	if originalLine < 1 || originalLine > m.origLen {
		return 0, false
	}
	return m.forward[originalLine-1], true
}

// IsIdentity reports whether the mapping is the identity mapping, i.e. no
// formatting changed any line number.
func (m LineMapping) IsIdentity() bool {
	for i, v := range m.forward {
		if v != i+1 {
			return false
		}
	}
	return true
}

func splitLinesKeepCount(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
