package snippet

import (
	"strings"
	"testing"

	"github.com/jfmt/styler/internal/source"
	"github.com/stretchr/testify/assert"
)

func TestExtractSingleLineCaret(t *testing.T) {
	src := "class Foo {\n    int x = 1;\n}\n"
	e := New()
	out := e.Extract(src, source.Range{
		Start: source.Position{Line: 2, Column: 9},
		End:   source.Position{Line: 2, Column: 10},
	})
	assert.Contains(t, out, "2 | ")
	assert.Contains(t, out, "^")
}

func TestExtractOutOfRange(t *testing.T) {
	e := New()
	out := e.Extract("a\nb\n", source.Range{Start: source.Position{Line: 99, Column: 1}})
	assert.Equal(t, "(line 99 not found)", out)
}

func TestExtractMultiLineUsesStartsHereMarker(t *testing.T) {
	e := New()
	out := e.Extract("a\nb\nc\nd\n", source.Range{
		Start: source.Position{Line: 2, Column: 1},
		End:   source.Position{Line: 3, Column: 1},
	})
	assert.Contains(t, out, "error starts here")
}

func TestExtractTruncatesLongLines(t *testing.T) {
	long := strings.Repeat("x", 200)
	e := New()
	out := e.Extract(long+"\n", source.Range{Start: source.Position{Line: 1, Column: 1}})
	assert.Contains(t, out, "...")
}

func TestExpandedColumnAccountsForTabs(t *testing.T) {
	col := expandedColumn("\tfoo", 3)
	assert.Equal(t, 5, col)
}
