// Package importorganizer is a reference FormattingRule: it sorts import
// declarations (static imports first, then alphabetical) and reports a
// WARNING violation for each adjacent pair found out of order. It is
// intentionally minimal — spec.md §1 scopes individual rule bodies out of
// the core; this exists to exercise every pipeline path spec.md §8's
// end-to-end scenarios 3 and 4 name explicitly.
package importorganizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/jfmt/styler/internal/arena"
	"github.com/jfmt/styler/internal/rules"
	"github.com/jfmt/styler/internal/txctx"
)

// RuleID is the stable identifier for this rule.
const RuleID = "import-organizer"

// Config is this rule's (empty) entry in the ordered rule_configs list:
// the rule takes no parameters, but still registers a Schema so it takes
// part in the same schema lookup as other rules. The schema declares no
// properties, so extra fields in a [[rules]] TOML table for this id are
// accepted and ignored.
type Config struct{}

func (Config) RuleID() string { return RuleID }

// Schema describes the (empty) JSON shape a decoded TOML rule-config blob
// must have for this rule.
var Schema = &jsonschema.Schema{
	Type: "object",
}

// Rule implements rules.Rule.
type Rule struct{}

// New returns the import-organizer rule.
func New() *Rule { return &Rule{} }

func (r *Rule) ID() string                      { return RuleID }
func (r *Rule) Name() string                    { return "Import Organizer" }
func (r *Rule) Description() string             { return "Sorts import declarations: static imports first, then alphabetically." }
func (r *Rule) DefaultSeverity() rules.Severity { return rules.SeverityWarning }

type importEntry struct {
	index         arena.NodeIndex
	qualifiedName string
	isStatic      bool
	start, end    uint32
}

func (e importEntry) sortKey() (bool, string) { return !e.isStatic, e.qualifiedName }

func collectImports(ctx *txctx.Context) ([]importEntry, error) {
	if ctx == nil || ctx.Arena == nil {
		return nil, nil
	}
	var entries []importEntry
	count := ctx.Arena.NodeCount()
	for i := 0; i < count; i++ {
		idx := arena.NodeIndex(i)
		t, err := ctx.Arena.Type(idx)
		if err != nil {
			return nil, err
		}
		if t != arena.NodeImportDeclaration {
			continue
		}
		attr, err := ctx.Arena.ImportAttributeOf(idx)
		if err != nil {
			return nil, err
		}
		start, _ := ctx.Arena.Start(idx)
		end, _ := ctx.Arena.End(idx)
		entries = append(entries, importEntry{
			index:         idx,
			qualifiedName: attr.QualifiedName,
			isStatic:      attr.IsStatic,
			start:         start,
			end:           end,
		})
	}
	return entries, nil
}

func isSorted(entries []importEntry) bool {
	for i := 1; i < len(entries); i++ {
		aStatic, aName := entries[i-1].sortKey()
		bStatic, bName := entries[i].sortKey()
		if aStatic != bStatic {
			if aStatic && !bStatic {
				return false
			}
			continue
		}
		if aName > bName {
			return false
		}
	}
	return true
}

func renderImportBlock(entries []importEntry) string {
	sorted := make([]importEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		aStatic, aName := sorted[i].sortKey()
		bStatic, bName := sorted[j].sortKey()
		if aStatic != bStatic {
			return !aStatic // the key holds !isStatic, so aStatic==false is a static import and sorts first
		}
		return aName < bName
	})

	var b strings.Builder
	for i, e := range sorted {
		if i > 0 {
			b.WriteByte('\n')
		}
		if e.isStatic {
			fmt.Fprintf(&b, "import static %s;", e.qualifiedName)
		} else {
			fmt.Fprintf(&b, "import %s;", e.qualifiedName)
		}
	}
	return b.String()
}

// Analyze reports one WARNING violation per adjacent out-of-order import
// pair, each carrying a FixStrategy that replaces the whole import block
// with the fully sorted form.
func (r *Rule) Analyze(ctx *txctx.Context, configs []rules.Config) ([]rules.FormattingViolation, error) {
	if ctx == nil {
		return nil, &rules.ErrNilArgument{RuleID: RuleID, Arg: "tx_ctx"}
	}
	entries, err := collectImports(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) < 2 || isSorted(entries) {
		return nil, nil
	}

	replacement := renderImportBlock(entries)
	fix := rules.FixStrategy{
		Description:     "sort import declarations",
		AutoApplicable:  true,
		ReplacementText: replacement,
		ByteStart:       entries[0].start,
		ByteEnd:         entries[len(entries)-1].end,
	}

	var violations []rules.FormattingViolation
	for i := 1; i < len(entries); i++ {
		aStatic, aName := entries[i-1].sortKey()
		bStatic, bName := entries[i].sortKey()
		outOfOrder := (aStatic && !bStatic) || (aStatic == bStatic && aName > bName)
		if !outOfOrder {
			continue
		}
		violations = append(violations, rules.FormattingViolation{
			RuleID:         RuleID,
			Severity:       rules.SeverityWarning,
			Message:        fmt.Sprintf("import %q should come before %q", entries[i].qualifiedName, entries[i-1].qualifiedName),
			File:           ctx.FilePath,
			ByteStart:      entries[i-1].start,
			ByteEnd:        entries[i].end,
			SuggestedFixes: []rules.FixStrategy{fix},
		})
	}
	return violations, nil
}

// Format rewrites the import block in sorted order; returns the source
// unchanged if there is nothing to sort. Running Format twice in a row is
// idempotent because sorting an already-sorted block is a no-op.
func (r *Rule) Format(ctx *txctx.Context, configs []rules.Config) (string, error) {
	if ctx == nil {
		return "", &rules.ErrNilArgument{RuleID: RuleID, Arg: "tx_ctx"}
	}
	entries, err := collectImports(ctx)
	if err != nil {
		return "", err
	}
	if len(entries) < 2 || isSorted(entries) {
		return ctx.Source, nil
	}

	replacement := renderImportBlock(entries)
	start := entries[0].start
	end := entries[len(entries)-1].end
	if int(end) > len(ctx.Source) || start > end {
		return "", fmt.Errorf("%s: import block range [%d,%d) out of bounds for source of length %d", RuleID, start, end, len(ctx.Source))
	}
	return ctx.Source[:start] + replacement + ctx.Source[end:], nil
}
