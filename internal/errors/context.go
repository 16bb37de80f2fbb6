package errors

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hbollon/go-edlib"

	"github.com/jfmt/styler/internal/rules"
	"github.com/jfmt/styler/internal/snippet"
	"github.com/jfmt/styler/internal/source"
)

// Severity is an alias of rules.Severity, so ErrorContext severities and
// violation severities are the same type.
type Severity = rules.Severity

// DefaultMaxErrors is the cap ErrorReporter enforces before it stops
// accepting new entries and flips ShouldHaltProcessing.
const DefaultMaxErrors = 100

// ErrorContext is the normalised shape every reported failure is reduced
// to before rendering, regardless of which typed error produced it.
type ErrorContext struct {
	Category      Category
	Severity      Severity
	ErrorCode     string
	File          string
	SourceRange   source.Range
	SourceText    string
	Message       string
	SuggestedFix  string
	Halt          bool
	Timestamp     time.Time
}

var locationPattern = regexp.MustCompile(`line (\d+)(?:, column (\d+))?`)

// locationFromMessage extracts a "line N[, column M]" location from an
// error message, falling back to the start of the file.
func locationFromMessage(msg string) source.Range {
	m := locationPattern.FindStringSubmatch(msg)
	if m == nil {
		return source.Range{Start: source.Position{Line: 1, Column: 1}, End: source.Position{Line: 1, Column: 1}}
	}
	line, _ := strconv.Atoi(m[1])
	column := 1
	if m[2] != "" {
		column, _ = strconv.Atoi(m[2])
	}
	pos := source.Position{Line: uint32(line), Column: uint32(column)}
	return source.Range{Start: pos, End: pos}
}

// Reporter collects ErrorContext entries up to MaxErrors, after which it
// stops accepting new entries and reports ShouldHaltProcessing() == true.
// Safe for concurrent use: multiple pipeline workers may share one
// Reporter.
type Reporter struct {
	mu         sync.Mutex
	MaxErrors  int
	entries    []ErrorContext
	knownRules []string
	extractor  *snippet.Extractor
}

// NewReporter returns a Reporter with the default max-errors cap.
// knownRuleIDs is used by suggestion matching for unknown rule-id
// configuration errors.
func NewReporter(knownRuleIDs []string) *Reporter {
	return &Reporter{
		MaxErrors:  DefaultMaxErrors,
		knownRules: knownRuleIDs,
		extractor:  snippet.New(),
	}
}

func (r *Reporter) add(ctx ErrorContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) >= r.MaxErrors {
		return
	}
	ctx.Timestamp = time.Now()
	r.entries = append(r.entries, ctx)
}

// ShouldHaltProcessing is true once the cap has been reached, or any
// accepted entry was marked Halt.
func (r *Reporter) ShouldHaltProcessing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) >= r.MaxErrors {
		return true
	}
	for _, e := range r.entries {
		if e.Halt {
			return true
		}
	}
	return false
}

// Entries returns a copy of the collected ErrorContext values.
func (r *Reporter) Entries() []ErrorContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ErrorContext, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Reporter) ReportParseError(file, source string, err *ParseError) {
	rng := locationFromMessage(err.Error())
	r.add(ErrorContext{
		Category:    CategoryParse,
		Severity:    rules.SeverityError,
		ErrorCode:   "PARSE_ERROR",
		File:        file,
		SourceRange: rng,
		SourceText:  r.extractor.Extract(source, rng),
		Message:     err.Error(),
		Halt:        false,
	})
}

func (r *Reporter) ReportConfigError(file string, err *ConfigError) {
	suggestion := r.suggestRuleID(err.Value)
	r.add(ErrorContext{
		Category:     CategoryConfig,
		Severity:     rules.SeverityError,
		ErrorCode:    "CONFIG_ERROR",
		File:         file,
		Message:      err.Error(),
		SuggestedFix: suggestion,
		Halt:         true,
	})
}

func (r *Reporter) ReportViolation(file, sourceText string, v rules.FormattingViolation) {
	rng := source.Range{
		Start: source.Position{Line: v.Line, Column: v.Column},
		End:   source.Position{Line: v.Line, Column: v.Column},
	}
	r.add(ErrorContext{
		Category:    CategoryFormat,
		Severity:    v.Severity,
		ErrorCode:   v.RuleID,
		File:        file,
		SourceRange: rng,
		SourceText:  r.extractor.Extract(sourceText, rng),
		Message:     v.Message,
		Halt:        false,
	})
}

func (r *Reporter) ReportSystemError(file string, err *SystemError) {
	r.add(ErrorContext{
		Category:  CategorySystem,
		Severity:  rules.SeverityError,
		ErrorCode: "SYSTEM_ERROR",
		File:      file,
		Message:   err.Error(),
		Halt:      true,
	})
}

func (r *Reporter) ReportError(file string, err error) {
	switch e := err.(type) {
	case *ParseError:
		r.ReportParseError(file, "", e)
	case *ConfigError:
		r.ReportConfigError(file, e)
	case *SystemError:
		r.ReportSystemError(file, e)
	case *ValidationError:
		r.add(ErrorContext{
			Category:  CategoryValidation,
			Severity:  rules.SeverityError,
			ErrorCode: "VALIDATION_ERROR",
			File:      file,
			Message:   e.Error(),
			Halt:      true,
		})
	default:
		r.add(ErrorContext{
			Category:  CategorySystem,
			Severity:  rules.SeverityError,
			ErrorCode: "UNKNOWN_ERROR",
			File:      file,
			Message:   err.Error(),
			Halt:      false,
		})
	}
}

// suggestRuleID finds the known rule id closest to want by Jaro-Winkler
// similarity (C21: go-edlib).
func (r *Reporter) suggestRuleID(want string) string {
	var best string
	var bestScore float64
	for _, candidate := range r.knownRules {
		score, err := edlib.StringsSimilarity(want, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if best == "" || bestScore < 0.75 {
		return ""
	}
	return fmt.Sprintf("did you mean '%s'?", best)
}

// jsonErrorReport is the wire shape for the JSON error-report renderer
// (spec.md §6: "type: 'error-report'", ISO-8601 timestamp, errorCount).
type jsonErrorReport struct {
	Type       string      `json:"type"`
	Timestamp  string      `json:"timestamp"`
	ErrorCount int         `json:"errorCount"`
	Errors     []jsonError `json:"errors"`
}

type jsonError struct {
	Type          string `json:"type"`
	File          string `json:"file"`
	Line          uint32 `json:"line"`
	Column        uint32 `json:"column"`
	Category      string `json:"category"`
	Severity      string `json:"severity"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	SuggestedFix  string `json:"suggestedFix,omitempty"`
	SourceSnippet string `json:"sourceSnippet,omitempty"`
}

// RenderJSON produces the machine-readable error report (spec.md §6).
func (r *Reporter) RenderJSON(now time.Time) (string, error) {
	entries := r.Entries()
	report := jsonErrorReport{
		Type:       "error-report",
		Timestamp:  now.UTC().Format(time.RFC3339),
		ErrorCount: len(entries),
		Errors:     make([]jsonError, 0, len(entries)),
	}
	for _, e := range entries {
		report.Errors = append(report.Errors, jsonError{
			Type:          "error",
			File:          e.File,
			Line:          e.SourceRange.Start.Line,
			Column:        e.SourceRange.Start.Column,
			Category:      string(e.Category),
			Severity:      strings.ToLower(string(e.Severity)),
			Code:          e.ErrorCode,
			Message:       e.Message,
			SuggestedFix:  e.SuggestedFix,
			SourceSnippet: e.SourceText,
		})
	}
	buf, err := json.Marshal(report)
	if err != nil {
		return "", NewSystemError("render json error report", err)
	}
	return string(buf), nil
}

// RenderHuman produces the human-readable multi-error listing.
func (r *Reporter) RenderHuman() string {
	entries := r.Entries()
	if len(entries) == 0 {
		return "No errors reported."
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s] %s:%d:%d: %s", strings.ToUpper(string(e.Severity)), e.File,
			e.SourceRange.Start.Line, e.SourceRange.Start.Column, e.Message)
		if e.SuggestedFix != "" {
			fmt.Fprintf(&b, " (%s)", e.SuggestedFix)
		}
		if e.SourceText != "" {
			b.WriteByte('\n')
			b.WriteString(e.SourceText)
		}
	}
	return b.String()
}
