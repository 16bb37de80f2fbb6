package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jfmt/styler/internal/errors"
)

// Renderer turns a ViolationReport into its final string form.
type Renderer interface {
	Render(r ViolationReport) (string, error)
}

// NewRenderer returns the renderer for the given format.
func NewRenderer(format OutputFormat) Renderer {
	if format == FormatJSON {
		return jsonRenderer{}
	}
	return humanRenderer{}
}

type humanRenderer struct{}

func (humanRenderer) Render(r ViolationReport) (string, error) {
	if len(r.Violations) == 0 {
		return fmt.Sprintf("✅ No errors found: %s", r.FilePath), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d violation(s)\n", r.FilePath, len(r.Violations))
	for _, v := range r.Violations {
		fmt.Fprintf(&b, "  [%s] %s:%d:%d %s: %s\n", v.Severity, r.FilePath, v.Line, v.Column, v.RuleID, v.Message)
	}
	b.WriteString("\nBy rule:\n")
	for ruleID, count := range r.Counts {
		fmt.Fprintf(&b, "  %s: %d\n", ruleID, count)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

type jsonRenderer struct{}

type jsonViolation struct {
	RuleID   string `json:"ruleId"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     uint32 `json:"line"`
	Column   uint32 `json:"column"`
}

type jsonViolationReport struct {
	Type       string          `json:"type"`
	File       string          `json:"file"`
	Violations []jsonViolation `json:"violations"`
	Counts     map[string]int  `json:"counts"`
}

func (jsonRenderer) Render(r ViolationReport) (string, error) {
	out := jsonViolationReport{
		Type:       "violation-report",
		File:       r.FilePath,
		Violations: make([]jsonViolation, 0, len(r.Violations)),
		Counts:     r.Counts,
	}
	for _, v := range r.Violations {
		out.Violations = append(out.Violations, jsonViolation{
			RuleID: v.RuleID, Severity: string(v.Severity), Message: v.Message, Line: v.Line, Column: v.Column,
		})
	}
	buf, err := json.Marshal(out)
	if err != nil {
		return "", errors.NewSystemError("render json violation report", err)
	}
	return string(buf), nil
}
