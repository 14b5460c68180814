// Package report builds the analysis document for a scanned page and
// re-parses emitted documents when a bundle is validated.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

// FieldSummary is one row of the analysis field table.
type FieldSummary struct {
	Key      string
	Type     domain.FieldType
	Strategy domain.Strategy
	Selector string
	Required bool
	Resolved bool
}

// Report is the full analysis for one scenario run.
type Report struct {
	Scenario    string
	URL         string
	RunID       string
	GeneratedAt time.Time
	Fields      []FieldSummary
	Warnings    []domain.Warning
	CaseCounts  map[domain.Category]int
}

// Build assembles a Report from the pipeline's intermediate results.
// Unresolved fields keep their row so the document shows what the
// resolver could not locate.
func Build(scenario, url, runID string, generatedAt time.Time,
	fields []domain.FieldDescriptor, warnings []domain.Warning,
	cases map[domain.Category][]domain.TestCaseRecord) Report {

	r := Report{
		Scenario:    scenario,
		URL:         url,
		RunID:       runID,
		GeneratedAt: generatedAt,
		Warnings:    warnings,
		CaseCounts:  make(map[domain.Category]int),
	}
	for _, f := range fields {
		r.Fields = append(r.Fields, FieldSummary{
			Key:      f.Key,
			Type:     f.Type,
			Strategy: f.Locator.Strategy,
			Selector: f.Locator.Selector,
			Required: f.Constraint.Required,
			Resolved: f.Resolved,
		})
	}
	for _, cat := range domain.Categories() {
		r.CaseCounts[cat] = len(cases[cat])
	}
	return r
}

// Render produces the markdown document written as analysis.md.
func (r Report) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Page Analysis: %s\n\n", r.Scenario)
	fmt.Fprintf(&b, "- URL: %s\n", r.URL)
	fmt.Fprintf(&b, "- Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n\n", r.GeneratedAt.UTC().Format(time.RFC3339))

	b.WriteString("## Fields\n\n")
	b.WriteString("| Key | Type | Strategy | Selector | Required | Resolved |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, f := range r.Fields {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			escapeCell(f.Key), escapeCell(string(f.Type)), escapeCell(string(f.Strategy)),
			escapeCell(f.Selector), yesNo(f.Required), yesNo(f.Resolved))
	}

	b.WriteString("\n## Warnings\n\n")
	if len(r.Warnings) == 0 {
		b.WriteString("No warnings.\n")
	} else {
		for _, w := range r.Warnings {
			if w.Field != "" {
				fmt.Fprintf(&b, "- %s: %s\n", w.Field, w.Message)
			} else {
				fmt.Fprintf(&b, "- %s\n", w.Message)
			}
		}
	}

	b.WriteString("\n## Case Counts\n\n")
	b.WriteString("| Category | Count |\n")
	b.WriteString("| --- | --- |\n")
	for _, cat := range domain.Categories() {
		fmt.Fprintf(&b, "| %s | %d |\n", cat, r.CaseCounts[cat])
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// escapeCell keeps selectors and messages from breaking table rows.
func escapeCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
