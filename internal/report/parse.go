package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

// FieldRow is one parsed row of the Fields table.
type FieldRow struct {
	Key      string
	Type     string
	Strategy string
	Selector string
	Required bool
	Resolved bool
}

// Summary is the structured content recovered from an emitted analysis
// document. Validation re-parses analysis.md into a Summary to confirm
// the document is still well formed.
type Summary struct {
	Title      string
	Headings   []string
	FieldRows  []FieldRow
	Warnings   []string
	CaseCounts map[string]int
}

// ParseSummary parses an analysis document back into its structured form.
func ParseSummary(src []byte) (Summary, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	summary := Summary{CaseCounts: make(map[string]int)}

	// Walk the AST, routing rows and list items by the heading above them.
	var section string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			heading := inlineText(node, src)
			summary.Headings = append(summary.Headings, heading)
			if node.Level == 1 && summary.Title == "" {
				summary.Title = heading
			}
			section = heading

		case *east.TableRow:
			cells := rowCells(node, src)
			switch section {
			case "Fields":
				if len(cells) != 6 {
					return ast.WalkStop, fmt.Errorf("field row has %d cells, want 6", len(cells))
				}
				summary.FieldRows = append(summary.FieldRows, FieldRow{
					Key:      cells[0],
					Type:     cells[1],
					Strategy: cells[2],
					Selector: cells[3],
					Required: cells[4] == "yes",
					Resolved: cells[5] == "yes",
				})
			case "Case Counts":
				if len(cells) != 2 {
					return ast.WalkStop, fmt.Errorf("case count row has %d cells, want 2", len(cells))
				}
				count, convErr := strconv.Atoi(cells[1])
				if convErr != nil {
					return ast.WalkStop, fmt.Errorf("case count for %q is not a number: %w", cells[0], convErr)
				}
				summary.CaseCounts[cells[0]] = count
			}
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if section == "Warnings" {
				summary.Warnings = append(summary.Warnings, inlineText(node, src))
				return ast.WalkSkipChildren, nil
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return Summary{}, domain.NewError("validate", "", "", "parsing analysis document", err)
	}

	if !strings.HasPrefix(summary.Title, "Page Analysis:") {
		return Summary{}, domain.NewError("validate", "", "",
			"analysis document has no page analysis title", nil)
	}
	return summary, nil
}

func rowCells(row *east.TableRow, source []byte) []string {
	var cells []string
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		cells = append(cells, inlineText(child, source))
	}
	return cells
}

// inlineText flattens every text segment under n.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := child.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
