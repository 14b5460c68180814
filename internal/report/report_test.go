package report_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
	"github.com/frherrer/GoE2E-PageForge/internal/report"
)

var _ = Describe("Report", func() {
	var (
		generated time.Time
		fields    []domain.FieldDescriptor
		warnings  []domain.Warning
		cases     map[domain.Category][]domain.TestCaseRecord
	)

	BeforeEach(func() {
		generated = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
		fields = []domain.FieldDescriptor{
			{
				Element:    domain.RawElement{Tag: "input", InputType: "email", Name: "email"},
				Locator:    domain.LocatorCandidate{Strategy: domain.StrategyID, Selector: "#email", Unique: true},
				Resolved:   true,
				Type:       domain.FieldEmail,
				Constraint: domain.Constraint{Required: true},
				Key:        "email",
			},
			{
				Element:  domain.RawElement{Tag: "input", InputType: "text", Name: "nickname"},
				Resolved: false,
				Type:     domain.FieldText,
				Key:      "nickname",
			},
		}
		warnings = []domain.Warning{
			{Field: "nickname", Message: "unresolved locator: no unique selector found"},
		}
		cases = map[domain.Category][]domain.TestCaseRecord{
			domain.CategoryPositive: {
				{ID: "positive_all_fields_valid"},
			},
			domain.CategoryNegative: {
				{ID: "negative_email_empty"},
				{ID: "negative_email_missing_at"},
			},
		}
	})

	Describe("Build", func() {
		It("should keep one row per field, resolved or not", func() {
			r := report.Build("login", "https://example.com/login", "run-1", generated, fields, warnings, cases)
			Expect(r.Fields).To(HaveLen(2))
			Expect(r.Fields[0].Selector).To(Equal("#email"))
			Expect(r.Fields[1].Resolved).To(BeFalse())
			Expect(r.Fields[1].Selector).To(BeEmpty())
		})

		It("should count cases for every category", func() {
			r := report.Build("login", "https://example.com/login", "run-1", generated, fields, warnings, cases)
			Expect(r.CaseCounts).To(HaveKeyWithValue(domain.CategoryPositive, 1))
			Expect(r.CaseCounts).To(HaveKeyWithValue(domain.CategoryNegative, 2))
			Expect(r.CaseCounts).To(HaveKeyWithValue(domain.CategoryBoundary, 0))
		})
	})

	Describe("Render", func() {
		It("should produce the full document layout", func() {
			r := report.Build("login", "https://example.com/login", "run-1", generated, fields, warnings, cases)
			doc := r.Render()

			Expect(doc).To(ContainSubstring("# Page Analysis: login"))
			Expect(doc).To(ContainSubstring("- URL: https://example.com/login"))
			Expect(doc).To(ContainSubstring("- Run: run-1"))
			Expect(doc).To(ContainSubstring("- Generated: 2026-03-14T09:30:00Z"))
			Expect(doc).To(ContainSubstring("## Fields"))
			Expect(doc).To(ContainSubstring("| email | email | id | #email | yes | yes |"))
			Expect(doc).To(ContainSubstring("## Warnings"))
			Expect(doc).To(ContainSubstring("- nickname: unresolved locator"))
			Expect(doc).To(ContainSubstring("## Case Counts"))
			Expect(doc).To(ContainSubstring("| positive | 1 |"))
			Expect(doc).To(ContainSubstring("| negative | 2 |"))
			Expect(doc).To(ContainSubstring("| boundary | 0 |"))
		})

		It("should say so when there are no warnings", func() {
			r := report.Build("login", "https://example.com/login", "run-1", generated, fields, nil, cases)
			Expect(r.Render()).To(ContainSubstring("No warnings."))
		})

		It("should escape pipes inside selectors", func() {
			fields[0].Locator.Selector = `input[data-label="a|b"]`
			r := report.Build("login", "https://example.com/login", "run-1", generated, fields, nil, cases)
			Expect(r.Render()).To(ContainSubstring(`a\|b`))
		})
	})

	Describe("ParseSummary", func() {
		It("should round-trip a rendered document", func() {
			r := report.Build("login", "https://example.com/login", "run-1", generated, fields, warnings, cases)
			summary, err := report.ParseSummary([]byte(r.Render()))
			Expect(err).ToNot(HaveOccurred())

			Expect(summary.Title).To(Equal("Page Analysis: login"))
			Expect(summary.Headings).To(ContainElements("Fields", "Warnings", "Case Counts"))

			Expect(summary.FieldRows).To(HaveLen(2))
			Expect(summary.FieldRows[0].Key).To(Equal("email"))
			Expect(summary.FieldRows[0].Type).To(Equal("email"))
			Expect(summary.FieldRows[0].Strategy).To(Equal("id"))
			Expect(summary.FieldRows[0].Selector).To(Equal("#email"))
			Expect(summary.FieldRows[0].Required).To(BeTrue())
			Expect(summary.FieldRows[0].Resolved).To(BeTrue())
			Expect(summary.FieldRows[1].Key).To(Equal("nickname"))
			Expect(summary.FieldRows[1].Resolved).To(BeFalse())

			Expect(summary.Warnings).To(HaveLen(1))
			Expect(summary.Warnings[0]).To(ContainSubstring("unresolved locator"))

			Expect(summary.CaseCounts).To(HaveKeyWithValue("positive", 1))
			Expect(summary.CaseCounts).To(HaveKeyWithValue("negative", 2))
			Expect(summary.CaseCounts).To(HaveKeyWithValue("boundary", 0))
		})

		It("should keep warnings empty for a clean run", func() {
			r := report.Build("login", "https://example.com/login", "run-1", generated, fields, nil, cases)
			summary, err := report.ParseSummary([]byte(r.Render()))
			Expect(err).ToNot(HaveOccurred())
			Expect(summary.Warnings).To(BeEmpty())
		})

		It("should reject a document without the analysis title", func() {
			_, err := report.ParseSummary([]byte("## Fields\n\nnothing here\n"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("title"))
		})

		It("should reject a malformed field row", func() {
			doc := "# Page Analysis: login\n\n## Fields\n\n" +
				"| Key | Type |\n| --- | --- |\n| email | email |\n"
			_, err := report.ParseSummary([]byte(doc))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("want 6"))
		})

		It("should reject a non-numeric case count", func() {
			doc := "# Page Analysis: login\n\n## Case Counts\n\n" +
				"| Category | Count |\n| --- | --- |\n| positive | lots |\n"
			_, err := report.ParseSummary([]byte(doc))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("not a number"))
		})
	})
})
