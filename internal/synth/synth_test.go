package synth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
	"github.com/frherrer/GoE2E-PageForge/internal/synth"
)

func intPtr(n int) *int { return &n }

func field(key string, t domain.FieldType, c domain.Constraint) domain.FieldDescriptor {
	return domain.FieldDescriptor{
		Element:    domain.RawElement{Tag: "input", Name: key},
		Locator:    domain.LocatorCandidate{Strategy: domain.StrategyName, Selector: `[name="` + key + `"]`, Unique: true},
		Resolved:   true,
		Type:       t,
		Constraint: c,
		Key:        key,
	}
}

func findRecord(records []domain.TestCaseRecord, id string) (domain.TestCaseRecord, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.TestCaseRecord{}, false
}

var _ = Describe("Synthesizer", func() {
	var s *synth.Synthesizer

	BeforeEach(func() {
		log := logrus.New()
		log.SetOutput(GinkgoWriter)
		s = synth.New(synth.Defaults{EmailLongLength: 132, NeutralNumber: 42}, log)
	})

	Describe("ValuesFor", func() {
		It("should produce the full value set for a required bounded email", func() {
			f := field("email", domain.FieldEmail, domain.Constraint{Required: true, MaxLength: intPtr(50)})

			v := s.ValuesFor(f)

			Expect(v.Positive).To(HaveLen(1))
			Expect(v.Positive[0].Raw).To(Equal("user@example.com"))
			Expect(v.Positive[0].Expected).To(BeTrue())

			Expect(v.Negative).To(HaveLen(3))
			Expect(v.Negative[0].Raw).To(Equal(""))
			Expect(v.Negative[1].Raw).To(Equal("not-an-email"))
			Expect(v.Negative[2].Raw).To(Equal("@no-local.com"))

			Expect(v.Boundary).To(HaveLen(2))
			Expect(v.Boundary[0].Raw).To(HaveLen(50))
			Expect(v.Boundary[0].Raw).To(ContainSubstring("@"))
			Expect(v.Boundary[0].Expected).To(BeTrue())
			Expect(v.Boundary[1].Raw).To(HaveLen(51))
			Expect(v.Boundary[1].Expected).To(BeFalse())
		})

		It("should emit a single long-address boundary for an unbounded email", func() {
			f := field("email", domain.FieldEmail, domain.Constraint{})

			v := s.ValuesFor(f)

			Expect(v.Boundary).To(HaveLen(1))
			Expect(v.Boundary[0].Raw).To(HaveLen(132))
			Expect(v.Boundary[0].Raw).To(ContainSubstring("@"))
			Expect(v.Boundary[0].Expected).To(BeTrue())
		})

		It("should shrink the positive email to fit a tight maxlength", func() {
			f := field("email", domain.FieldEmail, domain.Constraint{MaxLength: intPtr(10)})

			v := s.ValuesFor(f)

			Expect(v.Positive[0].Raw).To(HaveLen(10))
			Expect(v.Positive[0].Raw).To(ContainSubstring("@"))
		})

		It("should omit the empty negative for an optional email", func() {
			f := field("email", domain.FieldEmail, domain.Constraint{})

			v := s.ValuesFor(f)

			for _, val := range v.Negative {
				Expect(val.Raw).ToNot(BeEmpty())
			}
		})

		It("should pair min-length boundaries for a password", func() {
			f := field("password", domain.FieldPassword, domain.Constraint{Required: true, MinLength: intPtr(8)})

			v := s.ValuesFor(f)

			Expect(v.Positive[0].Raw).To(Equal("P@ssw0rd123"))
			Expect(v.Negative).To(HaveLen(1))
			Expect(v.Negative[0].Raw).To(Equal(""))

			Expect(v.Boundary).To(HaveLen(2))
			Expect(v.Boundary[0].Raw).To(HaveLen(8))
			Expect(v.Boundary[0].Expected).To(BeTrue())
			Expect(v.Boundary[1].Raw).To(HaveLen(7))
			Expect(v.Boundary[1].Expected).To(BeFalse())
		})

		It("should stretch the positive password to a large min-length", func() {
			f := field("password", domain.FieldPassword, domain.Constraint{MinLength: intPtr(16)})

			v := s.ValuesFor(f)

			Expect(v.Positive[0].Raw).To(HaveLen(16))
		})

		It("should pair both length boundaries for a fully bounded password", func() {
			f := field("password", domain.FieldPassword, domain.Constraint{
				MinLength: intPtr(8),
				MaxLength: intPtr(12),
			})

			v := s.ValuesFor(f)

			Expect(v.Boundary).To(HaveLen(4))
			Expect(v.Boundary[0].Raw).To(HaveLen(8))
			Expect(v.Boundary[1].Raw).To(HaveLen(7))
			Expect(v.Boundary[2].Raw).To(HaveLen(12))
			Expect(v.Boundary[3].Raw).To(HaveLen(13))
		})

		It("should take the midpoint and both bound pairs for a bounded number", func() {
			f := field("quantity", domain.FieldNumber, domain.Constraint{Min: intPtr(1), Max: intPtr(10)})

			v := s.ValuesFor(f)

			Expect(v.Positive[0].Raw).To(Equal("5"))
			Expect(v.Negative).To(HaveLen(1))
			Expect(v.Negative[0].Raw).To(Equal("abc"))

			Expect(v.Boundary).To(HaveLen(4))
			Expect(v.Boundary[0].Raw).To(Equal("1"))
			Expect(v.Boundary[0].Expected).To(BeTrue())
			Expect(v.Boundary[1].Raw).To(Equal("0"))
			Expect(v.Boundary[1].Expected).To(BeFalse())
			Expect(v.Boundary[2].Raw).To(Equal("10"))
			Expect(v.Boundary[2].Expected).To(BeTrue())
			Expect(v.Boundary[3].Raw).To(Equal("11"))
			Expect(v.Boundary[3].Expected).To(BeFalse())
		})

		It("should step inside a single declared number bound", func() {
			minOnly := s.ValuesFor(field("floor", domain.FieldNumber, domain.Constraint{Min: intPtr(5)}))
			maxOnly := s.ValuesFor(field("ceiling", domain.FieldNumber, domain.Constraint{Max: intPtr(10)}))

			Expect(minOnly.Positive[0].Raw).To(Equal("6"))
			Expect(minOnly.Boundary).To(HaveLen(2))
			Expect(maxOnly.Positive[0].Raw).To(Equal("9"))
			Expect(maxOnly.Boundary).To(HaveLen(2))
		})

		It("should use the neutral default for an unbounded number", func() {
			f := field("age", domain.FieldNumber, domain.Constraint{})

			v := s.ValuesFor(f)

			Expect(v.Positive[0].Raw).To(Equal("42"))
			Expect(v.Boundary).To(BeEmpty())
		})

		It("should bound text only at a declared maxlength", func() {
			f := field("comment", domain.FieldText, domain.Constraint{Required: true, MaxLength: intPtr(20)})

			v := s.ValuesFor(f)

			Expect(v.Positive[0].Raw).To(Equal("Hello World"))
			Expect(v.Negative).To(HaveLen(1))
			Expect(v.Negative[0].Raw).To(Equal(""))
			Expect(v.Boundary).To(HaveLen(2))
			Expect(v.Boundary[0].Raw).To(HaveLen(20))
			Expect(v.Boundary[1].Raw).To(HaveLen(21))
		})

		It("should fabricate nothing for an unconstrained optional text", func() {
			f := field("nickname", domain.FieldText, domain.Constraint{})

			v := s.ValuesFor(f)

			Expect(v.Positive).To(HaveLen(1))
			Expect(v.Negative).To(BeEmpty())
			Expect(v.Boundary).To(BeEmpty())
		})

		It("should cover both states of a checkbox", func() {
			f := field("subscribe", domain.FieldCheckbox, domain.Constraint{})

			v := s.ValuesFor(f)

			Expect(v.Positive).To(HaveLen(2))
			Expect(v.Positive[0].Raw).To(Equal("true"))
			Expect(v.Positive[1].Raw).To(Equal("false"))
			Expect(v.Negative).To(BeEmpty())
			Expect(v.Boundary).To(BeEmpty())
		})

		It("should cover every declared select option", func() {
			f := field("country", domain.FieldSelect, domain.Constraint{})
			f.Element = domain.RawElement{Tag: "select", Name: "country", Options: []string{"tw", "jp", "us"}}

			v := s.ValuesFor(f)

			Expect(v.Positive).To(HaveLen(3))
			Expect(v.Positive[0].Raw).To(Equal("tw"))
			Expect(v.Positive[0].Desc).To(Equal("option_tw"))
			Expect(v.Positive[2].Raw).To(Equal("us"))
		})

		It("should produce nothing for a select without options", func() {
			f := field("empty", domain.FieldSelect, domain.Constraint{})
			f.Element = domain.RawElement{Tag: "select", Name: "empty"}

			Expect(s.ValuesFor(f)).To(Equal(synth.FieldValues{}))
		})
	})

	Describe("Synthesize", func() {
		var fields []domain.FieldDescriptor

		BeforeEach(func() {
			country := field("country", domain.FieldSelect, domain.Constraint{})
			country.Element = domain.RawElement{Tag: "select", Name: "country", Options: []string{"tw", "jp"}}

			fields = []domain.FieldDescriptor{
				field("email", domain.FieldEmail, domain.Constraint{Required: true, MaxLength: intPtr(50)}),
				field("password", domain.FieldPassword, domain.Constraint{Required: true, MinLength: intPtr(8)}),
				country,
			}
		})

		It("should open the positive set with one combined happy-path record", func() {
			cases := s.Synthesize(fields)

			positives := cases[domain.CategoryPositive]
			Expect(positives).ToNot(BeEmpty())
			Expect(positives[0].ID).To(Equal("positive_all_fields_valid"))
			Expect(positives[0].Expected).To(BeTrue())
			Expect(positives[0].Fields).To(HaveLen(3))
			Expect(positives[0].Fields["email"]).To(Equal("user@example.com"))
			Expect(positives[0].Fields["password"]).To(Equal("P@ssw0rd123"))
			Expect(positives[0].Fields["country"]).To(Equal("tw"))
		})

		It("should add per-option coverage records for choice fields only", func() {
			cases := s.Synthesize(fields)

			positives := cases[domain.CategoryPositive]
			Expect(positives).To(HaveLen(3)) // combined + two options

			tw, ok := findRecord(positives, "positive_country_option_tw")
			Expect(ok).To(BeTrue())
			Expect(tw.Fields).To(Equal(map[string]string{"country": "tw"}))

			_, ok = findRecord(positives, "positive_country_option_jp")
			Expect(ok).To(BeTrue())
		})

		It("should target a single field per negative and boundary record", func() {
			cases := s.Synthesize(fields)

			for _, cat := range []domain.Category{domain.CategoryNegative, domain.CategoryBoundary} {
				for _, r := range cases[cat] {
					Expect(r.Fields).To(HaveLen(1), "record %q", r.ID)
				}
			}
		})

		It("should name records by category, field and value description", func() {
			cases := s.Synthesize(fields)

			empty, ok := findRecord(cases[domain.CategoryNegative], "negative_email_empty")
			Expect(ok).To(BeTrue())
			Expect(empty.Expected).To(BeFalse())

			under, ok := findRecord(cases[domain.CategoryBoundary], "boundary_password_under_min_length")
			Expect(ok).To(BeTrue())
			Expect(under.Fields["password"]).To(HaveLen(7))
			Expect(under.Expected).To(BeFalse())

			at, ok := findRecord(cases[domain.CategoryBoundary], "boundary_password_at_min_length")
			Expect(ok).To(BeTrue())
			Expect(at.Fields["password"]).To(HaveLen(8))
			Expect(at.Expected).To(BeTrue())
		})

		It("should keep ids unique when fields collide", func() {
			twin := []domain.FieldDescriptor{
				field("email", domain.FieldEmail, domain.Constraint{Required: true}),
				field("email", domain.FieldEmail, domain.Constraint{Required: true}),
			}

			cases := s.Synthesize(twin)

			seen := map[string]bool{}
			for _, cat := range domain.Categories() {
				for _, r := range cases[cat] {
					Expect(seen[r.ID]).To(BeFalse(), "duplicate id %q", r.ID)
					seen[r.ID] = true
				}
			}
			Expect(seen["negative_email_empty"]).To(BeTrue())
			Expect(seen["negative_email_empty_2"]).To(BeTrue())
		})

		It("should skip unresolved fields and clickables", func() {
			unresolved := field("ghost", domain.FieldText, domain.Constraint{Required: true})
			unresolved.Resolved = false
			button := field("submit", domain.FieldUnknown, domain.Constraint{})

			cases := s.Synthesize([]domain.FieldDescriptor{unresolved, button})

			Expect(cases).To(BeEmpty())
		})

		It("should synthesize deterministically", func() {
			first := s.Synthesize(fields)
			second := s.Synthesize(fields)

			Expect(second).To(Equal(first))
		})
	})
})
