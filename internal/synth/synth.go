// Package synth turns typed field descriptors into positive, negative and
// boundary test case records. Values derive from declared constraints only;
// an undeclared bound never fabricates a boundary case.
package synth

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

// Defaults are the synthesis knobs that come from configuration rather than
// from the scanned page.
type Defaults struct {
	// EmailLongLength is the address length used for the single long-address
	// boundary case of email fields without a declared maxlength.
	EmailLongLength int
	// NeutralNumber is the positive value for number fields without bounds.
	NeutralNumber int
}

// Value is one synthesized input for a single field. Desc is a short
// value description used to build the case id.
type Value struct {
	Raw      string
	Desc     string
	Expected bool
}

// FieldValues groups one field's synthesized values by category. The first
// positive value is the field's primary value in the combined record.
type FieldValues struct {
	Positive []Value
	Negative []Value
	Boundary []Value
}

// Synthesizer builds test case records from field descriptors.
type Synthesizer struct {
	defaults Defaults
	log      *logrus.Logger
}

// New creates a synthesizer.
func New(defaults Defaults, log *logrus.Logger) *Synthesizer {
	return &Synthesizer{defaults: defaults, log: log}
}

// ValuesFor produces the per-category values for one field according to its
// semantic type and constraint. Fields outside the synthesizable set come
// back empty.
func (s *Synthesizer) ValuesFor(f domain.FieldDescriptor) FieldValues {
	switch f.Type {
	case domain.FieldEmail:
		return s.emailValues(f.Constraint)
	case domain.FieldPassword:
		return s.passwordValues(f.Constraint)
	case domain.FieldNumber:
		return s.numberValues(f.Constraint)
	case domain.FieldText, domain.FieldTextarea:
		return s.textValues(f.Constraint)
	case domain.FieldCheckbox, domain.FieldRadio:
		return boolValues()
	case domain.FieldSelect:
		return selectValues(f.Element.Options)
	default:
		return FieldValues{}
	}
}

// Synthesize assembles the record set for every synthesizable field. The
// positive list opens with one combined happy-path record holding each
// field's primary value, followed by per-option coverage records for choice
// fields. Negative and boundary records each exercise a single field. Ids
// are unique within the returned set.
func (s *Synthesizer) Synthesize(fields []domain.FieldDescriptor) map[domain.Category][]domain.TestCaseRecord {
	cases := make(map[domain.Category][]domain.TestCaseRecord)
	ids := make(map[string]int)

	type fieldSet struct {
		field  domain.FieldDescriptor
		values FieldValues
	}
	var (
		sets     []fieldSet
		combined = make(map[string]string)
	)
	for _, f := range fields {
		if !f.Synthesizable() {
			continue
		}
		v := s.ValuesFor(f)
		if len(v.Positive) == 0 {
			s.log.Debugf("Field %q produced no positive value, skipping", f.Key)
			continue
		}
		sets = append(sets, fieldSet{field: f, values: v})
		combined[f.Key] = v.Positive[0].Raw
	}
	if len(sets) == 0 {
		return cases
	}

	cases[domain.CategoryPositive] = append(cases[domain.CategoryPositive], domain.TestCaseRecord{
		ID:       uniqueID(ids, "positive_all_fields_valid"),
		Category: domain.CategoryPositive,
		Fields:   combined,
		Expected: true,
	})

	for _, fs := range sets {
		if isChoice(fs.field.Type) {
			for _, val := range fs.values.Positive {
				cases[domain.CategoryPositive] = append(cases[domain.CategoryPositive],
					record(ids, domain.CategoryPositive, fs.field.Key, val))
			}
		}
		for _, val := range fs.values.Negative {
			cases[domain.CategoryNegative] = append(cases[domain.CategoryNegative],
				record(ids, domain.CategoryNegative, fs.field.Key, val))
		}
		for _, val := range fs.values.Boundary {
			cases[domain.CategoryBoundary] = append(cases[domain.CategoryBoundary],
				record(ids, domain.CategoryBoundary, fs.field.Key, val))
		}
	}
	return cases
}

func isChoice(t domain.FieldType) bool {
	return t == domain.FieldCheckbox || t == domain.FieldRadio || t == domain.FieldSelect
}

func record(ids map[string]int, cat domain.Category, key string, val Value) domain.TestCaseRecord {
	return domain.TestCaseRecord{
		ID:       uniqueID(ids, fmt.Sprintf("%s_%s_%s", cat, key, val.Desc)),
		Category: cat,
		Fields:   map[string]string{key: val.Raw},
		Expected: val.Expected,
	}
}

// uniqueID disambiguates colliding ids with a counter suffix.
func uniqueID(seen map[string]int, id string) string {
	seen[id]++
	if n := seen[id]; n > 1 {
		return fmt.Sprintf("%s_%d", id, n)
	}
	return id
}
