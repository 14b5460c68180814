package synth

import (
	"strconv"
	"strings"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

const (
	baseEmail    = "user@example.com"
	basePassword = "P@ssw0rd123"
	baseText     = "Hello World"
)

func (s *Synthesizer) emailValues(c domain.Constraint) FieldValues {
	var v FieldValues

	v.Positive = append(v.Positive, Value{Raw: fitEmail(c), Desc: "valid_address", Expected: true})

	if c.Required {
		v.Negative = append(v.Negative, Value{Raw: "", Desc: "empty", Expected: false})
	}
	v.Negative = append(v.Negative,
		Value{Raw: "not-an-email", Desc: "missing_at", Expected: false},
		Value{Raw: "@no-local.com", Desc: "empty_local", Expected: false},
	)

	if c.MaxLength != nil {
		v.Boundary = append(v.Boundary,
			Value{Raw: emailOfLength(*c.MaxLength), Desc: "at_max_length", Expected: true},
			Value{Raw: emailOfLength(*c.MaxLength + 1), Desc: "over_max_length", Expected: false},
		)
	} else {
		v.Boundary = append(v.Boundary,
			Value{Raw: emailOfLength(s.defaults.EmailLongLength), Desc: "long_address", Expected: true},
		)
	}
	return v
}

func (s *Synthesizer) passwordValues(c domain.Constraint) FieldValues {
	var v FieldValues

	v.Positive = append(v.Positive, Value{Raw: fitPassword(c), Desc: "valid_password", Expected: true})

	if c.Required {
		v.Negative = append(v.Negative, Value{Raw: "", Desc: "empty", Expected: false})
	}

	if c.MinLength != nil && *c.MinLength > 0 {
		v.Boundary = append(v.Boundary,
			Value{Raw: mixedPassword(*c.MinLength), Desc: "at_min_length", Expected: true},
			Value{Raw: mixedPassword(*c.MinLength - 1), Desc: "under_min_length", Expected: false},
		)
	}
	if c.MaxLength != nil {
		v.Boundary = append(v.Boundary,
			Value{Raw: mixedPassword(*c.MaxLength), Desc: "at_max_length", Expected: true},
			Value{Raw: mixedPassword(*c.MaxLength + 1), Desc: "over_max_length", Expected: false},
		)
	}
	return v
}

func (s *Synthesizer) numberValues(c domain.Constraint) FieldValues {
	var v FieldValues

	raw, desc := s.numberPositive(c)
	v.Positive = append(v.Positive, Value{Raw: raw, Desc: desc, Expected: true})

	v.Negative = append(v.Negative, Value{Raw: "abc", Desc: "non_numeric", Expected: false})

	if c.Min != nil {
		v.Boundary = append(v.Boundary,
			Value{Raw: strconv.Itoa(*c.Min), Desc: "at_min", Expected: true},
			Value{Raw: strconv.Itoa(*c.Min - 1), Desc: "below_min", Expected: false},
		)
	}
	if c.Max != nil {
		v.Boundary = append(v.Boundary,
			Value{Raw: strconv.Itoa(*c.Max), Desc: "at_max", Expected: true},
			Value{Raw: strconv.Itoa(*c.Max + 1), Desc: "above_max", Expected: false},
		)
	}
	return v
}

// numberPositive picks a value inside the declared bounds: the midpoint when
// both exist, one step inside a single bound, the neutral default otherwise.
func (s *Synthesizer) numberPositive(c domain.Constraint) (string, string) {
	switch {
	case c.Min != nil && c.Max != nil:
		return strconv.Itoa((*c.Min + *c.Max) / 2), "mid_range"
	case c.Min != nil:
		return strconv.Itoa(*c.Min + 1), "above_min"
	case c.Max != nil:
		return strconv.Itoa(*c.Max - 1), "below_max"
	default:
		return strconv.Itoa(s.defaults.NeutralNumber), "neutral"
	}
}

func (s *Synthesizer) textValues(c domain.Constraint) FieldValues {
	var v FieldValues

	v.Positive = append(v.Positive, Value{Raw: fitText(c), Desc: "representative", Expected: true})

	if c.Required {
		v.Negative = append(v.Negative, Value{Raw: "", Desc: "empty", Expected: false})
	}

	if c.MaxLength != nil {
		v.Boundary = append(v.Boundary,
			Value{Raw: textOfLength(*c.MaxLength), Desc: "at_max_length", Expected: true},
			Value{Raw: textOfLength(*c.MaxLength + 1), Desc: "over_max_length", Expected: false},
		)
	}
	return v
}

// boolValues covers both states of a checkbox or radio field.
func boolValues() FieldValues {
	return FieldValues{Positive: []Value{
		{Raw: "true", Desc: "checked", Expected: true},
		{Raw: "false", Desc: "unchecked", Expected: true},
	}}
}

// selectValues covers every declared option. A select without options
// yields nothing and drops out of synthesis.
func selectValues(options []string) FieldValues {
	var v FieldValues
	for _, opt := range options {
		v.Positive = append(v.Positive, Value{Raw: opt, Desc: "option_" + slug(opt), Expected: true})
	}
	return v
}

// fitEmail returns the base address resized to the declared length bounds.
func fitEmail(c domain.Constraint) string {
	target := fitLength(len(baseEmail), c)
	if target == len(baseEmail) {
		return baseEmail
	}
	return emailOfLength(target)
}

// fitPassword returns the base password resized to the declared length
// bounds, keeping mixed character classes.
func fitPassword(c domain.Constraint) string {
	target := fitLength(len(basePassword), c)
	if target == len(basePassword) {
		return basePassword
	}
	return mixedPassword(target)
}

func fitText(c domain.Constraint) string {
	target := fitLength(len(baseText), c)
	if target == len(baseText) {
		return baseText
	}
	return textOfLength(target)
}

// fitLength adjusts a base length to sit inside the declared min/max length
// bounds. The max bound wins if the two contradict.
func fitLength(base int, c domain.Constraint) int {
	target := base
	if c.MinLength != nil && target < *c.MinLength {
		target = *c.MinLength
	}
	if c.MaxLength != nil && target > *c.MaxLength {
		target = *c.MaxLength
	}
	return target
}

// emailOfLength builds a syntactically valid address of exactly n
// characters, capping the local part at 64 so long addresses stay
// RFC-shaped. Lengths below the shortest possible address are raised to it.
func emailOfLength(n int) string {
	if n <= 6 {
		return "a@b.co"
	}
	local := n - 6
	if local > 64 {
		local = 64
	}
	label := n - 5 - local
	return strings.Repeat("a", local) + "@" + strings.Repeat("b", label) + ".com"
}

// mixedPassword builds a password of exactly n characters cycling through
// upper, lower, digit and symbol classes.
func mixedPassword(n int) string {
	if n <= 0 {
		return ""
	}
	const cycle = "Aa1!"
	b := make([]byte, n)
	for i := range b {
		b[i] = cycle[i%len(cycle)]
	}
	return string(b)
}

func textOfLength(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("a", n)
}

// slug compresses a raw option value into a case-id fragment.
func slug(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	if b.Len() == 0 {
		return "blank"
	}
	return b.String()
}
