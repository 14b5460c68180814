// Package constraint normalizes declared validation attributes into typed
// rules. Extraction is tolerant: a malformed attribute value produces a
// warning and leaves the rule absent, it never fails the run and never
// fabricates a zero bound.
package constraint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

// numericLike lists input types whose min/max attributes carry numeric
// bounds. On other types (date, time, week) those attributes hold calendar
// values that synthesis does not model, so they are ignored there.
var numericLike = map[string]bool{
	"number": true,
	"range":  true,
}

// typeHints lists input types recorded as declared-type hints for the
// classifier.
var typeHints = map[string]bool{
	"email":    true,
	"tel":      true,
	"number":   true,
	"password": true,
	"url":      true,
}

// Extractor reads validation rules off scanned elements.
type Extractor struct {
	log *logrus.Logger
}

// New creates an extractor.
func New(log *logrus.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract normalizes the validation attributes of el into a Constraint.
// Rules compose, they never override one another: required is set by any
// truthy presence of the attribute, length bounds parse to non-negative
// ints, numeric bounds apply only to numeric-like inputs, and the pattern
// is stored verbatim without being evaluated.
func (x *Extractor) Extract(el domain.RawElement) (domain.Constraint, []domain.Warning) {
	var (
		c        domain.Constraint
		warnings []domain.Warning
	)

	if v, ok := el.Attr("required"); ok && !strings.EqualFold(v, "false") {
		c.Required = true
	}

	c.MinLength = x.lengthAttr(el, "minlength", &warnings)
	c.MaxLength = x.lengthAttr(el, "maxlength", &warnings)

	if numericLike[el.InputType] {
		c.Min = x.boundAttr(el, "min", &warnings)
		c.Max = x.boundAttr(el, "max", &warnings)
	}

	if v, ok := el.Attr("pattern"); ok && v != "" {
		c.Pattern = v
	}

	if typeHints[el.InputType] {
		c.TypeHint = el.InputType
	}

	return c, warnings
}

// lengthAttr parses a length attribute, clamping negatives to zero.
func (x *Extractor) lengthAttr(el domain.RawElement, attr string, warnings *[]domain.Warning) *int {
	n := x.intAttr(el, attr, warnings)
	if n != nil && *n < 0 {
		*n = 0
	}
	return n
}

// boundAttr parses a numeric bound attribute. Bounds may be negative.
func (x *Extractor) boundAttr(el domain.RawElement, attr string, warnings *[]domain.Warning) *int {
	return x.intAttr(el, attr, warnings)
}

func (x *Extractor) intAttr(el domain.RawElement, attr string, warnings *[]domain.Warning) *int {
	raw, ok := el.Attr(attr)
	if !ok || raw == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		x.log.Debugf("Dropping %s=%q on %q: not an integer", attr, raw, el.DisplayName())
		*warnings = append(*warnings, domain.Warning{
			Field:   el.DisplayName(),
			Message: fmt.Sprintf("%v: %s=%q", domain.ErrUnparseableConstraint, attr, raw),
		})
		return nil
	}
	return &n
}
