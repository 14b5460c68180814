// Package classify assigns each scanned element one semantic field type out
// of a closed set. The type drives which values synthesis produces for the
// field; it never widens based on page content.
package classify

import (
	"strings"

	"github.com/frherrer/GoE2E-PageForge/internal/domain"
)

// Classify maps an element and its extracted constraint to a semantic field
// type. An explicit input type always beats name heuristics; generic text
// inputs fall back to substring heuristics over the name and id; anything
// left over defaults to text. Buttons and links classify as unknown: they
// are page-object actions, not data fields.
func Classify(el domain.RawElement, c domain.Constraint) domain.FieldType {
	switch el.Tag {
	case "select":
		return domain.FieldSelect
	case "textarea":
		return domain.FieldTextarea
	case "button", "a":
		return domain.FieldUnknown
	}

	switch el.InputType {
	case "email":
		return domain.FieldEmail
	case "password":
		return domain.FieldPassword
	case "number", "range":
		return domain.FieldNumber
	case "checkbox":
		return domain.FieldCheckbox
	case "radio":
		return domain.FieldRadio
	case "tel", "url":
		// Declared but outside the semantic set; the hint survives on the
		// constraint for reporting.
		return domain.FieldText
	case "submit", "button", "image", "reset":
		return domain.FieldUnknown
	}

	return heuristic(el)
}

// heuristic guesses a type for generic inputs from the name and id. The
// phone check runs before the number check so "phone_number" stays text.
func heuristic(el domain.RawElement) domain.FieldType {
	hint := strings.ToLower(el.Name + " " + el.ID)
	switch {
	case strings.Contains(hint, "mail"):
		return domain.FieldEmail
	case strings.Contains(hint, "pass"):
		return domain.FieldPassword
	case strings.Contains(hint, "phone"):
		return domain.FieldText
	case strings.Contains(hint, "num"):
		return domain.FieldNumber
	default:
		return domain.FieldText
	}
}
