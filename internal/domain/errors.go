package domain

import (
	"errors"
	"fmt"
)

// Category sentinels for the error taxonomy. Wrapped into PageForgeError
// causes (via errors.Join) so callers can branch with errors.Is without
// depending on message text.
var (
	ErrScanTimeout           = errors.New("scan timeout")
	ErrDriverUnavailable     = errors.New("driver unavailable")
	ErrUnresolvedLocator     = errors.New("unresolved locator")
	ErrUnparseableConstraint = errors.New("unparseable constraint")
	ErrEmitConflict          = errors.New("emit conflict")
)

// PageForgeError is the base error type with context.
type PageForgeError struct {
	Stage    string // "config", "driver", "scan", "resolve", "extract", "synthesize", "emit", "validate"
	Scenario string
	Field    string
	Message  string
	Cause    error
}

func (e *PageForgeError) Error() string {
	s := fmt.Sprintf("[%s]", e.Stage)
	if e.Scenario != "" {
		s += fmt.Sprintf(" %s", e.Scenario)
	}
	if e.Field != "" {
		s += fmt.Sprintf(" field %q", e.Field)
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	return s
}

func (e *PageForgeError) Unwrap() error {
	return e.Cause
}

// NewError creates a new PageForgeError.
func NewError(stage, scenario, field, message string, cause error) *PageForgeError {
	return &PageForgeError{
		Stage:    stage,
		Scenario: scenario,
		Field:    field,
		Message:  message,
		Cause:    cause,
	}
}
