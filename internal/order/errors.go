package order

import (
	"sort"
	"strings"
)

// ValidationError reports exactly which payload fields are absent or
// invalid. Details is the per-field boolean map returned to clients so a
// form can flag each input individually; Reasons carries the human-readable
// explanation per field.
type ValidationError struct {
	Details map[string]bool
	Reasons map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{
		Details: make(map[string]bool),
		Reasons: make(map[string]string),
	}
}

func (e *ValidationError) flag(field, reason string) {
	e.Details[field] = true
	e.Reasons[field] = reason
}

func (e *ValidationError) ok() bool {
	return len(e.Details) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for f := range e.Details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "missing or invalid fields: " + strings.Join(fields, ", ")
}
