// Package entity defines the persisted record types and their field rules.
package entity

import (
	"fmt"
	"unicode/utf8"
)

// Record is one persisted row of a store file. Identifiers are assigned by
// the repository on first save; an ID of 0 means "unassigned".
type Record interface {
	GetID() int
	SetID(id int)
	Validate() error
}

// ValidationError reports the first field rule violated by a candidate
// record, or a domain-level constraint such as a duplicate email. Validation
// stops at the first failure; callers must not assume all violations are
// reported.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func minLen(field, value string, n int) error {
	if utf8.RuneCountInString(value) < n {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("field '%s' must have at least %d characters", field, n),
		}
	}
	return nil
}

func positive(field string, value int) error {
	if value <= 0 {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("field '%s' must be positive", field),
		}
	}
	return nil
}
