package rules

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnknownReason is returned when a reason code is not in the catalog.
	ErrUnknownReason = errors.New("unknown termination reason")

	// ErrUnknownCategory is returned when a reason points at a category that
	// does not exist. This is a configuration bug, not a user error.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidTable is returned when a rule table fails validation.
	ErrInvalidTable = errors.New("invalid rule table")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownReasonError reports a reason code missing from the catalog.
type UnknownReasonError struct {
	Code ReasonCode
}

func (e *UnknownReasonError) Error() string {
	return fmt.Sprintf("unknown termination reason %q", e.Code)
}

func (e *UnknownReasonError) Unwrap() error {
	return ErrUnknownReason
}

// UnknownCategoryError reports a reason whose category key does not resolve.
type UnknownCategoryError struct {
	Reason   ReasonCode
	Category CategoryKey
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("reason %q references unknown category %q", e.Reason, e.Category)
}

func (e *UnknownCategoryError) Unwrap() error {
	return ErrUnknownCategory
}

// ValidationError lists every problem found in a rule table.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("invalid rule table: %s", e.Problems[0])
	}
	return fmt.Sprintf("invalid rule table: %d problems, first: %s", len(e.Problems), e.Problems[0])
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTable
}
