package settlement

import (
	"errors"
	"fmt"

	"github.com/warp/rescisao-engine/rules"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

// ErrMissingContractEndDate is returned when a fixed-term early termination
// is computed without the agreed contract end date.
var ErrMissingContractEndDate = errors.New("contract end date is required")

// Reason and category failures come from the rule table; they are re-exported
// so callers only need this package.
var (
	ErrUnknownReason   = rules.ErrUnknownReason
	ErrUnknownCategory = rules.ErrUnknownCategory
)

type (
	UnknownReasonError   = rules.UnknownReasonError
	UnknownCategoryError = rules.UnknownCategoryError
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// MissingContractEndDateError names the reason that required the date.
type MissingContractEndDateError struct {
	Reason   rules.ReasonCode
	Category rules.CategoryKey
}

func (e *MissingContractEndDateError) Error() string {
	return fmt.Sprintf("reason %q (%s) requires the fixed-term contract end date", e.Reason, e.Category)
}

func (e *MissingContractEndDateError) Unwrap() error {
	return ErrMissingContractEndDate
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInputError reports errors the caller fixes by changing the case input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnknownReason) ||
		errors.Is(err, ErrMissingContractEndDate)
}

// IsConfigError reports errors caused by an inconsistent rule table.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, rules.ErrInvalidTable)
}
