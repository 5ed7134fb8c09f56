// Package ledger is the pure expense-ledger and settlement engine.
//
// Every function is a pure computation over the inputs it is handed: a group
// membership snapshot, expense history, and payment history. The package does
// no I/O, holds no state, and never mutates its inputs, so concurrent callers
// need no coordination. Snapshot consistency of the supplied history is the
// caller's job.
//
// All amounts are decimal.Decimal. Shares, balances, and transfers are exact
// to the cent: no split, aggregation, or plan may lose or invent money.
package ledger

import (
	"errors"
	"fmt"
)

// ValidationCode identifies which check an expense draft failed.
type ValidationCode string

const (
	CodeDescriptionTooShort  ValidationCode = "description_too_short"
	CodeInvalidAmount        ValidationCode = "invalid_amount"
	CodeMissingPayer         ValidationCode = "missing_payer"
	CodeEmptyParticipants    ValidationCode = "empty_participants"
	CodeUnknownParticipant   ValidationCode = "unknown_participant"
	CodeDuplicateParticipant ValidationCode = "duplicate_participant"
)

// ValidationError is a user-correctable rejection of an expense draft.
// The message is safe to surface to the client as-is.
type ValidationError struct {
	Code    ValidationCode
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrComputation marks an internal invariant violation: the engine refuses
// to produce output rather than return an inexact result. Callers should
// treat it as a defect, never as user error.
var ErrComputation = errors.New("ledger computation error")

func computationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrComputation, fmt.Sprintf(format, args...))
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
