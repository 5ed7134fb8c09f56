package models

import "github.com/shopspring/decimal"

// Expense represents one expense paid by a member on behalf of participants.
//
// An expense is immutable once created. Correcting one means appending a
// reversal record (ReversalOf set to the original's ID) plus a new record;
// the ledger subtracts a reversal's shares instead of adding them.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is what the expense was for (min 3 characters, trimmed).
	Description string

	// Total is the full expense amount, always positive.
	Total decimal.Decimal

	// PayerID is the member who paid the expense.
	PayerID string

	// Participants is the list of member IDs the expense is split among,
	// in the order supplied at creation. Order decides who absorbs the
	// rounding remainder.
	Participants []string

	// Shares maps each participant to their computed share of Total.
	// Shares always sum to Total exactly.
	Shares map[string]decimal.Decimal

	// ReversalOf is the ID of the expense this record reverses, or empty.
	ReversalOf string

	// CreatedBy is the user ID that recorded the expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// IsReversal reports whether the expense reverses an earlier record.
func (e *Expense) IsReversal() bool {
	return e.ReversalOf != ""
}
