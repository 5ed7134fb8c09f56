package service

import "errors"

var (
	// ErrNotMember is returned when the acting user is not a member of the
	// group they are operating on.
	ErrNotMember = errors.New("you must be a member of this group")

	// ErrSamePayerPayee is returned when a payment names the same user on
	// both sides.
	ErrSamePayerPayee = errors.New("payer and payee must be different members")

	// ErrExpenseMismatch is returned when a payment references an expense
	// from a different group.
	ErrExpenseMismatch = errors.New("referenced expense belongs to a different group")

	// ErrAlreadyReversed is returned when amending an expense that has
	// already been reversed.
	ErrAlreadyReversed = errors.New("expense has already been reversed")

	// ErrAmendReversal is returned when amending a reversal record itself.
	ErrAmendReversal = errors.New("a reversal record cannot be amended")

	// ErrInvalidInput is returned for structurally missing request fields
	// outside the ledger's validation taxonomy.
	ErrInvalidInput = errors.New("invalid input")
)
