package models

import "github.com/shopspring/decimal"

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	// PaymentPending is the initial state of every payment.
	PaymentPending PaymentStatus = "pending"
	// PaymentCompleted marks a payment that went through. Terminal.
	// Only completed payments affect balances.
	PaymentCompleted PaymentStatus = "completed"
	// PaymentCancelled marks a payment that was abandoned. Terminal.
	PaymentCancelled PaymentStatus = "cancelled"
)

// Valid reports whether s is one of the known payment states.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentCancelled
}

// Payment represents a settlement payment between two group members.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment belongs to.
	GroupID string

	// ExpenseID optionally ties the payment to one expense. A free-standing
	// settlement leaves it empty.
	ExpenseID string

	// FromUserID is the member who paid (debtor settling up).
	FromUserID string

	// ToUserID is the member who received the payment. Must differ from
	// FromUserID.
	ToUserID string

	// Amount is the payment amount, always positive.
	Amount decimal.Decimal

	// Status is the lifecycle state. Payments start pending; completed and
	// cancelled are terminal.
	Status PaymentStatus

	// Note is an optional description for the payment.
	Note string

	// CreatedBy is the user ID that recorded the payment.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
