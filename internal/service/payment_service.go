package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/splitpot/splitpot/internal/ledger"
	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/storage"
)

// PaymentService records settlement payments and drives their lifecycle.
// Payments start pending and move exactly once, to completed or cancelled.
type PaymentService struct {
	store storage.Store
}

// NewPaymentService creates a new PaymentService with the given storage backend.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store}
}

// RecordPaymentInput is a caller-supplied payment draft.
type RecordPaymentInput struct {
	GroupID    string
	ExpenseID  string // optional: free-standing settlements leave it empty
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
	Note       string
	ActorID    string
}

// RecordPayment validates and persists a payment in the pending state.
func (s *PaymentService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*models.Payment, error) {
	group, err := s.store.GetGroup(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(in.ActorID) {
		return nil, ErrNotMember
	}

	if !in.Amount.IsPositive() {
		return nil, &ledger.ValidationError{Code: ledger.CodeInvalidAmount, Message: "amount must be greater than zero"}
	}
	if !in.Amount.Equal(in.Amount.Truncate(2)) {
		return nil, &ledger.ValidationError{Code: ledger.CodeInvalidAmount, Message: "amount must have at most two decimal places"}
	}
	if in.FromUserID == in.ToUserID {
		return nil, ErrSamePayerPayee
	}
	for _, id := range []string{in.FromUserID, in.ToUserID} {
		if !group.HasMember(id) {
			return nil, &ledger.ValidationError{
				Code:    ledger.CodeUnknownParticipant,
				Message: fmt.Sprintf("user %q is not a member of the group", id),
			}
		}
	}

	if in.ExpenseID != "" {
		expense, err := s.store.GetExpense(ctx, in.ExpenseID)
		if err != nil {
			return nil, err
		}
		if expense.GroupID != in.GroupID {
			return nil, ErrExpenseMismatch
		}
	}

	payment := &models.Payment{
		GroupID:    in.GroupID,
		ExpenseID:  in.ExpenseID,
		FromUserID: in.FromUserID,
		ToUserID:   in.ToUserID,
		Amount:     in.Amount,
		Status:     models.PaymentPending,
		Note:       in.Note,
		CreatedBy:  in.ActorID,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "group_id", in.GroupID, "error", err)
		return nil, err
	}

	slog.Info("Payment recorded",
		"payment_id", payment.ID,
		"group_id", payment.GroupID,
		"from", payment.FromUserID,
		"to", payment.ToUserID,
		"amount", payment.Amount,
	)
	return payment, nil
}

// CompletePayment marks a pending payment as completed. Completed is
// terminal, and from that moment the payment moves balances.
func (s *PaymentService) CompletePayment(ctx context.Context, paymentID, actorID string) (*models.Payment, error) {
	return s.transition(ctx, paymentID, actorID, models.PaymentCompleted)
}

// CancelPayment marks a pending payment as cancelled. Cancelled is terminal;
// the payment never affects balances.
func (s *PaymentService) CancelPayment(ctx context.Context, paymentID, actorID string) (*models.Payment, error) {
	return s.transition(ctx, paymentID, actorID, models.PaymentCancelled)
}

// ListGroupPayments retrieves a group's payment history, oldest first.
func (s *PaymentService) ListGroupPayments(ctx context.Context, groupID, actorID string) ([]*models.Payment, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actorID) {
		return nil, ErrNotMember
	}
	return s.store.ListPaymentsByGroup(ctx, groupID)
}

func (s *PaymentService) transition(ctx context.Context, paymentID, actorID string, status models.PaymentStatus) (*models.Payment, error) {
	payment, err := s.store.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, payment.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actorID) {
		return nil, ErrNotMember
	}

	if payment.Status.Terminal() {
		return nil, fmt.Errorf("payment %s: %w", paymentID, storage.ErrPaymentFinal)
	}

	if err := s.store.UpdatePaymentStatus(ctx, paymentID, status); err != nil {
		slog.Error("Payment transition failed", "payment_id", paymentID, "status", status, "error", err)
		return nil, err
	}

	payment.Status = status
	slog.Info("Payment transitioned", "payment_id", paymentID, "status", status)
	return payment, nil
}
