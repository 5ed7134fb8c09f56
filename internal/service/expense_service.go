package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/splitpot/splitpot/internal/ledger"
	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/storage"
)

// ExpenseService records and amends expenses. Every accepted expense goes
// through the ledger's validation and split before it is persisted, so
// stored shares always reconcile to the stored total.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput is a caller-supplied expense draft.
type CreateExpenseInput struct {
	GroupID      string
	Description  string
	Amount       decimal.Decimal
	PayerID      string
	Participants []string
	ActorID      string
}

// CreateExpense validates the draft against the group's membership, computes
// the equal split, and persists the record with its shares.
func (s *ExpenseService) CreateExpense(ctx context.Context, in CreateExpenseInput) (*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(in.ActorID) {
		return nil, ErrNotMember
	}

	expense, err := s.buildExpense(group, in)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", in.GroupID, "error", err)
		return nil, err
	}

	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"total", expense.Total,
		"participants_count", len(expense.Participants),
	)
	return expense, nil
}

// GetExpense retrieves an expense the actor is allowed to see.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID, actorID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actorID) {
		return nil, ErrNotMember
	}
	return expense, nil
}

// ListGroupExpenses retrieves a group's expense history, oldest first.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, groupID, actorID string) ([]*models.Expense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actorID) {
		return nil, ErrNotMember
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// AmendExpense corrects an expense without mutating history: it appends a
// reversal of the original plus a fresh record built from the new draft,
// both in one transaction. An expense can be reversed at most once.
func (s *ExpenseService) AmendExpense(ctx context.Context, expenseID string, in CreateExpenseInput) (*models.Expense, error) {
	original, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if original.IsReversal() {
		return nil, ErrAmendReversal
	}

	group, err := s.store.GetGroup(ctx, original.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(in.ActorID) {
		return nil, ErrNotMember
	}

	history, err := s.store.ListExpensesByGroup(ctx, original.GroupID)
	if err != nil {
		return nil, err
	}
	for _, e := range history {
		if e.ReversalOf == original.ID {
			return nil, ErrAlreadyReversed
		}
	}

	in.GroupID = original.GroupID
	replacement, err := s.buildExpense(group, in)
	if err != nil {
		return nil, err
	}

	reversal := &models.Expense{
		GroupID:      original.GroupID,
		Description:  original.Description,
		Total:        original.Total,
		PayerID:      original.PayerID,
		Participants: original.Participants,
		Shares:       original.Shares,
		ReversalOf:   original.ID,
		CreatedBy:    in.ActorID,
	}

	if err := s.store.AmendExpense(ctx, reversal, replacement); err != nil {
		slog.Error("AmendExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}

	slog.Info("Expense amended",
		"original_id", original.ID,
		"reversal_id", reversal.ID,
		"replacement_id", replacement.ID,
	)
	return replacement, nil
}

func (s *ExpenseService) buildExpense(group *models.Group, in CreateExpenseInput) (*models.Expense, error) {
	draft := ledger.ExpenseDraft{
		Description:  in.Description,
		Amount:       in.Amount,
		PayerID:      in.PayerID,
		Participants: in.Participants,
	}
	if err := ledger.ValidateExpense(draft, group.Members); err != nil {
		return nil, err
	}

	shares, err := ledger.Split(in.Amount, in.Participants)
	if err != nil {
		return nil, err
	}

	return &models.Expense{
		GroupID:      in.GroupID,
		Description:  strings.TrimSpace(in.Description),
		Total:        in.Amount,
		PayerID:      in.PayerID,
		Participants: in.Participants,
		Shares:       shares,
		CreatedBy:    in.ActorID,
	}, nil
}
