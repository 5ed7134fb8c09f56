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

// GroupService manages groups and answers the two derived queries: net
// balances and the settlement plan. Both are recomputed from the full
// expense/payment history on every call; the store never holds a balance.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group. The creator is always a member; every other
// listed member must be a registered user.
func (s *GroupService) CreateGroup(ctx context.Context, name, creatorID string, memberIDs []string) (*models.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	members := []string{creatorID}
	for _, id := range memberIDs {
		if id == creatorID {
			continue
		}
		if _, err := s.store.GetUserByID(ctx, id); err != nil {
			return nil, fmt.Errorf("member %s: %w", id, err)
		}
		members = append(members, id)
	}

	group := &models.Group{
		Name:      name,
		Members:   members,
		CreatedBy: creatorID,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(group.Members))
	return group, nil
}

// GetGroup retrieves a group the actor belongs to.
func (s *GroupService) GetGroup(ctx context.Context, groupID, actorID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actorID) {
		return nil, ErrNotMember
	}
	return group, nil
}

// ListGroups retrieves all groups the actor belongs to.
func (s *GroupService) ListGroups(ctx context.Context, actorID string) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, actorID)
}

// AddMembers appends registered users to a group. Membership is append-only:
// members are never removed, because history keeps referencing them.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, userIDs []string, actorID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actorID) {
		return nil, ErrNotMember
	}

	for _, id := range userIDs {
		if _, err := s.store.GetUserByID(ctx, id); err != nil {
			return nil, fmt.Errorf("member %s: %w", id, err)
		}
	}

	if err := s.store.AddGroupMembers(ctx, groupID, userIDs); err != nil {
		slog.Error("AddMembers failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Members added", "group_id", groupID, "added", userIDs)
	return s.store.GetGroup(ctx, groupID)
}

// Balances recomputes the group's net pairwise balances from its full
// expense and payment history.
func (s *GroupService) Balances(ctx context.Context, groupID, actorID string) ([]ledger.BalanceEntry, error) {
	balances, err := s.balanceMap(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	return ledger.Entries(balances), nil
}

// SettlementPlan reduces the group's current balances to a minimal list of
// settling transfers.
func (s *GroupService) SettlementPlan(ctx context.Context, groupID, actorID string) ([]ledger.Transfer, error) {
	balances, err := s.balanceMap(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	return ledger.PlanSettlement(balances), nil
}

func (s *GroupService) balanceMap(ctx context.Context, groupID, actorID string) (map[ledger.Pair]decimal.Decimal, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(actorID) {
		return nil, ErrNotMember
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances, err := ledger.AggregateBalances(groupID, expensesForBalance(expenses), paymentsForBalance(payments))
	if err != nil {
		slog.Error("Balance aggregation failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Debug("Balances computed",
		"group_id", groupID,
		"expenses_count", len(expenses),
		"payments_count", len(payments),
		"pairs_count", len(balances),
	)
	return balances, nil
}

func expensesForBalance(expenses []*models.Expense) []ledger.ExpenseForBalance {
	out := make([]ledger.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		out[i] = ledger.ExpenseForBalance{
			GroupID:  e.GroupID,
			PayerID:  e.PayerID,
			Total:    e.Total,
			Shares:   e.Shares,
			Reversal: e.IsReversal(),
		}
	}
	return out
}

func paymentsForBalance(payments []*models.Payment) []ledger.PaymentForBalance {
	out := make([]ledger.PaymentForBalance, len(payments))
	for i, p := range payments {
		out[i] = ledger.PaymentForBalance{
			GroupID:    p.GroupID,
			FromUserID: p.FromUserID,
			ToUserID:   p.ToUserID,
			Amount:     p.Amount,
			Completed:  p.Status == models.PaymentCompleted,
		}
	}
	return out
}
