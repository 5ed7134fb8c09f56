// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitpot/splitpot/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrPaymentFinal is returned when a status transition is attempted on a
// payment that already reached a terminal state.
var ErrPaymentFinal = errors.New("payment already completed or cancelled")

// Store defines the persistence operations for the service layer. The
// abstraction allows swapping backends (SQLite, PostgreSQL, ...) without
// changing the services.
//
// Expense rows are immutable: there is no update or delete. Amendments go
// through AmendExpense, which appends a reversal plus a replacement in one
// transaction.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a new group with its initial members.
	// The group's ID and CreatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error
	// GetGroup retrieves a group with its member list.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	// ListGroupsByMember retrieves all groups a user belongs to.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)
	// AddGroupMembers appends members to a group, skipping existing ones.
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error

	// CreateExpense persists a new expense with its shares.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	// GetExpense retrieves an expense with its shares.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	// ListExpensesByGroup retrieves all expenses for a group, oldest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	// AmendExpense atomically appends a reversal of an existing expense and
	// its replacement record.
	AmendExpense(ctx context.Context, reversal, replacement *models.Expense) error

	// CreatePayment persists a new payment.
	CreatePayment(ctx context.Context, payment *models.Payment) error
	// GetPayment retrieves a payment by ID.
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)
	// ListPaymentsByGroup retrieves all payments for a group, oldest first.
	ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error)
	// UpdatePaymentStatus moves a pending payment to a terminal status.
	// Returns ErrPaymentFinal if the payment is no longer pending.
	UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error

	// Close releases any resources held by the store.
	Close() error
}
