package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/storage"
)

// CreatePayment persists a new payment.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}

	var expenseID, note interface{}
	if payment.ExpenseID != "" {
		expenseID = payment.ExpenseID
	}
	if payment.Note != "" {
		note = payment.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, group_id, expense_id, from_user_id, to_user_id, amount, status, note, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.GroupID, expenseID, payment.FromUserID, payment.ToUserID,
		payment.Amount.String(), string(payment.Status), note, payment.CreatedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by ID.
func (s *SQLiteStore) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := scanPayment(s.db.QueryRowContext(ctx,
		`SELECT id, group_id, expense_id, from_user_id, to_user_id, amount, status, note, created_by, created_at
		 FROM payments WHERE id = ?`,
		paymentID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %s: %w", paymentID, storage.ErrNotFound)
	}
	return payment, err
}

// ListPaymentsByGroup retrieves all payments for a group, oldest first.
func (s *SQLiteStore) ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, expense_id, from_user_id, to_user_id, amount, status, note, created_by, created_at
		 FROM payments WHERE group_id = ? ORDER BY created_at, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// UpdatePaymentStatus moves a pending payment to a terminal status. The
// conditional update enforces at the storage level that completed and
// cancelled are terminal.
func (s *SQLiteStore) UpdatePaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE payments SET status = ? WHERE id = ? AND status = ?",
		string(status), paymentID, string(models.PaymentPending),
	)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		if _, err := s.GetPayment(ctx, paymentID); err != nil {
			return err
		}
		return fmt.Errorf("payment %s: %w", paymentID, storage.ErrPaymentFinal)
	}
	return nil
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	payment := &models.Payment{}
	var expenseID, note sql.NullString
	var amount, status string

	err := row.Scan(&payment.ID, &payment.GroupID, &expenseID, &payment.FromUserID,
		&payment.ToUserID, &amount, &status, &note, &payment.CreatedBy, &payment.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}

	payment.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt payment amount %q: %w", amount, err)
	}
	payment.Status = models.PaymentStatus(status)
	if expenseID.Valid {
		payment.ExpenseID = expenseID.String
	}
	if note.Valid {
		payment.Note = note.String
	}
	return payment, nil
}
