package settlement

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListByGroupID retrieves every persisted settlement of a group, newest
// first.
func (r *Repository) ListByGroupID(ctx context.Context, groupID string) ([]*Settlement, error) {
	query := `
		SELECT id, group_id, from_member, to_member, amount, paid_amount, created_at, updated_at
		FROM settlements
		WHERE group_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		if err := rows.Scan(
			&s.ID,
			&s.GroupID,
			&s.From,
			&s.To,
			&s.Amount,
			&s.PaidAmount,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		clampAmounts(s)
		settlements = append(settlements, s)
	}
	return settlements, rows.Err()
}

// RecordPayment creates or increments the settlement for the (group, from,
// to) pair in a single upsert. Two devices paying the same debt at once can
// therefore neither create duplicate rows nor drop an increment, and the
// guard on the UPDATE keeps paid_amount from exceeding the owed amount plus
// epsilon.
func (r *Repository) RecordPayment(ctx context.Context, groupID, from, to string, originalAmount, amountPaid decimal.Decimal) (*Settlement, error) {
	now := time.Now().UnixMilli()
	query := `
		INSERT INTO settlements (id, group_id, from_member, to_member, amount, paid_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (group_id, from_member, to_member) DO UPDATE
		SET paid_amount = settlements.paid_amount + EXCLUDED.paid_amount,
		    updated_at  = EXCLUDED.updated_at
		WHERE settlements.paid_amount + EXCLUDED.paid_amount <= settlements.amount + 0.01
		RETURNING id, group_id, from_member, to_member, amount, paid_amount, created_at, updated_at
	`

	s := &Settlement{}
	err := r.db.QueryRowContext(ctx, query,
		uuid.NewString(),
		groupID,
		from,
		to,
		originalAmount,
		amountPaid,
		now,
	).Scan(
		&s.ID,
		&s.GroupID,
		&s.From,
		&s.To,
		&s.Amount,
		&s.PaidAmount,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		// Conflict row exists but the guard refused the increment: another
		// payment raced this one past the owed amount.
		return nil, ErrExceedsRemaining
	}
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	clampAmounts(s)
	return s, nil
}

// clampAmounts rejects malformed persisted values on ingestion. Amounts are
// decimals end to end, so NaN cannot occur; negatives are clamped to zero
// and overpayment is capped at the owed amount.
func clampAmounts(s *Settlement) {
	if s.Amount.Sign() < 0 {
		s.Amount = decimal.Zero
	}
	if s.PaidAmount.Sign() < 0 {
		s.PaidAmount = decimal.Zero
	}
	if s.PaidAmount.GreaterThan(s.Amount) {
		s.PaidAmount = s.Amount
	}
}
