package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/shri2104/smartsplit/internal/expense/split"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts an expense and its split rows in one transaction.
// The ID and creation timestamp are assigned here.
func (r *Repository) CreateExpense(ctx context.Context, e *Expense) error {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UnixMilli()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (id, group_id, friend_id, payer_id, description, amount, split_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, query,
		e.ID,
		nullable(e.GroupID),
		nullable(e.FriendID),
		e.PayerID,
		e.Description,
		e.Amount,
		string(e.SplitMethod),
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	splitQuery := `
		INSERT INTO expense_splits (expense_id, member_id, amount)
		VALUES ($1, $2, $3)
	`
	for memberID, amount := range e.Splits {
		if _, err := tx.ExecContext(ctx, splitQuery, e.ID, memberID, amount); err != nil {
			return fmt.Errorf("failed to create split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expense: %w", err)
	}
	return nil
}

// GetExpenseByID retrieves an expense with its splits
func (r *Repository) GetExpenseByID(ctx context.Context, id string) (*Expense, error) {
	query := `
		SELECT id, COALESCE(group_id, ''), COALESCE(friend_id, ''), payer_id, description, amount, split_method, created_at
		FROM expenses
		WHERE id = $1
	`
	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if err := r.loadSplits(ctx, []*Expense{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// ListByGroupID retrieves a page of group expenses, newest first, with splits.
func (r *Repository) ListByGroupID(ctx context.Context, groupID string, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT id, COALESCE(group_id, ''), COALESCE(friend_id, ''), payer_id, description, amount, split_method, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	expenses, err := r.queryExpenses(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// ListWithSplits retrieves every expense of a group with splits populated.
// This is the snapshot the netting engine consumes; it is always read in
// full and recomputed, never merged incrementally.
func (r *Repository) ListWithSplits(ctx context.Context, groupID string) ([]*Expense, error) {
	query := `
		SELECT id, COALESCE(group_id, ''), COALESCE(friend_id, ''), payer_id, description, amount, split_method, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at ASC
	`
	return r.queryExpenses(ctx, query, groupID)
}

// ListFriendExpenses retrieves every friend-pair expense the member is part
// of, either as payer, counterpart or split participant.
func (r *Repository) ListFriendExpenses(ctx context.Context, memberID string) ([]*Expense, error) {
	query := `
		SELECT e.id, COALESCE(e.group_id, ''), COALESCE(e.friend_id, ''), e.payer_id, e.description, e.amount, e.split_method, e.created_at
		FROM expenses e
		WHERE e.friend_id IS NOT NULL
		  AND (e.payer_id = $1 OR e.friend_id = $1 OR EXISTS (
			SELECT 1 FROM expense_splits s WHERE s.expense_id = e.id AND s.member_id = $1
		  ))
		ORDER BY e.created_at ASC
	`
	return r.queryExpenses(ctx, query, memberID)
}

// DeleteExpense removes an expense; split rows cascade.
func (r *Repository) DeleteExpense(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if rows == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *Repository) queryExpenses(ctx context.Context, query string, args ...interface{}) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	if err := r.loadSplits(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// loadSplits fetches the split rows for the given expenses in one query and
// attaches them as maps. Negative amounts from malformed rows are clamped to
// zero on ingestion.
func (r *Repository) loadSplits(ctx context.Context, expenses []*Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	byID := make(map[string]*Expense, len(expenses))
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		e.Splits = make(map[string]decimal.Decimal)
		byID[e.ID] = e
		ids[i] = e.ID
	}

	query := `
		SELECT expense_id, member_id, amount
		FROM expense_splits
		WHERE expense_id = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID, memberID string
		var amount decimal.Decimal
		if err := rows.Scan(&expenseID, &memberID, &amount); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		if amount.Sign() < 0 {
			amount = decimal.Zero
		}
		if e, ok := byID[expenseID]; ok {
			e.Splits[memberID] = amount
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row rowScanner) (*Expense, error) {
	e := &Expense{}
	var method string
	if err := row.Scan(
		&e.ID,
		&e.GroupID,
		&e.FriendID,
		&e.PayerID,
		&e.Description,
		&e.Amount,
		&method,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.SplitMethod = split.Method(method)
	if e.Amount.Sign() < 0 {
		e.Amount = decimal.Zero
	}
	return e, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
