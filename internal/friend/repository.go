package friend

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository handles friendship persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new friend repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts the friendship in both directions inside one transaction.
func (r *Repository) Add(ctx context.Context, userID, friendID string) (*Friendship, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()
	query := `
		INSERT INTO friends (user_id, friend_id, created_at)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, query, userID, friendID, now); err != nil {
		return nil, fmt.Errorf("failed to add friend: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, friendID, userID, now); err != nil {
		return nil, fmt.Errorf("failed to add reverse friend: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit friendship: %w", err)
	}

	return &Friendship{UserID: userID, FriendID: friendID, CreatedAt: now}, nil
}

// Get retrieves a single friendship row, nil when absent.
func (r *Repository) Get(ctx context.Context, userID, friendID string) (*Friendship, error) {
	query := `
		SELECT user_id, friend_id, created_at
		FROM friends
		WHERE user_id = $1 AND friend_id = $2
	`

	f := &Friendship{}
	err := r.db.QueryRowContext(ctx, query, userID, friendID).Scan(&f.UserID, &f.FriendID, &f.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get friendship: %w", err)
	}

	return f, nil
}

// ListByUserID retrieves all friends of a user with their profile fields.
func (r *Repository) ListByUserID(ctx context.Context, userID string) ([]*Friendship, error) {
	query := `
		SELECT f.user_id, f.friend_id, f.created_at, u.username, u.email
		FROM friends f
		JOIN users u ON f.friend_id = u.id
		WHERE f.user_id = $1
		ORDER BY u.username
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []*Friendship
	for rows.Next() {
		f := &Friendship{}
		if err := rows.Scan(&f.UserID, &f.FriendID, &f.CreatedAt, &f.Username, &f.Email); err != nil {
			return nil, fmt.Errorf("failed to scan friendship: %w", err)
		}
		friends = append(friends, f)
	}

	return friends, nil
}

// Remove deletes the friendship in both directions.
func (r *Repository) Remove(ctx context.Context, userID, friendID string) error {
	query := `
		DELETE FROM friends
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
	`

	result, err := r.db.ExecContext(ctx, query, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrFriendshipNotFound
	}

	return nil
}
