package friend

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/shri2104/smartsplit/internal/expense"
)

// Common errors
var (
	ErrFriendshipNotFound = errors.New("friendship not found")
	ErrAlreadyFriends     = errors.New("users are already friends")
	ErrSelfFriendship     = errors.New("cannot add yourself as a friend")
)

// ExpenseSource provides the friend-pair expense history.
type ExpenseSource interface {
	ListFriendExpenses(ctx context.Context, memberID string) ([]*expense.Expense, error)
}

// Service handles friendship business logic
type Service struct {
	repo     *Repository
	expenses ExpenseSource
}

// NewService creates a new friend service
func NewService(repo *Repository, expenses ExpenseSource) *Service {
	return &Service{repo: repo, expenses: expenses}
}

// Add creates a mutual friendship
func (s *Service) Add(ctx context.Context, userID, friendID string) (*Friendship, error) {
	if userID == friendID {
		return nil, ErrSelfFriendship
	}

	existing, err := s.repo.Get(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyFriends
	}

	return s.repo.Add(ctx, userID, friendID)
}

// List retrieves all friends of a user
func (s *Service) List(ctx context.Context, userID string) ([]*Friendship, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Remove deletes a mutual friendship
func (s *Service) Remove(ctx context.Context, userID, friendID string) error {
	return s.repo.Remove(ctx, userID, friendID)
}

// Balances computes the member's net position against each friend from the
// friend-pair expense history.
func (s *Service) Balances(ctx context.Context, memberID string) (map[string]decimal.Decimal, error) {
	expenses, err := s.expenses.ListFriendExpenses(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return CalculateFriendBalances(memberID, expenses), nil
}
