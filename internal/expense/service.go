package expense

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shri2104/smartsplit/internal/expense/split"
	"github.com/shri2104/smartsplit/pkg/metrics"
)

// Common errors
var (
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrNoTarget            = errors.New("either group_id or friend_id is required")
	ErrBothTargets         = errors.New("group_id and friend_id are mutually exclusive")
	ErrPayerNotParticipant = errors.New("payer must be one of the participants")
)

// Service handles expense business logic
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory) *Service {
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
	}
}

// isParticipant checks if the member is in the participants list.
func isParticipant(memberID string, participants []string) bool {
	for _, p := range participants {
		if p == memberID {
			return true
		}
	}
	return false
}

// CreateExpense computes the splits with the requested strategy and records
// the expense. The acting member is the default payer. The expense is
// immutable after this point.
func (s *Service) CreateExpense(ctx context.Context, actorID string, req *CreateExpenseRequest) (*Expense, error) {
	if req.GroupID == "" && req.FriendID == "" {
		return nil, ErrNoTarget
	}
	if req.GroupID != "" && req.FriendID != "" {
		return nil, ErrBothTargets
	}

	payerID := req.PaidBy
	if payerID == "" {
		payerID = actorID
	}
	if !isParticipant(payerID, req.Participants) {
		return nil, ErrPayerNotParticipant
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitMethod)
	if err != nil {
		return nil, err
	}

	splits, err := strategy.Calculate(req.Amount, req.Participants, req.SplitInputs)
	if err != nil {
		metrics.SplitValidationFailures.Inc()
		slog.Warn("split calculation rejected",
			"method", req.SplitMethod,
			"participants", len(req.Participants),
			"error", err,
		)
		return nil, err
	}

	expense := &Expense{
		GroupID:     req.GroupID,
		FriendID:    req.FriendID,
		PayerID:     payerID,
		Description: req.Description,
		Amount:      req.Amount,
		SplitMethod: strategy.Method(),
		Splits:      splits,
	}
	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	metrics.ExpensesCreated.Inc()
	slog.Info("expense recorded",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"paid_by", expense.PayerID,
		"amount", expense.Amount,
		"method", expense.SplitMethod,
	)
	return expense, nil
}

// GetExpenseByID retrieves an expense with its splits
func (s *Service) GetExpenseByID(ctx context.Context, id string) (*Expense, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}
	return expense, nil
}

// ListByGroupID retrieves a page of expenses for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID string, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// ListWithSplits returns the full expense snapshot of a group. It satisfies
// the settlement engine's expense source.
func (s *Service) ListWithSplits(ctx context.Context, groupID string) ([]*Expense, error) {
	return s.repo.ListWithSplits(ctx, groupID)
}
