package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/shri2104/smartsplit/internal/expense"
	"github.com/shri2104/smartsplit/pkg/metrics"
)

// Common errors
var (
	ErrNonPositivePayment = errors.New("payment amount must be greater than zero")
	ErrExceedsRemaining   = errors.New("payment amount cannot exceed remaining balance")
	ErrNotDebtor          = errors.New("only the debtor can record a payment")
)

// ExpenseSource provides the expense snapshot the netting engine consumes.
type ExpenseSource interface {
	ListWithSplits(ctx context.Context, groupID string) ([]*expense.Expense, error)
}

// Store persists settlements.
type Store interface {
	ListByGroupID(ctx context.Context, groupID string) ([]*Settlement, error)
	RecordPayment(ctx context.Context, groupID, from, to string, originalAmount, amountPaid decimal.Decimal) (*Settlement, error)
}

// MemberDirectory resolves member contact details for payment links.
type MemberDirectory interface {
	GetContact(ctx context.Context, memberID string) (name, upiID string, err error)
}

// Service handles settlement business logic
type Service struct {
	store     Store
	expenses  ExpenseSource
	directory MemberDirectory
}

// NewService creates a new settlement service
func NewService(store Store, expenses ExpenseSource, directory MemberDirectory) *Service {
	return &Service{
		store:     store,
		expenses:  expenses,
		directory: directory,
	}
}

// GroupBalances recomputes every member's adjusted balance for a group from
// the current expense and settlement snapshot.
func (s *Service) GroupBalances(ctx context.Context, groupID string) (map[string]decimal.Decimal, error) {
	expenses, err := s.expenses.ListWithSplits(ctx, groupID)
	if err != nil {
		return nil, err
	}
	persisted, err := s.store.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := CalculateBalances(expenses)
	adjustForSettlements(balances, persisted)
	return balances, nil
}

// NetSettlements recomputes the transfer intents for a group. The result is
// derived state: every call reads the full snapshot and nets it from
// scratch, so a stale or reordered boundary update can never corrupt it.
func (s *Service) NetSettlements(ctx context.Context, groupID string) ([]*Settlement, error) {
	expenses, err := s.expenses.ListWithSplits(ctx, groupID)
	if err != nil {
		return nil, err
	}
	persisted, err := s.store.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return NetSettlements(expenses, persisted), nil
}

// ListByGroupID retrieves the persisted settlements of a group.
func (s *Service) ListByGroupID(ctx context.Context, groupID string) ([]*Settlement, error) {
	return s.store.ListByGroupID(ctx, groupID)
}

// PaymentResult reports the outcome of a recorded payment.
type PaymentResult struct {
	Settlement *Settlement
	Message    string
}

// RecordPartialPayment applies a payment from the acting member against a
// computed transfer intent. Validation failures leave no state behind; on
// success the payment is upserted atomically against the (group, from, to)
// pair and the caller gets the updated settlement plus a status message.
func (s *Service) RecordPartialPayment(ctx context.Context, actorID, groupID string, intent *Settlement, amountPaid decimal.Decimal) (*PaymentResult, error) {
	if actorID != intent.From {
		return nil, ErrNotDebtor
	}
	if amountPaid.Sign() <= 0 {
		return nil, ErrNonPositivePayment
	}
	if amountPaid.GreaterThan(intent.RemainingAmount()) {
		return nil, ErrExceedsRemaining
	}

	persisted, err := s.store.RecordPayment(ctx, groupID, intent.From, intent.To, intent.Amount, amountPaid)
	if err != nil {
		slog.Error("payment not recorded",
			"group_id", groupID,
			"from", intent.From,
			"to", intent.To,
			"error", err,
		)
		return nil, err
	}

	metrics.PaymentsRecorded.Inc()
	slog.Info("payment recorded",
		"group_id", groupID,
		"from", persisted.From,
		"to", persisted.To,
		"paid", amountPaid,
		"remaining", persisted.RemainingAmount(),
	)

	message := fmt.Sprintf("Partial payment recorded! Remaining: ₹%s", persisted.RemainingAmount().StringFixed(2))
	if persisted.IsFullyPaid() {
		message = "Payment completed! Fully settled."
	}
	return &PaymentResult{Settlement: persisted, Message: message}, nil
}

// Contact returns a member's display name and UPI ID for payment links.
// Both are empty when the directory has nothing for the member.
func (s *Service) Contact(ctx context.Context, memberID string) (string, string) {
	if s.directory == nil {
		return "", ""
	}
	name, upiID, err := s.directory.GetContact(ctx, memberID)
	if err != nil {
		slog.Warn("contact lookup failed", "member_id", memberID, "error", err)
		return "", ""
	}
	return name, upiID
}
