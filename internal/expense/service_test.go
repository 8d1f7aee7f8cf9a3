package expense

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shri2104/smartsplit/internal/expense/split"
)

// Validation happens before any persistence, so these run against a service
// with no repository behind it.
func newValidationService() *Service {
	return NewService(nil, split.NewSplitStrategyFactory())
}

func TestCreateExpenseTargetValidation(t *testing.T) {
	svc := newValidationService()
	ctx := context.Background()

	base := CreateExpenseRequest{
		Description:  "Dinner",
		Amount:       decimal.NewFromInt(60),
		SplitMethod:  "EQUAL",
		Participants: []string{"alice", "bob"},
	}

	noTarget := base
	if _, err := svc.CreateExpense(ctx, "alice", &noTarget); !errors.Is(err, ErrNoTarget) {
		t.Errorf("no target: got %v, want ErrNoTarget", err)
	}

	both := base
	both.GroupID = "g1"
	both.FriendID = "bob"
	if _, err := svc.CreateExpense(ctx, "alice", &both); !errors.Is(err, ErrBothTargets) {
		t.Errorf("both targets: got %v, want ErrBothTargets", err)
	}
}

func TestCreateExpensePayerMustParticipate(t *testing.T) {
	svc := newValidationService()

	req := CreateExpenseRequest{
		GroupID:      "g1",
		PaidBy:       "carol",
		Description:  "Taxi",
		Amount:       decimal.NewFromInt(30),
		SplitMethod:  "EQUAL",
		Participants: []string{"alice", "bob"},
	}

	_, err := svc.CreateExpense(context.Background(), "alice", &req)
	if !errors.Is(err, ErrPayerNotParticipant) {
		t.Errorf("got %v, want ErrPayerNotParticipant", err)
	}
}

func TestCreateExpenseUnknownMethod(t *testing.T) {
	svc := newValidationService()

	req := CreateExpenseRequest{
		GroupID:      "g1",
		Description:  "Groceries",
		Amount:       decimal.NewFromInt(45),
		SplitMethod:  "EXACT",
		Participants: []string{"alice", "bob"},
	}

	_, err := svc.CreateExpense(context.Background(), "alice", &req)
	if !errors.Is(err, split.ErrUnknownMethod) {
		t.Errorf("got %v, want ErrUnknownMethod", err)
	}
}

func TestParticipants(t *testing.T) {
	e := &Expense{
		PayerID: "alice",
		Splits: map[string]decimal.Decimal{
			"bob":   decimal.NewFromInt(10),
			"carol": decimal.NewFromInt(10),
		},
	}

	got := e.Participants()
	if len(got) != 3 {
		t.Fatalf("got %d participants, want 3", len(got))
	}

	e.Splits["alice"] = decimal.NewFromInt(5)
	if got := e.Participants(); len(got) != 3 {
		t.Errorf("payer in splits counted twice: got %d, want 3", len(got))
	}
}
