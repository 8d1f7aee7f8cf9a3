package friend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shri2104/smartsplit/internal/expense"
	mw "github.com/shri2104/smartsplit/pkg/middleware"
	"github.com/shri2104/smartsplit/pkg/response"
)

type fakeExpenses struct {
	expenses []*expense.Expense
}

func (f *fakeExpenses) ListFriendExpenses(_ context.Context, _ string) ([]*expense.Expense, error) {
	return f.expenses, nil
}

func TestBalancesEndpointCarriesMessage(t *testing.T) {
	source := &fakeExpenses{expenses: []*expense.Expense{
		friendExpense("alice", "bob", "100.00", map[string]string{
			"alice": "50.00", "bob": "50.00",
		}),
		friendExpense("carol", "alice", "30.00", map[string]string{
			"alice": "15.00", "carol": "15.00",
		}),
	}}
	handler := NewHandler(NewService(nil, source))

	req := httptest.NewRequest(http.MethodGet, "/balances", nil)
	req = req.WithContext(context.WithValue(req.Context(), mw.MemberIDKey, "alice"))
	rec := httptest.NewRecorder()

	handler.Balances(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var envelope response.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	raw, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("re-encode data: %v", err)
	}
	var balances []FriendBalanceResponse
	if err := json.Unmarshal(raw, &balances); err != nil {
		t.Fatalf("decode balances: %v", err)
	}

	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}

	// bob and carol in sorted order; alice is owed by bob and owes carol.
	if balances[0].FriendID != "bob" || balances[0].Message != "gets back ₹50.00" {
		t.Errorf("bob entry = %s %q, want gets back ₹50.00", balances[0].FriendID, balances[0].Message)
	}
	if balances[1].FriendID != "carol" || balances[1].Message != "owes ₹15.00" {
		t.Errorf("carol entry = %s %q, want owes ₹15.00", balances[1].FriendID, balances[1].Message)
	}
}
