package friend

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shri2104/smartsplit/internal/expense"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func friendExpense(payerID, friendID, amount string, splits map[string]string) *expense.Expense {
	e := &expense.Expense{
		FriendID: friendID,
		PayerID:  payerID,
		Amount:   dec(amount),
		Splits:   make(map[string]decimal.Decimal, len(splits)),
	}
	for memberID, share := range splits {
		e.Splits[memberID] = dec(share)
	}
	return e
}

func TestCalculateFriendBalances(t *testing.T) {
	tests := []struct {
		name     string
		memberID string
		expenses []*expense.Expense
		want     map[string]string
	}{
		{
			name:     "member paid, friend owes their share",
			memberID: "alice",
			expenses: []*expense.Expense{
				friendExpense("alice", "bob", "100.00", map[string]string{
					"alice": "50.00", "bob": "50.00",
				}),
			},
			want: map[string]string{"bob": "50.00"},
		},
		{
			name:     "friend paid, member owes their share",
			memberID: "alice",
			expenses: []*expense.Expense{
				friendExpense("bob", "alice", "80.00", map[string]string{
					"alice": "40.00", "bob": "40.00",
				}),
			},
			want: map[string]string{"bob": "-40.00"},
		},
		{
			name:     "offsetting expenses net out",
			memberID: "alice",
			expenses: []*expense.Expense{
				friendExpense("alice", "bob", "100.00", map[string]string{
					"alice": "50.00", "bob": "50.00",
				}),
				friendExpense("bob", "alice", "60.00", map[string]string{
					"alice": "30.00", "bob": "30.00",
				}),
			},
			want: map[string]string{"bob": "20.00"},
		},
		{
			name:     "balances tracked per friend",
			memberID: "alice",
			expenses: []*expense.Expense{
				friendExpense("alice", "bob", "40.00", map[string]string{
					"alice": "20.00", "bob": "20.00",
				}),
				friendExpense("carol", "alice", "30.00", map[string]string{
					"alice": "15.00", "carol": "15.00",
				}),
			},
			want: map[string]string{"bob": "20.00", "carol": "-15.00"},
		},
		{
			name:     "counterpart recovered from splits when stored as self",
			memberID: "alice",
			expenses: []*expense.Expense{
				// Recorded by bob with alice as counterpart and payer, so
				// neither the stored counterpart nor the payer identify bob.
				friendExpense("alice", "alice", "100.00", map[string]string{
					"alice": "50.00", "bob": "50.00",
				}),
			},
			want: map[string]string{"bob": "50.00"},
		},
		{
			name:     "uninvolved expense ignored",
			memberID: "alice",
			expenses: []*expense.Expense{
				friendExpense("bob", "carol", "50.00", map[string]string{
					"bob": "25.00", "carol": "25.00",
				}),
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateFriendBalances(tt.memberID, tt.expenses)

			if len(got) != len(tt.want) {
				t.Fatalf("got %d balances, want %d", len(got), len(tt.want))
			}
			for friendID, expected := range tt.want {
				if !got[friendID].Equal(dec(expected)) {
					t.Errorf("balance[%s] = %s, want %s", friendID, got[friendID], expected)
				}
			}
		})
	}
}

func TestCalculateFriendBalancesUnevenSplit(t *testing.T) {
	// alice paid 90 but only owes 30 of it herself.
	expenses := []*expense.Expense{
		friendExpense("alice", "bob", "90.00", map[string]string{
			"alice": "30.00", "bob": "60.00",
		}),
	}

	got := CalculateFriendBalances("alice", expenses)
	if !got["bob"].Equal(dec("60.00")) {
		t.Errorf("balance[bob] = %s, want 60.00", got["bob"])
	}

	// The same history seen from bob's side mirrors the sign.
	gotBob := CalculateFriendBalances("bob", expenses)
	if !gotBob["alice"].Equal(dec("-60.00")) {
		t.Errorf("balance[alice] = %s, want -60.00", gotBob["alice"])
	}
}
