package settlement

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

func groupExpense(payerID, amount string, splits map[string]string) *expense.Expense {
	e := &expense.Expense{
		PayerID: payerID,
		Amount:  dec(amount),
		Splits:  make(map[string]decimal.Decimal, len(splits)),
	}
	for memberID, share := range splits {
		e.Splits[memberID] = dec(share)
	}
	return e
}

func TestCalculateBalances(t *testing.T) {
	expenses := []*expense.Expense{
		groupExpense("alice", "90.00", map[string]string{
			"alice": "30.00", "bob": "30.00", "carol": "30.00",
		}),
		groupExpense("bob", "30.00", map[string]string{
			"bob": "15.00", "carol": "15.00",
		}),
	}

	balances := CalculateBalances(expenses)

	want := map[string]string{
		"alice": "60.00",
		"bob":   "-15.00",
		"carol": "-45.00",
	}
	for memberID, expected := range want {
		if !balances[memberID].Equal(dec(expected)) {
			t.Errorf("balance[%s] = %s, want %s", memberID, balances[memberID], expected)
		}
	}

	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b)
	}
	if !total.IsZero() {
		t.Errorf("balances sum to %s, want 0", total)
	}
}

func TestNetSettlements(t *testing.T) {
	// alice +50, bob -30, carol -20
	expenses := []*expense.Expense{
		groupExpense("alice", "50.00", map[string]string{
			"bob": "30.00", "carol": "20.00",
		}),
	}

	transfers := NetSettlements(expenses, nil)

	if len(transfers) != 2 {
		t.Fatalf("got %d transfers, want 2", len(transfers))
	}
	if transfers[0].From != "bob" || transfers[0].To != "alice" || !transfers[0].Amount.Equal(dec("30.00")) {
		t.Errorf("transfers[0] = %s -> %s %s, want bob -> alice 30.00",
			transfers[0].From, transfers[0].To, transfers[0].Amount)
	}
	if transfers[1].From != "carol" || transfers[1].To != "alice" || !transfers[1].Amount.Equal(dec("20.00")) {
		t.Errorf("transfers[1] = %s -> %s %s, want carol -> alice 20.00",
			transfers[1].From, transfers[1].To, transfers[1].Amount)
	}
}

func TestNetSettlementsSkipsSettledMembers(t *testing.T) {
	// dave's balance is within a cent of zero and must not appear.
	expenses := []*expense.Expense{
		groupExpense("alice", "40.00", map[string]string{
			"bob": "40.00",
		}),
		groupExpense("dave", "0.01", map[string]string{
			"dave": "0.005", "alice": "0.005",
		}),
	}

	transfers := NetSettlements(expenses, nil)

	for _, tr := range transfers {
		if tr.From == "dave" || tr.To == "dave" {
			t.Errorf("settled member dave appears in transfer %s -> %s", tr.From, tr.To)
		}
	}
}

func TestNetSettlementsAppliesPriorPayments(t *testing.T) {
	// bob owes alice 30 but has already paid 10 of it.
	expenses := []*expense.Expense{
		groupExpense("alice", "30.00", map[string]string{
			"bob": "30.00",
		}),
	}
	persisted := []*Settlement{
		{GroupID: "g1", From: "bob", To: "alice", Amount: dec("30.00"), PaidAmount: dec("10.00")},
	}

	transfers := NetSettlements(expenses, persisted)

	if len(transfers) != 1 {
		t.Fatalf("got %d transfers, want 1", len(transfers))
	}
	if !transfers[0].Amount.Equal(dec("20.00")) {
		t.Errorf("remaining transfer = %s, want 20.00", transfers[0].Amount)
	}
}

func TestNetSettlementsRoundTrip(t *testing.T) {
	// Recording every suggested transfer as fully paid leaves nothing to net.
	expenses := []*expense.Expense{
		groupExpense("alice", "100.00", map[string]string{
			"alice": "25.00", "bob": "25.00", "carol": "25.00", "dave": "25.00",
		}),
		groupExpense("bob", "60.00", map[string]string{
			"bob": "20.00", "carol": "20.00", "dave": "20.00",
		}),
	}

	first := NetSettlements(expenses, nil)
	if len(first) == 0 {
		t.Fatal("expected outstanding transfers")
	}

	paid := make([]*Settlement, 0, len(first))
	for _, tr := range first {
		paid = append(paid, &Settlement{
			From:       tr.From,
			To:         tr.To,
			Amount:     tr.Amount,
			PaidAmount: tr.Amount,
		})
	}

	second := NetSettlements(expenses, paid)
	if len(second) != 0 {
		t.Errorf("got %d transfers after settling everything, want 0", len(second))
	}
}

func TestNetSettlementsDeterministic(t *testing.T) {
	expenses := []*expense.Expense{
		groupExpense("alice", "90.00", map[string]string{
			"bob": "30.00", "carol": "30.00", "dave": "30.00",
		}),
		groupExpense("bob", "10.00", map[string]string{
			"carol": "10.00",
		}),
	}

	first := NetSettlements(expenses, nil)
	for i := 0; i < 10; i++ {
		again := NetSettlements(expenses, nil)
		if len(again) != len(first) {
			t.Fatalf("run %d produced %d transfers, first run produced %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j].From != first[j].From || again[j].To != first[j].To || !again[j].Amount.Equal(first[j].Amount) {
				t.Fatalf("run %d transfer %d differs from first run", i, j)
			}
		}
	}
}
