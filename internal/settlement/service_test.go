package settlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shri2104/smartsplit/internal/expense"
)

type fakeStore struct {
	settlements map[string]*Settlement
}

func newFakeStore() *fakeStore {
	return &fakeStore{settlements: make(map[string]*Settlement)}
}

func (f *fakeStore) key(groupID, from, to string) string {
	return groupID + "/" + from + "/" + to
}

func (f *fakeStore) ListByGroupID(_ context.Context, groupID string) ([]*Settlement, error) {
	var out []*Settlement
	for _, s := range f.settlements {
		if s.GroupID == groupID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) RecordPayment(_ context.Context, groupID, from, to string, originalAmount, amountPaid decimal.Decimal) (*Settlement, error) {
	k := f.key(groupID, from, to)
	s, ok := f.settlements[k]
	if !ok {
		s = &Settlement{
			ID:        k,
			GroupID:   groupID,
			From:      from,
			To:        to,
			Amount:    originalAmount,
			CreatedAt: time.Now().UnixMilli(),
		}
		f.settlements[k] = s
	}
	next := s.PaidAmount.Add(amountPaid)
	if next.GreaterThan(s.Amount.Add(epsilon)) {
		return nil, ErrExceedsRemaining
	}
	s.PaidAmount = next
	s.UpdatedAt = time.Now().UnixMilli()
	return s, nil
}

type fakeExpenses struct {
	expenses []*expense.Expense
}

func (f *fakeExpenses) ListWithSplits(_ context.Context, _ string) ([]*expense.Expense, error) {
	return f.expenses, nil
}

func newTestService(expenses ...*expense.Expense) (*Service, *fakeStore) {
	store := newFakeStore()
	svc := NewService(store, &fakeExpenses{expenses: expenses}, nil)
	return svc, store
}

func TestRecordPartialPaymentSequence(t *testing.T) {
	svc, _ := newTestService(
		groupExpense("alice", "50.00", map[string]string{"bob": "50.00"}),
	)
	ctx := context.Background()
	intent := &Settlement{GroupID: "g1", From: "bob", To: "alice", Amount: dec("50.00")}

	first, err := svc.RecordPartialPayment(ctx, "bob", "g1", intent, dec("20.00"))
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if first.Settlement.IsFullyPaid() {
		t.Error("settlement fully paid after 20 of 50")
	}
	if first.Message != "Partial payment recorded! Remaining: ₹30.00" {
		t.Errorf("unexpected message %q", first.Message)
	}

	second, err := svc.RecordPartialPayment(ctx, "bob", "g1", intent, dec("30.00"))
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if !second.Settlement.IsFullyPaid() {
		t.Error("settlement not fully paid after 20+30 of 50")
	}
	if second.Message != "Payment completed! Fully settled." {
		t.Errorf("unexpected message %q", second.Message)
	}

	transfers, err := svc.NetSettlements(ctx, "g1")
	if err != nil {
		t.Fatalf("net settlements: %v", err)
	}
	if len(transfers) != 0 {
		t.Errorf("got %d outstanding transfers after full payment, want 0", len(transfers))
	}
}

func TestRecordPartialPaymentOverpayRejected(t *testing.T) {
	svc, _ := newTestService()
	intent := &Settlement{GroupID: "g1", From: "bob", To: "alice", Amount: dec("50.00")}

	_, err := svc.RecordPartialPayment(context.Background(), "bob", "g1", intent, dec("60.00"))
	if !errors.Is(err, ErrExceedsRemaining) {
		t.Errorf("got %v, want ErrExceedsRemaining", err)
	}
}

func TestRecordPartialPaymentOverpayAcrossCalls(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	intent := &Settlement{GroupID: "g1", From: "bob", To: "alice", Amount: dec("50.00")}

	if _, err := svc.RecordPartialPayment(ctx, "bob", "g1", intent, dec("40.00")); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	_, err := svc.RecordPartialPayment(ctx, "bob", "g1", intent, dec("20.00"))
	if !errors.Is(err, ErrExceedsRemaining) {
		t.Errorf("got %v, want ErrExceedsRemaining", err)
	}
}

func TestRecordPartialPaymentValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	intent := &Settlement{GroupID: "g1", From: "bob", To: "alice", Amount: dec("50.00")}

	if _, err := svc.RecordPartialPayment(ctx, "bob", "g1", intent, decimal.Zero); !errors.Is(err, ErrNonPositivePayment) {
		t.Errorf("zero amount: got %v, want ErrNonPositivePayment", err)
	}
	if _, err := svc.RecordPartialPayment(ctx, "bob", "g1", intent, dec("-5.00")); !errors.Is(err, ErrNonPositivePayment) {
		t.Errorf("negative amount: got %v, want ErrNonPositivePayment", err)
	}
	if _, err := svc.RecordPartialPayment(ctx, "alice", "g1", intent, dec("10.00")); !errors.Is(err, ErrNotDebtor) {
		t.Errorf("wrong actor: got %v, want ErrNotDebtor", err)
	}
}

func TestGroupBalancesAdjusted(t *testing.T) {
	svc, store := newTestService(
		groupExpense("alice", "30.00", map[string]string{"bob": "30.00"}),
	)
	ctx := context.Background()

	if _, err := store.RecordPayment(ctx, "g1", "bob", "alice", dec("30.00"), dec("10.00")); err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	balances, err := svc.GroupBalances(ctx, "g1")
	if err != nil {
		t.Fatalf("group balances: %v", err)
	}
	if !balances["alice"].Equal(dec("20.00")) {
		t.Errorf("alice balance = %s, want 20.00", balances["alice"])
	}
	if !balances["bob"].Equal(dec("-20.00")) {
		t.Errorf("bob balance = %s, want -20.00", balances["bob"])
	}
}

func TestUPILink(t *testing.T) {
	link := UPILink("alice@upi", "Alice", dec("25.50"))
	want := "upi://pay?am=25.50&cu=INR&pa=alice%40upi&pn=Alice&tn=Group+settlement"
	if link != want {
		t.Errorf("got %q, want %q", link, want)
	}
}
