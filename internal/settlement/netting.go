package settlement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/shri2104/smartsplit/internal/expense"
)

// The netting engine is pure: it operates on an in-memory snapshot of
// expenses and persisted settlements and recomputes everything from scratch
// on each call. No locking is needed; concurrent calls share nothing.

// CalculateBalances aggregates each member's net position from the expense
// history: every split value counts against the member who owes it, and the
// full amount counts toward the payer. Positive means the group owes the
// member, negative means the member owes the group. Members absent from the
// map have balance zero. The balances of any expense set sum to zero.
func CalculateBalances(expenses []*expense.Expense) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		for memberID, share := range e.Splits {
			balances[memberID] = balances[memberID].Sub(share)
		}
		balances[e.PayerID] = balances[e.PayerID].Add(e.Amount)
	}
	return balances
}

// adjustForSettlements reverses the already-paid portion of each persisted
// settlement so only outstanding debt remains to be netted. Only PaidAmount
// is applied: a fully unpaid settlement changes nothing, because the
// expense-derived balances already carry the unpaid debt.
func adjustForSettlements(balances map[string]decimal.Decimal, settlements []*Settlement) {
	for _, s := range settlements {
		balances[s.From] = balances[s.From].Add(s.PaidAmount)
		balances[s.To] = balances[s.To].Sub(s.PaidAmount)
	}
}

type memberAmount struct {
	memberID string
	amount   decimal.Decimal
}

// NetSettlements reduces the outstanding pairwise debts of the snapshot to a
// short list of transfer intents. Members whose adjusted balance is within
// epsilon of zero are already settled and never appear in the output.
//
// Greedy deque matching: pop the front creditor and front debtor, transfer
// min(credit, -debt), push any remainder back to the front. This emits at
// most creditors+debtors-1 transfers. Both deques are seeded in ascending
// member-ID order so pairings are deterministic across runs.
func NetSettlements(expenses []*expense.Expense, persisted []*Settlement) []*Settlement {
	balances := CalculateBalances(expenses)
	adjustForSettlements(balances, persisted)

	members := make([]string, 0, len(balances))
	for memberID := range balances {
		members = append(members, memberID)
	}
	sort.Strings(members)

	var creditors, debtors []memberAmount
	for _, memberID := range members {
		balance := balances[memberID]
		switch {
		case balance.GreaterThan(epsilon):
			creditors = append(creditors, memberAmount{memberID, balance})
		case balance.LessThan(epsilon.Neg()):
			debtors = append(debtors, memberAmount{memberID, balance})
		}
	}

	var transfers []*Settlement
	for len(creditors) > 0 && len(debtors) > 0 {
		creditor, debtor := creditors[0], debtors[0]
		creditors, debtors = creditors[1:], debtors[1:]

		amount := decimal.Min(creditor.amount, debtor.amount.Neg())
		transfers = append(transfers, &Settlement{
			From:   debtor.memberID,
			To:     creditor.memberID,
			Amount: amount,
		})

		if newCredit := creditor.amount.Sub(amount); newCredit.GreaterThan(epsilon) {
			creditors = append([]memberAmount{{creditor.memberID, newCredit}}, creditors...)
		}
		if newDebt := debtor.amount.Add(amount); newDebt.LessThan(epsilon.Neg()) {
			debtors = append([]memberAmount{{debtor.memberID, newDebt}}, debtors...)
		}
	}

	return transfers
}
