package friend

import (
	"github.com/shopspring/decimal"

	"github.com/shri2104/smartsplit/internal/expense"
)

// CalculateFriendBalances aggregates a member's net position against each
// friend from their friend-pair expense history. Positive means the friend
// owes the member, negative means the member owes the friend.
//
// For each expense the member's own delta is the full amount minus their own
// split if they paid, or just the negated split if they did not. The delta
// is attributed to the counterpart: the other split member, or the payer
// when the member did not pay.
func CalculateFriendBalances(memberID string, expenses []*expense.Expense) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		ownShare, participates := e.Splits[memberID]
		if !participates && e.PayerID != memberID {
			continue
		}

		var delta decimal.Decimal
		if e.PayerID == memberID {
			delta = e.Amount.Sub(ownShare)
		} else {
			delta = ownShare.Neg()
		}

		counterpart := counterpartOf(memberID, e)
		if counterpart == "" {
			continue
		}
		balances[counterpart] = balances[counterpart].Add(delta)
	}
	return balances
}

// counterpartOf picks the other party of a friend-pair expense: the stored
// counterpart when it is not the member themselves, otherwise the payer,
// falling back to the other split member.
func counterpartOf(memberID string, e *expense.Expense) string {
	if e.FriendID != "" && e.FriendID != memberID {
		return e.FriendID
	}
	if e.PayerID != memberID {
		return e.PayerID
	}
	for _, p := range e.Participants() {
		if p != memberID {
			return p
		}
	}
	return ""
}
