package expense

import (
	"github.com/shopspring/decimal"

	"github.com/shri2104/smartsplit/internal/expense/split"
)

// Expense represents one recorded shared cost: who paid, how it was divided,
// and each participant's owed portion. Expenses are immutable once recorded;
// balances and settlements are always derived from them, never the other way
// around.
//
// Exactly one of GroupID or FriendID is set. For friend-pair expenses
// FriendID is the counterpart of the member who recorded it.
type Expense struct {
	ID          string                     `json:"id"`
	GroupID     string                     `json:"group_id,omitempty"`
	FriendID    string                     `json:"friend_id,omitempty"`
	PayerID     string                     `json:"paid_by"`
	Description string                     `json:"description"`
	Amount      decimal.Decimal            `json:"amount"`
	SplitMethod split.Method               `json:"split_method"`
	CreatedAt   int64                      `json:"created_at"` // epoch millis
	Splits      map[string]decimal.Decimal `json:"splits"`
}

// Participants returns every member involved in the expense: the split
// members plus the payer.
func (e *Expense) Participants() []string {
	seen := make(map[string]bool, len(e.Splits)+1)
	participants := make([]string, 0, len(e.Splits)+1)
	for memberID := range e.Splits {
		seen[memberID] = true
		participants = append(participants, memberID)
	}
	if !seen[e.PayerID] {
		participants = append(participants, e.PayerID)
	}
	return participants
}
