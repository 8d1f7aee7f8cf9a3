package expense

import "github.com/shopspring/decimal"

// CreateExpenseRequest represents the request to create an expense.
// Exactly one of GroupID or FriendID must be set. PaidBy defaults to the
// acting member when empty. SplitInputs carries the raw user-entered share
// or percentage strings, keyed by participant; it is ignored for EQUAL.
type CreateExpenseRequest struct {
	GroupID      string            `json:"group_id,omitempty"`
	FriendID     string            `json:"friend_id,omitempty"`
	PaidBy       string            `json:"paid_by,omitempty"`
	Description  string            `json:"description" validate:"required,min=1,max=255"`
	Amount       decimal.Decimal   `json:"amount" validate:"required,gt=0"`
	SplitMethod  string            `json:"split_method" validate:"required,oneof=EQUAL SHARES PERCENTAGE"`
	Participants []string          `json:"participants" validate:"required,min=1"`
	SplitInputs  map[string]string `json:"split_inputs,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          string                     `json:"id"`
	GroupID     string                     `json:"group_id,omitempty"`
	FriendID    string                     `json:"friend_id,omitempty"`
	PaidBy      string                     `json:"paid_by"`
	Description string                     `json:"description"`
	Amount      decimal.Decimal            `json:"amount"`
	SplitMethod string                     `json:"split_method"`
	CreatedAt   int64                      `json:"created_at"`
	Splits      map[string]decimal.Decimal `json:"splits"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		FriendID:    e.FriendID,
		PaidBy:      e.PayerID,
		Description: e.Description,
		Amount:      e.Amount,
		SplitMethod: string(e.SplitMethod),
		CreatedAt:   e.CreatedAt,
		Splits:      e.Splits,
	}
}
