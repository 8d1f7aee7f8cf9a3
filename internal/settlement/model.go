package settlement

import "github.com/shopspring/decimal"

// epsilon is the threshold under which a balance or remaining debt counts as
// settled. Residual cents below it come from split rounding, not real debt.
var epsilon = decimal.New(1, -2) // 0.01

// Settlement represents a directed debt from one member to another. A net
// settlement is freshly computed by the netting engine and has no ID; it is
// derived from the current expense and settlement snapshot and never stored.
// A persisted settlement exists once a payment has been recorded against the
// (group, from, to) pair and accumulates PaidAmount across payments.
type Settlement struct {
	ID         string          `json:"id,omitempty"`
	GroupID    string          `json:"group_id,omitempty"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	CreatedAt  int64           `json:"created_at,omitempty"` // epoch millis
	UpdatedAt  int64           `json:"updated_at,omitempty"` // epoch millis
}

// RemainingAmount is the portion of the debt not yet paid.
func (s *Settlement) RemainingAmount() decimal.Decimal {
	return s.Amount.Sub(s.PaidAmount)
}

// IsFullyPaid reports whether the debt is settled within epsilon.
func (s *Settlement) IsFullyPaid() bool {
	return s.RemainingAmount().LessThanOrEqual(epsilon)
}
