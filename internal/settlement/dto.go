package settlement

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the request body for recording a payment against
// a transfer intent.
type RecordPaymentRequest struct {
	GroupID    string          `json:"group_id" validate:"required"`
	From       string          `json:"from" validate:"required"`
	To         string          `json:"to" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	AmountPaid decimal.Decimal `json:"amount_paid" validate:"required"`
}

// SettlementResponse is the API shape of a persisted settlement.
type SettlementResponse struct {
	ID              string          `json:"id"`
	GroupID         string          `json:"group_id"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	IsFullyPaid     bool            `json:"is_fully_paid"`
	CreatedAt       int64           `json:"created_at"`
	UpdatedAt       int64           `json:"updated_at"`
}

// NetSettlementResponse is the API shape of a computed transfer intent.
// Net settlements are derived, so they carry no ID or timestamps.
type NetSettlementResponse struct {
	GroupID         string          `json:"group_id"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	UPILink         string          `json:"upi_link,omitempty"`
}

// MemberBalanceResponse is one member's adjusted balance within a group.
type MemberBalanceResponse struct {
	MemberID string          `json:"member_id"`
	Balance  decimal.Decimal `json:"balance"`
	Message  string          `json:"message"`
}

// ToResponse converts a settlement to its API shape.
func ToResponse(s *Settlement) SettlementResponse {
	return SettlementResponse{
		ID:              s.ID,
		GroupID:         s.GroupID,
		From:            s.From,
		To:              s.To,
		Amount:          s.Amount,
		PaidAmount:      s.PaidAmount,
		RemainingAmount: s.RemainingAmount(),
		IsFullyPaid:     s.IsFullyPaid(),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// ToNetResponse converts a transfer intent to its API shape, attaching a
// UPI deep link when the creditor has a UPI ID on file.
func ToNetResponse(s *Settlement, creditorName, creditorUPI string) NetSettlementResponse {
	resp := NetSettlementResponse{
		GroupID:         s.GroupID,
		From:            s.From,
		To:              s.To,
		Amount:          s.Amount,
		PaidAmount:      s.PaidAmount,
		RemainingAmount: s.RemainingAmount(),
	}
	if creditorUPI != "" {
		resp.UPILink = UPILink(creditorUPI, creditorName, s.RemainingAmount())
	}
	return resp
}

// UPILink builds a upi://pay deep link for an amount owed to a payee.
func UPILink(payeeUPI, payeeName string, amount decimal.Decimal) string {
	q := url.Values{}
	q.Set("pa", payeeUPI)
	q.Set("pn", payeeName)
	q.Set("tn", "Group settlement")
	q.Set("am", amount.StringFixed(2))
	q.Set("cu", "INR")
	return "upi://pay?" + q.Encode()
}

// BalanceMessage renders a member's balance the way it is shown in group
// summaries.
func BalanceMessage(balance decimal.Decimal) string {
	switch balance.Sign() {
	case 1:
		return fmt.Sprintf("gets back ₹%s", balance.StringFixed(2))
	case -1:
		return fmt.Sprintf("owes ₹%s", balance.Neg().StringFixed(2))
	default:
		return "settled up"
	}
}
