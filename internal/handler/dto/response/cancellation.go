package response

import (
	"time"

	"ticketing-orchestrator/internal/usecase/commands"
)

type EligibilityResponse struct {
	TransactionID  string    `json:"transactionID"`
	EventID        string    `json:"eventID"`
	Eligible       bool      `json:"eligible"`
	RefundDeadline time.Time `json:"refundDeadline"`
	Reason         string    `json:"reason,omitempty"`
}

type CancelResponse struct {
	TransactionID       string   `json:"transactionID"`
	EventID             string   `json:"eventID"`
	VoidedTickets       []string `json:"voidedTickets"`
	ReleasedSeats       []string `json:"releasedSeats"`
	RefundIssued        bool     `json:"refundIssued"`
	RefundTransactionID string   `json:"refundTransactionID,omitempty"`
	AmountCents         int64    `json:"amountCents,omitempty"`
	Currency            string   `json:"currency,omitempty"`
	Status              string   `json:"status"`
}

func FromEligibilityResult(r *commands.EligibilityResult) *EligibilityResponse {
	var resp EligibilityResponse
	mustCopy(&resp, r)
	return &resp
}

func FromCancelResult(r *commands.CancelResult) *CancelResponse {
	var resp CancelResponse
	mustCopy(&resp, r)
	return &resp
}
