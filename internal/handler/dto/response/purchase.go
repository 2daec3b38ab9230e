// Package response holds the wire shapes the API returns. Converters copy
// from usecase results field-by-field via copier so renames surface as
// compile-time-visible zero values in tests rather than silent drift.
package response

import (
	"log/slog"

	"github.com/jinzhu/copier"

	"ticketing-orchestrator/internal/usecase/commands"
)

type LockedTicket struct {
	TicketID string `json:"ticketID"`
	SeatID   string `json:"seatID"`
}

type LockResponse struct {
	EventID     string         `json:"eventID"`
	Category    string         `json:"category"`
	Tickets     []LockedTicket `json:"tickets"`
	AmountCents int64          `json:"amountCents"`
	Currency    string         `json:"currency"`
	Reused      bool           `json:"reused"`
}

type PurchaseResponse struct {
	TransactionID string         `json:"transactionID"`
	ChargeRef     string         `json:"chargeRef,omitempty"`
	EventID       string         `json:"eventID"`
	Tickets       []LockedTicket `json:"tickets"`
	AmountCents   int64          `json:"amountCents"`
	Currency      string         `json:"currency"`
	Status        string         `json:"status"`
}

type TimeoutOutcome struct {
	TicketID string `json:"ticketID"`
	SeatID   string `json:"seatID"`
	Released bool   `json:"released"`
	Voided   bool   `json:"voided"`
	Error    string `json:"error,omitempty"`
}

type TimeoutResponse struct {
	EventID  string           `json:"eventID"`
	Category string           `json:"category"`
	Outcomes []TimeoutOutcome `json:"outcomes"`
	Partial  bool             `json:"partial"`
}

func FromLockResult(r *commands.LockResult) *LockResponse {
	var resp LockResponse
	mustCopy(&resp, r)
	return &resp
}

func FromPurchaseResult(r *commands.PurchaseResult) *PurchaseResponse {
	var resp PurchaseResponse
	mustCopy(&resp, r)
	return &resp
}

func FromTimeoutResult(r *commands.TimeoutResult) *TimeoutResponse {
	var resp TimeoutResponse
	mustCopy(&resp, r)
	if resp.Outcomes == nil {
		resp.Outcomes = []TimeoutOutcome{}
	}
	return &resp
}

// mustCopy only fails on incompatible shapes, which is a programming error.
func mustCopy(to, from any) {
	if err := copier.Copy(to, from); err != nil {
		slog.Error("response: dto copy failed", "error", err)
	}
}
