// Package booking holds the read-side snapshots of the externally owned seat,
// ticket and payment resources, plus the purchase pricing rules. Orchestrators
// never mutate these rows directly; every state change goes through the
// conditional-transition endpoints of the owning service.
package booking

import "time"

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatReserved  SeatStatus = "reserved"
	SeatConfirmed SeatStatus = "confirmed"
)

type TicketStatus string

const (
	TicketPendingPayment TicketStatus = "pending_payment"
	TicketConfirmed      TicketStatus = "confirmed"
	TicketVoided         TicketStatus = "voided"
)

// Seat is a snapshot of a seat row owned by the seat-allocation service.
type Seat struct {
	ID       string
	EventID  string
	Category string
	Status   SeatStatus
}

// Ticket is a snapshot of a ticket row owned by the ticket service.
type Ticket struct {
	ID             string
	EventID        string
	SeatID         string
	OwnerID        string
	Status         TicketStatus
	TransactionID  string
	TradeRequestID string
	ListedForTrade bool
}

// TradeLocked reports whether the ticket is tied to an in-flight trade and
// therefore must not be voided.
func (t Ticket) TradeLocked() bool {
	return t.ListedForTrade || t.TradeRequestID != ""
}

type TransactionKind string

const (
	TransactionCharge TransactionKind = "charge"
	TransactionRefund TransactionKind = "refund"
)

type TransactionStatus string

const (
	TransactionSucceeded TransactionStatus = "succeeded"
	TransactionDeclined  TransactionStatus = "declined"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Transaction is a snapshot of a ledger row owned by the payment service.
type Transaction struct {
	ID             string
	UserID         string
	ChargeRef      string
	AmountCents    int64
	Currency       string
	Kind           TransactionKind
	Status         TransactionStatus
	IdempotencyKey string
}

// Event is a snapshot from the event-catalog service; only the schedule
// matters to the refund-eligibility rule.
type Event struct {
	ID       string
	Name     string
	StartsAt time.Time
}
