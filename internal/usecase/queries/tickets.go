package queries

import (
	"context"

	"ticketing-orchestrator/internal/client"
	"ticketing-orchestrator/internal/domain/booking"
)

type TicketView struct {
	TicketID       string `json:"ticketID"`
	EventID        string `json:"eventID"`
	SeatID         string `json:"seatID"`
	OwnerID        string `json:"ownerID"`
	Status         string `json:"status"`
	TransactionID  string `json:"transactionID,omitempty"`
	TradeRequestID string `json:"tradeRequestID,omitempty"`
	ListedForTrade bool   `json:"listed_for_trade"`
}

type VerifyResult struct {
	TicketID string `json:"ticketID"`
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"`
}

type TicketQuery struct {
	tickets client.Ticket
}

func NewTicketQuery(tickets client.Ticket) *TicketQuery {
	return &TicketQuery{tickets: tickets}
}

func toView(t booking.Ticket) TicketView {
	return TicketView{
		TicketID:       t.ID,
		EventID:        t.EventID,
		SeatID:         t.SeatID,
		OwnerID:        t.OwnerID,
		Status:         string(t.Status),
		TransactionID:  t.TransactionID,
		TradeRequestID: t.TradeRequestID,
		ListedForTrade: t.ListedForTrade,
	}
}

// PendingForUser returns the caller's unpaid locks for the event, the set
// Purchase would charge and Timeout would reclaim.
func (q *TicketQuery) PendingForUser(ctx context.Context, userID, eventID string) ([]TicketView, error) {
	all, err := q.tickets.ListByUser(ctx, userID)
	if err != nil {
		return nil, markClientErr(err)
	}
	views := make([]TicketView, 0)
	for _, t := range all {
		if t.EventID == eventID && t.Status == booking.TicketPendingPayment {
			views = append(views, toView(t))
		}
	}
	return views, nil
}

func (q *TicketQuery) ForUser(ctx context.Context, userID string) ([]TicketView, error) {
	all, err := q.tickets.ListByUser(ctx, userID)
	if err != nil {
		return nil, markClientErr(err)
	}
	views := make([]TicketView, 0, len(all))
	for _, t := range all {
		views = append(views, toView(t))
	}
	return views, nil
}

// UpForTrade lists the event's confirmed tickets whose owners opened them to
// swap offers.
func (q *TicketQuery) UpForTrade(ctx context.Context, eventID string) ([]TicketView, error) {
	all, err := q.tickets.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, markClientErr(err)
	}
	views := make([]TicketView, 0)
	for _, t := range all {
		if t.Status == booking.TicketConfirmed && t.ListedForTrade {
			views = append(views, toView(t))
		}
	}
	return views, nil
}

// Verify reports whether the ticket admits entry: it must exist, be
// confirmed, and belong to the presented holder.
func (q *TicketQuery) Verify(ctx context.Context, ticketID, holderID string) (*VerifyResult, error) {
	t, err := q.tickets.Get(ctx, ticketID)
	if err != nil {
		if client.IsKind(err, client.KindNotFound) {
			return &VerifyResult{TicketID: ticketID, Valid: false, Reason: "ticket not found"}, nil
		}
		return nil, markClientErr(err)
	}
	if t.Status != booking.TicketConfirmed {
		return &VerifyResult{TicketID: ticketID, Valid: false, Reason: "ticket is not confirmed"}, nil
	}
	if holderID != "" && t.OwnerID != holderID {
		return &VerifyResult{TicketID: ticketID, Valid: false, Reason: "ticket belongs to another holder"}, nil
	}
	return &VerifyResult{TicketID: ticketID, Valid: true}, nil
}
