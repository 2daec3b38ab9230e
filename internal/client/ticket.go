package client

import (
	"context"
	"net/http"

	"ticketing-orchestrator/internal/domain/booking"
	"ticketing-orchestrator/internal/pkg/config"
)

// Ticket is the contract of the ticket service. Confirm and Void are
// conditional on the current status; SetTradeRequestID with an empty id
// clears the trade association.
type Ticket interface {
	Create(ctx context.Context, eventID, seatID, ownerID string) (*booking.Ticket, error)
	Get(ctx context.Context, ticketID string) (*booking.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]booking.Ticket, error)
	ListByEvent(ctx context.Context, eventID string) ([]booking.Ticket, error)
	ListByTransaction(ctx context.Context, transactionID string) ([]booking.Ticket, error)
	Confirm(ctx context.Context, ticketID, transactionID string) error
	Void(ctx context.Context, ticketID string) error
	SetTradeRequestID(ctx context.Context, ticketID, tradeRequestID string) error
	SetListedForTrade(ctx context.Context, ticketID string, listed bool) error
	SetOwner(ctx context.Context, ticketID, ownerID string) error
}

type TicketClient struct {
	httpClient
}

func NewTicketClient(cfg config.CollaboratorConfig) *TicketClient {
	return &TicketClient{newHTTPClient("ticket", cfg.TicketBaseURL, cfg)}
}

type ticketPayload struct {
	TicketID       string `json:"ticketID"`
	EventID        string `json:"eventID"`
	SeatID         string `json:"seatID"`
	UserID         string `json:"userID"`
	Status         string `json:"status"`
	TransactionID  string `json:"transactionID"`
	TradeRequestID string `json:"tradeRequestID"`
	ListedForTrade bool   `json:"listed_for_trade"`
}

func (p ticketPayload) toDomain() booking.Ticket {
	return booking.Ticket{
		ID:             p.TicketID,
		EventID:        p.EventID,
		SeatID:         p.SeatID,
		OwnerID:        p.UserID,
		Status:         booking.TicketStatus(p.Status),
		TransactionID:  p.TransactionID,
		TradeRequestID: p.TradeRequestID,
		ListedForTrade: p.ListedForTrade,
	}
}

func (c *TicketClient) Create(ctx context.Context, eventID, seatID, ownerID string) (*booking.Ticket, error) {
	req := map[string]string{"eventID": eventID, "seatID": seatID, "userID": ownerID}
	var p ticketPayload
	if err := c.doJSON(ctx, http.MethodPost, "/ticket", req, &p); err != nil {
		return nil, err
	}
	t := p.toDomain()
	return &t, nil
}

func (c *TicketClient) Get(ctx context.Context, ticketID string) (*booking.Ticket, error) {
	var p ticketPayload
	if err := c.doJSON(ctx, http.MethodGet, "/ticket/"+ticketID, nil, &p); err != nil {
		return nil, err
	}
	t := p.toDomain()
	return &t, nil
}

func (c *TicketClient) ListByUser(ctx context.Context, userID string) ([]booking.Ticket, error) {
	return c.list(ctx, "/tickets/user/"+userID)
}

func (c *TicketClient) ListByEvent(ctx context.Context, eventID string) ([]booking.Ticket, error) {
	return c.list(ctx, "/tickets/event/"+eventID)
}

func (c *TicketClient) ListByTransaction(ctx context.Context, transactionID string) ([]booking.Ticket, error) {
	return c.list(ctx, "/tickets/transaction/"+transactionID)
}

func (c *TicketClient) list(ctx context.Context, path string) ([]booking.Ticket, error) {
	var payloads []ticketPayload
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &payloads); err != nil {
		return nil, err
	}
	tickets := make([]booking.Ticket, 0, len(payloads))
	for _, p := range payloads {
		tickets = append(tickets, p.toDomain())
	}
	return tickets, nil
}

func (c *TicketClient) Confirm(ctx context.Context, ticketID, transactionID string) error {
	req := map[string]string{"transactionID": transactionID}
	return c.doJSON(ctx, http.MethodPut, "/ticket/confirm/"+ticketID, req, nil)
}

func (c *TicketClient) Void(ctx context.Context, ticketID string) error {
	return c.doJSON(ctx, http.MethodPut, "/ticket/void/"+ticketID, nil, nil)
}

func (c *TicketClient) SetTradeRequestID(ctx context.Context, ticketID, tradeRequestID string) error {
	req := map[string]string{"tradeRequestID": tradeRequestID}
	return c.doJSON(ctx, http.MethodPost, "/ticket/"+ticketID+"/set-trade-id", req, nil)
}

func (c *TicketClient) SetListedForTrade(ctx context.Context, ticketID string, listed bool) error {
	req := map[string]bool{"listed_for_trade": listed}
	return c.doJSON(ctx, http.MethodPut, "/ticket/"+ticketID+"/list-for-trade", req, nil)
}

func (c *TicketClient) SetOwner(ctx context.Context, ticketID, ownerID string) error {
	req := map[string]string{"userID": ownerID}
	return c.doJSON(ctx, http.MethodPut, "/ticket/"+ticketID+"/owner", req, nil)
}
