package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ticketing-orchestrator/internal/domain/trade"
	"ticketing-orchestrator/internal/infra"
	"ticketing-orchestrator/internal/pkg/errs"
	"ticketing-orchestrator/internal/usecase"
)

// TradeReader is the read slice of the proposal ledger.
type TradeReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*trade.Proposal, error)
	ListByTicket(ctx context.Context, ticketID string) ([]*trade.Proposal, error)
	ListByUser(ctx context.Context, userID string, status *trade.Status) ([]*trade.Proposal, error)
}

type ProposalView struct {
	ProposalID     string    `json:"proposalID"`
	TicketA        string    `json:"ticketA"`
	TicketB        string    `json:"ticketB"`
	RequesterID    string    `json:"requesterID"`
	CounterpartyID string    `json:"counterpartyID"`
	Status         string    `json:"status"`
	Role           string    `json:"role,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type TradeStatusResult struct {
	TicketID  string         `json:"ticketID"`
	Proposals []ProposalView `json:"proposals"`
}

type TradeQuery struct {
	ledger TradeReader
}

func NewTradeQuery(ledger TradeReader) *TradeQuery {
	return &TradeQuery{ledger: ledger}
}

func proposalView(p *trade.Proposal, viewer string) ProposalView {
	v := ProposalView{
		ProposalID:     p.ID.String(),
		TicketA:        p.TicketA,
		TicketB:        p.TicketB,
		RequesterID:    p.RequesterID,
		CounterpartyID: p.CounterpartyID,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if viewer != "" {
		v.Role = p.Role(viewer)
	}
	return v
}

func (q *TradeQuery) ByID(ctx context.Context, viewerID string, id uuid.UUID) (*ProposalView, error) {
	p, err := q.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, markLedgerErr(err)
	}
	if !p.Participant(viewerID) {
		return nil, errs.Mark(errs.New("proposal does not involve the caller"), usecase.ErrNotFound)
	}
	v := proposalView(p, viewerID)
	return &v, nil
}

// ForUser lists the caller's proposals on either side, newest first.
func (q *TradeQuery) ForUser(ctx context.Context, userID, statusFilter string) ([]ProposalView, error) {
	var status *trade.Status
	if statusFilter != "" {
		s := trade.Status(statusFilter)
		switch s {
		case trade.StatusPending, trade.StatusAccepted, trade.StatusDeclined, trade.StatusCancelled:
			status = &s
		default:
			return nil, errs.Mark(errs.Newf("unknown proposal status %q", statusFilter), usecase.ErrValidation)
		}
	}

	proposals, err := q.ledger.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, markLedgerErr(err)
	}
	views := make([]ProposalView, 0, len(proposals))
	for _, p := range proposals {
		views = append(views, proposalView(p, userID))
	}
	return views, nil
}

// StatusForTicket shows every proposal that has touched the ticket.
func (q *TradeQuery) StatusForTicket(ctx context.Context, ticketID string) (*TradeStatusResult, error) {
	proposals, err := q.ledger.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, markLedgerErr(err)
	}
	views := make([]ProposalView, 0, len(proposals))
	for _, p := range proposals {
		views = append(views, proposalView(p, ""))
	}
	return &TradeStatusResult{TicketID: ticketID, Proposals: views}, nil
}

func markLedgerErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, usecase.ErrNotFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, usecase.ErrConflict)
	default:
		return errs.Mark(err, usecase.ErrUpstreamUnavailable)
	}
}
