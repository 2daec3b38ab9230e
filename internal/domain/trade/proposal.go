// Package trade models peer-to-peer ticket swap proposals and their lifecycle.
// The only legal transitions are pending→accepted, pending→cancelled and
// pending→declined; every terminal state is final.
package trade

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
)

var (
	ErrInvalidProposalState = errors.New("proposal is not pending")
	ErrSameTicket           = errors.New("cannot trade a ticket against itself")
	ErrSameParty            = errors.New("cannot trade between the same user")
	ErrNotParticipant       = errors.New("user is not a party to this proposal")
	ErrNotCounterparty      = errors.New("only the counterparty may accept")
)

// Proposal is a trade negotiation between the requester (offering TicketA)
// and the counterparty (owning TicketB).
type Proposal struct {
	ID             uuid.UUID
	TicketA        string
	TicketB        string
	RequesterID    string
	CounterpartyID string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewProposal validates parties and tickets and returns a pending proposal.
func NewProposal(ticketA, ticketB, requesterID, counterpartyID string, now time.Time) (*Proposal, error) {
	if ticketA == ticketB {
		return nil, ErrSameTicket
	}
	if requesterID == counterpartyID {
		return nil, ErrSameParty
	}
	return &Proposal{
		ID:             uuid.New(),
		TicketA:        ticketA,
		TicketB:        ticketB,
		RequesterID:    requesterID,
		CounterpartyID: counterpartyID,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Touches reports whether the proposal references ticketID on either side.
func (p *Proposal) Touches(ticketID string) bool {
	return p.TicketA == ticketID || p.TicketB == ticketID
}

// Participant reports whether userID is a party to the proposal.
func (p *Proposal) Participant(userID string) bool {
	return p.RequesterID == userID || p.CounterpartyID == userID
}

// CanAccept checks that userID is allowed to move the proposal to accepted.
// The actual transition happens through a conditional write in the ledger;
// this only validates the request shape.
func (p *Proposal) CanAccept(userID string) error {
	if p.Status != StatusPending {
		return ErrInvalidProposalState
	}
	if userID != p.CounterpartyID {
		return ErrNotCounterparty
	}
	return nil
}

// CanCancel checks that userID is allowed to withdraw the proposal.
func (p *Proposal) CanCancel(userID string) error {
	if p.Status != StatusPending {
		return ErrInvalidProposalState
	}
	if !p.Participant(userID) {
		return ErrNotParticipant
	}
	return nil
}

// Role names userID's side of the proposal, for query responses.
func (p *Proposal) Role(userID string) string {
	switch userID {
	case p.RequesterID:
		return "requester"
	case p.CounterpartyID:
		return "counterparty"
	default:
		return ""
	}
}
