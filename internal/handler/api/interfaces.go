package api

import (
	"context"

	"github.com/google/uuid"

	"ticketing-orchestrator/internal/usecase/commands"
	"ticketing-orchestrator/internal/usecase/queries"
)

//go:generate mockgen -source=interfaces.go -destination=../../../tests/mock/api/mocks.go -package=apimock

type PurchaseCommands interface {
	Lock(ctx context.Context, in commands.LockInput) (*commands.LockResult, error)
	Purchase(ctx context.Context, in commands.PurchaseInput) (*commands.PurchaseResult, error)
	Timeout(ctx context.Context, userID, eventID, category string) (*commands.TimeoutResult, error)
}

type CancellationCommands interface {
	CheckEligibility(ctx context.Context, userID, transactionID string) (*commands.EligibilityResult, error)
	Cancel(ctx context.Context, userID, transactionID string) (*commands.CancelResult, error)
}

type TradeCommands interface {
	Propose(ctx context.Context, in commands.ProposeInput) (*commands.ProposeResult, error)
	Accept(ctx context.Context, userID string, proposalID uuid.UUID) (*commands.AcceptResult, error)
	Cancel(ctx context.Context, userID string, proposalID uuid.UUID) (*commands.TradeCancelResult, error)
	ListForTrade(ctx context.Context, userID, ticketID string, listed bool) (*commands.ListForTradeResult, error)
}

type TradeQueries interface {
	ByID(ctx context.Context, viewerID string, id uuid.UUID) (*queries.ProposalView, error)
	ForUser(ctx context.Context, userID, statusFilter string) ([]queries.ProposalView, error)
	StatusForTicket(ctx context.Context, ticketID string) (*queries.TradeStatusResult, error)
}

type TicketQueries interface {
	ForUser(ctx context.Context, userID string) ([]queries.TicketView, error)
	PendingForUser(ctx context.Context, userID, eventID string) ([]queries.TicketView, error)
	UpForTrade(ctx context.Context, eventID string) ([]queries.TicketView, error)
	Verify(ctx context.Context, ticketID, holderID string) (*queries.VerifyResult, error)
}

type AvailabilityQueries interface {
	ForEvent(ctx context.Context, eventID, category string) (*queries.AvailabilityResult, error)
}
