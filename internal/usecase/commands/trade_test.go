//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketing-orchestrator/internal/domain/booking"
	"ticketing-orchestrator/internal/domain/trade"
	"ticketing-orchestrator/internal/infra"
	"ticketing-orchestrator/internal/infra/bus"
	"ticketing-orchestrator/internal/pkg/clock"
	"ticketing-orchestrator/internal/usecase"
	"ticketing-orchestrator/internal/usecase/commands"
)

type tradeFixture struct {
	ledger  *MockTradeLedger
	tickets *MockTicketClient
	store   *MockIdempotencyStore
	clock   *clock.MockClock
	orch    *commands.TradeOrchestrator
}

func newTradeFixture(t *testing.T) *tradeFixture {
	t.Helper()
	f := &tradeFixture{
		ledger:  new(MockTradeLedger),
		tickets: new(MockTicketClient),
		store:   new(MockIdempotencyStore),
		clock:   clock.NewMockClock(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)),
	}
	guard := commands.NewIdempotencyGuard(f.store, f.clock, 24*time.Hour)
	f.orch = commands.NewTradeOrchestrator(
		f.ledger, f.tickets, guard,
		bus.NopPublisher{}, testMetrics, f.clock, fastSagaConfig(),
	)
	return f
}

func (f *tradeFixture) claimKey(key uuid.UUID, userID string) {
	f.store.On("TryInsert", mock.Anything, key, userID, "trade.propose",
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(true, nil)
	f.store.On("Complete", mock.Anything, key, userID, mock.AnythingOfType("[]uint8")).
		Return(nil).Maybe()
}

func tradableTicket(id, owner string, listed bool) *booking.Ticket {
	return &booking.Ticket{
		ID: id, EventID: "ev-1", SeatID: "st-" + id, OwnerID: owner,
		Status: booking.TicketConfirmed, ListedForTrade: listed,
	}
}

func pendingProposal(ticketA, ticketB, requester, counterparty string) *trade.Proposal {
	p, err := trade.NewProposal(ticketA, ticketB, requester, counterparty, time.Now())
	if err != nil {
		panic(err)
	}
	return p
}

func TestTradeOrchestrator_Propose(t *testing.T) {
	ctx := context.Background()
	key := uuid.New()
	in := commands.ProposeInput{RequesterID: "usr-1", TicketA: "tk-a", TicketB: "tk-b", IdempotencyKey: key}

	t.Run("opens a pending proposal and marks both tickets", func(t *testing.T) {
		f := newTradeFixture(t)
		f.claimKey(key, "usr-1")
		f.tickets.On("Get", mock.Anything, "tk-a").Return(tradableTicket("tk-a", "usr-1", false), nil)
		f.tickets.On("Get", mock.Anything, "tk-b").Return(tradableTicket("tk-b", "usr-2", true), nil)
		f.ledger.On("Insert", mock.Anything, mock.AnythingOfType("*trade.Proposal")).Return(nil)
		f.tickets.On("SetTradeRequestID", mock.Anything, "tk-a", mock.AnythingOfType("string")).Return(nil)
		f.tickets.On("SetTradeRequestID", mock.Anything, "tk-b", mock.AnythingOfType("string")).Return(nil)

		result, err := f.orch.Propose(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, "pending", result.Status)
		assert.Equal(t, "usr-1", result.RequesterID)
		assert.Equal(t, "usr-2", result.CounterpartyID)
		assert.NotEmpty(t, result.ProposalID)
		f.ledger.AssertExpectations(t)
	})

	t.Run("unwinds the proposal when marking the counterparty ticket fails", func(t *testing.T) {
		f := newTradeFixture(t)
		f.claimKey(key, "usr-1")
		f.tickets.On("Get", mock.Anything, "tk-a").Return(tradableTicket("tk-a", "usr-1", false), nil)
		f.tickets.On("Get", mock.Anything, "tk-b").Return(tradableTicket("tk-b", "usr-2", true), nil)
		f.ledger.On("Insert", mock.Anything, mock.AnythingOfType("*trade.Proposal")).Return(nil)
		f.tickets.On("SetTradeRequestID", mock.Anything, "tk-a", mock.MatchedBy(func(id string) bool { return id != "" })).Return(nil)
		f.tickets.On("SetTradeRequestID", mock.Anything, "tk-b", mock.MatchedBy(func(id string) bool { return id != "" })).
			Return(unavailableErr("ticket", "/ticket/tk-b/set-trade-id"))
		// Compensation clears the requester mark and deletes the row.
		f.tickets.On("SetTradeRequestID", mock.Anything, "tk-a", "").Return(nil)
		f.ledger.On("Delete", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)

		_, err := f.orch.Propose(ctx, in)

		assert.ErrorIs(t, err, usecase.ErrUpstreamUnavailable)
		f.tickets.AssertCalled(t, "SetTradeRequestID", mock.Anything, "tk-a", "")
		f.ledger.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("uuid.UUID"))
	})

	t.Run("requested ticket must be listed", func(t *testing.T) {
		f := newTradeFixture(t)
		f.claimKey(key, "usr-1")
		f.tickets.On("Get", mock.Anything, "tk-a").Return(tradableTicket("tk-a", "usr-1", false), nil)
		f.tickets.On("Get", mock.Anything, "tk-b").Return(tradableTicket("tk-b", "usr-2", false), nil)

		_, err := f.orch.Propose(ctx, in)

		assert.ErrorIs(t, err, usecase.ErrConflict)
		f.ledger.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("offered ticket must belong to the requester", func(t *testing.T) {
		f := newTradeFixture(t)
		f.claimKey(key, "usr-1")
		f.tickets.On("Get", mock.Anything, "tk-a").Return(tradableTicket("tk-a", "usr-9", false), nil)
		f.tickets.On("Get", mock.Anything, "tk-b").Return(tradableTicket("tk-b", "usr-2", true), nil)

		_, err := f.orch.Propose(ctx, in)

		assert.ErrorIs(t, err, usecase.ErrValidation)
	})

	t.Run("a ticket already in a proposal is a conflict", func(t *testing.T) {
		f := newTradeFixture(t)
		f.claimKey(key, "usr-1")
		marked := tradableTicket("tk-a", "usr-1", false)
		marked.TradeRequestID = uuid.NewString()
		f.tickets.On("Get", mock.Anything, "tk-a").Return(marked, nil)
		f.tickets.On("Get", mock.Anything, "tk-b").Return(tradableTicket("tk-b", "usr-2", true), nil)

		_, err := f.orch.Propose(ctx, in)

		assert.ErrorIs(t, err, usecase.ErrConflict)
	})

	t.Run("duplicate pending proposal loses on the ledger constraint", func(t *testing.T) {
		f := newTradeFixture(t)
		f.claimKey(key, "usr-1")
		f.tickets.On("Get", mock.Anything, "tk-a").Return(tradableTicket("tk-a", "usr-1", false), nil)
		f.tickets.On("Get", mock.Anything, "tk-b").Return(tradableTicket("tk-b", "usr-2", true), nil)
		f.ledger.On("Insert", mock.Anything, mock.AnythingOfType("*trade.Proposal")).
			Return(infra.NewRepoErr(infra.KindConflict, "a pending proposal already references the ticket"))

		_, err := f.orch.Propose(ctx, in)

		assert.ErrorIs(t, err, usecase.ErrConflict)
		f.tickets.AssertNotCalled(t, "SetTradeRequestID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTradeOrchestrator_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps owners and declines competitors", func(t *testing.T) {
		f := newTradeFixture(t)
		proposal := pendingProposal("tk-a", "tk-b", "usr-1", "usr-2")
		competitor := pendingProposal("tk-c", "tk-b", "usr-3", "usr-2")

		f.ledger.On("GetByID", mock.Anything, proposal.ID).Return(proposal, nil)
		f.ledger.On("TransitionStatus", mock.Anything, proposal.ID, trade.StatusPending, trade.StatusAccepted).Return(nil)
		f.tickets.On("SetOwner", mock.Anything, "tk-a", "usr-2").Return(nil)
		f.tickets.On("SetOwner", mock.Anything, "tk-b", "usr-1").Return(nil)
		f.tickets.On("SetTradeRequestID", mock.Anything, "tk-a", "").Return(nil)
		f.tickets.On("SetTradeRequestID", mock.Anything, "tk-b", "").Return(nil)
		f.tickets.On("SetListedForTrade", mock.Anything, "tk-a", false).Return(nil)
		f.tickets.On("SetListedForTrade", mock.Anything, "tk-b", false).Return(nil)
		f.ledger.On("DeclinePendingTouching", mock.Anything, "tk-a", "tk-b", proposal.ID).
			Return([]*trade.Proposal{competitor}, nil)
		// The competitor's other ticket gets unmarked too.
		f.tickets.On("SetTradeRequestID", mock.Anything, "tk-c", "").Return(nil)

		result, err := f.orch.Accept(ctx, "usr-2", proposal.ID)

		require.NoError(t, err)
		assert.Equal(t, "accepted", result.Status)
		assert.Equal(t, []string{competitor.ID.String()}, result.Declined)
		f.tickets.AssertCalled(t, "SetOwner", mock.Anything, "tk-a", "usr-2")
		f.tickets.AssertCalled(t, "SetOwner", mock.Anything, "tk-b", "usr-1")
		f.tickets.AssertCalled(t, "SetTradeRequestID", mock.Anything, "tk-c", "")
	})

	t.Run("losing the conditional transition is a conflict", func(t *testing.T) {
		f := newTradeFixture(t)
		proposal := pendingProposal("tk-a", "tk-b", "usr-1", "usr-2")

		f.ledger.On("GetByID", mock.Anything, proposal.ID).Return(proposal, nil)
		f.ledger.On("TransitionStatus", mock.Anything, proposal.ID, trade.StatusPending, trade.StatusAccepted).
			Return(infra.NewRepoErr(infra.KindConflict, "proposal is no longer pending"))

		_, err := f.orch.Accept(ctx, "usr-2", proposal.ID)

		assert.ErrorIs(t, err, usecase.ErrConflict)
		f.tickets.AssertNotCalled(t, "SetOwner", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("the requester cannot accept their own proposal", func(t *testing.T) {
		f := newTradeFixture(t)
		proposal := pendingProposal("tk-a", "tk-b", "usr-1", "usr-2")
		f.ledger.On("GetByID", mock.Anything, proposal.ID).Return(proposal, nil)

		_, err := f.orch.Accept(ctx, "usr-1", proposal.ID)

		assert.ErrorIs(t, err, usecase.ErrValidation)
		f.ledger.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a terminal proposal cannot be accepted", func(t *testing.T) {
		f := newTradeFixture(t)
		proposal := pendingProposal("tk-a", "tk-b", "usr-1", "usr-2")
		proposal.Status = trade.StatusCancelled
		f.ledger.On("GetByID", mock.Anything, proposal.ID).Return(proposal, nil)

		_, err := f.orch.Accept(ctx, "usr-2", proposal.ID)

		assert.ErrorIs(t, err, usecase.ErrConflict)
	})

	t.Run("ownership swap exhaustion after commit is an inconsistency", func(t *testing.T) {
		f := newTradeFixture(t)
		proposal := pendingProposal("tk-a", "tk-b", "usr-1", "usr-2")

		f.ledger.On("GetByID", mock.Anything, proposal.ID).Return(proposal, nil)
		f.ledger.On("TransitionStatus", mock.Anything, proposal.ID, trade.StatusPending, trade.StatusAccepted).Return(nil)
		f.tickets.On("SetOwner", mock.Anything, "tk-a", "usr-2").
			Return(unavailableErr("ticket", "/ticket/tk-a/owner"))

		_, err := f.orch.Accept(ctx, "usr-2", proposal.ID)

		assert.ErrorIs(t, err, usecase.ErrPostPaymentInconsistency)
	})
}

func TestTradeOrchestrator_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("either participant withdraws a pending proposal", func(t *testing.T) {
		f := newTradeFixture(t)
		proposal := pendingProposal("tk-a", "tk-b", "usr-1", "usr-2")

		f.ledger.On("GetByID", mock.Anything, proposal.ID).Return(proposal, nil)
		f.ledger.On("TransitionStatus", mock.Anything, proposal.ID, trade.StatusPending, trade.StatusCancelled).Return(nil)
		f.tickets.On("SetTradeRequestID", mock.Anything, "tk-a", "").Return(nil)
		f.tickets.On("SetTradeRequestID", mock.Anything, "tk-b", "").Return(nil)

		result, err := f.orch.Cancel(ctx, "usr-1", proposal.ID)

		require.NoError(t, err)
		assert.Equal(t, "cancelled", result.Status)
		// Cancelling clears the trade mark but keeps the listing.
		f.tickets.AssertNotCalled(t, "SetListedForTrade", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("an outsider cannot cancel", func(t *testing.T) {
		f := newTradeFixture(t)
		proposal := pendingProposal("tk-a", "tk-b", "usr-1", "usr-2")
		f.ledger.On("GetByID", mock.Anything, proposal.ID).Return(proposal, nil)

		_, err := f.orch.Cancel(ctx, "usr-9", proposal.ID)

		assert.ErrorIs(t, err, usecase.ErrValidation)
	})

	t.Run("racing an accept loses cleanly", func(t *testing.T) {
		f := newTradeFixture(t)
		proposal := pendingProposal("tk-a", "tk-b", "usr-1", "usr-2")
		f.ledger.On("GetByID", mock.Anything, proposal.ID).Return(proposal, nil)
		f.ledger.On("TransitionStatus", mock.Anything, proposal.ID, trade.StatusPending, trade.StatusCancelled).
			Return(infra.NewRepoErr(infra.KindConflict, "proposal is no longer pending"))

		_, err := f.orch.Cancel(ctx, "usr-1", proposal.ID)

		assert.ErrorIs(t, err, usecase.ErrConflict)
		f.tickets.AssertNotCalled(t, "SetTradeRequestID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTradeOrchestrator_ListForTrade(t *testing.T) {
	ctx := context.Background()

	t.Run("lists a confirmed ticket", func(t *testing.T) {
		f := newTradeFixture(t)
		f.tickets.On("Get", mock.Anything, "tk-a").Return(tradableTicket("tk-a", "usr-1", false), nil)
		f.tickets.On("SetListedForTrade", mock.Anything, "tk-a", true).Return(nil)

		result, err := f.orch.ListForTrade(ctx, "usr-1", "tk-a", true)

		require.NoError(t, err)
		assert.True(t, result.Listed)
	})

	t.Run("unlisting is blocked while a proposal is pending", func(t *testing.T) {
		f := newTradeFixture(t)
		f.tickets.On("Get", mock.Anything, "tk-a").Return(tradableTicket("tk-a", "usr-1", true), nil)
		f.ledger.On("FindPendingByTicket", mock.Anything, "tk-a").
			Return([]*trade.Proposal{pendingProposal("tk-b", "tk-a", "usr-2", "usr-1")}, nil)

		_, err := f.orch.ListForTrade(ctx, "usr-1", "tk-a", false)

		assert.ErrorIs(t, err, usecase.ErrConflict)
		f.tickets.AssertNotCalled(t, "SetListedForTrade", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unlisting succeeds once proposals are settled", func(t *testing.T) {
		f := newTradeFixture(t)
		f.tickets.On("Get", mock.Anything, "tk-a").Return(tradableTicket("tk-a", "usr-1", true), nil)
		f.ledger.On("FindPendingByTicket", mock.Anything, "tk-a").Return([]*trade.Proposal{}, nil)
		f.tickets.On("SetListedForTrade", mock.Anything, "tk-a", false).Return(nil)

		result, err := f.orch.ListForTrade(ctx, "usr-1", "tk-a", false)

		require.NoError(t, err)
		assert.False(t, result.Listed)
	})

	t.Run("only the owner may toggle the listing", func(t *testing.T) {
		f := newTradeFixture(t)
		f.tickets.On("Get", mock.Anything, "tk-a").Return(tradableTicket("tk-a", "usr-9", false), nil)

		_, err := f.orch.ListForTrade(ctx, "usr-1", "tk-a", true)

		assert.ErrorIs(t, err, usecase.ErrValidation)
	})

	t.Run("only confirmed tickets can be listed", func(t *testing.T) {
		f := newTradeFixture(t)
		pending := tradableTicket("tk-a", "usr-1", false)
		pending.Status = booking.TicketPendingPayment
		f.tickets.On("Get", mock.Anything, "tk-a").Return(pending, nil)

		_, err := f.orch.ListForTrade(ctx, "usr-1", "tk-a", true)

		assert.ErrorIs(t, err, usecase.ErrConflict)
	})
}
