//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketing-orchestrator/internal/client"
	"ticketing-orchestrator/internal/domain/booking"
	"ticketing-orchestrator/internal/domain/trade"
	"ticketing-orchestrator/internal/infra"
	"ticketing-orchestrator/internal/usecase"
	"ticketing-orchestrator/internal/usecase/queries"
)

type MockSeatClient struct {
	mock.Mock
}

func (m *MockSeatClient) Availability(ctx context.Context, eventID string) ([]booking.Seat, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Seat), args.Error(1)
}

func (m *MockSeatClient) Details(ctx context.Context, seatID string) (*booking.Seat, error) {
	args := m.Called(ctx, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Seat), args.Error(1)
}

func (m *MockSeatClient) Reserve(ctx context.Context, seatID string) error {
	return m.Called(ctx, seatID).Error(0)
}

func (m *MockSeatClient) Confirm(ctx context.Context, seatID string) error {
	return m.Called(ctx, seatID).Error(0)
}

func (m *MockSeatClient) Release(ctx context.Context, seatID string) error {
	return m.Called(ctx, seatID).Error(0)
}

type MockTicketClient struct {
	mock.Mock
}

func (m *MockTicketClient) Create(ctx context.Context, eventID, seatID, ownerID string) (*booking.Ticket, error) {
	args := m.Called(ctx, eventID, seatID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Ticket), args.Error(1)
}

func (m *MockTicketClient) Get(ctx context.Context, ticketID string) (*booking.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Ticket), args.Error(1)
}

func (m *MockTicketClient) ListByUser(ctx context.Context, userID string) ([]booking.Ticket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Ticket), args.Error(1)
}

func (m *MockTicketClient) ListByEvent(ctx context.Context, eventID string) ([]booking.Ticket, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Ticket), args.Error(1)
}

func (m *MockTicketClient) ListByTransaction(ctx context.Context, transactionID string) ([]booking.Ticket, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Ticket), args.Error(1)
}

func (m *MockTicketClient) Confirm(ctx context.Context, ticketID, transactionID string) error {
	return m.Called(ctx, ticketID, transactionID).Error(0)
}

func (m *MockTicketClient) Void(ctx context.Context, ticketID string) error {
	return m.Called(ctx, ticketID).Error(0)
}

func (m *MockTicketClient) SetTradeRequestID(ctx context.Context, ticketID, tradeRequestID string) error {
	return m.Called(ctx, ticketID, tradeRequestID).Error(0)
}

func (m *MockTicketClient) SetListedForTrade(ctx context.Context, ticketID string, listed bool) error {
	return m.Called(ctx, ticketID, listed).Error(0)
}

func (m *MockTicketClient) SetOwner(ctx context.Context, ticketID, ownerID string) error {
	return m.Called(ctx, ticketID, ownerID).Error(0)
}

type MockTradeReader struct {
	mock.Mock
}

func (m *MockTradeReader) GetByID(ctx context.Context, id uuid.UUID) (*trade.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Proposal), args.Error(1)
}

func (m *MockTradeReader) ListByTicket(ctx context.Context, ticketID string) ([]*trade.Proposal, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Proposal), args.Error(1)
}

func (m *MockTradeReader) ListByUser(ctx context.Context, userID string, status *trade.Status) ([]*trade.Proposal, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Proposal), args.Error(1)
}

func TestAvailabilityQuery_ForEvent(t *testing.T) {
	ctx := context.Background()

	seatRows := []booking.Seat{
		{ID: "st-3", EventID: "ev-1", Category: "cat_1", Status: booking.SeatAvailable},
		{ID: "st-1", EventID: "ev-1", Category: "cat_1", Status: booking.SeatAvailable},
		{ID: "st-2", EventID: "ev-1", Category: "vip", Status: booking.SeatAvailable},
		{ID: "st-4", EventID: "ev-1", Category: "cat_1", Status: booking.SeatReserved},
	}

	t.Run("groups open seats by category with per-seat price", func(t *testing.T) {
		seats := new(MockSeatClient)
		seats.On("Availability", ctx, "ev-1").Return(seatRows, nil)
		q := queries.NewAvailabilityQuery(seats, booking.NewRateTablePriceCalculator())

		result, err := q.ForEvent(ctx, "ev-1", "")

		require.NoError(t, err)
		require.Len(t, result.Categories, 2)
		assert.Equal(t, "cat_1", result.Categories[0].Category)
		assert.Equal(t, 2, result.Categories[0].Available)
		assert.Equal(t, []string{"st-1", "st-3"}, result.Categories[0].SeatIDs)
		assert.Equal(t, int64(29900), result.Categories[0].PriceCents)
		assert.Equal(t, "vip", result.Categories[1].Category)
		assert.Equal(t, int64(39900), result.Categories[1].PriceCents)
	})

	t.Run("filters to a single category", func(t *testing.T) {
		seats := new(MockSeatClient)
		seats.On("Availability", ctx, "ev-1").Return(seatRows, nil)
		q := queries.NewAvailabilityQuery(seats, booking.NewRateTablePriceCalculator())

		result, err := q.ForEvent(ctx, "ev-1", "vip")

		require.NoError(t, err)
		require.Len(t, result.Categories, 1)
		assert.Equal(t, "vip", result.Categories[0].Category)
	})

	t.Run("unknown category filter is a validation error", func(t *testing.T) {
		seats := new(MockSeatClient)
		q := queries.NewAvailabilityQuery(seats, booking.NewRateTablePriceCalculator())

		_, err := q.ForEvent(ctx, "ev-1", "balcony")

		assert.ErrorIs(t, err, usecase.ErrValidation)
		seats.AssertNotCalled(t, "Availability", mock.Anything, mock.Anything)
	})

	t.Run("seat service outage surfaces as unavailable", func(t *testing.T) {
		seats := new(MockSeatClient)
		seats.On("Availability", ctx, "ev-1").
			Return(nil, &client.Error{Service: "seat", Kind: client.KindUnavailable, Message: "down"})
		q := queries.NewAvailabilityQuery(seats, booking.NewRateTablePriceCalculator())

		_, err := q.ForEvent(ctx, "ev-1", "")

		assert.ErrorIs(t, err, usecase.ErrUpstreamUnavailable)
	})
}

func TestTicketQuery_Verify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		ticket     *booking.Ticket
		getErr     error
		holderID   string
		wantValid  bool
		wantReason string
	}{
		{
			name:      "confirmed ticket with matching holder",
			ticket:    &booking.Ticket{ID: "tk-1", OwnerID: "usr-1", Status: booking.TicketConfirmed},
			holderID:  "usr-1",
			wantValid: true,
		},
		{
			name:      "confirmed ticket without holder check",
			ticket:    &booking.Ticket{ID: "tk-1", OwnerID: "usr-1", Status: booking.TicketConfirmed},
			holderID:  "",
			wantValid: true,
		},
		{
			name:       "wrong holder",
			ticket:     &booking.Ticket{ID: "tk-1", OwnerID: "usr-1", Status: booking.TicketConfirmed},
			holderID:   "usr-2",
			wantValid:  false,
			wantReason: "ticket belongs to another holder",
		},
		{
			name:       "voided ticket",
			ticket:     &booking.Ticket{ID: "tk-1", OwnerID: "usr-1", Status: booking.TicketVoided},
			holderID:   "usr-1",
			wantValid:  false,
			wantReason: "ticket is not confirmed",
		},
		{
			name:       "unknown ticket",
			getErr:     &client.Error{Service: "ticket", Status: 404, Kind: client.KindNotFound, Message: "no such ticket"},
			holderID:   "usr-1",
			wantValid:  false,
			wantReason: "ticket not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets := new(MockTicketClient)
			if tt.getErr != nil {
				tickets.On("Get", ctx, "tk-1").Return(nil, tt.getErr)
			} else {
				tickets.On("Get", ctx, "tk-1").Return(tt.ticket, nil)
			}
			q := queries.NewTicketQuery(tickets)

			result, err := q.Verify(ctx, "tk-1", tt.holderID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantReason, result.Reason)
		})
	}
}

func TestTicketQuery_Lists(t *testing.T) {
	ctx := context.Background()
	rows := []booking.Ticket{
		{ID: "tk-1", EventID: "ev-1", Status: booking.TicketPendingPayment},
		{ID: "tk-2", EventID: "ev-1", Status: booking.TicketConfirmed, ListedForTrade: true},
		{ID: "tk-3", EventID: "ev-2", Status: booking.TicketPendingPayment},
		{ID: "tk-4", EventID: "ev-1", Status: booking.TicketConfirmed},
	}

	t.Run("pending filters by event and status", func(t *testing.T) {
		tickets := new(MockTicketClient)
		tickets.On("ListByUser", ctx, "usr-1").Return(rows, nil)
		q := queries.NewTicketQuery(tickets)

		views, err := q.PendingForUser(ctx, "usr-1", "ev-1")

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "tk-1", views[0].TicketID)
	})

	t.Run("up-for-trade keeps only listed confirmed tickets", func(t *testing.T) {
		tickets := new(MockTicketClient)
		tickets.On("ListByEvent", ctx, "ev-1").Return(rows, nil)
		q := queries.NewTicketQuery(tickets)

		views, err := q.UpForTrade(ctx, "ev-1")

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "tk-2", views[0].TicketID)
	})
}

func TestTradeQuery(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	proposal, err := trade.NewProposal("tk-a", "tk-b", "usr-1", "usr-2", now)
	require.NoError(t, err)

	t.Run("participant sees the proposal with their role", func(t *testing.T) {
		ledger := new(MockTradeReader)
		ledger.On("GetByID", ctx, proposal.ID).Return(proposal, nil)
		q := queries.NewTradeQuery(ledger)

		view, err := q.ByID(ctx, "usr-2", proposal.ID)

		require.NoError(t, err)
		assert.Equal(t, "counterparty", view.Role)
	})

	t.Run("an outsider gets not found", func(t *testing.T) {
		ledger := new(MockTradeReader)
		ledger.On("GetByID", ctx, proposal.ID).Return(proposal, nil)
		q := queries.NewTradeQuery(ledger)

		_, err := q.ByID(ctx, "usr-9", proposal.ID)

		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		ledger := new(MockTradeReader)
		ledger.On("GetByID", ctx, proposal.ID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "proposal not found"))
		q := queries.NewTradeQuery(ledger)

		_, err := q.ByID(ctx, "usr-1", proposal.ID)

		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})

	t.Run("status filter is validated", func(t *testing.T) {
		ledger := new(MockTradeReader)
		q := queries.NewTradeQuery(ledger)

		_, err := q.ForUser(ctx, "usr-1", "bogus")

		assert.ErrorIs(t, err, usecase.ErrValidation)
		ledger.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("valid filter is passed to the ledger", func(t *testing.T) {
		ledger := new(MockTradeReader)
		pending := trade.StatusPending
		ledger.On("ListByUser", ctx, "usr-1", &pending).Return([]*trade.Proposal{proposal}, nil)
		q := queries.NewTradeQuery(ledger)

		views, err := q.ForUser(ctx, "usr-1", "pending")

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "requester", views[0].Role)
	})

	t.Run("ticket history omits roles", func(t *testing.T) {
		ledger := new(MockTradeReader)
		ledger.On("ListByTicket", ctx, "tk-a").Return([]*trade.Proposal{proposal}, nil)
		q := queries.NewTradeQuery(ledger)

		result, err := q.StatusForTicket(ctx, "tk-a")

		require.NoError(t, err)
		assert.Equal(t, "tk-a", result.TicketID)
		require.Len(t, result.Proposals, 1)
		assert.Empty(t, result.Proposals[0].Role)
	})
}
