//go:build unit

package commands_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ticketing-orchestrator/internal/client"
	"ticketing-orchestrator/internal/domain/booking"
	"ticketing-orchestrator/internal/domain/trade"
	"ticketing-orchestrator/internal/infra/bus"
	"ticketing-orchestrator/internal/infra/metrics"
	"ticketing-orchestrator/internal/infra/repository"
	"ticketing-orchestrator/internal/pkg/config"
)

// Prometheus collectors register globally, so the whole test binary shares
// one instance.
var testMetrics = metrics.NewSagaMetrics()

// fastSagaConfig keeps backoff retries from slowing the suite down.
func fastSagaConfig() config.SagaConfig {
	return config.SagaConfig{
		ConfirmMaxRetries:   2,
		ConfirmBackoffBase:  time.Millisecond,
		SeatSelectAttempts:  3,
		IdempotencyKeyTTL:   24 * time.Hour,
		DetachedStepTimeout: time.Second,
	}
}

func unavailableErr(service, op string) error {
	return &client.Error{Service: service, Operation: op, Status: 503, Kind: client.KindUnavailable, Message: "service unavailable"}
}

func conflictErr(service, op string) error {
	return &client.Error{Service: service, Operation: op, Status: 409, Kind: client.KindConflict, Message: "conditional update lost"}
}

func declinedErr() error {
	return &client.Error{Service: "payment", Operation: "/payment/charge", Status: 402, Kind: client.KindDeclined, Message: "card declined"}
}

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

type MockPaymentClient struct {
	mock.Mock
}

func (m *MockPaymentClient) Charge(ctx context.Context, req client.ChargeRequest) (*booking.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Transaction), args.Error(1)
}

func (m *MockPaymentClient) Refund(ctx context.Context, req client.RefundRequest) (*booking.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Transaction), args.Error(1)
}

func (m *MockPaymentClient) GetByTransaction(ctx context.Context, transactionID string) (*booking.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Transaction), args.Error(1)
}

type MockEventCatalog struct {
	mock.Mock
}

func (m *MockEventCatalog) Get(ctx context.Context, eventID string) (*booking.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Event), args.Error(1)
}

type MockTradeLedger struct {
	mock.Mock
}

func (m *MockTradeLedger) Insert(ctx context.Context, p *trade.Proposal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockTradeLedger) GetByID(ctx context.Context, id uuid.UUID) (*trade.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Proposal), args.Error(1)
}

func (m *MockTradeLedger) TransitionStatus(ctx context.Context, id uuid.UUID, from, to trade.Status) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockTradeLedger) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTradeLedger) DeclinePendingTouching(ctx context.Context, ticketA, ticketB string, exclude uuid.UUID) ([]*trade.Proposal, error) {
	args := m.Called(ctx, ticketA, ticketB, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Proposal), args.Error(1)
}

func (m *MockTradeLedger) FindPendingByTicket(ctx context.Context, ticketID string) ([]*trade.Proposal, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Proposal), args.Error(1)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) TryInsert(ctx context.Context, key uuid.UUID, userID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	args := m.Called(ctx, key, userID, endpoint, requestHash, expiresAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Get(ctx context.Context, key uuid.UUID, userID string) (*repository.IdempotencyRecord, error) {
	args := m.Called(ctx, key, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.IdempotencyRecord), args.Error(1)
}

func (m *MockIdempotencyStore) Complete(ctx context.Context, key uuid.UUID, userID string, payload []byte) error {
	return m.Called(ctx, key, userID, payload).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, queue string, ev bus.Event) error {
	return m.Called(ctx, queue, ev).Error(0)
}
