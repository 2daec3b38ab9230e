package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"ticketing-orchestrator/internal/client"
	"ticketing-orchestrator/internal/domain/booking"
	"ticketing-orchestrator/internal/infra/bus"
	"ticketing-orchestrator/internal/infra/metrics"
	"ticketing-orchestrator/internal/pkg/clock"
	"ticketing-orchestrator/internal/pkg/config"
	"ticketing-orchestrator/internal/pkg/errs"
	"ticketing-orchestrator/internal/usecase"
)

// refundCutoff is how long before the event start a cancellation still earns
// a refund. At or past the cutoff the booking can be cancelled but the money
// stays.
const refundCutoff = 7 * 24 * time.Hour

type EligibilityResult struct {
	TransactionID  string    `json:"transactionID"`
	EventID        string    `json:"eventID"`
	Eligible       bool      `json:"eligible"`
	RefundDeadline time.Time `json:"refundDeadline"`
	Reason         string    `json:"reason,omitempty"`
}

type CancelResult struct {
	TransactionID       string   `json:"transactionID"`
	EventID             string   `json:"eventID"`
	VoidedTickets       []string `json:"voidedTickets"`
	ReleasedSeats       []string `json:"releasedSeats"`
	RefundIssued        bool     `json:"refundIssued"`
	RefundTransactionID string   `json:"refundTransactionID,omitempty"`
	AmountCents         int64    `json:"amountCents,omitempty"`
	Currency            string   `json:"currency,omitempty"`
	Status              string   `json:"status"`
}

// CancellationOrchestrator voids a purchase's tickets, releases their seats
// and conditionally refunds the charge. The trade-lock check runs before any
// side effect so a booking tied to an in-flight trade is rejected whole.
type CancellationOrchestrator struct {
	seats    client.Seat
	tickets  client.Ticket
	payments client.Payment
	catalog  client.EventCatalog
	events   bus.Publisher
	metrics  *metrics.SagaMetrics
	clock    clock.Clock
	cfg      config.SagaConfig
}

func NewCancellationOrchestrator(
	seats client.Seat,
	tickets client.Ticket,
	payments client.Payment,
	catalog client.EventCatalog,
	events bus.Publisher,
	m *metrics.SagaMetrics,
	clk clock.Clock,
	cfg config.SagaConfig,
) *CancellationOrchestrator {
	return &CancellationOrchestrator{
		seats:    seats,
		tickets:  tickets,
		payments: payments,
		catalog:  catalog,
		events:   events,
		metrics:  m,
		clock:    clk,
		cfg:      cfg,
	}
}

// CheckEligibility reports whether cancelling the transaction now would earn
// a refund, without touching any state. A booking that cannot be cancelled
// at all, a trade lock or a non-confirmed ticket, answers ineligible with
// the blocking reason rather than failing the read.
func (o *CancellationOrchestrator) CheckEligibility(ctx context.Context, userID, transactionID string) (*EligibilityResult, error) {
	tickets, event, err := o.loadOwned(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	deadline := event.StartsAt.Add(-refundCutoff)
	res := &EligibilityResult{
		TransactionID:  transactionID,
		EventID:        event.ID,
		RefundDeadline: deadline,
	}
	if reason := blockedReason(tickets); reason != "" {
		res.Reason = reason
		return res, nil
	}
	res.Eligible = o.clock.Now().Before(deadline)
	if !res.Eligible {
		res.Reason = "cancellation is within one week of the event"
	}
	return res, nil
}

// Cancel voids every ticket of the transaction and releases its seat,
// aborting on the first failure, then refunds when the cutoff has not
// passed. Once the first void lands the remaining steps run detached from
// the caller.
func (o *CancellationOrchestrator) Cancel(ctx context.Context, userID, transactionID string) (*CancelResult, error) {
	start := o.clock.Now()
	defer func() {
		o.metrics.SagaDuration.WithLabelValues("cancellation").Observe(o.clock.Now().Sub(start).Seconds())
	}()

	tickets, event, err := o.loadCancellable(ctx, userID, transactionID)
	if err != nil {
		o.metrics.CancellationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	eligible := o.clock.Now().Before(event.StartsAt.Add(-refundCutoff))

	dctx := context.WithoutCancel(ctx)
	result := &CancelResult{
		TransactionID: transactionID,
		EventID:       event.ID,
		VoidedTickets: []string{},
		ReleasedSeats: []string{},
	}

	for _, t := range tickets {
		if err := o.tickets.Void(dctx, t.ID); err != nil && !client.IsKind(err, client.KindConflict) {
			o.metrics.CancellationsTotal.WithLabelValues("failed").Inc()
			slog.Error("cancel: void failed, aborting",
				"transaction_id", transactionID, "ticket_id", t.ID,
				"voided_so_far", result.VoidedTickets, "error", err)
			return nil, markClientErr(err)
		}
		result.VoidedTickets = append(result.VoidedTickets, t.ID)

		if err := o.seats.Release(dctx, t.SeatID); err != nil && !client.IsKind(err, client.KindConflict) {
			o.metrics.CancellationsTotal.WithLabelValues("failed").Inc()
			slog.Error("cancel: seat release failed, aborting",
				"transaction_id", transactionID, "seat_id", t.SeatID, "error", err)
			return nil, markClientErr(err)
		}
		result.ReleasedSeats = append(result.ReleasedSeats, t.SeatID)
	}

	if !eligible {
		result.Status = "cancelled_no_refund"
		o.metrics.CancellationsTotal.WithLabelValues("no_refund").Inc()
		o.publishCancelled(dctx, userID, result, false)
		return result, nil
	}

	refund, err := o.refund(dctx, userID, transactionID)
	if err != nil {
		o.metrics.PostPaymentGapTotal.Inc()
		o.metrics.CancellationsTotal.WithLabelValues("failed").Inc()
		slog.Error("cancel: tickets voided but refund failed",
			"transaction_id", transactionID, "error", err)
		result.Status = "cancelled_refund_pending"
		return result, errs.Mark(
			errs.Wrapf(err, "tickets for %s voided but refund did not settle", transactionID),
			usecase.ErrPostPaymentInconsistency,
		)
	}

	result.RefundIssued = true
	result.RefundTransactionID = refund.ID
	result.AmountCents = refund.AmountCents
	result.Currency = refund.Currency
	result.Status = "cancelled_refunded"
	o.metrics.RefundsIssuedTotal.Inc()
	o.metrics.CancellationsTotal.WithLabelValues("refunded").Inc()
	o.publishCancelled(dctx, userID, result, true)
	return result, nil
}

// loadOwned resolves the transaction's tickets and the event schedule,
// enforcing only existence and ownership.
func (o *CancellationOrchestrator) loadOwned(ctx context.Context, userID, transactionID string) ([]booking.Ticket, *booking.Event, error) {
	tickets, err := o.tickets.ListByTransaction(ctx, transactionID)
	if err != nil {
		return nil, nil, markClientErr(err)
	}
	if len(tickets) == 0 {
		return nil, nil, errs.Mark(
			errs.WithDetail(
				errs.Newf("no tickets found for transaction %s", transactionID),
				"transaction "+transactionID,
			),
			usecase.ErrNotFound,
		)
	}

	for _, t := range tickets {
		if t.OwnerID != userID {
			return nil, nil, errs.Mark(
				errs.Newf("ticket %s is not owned by the caller", t.ID),
				usecase.ErrValidation,
			)
		}
	}

	event, err := o.catalog.Get(ctx, tickets[0].EventID)
	if err != nil {
		return nil, nil, markClientErr(err)
	}
	return tickets, event, nil
}

// loadCancellable is loadOwned plus the strict pre-mutation guard: every
// ticket must be confirmed and free of a trade lock.
func (o *CancellationOrchestrator) loadCancellable(ctx context.Context, userID, transactionID string) ([]booking.Ticket, *booking.Event, error) {
	tickets, event, err := o.loadOwned(ctx, userID, transactionID)
	if err != nil {
		return nil, nil, err
	}
	if reason := blockedReason(tickets); reason != "" {
		return nil, nil, errs.Mark(
			errs.WithDetail(errs.New(reason), reason),
			usecase.ErrConflict,
		)
	}
	return tickets, event, nil
}

// blockedReason reports why the booking cannot be cancelled regardless of
// the refund cutoff, or "" when nothing blocks it. A trade lock outranks a
// status problem on the same set.
func blockedReason(tickets []booking.Ticket) string {
	for _, t := range tickets {
		if t.TradeLocked() {
			return "ticket " + t.ID + " is tied to an in-flight trade"
		}
	}
	for _, t := range tickets {
		if t.Status == booking.TicketVoided {
			return "ticket " + t.ID + " is already voided"
		}
		if t.Status != booking.TicketConfirmed {
			return "ticket " + t.ID + " is not confirmed"
		}
	}
	return ""
}

// refund issues the refund with a key derived from the charge transaction,
// so a crashed-and-retried cancellation settles on the original refund.
func (o *CancellationOrchestrator) refund(ctx context.Context, userID, transactionID string) (*booking.Transaction, error) {
	charge, err := o.payments.GetByTransaction(ctx, transactionID)
	if err != nil {
		return nil, markClientErr(err)
	}

	key := uuid.NewSHA1(uuid.NameSpaceOID, []byte("refund:"+transactionID))
	req := client.RefundRequest{
		TransactionID:  transactionID,
		ChargeRef:      charge.ChargeRef,
		AmountCents:    charge.AmountCents,
		Currency:       charge.Currency,
		IdempotencyKey: key.String(),
	}

	var refund *booking.Transaction
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.cfg.ConfirmBackoffBase
	err = backoff.Retry(func() error {
		r, err := o.payments.Refund(ctx, req)
		if err != nil {
			if client.IsKind(err, client.KindUnavailable) {
				return err
			}
			return backoff.Permanent(err)
		}
		refund = r
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(o.cfg.ConfirmMaxRetries)), ctx))
	if err != nil {
		return nil, err
	}
	return refund, nil
}

func (o *CancellationOrchestrator) publishCancelled(ctx context.Context, userID string, res *CancelResult, refunded bool) {
	ev := bus.Event{
		Kind:       "purchase.cancelled",
		OccurredAt: o.clock.Now(),
		Payload: map[string]any{
			"transactionID": res.TransactionID,
			"eventID":       res.EventID,
			"userID":        userID,
			"tickets":       res.VoidedTickets,
			"refunded":      refunded,
		},
	}
	if err := o.events.Publish(ctx, bus.PurchaseEventsQueue, ev); err != nil {
		slog.Warn("cancel: event publish failed", "transaction_id", res.TransactionID, "error", err)
	}
}
