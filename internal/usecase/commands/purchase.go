// Package commands holds the write-side orchestrators. Each one drives a
// multi-service saga over the seat, ticket and payment resource services,
// compensating partial work so no caller-visible state is left dangling.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

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
	"ticketing-orchestrator/internal/usecase/saga"
)

type LockInput struct {
	UserID   string
	EventID  string
	Category string
	Quantity int
}

type LockedTicket struct {
	TicketID string `json:"ticketID"`
	SeatID   string `json:"seatID"`
}

type LockResult struct {
	EventID     string         `json:"eventID"`
	Category    string         `json:"category"`
	Tickets     []LockedTicket `json:"tickets"`
	AmountCents int64          `json:"amountCents"`
	Currency    string         `json:"currency"`
	Reused      bool           `json:"reused"`
}

type PurchaseInput struct {
	UserID         string
	EventID        string
	Category       string
	PaymentSource  string
	IdempotencyKey uuid.UUID
}

type PurchaseResult struct {
	TransactionID string         `json:"transactionID"`
	ChargeRef     string         `json:"chargeRef,omitempty"`
	EventID       string         `json:"eventID"`
	Tickets       []LockedTicket `json:"tickets"`
	AmountCents   int64          `json:"amountCents"`
	Currency      string         `json:"currency"`
	Status        string         `json:"status"`
}

type TimeoutOutcome struct {
	TicketID string `json:"ticketID"`
	SeatID   string `json:"seatID"`
	Released bool   `json:"released"`
	Voided   bool   `json:"voided"`
	Error    string `json:"error,omitempty"`
}

type TimeoutResult struct {
	EventID  string           `json:"eventID"`
	Category string           `json:"category"`
	Outcomes []TimeoutOutcome `json:"outcomes"`
	Partial  bool             `json:"partial"`
}

// PurchaseOrchestrator drives the lock → pay → confirm saga. Seats and
// tickets are owned by their services; the orchestrator only requests
// conditional transitions and compensates its own partial work.
type PurchaseOrchestrator struct {
	seats    client.Seat
	tickets  client.Ticket
	payments client.Payment
	pricing  booking.PriceCalculator
	guard    *IdempotencyGuard
	events   bus.Publisher
	metrics  *metrics.SagaMetrics
	clock    clock.Clock
	cfg      config.SagaConfig
}

func NewPurchaseOrchestrator(
	seats client.Seat,
	tickets client.Ticket,
	payments client.Payment,
	pricing booking.PriceCalculator,
	guard *IdempotencyGuard,
	events bus.Publisher,
	m *metrics.SagaMetrics,
	clk clock.Clock,
	cfg config.SagaConfig,
) *PurchaseOrchestrator {
	return &PurchaseOrchestrator{
		seats:    seats,
		tickets:  tickets,
		payments: payments,
		pricing:  pricing,
		guard:    guard,
		events:   events,
		metrics:  m,
		clock:    clk,
		cfg:      cfg,
	}
}

// Lock reserves quantity seats in the category and creates a pending ticket
// per seat. Calling it again while at least quantity pending tickets for the
// event exist returns that many of them instead of locking more; fewer
// pending tickets than asked for do not satisfy the request, so a fresh full
// lock runs.
func (o *PurchaseOrchestrator) Lock(ctx context.Context, in LockInput) (*LockResult, error) {
	if in.Quantity < 1 {
		return nil, errs.Mark(errs.New("quantity must be at least 1"), usecase.ErrValidation)
	}
	if !booking.KnownCategory(in.Category) {
		return nil, errs.Mark(booking.ErrUnknownCategory, usecase.ErrValidation)
	}

	pending, err := o.pendingTickets(ctx, in.UserID, in.EventID, in.Category)
	if err != nil {
		return nil, err
	}
	if len(pending) >= in.Quantity {
		return o.lockResultFrom(in, pending[:in.Quantity], true)
	}

	available, err := o.seats.Availability(ctx, in.EventID)
	if err != nil {
		return nil, markClientErr(err)
	}
	candidates := make([]booking.Seat, 0, len(available))
	for _, s := range available {
		if s.Category == in.Category && s.Status == booking.SeatAvailable {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) < in.Quantity {
		return nil, errs.Mark(
			errs.WithDetail(
				errs.Newf("only %d %s seats available for event %s", len(candidates), in.Category, in.EventID),
				fmt.Sprintf("event %s has %d %s seats available", in.EventID, len(candidates), in.Category),
			),
			usecase.ErrConflict,
		)
	}

	runner := &saga.Runner{
		Saga:            "purchase_lock",
		Metrics:         o.metrics,
		DetachedTimeout: o.cfg.DetachedStepTimeout,
	}

	locked := make([]LockedTicket, 0, in.Quantity)
	steps := make([]saga.Step, 0, in.Quantity)
	for range in.Quantity {
		steps = append(steps, saga.Step{
			Name: "reserve_and_ticket",
			Apply: func(ctx context.Context) error {
				seatID, err := o.reserveOne(ctx, &candidates)
				if err != nil {
					return err
				}
				ticket, err := o.tickets.Create(ctx, in.EventID, seatID, in.UserID)
				if err != nil {
					if relErr := o.seats.Release(ctx, seatID); relErr != nil {
						slog.Error("lock: release after ticket create failure",
							"seat_id", seatID, "error", relErr)
					}
					return markClientErr(err)
				}
				locked = append(locked, LockedTicket{TicketID: ticket.ID, SeatID: seatID})
				return nil
			},
			Compensate: func(ctx context.Context) error {
				if len(locked) == 0 {
					return nil
				}
				last := locked[len(locked)-1]
				locked = locked[:len(locked)-1]
				err := o.seats.Release(ctx, last.SeatID)
				if voidErr := o.tickets.Void(ctx, last.TicketID); voidErr != nil && err == nil {
					err = voidErr
				}
				return err
			},
		})
	}

	if err := runner.Run(ctx, steps); err != nil {
		return nil, err
	}
	o.metrics.SeatsLockedTotal.Add(float64(len(locked)))

	amount, err := o.pricing.PriceCents(in.Category, in.Quantity)
	if err != nil {
		return nil, errs.Mark(err, usecase.ErrValidation)
	}
	return &LockResult{
		EventID:     in.EventID,
		Category:    in.Category,
		Tickets:     locked,
		AmountCents: amount,
		Currency:    booking.Currency,
	}, nil
}

// reserveOne walks the candidate list until a conditional reserve wins,
// skipping seats another buyer grabbed first. Attempts are bounded so a
// thundering herd fails fast instead of draining the whole list.
func (o *PurchaseOrchestrator) reserveOne(ctx context.Context, candidates *[]booking.Seat) (string, error) {
	attempts := o.cfg.SeatSelectAttempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts && len(*candidates) > 0; i++ {
		seat := (*candidates)[0]
		*candidates = (*candidates)[1:]
		err := o.seats.Reserve(ctx, seat.ID)
		if err == nil {
			return seat.ID, nil
		}
		if client.IsKind(err, client.KindConflict) {
			continue
		}
		return "", markClientErr(err)
	}
	return "", errs.Mark(errs.New("no reservable seat left in category"), usecase.ErrConflict)
}

func (o *PurchaseOrchestrator) lockResultFrom(in LockInput, pending []booking.Ticket, reused bool) (*LockResult, error) {
	locked := make([]LockedTicket, 0, len(pending))
	for _, t := range pending {
		locked = append(locked, LockedTicket{TicketID: t.ID, SeatID: t.SeatID})
	}
	amount, err := o.pricing.PriceCents(in.Category, len(pending))
	if err != nil {
		return nil, errs.Mark(err, usecase.ErrValidation)
	}
	return &LockResult{
		EventID:     in.EventID,
		Category:    in.Category,
		Tickets:     locked,
		AmountCents: amount,
		Currency:    booking.Currency,
		Reused:      reused,
	}, nil
}

// Purchase charges the pending tickets' total and confirms seats and tickets.
// A declined charge leaves everything pending so the caller may retry with
// another source under a fresh key; the decline itself is a terminal outcome
// for this key. Once the charge succeeds, confirmation runs to a terminal
// outcome on a detached context.
func (o *PurchaseOrchestrator) Purchase(ctx context.Context, in PurchaseInput) (*PurchaseResult, error) {
	start := o.clock.Now()
	defer func() {
		o.metrics.SagaDuration.WithLabelValues("purchase").Observe(o.clock.Now().Sub(start).Seconds())
	}()

	replay, proceed, err := o.guard.Begin(ctx, in.IdempotencyKey, in.UserID, "purchase", purchaseFingerprint(in))
	if err != nil {
		return nil, err
	}
	if !proceed {
		var result PurchaseResult
		if err := json.Unmarshal(replay, &result); err != nil {
			return nil, errs.Wrap(err, "failed to decode replayed purchase result")
		}
		o.metrics.PurchasesTotal.WithLabelValues("replayed").Inc()
		// Terminal failures replay as the same failure, not as a success.
		switch result.Status {
		case "payment_declined":
			return &result, errs.Mark(
				errs.New("charge was declined on the original attempt"),
				usecase.ErrPaymentDeclined,
			)
		case "inconsistent":
			return &result, errs.Mark(
				errs.Newf("charge %s succeeded but confirmation failed on the original attempt", result.TransactionID),
				usecase.ErrPostPaymentInconsistency,
			)
		}
		return &result, nil
	}

	pending, err := o.pendingTickets(ctx, in.UserID, in.EventID, in.Category)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, errs.Mark(
			errs.WithDetail(
				errs.Newf("no pending tickets for event %s", in.EventID),
				fmt.Sprintf("no pending %s tickets for event %s", in.Category, in.EventID),
			),
			usecase.ErrNotFound,
		)
	}

	amount, err := o.pricing.PriceCents(in.Category, len(pending))
	if err != nil {
		return nil, errs.Mark(err, usecase.ErrValidation)
	}

	locked := make([]LockedTicket, 0, len(pending))
	for _, t := range pending {
		locked = append(locked, LockedTicket{TicketID: t.ID, SeatID: t.SeatID})
	}

	txn, err := o.payments.Charge(ctx, client.ChargeRequest{
		UserID:         in.UserID,
		AmountCents:    amount,
		Currency:       booking.Currency,
		Source:         in.PaymentSource,
		IdempotencyKey: DeriveStepKey(in.IdempotencyKey, "charge").String(),
	})
	if err != nil {
		if client.IsKind(err, client.KindDeclined) {
			o.metrics.PurchasesTotal.WithLabelValues("declined").Inc()
			// Seats stay reserved and tickets stay pending; the caller can
			// retry payment or let the timeout sweep reclaim them.
			result := &PurchaseResult{
				EventID:     in.EventID,
				Tickets:     locked,
				AmountCents: amount,
				Currency:    booking.Currency,
				Status:      "payment_declined",
			}
			// A decline is terminal for this key: store it so a replay
			// returns the stored decline instead of a processing conflict.
			if _, ferr := o.guard.Finish(context.WithoutCancel(ctx), in.IdempotencyKey, in.UserID, result); ferr != nil {
				slog.Error("purchase: failed to store declined outcome",
					"idempotency_key", in.IdempotencyKey, "error", ferr)
			}
			return result, errs.Mark(err, usecase.ErrPaymentDeclined)
		}
		o.metrics.PurchasesTotal.WithLabelValues("failed").Inc()
		return nil, markClientErr(err)
	}

	// Money has moved: from here on the caller disconnecting must not stop
	// confirmation, and failures are an inconsistency, not a rollback.
	dctx, cancel := o.detached(ctx)
	defer cancel()

	for _, lt := range locked {
		if err := o.confirmPair(dctx, lt, txn.ID); err != nil {
			o.metrics.PostPaymentGapTotal.Inc()
			o.metrics.PurchasesTotal.WithLabelValues("failed").Inc()
			slog.Error("purchase: confirmation exhausted retries after successful charge",
				"transaction_id", txn.ID, "ticket_id", lt.TicketID, "seat_id", lt.SeatID, "error", err)
			result := &PurchaseResult{
				TransactionID: txn.ID,
				EventID:       in.EventID,
				Tickets:       locked,
				AmountCents:   amount,
				Currency:      booking.Currency,
				Status:        "inconsistent",
			}
			if _, ferr := o.guard.Finish(dctx, in.IdempotencyKey, in.UserID, result); ferr != nil {
				slog.Error("purchase: failed to store inconsistent outcome",
					"transaction_id", txn.ID, "error", ferr)
			}
			return result, errs.Mark(
				errs.Wrapf(err, "charge %s succeeded but confirmation failed", txn.ID),
				usecase.ErrPostPaymentInconsistency,
			)
		}
	}

	result := &PurchaseResult{
		TransactionID: txn.ID,
		ChargeRef:     txn.ChargeRef,
		EventID:       in.EventID,
		Tickets:       locked,
		AmountCents:   amount,
		Currency:      booking.Currency,
		Status:        "confirmed",
	}
	if _, err := o.guard.Finish(dctx, in.IdempotencyKey, in.UserID, result); err != nil {
		slog.Error("purchase: failed to store idempotent result",
			"transaction_id", txn.ID, "error", err)
	}

	o.metrics.PurchasesTotal.WithLabelValues("confirmed").Inc()
	o.publish(dctx, bus.PurchaseEventsQueue, "purchase.confirmed", map[string]any{
		"transactionID": txn.ID,
		"eventID":       in.EventID,
		"userID":        in.UserID,
		"tickets":       locked,
	})
	return result, nil
}

// confirmPair confirms the seat then the ticket, retrying transient upstream
// failures with exponential backoff. A conflict means a previous attempt of
// this same purchase already confirmed the resource, so it counts as done.
func (o *PurchaseOrchestrator) confirmPair(ctx context.Context, lt LockedTicket, transactionID string) error {
	confirm := func(op func() error) error {
		return backoff.Retry(func() error {
			err := op()
			if err == nil || client.IsKind(err, client.KindConflict) {
				return nil
			}
			if client.IsKind(err, client.KindUnavailable) {
				return err
			}
			return backoff.Permanent(err)
		}, o.confirmBackoff(ctx))
	}

	if err := confirm(func() error { return o.seats.Confirm(ctx, lt.SeatID) }); err != nil {
		return errs.Wrapf(err, "confirm seat %s", lt.SeatID)
	}
	if err := confirm(func() error { return o.tickets.Confirm(ctx, lt.TicketID, transactionID) }); err != nil {
		return errs.Wrapf(err, "confirm ticket %s", lt.TicketID)
	}
	return nil
}

func (o *PurchaseOrchestrator) confirmBackoff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.cfg.ConfirmBackoffBase
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(o.cfg.ConfirmMaxRetries)), ctx)
}

// Timeout sweeps the caller's pending tickets for the event and category,
// releasing the seat and voiding the ticket of each pair. Pairs are
// independent: one failure never blocks reclamation of the rest.
func (o *PurchaseOrchestrator) Timeout(ctx context.Context, userID, eventID, category string) (*TimeoutResult, error) {
	if !booking.KnownCategory(category) {
		return nil, errs.Mark(booking.ErrUnknownCategory, usecase.ErrValidation)
	}

	pending, err := o.pendingTickets(ctx, userID, eventID, category)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		o.metrics.TimeoutsTotal.WithLabelValues("noop").Inc()
		return &TimeoutResult{EventID: eventID, Category: category, Outcomes: []TimeoutOutcome{}}, nil
	}

	dctx, cancel := o.detached(ctx)
	defer cancel()

	result := &TimeoutResult{EventID: eventID, Category: category, Outcomes: make([]TimeoutOutcome, 0, len(pending))}
	for _, t := range pending {
		out := TimeoutOutcome{TicketID: t.ID, SeatID: t.SeatID}

		err := o.seats.Release(dctx, t.SeatID)
		if err != nil && !client.IsKind(err, client.KindConflict) {
			out.Error = err.Error()
			result.Outcomes = append(result.Outcomes, out)
			result.Partial = true
			continue
		}
		out.Released = true

		if err := o.tickets.Void(dctx, t.ID); err != nil && !client.IsKind(err, client.KindConflict) {
			out.Error = err.Error()
			result.Partial = true
		} else {
			out.Voided = true
		}
		result.Outcomes = append(result.Outcomes, out)
	}

	if result.Partial {
		o.metrics.TimeoutsTotal.WithLabelValues("partial").Inc()
		return result, errs.Mark(
			errs.New("some pending pairs could not be reclaimed"),
			usecase.ErrPartialOutcome,
		)
	}
	o.metrics.TimeoutsTotal.WithLabelValues("clean").Inc()
	return result, nil
}

// pendingTickets resolves the caller's unpaid locks for the event and
// category. Tickets do not record the category, so each candidate's seat is
// looked up to decide membership.
func (o *PurchaseOrchestrator) pendingTickets(ctx context.Context, userID, eventID, category string) ([]booking.Ticket, error) {
	all, err := o.tickets.ListByUser(ctx, userID)
	if err != nil {
		return nil, markClientErr(err)
	}
	var pending []booking.Ticket
	for _, t := range all {
		if t.EventID != eventID || t.Status != booking.TicketPendingPayment {
			continue
		}
		seat, err := o.seats.Details(ctx, t.SeatID)
		if err != nil {
			return nil, markClientErr(err)
		}
		if seat.Category == category {
			pending = append(pending, t)
		}
	}
	return pending, nil
}

func (o *PurchaseOrchestrator) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	dctx := context.WithoutCancel(ctx)
	if o.cfg.DetachedStepTimeout > 0 {
		return context.WithTimeout(dctx, o.cfg.DetachedStepTimeout)
	}
	return dctx, func() {}
}

func (o *PurchaseOrchestrator) publish(ctx context.Context, queue, kind string, payload map[string]any) {
	ev := bus.Event{Kind: kind, OccurredAt: o.clock.Now(), Payload: payload}
	if err := o.events.Publish(ctx, queue, ev); err != nil {
		slog.Warn("purchase: event publish failed", "kind", kind, "error", err)
	}
}

func purchaseFingerprint(in PurchaseInput) map[string]string {
	return map[string]string{
		"userID":   in.UserID,
		"eventID":  in.EventID,
		"category": in.Category,
		"source":   in.PaymentSource,
	}
}

// markClientErr maps a classified collaborator failure onto the usecase error
// taxonomy.
func markClientErr(err error) error {
	switch {
	case client.IsKind(err, client.KindNotFound):
		return errs.Mark(err, usecase.ErrNotFound)
	case client.IsKind(err, client.KindConflict):
		return errs.Mark(err, usecase.ErrConflict)
	case client.IsKind(err, client.KindDeclined):
		return errs.Mark(err, usecase.ErrPaymentDeclined)
	case client.IsKind(err, client.KindInvalid):
		return errs.Mark(err, usecase.ErrValidation)
	default:
		return errs.Mark(err, usecase.ErrUpstreamUnavailable)
	}
}
