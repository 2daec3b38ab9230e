package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"ticketing-orchestrator/internal/client"
	"ticketing-orchestrator/internal/domain/booking"
	"ticketing-orchestrator/internal/domain/trade"
	"ticketing-orchestrator/internal/infra"
	"ticketing-orchestrator/internal/infra/bus"
	"ticketing-orchestrator/internal/infra/metrics"
	"ticketing-orchestrator/internal/pkg/clock"
	"ticketing-orchestrator/internal/pkg/config"
	"ticketing-orchestrator/internal/pkg/errs"
	"ticketing-orchestrator/internal/usecase"
	"ticketing-orchestrator/internal/usecase/saga"
)

// TradeLedger is the slice of the durable proposal store the orchestrator
// uses. TransitionStatus and DeclinePendingTouching are conditional writes;
// they are the only serialization points for competing accepts.
type TradeLedger interface {
	Insert(ctx context.Context, p *trade.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*trade.Proposal, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to trade.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeclinePendingTouching(ctx context.Context, ticketA, ticketB string, exclude uuid.UUID) ([]*trade.Proposal, error)
	FindPendingByTicket(ctx context.Context, ticketID string) ([]*trade.Proposal, error)
}

type ProposeInput struct {
	RequesterID    string
	TicketA        string
	TicketB        string
	IdempotencyKey uuid.UUID
}

type ProposeResult struct {
	ProposalID     string `json:"proposalID"`
	TicketA        string `json:"ticketA"`
	TicketB        string `json:"ticketB"`
	RequesterID    string `json:"requesterID"`
	CounterpartyID string `json:"counterpartyID"`
	Status         string `json:"status"`
}

type AcceptResult struct {
	ProposalID string   `json:"proposalID"`
	TicketA    string   `json:"ticketA"`
	TicketB    string   `json:"ticketB"`
	Status     string   `json:"status"`
	Declined   []string `json:"declinedProposals"`
}

type TradeCancelResult struct {
	ProposalID string `json:"proposalID"`
	Status     string `json:"status"`
}

type ListForTradeResult struct {
	TicketID string `json:"ticketID"`
	Listed   bool   `json:"listed_for_trade"`
}

// TradeOrchestrator runs the propose/accept/cancel lifecycle. The ledger row
// is the system of record; ticket markings on the ticket service are
// advisory locks kept in sync with it.
type TradeOrchestrator struct {
	ledger  TradeLedger
	tickets client.Ticket
	guard   *IdempotencyGuard
	events  bus.Publisher
	metrics *metrics.SagaMetrics
	clock   clock.Clock
	cfg     config.SagaConfig
}

func NewTradeOrchestrator(
	ledger TradeLedger,
	tickets client.Ticket,
	guard *IdempotencyGuard,
	events bus.Publisher,
	m *metrics.SagaMetrics,
	clk clock.Clock,
	cfg config.SagaConfig,
) *TradeOrchestrator {
	return &TradeOrchestrator{
		ledger:  ledger,
		tickets: tickets,
		guard:   guard,
		events:  events,
		metrics: m,
		clock:   clk,
		cfg:     cfg,
	}
}

// Propose opens a pending proposal offering ticketA for ticketB. The ledger
// insert carries the one-pending-per-ticket constraint; ticket markings are
// applied afterwards and unwound if either fails.
func (o *TradeOrchestrator) Propose(ctx context.Context, in ProposeInput) (*ProposeResult, error) {
	replay, proceed, err := o.guard.Begin(ctx, in.IdempotencyKey, in.RequesterID, "trade.propose", map[string]string{
		"ticketA": in.TicketA,
		"ticketB": in.TicketB,
	})
	if err != nil {
		return nil, err
	}
	if !proceed {
		var result ProposeResult
		if err := json.Unmarshal(replay, &result); err != nil {
			return nil, errs.Wrap(err, "failed to decode replayed proposal result")
		}
		return &result, nil
	}

	ticketA, ticketB, err := o.loadTradablePair(ctx, in.RequesterID, in.TicketA, in.TicketB)
	if err != nil {
		return nil, err
	}

	proposal, err := trade.NewProposal(ticketA.ID, ticketB.ID, in.RequesterID, ticketB.OwnerID, o.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, usecase.ErrValidation)
	}

	runner := &saga.Runner{
		Saga:            "trade_propose",
		Metrics:         o.metrics,
		DetachedTimeout: o.cfg.DetachedStepTimeout,
	}
	steps := []saga.Step{
		{
			Name: "insert_proposal",
			Apply: func(ctx context.Context) error {
				if err := o.ledger.Insert(ctx, proposal); err != nil {
					return markRepoErr(err)
				}
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return o.ledger.Delete(ctx, proposal.ID)
			},
		},
		{
			Name: "mark_ticket_a",
			Apply: func(ctx context.Context) error {
				return markClientErrNil(o.tickets.SetTradeRequestID(ctx, proposal.TicketA, proposal.ID.String()))
			},
			Compensate: func(ctx context.Context) error {
				return o.tickets.SetTradeRequestID(ctx, proposal.TicketA, "")
			},
		},
		{
			Name: "mark_ticket_b",
			Apply: func(ctx context.Context) error {
				return markClientErrNil(o.tickets.SetTradeRequestID(ctx, proposal.TicketB, proposal.ID.String()))
			},
		},
	}
	if err := runner.Run(ctx, steps); err != nil {
		o.metrics.TradesTotal.WithLabelValues("conflict").Inc()
		return nil, err
	}

	result := &ProposeResult{
		ProposalID:     proposal.ID.String(),
		TicketA:        proposal.TicketA,
		TicketB:        proposal.TicketB,
		RequesterID:    proposal.RequesterID,
		CounterpartyID: proposal.CounterpartyID,
		Status:         string(proposal.Status),
	}
	if _, err := o.guard.Finish(ctx, in.IdempotencyKey, in.RequesterID, result); err != nil {
		slog.Error("trade: failed to store idempotent propose result",
			"proposal_id", proposal.ID, "error", err)
	}

	o.metrics.TradesTotal.WithLabelValues("proposed").Inc()
	o.publish(ctx, "trade.proposed", map[string]any{
		"proposalID":     proposal.ID.String(),
		"ticketA":        proposal.TicketA,
		"ticketB":        proposal.TicketB,
		"requesterID":    proposal.RequesterID,
		"counterpartyID": proposal.CounterpartyID,
	})
	return result, nil
}

// Accept commits the trade. The pending→accepted conditional write decides
// the winner among competing accepts and cancellations; everything after it
// runs detached and is retried, because the commit cannot be taken back.
func (o *TradeOrchestrator) Accept(ctx context.Context, userID string, proposalID uuid.UUID) (*AcceptResult, error) {
	start := o.clock.Now()
	defer func() {
		o.metrics.SagaDuration.WithLabelValues("trade").Observe(o.clock.Now().Sub(start).Seconds())
	}()

	proposal, err := o.ledger.GetByID(ctx, proposalID)
	if err != nil {
		return nil, markRepoErr(errs.WithDetail(err, "trade proposal "+proposalID.String()))
	}
	if err := proposal.CanAccept(userID); err != nil {
		return nil, markTradeErr(err)
	}

	if err := o.ledger.TransitionStatus(ctx, proposalID, trade.StatusPending, trade.StatusAccepted); err != nil {
		o.metrics.TradesTotal.WithLabelValues("conflict").Inc()
		return nil, markRepoErr(errs.WithDetail(err, "trade proposal "+proposalID.String()))
	}

	dctx := context.WithoutCancel(ctx)

	if err := o.swapOwners(dctx, proposal); err != nil {
		o.metrics.PostPaymentGapTotal.Inc()
		slog.Error("trade: accepted but ownership swap exhausted retries",
			"proposal_id", proposalID, "error", err)
		return nil, errs.Mark(
			errs.Wrapf(err, "proposal %s accepted but ownership swap failed", proposalID),
			usecase.ErrPostPaymentInconsistency,
		)
	}

	o.clearMarkings(dctx, proposal.TicketA)
	o.clearMarkings(dctx, proposal.TicketB)

	declined, err := o.ledger.DeclinePendingTouching(dctx, proposal.TicketA, proposal.TicketB, proposalID)
	if err != nil {
		// The accepted trade is already final; competitors are cleaned up
		// best-effort and will also fail their own conditional accepts.
		slog.Error("trade: failed to decline competing proposals",
			"proposal_id", proposalID, "error", err)
	}
	declinedIDs := make([]string, 0, len(declined))
	for _, d := range declined {
		declinedIDs = append(declinedIDs, d.ID.String())
		for _, ticketID := range []string{d.TicketA, d.TicketB} {
			if ticketID == proposal.TicketA || ticketID == proposal.TicketB {
				continue
			}
			if err := o.tickets.SetTradeRequestID(dctx, ticketID, ""); err != nil {
				slog.Warn("trade: failed to unmark ticket of declined proposal",
					"proposal_id", d.ID, "ticket_id", ticketID, "error", err)
			}
		}
		o.metrics.TradesTotal.WithLabelValues("declined").Inc()
	}

	result := &AcceptResult{
		ProposalID: proposalID.String(),
		TicketA:    proposal.TicketA,
		TicketB:    proposal.TicketB,
		Status:     string(trade.StatusAccepted),
		Declined:   declinedIDs,
	}
	o.metrics.TradesTotal.WithLabelValues("accepted").Inc()
	o.publish(dctx, "trade.accepted", map[string]any{
		"proposalID":        result.ProposalID,
		"ticketA":           proposal.TicketA,
		"ticketB":           proposal.TicketB,
		"requesterID":       proposal.RequesterID,
		"counterpartyID":    proposal.CounterpartyID,
		"declinedProposals": declinedIDs,
	})
	return result, nil
}

// Cancel withdraws a pending proposal. Either participant may cancel; an
// accept that already won the conditional write makes this a conflict.
func (o *TradeOrchestrator) Cancel(ctx context.Context, userID string, proposalID uuid.UUID) (*TradeCancelResult, error) {
	proposal, err := o.ledger.GetByID(ctx, proposalID)
	if err != nil {
		return nil, markRepoErr(errs.WithDetail(err, "trade proposal "+proposalID.String()))
	}
	if err := proposal.CanCancel(userID); err != nil {
		return nil, markTradeErr(err)
	}

	if err := o.ledger.TransitionStatus(ctx, proposalID, trade.StatusPending, trade.StatusCancelled); err != nil {
		o.metrics.TradesTotal.WithLabelValues("conflict").Inc()
		return nil, markRepoErr(errs.WithDetail(err, "trade proposal "+proposalID.String()))
	}

	dctx := context.WithoutCancel(ctx)
	for _, ticketID := range []string{proposal.TicketA, proposal.TicketB} {
		if err := o.tickets.SetTradeRequestID(dctx, ticketID, ""); err != nil {
			slog.Warn("trade: failed to unmark ticket after cancel",
				"proposal_id", proposalID, "ticket_id", ticketID, "error", err)
		}
	}

	o.metrics.TradesTotal.WithLabelValues("cancelled").Inc()
	o.publish(dctx, "trade.cancelled", map[string]any{
		"proposalID":  proposalID.String(),
		"cancelledBy": userID,
	})
	return &TradeCancelResult{ProposalID: proposalID.String(), Status: string(trade.StatusCancelled)}, nil
}

// ListForTrade toggles a confirmed ticket's marketplace flag. Unlisting is
// blocked while a pending proposal references the ticket.
func (o *TradeOrchestrator) ListForTrade(ctx context.Context, userID, ticketID string, listed bool) (*ListForTradeResult, error) {
	ticket, err := o.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, markClientErr(err)
	}
	if ticket.OwnerID != userID {
		return nil, errs.Mark(errs.New("ticket is not owned by the caller"), usecase.ErrValidation)
	}
	if ticket.Status != booking.TicketConfirmed {
		return nil, errs.Mark(
			errs.WithDetail(errs.New("only confirmed tickets can be listed for trade"), "ticket "+ticketID),
			usecase.ErrConflict,
		)
	}
	if !listed {
		pending, err := o.ledger.FindPendingByTicket(ctx, ticketID)
		if err != nil {
			return nil, markRepoErr(err)
		}
		if len(pending) > 0 {
			return nil, errs.Mark(
				errs.WithDetail(
					errs.New("settle the pending trade proposal before unlisting"),
					"ticket "+ticketID+" has a pending trade proposal",
				),
				usecase.ErrConflict,
			)
		}
	}

	if err := o.tickets.SetListedForTrade(ctx, ticketID, listed); err != nil {
		return nil, markClientErr(err)
	}
	return &ListForTradeResult{TicketID: ticketID, Listed: listed}, nil
}

// loadTradablePair validates both sides of a proposal before anything is
// written.
func (o *TradeOrchestrator) loadTradablePair(ctx context.Context, requesterID, idA, idB string) (*booking.Ticket, *booking.Ticket, error) {
	ticketA, err := o.tickets.Get(ctx, idA)
	if err != nil {
		return nil, nil, markClientErr(err)
	}
	ticketB, err := o.tickets.Get(ctx, idB)
	if err != nil {
		return nil, nil, markClientErr(err)
	}

	if ticketA.OwnerID != requesterID {
		return nil, nil, errs.Mark(errs.New("offered ticket is not owned by the caller"), usecase.ErrValidation)
	}
	if ticketA.Status != booking.TicketConfirmed || ticketB.Status != booking.TicketConfirmed {
		return nil, nil, errs.Mark(
			errs.WithDetail(errs.New("both tickets must be confirmed"), "tickets "+idA+" and "+idB),
			usecase.ErrConflict,
		)
	}
	if !ticketB.ListedForTrade {
		return nil, nil, errs.Mark(
			errs.WithDetail(errs.New("requested ticket is not listed for trade"), "ticket "+idB),
			usecase.ErrConflict,
		)
	}
	if ticketA.TradeRequestID != "" || ticketB.TradeRequestID != "" {
		return nil, nil, errs.Mark(
			errs.WithDetail(errs.New("a ticket already sits in a pending proposal"), "tickets "+idA+" and "+idB),
			usecase.ErrConflict,
		)
	}
	return ticketA, ticketB, nil
}

// swapOwners crosses the two tickets' owners, retrying transient failures.
// The commit already happened, so only exhaustion is an error.
func (o *TradeOrchestrator) swapOwners(ctx context.Context, p *trade.Proposal) error {
	swap := func(ticketID, newOwner string) error {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = o.cfg.ConfirmBackoffBase
		return backoff.Retry(func() error {
			err := o.tickets.SetOwner(ctx, ticketID, newOwner)
			if err == nil {
				return nil
			}
			if client.IsKind(err, client.KindUnavailable) {
				return err
			}
			return backoff.Permanent(err)
		}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(o.cfg.ConfirmMaxRetries)), ctx))
	}

	if err := swap(p.TicketA, p.CounterpartyID); err != nil {
		return errs.Wrapf(err, "assign ticket %s to %s", p.TicketA, p.CounterpartyID)
	}
	if err := swap(p.TicketB, p.RequesterID); err != nil {
		return errs.Wrapf(err, "assign ticket %s to %s", p.TicketB, p.RequesterID)
	}
	return nil
}

// clearMarkings drops the trade id and marketplace flag once a ticket's
// trade is settled. Best-effort: the ledger already holds the truth.
func (o *TradeOrchestrator) clearMarkings(ctx context.Context, ticketID string) {
	if err := o.tickets.SetTradeRequestID(ctx, ticketID, ""); err != nil {
		slog.Warn("trade: failed to clear trade id", "ticket_id", ticketID, "error", err)
	}
	if err := o.tickets.SetListedForTrade(ctx, ticketID, false); err != nil {
		slog.Warn("trade: failed to clear listing", "ticket_id", ticketID, "error", err)
	}
}

func (o *TradeOrchestrator) publish(ctx context.Context, kind string, payload map[string]any) {
	ev := bus.Event{Kind: kind, OccurredAt: o.clock.Now(), Payload: payload}
	if err := o.events.Publish(ctx, bus.TradeEventsQueue, ev); err != nil {
		slog.Warn("trade: event publish failed", "kind", kind, "error", err)
	}
}

// markRepoErr maps ledger failures onto the usecase taxonomy.
func markRepoErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, usecase.ErrNotFound)
	case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, usecase.ErrConflict)
	default:
		return errs.Mark(err, usecase.ErrUpstreamUnavailable)
	}
}

func markTradeErr(err error) error {
	switch {
	case errors.Is(err, trade.ErrInvalidProposalState):
		return errs.Mark(err, usecase.ErrConflict)
	default:
		return errs.Mark(err, usecase.ErrValidation)
	}
}

func markClientErrNil(err error) error {
	if err == nil {
		return nil
	}
	return markClientErr(err)
}
