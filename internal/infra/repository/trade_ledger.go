package repository

import (
	"context"
	"errors"

	"ticketing-orchestrator/internal/domain/trade"
	"ticketing-orchestrator/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TradeLedger is the durable, keyed store of trade proposals. Status changes
// go through conditional updates so the database row is the single
// serialization point for competing accepts.
type TradeLedger struct {
	db *pgxpool.Pool
}

func NewTradeLedger(db *pgxpool.Pool) *TradeLedger {
	return &TradeLedger{db: db}
}

const proposalColumns = `id, ticket_a, ticket_b, requester_id, counterparty_id, status, created_at, updated_at`

func scanProposal(row pgx.Row) (*trade.Proposal, error) {
	var p trade.Proposal
	err := row.Scan(&p.ID, &p.TicketA, &p.TicketB, &p.RequesterID, &p.CounterpartyID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (l *TradeLedger) Insert(ctx context.Context, p *trade.Proposal) error {
	_, err := l.db.Exec(ctx, `
		INSERT INTO trade_proposals (`+proposalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.TicketA, p.TicketB, p.RequesterID, p.CounterpartyID, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Partial unique index: the ticket already sits in a pending proposal.
			return infra.WrapRepoErr(infra.KindConflict, "ticket already has a pending proposal", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to insert trade proposal", err)
	}
	return nil
}

func (l *TradeLedger) GetByID(ctx context.Context, id uuid.UUID) (*trade.Proposal, error) {
	p, err := scanProposal(l.db.QueryRow(ctx, `
		SELECT `+proposalColumns+` FROM trade_proposals WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "trade proposal not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to load trade proposal", err)
	}
	return p, nil
}

// TransitionStatus performs the conditional write pending→to. Losing a race
// (or targeting a terminal proposal) surfaces as KindConflict, never as a
// silent overwrite.
func (l *TradeLedger) TransitionStatus(ctx context.Context, id uuid.UUID, from, to trade.Status) error {
	tag, err := l.db.Exec(ctx, `
		UPDATE trade_proposals SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update trade proposal status", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := l.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM trade_proposals WHERE id = $1)`, id).Scan(&exists); err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to check trade proposal existence", err)
		}
		if !exists {
			return infra.NewRepoErr(infra.KindNotFound, "trade proposal not found")
		}
		return infra.NewRepoErr(infra.KindConflict, "trade proposal is not in the expected status")
	}
	return nil
}

// Delete removes a proposal outright. Only used to abandon a proposal whose
// ticket marking could not be completed.
func (l *TradeLedger) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := l.db.Exec(ctx, `DELETE FROM trade_proposals WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to delete trade proposal", err)
	}
	return nil
}

// DeclinePendingTouching declines every pending proposal referencing either
// ticket, excluding the accepted one, and returns the rows it changed so the
// caller can unmark their tickets.
func (l *TradeLedger) DeclinePendingTouching(ctx context.Context, ticketA, ticketB string, exclude uuid.UUID) ([]*trade.Proposal, error) {
	rows, err := l.db.Query(ctx, `
		UPDATE trade_proposals SET status = $4, updated_at = now()
		WHERE status = $3
		  AND id <> $5
		  AND (ticket_a = $1 OR ticket_a = $2 OR ticket_b = $1 OR ticket_b = $2)
		RETURNING `+proposalColumns,
		ticketA, ticketB, trade.StatusPending, trade.StatusDeclined, exclude,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to decline competing proposals", err)
	}
	defer rows.Close()

	var declined []*trade.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan declined proposal", err)
		}
		declined = append(declined, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read declined proposals", err)
	}
	return declined, nil
}

func (l *TradeLedger) FindPendingByTicket(ctx context.Context, ticketID string) ([]*trade.Proposal, error) {
	return l.queryProposals(ctx, `
		SELECT `+proposalColumns+` FROM trade_proposals
		WHERE status = $2 AND (ticket_a = $1 OR ticket_b = $1)
		ORDER BY created_at DESC`,
		ticketID, trade.StatusPending,
	)
}

func (l *TradeLedger) ListByTicket(ctx context.Context, ticketID string) ([]*trade.Proposal, error) {
	return l.queryProposals(ctx, `
		SELECT `+proposalColumns+` FROM trade_proposals
		WHERE ticket_a = $1 OR ticket_b = $1
		ORDER BY created_at DESC`,
		ticketID,
	)
}

// ListByUser returns proposals on either side of userID, newest first,
// optionally filtered by status.
func (l *TradeLedger) ListByUser(ctx context.Context, userID string, status *trade.Status) ([]*trade.Proposal, error) {
	if status != nil {
		return l.queryProposals(ctx, `
			SELECT `+proposalColumns+` FROM trade_proposals
			WHERE (requester_id = $1 OR counterparty_id = $1) AND status = $2
			ORDER BY created_at DESC`,
			userID, *status,
		)
	}
	return l.queryProposals(ctx, `
		SELECT `+proposalColumns+` FROM trade_proposals
		WHERE requester_id = $1 OR counterparty_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
}

func (l *TradeLedger) queryProposals(ctx context.Context, query string, args ...any) ([]*trade.Proposal, error) {
	rows, err := l.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query trade proposals", err)
	}
	defer rows.Close()

	var out []*trade.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan trade proposal", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read trade proposals", err)
	}
	return out, nil
}
