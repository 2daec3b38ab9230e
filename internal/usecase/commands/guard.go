package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"ticketing-orchestrator/internal/infra"
	"ticketing-orchestrator/internal/infra/repository"
	"ticketing-orchestrator/internal/pkg/clock"
	"ticketing-orchestrator/internal/pkg/errs"
	"ticketing-orchestrator/internal/usecase"
)

// IdempotencyStore is the slice of the keyed store the guard needs.
type IdempotencyStore interface {
	TryInsert(ctx context.Context, key uuid.UUID, userID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key uuid.UUID, userID string) (*repository.IdempotencyRecord, error)
	Complete(ctx context.Context, key uuid.UUID, userID string, payload []byte) error
}

// IdempotencyGuard fences money-moving operations behind a caller-supplied
// key. The first attempt claims the key and runs; replays of a completed
// attempt get the stored result; a concurrent attempt on a processing key is
// a conflict.
type IdempotencyGuard struct {
	store IdempotencyStore
	clock clock.Clock
	ttl   time.Duration
}

func NewIdempotencyGuard(store IdempotencyStore, clk clock.Clock, ttl time.Duration) *IdempotencyGuard {
	return &IdempotencyGuard{store: store, clock: clk, ttl: ttl}
}

// Begin claims key for this attempt. It returns (nil, true, nil) when the
// caller should run the operation, (payload, false, nil) when this is a
// replay of a completed attempt, and an error otherwise.
func (g *IdempotencyGuard) Begin(ctx context.Context, key uuid.UUID, userID, endpoint string, request any) ([]byte, bool, error) {
	hash, err := requestHash(request)
	if err != nil {
		return nil, false, errs.Mark(err, usecase.ErrValidation)
	}

	expiresAt := g.clock.Now().Add(g.ttl)
	claimed, err := g.store.TryInsert(ctx, key, userID, endpoint, hash, expiresAt)
	if err != nil {
		return nil, false, errs.Mark(err, usecase.ErrUpstreamUnavailable)
	}
	if claimed {
		return nil, true, nil
	}

	rec, err := g.store.Get(ctx, key, userID)
	if err != nil {
		return nil, false, errs.Mark(err, usecase.ErrUpstreamUnavailable)
	}

	if rec.RequestHash != hash {
		return nil, false, errs.Mark(
			errs.New("idempotency key reused with a different request body"),
			usecase.ErrConflict,
		)
	}

	switch rec.Status {
	case repository.IdempotencyCompleted:
		return rec.ResultPayload, false, nil
	case repository.IdempotencyProcessing:
		return nil, false, errs.Mark(
			errs.New("an attempt with this idempotency key is already in progress"),
			usecase.ErrConflict,
		)
	default:
		return nil, false, errs.Mark(
			errs.Newf("unexpected idempotency record status %q", rec.Status),
			usecase.ErrConflict,
		)
	}
}

// Finish stores the successful result so later replays return it verbatim.
func (g *IdempotencyGuard) Finish(ctx context.Context, key uuid.UUID, userID string, result any) ([]byte, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode idempotent result")
	}
	if err := g.store.Complete(ctx, key, userID, payload); err != nil {
		// A concurrent completion already stored a result; replay semantics
		// still hold, so surface the stored payload path via conflict.
		if infra.IsKind(err, infra.KindConflict) {
			return payload, nil
		}
		return nil, err
	}
	return payload, nil
}

// DeriveStepKey deterministically derives the idempotency key forwarded to a
// collaborator for one step of the saga. Retries of the same logical attempt
// always present the same key downstream.
func DeriveStepKey(parent uuid.UUID, step string) uuid.UUID {
	return uuid.NewSHA1(parent, []byte(step))
}

func requestHash(request any) (string, error) {
	buf, err := json.Marshal(request)
	if err != nil {
		return "", errs.Wrap(err, "failed to hash request")
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}
