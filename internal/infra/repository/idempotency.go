package repository

import (
	"context"
	"errors"
	"time"

	"ticketing-orchestrator/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

// IdempotencyRecord maps a caller-supplied key to the result of the first
// attempt. Completed records are never mutated again.
type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        string
	Endpoint      string
	RequestHash   string
	Status        string
	ResultPayload []byte
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

type IdempotencyStore struct {
	db *pgxpool.Pool
}

func NewIdempotencyStore(db *pgxpool.Pool) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

// TryInsert claims the key for this attempt. It reports whether this call
// inserted the row; a pre-existing row is not an error, the caller reads it
// back with Get to decide replay vs in-progress.
func (s *IdempotencyStore) TryInsert(ctx context.Context, key uuid.UUID, userID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key, user_id) DO NOTHING`,
		key, userID, endpoint, requestHash, IdempotencyProcessing, expiresAt,
	)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to claim idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *IdempotencyStore) Get(ctx context.Context, key uuid.UUID, userID string) (*IdempotencyRecord, error) {
	var rec IdempotencyRecord
	err := s.db.QueryRow(ctx, `
		SELECT key, user_id, endpoint, request_hash, status, result_payload, created_at, expires_at
		FROM idempotency_keys WHERE key = $1 AND user_id = $2`,
		key, userID,
	).Scan(&rec.Key, &rec.UserID, &rec.Endpoint, &rec.RequestHash, &rec.Status, &rec.ResultPayload, &rec.CreatedAt, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "idempotency key not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to load idempotency key", err)
	}
	return &rec, nil
}

// Complete stores the result payload. Conditional on processing status so a
// completed record is written exactly once.
func (s *IdempotencyStore) Complete(ctx context.Context, key uuid.UUID, userID string, payload []byte) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE idempotency_keys SET status = $3, result_payload = $4
		WHERE key = $1 AND user_id = $2 AND status = $5`,
		key, userID, IdempotencyCompleted, payload, IdempotencyProcessing,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindConflict, "idempotency key already completed or missing")
	}
	return nil
}

func (s *IdempotencyStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at < now()`)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
