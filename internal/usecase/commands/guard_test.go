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

	"ticketing-orchestrator/internal/infra"
	"ticketing-orchestrator/internal/infra/repository"
	"ticketing-orchestrator/internal/pkg/clock"
	"ticketing-orchestrator/internal/usecase"
	"ticketing-orchestrator/internal/usecase/commands"
)

func TestIdempotencyGuard_Begin(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	key := uuid.New()
	const userID = "usr-1"
	const endpoint = "purchase"
	request := map[string]string{"source": "card_visa"}
	ttl := 24 * time.Hour

	t.Run("first attempt claims the key", func(t *testing.T) {
		store := new(MockIdempotencyStore)
		store.On("TryInsert", ctx, key, userID, endpoint, mock.AnythingOfType("string"), now.Add(ttl)).
			Return(true, nil)
		guard := commands.NewIdempotencyGuard(store, clock.NewMockClock(now), ttl)

		replay, proceed, err := guard.Begin(ctx, key, userID, endpoint, request)

		require.NoError(t, err)
		assert.True(t, proceed)
		assert.Nil(t, replay)
		store.AssertExpectations(t)
	})

	t.Run("completed attempt replays the stored result", func(t *testing.T) {
		store := new(MockIdempotencyStore)
		var capturedHash string
		store.On("TryInsert", ctx, key, userID, endpoint, mock.AnythingOfType("string"), now.Add(ttl)).
			Run(func(args mock.Arguments) { capturedHash = args.String(4) }).
			Return(false, nil)
		store.On("Get", ctx, key, userID).
			Return(&repository.IdempotencyRecord{}, nil).
			Run(func(mock.Arguments) {}).
			Maybe()
		guard := commands.NewIdempotencyGuard(store, clock.NewMockClock(now), ttl)

		// First call captures the request hash the guard computes.
		_, _, _ = guard.Begin(ctx, key, userID, endpoint, request)

		stored := []byte(`{"status":"confirmed"}`)
		store2 := new(MockIdempotencyStore)
		store2.On("TryInsert", ctx, key, userID, endpoint, capturedHash, now.Add(ttl)).
			Return(false, nil)
		store2.On("Get", ctx, key, userID).
			Return(&repository.IdempotencyRecord{
				Key:           key,
				UserID:        userID,
				RequestHash:   capturedHash,
				Status:        repository.IdempotencyCompleted,
				ResultPayload: stored,
			}, nil)
		guard2 := commands.NewIdempotencyGuard(store2, clock.NewMockClock(now), ttl)

		replay, proceed, err := guard2.Begin(ctx, key, userID, endpoint, request)

		require.NoError(t, err)
		assert.False(t, proceed)
		assert.Equal(t, stored, replay)
	})

	t.Run("key reuse with different body is a conflict", func(t *testing.T) {
		store := new(MockIdempotencyStore)
		store.On("TryInsert", ctx, key, userID, endpoint, mock.AnythingOfType("string"), now.Add(ttl)).
			Return(false, nil)
		store.On("Get", ctx, key, userID).
			Return(&repository.IdempotencyRecord{
				RequestHash: "some-other-hash",
				Status:      repository.IdempotencyCompleted,
			}, nil)
		guard := commands.NewIdempotencyGuard(store, clock.NewMockClock(now), ttl)

		_, proceed, err := guard.Begin(ctx, key, userID, endpoint, request)

		assert.False(t, proceed)
		assert.ErrorIs(t, err, usecase.ErrConflict)
	})

	t.Run("concurrent attempt on a processing key is a conflict", func(t *testing.T) {
		store := new(MockIdempotencyStore)
		var capturedHash string
		store.On("TryInsert", ctx, key, userID, endpoint, mock.AnythingOfType("string"), now.Add(ttl)).
			Run(func(args mock.Arguments) { capturedHash = args.String(4) }).
			Return(false, nil)
		store.On("Get", ctx, key, userID).
			Return(&repository.IdempotencyRecord{}, nil).Maybe()
		guard := commands.NewIdempotencyGuard(store, clock.NewMockClock(now), ttl)
		_, _, _ = guard.Begin(ctx, key, userID, endpoint, request)

		store2 := new(MockIdempotencyStore)
		store2.On("TryInsert", ctx, key, userID, endpoint, capturedHash, now.Add(ttl)).
			Return(false, nil)
		store2.On("Get", ctx, key, userID).
			Return(&repository.IdempotencyRecord{
				RequestHash: capturedHash,
				Status:      repository.IdempotencyProcessing,
			}, nil)
		guard2 := commands.NewIdempotencyGuard(store2, clock.NewMockClock(now), ttl)

		_, proceed, err := guard2.Begin(ctx, key, userID, endpoint, request)

		assert.False(t, proceed)
		assert.ErrorIs(t, err, usecase.ErrConflict)
	})

	t.Run("store failure surfaces as unavailable", func(t *testing.T) {
		store := new(MockIdempotencyStore)
		store.On("TryInsert", ctx, key, userID, endpoint, mock.AnythingOfType("string"), now.Add(ttl)).
			Return(false, infra.NewRepoErr(infra.KindDBFailure, "connection refused"))
		guard := commands.NewIdempotencyGuard(store, clock.NewMockClock(now), ttl)

		_, proceed, err := guard.Begin(ctx, key, userID, endpoint, request)

		assert.False(t, proceed)
		assert.ErrorIs(t, err, usecase.ErrUpstreamUnavailable)
	})
}

func TestIdempotencyGuard_Finish(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	key := uuid.New()
	const userID = "usr-1"

	t.Run("stores the encoded result", func(t *testing.T) {
		store := new(MockIdempotencyStore)
		store.On("Complete", ctx, key, userID, mock.AnythingOfType("[]uint8")).Return(nil)
		guard := commands.NewIdempotencyGuard(store, clock.NewMockClock(now), time.Hour)

		payload, err := guard.Finish(ctx, key, userID, map[string]string{"status": "confirmed"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"confirmed"}`, string(payload))
		store.AssertExpectations(t)
	})

	t.Run("concurrent completion is tolerated", func(t *testing.T) {
		store := new(MockIdempotencyStore)
		store.On("Complete", ctx, key, userID, mock.AnythingOfType("[]uint8")).
			Return(infra.NewRepoErr(infra.KindConflict, "already completed"))
		guard := commands.NewIdempotencyGuard(store, clock.NewMockClock(now), time.Hour)

		payload, err := guard.Finish(ctx, key, userID, map[string]string{"status": "confirmed"})

		require.NoError(t, err)
		assert.NotNil(t, payload)
	})
}

func TestDeriveStepKey(t *testing.T) {
	parent := uuid.New()

	chargeKey := commands.DeriveStepKey(parent, "charge")
	assert.Equal(t, chargeKey, commands.DeriveStepKey(parent, "charge"), "same parent and step must derive the same key")
	assert.NotEqual(t, chargeKey, commands.DeriveStepKey(parent, "refund"), "different steps must derive different keys")
	assert.NotEqual(t, chargeKey, commands.DeriveStepKey(uuid.New(), "charge"), "different parents must derive different keys")
}
