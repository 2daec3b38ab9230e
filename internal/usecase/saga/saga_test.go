//go:build unit

package saga_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketing-orchestrator/internal/usecase/saga"
)

func TestRunner_AppliesStepsInOrder(t *testing.T) {
	var applied []string
	runner := &saga.Runner{Saga: "test"}

	err := runner.Run(context.Background(), []saga.Step{
		{Name: "first", Apply: func(context.Context) error {
			applied = append(applied, "first")
			return nil
		}},
		{Name: "second", Apply: func(context.Context) error {
			applied = append(applied, "second")
			return nil
		}},
		{Name: "third", Apply: func(context.Context) error {
			applied = append(applied, "third")
			return nil
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, applied)
}

func TestRunner_CompensatesAppliedStepsInReverse(t *testing.T) {
	var compensated []string
	boom := errors.New("step blew up")
	runner := &saga.Runner{Saga: "test"}

	err := runner.Run(context.Background(), []saga.Step{
		{
			Name:  "first",
			Apply: func(context.Context) error { return nil },
			Compensate: func(context.Context) error {
				compensated = append(compensated, "first")
				return nil
			},
		},
		{
			Name:  "second",
			Apply: func(context.Context) error { return nil },
			Compensate: func(context.Context) error {
				compensated = append(compensated, "second")
				return nil
			},
		},
		{
			Name:  "third",
			Apply: func(context.Context) error { return boom },
			Compensate: func(context.Context) error {
				compensated = append(compensated, "third")
				return nil
			},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	// The failing step never applied, so only the first two unwind.
	assert.Equal(t, []string{"second", "first"}, compensated)
}

func TestRunner_NilCompensateIsSkipped(t *testing.T) {
	var compensated []string
	runner := &saga.Runner{Saga: "test"}

	err := runner.Run(context.Background(), []saga.Step{
		{Name: "read", Apply: func(context.Context) error { return nil }},
		{
			Name:  "write",
			Apply: func(context.Context) error { return nil },
			Compensate: func(context.Context) error {
				compensated = append(compensated, "write")
				return nil
			},
		},
		{Name: "fail", Apply: func(context.Context) error { return errors.New("nope") }},
	})

	require.Error(t, err)
	assert.Equal(t, []string{"write"}, compensated)
}

func TestRunner_CompensationRunsOnCancelledContext(t *testing.T) {
	compensated := false
	runner := &saga.Runner{Saga: "test", DetachedTimeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())

	err := runner.Run(ctx, []saga.Step{
		{
			Name:  "reserve",
			Apply: func(context.Context) error { return nil },
			Compensate: func(cctx context.Context) error {
				// The caller's cancellation must not reach the compensation.
				assert.NoError(t, cctx.Err())
				compensated = true
				return nil
			},
		},
		{
			Name: "fail",
			Apply: func(context.Context) error {
				cancel()
				return errors.New("upstream died")
			},
		},
	})

	require.Error(t, err)
	assert.True(t, compensated)
}

func TestRunner_CompensationFailureDoesNotMaskCause(t *testing.T) {
	boom := errors.New("apply failed")
	runner := &saga.Runner{Saga: "test"}

	err := runner.Run(context.Background(), []saga.Step{
		{
			Name:       "reserve",
			Apply:      func(context.Context) error { return nil },
			Compensate: func(context.Context) error { return errors.New("release failed too") },
		},
		{Name: "fail", Apply: func(context.Context) error { return boom }},
	})

	assert.ErrorIs(t, err, boom)
}
