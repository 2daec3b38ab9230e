//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type signalDeleter struct {
	swept chan struct{}
}

func (d *signalDeleter) DeleteExpired(context.Context) (int64, error) {
	select {
	case d.swept <- struct{}{}:
	default:
	}
	return 1, nil
}

func TestExpirySweeper(t *testing.T) {
	t.Run("sweeps on the interval until stopped", func(t *testing.T) {
		d := &signalDeleter{swept: make(chan struct{}, 1)}
		s := NewExpirySweeper(d, 5*time.Millisecond)
		s.Start()

		select {
		case <-d.swept:
		case <-time.After(2 * time.Second):
			t.Fatal("no sweep ran before the deadline")
		}
		s.Stop()

		// After Stop the loop is gone; drain and verify nothing new arrives.
		select {
		case <-d.swept:
		default:
		}
		select {
		case <-d.swept:
			t.Fatal("sweep ran after Stop returned")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("stop without start is a no-op", func(t *testing.T) {
		s := NewExpirySweeper(&signalDeleter{swept: make(chan struct{}, 1)}, time.Hour)
		assert.NotPanics(t, s.Stop)
	})
}
