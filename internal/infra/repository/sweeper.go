package repository

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredDeleter is the slice of the idempotency store the sweeper needs.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// ExpirySweeper deletes idempotency records past their TTL on a fixed
// interval, so a crashed attempt's processing claim eventually frees its key.
type ExpirySweeper struct {
	store    ExpiredDeleter
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewExpirySweeper(store ExpiredDeleter, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{store: store, interval: interval}
}

// Start launches the sweep loop. The first sweep runs after one interval.
func (s *ExpirySweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight sweep to return.
func (s *ExpirySweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	deleted, err := s.store.DeleteExpired(ctx)
	if err != nil {
		slog.Warn("idempotency sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("idempotency sweep removed expired keys", "deleted", deleted)
	}
}
