// Package saga runs ordered step sequences with compensation. A step's
// compensating action must be safe to call when the forward action only
// partially applied, because the orchestrator cannot always tell.
package saga

import (
	"context"
	"log/slog"
	"time"

	"ticketing-orchestrator/internal/infra/metrics"
	"ticketing-orchestrator/internal/pkg/errs"
)

// Step pairs a forward action with its compensation. Compensate may be nil
// for steps that have nothing to undo (reads, final steps).
type Step struct {
	Name       string
	Apply      func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Runner executes steps in order. On the first Apply failure it runs the
// compensations of every previously applied step in reverse order, on a
// context detached from the caller so a dropped connection cannot leave
// half-applied state behind.
type Runner struct {
	Saga            string
	Metrics         *metrics.SagaMetrics
	DetachedTimeout time.Duration
}

// Run returns the failing step's error once compensation has finished.
// Compensation failures are logged and counted but do not mask the cause.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	applied := make([]Step, 0, len(steps))
	for _, step := range steps {
		if err := step.Apply(ctx); err != nil {
			r.compensate(ctx, applied)
			return errs.Wrapf(err, "%s: step %s failed", r.Saga, step.Name)
		}
		applied = append(applied, step)
	}
	return nil
}

func (r *Runner) compensate(ctx context.Context, applied []Step) {
	cctx := context.WithoutCancel(ctx)
	if r.DetachedTimeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(cctx, r.DetachedTimeout)
		defer cancel()
	}
	for i := len(applied) - 1; i >= 0; i-- {
		step := applied[i]
		if step.Compensate == nil {
			continue
		}
		if r.Metrics != nil {
			r.Metrics.CompensationsTotal.WithLabelValues(r.Saga, step.Name).Inc()
		}
		if err := step.Compensate(cctx); err != nil {
			slog.Error("saga: compensation failed",
				"saga", r.Saga, "step", step.Name, "error", err)
		}
	}
}
