package cart

import (
	"context"
	"log/slog"
	"time"
)

type staleDeleter interface {
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// Janitor periodically drops carts that have not been touched for maxAge.
type Janitor struct {
	store    staleDeleter
	maxAge   time.Duration
	interval time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// NewJanitor creates a Janitor sweeping every interval.
func NewJanitor(logger *slog.Logger, store staleDeleter, maxAge, interval time.Duration) *Janitor {
	return &Janitor{
		store:    store,
		maxAge:   maxAge,
		interval: interval,
		now:      time.Now,
		log:      logger.With("service", "cart_janitor"),
	}
}

// Run sweeps until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep deletes stale carts once and returns how many were removed.
// Failures are logged; the next tick tries again.
func (j *Janitor) Sweep(ctx context.Context) int64 {
	before := j.now().Add(-j.maxAge)
	n, err := j.store.DeleteStale(ctx, before)
	if err != nil {
		j.log.WarnContext(ctx, "stale cart sweep failed", slog.String("error", err.Error()))
		return 0
	}
	if n > 0 {
		j.log.InfoContext(ctx, "stale carts deleted",
			slog.Int64("count", n),
			slog.Time("before", before),
		)
	}
	return n
}
