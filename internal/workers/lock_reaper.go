package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LockReleaser clears companion locks whose lockedUntil has passed.
type LockReleaser interface {
	ReleaseExpiredLocks(ctx context.Context, now time.Time) (int64, error)
}

type LockReaper struct {
	users    LockReleaser
	interval time.Duration
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewLockReaper(users LockReleaser, interval time.Duration, logger *zap.SugaredLogger) *LockReaper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &LockReaper{
		users:    users,
		interval: interval,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (r *LockReaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("lock reaper stopped")
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *LockReaper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	n, err := r.users.ReleaseExpiredLocks(sweepCtx, r.now())
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Warnw("release expired locks failed", "error", err)
		}
		return
	}
	if n > 0 {
		r.logger.Infow("released expired companion locks", "count", n)
	}
}
