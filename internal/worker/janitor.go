package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cleaning-booking/internal/data/repository"
)

const defaultSweepInterval = time.Hour

// Janitor periodically removes expired and revoked sessions so the
// sessions table does not grow without bound.
type Janitor struct {
	sessions repository.SessionRepository
	interval time.Duration
	log      *zap.Logger
}

func NewJanitor(sessions repository.SessionRepository, interval time.Duration, log *zap.Logger) *Janitor {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Janitor{
		sessions: sessions,
		interval: interval,
		log:      log.With(zap.String("worker", "janitor")),
	}
}

// Run sweeps on a ticker until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.log.Info("Session janitor started", zap.Duration("interval", j.interval))

	for {
		select {
		case <-ctx.Done():
			j.log.Info("Session janitor stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	removed, err := j.sessions.CleanExpiredSessions(ctx)
	if err != nil {
		j.log.Error("Failed to clean expired sessions", zap.Error(err))
		return
	}
	if removed > 0 {
		j.log.Info("Expired sessions removed", zap.Int64("count", removed))
	}
}
