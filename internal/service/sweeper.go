package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"agritradehub/internal/domain"
)

// Sweeper purges expired session rows in the background. Expiry is already
// enforced lazily on every Authenticate; the sweeper just keeps the table
// from growing without bound.
type Sweeper struct {
	sessions domain.SessionRepository
	interval time.Duration
	log      *zap.Logger
}

func NewSweeper(sessions domain.SessionRepository, interval time.Duration, log *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{sessions: sessions, interval: interval, log: log}
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.sessions.DeleteExpired(ctx, time.Now())
			if err != nil {
				s.log.Warn("session sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				s.log.Info("expired sessions purged", zap.Int64("count", n))
			}
		}
	}
}
