// Package worker runs background maintenance loops.
package worker

import (
	"context"
	"time"

	"taskhub_backend/internal/logger"
	"taskhub_backend/internal/service"
)

// TokenPruner periodically removes accounts that were registered but never
// confirmed, so abandoned one-time tokens do not accumulate.
type TokenPruner struct {
	users    service.UserRepository
	interval time.Duration
	maxAge   time.Duration
}

func NewTokenPruner(users service.UserRepository, interval, maxAge time.Duration) *TokenPruner {
	return &TokenPruner{users: users, interval: interval, maxAge: maxAge}
}

// Run blocks until ctx is canceled. Intended to be started in its own
// goroutine.
func (w *TokenPruner) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := w.users.DeleteStaleUnconfirmed(ctx, w.maxAge)
			if err != nil {
				logger.Error("prune unconfirmed accounts failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("pruned unconfirmed accounts", "count", n)
			}
		}
	}
}
