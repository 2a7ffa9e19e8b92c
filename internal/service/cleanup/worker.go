package cleanup

import (
	"context"
	"log/slog"
	"time"
)

type SessionCleaner interface {
	CleanupIdle(maxIdle time.Duration) int
}

type Worker struct {
	sessions SessionCleaner
	interval time.Duration
	maxIdle  time.Duration
	logger   *slog.Logger
}

func NewWorker(sessions SessionCleaner, interval, maxIdle time.Duration, logger *slog.Logger) *Worker {
	return &Worker{sessions: sessions, interval: interval, maxIdle: maxIdle, logger: logger}
}

// Run evicts idle sessions every interval until ctx is done
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("cleanup worker started", "interval", w.interval, "max_idle", w.maxIdle)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() {
	if removed := w.sessions.CleanupIdle(w.maxIdle); removed > 0 {
		w.logger.Info("cleanup removed idle sessions", "count", removed)
	}
}
