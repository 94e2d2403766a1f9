package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TokenExpirer deletes tokens that expired at now
type TokenExpirer interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// TokenCleanupWorker periodically purges expired tokens from the stub service
type TokenCleanupWorker struct {
	tokens   TokenExpirer
	interval time.Duration
	lgr      *zap.Logger
	now      func() time.Time

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

// NewTokenCleanupWorker creates a new cleanup worker
func NewTokenCleanupWorker(tokens TokenExpirer, interval time.Duration, lgr *zap.Logger) *TokenCleanupWorker {
	if lgr == nil {
		lgr = zap.L()
	}
	return &TokenCleanupWorker{
		tokens:   tokens,
		interval: interval,
		lgr:      lgr,
		now:      time.Now,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start starts the cleanup worker
func (w *TokenCleanupWorker) Start() {
	w.lgr.Info("starting token cleanup worker", zap.Duration("interval", w.interval))

	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.cleanup()
			case <-w.stopChan:
				w.lgr.Info("stopping token cleanup worker")
				return
			}
		}
	}()
}

// Stop stops the cleanup worker and waits for it to exit. It must follow Start.
func (w *TokenCleanupWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
	<-w.done
}

// cleanup removes expired tokens
func (w *TokenCleanupWorker) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := w.tokens.DeleteExpired(ctx, w.now())
	if err != nil {
		w.lgr.Error("failed to delete expired tokens", zap.Error(err))
		return
	}
	w.lgr.Debug("expired tokens cleaned up", zap.Int("removed", removed))
}
