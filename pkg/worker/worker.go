// Package worker re-exports enrollment workers
package worker

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	iworker "github.com/arpansaha13/enrollkit/internal/worker"
	"github.com/arpansaha13/enrollkit/pkg/service"
)

// Interfaces
type Enroller = iworker.Enroller
type TokenExpirer = iworker.TokenExpirer

// Worker implementations
type EnrollWorkerPool = iworker.EnrollWorkerPool
type EnrollTask = iworker.EnrollTask
type EnrollResult = iworker.EnrollResult
type TokenCleanupWorker = iworker.TokenCleanupWorker

var ErrPoolClosed = iworker.ErrPoolClosed

// Constructors
func NewEnrollWorkerPool(ctx context.Context, poolSize, queueSize int, enroller Enroller, limiter *rate.Limiter) *EnrollWorkerPool {
	return iworker.NewEnrollWorkerPool(ctx, poolSize, queueSize, enroller, limiter)
}

func NewTokenCleanupWorker(tokens TokenExpirer, interval time.Duration, lgr *zap.Logger) *TokenCleanupWorker {
	return iworker.NewTokenCleanupWorker(tokens, interval, lgr)
}

func EnrollAll(ctx context.Context, enroller Enroller, reqs []service.EnrollUserRequest, poolSize int, queueSize int, limiter *rate.Limiter) []EnrollResult {
	return iworker.EnrollAll(ctx, enroller, reqs, poolSize, queueSize, limiter)
}

func LoadEnrollBatch(r io.Reader) ([]service.EnrollUserRequest, error) {
	return iworker.LoadEnrollBatch(r)
}
