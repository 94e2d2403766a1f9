package worker

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/arpansaha13/enrollkit/internal/logger"
	"github.com/arpansaha13/enrollkit/internal/service"
)

// ErrPoolClosed is returned by Enqueue once the pool stopped accepting tasks
var ErrPoolClosed = errors.New("enroll worker pool is closed")

// Enroller enrolls one user
type Enroller interface {
	EnrollUser(ctx context.Context, req service.EnrollUserRequest) (*service.EnrolledUser, error)
}

// EnrollTask represents one user to enroll
type EnrollTask struct {
	Index   int
	Request service.EnrollUserRequest
}

// EnrollResult is the outcome of one EnrollTask
type EnrollResult struct {
	Index    int                   `json:"index"`
	UserName string                `json:"userName"`
	User     *service.EnrolledUser `json:"user,omitempty"`
	Err      error                 `json:"-"`
	Error    string                `json:"error,omitempty"`
}

// EnrollWorkerPool manages a pool of enroll worker goroutines with a buffered channel
type EnrollWorkerPool struct {
	taskQueue chan EnrollTask
	results   chan EnrollResult
	enroller  Enroller
	limiter   *rate.Limiter
	lgr       *zap.Logger
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewEnrollWorkerPool creates a new enroll worker pool. A nil limiter does not throttle.
func NewEnrollWorkerPool(ctx context.Context, workerCount int, queueSize int, enroller Enroller, limiter *rate.Limiter) *EnrollWorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	ctx, cancel := context.WithCancel(ctx)

	pool := &EnrollWorkerPool{
		taskQueue: make(chan EnrollTask, queueSize),
		results:   make(chan EnrollResult, queueSize),
		enroller:  enroller,
		limiter:   limiter,
		lgr:       logger.FromContext(ctx),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	// Start worker goroutines
	for i := 0; i < workerCount; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	go func() {
		pool.wg.Wait()
		close(pool.results)
		close(pool.done)
	}()

	pool.lgr.Info("enroll worker pool started", zap.Int("workers", workerCount))
	return pool
}

// Enqueue adds a task to the queue, blocking while it is full
func (p *EnrollWorkerPool) Enqueue(task EnrollTask) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	if err := p.ctx.Err(); err != nil {
		return err
	}

	select {
	case p.taskQueue <- task:
		return nil
	case <-p.ctx.Done():
		p.lgr.Warn("worker pool is shutting down, discarding task", zap.Int("index", task.Index))
		return p.ctx.Err()
	}
}

// Results returns the result channel. It is closed after Close or Stop once
// every worker has exited.
func (p *EnrollWorkerPool) Results() <-chan EnrollResult {
	return p.results
}

// Close stops accepting tasks and lets the workers drain the queue
func (p *EnrollWorkerPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.taskQueue)
}

// Stop cancels pending work and waits for the workers to exit
func (p *EnrollWorkerPool) Stop() {
	p.lgr.Info("stopping enroll worker pool")
	p.cancel()
	p.Close()
	<-p.done
	p.lgr.Info("enroll worker pool stopped")
}

// Wait blocks until every worker has exited
func (p *EnrollWorkerPool) Wait() {
	<-p.done
}

// EnrollAll runs every request through a pool and returns one result per
// request in input order. Requests the pool never completed, for example
// after ctx was cancelled, carry the context error. A queueSize below 1
// queues the whole batch.
func EnrollAll(ctx context.Context, enroller Enroller, reqs []service.EnrollUserRequest, workerCount int, queueSize int, limiter *rate.Limiter) []EnrollResult {
	if queueSize < 1 {
		queueSize = len(reqs)
	}
	pool := NewEnrollWorkerPool(ctx, workerCount, queueSize, enroller, limiter)

	results := make([]EnrollResult, 0, len(reqs))
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for r := range pool.Results() {
			results = append(results, r)
		}
	}()

	for i, req := range reqs {
		if err := pool.Enqueue(EnrollTask{Index: i, Request: req}); err != nil {
			break
		}
	}
	pool.Close()
	<-collected
	pool.Stop()

	if len(results) < len(reqs) {
		results = fillMissing(ctx, reqs, results)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// Private helper methods

func (p *EnrollWorkerPool) worker(id int) {
	defer p.wg.Done()

	p.lgr.Debug("enroll worker started", zap.Int("worker_id", id))

	for {
		select {
		case task, ok := <-p.taskQueue:
			if !ok {
				p.lgr.Debug("enroll worker stopped", zap.Int("worker_id", id))
				return
			}

			result := p.handleTask(id, task)
			select {
			case p.results <- result:
				continue
			default:
			}
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				p.lgr.Warn("result discarded on shutdown", zap.Int("worker_id", id), zap.Int("index", result.Index))
				return
			}

		case <-p.ctx.Done():
			p.lgr.Debug("enroll worker shutting down", zap.Int("worker_id", id))
			return
		}
	}
}

func (p *EnrollWorkerPool) handleTask(workerID int, task EnrollTask) EnrollResult {
	result := EnrollResult{Index: task.Index, UserName: task.Request.UserName}

	if p.limiter != nil {
		if err := p.limiter.Wait(p.ctx); err != nil {
			result.Err = err
			result.Error = err.Error()
			return result
		}
	}

	user, err := p.enroller.EnrollUser(p.ctx, task.Request)
	if err != nil {
		p.lgr.Warn("failed to enroll user", zap.Int("worker_id", workerID), zap.String("username", task.Request.UserName), zap.Error(err))
		result.Err = err
		result.Error = err.Error()
		return result
	}

	p.lgr.Info("user enrolled", zap.Int("worker_id", workerID), zap.String("username", user.UserName))
	result.User = user
	return result
}

// fillMissing adds a failed result for every request without one
func fillMissing(ctx context.Context, reqs []service.EnrollUserRequest, results []EnrollResult) []EnrollResult {
	err := ctx.Err()
	if err == nil {
		err = ErrPoolClosed
	}

	seen := make(map[int]bool, len(results))
	for _, r := range results {
		seen[r.Index] = true
	}
	for i, req := range reqs {
		if seen[i] {
			continue
		}
		results = append(results, EnrollResult{Index: i, UserName: req.UserName, Err: err, Error: err.Error()})
	}
	return results
}
