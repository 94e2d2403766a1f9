package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/arpansaha13/enrollkit/internal/mocks"
	"github.com/arpansaha13/enrollkit/internal/service"
)

func requests(n int) []service.EnrollUserRequest {
	reqs := make([]service.EnrollUserRequest, n)
	for i := range reqs {
		reqs[i] = service.EnrollUserRequest{
			Name:     fmt.Sprintf("User %d", i),
			UserName: fmt.Sprintf("user%d", i),
			EMail:    fmt.Sprintf("user%d@x.com", i),
		}
	}
	return reqs
}

func TestEnrollAll(t *testing.T) {
	var calls int32
	enroller := &mocks.MockEnrollmentService{
		EnrollUserFunc: func(ctx context.Context, req service.EnrollUserRequest) (*service.EnrolledUser, error) {
			atomic.AddInt32(&calls, 1)
			if req.UserName == "user3" {
				return nil, errors.New("username taken")
			}
			return &service.EnrolledUser{Name: req.Name, UserName: req.UserName, EMail: req.EMail}, nil
		},
	}

	results := EnrollAll(context.Background(), enroller, requests(10), 4, 0, nil)

	require.Len(t, results, 10)
	assert.Equal(t, int32(10), atomic.LoadInt32(&calls))
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, fmt.Sprintf("user%d", i), r.UserName)
		if i == 3 {
			assert.Error(t, r.Err)
			assert.Equal(t, "username taken", r.Error)
			assert.Nil(t, r.User)
			continue
		}
		require.NoError(t, r.Err)
		assert.Equal(t, fmt.Sprintf("user%d@x.com", i), r.User.EMail)
	}
}

func TestEnrollAll_Empty(t *testing.T) {
	results := EnrollAll(context.Background(), &mocks.MockEnrollmentService{}, nil, 2, 0, nil)
	assert.Empty(t, results)
}

func TestEnrollAll_CancelledMidBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enroller := &mocks.MockEnrollmentService{
		EnrollUserFunc: func(ctx context.Context, req service.EnrollUserRequest) (*service.EnrolledUser, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if req.UserName == "user0" {
				cancel()
			}
			return &service.EnrolledUser{Name: req.Name, UserName: req.UserName, EMail: req.EMail}, nil
		},
	}

	reqs := requests(5)
	results := EnrollAll(ctx, enroller, reqs, 1, 0, nil)

	require.Len(t, results, len(reqs))
	require.NoError(t, results[0].Err)
	assert.Equal(t, "user0", results[0].User.UserName)
	for i, r := range results[1:] {
		assert.Equal(t, i+1, r.Index)
		assert.Equal(t, reqs[i+1].UserName, r.UserName)
		assert.ErrorIs(t, r.Err, context.Canceled)
		assert.Equal(t, context.Canceled.Error(), r.Error)
		assert.Nil(t, r.User)
	}
}

func TestEnrollAll_SmallQueue(t *testing.T) {
	results := EnrollAll(context.Background(), &mocks.MockEnrollmentService{}, requests(20), 3, 1, nil)

	require.Len(t, results, 20)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.NoError(t, r.Err)
	}
}

func TestEnrollAll_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := EnrollAll(ctx, &mocks.MockEnrollmentService{}, requests(3), 2, 0, nil)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestEnrollAll_RateLimited(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(20*time.Millisecond), 1)

	start := time.Now()
	results := EnrollAll(context.Background(), &mocks.MockEnrollmentService{}, requests(4), 4, 0, limiter)
	elapsed := time.Since(start)

	require.Len(t, results, 4)
	// one burst token, then three waits
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
}

func TestEnrollWorkerPool_EnqueueAfterClose(t *testing.T) {
	pool := NewEnrollWorkerPool(context.Background(), 1, 1, &mocks.MockEnrollmentService{}, nil)
	pool.Close()
	pool.Close()

	err := pool.Enqueue(EnrollTask{Index: 0})
	assert.ErrorIs(t, err, ErrPoolClosed)

	pool.Wait()
	_, open := <-pool.Results()
	assert.False(t, open)
}

func TestEnrollWorkerPool_StopCancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	enroller := &mocks.MockEnrollmentService{
		EnrollUserFunc: func(ctx context.Context, req service.EnrollUserRequest) (*service.EnrolledUser, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}

	pool := NewEnrollWorkerPool(context.Background(), 1, 1, enroller, nil)
	require.NoError(t, pool.Enqueue(EnrollTask{Index: 0, Request: service.EnrollUserRequest{UserName: "slow"}}))
	<-started

	stopped := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}

	err := pool.Enqueue(EnrollTask{Index: 1})
	assert.Error(t, err)
}

func TestEnrollWorkerPool_ParentContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewEnrollWorkerPool(ctx, 2, 0, &mocks.MockEnrollmentService{}, nil)
	cancel()

	err := pool.Enqueue(EnrollTask{Index: 0})
	assert.ErrorIs(t, err, context.Canceled)
	pool.Stop()
}
