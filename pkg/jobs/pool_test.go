package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunKeepsErrorsAligned(t *testing.T) {
	pool := NewPool("test", PoolConfig{Workers: 3})
	boom := errors.New("boom")

	tasks := []Task{
		func(context.Context) error { return nil },
		func(context.Context) error { return boom },
		func(context.Context) error { return nil },
		func(context.Context) error { panic("bad task") },
	}

	errs := pool.Run(context.Background(), tasks)
	require.Len(t, errs, 4)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], boom)
	assert.NoError(t, errs[2])
	var panicErr *PanicError
	assert.ErrorAs(t, errs[3], &panicErr)
}

func TestPoolRunBoundsConcurrency(t *testing.T) {
	pool := NewPool("bounded", PoolConfig{Workers: 2})
	var inFlight, peak int32

	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = func(context.Context) error {
			current := atomic.AddInt32(&inFlight, 1)
			for {
				seen := atomic.LoadInt32(&peak)
				if current <= seen || atomic.CompareAndSwapInt32(&peak, seen, current) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return nil
		}
	}

	errs := pool.Run(context.Background(), tasks)
	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestPoolRunSkipsTasksAfterCancel(t *testing.T) {
	pool := NewPool("cancel", PoolConfig{Workers: 1})
	ctx, cancel := context.WithCancel(context.Background())

	var ran int32
	tasks := []Task{
		func(context.Context) error {
			atomic.AddInt32(&ran, 1)
			cancel()
			return nil
		},
		func(context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		},
	}

	errs := pool.Run(ctx, tasks)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], context.Canceled)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}

func TestPoolRunEmpty(t *testing.T) {
	assert.Empty(t, NewPool("empty", PoolConfig{}).Run(context.Background(), nil))
}
