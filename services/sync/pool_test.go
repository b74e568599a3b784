package sync

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsEveryTask(t *testing.T) {
	var ran int32
	NewWorkerPool(3).Run(context.Background(), 50, func(i int) {
		atomic.AddInt32(&ran, 1)
	})
	assert.Equal(t, int32(50), atomic.LoadInt32(&ran))
}

func TestPoolBoundsConcurrency(t *testing.T) {
	var current, peak int32
	NewWorkerPool(4).Run(context.Background(), 40, func(i int) {
		n := atomic.AddInt32(&current, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&current, -1)
	})
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(4))
	assert.Greater(t, atomic.LoadInt32(&peak), int32(1))
}

func TestPoolStopsDispatchingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ran int32
	NewWorkerPool(1).Run(ctx, 100, func(i int) {
		if atomic.AddInt32(&ran, 1) == 3 {
			cancel()
		}
	})
	assert.Less(t, atomic.LoadInt32(&ran), int32(100))
}

func TestPoolHandlesZeroTasks(t *testing.T) {
	NewWorkerPool(2).Run(context.Background(), 0, func(i int) {
		t.Fatal("task must not run")
	})
}
