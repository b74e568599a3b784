package sync

import (
	"context"
	"sync"
)

// WorkerPool bounds the parallelism of a batch of tasks. The size is fixed at
// construction and shared by every component the pool is injected into; a
// single Run call never spawns more than size goroutines.
type WorkerPool struct {
	size int
}

func NewWorkerPool(size int) *WorkerPool {
	if size < 1 {
		size = 1
	}
	return &WorkerPool{size: size}
}

func (p *WorkerPool) Size() int {
	return p.size
}

// Run executes task(0..n-1) with at most p.size running concurrently and
// blocks until all dispatched tasks return. Once ctx is cancelled no further
// tasks are dispatched; tasks already running are left to finish.
func (p *WorkerPool) Run(ctx context.Context, n int, task func(i int)) {
	if n <= 0 {
		return
	}
	sem := make(chan struct{}, p.size)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			task(i)
		}(i)
	}
	wg.Wait()
}
