package jobs

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Task is one unit of fan-out work.
type Task func(ctx context.Context) error

// PoolConfig configures fan-out behaviour.
type PoolConfig struct {
	Workers int
	Logger  *zap.Logger
}

// Pool runs a batch of independent tasks on a bounded set of goroutines.
// A Pool holds no state between Run calls and may be shared.
type Pool struct {
	name    string
	workers int
	logger  *zap.Logger
}

// NewPool builds a pool; Workers defaults to 1.
func NewPool(name string, cfg PoolConfig) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Pool{name: name, workers: cfg.Workers, logger: cfg.Logger}
}

// Workers returns the concurrency bound.
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes every task with at most Workers in flight and returns one
// error slot per task, index-aligned with tasks. Tasks not started before
// ctx is done receive ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []Task) []error {
	errs := make([]error, len(tasks))
	if len(tasks) == 0 {
		return errs
	}

	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range indexes {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				errs[i] = p.runTask(ctx, workerID, i, tasks[i])
			}
		}(w + 1)
	}

	for i := range tasks {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return errs
}

func (p *Pool) runTask(ctx context.Context, workerID, index int, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Sugar().Errorw("task panicked", "pool", p.name, "worker", workerID, "task", index, "panic", r)
			err = &PanicError{Value: r}
		}
	}()
	return task(ctx)
}

// PanicError reports a task that panicked instead of returning.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return "task panicked"
}
