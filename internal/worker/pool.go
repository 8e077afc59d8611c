// Package worker runs independent requests on a bounded set of goroutines.
package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Pool bounds how many jobs run at once.
type Pool struct {
	size   int
	logger *slog.Logger
}

// NewPool returns a Pool running at most size jobs concurrently. A size below
// one is treated as one.
func NewPool(size int, logger *slog.Logger) *Pool {
	return &Pool{
		size:   max(size, 1),
		logger: logger,
	}
}

// Map applies fn to every input on p and returns the outputs in input order.
// Every input is handed to fn exactly once, even after ctx is done: fn is
// expected to observe ctx itself and report cancellation in its output.
func Map[In, Out any](ctx context.Context, p *Pool, inputs []In, fn func(context.Context, In) Out) []Out {
	outputs := make([]Out, len(inputs))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := range min(p.size, len(inputs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p.logger.Debug("job started", "worker", w, "index", i)
				outputs[i] = fn(ctx, inputs[i])
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outputs
}
