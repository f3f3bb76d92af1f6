package ptrack

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one task processed by a pool. Index is the
// position of the task in submission order.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

// Pool runs a function over a stream of tasks on a fixed set of workers.
// Results come back over a channel, either in submission order or as they
// complete. A pool serves a single batch: consume the channel until it is
// closed, or call Close to abandon the batch, then Join to wait for the
// workers to exit.
type Pool[T, R any] interface {
	// Ordered delivers results in submission order, blocking on the
	// next-in-order result even when later ones finish first.
	Ordered(fn func(T) (R, error), tasks iter.Seq[T], chunkSize int) <-chan Result[R]

	// Unordered delivers results in completion order.
	Unordered(fn func(T) (R, error), tasks iter.Seq[T], chunkSize int) <-chan Result[R]

	// Close stops the pool. Workers finish the task they are on and exit,
	// undelivered results are dropped.
	Close()

	// Join blocks until all workers have exited.
	Join() error

	// Workers returns the number of workers in the pool.
	Workers() int
}

// WorkerPool implements Pool with one goroutine per worker. Tasks are
// dispatched to the workers in groups of chunkSize to cut down on channel
// traffic when the task function is cheap.
type WorkerPool[T, R any] struct {
	workers int
	init    func()
	ctx     context.Context
	cancel  context.CancelFunc
	g       *errgroup.Group
}

// NewWorkerPool returns a pool of the given size. If init is not nil it
// runs once in every worker before the worker picks up tasks. workers must
// be at least 1.
func NewWorkerPool[T, R any](workers int, init func()) *WorkerPool[T, R] {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	return &WorkerPool[T, R]{
		workers: workers,
		init:    init,
		ctx:     ctx,
		cancel:  cancel,
		g:       g,
	}
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool[T, R]) Workers() int { return p.workers }

// Ordered runs fn over tasks and delivers results in submission order.
func (p *WorkerPool[T, R]) Ordered(fn func(T) (R, error), tasks iter.Seq[T], chunkSize int) <-chan Result[R] {
	return p.run(fn, tasks, chunkSize, true)
}

// Unordered runs fn over tasks and delivers results as they complete.
func (p *WorkerPool[T, R]) Unordered(fn func(T) (R, error), tasks iter.Seq[T], chunkSize int) <-chan Result[R] {
	return p.run(fn, tasks, chunkSize, false)
}

// Close stops the pool and drops undelivered results.
func (p *WorkerPool[T, R]) Close() {
	p.cancel()
}

// Join blocks until all workers have exited. When the pool was closed
// mid-batch it returns the cancellation error of the abandoned workers.
func (p *WorkerPool[T, R]) Join() error {
	return p.g.Wait()
}

// chunk is one dispatch unit, chunkSize consecutive tasks with the
// submission index of the first one.
type chunk[T any] struct {
	base  int
	items []T
}

func (p *WorkerPool[T, R]) run(fn func(T) (R, error), tasks iter.Seq[T], chunkSize int, ordered bool) <-chan Result[R] {
	if chunkSize < 1 {
		chunkSize = 1
	}
	jobs := make(chan chunk[T])
	results := make(chan Result[R])

	// Feed the workers in chunks, stop when the pool is closed
	go func() {
		defer close(jobs)
		var (
			buf  []T
			next int
		)
		flush := func() bool {
			if len(buf) == 0 {
				return true
			}
			c := chunk[T]{base: next - len(buf), items: buf}
			select {
			case jobs <- c:
				buf = nil
				return true
			case <-p.ctx.Done():
				return false
			}
		}
		for t := range tasks {
			buf = append(buf, t)
			next++
			if len(buf) == chunkSize {
				if !flush() {
					return
				}
			}
		}
		flush()
	}()

	// Start the workers
	for i := 0; i < p.workers; i++ {
		worker := i
		p.g.Go(func() error {
			log := Log.WithField("worker", worker)
			if p.init != nil {
				p.init()
			}
			log.Debug("worker started")
			defer log.Debug("worker stopped")
			for c := range jobs {
				for j, t := range c.items {
					v, err := fn(t)
					select {
					case results <- Result[R]{Index: c.base + j, Value: v, Err: err}:
					case <-p.ctx.Done():
						return p.ctx.Err()
					}
				}
			}
			return nil
		})
	}

	// Close the result stream once all workers are done
	go func() {
		p.g.Wait()
		close(results)
	}()

	if !ordered {
		return results
	}

	// Buffer completion-ordered results and release them in submission order
	out := make(chan Result[R])
	go func() {
		defer close(out)
		pending := make(map[int]Result[R])
		next := 0
		for r := range results {
			pending[r.Index] = r
			for {
				buffered, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				select {
				case out <- buffered:
				case <-p.ctx.Done():
					return
				}
				next++
			}
		}
	}()
	return out
}
