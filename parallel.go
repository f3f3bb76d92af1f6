package ptrack

import (
	"fmt"
	"io"
)

// ParallelOptions configure the parallel driver. The zero value keeps the
// submission order, dispatches one task at a time and draws a default bar.
type ParallelOptions struct {
	// Width is the maximum progress bar width. Default: 50.
	Width int

	// Writer receives the progress output. Default: os.Stdout.
	Writer io.Writer

	// ChunkSize is the number of tasks grouped per dispatch to a worker.
	// Default: 1.
	ChunkSize int

	// Unordered delivers results in completion order instead of submission
	// order. Every task still produces exactly one result.
	Unordered bool

	// SkipFirst excludes the first round of in-flight chunks from the rate
	// and ETA estimate, since worker startup cost skews early timing.
	SkipFirst bool

	// Initializer runs once in every worker before it picks up tasks,
	// receiving InitArgs.
	Initializer func(args ...interface{})

	// InitArgs are passed to Initializer and must not be set without one.
	InitArgs []interface{}
}

// TrackParallel applies fn to every task on a pool of workers while showing
// a progress bar. Results are returned in submission order unless
// opt.Unordered is set. The first failing task aborts the batch; the pool
// is shut down and the failure returned as a WorkerFailure.
func TrackParallel[T, R any](fn func(T) (R, error), tasks TaskSource[T], workers int, opt ParallelOptions) ([]R, error) {
	if workers < 1 {
		return nil, InvalidArgument{Msg: fmt.Sprintf("worker count must be positive, got %d", workers)}
	}
	if opt.InitArgs != nil && opt.Initializer == nil {
		return nil, InvalidArgument{Msg: "init args given without an initializer"}
	}
	var init func()
	if opt.Initializer != nil {
		init = func() { opt.Initializer(opt.InitArgs...) }
	}
	return TrackParallelPool(NewWorkerPool[T, R](workers, init), fn, tasks, opt)
}

// TrackParallelPool is TrackParallel over a caller-provided pool. The pool
// is closed and joined before the call returns, whether the batch succeeds
// or fails.
func TrackParallelPool[T, R any](pool Pool[T, R], fn func(T) (R, error), tasks TaskSource[T], opt ParallelOptions) ([]R, error) {
	if err := tasks.validate(); err != nil {
		return nil, err
	}
	chunkSize := opt.ChunkSize
	if chunkSize < 1 {
		chunkSize = 1
	}

	total := tasks.total
	warmup := 0
	if opt.SkipFirst {
		// The first full round of in-flight chunks doesn't count towards
		// the displayed total or the timing baseline. With uneven task
		// durations and Unordered set, the round boundary is approximate.
		warmup = pool.Workers() * chunkSize
		total -= warmup
	}
	bar := NewProgressBar(total, BarOptions{
		Width:    opt.Width,
		Writer:   opt.Writer,
		Deferred: opt.SkipFirst,
	})

	var ch <-chan Result[R]
	if opt.Unordered {
		ch = pool.Unordered(fn, tasks.items, chunkSize)
	} else {
		ch = pool.Ordered(fn, tasks.items, chunkSize)
	}

	var (
		results  []R
		failure  error
		received int
	)
	for r := range ch {
		if r.Err != nil {
			failure = WorkerFailure{Index: r.Index, Err: r.Err}
			break
		}
		results = append(results, r.Value)
		received++
		if opt.SkipFirst {
			if received < warmup {
				continue
			}
			if received == warmup {
				bar.Start()
				bar.Increment()
				continue
			}
		}
		bar.Increment()
	}
	if failure != nil {
		pool.Close()
		for range ch {
		}
		pool.Join()
		return nil, failure
	}
	bar.Finish()
	pool.Close()
	if err := pool.Join(); err != nil {
		return nil, err
	}
	return results, nil
}
