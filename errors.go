package ptrack

import "fmt"

// InvalidArgument is returned when a driver or the progress bar is given a
// malformed argument, like a non-positive update count or a nil task stream.
type InvalidArgument struct {
	Msg string
}

func (e InvalidArgument) Error() string { return e.Msg }

// WorkerFailure is returned by the parallel driver when the task function
// failed inside a worker. Index is the position of the failing task in
// submission order.
type WorkerFailure struct {
	Index int
	Err   error
}

func (e WorkerFailure) Error() string {
	return fmt.Sprintf("task %d failed in worker: %s", e.Index, e.Err)
}

func (e WorkerFailure) Unwrap() error { return e.Err }
