package ptrack

import (
	"fmt"
	"iter"
)

// TaskSource is a stream of tasks together with the number of tasks in it.
// The total only drives the progress display, consumption always runs until
// the stream is exhausted.
type TaskSource[T any] struct {
	items iter.Seq[T]
	total int
}

// Tasks returns a source over a slice, the total is the slice length.
func Tasks[T any](tasks []T) TaskSource[T] {
	return TaskSource[T]{
		items: func(yield func(T) bool) {
			for _, t := range tasks {
				if !yield(t) {
					return
				}
			}
		},
		total: len(tasks),
	}
}

// TaskSeq returns a source over a sequence that doesn't carry its own
// length, such as values produced on the fly. A total of 0 means the total
// is unknown.
func TaskSeq[T any](tasks iter.Seq[T], total int) TaskSource[T] {
	return TaskSource[T]{items: tasks, total: total}
}

// validate reports malformed sources. Every driver calls this before
// starting a batch.
func (s TaskSource[T]) validate() error {
	if s.items == nil {
		return InvalidArgument{Msg: "tasks must be a slice or a sequence with a task count"}
	}
	if s.total < 0 {
		return InvalidArgument{Msg: fmt.Sprintf("task count must not be negative, got %d", s.total)}
	}
	return nil
}
