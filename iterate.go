package ptrack

import "iter"

// TrackIter returns a sequence that passes tasks through unchanged while
// advancing a progress bar between one pull and the next. The first task is
// yielded before any update, each update happens when the caller comes back
// for the next task. The returned sequence is single-use, iterating it a
// second time panics. Stopping early leaves the progress line unterminated,
// like an aborted batch.
func TrackIter[T any](tasks TaskSource[T], opt TrackOptions) (iter.Seq[T], error) {
	if err := tasks.validate(); err != nil {
		return nil, err
	}
	bar := NewProgressBar(tasks.total, BarOptions{Width: opt.Width, Writer: opt.Writer})
	consumed := false
	return func(yield func(T) bool) {
		if consumed {
			panic("ptrack: tracked task sequence iterated more than once")
		}
		consumed = true
		for t := range tasks.items {
			if !yield(t) {
				return
			}
			bar.Increment()
		}
		bar.Finish()
	}, nil
}
