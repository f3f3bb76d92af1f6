package ptrack

import "io"

// TrackOptions configure the sequential and lazy drivers.
type TrackOptions struct {
	// Width is the maximum progress bar width. Default: 50.
	Width int

	// Writer receives the progress output. Default: os.Stdout.
	Writer io.Writer
}

// Track applies fn to every task in order while showing a progress bar, and
// returns the results in task order. An fn error aborts the batch and is
// returned as-is, leaving the current progress line unterminated.
func Track[T, R any](fn func(T) (R, error), tasks TaskSource[T], opt TrackOptions) ([]R, error) {
	if err := tasks.validate(); err != nil {
		return nil, err
	}
	bar := NewProgressBar(tasks.total, BarOptions{Width: opt.Width, Writer: opt.Writer})
	var results []R
	for t := range tasks.items {
		v, err := fn(t)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
		bar.Increment()
	}
	bar.Finish()
	return results, nil
}
