package ptrack

import "time"

// Timer measures the time elapsed since a fixed start instant.
type Timer struct {
	start time.Time
	now   func() time.Time
}

// StartTimer returns a running timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now(), now: time.Now}
}

// SinceStart returns the number of seconds since the timer was started.
func (t *Timer) SinceStart() float64 {
	return t.now().Sub(t.start).Seconds()
}
