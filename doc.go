/*
Package ptrack renders a textual progress bar for batches of tasks and
provides three drivers to advance it: Track applies a function to every task
in order, TrackParallel spreads the tasks over a pool of workers, and
TrackIter taps a task stream and advances the bar as the caller pulls from
it.

The bar itself is available as ProgressBar for embedding in custom loops.
All progress output goes to an injectable writer, os.Stdout by default.

See cmd/ptrack for a reference CLI built on the three drivers.
*/
package ptrack
