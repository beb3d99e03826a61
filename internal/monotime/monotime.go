// Package monotime provides cheap monotonic timestamps for trial timing.
//
// time.Now() constructs a full time.Time with wall and monotonic readings.
// The pipeline harness only needs elapsed durations, so it uses the
// runtime's internal monotonic clock directly: a single int64 read, with no
// struct construction.
package monotime

import (
	"time"
	_ "unsafe" // Required for go:linkname
)

// nanotime returns the current monotonic time in nanoseconds.
//
// Note: This uses go:linkname to access an internal runtime function.
// It may break in future Go versions, though it has been stable.
//
//go:linkname nanotime runtime.nanotime
func nanotime() int64

// Now returns the current monotonic time in nanoseconds.
// Only differences between two readings are meaningful.
func Now() int64 {
	return nanotime()
}

// Since returns the duration elapsed since a reading taken with Now.
func Since(start int64) time.Duration {
	return time.Duration(nanotime() - start)
}

// Stopwatch measures elapsed wall-clock time for one benchmark trial.
type Stopwatch struct {
	start int64
}

// Start returns a running stopwatch.
func Start() Stopwatch {
	return Stopwatch{start: nanotime()}
}

// Elapsed returns the time since the stopwatch was started or last reset.
func (s Stopwatch) Elapsed() time.Duration {
	return time.Duration(nanotime() - s.start)
}

// Reset restarts the stopwatch from now.
func (s *Stopwatch) Reset() {
	s.start = nanotime()
}
