// Package profiler holds a lightweight timing helper for instrumenting
// batch runs.
package profiler

import "time"

// Timer measures elapsed wall time.
type Timer struct {
	start time.Time
}

func Start() Timer {
	return Timer{start: time.Now()}
}

func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// PerItem averages the elapsed time over n items, guarding n == 0.
func (t Timer) PerItem(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return t.Elapsed() / time.Duration(n)
}
