package sorter

import (
	"sync/atomic"
	"time"
)

// Metrics is the record produced by one instrumented sort call.
//
// Swaps counts element exchanges; for merge sort and insertion sort it counts
// element moves (write-backs from the merge buffer, shifts past a larger
// predecessor).
type Metrics struct {
	Elapsed     time.Duration
	Comparisons int64
	Swaps       int64
}

type counters struct {
	comparisons atomic.Int64
	swaps       atomic.Int64
}

// session carries the per-call state shared by the recursive engines.
type session[T any] struct {
	order Ordering[T]
	stats *counters // nil unless metrics were requested
	cfg   config
	pool  *pool // set for parallel calls only
	forks atomic.Int64
}

func newSession[T any](order Ordering[T], cfg config) *session[T] {
	s := &session[T]{order: order, cfg: cfg}
	if cfg.metrics != nil {
		s.stats = &counters{}
	}
	return s
}

func (s *session[T]) compare(a, b T) int {
	if s.stats != nil {
		s.stats.comparisons.Add(1)
	}
	return s.order(a, b)
}

func (s *session[T]) swap(data []T, i, j int) {
	data[i], data[j] = data[j], data[i]
	if s.stats != nil {
		s.stats.swaps.Add(1)
	}
}

func (s *session[T]) moved(n int) {
	if s.stats != nil {
		s.stats.swaps.Add(int64(n))
	}
}

// finish writes the metrics record, if one was requested.
func (s *session[T]) finish(start time.Time) {
	m := s.cfg.metrics
	if m == nil {
		return
	}
	*m = Metrics{
		Elapsed:     time.Since(start),
		Comparisons: s.stats.comparisons.Load(),
		Swaps:       s.stats.swaps.Load(),
	}
}

// fork runs a fork-join pair through the session's pool.
func (s *session[T]) fork(left, right func() error) error {
	forked, err := s.pool.fork(left, right)
	if forked {
		s.forks.Add(1)
	}
	return err
}

// parallel prepares the worker pool for body and logs a dispatch summary.
func (s *session[T]) parallel(name string, n int, body func() error) error {
	s.pool = newPool(s.cfg.workers)
	err := body()
	s.cfg.logger.V(debugV).Info("parallel sort finished",
		"algorithm", name, "size", n, "workers", s.cfg.workers, "forks", s.forks.Load(), "error", err)
	return err
}
