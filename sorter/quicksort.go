package sorter

import "github.com/cockroachdb/errors"

// QuickSort is a Lomuto partition quicksort that always pivots on the last
// element of the range. It is not stable, and already sorted or reverse
// sorted input is its quadratic worst case.
type QuickSort[T any] struct {
	// Threshold is the parallel cutover: after a partition, the two sides are
	// forked only when their combined size exceeds Threshold. WithThreshold
	// overrides it per call.
	Threshold int
}

var _ Sorter[int] = (*QuickSort[int])(nil)

// NewQuickSort returns a quicksort with DefaultParallelThreshold.
func NewQuickSort[T any]() *QuickSort[T] {
	return &QuickSort[T]{Threshold: DefaultParallelThreshold}
}

func (*QuickSort[T]) Name() string { return Quick }

func (*QuickSort[T]) Sort(data []T, cmp Ordering[T], opts ...Option) error {
	return invoke(cmp, opts, func(s *session[T]) error {
		quickSort(s, data, 0, len(data)-1)
		return nil
	})
}

func (*QuickSort[T]) SortRange(data []T, start, count int, cmp Ordering[T], opts ...Option) error {
	return sortRange(data, start, count, cmp, opts, func(s *session[T], part []T) error {
		quickSort(s, part, 0, len(part)-1)
		return nil
	})
}

func (q *QuickSort[T]) ParallelSort(data []T, cmp Ordering[T], opts ...Option) error {
	threshold := q.Threshold
	if c := newConfig(opts); c.hasThresh {
		threshold = c.threshold
	}
	if threshold < 0 {
		return reject(opts, errors.Wrapf(ErrInvalidArgument, "parallel threshold %d is negative", threshold))
	}
	return invoke(cmp, opts, func(s *session[T]) error {
		return s.parallel(q.Name(), len(data), func() error {
			return parallelQuickSort(s, data, 0, len(data)-1, threshold)
		})
	})
}

// quickSort sorts data[lo..hi] inclusive. It recurses into the smaller side
// and loops on the larger one, so stack depth stays logarithmic even when
// the partitions are maximally unbalanced.
func quickSort[T any](s *session[T], data []T, lo, hi int) {
	for lo < hi {
		p := partition(s, data, lo, hi)
		if p-lo < hi-p {
			quickSort(s, data, lo, p-1)
			lo = p + 1
		} else {
			quickSort(s, data, p+1, hi)
			hi = p - 1
		}
	}
}

func parallelQuickSort[T any](s *session[T], data []T, lo, hi, threshold int) error {
	if lo >= hi {
		return nil
	}
	p := partition(s, data, lo, hi)
	if (p-lo)+(hi-p) <= threshold {
		quickSort(s, data, lo, p-1)
		quickSort(s, data, p+1, hi)
		return nil
	}
	return s.fork(
		func() error { return parallelQuickSort(s, data, lo, p-1, threshold) },
		func() error { return parallelQuickSort(s, data, p+1, hi, threshold) },
	)
}

// partition places data[hi] at its final position and returns that index.
// Elements strictly less than the pivot end up to its left.
func partition[T any](s *session[T], data []T, lo, hi int) int {
	pivot := data[hi]
	i := lo - 1
	for j := lo; j < hi; j++ {
		if s.compare(data[j], pivot) < 0 {
			i++
			s.swap(data, i, j)
		}
	}
	s.swap(data, i+1, hi)
	return i + 1
}
