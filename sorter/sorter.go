package sorter

import "time"

// Sorter is the contract implemented by every algorithm. data is sorted in
// place and is not retained after the call returns. A nil cmp selects the
// natural order of T.
type Sorter[T any] interface {
	// Name identifies the algorithm, e.g. "merge".
	Name() string

	// Sort sorts all of data.
	Sort(data []T, cmp Ordering[T], opts ...Option) error

	// SortRange sorts data[start:start+count] and leaves every other element
	// where it was.
	SortRange(data []T, start, count int, cmp Ordering[T], opts ...Option) error

	// ParallelSort sorts all of data using concurrent subdivision. Algorithms
	// without a parallel variant return ErrUnsupported.
	ParallelSort(data []T, cmp Ordering[T], opts ...Option) error
}

// invoke runs body in a fresh session. Validation that must happen before the
// first mutation is the caller's job; invoke only resolves the ordering,
// resets the metrics record and recovers ordering panics.
func invoke[T any](cmp Ordering[T], opts []Option, body func(s *session[T]) error) (err error) {
	cfg := newConfig(opts)
	if cfg.metrics != nil {
		*cfg.metrics = Metrics{}
	}
	order, err := resolve(cmp)
	if err != nil {
		return err
	}

	s := newSession(order, cfg)
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
		s.finish(start)
	}()
	return body(s)
}

// sortRange validates the range and runs sortFn over the sub-slice.
func sortRange[T any](data []T, start, count int, cmp Ordering[T], opts []Option, sortFn func(s *session[T], part []T) error) error {
	if err := checkRange(len(data), start, count); err != nil {
		return reject(opts, err)
	}
	return invoke(cmp, opts, func(s *session[T]) error {
		return sortFn(s, data[start:start+count])
	})
}

// reject fails a call before it starts. A requested metrics record is still
// reset so it never carries a previous call's numbers.
func reject(opts []Option, err error) error {
	if m := newConfig(opts).metrics; m != nil {
		*m = Metrics{}
	}
	return err
}
