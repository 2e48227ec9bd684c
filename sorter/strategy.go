package sorter

import "github.com/cockroachdb/errors"

// Strategy holds the sorter currently in use and forwards every call to it.
// SetSorter is not synchronized with in-flight sorts; callers that swap
// algorithms concurrently must serialize that themselves.
type Strategy[T any] struct {
	sorter Sorter[T]
}

var _ Sorter[int] = (*Strategy[int])(nil)

func NewStrategy[T any](s Sorter[T]) *Strategy[T] {
	return &Strategy[T]{sorter: s}
}

// SetSorter replaces the bound algorithm.
func (st *Strategy[T]) SetSorter(s Sorter[T]) { st.sorter = s }

// Sorter returns the bound algorithm, or nil.
func (st *Strategy[T]) Sorter() Sorter[T] { return st.sorter }

func (st *Strategy[T]) Name() string {
	if st.sorter == nil {
		return ""
	}
	return st.sorter.Name()
}

func (st *Strategy[T]) Sort(data []T, cmp Ordering[T], opts ...Option) error {
	if st.sorter == nil {
		return reject(opts, errNoSorter)
	}
	return st.sorter.Sort(data, cmp, opts...)
}

func (st *Strategy[T]) SortRange(data []T, start, count int, cmp Ordering[T], opts ...Option) error {
	if st.sorter == nil {
		return reject(opts, errNoSorter)
	}
	return st.sorter.SortRange(data, start, count, cmp, opts...)
}

func (st *Strategy[T]) ParallelSort(data []T, cmp Ordering[T], opts ...Option) error {
	if st.sorter == nil {
		return reject(opts, errNoSorter)
	}
	return st.sorter.ParallelSort(data, cmp, opts...)
}

var errNoSorter = errors.Wrap(ErrInvalidArgument, "strategy has no sorter")
