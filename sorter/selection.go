package sorter

import "github.com/cockroachdb/errors"

// SelectionSort swaps the minimum of the unsorted suffix into place on every
// pass. The long-distance swap makes it unstable.
type SelectionSort[T any] struct{}

var _ Sorter[int] = (*SelectionSort[int])(nil)

func NewSelectionSort[T any]() *SelectionSort[T] { return &SelectionSort[T]{} }

func (*SelectionSort[T]) Name() string { return Selection }

func (*SelectionSort[T]) Sort(data []T, cmp Ordering[T], opts ...Option) error {
	return invoke(cmp, opts, func(s *session[T]) error {
		selectionSort(s, data)
		return nil
	})
}

func (*SelectionSort[T]) SortRange(data []T, start, count int, cmp Ordering[T], opts ...Option) error {
	return sortRange(data, start, count, cmp, opts, func(s *session[T], part []T) error {
		selectionSort(s, part)
		return nil
	})
}

func (ss *SelectionSort[T]) ParallelSort(_ []T, _ Ordering[T], opts ...Option) error {
	return reject(opts, errors.Wrapf(ErrUnsupported, "%s sort has no parallel variant", ss.Name()))
}

func selectionSort[T any](s *session[T], data []T) {
	for i := 0; i < len(data)-1; i++ {
		least := i
		for j := i + 1; j < len(data); j++ {
			if s.compare(data[j], data[least]) < 0 {
				least = j
			}
		}
		if least != i {
			s.swap(data, i, least)
		}
	}
}
