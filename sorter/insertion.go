package sorter

import "github.com/cockroachdb/errors"

// InsertionSort grows a sorted prefix, shifting each new element left past
// all strictly greater predecessors. It is stable. Every insertion depends on
// the previous one, so there is no parallel variant.
type InsertionSort[T any] struct{}

var _ Sorter[int] = (*InsertionSort[int])(nil)

func NewInsertionSort[T any]() *InsertionSort[T] { return &InsertionSort[T]{} }

func (*InsertionSort[T]) Name() string { return Insertion }

func (*InsertionSort[T]) Sort(data []T, cmp Ordering[T], opts ...Option) error {
	return invoke(cmp, opts, func(s *session[T]) error {
		insertionSort(s, data)
		return nil
	})
}

func (*InsertionSort[T]) SortRange(data []T, start, count int, cmp Ordering[T], opts ...Option) error {
	return sortRange(data, start, count, cmp, opts, func(s *session[T], part []T) error {
		insertionSort(s, part)
		return nil
	})
}

func (is *InsertionSort[T]) ParallelSort(_ []T, _ Ordering[T], opts ...Option) error {
	return reject(opts, errors.Wrapf(ErrUnsupported, "%s sort has no parallel variant", is.Name()))
}

func insertionSort[T any](s *session[T], data []T) {
	for i := 1; i < len(data); i++ {
		key := data[i]
		j := i - 1
		for j >= 0 && s.compare(data[j], key) > 0 {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = key
		s.moved(i - 1 - j)
	}
}
