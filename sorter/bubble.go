package sorter

import "github.com/cockroachdb/errors"

// BubbleSort is a stable adjacent-exchange sort. Each pass shrinks the
// unsorted prefix by one and the sort stops after a pass without swaps.
type BubbleSort[T any] struct{}

var _ Sorter[int] = (*BubbleSort[int])(nil)

func NewBubbleSort[T any]() *BubbleSort[T] { return &BubbleSort[T]{} }

func (*BubbleSort[T]) Name() string { return Bubble }

func (*BubbleSort[T]) Sort(data []T, cmp Ordering[T], opts ...Option) error {
	return invoke(cmp, opts, func(s *session[T]) error {
		bubbleSort(s, data)
		return nil
	})
}

func (*BubbleSort[T]) SortRange(data []T, start, count int, cmp Ordering[T], opts ...Option) error {
	return sortRange(data, start, count, cmp, opts, func(s *session[T], part []T) error {
		bubbleSort(s, part)
		return nil
	})
}

func (b *BubbleSort[T]) ParallelSort(_ []T, _ Ordering[T], opts ...Option) error {
	return reject(opts, errors.Wrapf(ErrUnsupported, "%s sort has no parallel variant", b.Name()))
}

func bubbleSort[T any](s *session[T], data []T) {
	for n := len(data); n > 1; n-- {
		swapped := false
		for i := 1; i < n; i++ {
			if s.compare(data[i-1], data[i]) > 0 {
				s.swap(data, i-1, i)
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}
