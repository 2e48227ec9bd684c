package sorter

// MergeSort is a stable top-down merge sort.
//
// The parallel variant forks both halves at every level down to single
// elements; there is no size cutoff. Forked halves only get their own
// goroutine while a worker slot is free, otherwise they run inline.
type MergeSort[T any] struct{}

var _ Sorter[int] = (*MergeSort[int])(nil)

// NewMergeSort returns a merge sorter.
func NewMergeSort[T any]() *MergeSort[T] {
	return &MergeSort[T]{}
}

func (*MergeSort[T]) Name() string { return Merge }

func (*MergeSort[T]) Sort(data []T, cmp Ordering[T], opts ...Option) error {
	return invoke(cmp, opts, func(s *session[T]) error {
		mergeSort(s, data, make([]T, len(data)))
		return nil
	})
}

func (*MergeSort[T]) SortRange(data []T, start, count int, cmp Ordering[T], opts ...Option) error {
	return sortRange(data, start, count, cmp, opts, func(s *session[T], part []T) error {
		mergeSort(s, part, make([]T, len(part)))
		return nil
	})
}

func (m *MergeSort[T]) ParallelSort(data []T, cmp Ordering[T], opts ...Option) error {
	return invoke(cmp, opts, func(s *session[T]) error {
		return s.parallel(m.Name(), len(data), func() error {
			return parallelMergeSort(s, data, make([]T, len(data)))
		})
	})
}

// mergeSort sorts data using buf, which has the same length, as merge space.
// Each merge only touches the part of buf aligned with its own range, so
// disjoint ranges can be merged concurrently.
func mergeSort[T any](s *session[T], data, buf []T) {
	if len(data) <= 1 {
		return
	}
	mid := len(data) / 2
	mergeSort(s, data[:mid], buf[:mid])
	mergeSort(s, data[mid:], buf[mid:])
	merge(s, data, mid, buf)
}

func parallelMergeSort[T any](s *session[T], data, buf []T) error {
	if len(data) <= 1 {
		return nil
	}
	mid := len(data) / 2
	err := s.fork(
		func() error { return parallelMergeSort(s, data[:mid], buf[:mid]) },
		func() error { return parallelMergeSort(s, data[mid:], buf[mid:]) },
	)
	if err != nil {
		return err
	}
	merge(s, data, mid, buf)
	return nil
}

// merge combines the sorted runs data[:mid] and data[mid:]. Ties take the
// left element first, which keeps the sort stable.
func merge[T any](s *session[T], data []T, mid int, buf []T) {
	out := buf[:0]
	i, j := 0, mid
	for i < mid && j < len(data) {
		if s.compare(data[i], data[j]) <= 0 {
			out = append(out, data[i])
			i++
		} else {
			out = append(out, data[j])
			j++
		}
	}
	out = append(out, data[i:mid]...)
	out = append(out, data[j:]...)

	copy(data, out)
	s.moved(len(out))
}
