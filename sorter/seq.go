package sorter

import (
	"iter"
	"slices"

	"github.com/cockroachdb/errors"
)

// SortSeq collects seq into a new slice, sorts it with s and returns it.
func SortSeq[T any](seq iter.Seq[T], s Sorter[T], cmp Ordering[T], opts ...Option) ([]T, error) {
	data, err := collect(seq, s, opts)
	if err != nil {
		return nil, err
	}
	if err := s.Sort(data, cmp, opts...); err != nil {
		return nil, err
	}
	return data, nil
}

// SortRangeSeq collects seq and sorts the elements in [start, start+count).
func SortRangeSeq[T any](seq iter.Seq[T], s Sorter[T], start, count int, cmp Ordering[T], opts ...Option) ([]T, error) {
	data, err := collect(seq, s, opts)
	if err != nil {
		return nil, err
	}
	if err := s.SortRange(data, start, count, cmp, opts...); err != nil {
		return nil, err
	}
	return data, nil
}

// ParallelSortSeq collects seq and sorts it with s.ParallelSort.
func ParallelSortSeq[T any](seq iter.Seq[T], s Sorter[T], cmp Ordering[T], opts ...Option) ([]T, error) {
	data, err := collect(seq, s, opts)
	if err != nil {
		return nil, err
	}
	if err := s.ParallelSort(data, cmp, opts...); err != nil {
		return nil, err
	}
	return data, nil
}

func collect[T any](seq iter.Seq[T], s Sorter[T], opts []Option) ([]T, error) {
	if seq == nil {
		return nil, reject(opts, errors.Wrap(ErrInvalidArgument, "nil sequence"))
	}
	if s == nil {
		return nil, reject(opts, errors.Wrap(ErrInvalidArgument, "nil sorter"))
	}
	return slices.Collect(seq), nil
}
