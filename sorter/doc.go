// Package sorter provides a pluggable in-memory sorting framework.
//
// Every algorithm implements Sorter: whole-slice, sub-range and parallel
// sorting with an optional Ordering (nil means the natural order of T).
// Merge sort and quicksort run their parallel variants as fork-join
// recursion bounded by a worker slot pool; the quadratic algorithms
// (bubble, insertion, selection) have no parallel variant and return
// ErrUnsupported.
//
//	s := sorter.NewQuickSort[int]()
//	var m sorter.Metrics
//	if err := s.ParallelSort(data, nil, sorter.WithMetrics(&m)); err != nil {
//		return err
//	}
//
// A Strategy holds one Sorter and lets callers swap the algorithm at runtime.
package sorter
