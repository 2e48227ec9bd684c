package sorter

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Algorithm names accepted by ByName.
const (
	Bubble    = "bubble"
	Insertion = "insertion"
	Selection = "selection"
	Merge     = "merge"
	Quick     = "quick"
)

var algorithms = []string{Bubble, Insertion, Selection, Merge, Quick}

// Algorithms lists the registered algorithm names.
func Algorithms() []string {
	return slices.Clone(algorithms)
}

// IsQuadratic reports whether name is one of the O(n²) baselines.
func IsQuadratic(name string) bool {
	return name == Bubble || name == Insertion || name == Selection
}

// ByName returns a new sorter for the named algorithm.
func ByName[T any](name string) (Sorter[T], error) {
	switch name {
	case Bubble:
		return NewBubbleSort[T](), nil
	case Insertion:
		return NewInsertionSort[T](), nil
	case Selection:
		return NewSelectionSort[T](), nil
	case Merge:
		return NewMergeSort[T](), nil
	case Quick:
		return NewQuickSort[T](), nil
	}
	return nil, errors.Wrapf(ErrInvalidArgument, "unknown algorithm %q", name)
}
