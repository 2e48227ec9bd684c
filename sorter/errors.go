package sorter

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidArgument reports an absent input: a nil sequence, a strategy
	// without a sorter, or a type that has no natural ordering.
	ErrInvalidArgument = errors.New("sorter: invalid argument")

	// ErrOutOfRange reports a start/count pair outside the collection.
	ErrOutOfRange = errors.New("sorter: out of range")

	// ErrUnsupported is returned by ParallelSort on algorithms without a
	// parallel variant. It never falls back to a sequential sort.
	ErrUnsupported = errors.New("sorter: algorithm unsupported")

	// ErrOrderingPanic wraps a panic raised by the ordering function.
	ErrOrderingPanic = errors.New("sorter: ordering panicked")
)

// checkRange validates a (start, count) range over a collection of length n.
// count == 0 is a no-op range for any start in [0, n].
func checkRange(n, start, count int) error {
	if start < 0 {
		return errors.Wrapf(ErrOutOfRange, "start %d is negative", start)
	}
	if count < 0 {
		return errors.Wrapf(ErrOutOfRange, "count %d is negative", count)
	}
	if count == 0 {
		if start > n {
			return errors.Wrapf(ErrOutOfRange, "start %d beyond length %d", start, n)
		}
		return nil
	}
	if start >= n {
		return errors.Wrapf(ErrOutOfRange, "start %d not below length %d", start, n)
	}
	if count > n-start {
		return errors.Wrapf(ErrOutOfRange, "count %d exceeds %d elements after start %d", count, n-start, start)
	}
	return nil
}

// recovered converts a recovered panic value into an ErrOrderingPanic error.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return errors.Wrapf(ErrOrderingPanic, "%v", err)
	}
	return errors.Wrapf(ErrOrderingPanic, "%v", r)
}
