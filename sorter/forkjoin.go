package sorter

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// pool bounds the number of forked branches running at once. The forking
// goroutine counts as one worker, so a pool of n workers hands out n-1 slots.
// A branch that finds no free slot runs on the forking goroutine.
type pool struct {
	slots *semaphore.Weighted
}

func newPool(workers int) *pool {
	return &pool{slots: semaphore.NewWeighted(int64(max(workers-1, 0)))}
}

// fork runs left and right and returns once both have finished. A failure in
// one branch does not stop the other; the first error is returned with the
// second attached.
func (p *pool) fork(left, right func() error) (forked bool, err error) {
	var g errgroup.Group
	if p.slots.TryAcquire(1) {
		forked = true
		g.Go(func() error {
			defer p.slots.Release(1)
			return guard(left)
		})
	}

	var lerr error
	if !forked {
		lerr = guard(left)
	}
	rerr := guard(right)
	if forked {
		lerr = g.Wait()
	}
	return forked, errors.CombineErrors(lerr, rerr)
}

// guard runs fn, turning a panic into an ErrOrderingPanic error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return fn()
}
