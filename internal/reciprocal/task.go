package reciprocal

import (
	"github.com/agbru/recipsum/internal/chunk"
	"github.com/agbru/recipsum/internal/parallel"
)

// task holds what every node of one reduction tree shares: the read-only
// input, the split threshold, and where to fork and report. Nodes
// themselves are just ranges on the call stack.
type task struct {
	input    []float64
	maxLeaf  int
	sched    *parallel.Scheduler
	observer Observer
}

// compute returns the reciprocal sum over r. A range no longer than maxLeaf
// is summed directly; a longer one is halved, both halves are forked, and
// the result is left + right. Halves cover disjoint indices and each result
// is written once by its own goroutine before the join, so no locking is
// needed.
func (t *task) compute(r chunk.Range, depth int) (float64, error) {
	if r.Len() <= t.maxLeaf {
		sum := seqRange(t.input, r)
		t.observer.LeafComputed(r, depth)
		return sum, nil
	}

	t.observer.TaskSplit(r, depth)
	lr, rr := r.Split()
	var left, right float64
	err := t.sched.Fork2(
		func() (err error) {
			left, err = t.compute(lr, depth+1)
			return err
		},
		func() (err error) {
			right, err = t.compute(rr, depth+1)
			return err
		},
	)
	if err != nil {
		return 0, err
	}
	return left + right, nil
}
