// Package parallel provides the fork/join scheduler shared by every
// reduction in the process.
//
// A Scheduler owns a fixed number of worker slots, sized to the hardware
// parallelism by default. Forked work runs on a new goroutine only when a
// slot is free; otherwise the forking goroutine runs it inline, so a task
// that joins on its children is always busy with one of them instead of
// parking on an idle slot. Runnable goroutines are balanced across OS
// threads by the Go runtime's work-stealing scheduler.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Scheduler is a bounded fork/join executor. It is safe for concurrent use
// by multiple callers, which then share its worker slots.
//
// RunOne and RunAll are entry points for code outside the scheduler; tasks
// already running on it fork with Fork2 instead.
type Scheduler struct {
	workers int
	slots   *semaphore.Weighted
	closed  atomic.Bool

	asyncForks  atomic.Int64
	inlineForks atomic.Int64
	roots       atomic.Int64
}

// Stats is a snapshot of scheduler activity counters.
type Stats struct {
	Workers     int
	AsyncForks  int64
	InlineForks int64
	Roots       int64
}

// New creates a Scheduler with the given number of worker slots.
// A non-positive value selects runtime.NumCPU().
func New(workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scheduler{
		workers: workers,
		slots:   semaphore.NewWeighted(int64(workers)),
	}
}

var defaultScheduler = sync.OnceValue(func() *Scheduler { return New(0) })

// Default returns the process-wide scheduler, creating it on first use.
func Default() *Scheduler {
	return defaultScheduler()
}

// Workers returns the number of worker slots.
func (s *Scheduler) Workers() int { return s.workers }

// Stats returns the current activity counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Workers:     s.workers,
		AsyncForks:  s.asyncForks.Load(),
		InlineForks: s.inlineForks.Load(),
		Roots:       s.roots.Load(),
	}
}

// Close shuts the scheduler down. Work already started runs to completion;
// later calls to RunOne or RunAll return ErrSchedulerClosed.
func (s *Scheduler) Close() {
	s.closed.Store(true)
}

// RunOne executes fn on a worker slot and blocks until it, and everything
// it forked, has finished. A panic inside fn is returned as a *PanicError.
func (s *Scheduler) RunOne(ctx context.Context, fn func() error) error {
	if s.closed.Load() {
		return ErrSchedulerClosed
	}
	if err := s.slots.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.slots.Release(1)
	s.roots.Add(1)
	return call(fn)
}

// RunAll executes independent tasks concurrently, each on its own worker
// slot, and blocks until all of them have finished. The first error is
// returned; tasks not yet started when it occurs are skipped.
func (s *Scheduler) RunAll(ctx context.Context, fns []func() error) error {
	if s.closed.Load() {
		return ErrSchedulerClosed
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		if err := s.slots.Acquire(ctx, 1); err != nil {
			// errgroup's context is canceled only after a task failed, and
			// Wait reports that failure rather than the acquire error.
			g.Go(func() error { return err })
			break
		}
		s.roots.Add(1)
		g.Go(func() error {
			defer s.slots.Release(1)
			return call(fn)
		})
	}
	return g.Wait()
}

// Fork2 runs left and right concurrently and returns once both have
// finished. right is handed to a new goroutine when a worker slot is free;
// otherwise both run inline on the caller, left first. left always runs on
// the caller. If either side fails, Fork2 returns the first failure
// observed.
func (s *Scheduler) Fork2(left, right func() error) error {
	if !s.slots.TryAcquire(1) {
		s.inlineForks.Add(1)
		if err := call(left); err != nil {
			return err
		}
		return call(right)
	}
	s.asyncForks.Add(1)

	var ec ErrorCollector
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer s.slots.Release(1)
		ec.SetError(call(right))
	}()
	ec.SetError(call(left))
	wg.Wait()
	return ec.Err()
}
