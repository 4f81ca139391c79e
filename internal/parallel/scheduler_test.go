package parallel

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewDefaultsToNumCPU(t *testing.T) {
	t.Parallel()
	if got := New(0).Workers(); got != runtime.NumCPU() {
		t.Errorf("New(0).Workers() = %d, want %d", got, runtime.NumCPU())
	}
	if got := New(3).Workers(); got != 3 {
		t.Errorf("New(3).Workers() = %d, want 3", got)
	}
}

func TestDefaultIsShared(t *testing.T) {
	t.Parallel()
	if Default() != Default() {
		t.Error("Default() should return the same scheduler on every call")
	}
}

func TestRunOne(t *testing.T) {
	t.Parallel()
	s := New(2)

	t.Run("returns nil on success", func(t *testing.T) {
		ran := false
		if err := s.RunOne(context.Background(), func() error { ran = true; return nil }); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ran {
			t.Error("task did not run")
		}
	})

	t.Run("propagates task error", func(t *testing.T) {
		want := errors.New("leaf failed")
		if err := s.RunOne(context.Background(), func() error { return want }); !errors.Is(err, want) {
			t.Errorf("got %v, want %v", err, want)
		}
	})

	t.Run("converts panic to PanicError", func(t *testing.T) {
		err := s.RunOne(context.Background(), func() error { panic("boom") })
		var pe *PanicError
		if !errors.As(err, &pe) {
			t.Fatalf("expected *PanicError, got %T: %v", err, err)
		}
		if pe.Value != "boom" {
			t.Errorf("panic value = %v, want boom", pe.Value)
		}
		if !strings.Contains(err.Error(), "boom") {
			t.Errorf("error message should mention the panic value: %v", err)
		}
	})

	t.Run("panic with error value unwraps", func(t *testing.T) {
		cause := errors.New("index out of range")
		err := s.RunOne(context.Background(), func() error { panic(cause) })
		if !errors.Is(err, cause) {
			t.Errorf("errors.Is should find the panic value, got %v", err)
		}
	})
}

func TestRunAll(t *testing.T) {
	t.Parallel()
	s := New(4)

	t.Run("runs every task", func(t *testing.T) {
		results := make([]int, 100)
		tasks := make([]func() error, len(results))
		for i := range tasks {
			tasks[i] = func() error { results[i] = i * i; return nil }
		}
		if err := s.RunAll(context.Background(), tasks); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, r := range results {
			if r != i*i {
				t.Errorf("results[%d] = %d, want %d", i, r, i*i)
			}
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		if err := s.RunAll(context.Background(), nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("returns the task failure", func(t *testing.T) {
		want := errors.New("chunk failed")
		tasks := []func() error{
			func() error { return nil },
			func() error { return want },
			func() error { return nil },
		}
		if err := s.RunAll(context.Background(), tasks); !errors.Is(err, want) {
			t.Errorf("got %v, want %v", err, want)
		}
	})

	t.Run("recovers panics", func(t *testing.T) {
		tasks := []func() error{func() error { var a []int; _ = a[3]; return nil }}
		var pe *PanicError
		if err := s.RunAll(context.Background(), tasks); !errors.As(err, &pe) {
			t.Errorf("expected *PanicError, got %v", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := s.RunAll(ctx, []func() error{func() error { return nil }})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, want context.Canceled", err)
		}
	})
}

func TestClosedScheduler(t *testing.T) {
	t.Parallel()
	s := New(1)
	s.Close()
	if err := s.RunOne(context.Background(), func() error { return nil }); !errors.Is(err, ErrSchedulerClosed) {
		t.Errorf("RunOne on closed scheduler: got %v", err)
	}
	if err := s.RunAll(context.Background(), []func() error{func() error { return nil }}); !errors.Is(err, ErrSchedulerClosed) {
		t.Errorf("RunAll on closed scheduler: got %v", err)
	}
}

// TestFork2InlineWhenSaturated verifies that a fork with no free slot runs
// both halves on the caller instead of blocking.
func TestFork2InlineWhenSaturated(t *testing.T) {
	t.Parallel()
	s := New(1)
	var order []string
	err := s.RunOne(context.Background(), func() error {
		return s.Fork2(
			func() error { order = append(order, "left"); return nil },
			func() error { order = append(order, "right"); return nil },
		)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "left" || order[1] != "right" {
		t.Errorf("inline order = %v, want [left right]", order)
	}
	stats := s.Stats()
	if stats.InlineForks != 1 || stats.AsyncForks != 0 {
		t.Errorf("stats = %+v, want 1 inline fork and no async fork", stats)
	}
}

func TestFork2AsyncWhenSlotFree(t *testing.T) {
	t.Parallel()
	s := New(2)
	var left, right atomic.Bool
	err := s.RunOne(context.Background(), func() error {
		return s.Fork2(
			func() error { left.Store(true); return nil },
			func() error { right.Store(true); return nil },
		)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !left.Load() || !right.Load() {
		t.Error("both halves should have run")
	}
	if got := s.Stats().AsyncForks; got != 1 {
		t.Errorf("AsyncForks = %d, want 1", got)
	}
}

func TestFork2Errors(t *testing.T) {
	t.Parallel()
	for _, workers := range []int{1, 2} {
		s := New(workers)
		want := errors.New("right failed")
		err := s.RunOne(context.Background(), func() error {
			return s.Fork2(func() error { return nil }, func() error { return want })
		})
		if !errors.Is(err, want) {
			t.Errorf("workers=%d: got %v, want %v", workers, err, want)
		}

		err = s.RunOne(context.Background(), func() error {
			return s.Fork2(func() error { panic("left") }, func() error { return nil })
		})
		var pe *PanicError
		if !errors.As(err, &pe) {
			t.Errorf("workers=%d: expected *PanicError, got %v", workers, err)
		}
	}
}

// TestFork2DeepRecursionNoDeadlock forks a full binary tree far wider than
// the slot count and checks it completes with the right leaf count.
func TestFork2DeepRecursionNoDeadlock(t *testing.T) {
	t.Parallel()
	s := New(2)

	var count func(depth int) (int, error)
	count = func(depth int) (int, error) {
		if depth == 0 {
			return 1, nil
		}
		var l, r int
		err := s.Fork2(
			func() (err error) { l, err = count(depth - 1); return },
			func() (err error) { r, err = count(depth - 1); return },
		)
		return l + r, err
	}

	done := make(chan int, 1)
	go func() {
		var leaves int
		_ = s.RunOne(context.Background(), func() (err error) {
			leaves, err = count(12)
			return
		})
		done <- leaves
	}()

	select {
	case leaves := <-done:
		if leaves != 1<<12 {
			t.Errorf("leaves = %d, want %d", leaves, 1<<12)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("DEADLOCK: fork/join tree did not complete")
	}
}
