package parallel

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
)

// ErrSchedulerClosed is returned by every entry point of a closed Scheduler.
var ErrSchedulerClosed = errors.New("parallel: scheduler closed")

// ErrorCollector records the first non-nil error reported by any number of
// concurrent goroutines. Later errors are dropped. The zero value is ready
// to use.
type ErrorCollector struct {
	once sync.Once
	err  error
}

// SetError records err if it is the first non-nil error seen.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.once.Do(func() { c.err = err })
}

// Err returns the first recorded error, or nil.
// It must only be called after every SetError caller has finished.
func (c *ErrorCollector) Err() error {
	return c.err
}

// PanicError carries a panic recovered inside a task together with the
// stack of the goroutine that panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v\n%s", e.Value, e.Stack)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// call runs fn and converts a panic into a *PanicError.
func call(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &PanicError{Value: p, Stack: debug.Stack()}
		}
	}()
	return fn()
}
