package orchestration

import (
	"context"
	"io"
	"sync"
	"time"
)

// Reducer is one way of computing the reciprocal sum of an input.
type Reducer interface {
	// Name identifies the strategy in reports (e.g., "chunked").
	Name() string
	// Reduce returns the sum of 1/x over input.
	Reduce(ctx context.Context, input []float64) (float64, error)
}

// StrategyResult encapsulates the outcome of a single strategy run.
// It is the shared domain type between orchestration and presentation.
type StrategyResult struct {
	// Name is the strategy that produced the result.
	Name string
	// Value is the computed sum. It is meaningless if Err is set.
	Value float64
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err contains any error that aborted the run.
	Err error
	// Mismatch is set by AnalyzeResults when Value disagrees with the
	// reference result.
	Mismatch bool
}

// PresentationOptions configures how results are analyzed and presented.
type PresentationOptions struct {
	// Size is the input length.
	Size int
	// Epsilon is the relative tolerance used to compare results.
	Epsilon float64
	Verbose bool
}

// ProgressUpdate is sent each time a strategy finishes.
type ProgressUpdate struct {
	Index    int
	Name     string
	Duration time.Duration
	Err      error
}

// ProgressReporter displays run progress. DisplayProgress is started on its
// own goroutine, must call wg.Done when it returns, and must drain updates
// until the channel is closed.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, numStrategies int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, updates <-chan ProgressUpdate, numStrategies int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, numStrategies int, out io.Writer) {
	f(wg, updates, numStrategies, out)
}

// NullProgressReporter drains the updates without displaying anything.
// Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(updates)
}

// ResultPresenter renders the outcome of a run.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per strategy.
	PresentComparisonTable(results []StrategyResult, opts PresentationOptions, out io.Writer)
	// PresentResult displays the final value.
	PresentResult(result StrategyResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// RunRecorder receives the outcome of every strategy run.
// metrics.ReductionCollector implements it.
type RunRecorder interface {
	ObserveRun(strategy string, d time.Duration, err error)
}
