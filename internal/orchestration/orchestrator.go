package orchestration

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/reciprocal"
)

// ProgressBufferMultiplier sizes the progress channel relative to the number
// of strategies so reducers never block on a slow display.
const ProgressBufferMultiplier = 2

// ExecuteStrategies runs every reducer concurrently on the same input and
// collects their results in reducer order.
//
// A failing reducer does not cancel the others: each outcome is recorded in
// its StrategyResult so the comparison table can show it.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - reducers: The strategies to run.
//   - input: The shared, read-only input.
//   - reporter: Progress display (NullProgressReporter in quiet mode).
//   - recorder: Optional sink for per-run metrics; may be nil.
//   - out: The io.Writer for progress output.
//
// Returns:
//   - []StrategyResult: One result per reducer, in the same order.
func ExecuteStrategies(ctx context.Context, reducers []Reducer, input []float64, reporter ProgressReporter, recorder RunRecorder, out io.Writer) []StrategyResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]StrategyResult, len(reducers))
	updates := make(chan ProgressUpdate, len(reducers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, updates, len(reducers), out)

	for i, r := range reducers {
		g.Go(func() error {
			start := time.Now()
			value, err := r.Reduce(ctx, input)
			elapsed := time.Since(start)
			results[i] = StrategyResult{Name: r.Name(), Value: value, Duration: elapsed, Err: err}
			if recorder != nil {
				recorder.ObserveRun(r.Name(), elapsed, err)
			}
			updates <- ProgressUpdate{Index: i, Name: r.Name(), Duration: elapsed, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	close(updates)
	displayWg.Wait()

	return results
}

// ResultsAgree reports whether two sums are equal within a relative
// tolerance. Non-finite values agree only with the same non-finite value:
// NaN with NaN, +Inf with +Inf, -Inf with -Inf.
func ResultsAgree(a, b, epsilon float64) bool {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return math.IsNaN(a) && math.IsNaN(b)
	case math.IsInf(a, 0) || math.IsInf(b, 0):
		return a == b
	case a == b:
		return true
	}
	return math.Abs(a-b) <= epsilon*math.Max(math.Abs(a), math.Abs(b))
}

// referenceIndex returns the result the others are compared with: the
// sequential baseline when it succeeded, otherwise the first success.
func referenceIndex(results []StrategyResult) int {
	first := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if r.Name == reciprocal.StrategySequential {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

// AnalyzeResults compares the strategy results and generates a summary
// report.
//
// Every successful result is checked against the reference with
// ResultsAgree and flagged on disagreement. The results are then sorted
// (successes first, fastest first) and presented.
//
// Parameters:
//   - results: The results to analyze; sorted in place.
//   - opts: Input size, tolerance and verbosity.
//   - presenter: The result presenter for display formatting.
//   - errHandler: Maps the first error to an exit code when nothing succeeded.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeResults(results []StrategyResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	ref := referenceIndex(results)
	if ref < 0 {
		presenter.PresentComparisonTable(results, opts, out)
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the reduction.\n")
		var firstErr error
		var firstDuration time.Duration
		for _, r := range results {
			if r.Err != nil {
				firstErr, firstDuration = r.Err, r.Duration
				break
			}
		}
		if firstErr == nil {
			return apperrors.ExitErrorGeneric
		}
		return errHandler.HandleError(firstErr, firstDuration, out)
	}

	reference := results[ref]
	mismatch := false
	for i := range results {
		if results[i].Err == nil && !ResultsAgree(results[i].Value, reference.Value, opts.Epsilon) {
			results[i].Mismatch = true
			mismatch = true
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})
	presenter.PresentComparisonTable(results, opts, out)

	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Strategy results disagree beyond a relative tolerance of %g.\n", opts.Epsilon)
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(reference, opts, out)
	return apperrors.ExitSuccess
}
