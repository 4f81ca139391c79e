package reciprocal

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/recipsum/internal/chunk"
	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/parallel"
)

// Strategy names, used in errors, spans and reports.
const (
	StrategySequential = "seq"
	StrategyTwoWay     = "par"
	StrategyChunked    = "chunked"
)

// TracerName is the instrumentation name of the spans opened by Engine.
const TracerName = "github.com/agbru/recipsum/reciprocal"

// DefaultMaxLeafSize returns the leaf size used when none is configured:
// half the input length, evaluated once against the full input. The root
// task therefore splits exactly once. It is never less than 1, so inputs of
// length 1 are a single leaf.
func DefaultMaxLeafSize(n int) int {
	return max(n/2, 1)
}

// Engine runs reciprocal sums on a scheduler. An Engine is immutable after
// construction and safe for concurrent use.
type Engine struct {
	scheduler   *parallel.Scheduler
	observer    Observer
	tracer      trace.Tracer
	maxLeafSize int
}

// EngineOption configures an Engine during construction.
type EngineOption func(*Engine)

// WithObserver sets the hook notified of splits and leaves.
func WithObserver(o Observer) EngineOption {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithTracer sets the tracer used for driver spans. By default the global
// OpenTelemetry provider is used.
func WithTracer(t trace.Tracer) EngineOption {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithMaxLeafSize sets the longest range summed without splitting.
// Zero restores DefaultMaxLeafSize.
func WithMaxLeafSize(n int) EngineOption {
	return func(e *Engine) { e.maxLeafSize = n }
}

// NewEngine creates an Engine bound to s.
func NewEngine(s *parallel.Scheduler, opts ...EngineOption) *Engine {
	e := &Engine{
		scheduler: s,
		observer:  NopObserver{},
		tracer:    otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxLeafSize returns the leaf size the engine uses for an input of length n.
func (e *Engine) MaxLeafSize(n int) int {
	if e.maxLeafSize > 0 {
		return e.maxLeafSize
	}
	return DefaultMaxLeafSize(n)
}

// Sum computes the reciprocal sum of input with one root task over the whole
// slice, forking down to the maximum leaf size.
//
// Parameters:
//   - ctx: Carries the trace span; cancellation is honored only before the
//     root task starts.
//   - input: Non-empty, read-only for the duration of the call.
//
// Returns:
//   - float64: The sum, possibly +Inf or NaN.
//   - error: An InvalidArgumentError for bad arguments, or a
//     ComputationError if a task failed. No partial sum is returned.
func (e *Engine) Sum(ctx context.Context, input []float64) (sum float64, err error) {
	if err := e.validate(input); err != nil {
		return 0, err
	}
	t := e.newTask(input)
	ctx, span := e.startSpan(ctx, StrategyTwoWay, len(input), 1, t.maxLeaf)
	defer func() { endSpan(span, err) }()

	err = e.scheduler.RunOne(ctx, func() (err error) {
		sum, err = t.compute(chunk.Range{Start: 0, End: len(input)}, 0)
		return err
	})
	if err != nil {
		return 0, apperrors.ComputationError{Strategy: StrategyTwoWay, Cause: err}
	}
	return sum, nil
}

// SumChunked computes the reciprocal sum of input with numTasks independent
// tasks, one per chunk of chunk.Plan(numTasks, len(input)), run as one
// batch. Partial sums are added in chunk order once every task finished, so
// the result is reproducible for a given input and numTasks. Chunks longer
// than the maximum leaf size split like any other task. Empty chunks add
// nothing; they are reported to the observer by count and not scheduled.
//
// Parameters:
//   - ctx: Carries the trace span and bounds the batch scheduling.
//   - input: Non-empty, read-only for the duration of the call.
//   - numTasks: Number of chunks; must be at least 1 and may exceed len(input).
//
// Returns:
//   - float64: The sum, possibly +Inf or NaN.
//   - error: An InvalidArgumentError for bad arguments, or a
//     ComputationError if any task failed.
func (e *Engine) SumChunked(ctx context.Context, input []float64, numTasks int) (sum float64, err error) {
	if numTasks <= 0 {
		return 0, apperrors.NewInvalidArgument("numTasks", "must be positive, got %d", numTasks)
	}
	if err := e.validate(input); err != nil {
		return 0, err
	}
	plan, empty, err := chunk.Plan(numTasks, len(input))
	if err != nil {
		return 0, err
	}
	t := e.newTask(input)
	if empty > 0 {
		t.observer.EmptyChunks(empty)
	}
	ctx, span := e.startSpan(ctx, StrategyChunked, len(input), numTasks, t.maxLeaf)
	defer func() { endSpan(span, err) }()

	partials := make([]float64, len(plan))
	tasks := make([]func() error, len(plan))
	for i, r := range plan {
		tasks[i] = func() (err error) {
			partials[i], err = t.compute(r, 0)
			return err
		}
	}
	if err = e.scheduler.RunAll(ctx, tasks); err != nil {
		return 0, apperrors.ComputationError{Strategy: StrategyChunked, Cause: err}
	}

	for _, p := range partials {
		sum += p
	}
	return sum, nil
}

func (e *Engine) validate(input []float64) error {
	if len(input) == 0 {
		return apperrors.NewInvalidArgument("input", "must not be empty")
	}
	if e.maxLeafSize < 0 {
		return apperrors.NewInvalidArgument("maxLeafSize", "must not be negative, got %d", e.maxLeafSize)
	}
	return nil
}

func (e *Engine) newTask(input []float64) *task {
	return &task{
		input:    input,
		maxLeaf:  e.MaxLeafSize(len(input)),
		sched:    e.scheduler,
		observer: e.observer,
	}
}

func (e *Engine) startSpan(ctx context.Context, strategy string, n, tasks, maxLeaf int) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, "reciprocal."+strategy, trace.WithAttributes(
		attribute.String("recipsum.strategy", strategy),
		attribute.Int("recipsum.length", n),
		attribute.Int("recipsum.tasks", tasks),
		attribute.Int("recipsum.max_leaf", maxLeaf),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ParSum is Engine.Sum on the process-wide scheduler with default options.
func ParSum(input []float64) (float64, error) {
	return NewEngine(parallel.Default()).Sum(context.Background(), input)
}

// ParSumChunked is Engine.SumChunked on the process-wide scheduler with
// default options.
func ParSumChunked(input []float64, numTasks int) (float64, error) {
	return NewEngine(parallel.Default()).SumChunked(context.Background(), input, numTasks)
}
