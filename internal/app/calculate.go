package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/recipsum/internal/analytics"
	"github.com/agbru/recipsum/internal/cli"
	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/input"
	"github.com/agbru/recipsum/internal/logging"
	"github.com/agbru/recipsum/internal/metrics"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/reciprocal"
	"github.com/agbru/recipsum/internal/sysmon"
	"github.com/agbru/recipsum/internal/tui"
)

// reductionRun is the prepared input and strategies of one run.
type reductionRun struct {
	input     []float64
	reducers  []orchestration.Reducer
	collector *metrics.ReductionCollector
	maxLeaf   int
}

// prepareRun generates the input and builds the selected strategies on the
// shared scheduler, observed by a fresh metrics collector.
func (a *Application) prepareRun() (reductionRun, int) {
	dist, err := input.ParseDistribution(a.Config.Distribution)
	if err != nil {
		err = apperrors.WrapError(err, "preparing input")
		return reductionRun{}, apperrors.HandleComputationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	values, err := input.Generate(a.Config.Size, a.Config.Seed, dist)
	if err != nil {
		err = apperrors.WrapError(err, "generating %d %s values", a.Config.Size, dist)
		return reductionRun{}, apperrors.HandleComputationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	a.Logger.Debug("input generated", logging.String("distribution", input.Describe(values, dist)))

	collector := metrics.NewReductionCollector()
	if err := collector.RegisterScheduler(a.Scheduler); err != nil {
		a.Logger.Error("scheduler metrics unavailable", err)
	}
	engine := reciprocal.NewEngine(a.Scheduler,
		append(a.Config.ToEngineOptions(), reciprocal.WithObserver(collector))...)
	return reductionRun{
		input:     values,
		reducers:  orchestration.GetReducersToRun(a.Config, engine),
		collector: collector,
		maxLeaf:   engine.MaxLeafSize(len(values)),
	}, apperrors.ExitSuccess
}

// runTUI runs the strategies in the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	run, code := a.prepareRun()
	if code != apperrors.ExitSuccess {
		return code
	}
	return tui.Run(ctx, tui.Session{
		Reducers: run.reducers,
		Input:    run.input,
		Options: orchestration.PresentationOptions{
			Size:    a.Config.Size,
			Epsilon: a.Config.Epsilon,
			Verbose: a.Config.Verbose,
		},
		Recorder: run.collector,
		Version:  Version,
	})
}

// runReduce generates the input, runs the selected strategies and reports
// the comparison.
func (a *Application) runReduce(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	run, code := a.prepareRun()
	if code != apperrors.ExitSuccess {
		return code
	}
	collector, reducers, values := run.collector, run.reducers, run.input

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, run.maxLeaf, out)
		cli.PrintExecutionMode(reducers, out)
	}

	var reporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		reporter = orchestration.NullProgressReporter{}
	} else {
		reporter = cli.CLIProgressReporter{}
	}

	memory := metrics.NewMemoryCollector()
	memBefore := memory.Snapshot()
	stopSampling := sysmon.Measure(ctx)

	results := orchestration.ExecuteStrategies(ctx, reducers, values, reporter, collector, progressOut)

	system := stopSampling()
	memDelta := memory.Snapshot().Since(memBefore)
	for _, r := range results {
		switch {
		case apperrors.IsContextError(r.Err):
			a.Logger.Info("strategy interrupted", logging.String("strategy", r.Name), logging.Err(r.Err))
			continue
		case r.Err != nil:
			a.Logger.Error("strategy failed", r.Err, logging.String("strategy", r.Name))
			continue
		}
		a.Logger.Debug("strategy finished",
			logging.String("strategy", r.Name),
			logging.Float64("value", r.Value),
			logging.String("duration", r.Duration.String()))
	}

	opts := orchestration.PresentationOptions{
		Size:    a.Config.Size,
		Epsilon: a.Config.Epsilon,
		Verbose: a.Config.Verbose,
	}
	code = a.analyzeResults(results, opts, out)

	if a.Config.Verbose {
		cli.DisplaySchedulerStats(a.Scheduler.Stats(), out)
		cli.DisplayMemoryStats(memDelta, out)
		cli.DisplaySystemStats(system, out)
	}
	if a.Config.ShowMetrics {
		if err := cli.DisplayMetrics(collector, out); err != nil {
			a.Logger.Error("metrics export failed", err)
		}
	}
	return code
}

// analyzeResults compares the strategy results. In quiet mode only the
// reference value reaches out; failures go to the error writer.
func (a *Application) analyzeResults(results []orchestration.StrategyResult, opts orchestration.PresentationOptions, out io.Writer) int {
	if !a.Config.Quiet {
		return orchestration.AnalyzeResults(results, opts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)
	}
	quiet := cli.QuietResultPresenter{Out: out, ErrOut: a.ErrWriter}
	code := orchestration.AnalyzeResults(results, opts, quiet, quiet, io.Discard)
	if code == apperrors.ExitErrorMismatch {
		fmt.Fprintf(a.ErrWriter, "strategy results disagree beyond a relative tolerance of %g\n", opts.Epsilon)
	}
	return code
}

// runStudents answers the roster queries both with plain loops and as
// batches on the scheduler, and checks that both forms agree.
func (a *Application) runStudents(ctx context.Context, out io.Writer) int {
	roster := analytics.Generate(a.Config.Students, a.Config.Seed)

	start := time.Now()
	loop := analytics.ImperativeReport(roster)
	loopDuration := time.Since(start)

	start = time.Now()
	batch, err := analytics.NewAnalyzer(a.Scheduler, a.Config.Tasks).Report(ctx, roster)
	batchDuration := time.Since(start)
	if err != nil {
		return apperrors.HandleComputationError(err, batchDuration, a.ErrWriter, cli.CLIColorProvider{})
	}

	consistent := batch.Equal(loop, a.Config.Epsilon)
	a.Logger.Debug("student analytics finished",
		logging.Int("students", len(roster)),
		logging.String("loop", loopDuration.String()),
		logging.String("batch", batchDuration.String()))
	if !a.Config.Quiet {
		cli.DisplayStudentReport(batch, consistent, loopDuration, batchDuration, out)
	}
	if !consistent {
		if a.Config.Quiet {
			fmt.Fprintln(a.ErrWriter, "student analytics: loop and batch answers disagree")
		}
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}
