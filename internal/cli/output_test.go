package cli

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/agbru/recipsum/internal/analytics"
	"github.com/agbru/recipsum/internal/config"
	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/metrics"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/parallel"
	"github.com/agbru/recipsum/internal/sysmon"
	"github.com/agbru/recipsum/internal/ui"
)

func init() {
	ui.SetCurrentTheme(ui.NoColorTheme)
}

type namedReducer string

func (n namedReducer) Name() string { return string(n) }
func (namedReducer) Reduce(_ context.Context, _ []float64) (float64, error) {
	return 0, nil
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value float64
		want  string
	}{
		{4, "4"},
		{math.Inf(1), "+Inf"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		if got := FormatQuietResult(tt.value); got != tt.want {
			t.Errorf("FormatQuietResult(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayQuietResult(&buf, 2.5)
	if buf.String() != "2.5\n" {
		t.Errorf("got %q, want %q", buf.String(), "2.5\n")
	}
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		result   orchestration.StrategyResult
		opts     orchestration.PresentationOptions
		contains []string
		excludes []string
	}{
		{
			name:     "Finite value",
			result:   orchestration.StrategyResult{Name: "seq", Value: 4, Duration: time.Millisecond},
			opts:     orchestration.PresentationOptions{Size: 4000},
			contains: []string{"Sum of reciprocals of 4,000 elements = 4"},
			excludes: []string{"Reference strategy", "Note:"},
		},
		{
			name:     "Verbose",
			result:   orchestration.StrategyResult{Name: "seq", Value: 4, Duration: time.Millisecond},
			opts:     orchestration.PresentationOptions{Size: 8, Verbose: true},
			contains: []string{"Reference strategy: seq (1ms)", "Mean reciprocal: 0.5"},
		},
		{
			name:     "Infinite value",
			result:   orchestration.StrategyResult{Name: "seq", Value: math.Inf(1)},
			opts:     orchestration.PresentationOptions{Size: 3},
			contains: []string{"= +Inf", "contains a zero"},
		},
		{
			name:     "NaN value",
			result:   orchestration.StrategyResult{Name: "seq", Value: math.NaN()},
			opts:     orchestration.PresentationOptions{Size: 3, Verbose: true},
			contains: []string{"= NaN", "contains NaN"},
			excludes: []string{"Mean reciprocal"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			DisplayResult(tt.result, tt.opts, &buf)
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("expected output to contain %q, got:\n%s", s, out)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q, got:\n%s", s, out)
				}
			}
		})
	}
}

func TestPresentComparisonTable(t *testing.T) {
	t.Parallel()
	results := []orchestration.StrategyResult{
		{Name: "seq", Value: 1.5, Duration: 2 * time.Millisecond},
		{Name: "par", Value: 1.6, Duration: time.Millisecond, Mismatch: true},
		{Name: "chunked", Err: errors.New("scheduler closed")},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, orchestration.PresentationOptions{}, &buf)
	out := buf.String()
	for _, s := range []string{"Comparison Summary", "Strategy", "Duration", "Value", "Status",
		"seq", "1.5", "Success", "Mismatch", "Failure (scheduler closed)", "< 1µs"} {
		if !strings.Contains(out, s) {
			t.Errorf("table should contain %q:\n%s", s, out)
		}
	}
}

func TestHandleErrorExitCodes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	code := CLIResultPresenter{}.HandleError(apperrors.NewInvalidArgument("input", "must not be empty"), 0, &buf)
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(buf.String(), "Invalid input") {
		t.Errorf("unexpected message %q", buf.String())
	}
}

func TestDisplayStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplaySchedulerStats(parallel.Stats{Workers: 4, Roots: 2, AsyncForks: 3, InlineForks: 1}, &buf)
	DisplayMemoryStats(metrics.MemorySnapshot{HeapAlloc: 2048, TotalAlloc: 1 << 20, NumGC: 2, PauseTotalNs: 1_500_000}, &buf)
	DisplaySystemStats(sysmon.Stats{CPUPercent: 42, MemPercent: 50, LogicalCPUs: 8, TotalMemory: 16 << 30}, &buf)
	out := buf.String()
	for _, s := range []string{"Workers:      4", "Async forks:  3", "2.0 KiB", "1.0 MiB", "1.50ms", "42.0% of 8 logical CPUs", "16.0 GiB"} {
		if !strings.Contains(out, s) {
			t.Errorf("stats output should contain %q:\n%s", s, out)
		}
	}
}

func TestDisplayMetrics(t *testing.T) {
	t.Parallel()
	c := metrics.NewReductionCollector()
	c.ObserveRun("par", time.Millisecond, nil)
	var buf bytes.Buffer
	if err := DisplayMetrics(c, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `recipsum_strategy_runs_total{status="success",strategy="par"} 1`) {
		t.Errorf("metrics output missing run counter:\n%s", buf.String())
	}
}

func TestPrintExecution(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{Size: 1000, Distribution: "uniform", Seed: 3, Timeout: time.Minute, Workers: 4, Tasks: 8}
	PrintExecutionConfig(cfg, 500, &buf)
	PrintExecutionMode([]orchestration.Reducer{namedReducer("seq"), namedReducer("par")}, &buf)
	PrintExecutionMode([]orchestration.Reducer{namedReducer("chunked")}, &buf)
	out := buf.String()
	for _, s := range []string{"1,000 uniform elements (seed 3)", "4 workers, 8 chunks, leaf size 500",
		"Parallel comparison of 2 strategies", "Single run of the chunked strategy"} {
		if !strings.Contains(out, s) {
			t.Errorf("output should contain %q:\n%s", s, out)
		}
	}
}

func TestDisplayStudentReport(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		report     analytics.Report
		consistent bool
		contains   []string
	}{
		{
			name:       "Full report",
			report:     analytics.Report{Students: 1200, AverageEnrolledAge: 21.5, MostCommonInactiveName: "Ana", HasInactive: true, InactiveFailingOver20: 7},
			consistent: true,
			contains:   []string{"1,200", "21.500", "Ana", "failing:       7", "consistent"},
		},
		{
			name:       "Empty groups",
			report:     analytics.Report{Students: 0, AverageEnrolledAge: math.NaN()},
			consistent: false,
			contains:   []string{"nobody enrolled", "no inactive student", "INCONSISTENT"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			DisplayStudentReport(tt.report, tt.consistent, time.Millisecond, time.Millisecond, &buf)
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("report should contain %q:\n%s", s, buf.String())
				}
			}
		})
	}
}

func TestQuietResultPresenter(t *testing.T) {
	t.Parallel()
	var out, errOut, ignored bytes.Buffer
	q := QuietResultPresenter{Out: &out, ErrOut: &errOut}

	q.PresentComparisonTable([]orchestration.StrategyResult{{Name: "seq", Value: 4}}, orchestration.PresentationOptions{}, &ignored)
	q.PresentResult(orchestration.StrategyResult{Name: "seq", Value: 4}, orchestration.PresentationOptions{}, &ignored)
	if out.String() != "4\n" {
		t.Errorf("quiet output = %q, want %q", out.String(), "4\n")
	}

	code := q.HandleError(apperrors.NewInvalidArgument("input", "must not be empty"), 0, &ignored)
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if errOut.Len() == 0 {
		t.Error("error should be written to ErrOut")
	}
	if ignored.Len() != 0 {
		t.Errorf("orchestrator writer should stay untouched, got %q", ignored.String())
	}
}
