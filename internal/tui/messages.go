package tui

import (
	"time"

	"github.com/agbru/recipsum/internal/orchestration"
)

// ProgressMsg reports one finished strategy.
type ProgressMsg struct {
	Update     orchestration.ProgressUpdate
	Progress   orchestration.AggregatedProgress
	Generation uint64
}

// ComparisonResultsMsg carries the analyzed results, sorted for display.
type ComparisonResultsMsg struct {
	Results    []orchestration.StrategyResult
	Generation uint64
}

// FinalResultMsg carries the reference result of a consistent run.
type FinalResultMsg struct {
	Result     orchestration.StrategyResult
	Generation uint64
}

// ErrorMsg reports that no strategy succeeded.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// RunCompleteMsg ends a run with its exit code.
type RunCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// SysStatsMsg carries one system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time
