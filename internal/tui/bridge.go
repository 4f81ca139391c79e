package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/orchestration"
)

// programRef survives the model copies bubbletea makes on every Update, so
// the run goroutines can reach the program.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program; it is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter by turning
// every update into a ProgressMsg.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains updates until the channel is closed.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, numStrategies int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numStrategies)
	if agg == nil {
		orchestration.DrainChannel(updates)
		return
	}
	for update := range updates {
		t.ref.Send(ProgressMsg{
			Update:     update,
			Progress:   agg.Update(update),
			Generation: t.generation,
		})
	}
}

// TUIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler by sending messages instead of writing.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends the analyzed results.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.StrategyResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: append([]orchestration.StrategyResult(nil), results...), Generation: t.generation})
}

// PresentResult sends the reference result.
func (t *TUIResultPresenter) PresentResult(result orchestration.StrategyResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(FinalResultMsg{Result: result, Generation: t.generation})
}

// HandleError sends the error and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration, Generation: t.generation})
	return apperrors.ExitCodeFor(err)
}
