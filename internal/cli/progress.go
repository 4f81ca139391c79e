package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/briandowns/spinner"

	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and a completion bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to the package-level DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, numStrategies int, out io.Writer) {
	DisplayProgress(wg, updates, numStrategies, out)
}

// DisplayProgress shows a spinner while strategies run and prints one line
// per finished strategy. It returns once updates is closed.
//
// Parameters:
//   - wg: Signalled when the display has stopped.
//   - updates: One update per finished strategy; closed by the producer.
//   - numStrategies: The number of strategies being tracked.
//   - out: The writer for progress output.
func DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, numStrategies int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numStrategies)
	if agg == nil {
		orchestration.DrainChannel(updates)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(agg.Current()))
	s.Start()
	defer s.Stop()

	for u := range updates {
		state := agg.Update(u)
		s.UpdateSuffix(progressSuffix(state))
		if agg.IsMultiStrategy() {
			status := fmt.Sprintf("%sdone%s", ui.ColorGreen(), ui.ColorReset())
			if u.Err != nil {
				status = fmt.Sprintf("%sfailed%s", ui.ColorRed(), ui.ColorReset())
			}
			fmt.Fprintf(out, "\r  %s%-8s%s %s in %s\n", ui.ColorBlue(), u.Name, ui.ColorReset(), status, format.FormatExecutionDuration(u.Duration))
		}
	}
}

func progressSuffix(p orchestration.AggregatedProgress) string {
	return fmt.Sprintf(" Reducing... %s %d/%d", progressBar(p.Fraction, ProgressBarWidth), p.Completed, p.Total)
}
