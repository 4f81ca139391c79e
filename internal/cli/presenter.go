package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/ui"
)

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
	_ apperrors.ColorProvider       = CLIColorProvider{}
)

// PresentComparisonTable displays one row per strategy with its duration,
// value and status in a bordered table.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.StrategyResult, _ orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.HeaderStyle().Render("--- Comparison Summary ---"))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(ui.BorderStyle()).
		Headers("Strategy", "Duration", "Value", "Status")
	for _, res := range results {
		value := "-"
		if res.Err == nil {
			value = format.FormatValue(res.Value)
		}
		t.Row(res.Name, displayDuration(res.Duration), value, statusCell(res))
	}
	fmt.Fprintln(out, t.Render())
}

func statusCell(res orchestration.StrategyResult) string {
	switch {
	case res.Err != nil:
		return ui.StatusStyle(false, false).Render(fmt.Sprintf("Failure (%v)", res.Err))
	case res.Mismatch:
		return ui.StatusStyle(false, true).Render("Mismatch")
	}
	return ui.StatusStyle(true, false).Render("Success")
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// PresentResult displays the final value.
func (CLIResultPresenter) PresentResult(result orchestration.StrategyResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// HandleError handles run errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleComputationError(err, duration, out, CLIColorProvider{})
}

// QuietResultPresenter prints only the bare reference value to Out and
// failures to ErrOut. The writers passed by the orchestrator are ignored.
type QuietResultPresenter struct {
	Out    io.Writer
	ErrOut io.Writer
}

var (
	_ orchestration.ResultPresenter = QuietResultPresenter{}
	_ orchestration.ErrorHandler    = QuietResultPresenter{}
)

func (QuietResultPresenter) PresentComparisonTable([]orchestration.StrategyResult, orchestration.PresentationOptions, io.Writer) {
}

func (q QuietResultPresenter) PresentResult(result orchestration.StrategyResult, _ orchestration.PresentationOptions, _ io.Writer) {
	DisplayQuietResult(q.Out, result.Value)
}

func (q QuietResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	return apperrors.HandleComputationError(err, duration, q.ErrOut, CLIColorProvider{})
}
