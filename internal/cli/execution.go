package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/recipsum/internal/config"
	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration: the
// input, the timeout, the environment and the scheduler settings.
//
// Parameters:
//   - cfg: The application configuration, after adaptive defaults.
//   - maxLeaf: The leaf size the engine resolved for this input.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, maxLeaf int, out io.Writer) {
	fmt.Fprintf(out, "%s\n", ui.HeaderStyle().Render("--- Execution Configuration ---"))
	fmt.Fprintf(out, "Reducing %s%s%s %s elements (seed %d) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), format.FormatCount(cfg.Size), ui.ColorReset(), cfg.Distribution, cfg.Seed,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Scheduler: %s%d%s workers, %s%d%s chunks, leaf size %s%s%s.\n",
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorCyan(), cfg.Tasks, ui.ColorReset(),
		ui.ColorCyan(), format.FormatCount(maxLeaf), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single strategy vs comparison).
//
// Parameters:
//   - reducers: The strategies that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(reducers []orchestration.Reducer, out io.Writer) {
	var modeDesc string
	switch len(reducers) {
	case 0:
		modeDesc = "nothing to run"
	case 1:
		modeDesc = fmt.Sprintf("Single run of the %s%s%s strategy",
			ui.ColorGreen(), reducers[0].Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d strategies", len(reducers))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n%s\n", ui.HeaderStyle().Render("--- Starting Execution ---"))
}
