// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Print* functions write the run preamble.
//     Examples: [PrintExecutionConfig], [PrintExecutionMode].

package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/metrics"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/parallel"
	"github.com/agbru/recipsum/internal/sysmon"
	"github.com/agbru/recipsum/internal/ui"
)

// FormatQuietResult formats a result for quiet mode output: the bare value,
// suitable for scripting.
func FormatQuietResult(value float64) string {
	return format.FormatValue(value)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, value float64) {
	fmt.Fprintln(out, FormatQuietResult(value))
}

// DisplayResult displays the final reduction value in a box, with the
// strategy and duration that produced it. Non-finite values get a note
// explaining where they come from.
//
// Parameters:
//   - result: The reference result.
//   - opts: Input size and verbosity.
//   - out: The output writer.
func DisplayResult(result orchestration.StrategyResult, opts orchestration.PresentationOptions, out io.Writer) {
	body := fmt.Sprintf("Sum of reciprocals of %s elements = %s",
		format.FormatCount(opts.Size), format.FormatValue(result.Value))
	if opts.Verbose {
		body += fmt.Sprintf("\nReference strategy: %s (%s)", result.Name, format.FormatExecutionDuration(result.Duration))
		if opts.Size > 0 && !math.IsNaN(result.Value) && !math.IsInf(result.Value, 0) {
			body += fmt.Sprintf("\nMean reciprocal: %.6g", result.Value/float64(opts.Size))
		}
	}
	fmt.Fprintf(out, "\n%s\n", ui.BoxStyle().Render(body))

	switch {
	case math.IsNaN(result.Value):
		fmt.Fprintf(out, "%sNote: the input contains NaN; the sum is NaN.%s\n", ui.ColorYellow(), ui.ColorReset())
	case math.IsInf(result.Value, 0):
		fmt.Fprintf(out, "%sNote: the input contains a zero; its reciprocal is infinite.%s\n", ui.ColorYellow(), ui.ColorReset())
	}
}

// DisplaySchedulerStats shows the fork counters of the shared scheduler.
func DisplaySchedulerStats(stats parallel.Stats, out io.Writer) {
	fmt.Fprintf(out, "\nScheduler:\n")
	fmt.Fprintf(out, "  Workers:      %d\n", stats.Workers)
	fmt.Fprintf(out, "  Root tasks:   %d\n", stats.Roots)
	fmt.Fprintf(out, "  Async forks:  %d\n", stats.AsyncForks)
	fmt.Fprintf(out, "  Inline forks: %d\n", stats.InlineForks)
}

// DisplayMemoryStats shows the memory used by a run.
func DisplayMemoryStats(delta metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(delta.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(delta.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseTotalNs)/1e6)
}

// DisplaySystemStats shows a system-wide resource sample.
func DisplaySystemStats(s sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "\nSystem:\n")
	fmt.Fprintf(out, "  CPU during run:  %.1f%% of %d logical CPUs\n", s.CPUPercent, s.LogicalCPUs)
	fmt.Fprintf(out, "  Memory in use:   %.1f%% of %s\n", s.MemPercent, format.FormatBytes(s.TotalMemory))
}

// DisplayMetrics writes the collected Prometheus metrics in text format.
func DisplayMetrics(c *metrics.ReductionCollector, out io.Writer) error {
	fmt.Fprintf(out, "\n%s\n", ui.HeaderStyle().Render("--- Metrics ---"))
	return c.WriteText(out)
}
