package cli

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/agbru/recipsum/internal/analytics"
	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/ui"
)

// DisplayStudentReport prints the roster query answers and whether the
// loop and batch forms agreed.
func DisplayStudentReport(report analytics.Report, consistent bool, loop, batch time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.HeaderStyle().Render("--- Student Analytics ---"))
	fmt.Fprintf(out, "Roster size:                      %s\n", format.FormatCount(report.Students))
	if math.IsNaN(report.AverageEnrolledAge) {
		fmt.Fprintf(out, "Average age of enrolled students: n/a (nobody enrolled)\n")
	} else {
		fmt.Fprintf(out, "Average age of enrolled students: %.3f\n", report.AverageEnrolledAge)
	}
	if report.HasInactive {
		fmt.Fprintf(out, "Most common inactive first name:  %s\n", report.MostCommonInactiveName)
	} else {
		fmt.Fprintf(out, "Most common inactive first name:  n/a (no inactive student)\n")
	}
	fmt.Fprintf(out, "Inactive, over 20, failing:       %s\n", format.FormatCount(report.InactiveFailingOver20))
	fmt.Fprintf(out, "Loop %s, batch %s: ", format.FormatExecutionDuration(loop), format.FormatExecutionDuration(batch))
	if consistent {
		fmt.Fprintf(out, "%sconsistent%s\n", ui.ColorGreen(), ui.ColorReset())
	} else {
		fmt.Fprintf(out, "%sINCONSISTENT%s\n", ui.ColorRed(), ui.ColorReset())
	}
}
