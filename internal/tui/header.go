package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/recipsum/internal/format"
)

// HeaderModel renders the top bar: title, input size and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	size      int
	width     int
}

// NewHeaderModel creates a header whose timer starts now.
func NewHeaderModel(version string, size int) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version, size: size}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the running or frozen duration.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "recipsum"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	row := titleStyle.Render(title) +
		dimStyle.Render(fmt.Sprintf(" | %s elements | ", format.FormatCount(h.size))) +
		elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.Elapsed()))
	if h.width > 0 {
		return headerStyle.Width(max(h.width, lipgloss.Width(row))).Render(row)
	}
	return headerStyle.Render(row)
}
