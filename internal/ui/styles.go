package ui

import "github.com/charmbracelet/lipgloss"

// HeaderStyle renders section titles.
func HeaderStyle() lipgloss.Style {
	t := GetCurrentStyleTheme()
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}

// BorderStyle renders table and box borders.
func BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(GetCurrentStyleTheme().Border)
}

// BoxStyle frames a short block of text such as the final result.
func BoxStyle() lipgloss.Style {
	t := GetCurrentStyleTheme()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
}

// StatusStyle renders a status cell: success, warning or error.
func StatusStyle(ok, warn bool) lipgloss.Style {
	t := GetCurrentStyleTheme()
	switch {
	case warn:
		return lipgloss.NewStyle().Foreground(t.Warning)
	case ok:
		return lipgloss.NewStyle().Foreground(t.Success)
	}
	return lipgloss.NewStyle().Foreground(t.Error)
}
